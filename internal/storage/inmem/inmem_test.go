package inmem

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedAuthor(t *testing.T, s *Store) domain.User {
	t.Helper()
	u := domain.User{FirstName: "Ada", LastName: "Karim", Email: fmt.Sprintf("%s@example.com", uuid.NewString()[:8]), PasswordHash: "x"}
	require.NoError(t, s.CreateUser(context.Background(), &u))
	return u
}

func seedArticle(t *testing.T, s *Store, author domain.User, title, category string, video bool) domain.Article {
	t.Helper()
	a := domain.Article{
		Title:        title,
		Content:      "<p>content of " + title + "</p>",
		TimeToRead:   "1 min",
		Category:     category,
		VideoArticle: video,
		AuthorID:     author.ID,
	}
	require.NoError(t, s.CreateArticle(context.Background(), &a))
	return a
}

func TestListArticles_FilterSortPaginate(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := seedAuthor(t, s)

	for i := 1; i <= 12; i++ {
		seedArticle(t, s, author, fmt.Sprintf("Article %02d", i), "culture", false)
	}
	seedArticle(t, s, author, "Video Special", "culture", true)

	video := false
	items, total, err := s.ListArticles(ctx, storage.ArticleListOpts{
		Filter: storage.ArticleFilter{Category: "culture", Video: &video},
		Sort:   storage.ArticleSort{Field: "title"},
		Offset: 5,
		Limit:  5,
	})
	require.NoError(t, err)

	assert.EqualValues(t, 12, total)
	require.Len(t, items, 5)
	assert.Equal(t, "Article 06", items[0].Title)
	assert.Equal(t, "Article 10", items[4].Title)
	require.NotNil(t, items[0].Author)
	assert.Equal(t, author.Email, items[0].Author.Email)
}

func TestListArticles_TitleSubstringCaseInsensitive(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := seedAuthor(t, s)
	seedArticle(t, s, author, "The Jakarta Review", "city", false)
	seedArticle(t, s, author, "Elsewhere", "city", false)

	items, total, err := s.ListArticles(ctx, storage.ArticleListOpts{
		Filter: storage.ArticleFilter{Title: "jakarta"},
		Limit:  10,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "The Jakarta Review", items[0].Title)
}

func TestViewArticle_Increments(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := seedAuthor(t, s)
	a := seedArticle(t, s, author, "Counted", "metrics", false)

	first, err := s.ViewArticle(ctx, a.ID)
	require.NoError(t, err)
	second, err := s.ViewArticle(ctx, a.ID)
	require.NoError(t, err)

	assert.EqualValues(t, 1, first.TimesViewed)
	assert.EqualValues(t, 2, second.TimesViewed)
}

func TestDeleteArticle_Cascades(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := seedAuthor(t, s)
	a := seedArticle(t, s, author, "Doomed", "news", false)

	c := domain.Comment{Content: "hot take", ArticleID: a.ID, AuthorID: author.ID}
	require.NoError(t, s.CreateComment(ctx, &c))
	b := domain.Bookmark{ArticleID: a.ID, UserID: author.ID}
	require.NoError(t, s.CreateBookmark(ctx, &b))
	require.NoError(t, s.SetFeaturedArticle(ctx, a.ID))
	require.NoError(t, s.SetTopPicks(ctx, []domain.TopPick{{ArticleID: a.ID, DisplayOrder: 1}}))

	require.NoError(t, s.DeleteArticle(ctx, a.ID))

	_, err := s.GetComment(ctx, c.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	marks, err := s.ListBookmarksByUser(ctx, author.ID)
	require.NoError(t, err)
	assert.Empty(t, marks)
	settings, err := s.GetSettings(ctx)
	require.NoError(t, err)
	assert.Nil(t, settings.FeaturedArticleID)
	assert.Empty(t, settings.TopPicks)
}

func TestDeleteCommentWithReplies_SingleLevel(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := seedAuthor(t, s)
	a := seedArticle(t, s, author, "Threaded", "forum", false)

	top := domain.Comment{Content: "top", ArticleID: a.ID, AuthorID: author.ID}
	require.NoError(t, s.CreateComment(ctx, &top))
	reply := domain.Comment{Content: "reply", ArticleID: a.ID, AuthorID: author.ID, ParentID: &top.ID}
	require.NoError(t, s.CreateComment(ctx, &reply))
	grandchild := domain.Comment{Content: "deep", ArticleID: a.ID, AuthorID: author.ID, ParentID: &reply.ID}
	require.NoError(t, s.CreateComment(ctx, &grandchild))

	require.NoError(t, s.DeleteCommentWithReplies(ctx, top.ID))

	_, err := s.GetComment(ctx, top.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)
	_, err = s.GetComment(ctx, reply.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Replies-to-replies survive; the cascade is one level only.
	_, err = s.GetComment(ctx, grandchild.ID)
	assert.NoError(t, err)
}

func TestBookmarkUniqueness(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := seedAuthor(t, s)
	a := seedArticle(t, s, author, "Saved", "news", false)

	b1 := domain.Bookmark{ArticleID: a.ID, UserID: author.ID}
	require.NoError(t, s.CreateBookmark(ctx, &b1))
	b2 := domain.Bookmark{ArticleID: a.ID, UserID: author.ID}
	assert.ErrorIs(t, s.CreateBookmark(ctx, &b2), storage.ErrDuplicateBookmark)
}

func TestTrendingArticles_WindowAndOrder(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := seedAuthor(t, s)

	hot := seedArticle(t, s, author, "Hot", "news", false)
	warm := seedArticle(t, s, author, "Warm", "news", false)
	seedArticle(t, s, author, "Video", "news", true)

	for i := 0; i < 3; i++ {
		_, err := s.ViewArticle(ctx, hot.ID)
		require.NoError(t, err)
	}
	_, err := s.ViewArticle(ctx, warm.ID)
	require.NoError(t, err)

	out, err := s.TrendingArticles(ctx, time.Now().Add(-7*24*time.Hour))
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "Hot", out[0].Title)
	assert.Equal(t, "Warm", out[1].Title)
}

func TestAllCategories(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := seedAuthor(t, s)

	src := "https://res.cloudinary.com/demo/image/upload/pic.jpg"
	a := seedArticle(t, s, author, "With image", "art", false)
	_, err := s.UpdateArticle(ctx, a.ID, domain.ArticlePatch{Src: &src})
	require.NoError(t, err)
	seedArticle(t, s, author, "Art video", "art", true)
	seedArticle(t, s, author, "Plain", "tech", false)

	out, err := s.AllCategories(ctx)
	require.NoError(t, err)
	require.Len(t, out, 2)

	art := out[0]
	assert.Equal(t, "art", art.Category)
	assert.EqualValues(t, 1, art.ArticleCount)
	assert.EqualValues(t, 1, art.VideoCount)
	assert.EqualValues(t, 2, art.TotalCount)
	require.NotNil(t, art.Image)
	assert.Equal(t, src, *art.Image)
}

func TestListArticles_UnknownSortFallsBackNewestFirst(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := seedAuthor(t, s)

	old := domain.Article{
		Title: "Old", Content: "c", TimeToRead: "1 min", Category: "news",
		AuthorID: author.ID, CreatedAt: time.Now().Add(-time.Hour),
	}
	require.NoError(t, s.CreateArticle(ctx, &old))
	fresh := domain.Article{
		Title: "Fresh", Content: "c", TimeToRead: "1 min", Category: "news",
		AuthorID: author.ID, CreatedAt: time.Now(),
	}
	require.NoError(t, s.CreateArticle(ctx, &fresh))

	items, _, err := s.ListArticles(ctx, storage.ArticleListOpts{
		Sort:  storage.ArticleSort{Field: "bogus"},
		Limit: 10,
	})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Fresh", items[0].Title)
	assert.Equal(t, "Old", items[1].Title)
}

func TestUpdateArticle_EmptyPatchLeavesRecordUntouched(t *testing.T) {
	ctx := context.Background()
	s := NewStore()
	author := seedAuthor(t, s)
	article := seedArticle(t, s, author, "Stable", "news", false)

	got, err := s.UpdateArticle(ctx, article.ID, domain.ArticlePatch{})
	require.NoError(t, err)
	assert.Equal(t, "Stable", got.Title)
	assert.Equal(t, article.UpdatedAt, got.UpdatedAt)
}
