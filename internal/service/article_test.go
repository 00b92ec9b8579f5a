package service

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/media"
	"github.com/karyawanmag/content-api/internal/storage/inmem"
	"github.com/karyawanmag/content-api/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeMedia struct {
	mu      sync.Mutex
	deleted []string
	failOn  map[string]error
	uploads []string
}

func (f *fakeMedia) Upload(_ context.Context, _ io.Reader, filename string, opts media.UploadOpts) (media.Upload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, filename)
	publicID := opts.Folder + "/" + strings.TrimSuffix(filename, ".jpg")
	return media.Upload{
		URL:      "https://res.cloudinary.com/demo/image/upload/v1/" + publicID + ".jpg",
		PublicID: publicID,
		Resource: opts.Resource,
	}, nil
}

func (f *fakeMedia) Delete(_ context.Context, publicID string, _ media.Resource) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deleted = append(f.deleted, publicID)
	return f.failOn[publicID]
}

var _ media.Store = (*fakeMedia)(nil)

func imgTag(name string) string {
	return fmt.Sprintf(`<img src="https://res.cloudinary.com/demo/image/upload/v1/karyawan-articles/%s.png" />`, name)
}

func newArticleFixture(t *testing.T) (*ArticleService, *inmem.Store, *fakeMedia, domain.User, domain.User) {
	t.Helper()
	store := inmem.NewStore()
	fm := &fakeMedia{failOn: map[string]error{}}
	svc := NewArticleService(store, fm)

	admin := domain.User{FirstName: "Mira", LastName: "Admin", Email: "admin@example.com", Admin: true}
	require.NoError(t, store.CreateUser(context.Background(), &admin))

	author := domain.User{FirstName: "Ana", LastName: "Writer", Email: "ana@example.com"}
	require.NoError(t, store.CreateUser(context.Background(), &author))

	return svc, store, fm, admin, author
}

func TestArticleService_Create(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, author := newArticleFixture(t)

	content := `<p>hello world</p><script>alert("x")</script>` + imgTag("aaa")
	article, err := svc.Create(ctx, author, CreateArticleInput{
		Title:    "  First Post  ",
		Content:  content,
		Category: "  Culture ",
	})
	require.NoError(t, err)

	assert.Equal(t, "First Post", article.Title)
	assert.Equal(t, "culture", article.Category)
	assert.Equal(t, "1 min", article.TimeToRead)
	assert.EqualValues(t, 0, article.TimesViewed)
	assert.NotContains(t, article.Content, "<script")
	assert.Contains(t, article.Content, "karyawan-articles/aaa.png")
	require.NotNil(t, article.Author)
	assert.Equal(t, author.ID, article.Author.ID)
}

func TestArticleService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, author := newArticleFixture(t)

	tests := []struct {
		name string
		in   CreateArticleInput
	}{
		{name: "missing title", in: CreateArticleInput{Content: "x", Category: "c"}},
		{name: "missing content", in: CreateArticleInput{Title: "t", Category: "c"}},
		{name: "missing category", in: CreateArticleInput{Title: "t", Content: "x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, author, tt.in)

			var verr *apperr.ValidationError
			assert.ErrorAs(t, err, &verr)
		})
	}
}

func TestArticleService_View_IncrementsOnce(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, author := newArticleFixture(t)

	article, err := svc.Create(ctx, author, CreateArticleInput{Title: "t", Content: "c", Category: "c"})
	require.NoError(t, err)

	viewed, err := svc.View(ctx, article.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, viewed.TimesViewed)

	viewed, err = svc.View(ctx, article.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, viewed.TimesViewed)

	// Get does not count.
	got, err := svc.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, got.TimesViewed)
}

func TestArticleService_Update_OrphanCleanup(t *testing.T) {
	ctx := context.Background()
	svc, _, fm, admin, author := newArticleFixture(t)

	article, err := svc.Create(ctx, author, CreateArticleInput{
		Title:    "t",
		Content:  "<p>body</p>" + imgTag("aaa") + imgTag("bbb"),
		Category: "c",
	})
	require.NoError(t, err)

	newContent := "<p>new body</p>" + imgTag("bbb")
	updated, err := svc.Update(ctx, admin, article.ID, UpdateArticleInput{Content: &newContent})
	require.NoError(t, err)

	assert.Equal(t, []string{"karyawan-articles/aaa"}, fm.deleted)
	assert.Contains(t, updated.Content, "karyawan-articles/bbb.png")
	assert.NotContains(t, updated.Content, "karyawan-articles/aaa.png")
}

func TestArticleService_Update_OrphanCleanupFailureIsSwallowed(t *testing.T) {
	ctx := context.Background()
	svc, _, fm, admin, author := newArticleFixture(t)
	fm.failOn["karyawan-articles/aaa"] = fmt.Errorf("remote host unavailable")

	article, err := svc.Create(ctx, author, CreateArticleInput{
		Title:    "t",
		Content:  imgTag("aaa"),
		Category: "c",
	})
	require.NoError(t, err)

	newContent := "<p>no more images</p>"
	updated, err := svc.Update(ctx, admin, article.ID, UpdateArticleInput{Content: &newContent})
	require.NoError(t, err)
	assert.Equal(t, newContent, updated.Content)
	assert.Equal(t, []string{"karyawan-articles/aaa"}, fm.deleted)
}

func TestArticleService_Update_RecomputesReadTime(t *testing.T) {
	ctx := context.Background()
	svc, _, _, admin, author := newArticleFixture(t)

	article, err := svc.Create(ctx, author, CreateArticleInput{Title: "t", Content: "short", Category: "c"})
	require.NoError(t, err)
	assert.Equal(t, "1 min", article.TimeToRead)

	long := strings.Repeat("word ", 600)
	updated, err := svc.Update(ctx, admin, article.ID, UpdateArticleInput{Content: &long})
	require.NoError(t, err)
	assert.Equal(t, "2.5 mins", updated.TimeToRead)
}

func TestArticleService_Update_SrcSwapDeletesOldPrimary(t *testing.T) {
	ctx := context.Background()
	svc, _, fm, admin, author := newArticleFixture(t)

	oldSrc := "https://res.cloudinary.com/demo/image/upload/v1/karyawan-articles/cover.jpg"
	article, err := svc.Create(ctx, author, CreateArticleInput{
		Title:    "t",
		Content:  "c",
		Category: "c",
		Src:      &oldSrc,
	})
	require.NoError(t, err)

	newSrc := "https://res.cloudinary.com/demo/image/upload/v1/karyawan-articles/cover2.jpg"
	updated, err := svc.Update(ctx, admin, article.ID, UpdateArticleInput{Src: &newSrc})
	require.NoError(t, err)

	assert.Equal(t, []string{"karyawan-articles/cover"}, fm.deleted)
	require.NotNil(t, updated.Src)
	assert.Equal(t, newSrc, *updated.Src)
}

func TestArticleService_Update_EmptyPatch(t *testing.T) {
	ctx := context.Background()
	svc, _, fm, admin, author := newArticleFixture(t)

	article, err := svc.Create(ctx, author, CreateArticleInput{Title: "t", Content: "c", Category: "c"})
	require.NoError(t, err)

	_, err = svc.Update(ctx, admin, article.ID, UpdateArticleInput{})

	var verr *apperr.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Empty(t, fm.deleted)

	got, err := svc.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.UpdatedAt, got.UpdatedAt)
}

func TestArticleService_Update_Forbidden(t *testing.T) {
	ctx := context.Background()
	svc, _, fm, _, author := newArticleFixture(t)

	article, err := svc.Create(ctx, author, CreateArticleInput{Title: "t", Content: "c", Category: "c"})
	require.NoError(t, err)

	title := "hijacked"
	_, err = svc.Update(ctx, author, article.ID, UpdateArticleInput{Title: &title})

	var ferr *apperr.ForbiddenError
	require.ErrorAs(t, err, &ferr)
	assert.Empty(t, fm.deleted)

	got, err := svc.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "t", got.Title)
}

func TestArticleService_Update_NotFoundBeforeForbidden(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, author := newArticleFixture(t)

	title := "x"
	_, err := svc.Update(ctx, author, uuid.New(), UpdateArticleInput{Title: &title})

	var nferr *apperr.NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestArticleService_Delete_FansOutMediaAndAlwaysRemovesRecord(t *testing.T) {
	ctx := context.Background()
	svc, _, fm, admin, author := newArticleFixture(t)
	fm.failOn["karyawan-articles/xxx"] = fmt.Errorf("remote host unavailable")

	src := "https://res.cloudinary.com/demo/image/upload/v1/karyawan-articles/primary.jpg"
	article, err := svc.Create(ctx, author, CreateArticleInput{
		Title:    "t",
		Content:  imgTag("xxx") + imgTag("yyy"),
		Category: "c",
		Src:      &src,
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, admin, article.ID))

	assert.ElementsMatch(t, []string{
		"karyawan-articles/primary",
		"karyawan-articles/xxx",
		"karyawan-articles/yyy",
	}, fm.deleted)

	_, err = svc.Get(ctx, article.ID)
	var nferr *apperr.NotFoundError
	assert.ErrorAs(t, err, &nferr)
}

func TestArticleService_Delete_Forbidden(t *testing.T) {
	ctx := context.Background()
	svc, _, fm, _, author := newArticleFixture(t)

	article, err := svc.Create(ctx, author, CreateArticleInput{Title: "t", Content: "c", Category: "c"})
	require.NoError(t, err)

	err = svc.Delete(ctx, author, article.ID)

	var ferr *apperr.ForbiddenError
	require.ErrorAs(t, err, &ferr)
	assert.Empty(t, fm.deleted)

	_, err = svc.Get(ctx, article.ID)
	assert.NoError(t, err)
}

func TestArticleService_List_TypeFilterAndSort(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, author := newArticleFixture(t)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(ctx, author, CreateArticleInput{
			Title:    fmt.Sprintf("article %d", i),
			Content:  "c",
			Category: "news",
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(ctx, author, CreateArticleInput{
		Title:        "the video",
		Content:      "c",
		Category:     "news",
		VideoArticle: true,
	})
	require.NoError(t, err)

	res, err := svc.List(ctx, ListArticlesQuery{Type: "video"})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "the video", res.Items[0].Title)
	assert.EqualValues(t, 1, res.Meta.Total)

	res, err = svc.List(ctx, ListArticlesQuery{Sort: "title"})
	require.NoError(t, err)
	require.Len(t, res.Items, 4)
	assert.Equal(t, "article 0", res.Items[0].Title)

	_, err = svc.List(ctx, ListArticlesQuery{Type: "podcast"})
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestArticleService_Search_StoreFallback(t *testing.T) {
	ctx := context.Background()
	svc, _, _, _, author := newArticleFixture(t)

	_, err := svc.Create(ctx, author, CreateArticleInput{Title: "jazz in the city", Content: "c", Category: "music"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, author, CreateArticleInput{Title: "street food", Content: "c", Category: "food"})
	require.NoError(t, err)

	res, err := svc.Search(ctx, "jazz", pagination.OffsetRequest{})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "jazz in the city", res.Items[0].Title)

	_, err = svc.Search(ctx, "   ", pagination.OffsetRequest{})
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)
}
