// Package inmem is a map-backed Store used in tests and local development.
package inmem

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
)

type Store struct {
	mu        sync.RWMutex
	articles  map[uuid.UUID]domain.Article
	users     map[uuid.UUID]domain.User
	comments  map[uuid.UUID]domain.Comment
	bookmarks map[uuid.UUID]domain.Bookmark
	settings  *domain.Settings
}

func NewStore() *Store {
	return &Store{
		articles:  make(map[uuid.UUID]domain.Article),
		users:     make(map[uuid.UUID]domain.User),
		comments:  make(map[uuid.UUID]domain.Comment),
		bookmarks: make(map[uuid.UUID]domain.Bookmark),
	}
}

func (s *Store) Ping(ctx context.Context) error { return nil }

func (s *Store) Close() {}

// hydrate attaches the author projection. Callers hold at least a read lock.
func (s *Store) hydrate(a domain.Article) domain.Article {
	if u, ok := s.users[a.AuthorID]; ok {
		a.Author = u.AsAuthor()
	}
	return a
}

func (s *Store) CreateArticle(ctx context.Context, article *domain.Article) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	now := time.Now()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = article.CreatedAt
	s.articles[article.ID] = *article
	*article = s.hydrate(*article)
	return nil
}

func (s *Store) GetArticle(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.articles[id]
	if !ok {
		return domain.Article{}, storage.ErrNotFound
	}
	return s.hydrate(a), nil
}

func (s *Store) ViewArticle(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return domain.Article{}, storage.ErrNotFound
	}
	a.TimesViewed++
	s.articles[id] = a
	return s.hydrate(a), nil
}

func matchesFilter(a domain.Article, f storage.ArticleFilter) bool {
	if f.Category != "" && a.Category != f.Category {
		return false
	}
	if f.AuthorID != nil && a.AuthorID != *f.AuthorID {
		return false
	}
	if f.Title != "" && !strings.Contains(strings.ToLower(a.Title), strings.ToLower(f.Title)) {
		return false
	}
	if f.Video != nil && a.VideoArticle != *f.Video {
		return false
	}
	return true
}

func sortArticles(items []domain.Article, by storage.ArticleSort) {
	desc := by.Desc
	less := func(a, b domain.Article) bool { return a.CreatedAt.Before(b.CreatedAt) }
	switch by.Field {
	case "title":
		less = func(a, b domain.Article) bool { return a.Title < b.Title }
	case "timeToRead":
		less = func(a, b domain.Article) bool { return a.TimeToRead < b.TimeToRead }
	case "category":
		less = func(a, b domain.Article) bool { return a.Category < b.Category }
	case "createdAt":
	default:
		// Unrecognized fields fall back to createdAt descending, same as
		// the pg store.
		desc = true
	}
	sort.SliceStable(items, func(i, j int) bool {
		if desc {
			return less(items[j], items[i])
		}
		return less(items[i], items[j])
	})
}

func page(items []domain.Article, offset, limit int) []domain.Article {
	if offset >= len(items) {
		return nil
	}
	end := offset + limit
	if end > len(items) {
		end = len(items)
	}
	return items[offset:end]
}

func (s *Store) ListArticles(ctx context.Context, opts storage.ArticleListOpts) ([]domain.Article, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []domain.Article
	for _, a := range s.articles {
		if matchesFilter(a, opts.Filter) {
			matched = append(matched, s.hydrate(a))
		}
	}
	sortArticles(matched, opts.Sort)
	return page(matched, opts.Offset, opts.Limit), int64(len(matched)), nil
}

func (s *Store) ListArticlesByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Article
	for _, a := range s.articles {
		if a.AuthorID == authorID {
			out = append(out, s.hydrate(a))
		}
	}
	sortArticles(out, storage.ArticleSort{Field: "createdAt", Desc: true})
	return out, nil
}

func (s *Store) UpdateArticle(ctx context.Context, id uuid.UUID, patch domain.ArticlePatch) (domain.Article, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.articles[id]
	if !ok {
		return domain.Article{}, storage.ErrNotFound
	}
	if patch.Empty() {
		return s.hydrate(a), nil
	}
	if patch.Title != nil {
		a.Title = *patch.Title
	}
	if patch.Content != nil {
		a.Content = *patch.Content
	}
	if patch.TimeToRead != nil {
		a.TimeToRead = *patch.TimeToRead
	}
	if patch.Category != nil {
		a.Category = *patch.Category
	}
	if patch.Src != nil {
		src := *patch.Src
		a.Src = &src
	}
	if patch.VideoArticle != nil {
		a.VideoArticle = *patch.VideoArticle
	}
	a.UpdatedAt = time.Now()
	s.articles[id] = a
	return s.hydrate(a), nil
}

func (s *Store) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.articles[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.articles, id)

	for cid, c := range s.comments {
		if c.ArticleID == id {
			delete(s.comments, cid)
		}
	}
	for bid, b := range s.bookmarks {
		if b.ArticleID == id {
			delete(s.bookmarks, bid)
		}
	}
	if s.settings != nil {
		if s.settings.FeaturedArticleID != nil && *s.settings.FeaturedArticleID == id {
			s.settings.FeaturedArticleID = nil
		}
		var picks []domain.TopPick
		for _, p := range s.settings.TopPicks {
			if p.ArticleID != id {
				picks = append(picks, p)
			}
		}
		s.settings.TopPicks = picks
	}
	return nil
}

func (s *Store) TrendingArticles(ctx context.Context, since time.Time) ([]domain.Article, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Article
	for _, a := range s.articles {
		if !a.VideoArticle && !a.UpdatedAt.Before(since) {
			out = append(out, s.hydrate(a))
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].TimesViewed > out[j].TimesViewed
	})
	return out, nil
}

func (s *Store) TopCategories(ctx context.Context, offset, limit int) ([]domain.CategoryArticles, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byCategory := make(map[string][]domain.Article)
	for _, a := range s.articles {
		if !a.VideoArticle {
			byCategory[a.Category] = append(byCategory[a.Category], s.hydrate(a))
		}
	}

	categories := make([]string, 0, len(byCategory))
	for c := range byCategory {
		categories = append(categories, c)
	}
	sort.Slice(categories, func(i, j int) bool {
		ci, cj := len(byCategory[categories[i]]), len(byCategory[categories[j]])
		if ci != cj {
			return ci > cj
		}
		return categories[i] < categories[j]
	})
	if len(categories) > 5 {
		categories = categories[:5]
	}

	out := make([]domain.CategoryArticles, 0, len(categories))
	for _, c := range categories {
		articles := byCategory[c]
		sortArticles(articles, storage.ArticleSort{Field: "createdAt", Desc: true})
		out = append(out, domain.CategoryArticles{
			Category: c,
			Count:    int64(len(articles)),
			Articles: page(articles, offset, limit),
		})
	}
	return out, nil
}

func (s *Store) AllCategories(ctx context.Context) ([]domain.CategorySummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	summaries := make(map[string]*domain.CategorySummary)
	for _, a := range s.articles {
		sum, ok := summaries[a.Category]
		if !ok {
			sum = &domain.CategorySummary{Category: a.Category}
			summaries[a.Category] = sum
		}
		if a.VideoArticle {
			sum.VideoCount++
		} else {
			sum.ArticleCount++
		}
		sum.TotalCount++
		if sum.Image == nil && a.Src != nil {
			src := *a.Src
			sum.Image = &src
		}
	}

	out := make([]domain.CategorySummary, 0, len(summaries))
	for _, sum := range summaries {
		out = append(out, *sum)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Category < out[j].Category })
	return out, nil
}

func (s *Store) SearchArticles(ctx context.Context, query string, offset, limit int) ([]domain.Article, int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	q := strings.ToLower(query)
	var matched []domain.Article
	for _, a := range s.articles {
		if strings.Contains(strings.ToLower(a.Title), q) || strings.Contains(strings.ToLower(a.Content), q) {
			matched = append(matched, s.hydrate(a))
		}
	}
	sortArticles(matched, storage.ArticleSort{Field: "createdAt", Desc: true})
	return page(matched, offset, limit), int64(len(matched)), nil
}

func (s *Store) CreateUser(ctx context.Context, user *domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, user.Email) {
			return storage.ErrDuplicateEmail
		}
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if user.CreatedAt.IsZero() {
		user.CreatedAt = time.Now()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *Store) GetUser(ctx context.Context, id uuid.UUID) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, u := range s.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return domain.User{}, storage.ErrNotFound
}

func (s *Store) UpdateUserName(ctx context.Context, id uuid.UUID, firstName, lastName *string) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, storage.ErrNotFound
	}
	if firstName != nil {
		u.FirstName = *firstName
	}
	if lastName != nil {
		u.LastName = *lastName
	}
	s.users[id] = u
	return u, nil
}

func (s *Store) UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.PasswordHash = passwordHash
	s.users[id] = u
	return nil
}

func (s *Store) SetUserAdmin(ctx context.Context, id uuid.UUID, admin bool) (domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return domain.User{}, storage.ErrNotFound
	}
	u.Admin = admin
	s.users[id] = u
	return u, nil
}

// SetUserSuperAdmin flips the super-admin flag. Not part of the storage
// interface: super admins are provisioned out of band.
func (s *Store) SetUserSuperAdmin(ctx context.Context, id uuid.UUID, super bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return storage.ErrNotFound
	}
	u.SuperAdmin = super
	s.users[id] = u
	return nil
}

func (s *Store) ListUsers(ctx context.Context) ([]domain.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = comment.CreatedAt
	s.comments[comment.ID] = *comment
	if u, ok := s.users[comment.AuthorID]; ok {
		comment.Author = u.AsAuthor()
	}
	return nil
}

func (s *Store) GetComment(ctx context.Context, id uuid.UUID) (domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.comments[id]
	if !ok {
		return domain.Comment{}, storage.ErrNotFound
	}
	return s.hydrateComment(c), nil
}

func (s *Store) hydrateComment(c domain.Comment) domain.Comment {
	if u, ok := s.users[c.AuthorID]; ok {
		c.Author = u.AsAuthor()
	}
	return c
}

func (s *Store) ListArticleComments(ctx context.Context, articleID uuid.UUID) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Comment
	for _, c := range s.comments {
		if c.ArticleID == articleID && c.ParentID == nil {
			out = append(out, s.hydrateComment(c))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) ListCommentReplies(ctx context.Context, parentID uuid.UUID) ([]domain.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Comment
	for _, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == parentID {
			out = append(out, s.hydrateComment(c))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) UpdateCommentContent(ctx context.Context, id uuid.UUID, content string) (domain.Comment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, ok := s.comments[id]
	if !ok {
		return domain.Comment{}, storage.ErrNotFound
	}
	c.Content = content
	c.UpdatedAt = time.Now()
	s.comments[id] = c
	return s.hydrateComment(c), nil
}

func (s *Store) DeleteCommentWithReplies(ctx context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.comments, id)
	for cid, c := range s.comments {
		if c.ParentID != nil && *c.ParentID == id {
			delete(s.comments, cid)
		}
	}
	return nil
}

func (s *Store) CreateBookmark(ctx context.Context, bookmark *domain.Bookmark) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range s.bookmarks {
		if b.ArticleID == bookmark.ArticleID && b.UserID == bookmark.UserID {
			return storage.ErrDuplicateBookmark
		}
	}
	if bookmark.ID == uuid.Nil {
		bookmark.ID = uuid.New()
	}
	if bookmark.CreatedAt.IsZero() {
		bookmark.CreatedAt = time.Now()
	}
	s.bookmarks[bookmark.ID] = *bookmark
	return nil
}

func (s *Store) ListBookmarksByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []domain.Bookmark
	for _, b := range s.bookmarks {
		if b.UserID != userID {
			continue
		}
		if a, ok := s.articles[b.ArticleID]; ok {
			b.Article = &domain.BookmarkArticle{ID: a.ID, Title: a.Title, Content: a.Content}
		}
		out = append(out, b)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (s *Store) DeleteBookmark(ctx context.Context, id, userID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	b, ok := s.bookmarks[id]
	if !ok || b.UserID != userID {
		return storage.ErrNotFound
	}
	delete(s.bookmarks, id)
	return nil
}

func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.settings == nil {
		return domain.Settings{}, storage.ErrNotFound
	}
	return *s.settings, nil
}

func (s *Store) SetFeaturedArticle(ctx context.Context, articleID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		s.settings = &domain.Settings{}
	}
	s.settings.FeaturedArticleID = &articleID
	return nil
}

func (s *Store) SetTopPicks(ctx context.Context, picks []domain.TopPick) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.settings == nil {
		s.settings = &domain.Settings{}
	}
	s.settings.TopPicks = picks
	return nil
}

var _ storage.Store = (*Store)(nil)
