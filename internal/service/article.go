// Package service holds the orchestration layer between the HTTP routers
// and the storage, media, and search backends.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/media"
	"github.com/karyawanmag/content-api/internal/readtime"
	"github.com/karyawanmag/content-api/internal/sanitize"
	"github.com/karyawanmag/content-api/internal/storage"
	"github.com/karyawanmag/content-api/pkg/pagination"
)

const DefaultTrendingWindow = 7 * 24 * time.Hour

// ArticleIndexer mirrors the search index after writes. Indexing is
// best-effort: failures are logged, never surfaced to the caller.
type ArticleIndexer interface {
	IndexArticle(ctx context.Context, article domain.Article) error
	RemoveArticle(ctx context.Context, id uuid.UUID) error
}

// ArticleSearcher answers full-text queries with ranked article IDs.
type ArticleSearcher interface {
	Search(ctx context.Context, query string, offset, limit int) ([]uuid.UUID, int64, error)
}

type ArticleService struct {
	store     storage.Store
	media     media.Store
	extractor *media.Extractor
	// nil indexer/searcher disables the search index; Search falls back to
	// the store's substring query.
	indexer     ArticleIndexer
	searcher    ArticleSearcher
	mediaDomain string
}

func NewArticleService(store storage.Store, mediaStore media.Store, opts ...ArticleOption) *ArticleService {
	s := &ArticleService{
		store:       store,
		media:       mediaStore,
		mediaDomain: media.DefaultDomain,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.extractor = media.NewExtractor(s.mediaDomain)
	return s
}

type ArticleOption func(*ArticleService)

func WithSearchIndex(indexer ArticleIndexer, searcher ArticleSearcher) ArticleOption {
	return func(s *ArticleService) {
		s.indexer = indexer
		s.searcher = searcher
	}
}

func WithMediaDomain(domain string) ArticleOption {
	return func(s *ArticleService) {
		s.mediaDomain = domain
	}
}

type CreateArticleInput struct {
	Title        string
	Content      string
	Category     string
	Src          *string
	VideoArticle bool
}

func (s *ArticleService) Create(ctx context.Context, author domain.User, in CreateArticleInput) (domain.Article, error) {
	if strings.TrimSpace(in.Title) == "" {
		return domain.Article{}, apperr.NewValidation("title is required")
	}
	if strings.TrimSpace(in.Content) == "" {
		return domain.Article{}, apperr.NewValidation("content is required")
	}
	if strings.TrimSpace(in.Category) == "" {
		return domain.Article{}, apperr.NewValidation("category is required")
	}

	content := sanitize.HTML(in.Content, s.mediaDomain)

	article := domain.Article{
		Title:        strings.TrimSpace(in.Title),
		Content:      content,
		TimeToRead:   readtime.Estimate(content),
		Category:     strings.ToLower(strings.TrimSpace(in.Category)),
		Src:          in.Src,
		VideoArticle: in.VideoArticle,
		AuthorID:     author.ID,
	}

	if err := s.store.CreateArticle(ctx, &article); err != nil {
		return domain.Article{}, fmt.Errorf("failed to create article: %w", err)
	}
	article.Author = author.AsAuthor()

	s.indexArticle(ctx, article)
	return article, nil
}

// Get fetches an article without touching its view count.
func (s *ArticleService) Get(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	article, err := s.store.GetArticle(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Article{}, apperr.NewNotFoundWrap("article not found", err)
		}
		return domain.Article{}, err
	}
	return article, nil
}

// View fetches an article for display, counting the view.
func (s *ArticleService) View(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	article, err := s.store.ViewArticle(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Article{}, apperr.NewNotFoundWrap("article not found", err)
		}
		return domain.Article{}, err
	}
	return article, nil
}

type ListArticlesQuery struct {
	Category string
	AuthorID *uuid.UUID
	Title    string
	// Type filters by kind: "video", "article", or empty for both.
	Type string
	// Sort is a field from the allow-list, with a leading '-' for
	// descending. Anything else falls back to newest first.
	Sort  string
	Page  pagination.OffsetRequest
}

func (s *ArticleService) List(ctx context.Context, q ListArticlesQuery) (pagination.OffsetResult[domain.Article], error) {
	page := q.Page
	page.Validate()

	filter := storage.ArticleFilter{
		Category: strings.ToLower(strings.TrimSpace(q.Category)),
		AuthorID: q.AuthorID,
		Title:    strings.TrimSpace(q.Title),
	}
	switch q.Type {
	case "video":
		video := true
		filter.Video = &video
	case "article":
		video := false
		filter.Video = &video
	case "":
	default:
		return pagination.OffsetResult[domain.Article]{}, apperr.NewValidation("type must be 'video' or 'article'")
	}

	items, total, err := s.store.ListArticles(ctx, storage.ArticleListOpts{
		Filter: filter,
		Sort:   parseSort(q.Sort),
		Offset: page.Offset(),
		Limit:  page.Limit,
	})
	if err != nil {
		return pagination.OffsetResult[domain.Article]{}, fmt.Errorf("failed to list articles: %w", err)
	}

	return pagination.NewOffsetResult(items, total, page.Page, page.Limit), nil
}

func parseSort(sort string) storage.ArticleSort {
	field, desc := strings.TrimSpace(sort), false
	if strings.HasPrefix(field, "-") {
		field, desc = field[1:], true
	}
	if field == "" {
		return storage.ArticleSort{Field: "createdAt", Desc: true}
	}
	return storage.ArticleSort{Field: field, Desc: desc}
}

func (s *ArticleService) Mine(ctx context.Context, authorID uuid.UUID) ([]domain.Article, error) {
	return s.store.ListArticlesByAuthor(ctx, authorID)
}

func (s *ArticleService) Trending(ctx context.Context, window time.Duration) ([]domain.Article, error) {
	if window <= 0 {
		window = DefaultTrendingWindow
	}
	return s.store.TrendingArticles(ctx, time.Now().Add(-window))
}

func (s *ArticleService) TopCategories(ctx context.Context, page pagination.OffsetRequest) ([]domain.CategoryArticles, error) {
	page.Validate()
	return s.store.TopCategories(ctx, page.Offset(), page.Limit)
}

func (s *ArticleService) AllCategories(ctx context.Context) ([]domain.CategorySummary, error) {
	return s.store.AllCategories(ctx)
}

func (s *ArticleService) Search(ctx context.Context, query string, page pagination.OffsetRequest) (pagination.OffsetResult[domain.Article], error) {
	if strings.TrimSpace(query) == "" {
		return pagination.OffsetResult[domain.Article]{}, apperr.NewValidation("search query is required")
	}
	page.Validate()

	if s.searcher == nil {
		items, total, err := s.store.SearchArticles(ctx, query, page.Offset(), page.Limit)
		if err != nil {
			return pagination.OffsetResult[domain.Article]{}, fmt.Errorf("failed to search articles: %w", err)
		}
		return pagination.NewOffsetResult(items, total, page.Page, page.Limit), nil
	}

	ids, total, err := s.searcher.Search(ctx, query, page.Offset(), page.Limit)
	if err != nil {
		return pagination.OffsetResult[domain.Article]{}, fmt.Errorf("failed to search articles: %w", err)
	}

	// Hydrate from the store; index entries may lag behind deletions.
	items := make([]domain.Article, 0, len(ids))
	for _, id := range ids {
		article, err := s.store.GetArticle(ctx, id)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				slog.Warn("search hit missing from store", "id", id)
				continue
			}
			return pagination.OffsetResult[domain.Article]{}, err
		}
		items = append(items, article)
	}

	return pagination.NewOffsetResult(items, total, page.Page, page.Limit), nil
}

type UpdateArticleInput struct {
	Title        *string
	Content      *string
	Category     *string
	Src          *string
	VideoArticle *bool
}

func (in UpdateArticleInput) empty() bool {
	return in.Title == nil &&
		in.Content == nil &&
		in.Category == nil &&
		in.Src == nil &&
		in.VideoArticle == nil
}

func (s *ArticleService) Update(ctx context.Context, actor domain.User, id uuid.UUID, in UpdateArticleInput) (domain.Article, error) {
	existing, err := s.store.GetArticle(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Article{}, apperr.NewNotFound("article not found")
		}
		return domain.Article{}, err
	}
	if !actor.Admin && !actor.SuperAdmin {
		return domain.Article{}, apperr.NewForbidden("only admins can update articles")
	}
	if in.empty() {
		return domain.Article{}, apperr.NewValidation("no fields to update")
	}

	patch := domain.ArticlePatch{
		Title:        in.Title,
		Src:          in.Src,
		VideoArticle: in.VideoArticle,
	}
	if in.Category != nil {
		category := strings.ToLower(strings.TrimSpace(*in.Category))
		patch.Category = &category
	}

	if in.Content != nil {
		content := sanitize.HTML(*in.Content, s.mediaDomain)
		patch.Content = &content

		ttr := readtime.Estimate(content)
		patch.TimeToRead = &ttr

		s.deleteMedia(ctx, s.orphanTargets(existing.Content, content))
	}

	if in.Src != nil && existing.Src != nil && *in.Src != *existing.Src {
		if target, ok := s.primaryTarget(existing); ok {
			s.deleteMedia(ctx, []deleteTarget{target})
		}
	}

	updated, err := s.store.UpdateArticle(ctx, id, patch)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Article{}, apperr.NewNotFound("article not found")
		}
		return domain.Article{}, fmt.Errorf("failed to update article: %w", err)
	}

	s.indexArticle(ctx, updated)
	return updated, nil
}

func (s *ArticleService) Delete(ctx context.Context, actor domain.User, id uuid.UUID) error {
	existing, err := s.store.GetArticle(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NewNotFound("article not found")
		}
		return err
	}
	if !actor.Admin && !actor.SuperAdmin {
		return apperr.NewForbidden("only admins can delete articles")
	}

	var targets []deleteTarget
	if target, ok := s.primaryTarget(existing); ok {
		targets = append(targets, target)
	}
	for _, ref := range s.extractor.Refs(existing.Content) {
		if publicID := s.extractor.PublicID(ref); publicID != "" {
			targets = append(targets, deleteTarget{publicID: publicID, resource: media.ResourceImage})
		}
	}
	s.deleteMedia(ctx, targets)

	if err := s.store.DeleteArticle(ctx, id); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NewNotFound("article not found")
		}
		return fmt.Errorf("failed to delete article: %w", err)
	}

	if s.indexer != nil {
		if err := s.indexer.RemoveArticle(ctx, id); err != nil {
			slog.Error("failed to remove article from search index", "id", id, "error", err)
		}
	}
	return nil
}

// UploadMedia pushes a file to the media host and returns its public URL.
func (s *ArticleService) UploadMedia(ctx context.Context, file io.Reader, filename string) (media.Upload, error) {
	upload, err := s.media.Upload(ctx, file, filename, media.UploadOpts{
		Folder:   media.DefaultFolder,
		Resource: media.ResourceType(filename, nil),
	})
	if err != nil {
		return media.Upload{}, fmt.Errorf("failed to upload media: %w", err)
	}
	return upload, nil
}

type deleteTarget struct {
	publicID string
	resource media.Resource
}

// primaryTarget resolves the article's primary media reference, if any.
func (s *ArticleService) primaryTarget(article domain.Article) (deleteTarget, bool) {
	if article.Src == nil || *article.Src == "" {
		return deleteTarget{}, false
	}
	publicID := s.extractor.PublicID(*article.Src)
	if publicID == "" {
		return deleteTarget{}, false
	}
	return deleteTarget{
		publicID: publicID,
		resource: media.ResourceType(*article.Src, &article.VideoArticle),
	}, true
}

// orphanTargets resolves the refs embedded in oldContent but absent from
// newContent. Each distinct orphan is deleted once.
func (s *ArticleService) orphanTargets(oldContent, newContent string) []deleteTarget {
	kept := make(map[string]struct{})
	for _, ref := range s.extractor.Refs(newContent) {
		kept[ref] = struct{}{}
	}

	seen := make(map[string]struct{})
	var targets []deleteTarget
	for _, ref := range s.extractor.Refs(oldContent) {
		if _, ok := kept[ref]; ok {
			continue
		}
		publicID := s.extractor.PublicID(ref)
		if publicID == "" {
			continue
		}
		if _, ok := seen[publicID]; ok {
			continue
		}
		seen[publicID] = struct{}{}
		targets = append(targets, deleteTarget{publicID: publicID, resource: media.ResourceImage})
	}
	return targets
}

// deleteMedia fans deletions out and waits for all of them to settle.
// Failures are logged and swallowed: the content change always proceeds.
func (s *ArticleService) deleteMedia(ctx context.Context, targets []deleteTarget) {
	if len(targets) == 0 {
		return
	}

	results := make([]media.DeleteResult, len(targets))
	var wg sync.WaitGroup
	for i, target := range targets {
		wg.Add(1)
		go func(i int, target deleteTarget) {
			defer wg.Done()
			err := s.media.Delete(ctx, target.publicID, target.resource)
			results[i] = media.DeleteResult{
				PublicID: target.publicID,
				Resource: target.resource,
				Err:      err,
			}
		}(i, target)
	}
	wg.Wait()

	for _, res := range results {
		if res.Err != nil {
			slog.Error("failed to delete media", "public_id", res.PublicID, "resource", res.Resource, "error", res.Err)
			continue
		}
		slog.Debug("media deleted", "public_id", res.PublicID, "resource", res.Resource)
	}
}

func (s *ArticleService) indexArticle(ctx context.Context, article domain.Article) {
	if s.indexer == nil {
		return
	}
	if err := s.indexer.IndexArticle(ctx, article); err != nil {
		slog.Error("failed to index article", "id", article.ID, "error", err)
	}
}
