// Package storage defines the document-store boundary the services depend
// on. Implementations: pg (primary), inmem (tests and local development).
package storage

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/domain"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateEmail    = errors.New("duplicate email")
	ErrDuplicateBookmark = errors.New("duplicate bookmark")
)

// ArticleFilter narrows an article list. Zero values mean "no constraint".
type ArticleFilter struct {
	Category string
	AuthorID *uuid.UUID
	// Title matches as a case-insensitive substring.
	Title string
	Video *bool
}

// ArticleSort orders an article list. Field must come from the service's
// allow-list; stores fall back to createdAt descending for anything else.
type ArticleSort struct {
	Field string
	Desc  bool
}

type ArticleListOpts struct {
	Filter ArticleFilter
	Sort   ArticleSort
	Offset int
	Limit  int
}

type ArticleStore interface {
	CreateArticle(ctx context.Context, article *domain.Article) error
	GetArticle(ctx context.Context, id uuid.UUID) (domain.Article, error)
	// ViewArticle returns the article after atomically incrementing its
	// view count by one.
	ViewArticle(ctx context.Context, id uuid.UUID) (domain.Article, error)
	ListArticles(ctx context.Context, opts ArticleListOpts) ([]domain.Article, int64, error)
	ListArticlesByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Article, error)
	// UpdateArticle persists only the patch's supplied fields and returns
	// the updated article.
	UpdateArticle(ctx context.Context, id uuid.UUID, patch domain.ArticlePatch) (domain.Article, error)
	// DeleteArticle removes the record and everything that references it:
	// comments, bookmarks, and settings entries.
	DeleteArticle(ctx context.Context, id uuid.UUID) error
	// TrendingArticles returns non-video articles updated since the given
	// time, most viewed first.
	TrendingArticles(ctx context.Context, since time.Time) ([]domain.Article, error)
	// TopCategories returns the five largest non-video categories by count,
	// each carrying the requested page slice of its articles.
	TopCategories(ctx context.Context, offset, limit int) ([]domain.CategoryArticles, error)
	AllCategories(ctx context.Context) ([]domain.CategorySummary, error)
	// SearchArticles is the substring fallback for full-text search over
	// title and content.
	SearchArticles(ctx context.Context, query string, offset, limit int) ([]domain.Article, int64, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id uuid.UUID) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	UpdateUserName(ctx context.Context, id uuid.UUID, firstName, lastName *string) (domain.User, error)
	UpdateUserPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	SetUserAdmin(ctx context.Context, id uuid.UUID, admin bool) (domain.User, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
}

type CommentStore interface {
	CreateComment(ctx context.Context, comment *domain.Comment) error
	GetComment(ctx context.Context, id uuid.UUID) (domain.Comment, error)
	// ListArticleComments returns top-level comments only, newest first.
	ListArticleComments(ctx context.Context, articleID uuid.UUID) ([]domain.Comment, error)
	// ListCommentReplies returns direct replies, oldest first.
	ListCommentReplies(ctx context.Context, parentID uuid.UUID) ([]domain.Comment, error)
	UpdateCommentContent(ctx context.Context, id uuid.UUID, content string) (domain.Comment, error)
	// DeleteCommentWithReplies removes the comment and its direct replies.
	// One level only: replies-to-replies keep their parent reference.
	DeleteCommentWithReplies(ctx context.Context, id uuid.UUID) error
}

type BookmarkStore interface {
	CreateBookmark(ctx context.Context, bookmark *domain.Bookmark) error
	ListBookmarksByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error)
	DeleteBookmark(ctx context.Context, id, userID uuid.UUID) error
}

type SettingsStore interface {
	// GetSettings returns ErrNotFound when no settings were ever written;
	// callers treat that as an empty configuration.
	GetSettings(ctx context.Context) (domain.Settings, error)
	SetFeaturedArticle(ctx context.Context, articleID uuid.UUID) error
	SetTopPicks(ctx context.Context, picks []domain.TopPick) error
}

type Store interface {
	ArticleStore
	UserStore
	CommentStore
	BookmarkStore
	SettingsStore
	Ping(ctx context.Context) error
	Close()
}
