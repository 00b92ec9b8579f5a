package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
)

func (s *Store) CreateBookmark(ctx context.Context, bookmark *domain.Bookmark) error {
	if bookmark.ID == uuid.Nil {
		bookmark.ID = uuid.New()
	}
	if bookmark.CreatedAt.IsZero() {
		bookmark.CreatedAt = time.Now()
	}

	cmd := `
		INSERT INTO bookmarks (id, article_id, user_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := s.db.Exec(ctx, cmd, bookmark.ID, bookmark.ArticleID, bookmark.UserID, bookmark.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return storage.ErrDuplicateBookmark
		}
		return fmt.Errorf("failed to insert bookmark: %w", err)
	}
	return nil
}

func (s *Store) ListBookmarksByUser(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error) {
	rows, err := s.db.Query(ctx, `
		SELECT b.id, b.article_id, b.user_id, b.created_at, a.title, a.content
		FROM bookmarks b
		JOIN articles a ON a.id = b.article_id
		WHERE b.user_id = $1
		ORDER BY b.created_at DESC
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var out []domain.Bookmark
	for rows.Next() {
		var b domain.Bookmark
		article := domain.BookmarkArticle{}
		if err := rows.Scan(&b.ID, &b.ArticleID, &b.UserID, &b.CreatedAt, &article.Title, &article.Content); err != nil {
			return nil, fmt.Errorf("failed to scan bookmark: %w", err)
		}
		article.ID = b.ArticleID
		b.Article = &article
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

func (s *Store) DeleteBookmark(ctx context.Context, id, userID uuid.UUID) error {
	tag, err := s.db.Exec(ctx, `DELETE FROM bookmarks WHERE id = $1 AND user_id = $2`, id, userID)
	if err != nil {
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
