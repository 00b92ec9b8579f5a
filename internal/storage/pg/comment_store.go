package pg

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
)

const commentColumns = `
	c.id, c.content, c.article_id, c.author_id, c.parent_id, c.created_at, c.updated_at,
	u.first_name, u.last_name, u.email
`

const commentFrom = `FROM comments c JOIN users u ON u.id = c.author_id`

func scanComment(row pgx.Row) (domain.Comment, error) {
	var c domain.Comment
	author := domain.Author{}

	if err := row.Scan(
		&c.ID,
		&c.Content,
		&c.ArticleID,
		&c.AuthorID,
		&c.ParentID,
		&c.CreatedAt,
		&c.UpdatedAt,
		&author.FirstName,
		&author.LastName,
		&author.Email,
	); err != nil {
		return domain.Comment{}, fmt.Errorf("failed to scan comment: %w", err)
	}

	author.ID = c.AuthorID
	c.Author = &author
	return c, nil
}

func collectComments(rows pgx.Rows) ([]domain.Comment, error) {
	defer rows.Close()

	var out []domain.Comment
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

func (s *Store) CreateComment(ctx context.Context, comment *domain.Comment) error {
	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	now := time.Now()
	if comment.CreatedAt.IsZero() {
		comment.CreatedAt = now
	}
	comment.UpdatedAt = comment.CreatedAt

	cmd := `
		INSERT INTO comments (id, content, article_id, author_id, parent_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.Exec(
		ctx,
		cmd,
		comment.ID,
		comment.Content,
		comment.ArticleID,
		comment.AuthorID,
		comment.ParentID,
		comment.CreatedAt,
		comment.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert comment: %w", err)
	}
	return nil
}

func (s *Store) GetComment(ctx context.Context, id uuid.UUID) (domain.Comment, error) {
	row := s.db.QueryRow(ctx, `SELECT `+commentColumns+commentFrom+` WHERE c.id = $1`, id)
	c, err := scanComment(row)
	if err != nil {
		return domain.Comment{}, translateErr(err)
	}
	return c, nil
}

func (s *Store) ListArticleComments(ctx context.Context, articleID uuid.UUID) ([]domain.Comment, error) {
	rows, err := s.db.Query(
		ctx,
		`SELECT `+commentColumns+commentFrom+`
		 WHERE c.article_id = $1 AND c.parent_id IS NULL
		 ORDER BY c.created_at DESC`,
		articleID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}
	return collectComments(rows)
}

func (s *Store) ListCommentReplies(ctx context.Context, parentID uuid.UUID) ([]domain.Comment, error) {
	rows, err := s.db.Query(
		ctx,
		`SELECT `+commentColumns+commentFrom+`
		 WHERE c.parent_id = $1
		 ORDER BY c.created_at ASC`,
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list replies: %w", err)
	}
	return collectComments(rows)
}

func (s *Store) UpdateCommentContent(ctx context.Context, id uuid.UUID, content string) (domain.Comment, error) {
	tag, err := s.db.Exec(
		ctx,
		`UPDATE comments SET content = $1, updated_at = $2 WHERE id = $3`,
		content, time.Now(), id,
	)
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to update comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Comment{}, storage.ErrNotFound
	}
	return s.GetComment(ctx, id)
}

func (s *Store) DeleteCommentWithReplies(ctx context.Context, id uuid.UUID) error {
	// Direct replies only; deeper descendants keep their parent reference.
	if _, err := s.db.Exec(ctx, `DELETE FROM comments WHERE parent_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete replies: %w", err)
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}
