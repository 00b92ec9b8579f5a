package pg

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
)

const articleColumns = `
	a.id, a.title, a.content, a.time_to_read, a.category, a.src,
	a.video_article, a.times_viewed, a.author_id, a.created_at, a.updated_at,
	u.first_name, u.last_name, u.email
`

const articleFrom = `FROM articles a JOIN users u ON u.id = a.author_id`

func scanArticle(row pgx.Row) (domain.Article, error) {
	var a domain.Article
	author := domain.Author{}

	if err := row.Scan(
		&a.ID,
		&a.Title,
		&a.Content,
		&a.TimeToRead,
		&a.Category,
		&a.Src,
		&a.VideoArticle,
		&a.TimesViewed,
		&a.AuthorID,
		&a.CreatedAt,
		&a.UpdatedAt,
		&author.FirstName,
		&author.LastName,
		&author.Email,
	); err != nil {
		return domain.Article{}, fmt.Errorf("failed to scan article: %w", err)
	}

	author.ID = a.AuthorID
	a.Author = &author
	return a, nil
}

func collectArticles(rows pgx.Rows) ([]domain.Article, error) {
	defer rows.Close()

	var out []domain.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

func (s *Store) CreateArticle(ctx context.Context, article *domain.Article) error {
	if article.ID == uuid.Nil {
		article.ID = uuid.New()
	}
	now := time.Now()
	if article.CreatedAt.IsZero() {
		article.CreatedAt = now
	}
	article.UpdatedAt = article.CreatedAt

	cmd := `
		INSERT INTO articles (id, title, content, time_to_read, category, src, video_article, times_viewed, author_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err := s.db.Exec(
		ctx,
		cmd,
		article.ID,
		article.Title,
		article.Content,
		article.TimeToRead,
		article.Category,
		article.Src,
		article.VideoArticle,
		article.TimesViewed,
		article.AuthorID,
		article.CreatedAt,
		article.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert article: %w", err)
	}
	return nil
}

func (s *Store) GetArticle(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	row := s.db.QueryRow(ctx, `SELECT `+articleColumns+articleFrom+` WHERE a.id = $1`, id)
	a, err := scanArticle(row)
	if err != nil {
		return domain.Article{}, translateErr(err)
	}
	return a, nil
}

func (s *Store) ViewArticle(ctx context.Context, id uuid.UUID) (domain.Article, error) {
	tag, err := s.db.Exec(ctx, `UPDATE articles SET times_viewed = times_viewed + 1 WHERE id = $1`, id)
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to increment views: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Article{}, storage.ErrNotFound
	}
	return s.GetArticle(ctx, id)
}

// sortColumns is the allow-list of sortable fields; anything else falls
// back to newest first.
var sortColumns = map[string]string{
	"title":      "a.title",
	"createdAt":  "a.created_at",
	"timeToRead": "a.time_to_read",
	"category":   "a.category",
}

func buildArticleFilter(f storage.ArticleFilter) (string, []any) {
	var clauses []string
	var args []any

	if f.Category != "" {
		args = append(args, f.Category)
		clauses = append(clauses, fmt.Sprintf("a.category = $%d", len(args)))
	}
	if f.AuthorID != nil {
		args = append(args, *f.AuthorID)
		clauses = append(clauses, fmt.Sprintf("a.author_id = $%d", len(args)))
	}
	if f.Title != "" {
		args = append(args, "%"+f.Title+"%")
		clauses = append(clauses, fmt.Sprintf("a.title ILIKE $%d", len(args)))
	}
	if f.Video != nil {
		args = append(args, *f.Video)
		clauses = append(clauses, fmt.Sprintf("a.video_article = $%d", len(args)))
	}

	if len(clauses) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(clauses, " AND "), args
}

func (s *Store) ListArticles(ctx context.Context, opts storage.ArticleListOpts) ([]domain.Article, int64, error) {
	where, args := buildArticleFilter(opts.Filter)

	var total int64
	countSQL := `SELECT COUNT(*) ` + articleFrom + where
	if err := s.db.QueryRow(ctx, countSQL, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	orderBy := "a.created_at DESC"
	if col, ok := sortColumns[opts.Sort.Field]; ok {
		dir := "ASC"
		if opts.Sort.Desc {
			dir = "DESC"
		}
		orderBy = col + " " + dir
	}

	args = append(args, opts.Limit, opts.Offset)
	listSQL := fmt.Sprintf(
		`SELECT %s %s%s ORDER BY %s LIMIT $%d OFFSET $%d`,
		articleColumns, articleFrom, where, orderBy, len(args)-1, len(args),
	)

	rows, err := s.db.Query(ctx, listSQL, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list articles: %w", err)
	}
	items, err := collectArticles(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func (s *Store) ListArticlesByAuthor(ctx context.Context, authorID uuid.UUID) ([]domain.Article, error) {
	rows, err := s.db.Query(
		ctx,
		`SELECT `+articleColumns+articleFrom+` WHERE a.author_id = $1 ORDER BY a.created_at DESC`,
		authorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list author articles: %w", err)
	}
	return collectArticles(rows)
}

func (s *Store) UpdateArticle(ctx context.Context, id uuid.UUID, patch domain.ArticlePatch) (domain.Article, error) {
	if patch.Empty() {
		return s.GetArticle(ctx, id)
	}

	var sets []string
	var args []any

	set := func(column string, value any) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if patch.Title != nil {
		set("title", *patch.Title)
	}
	if patch.Content != nil {
		set("content", *patch.Content)
	}
	if patch.TimeToRead != nil {
		set("time_to_read", *patch.TimeToRead)
	}
	if patch.Category != nil {
		set("category", *patch.Category)
	}
	if patch.Src != nil {
		set("src", *patch.Src)
	}
	if patch.VideoArticle != nil {
		set("video_article", *patch.VideoArticle)
	}
	set("updated_at", time.Now())

	args = append(args, id)
	cmd := fmt.Sprintf(`UPDATE articles SET %s WHERE id = $%d`, strings.Join(sets, ", "), len(args))

	tag, err := s.db.Exec(ctx, cmd, args...)
	if err != nil {
		return domain.Article{}, fmt.Errorf("failed to update article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.Article{}, storage.ErrNotFound
	}
	return s.GetArticle(ctx, id)
}

func (s *Store) DeleteArticle(ctx context.Context, id uuid.UUID) error {
	// Settings references are cleared first; comments and bookmarks go via
	// FK cascade with the record itself.
	_, err := s.db.Exec(ctx, `UPDATE settings SET featured_article_id = NULL WHERE featured_article_id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to clear featured reference: %w", err)
	}
	_, err = s.db.Exec(ctx, `
		UPDATE settings SET top_picks = COALESCE(
			(SELECT jsonb_agg(p) FROM jsonb_array_elements(top_picks) p WHERE p->>'articleId' <> $1),
			'[]'::jsonb
		)
	`, id.String())
	if err != nil {
		return fmt.Errorf("failed to clear top-pick reference: %w", err)
	}

	tag, err := s.db.Exec(ctx, `DELETE FROM articles WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete article: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func (s *Store) TrendingArticles(ctx context.Context, since time.Time) ([]domain.Article, error) {
	rows, err := s.db.Query(
		ctx,
		`SELECT `+articleColumns+articleFrom+`
		 WHERE a.updated_at >= $1 AND a.video_article = FALSE
		 ORDER BY a.times_viewed DESC`,
		since,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query trending articles: %w", err)
	}
	return collectArticles(rows)
}

func (s *Store) TopCategories(ctx context.Context, offset, limit int) ([]domain.CategoryArticles, error) {
	rows, err := s.db.Query(ctx, `
		SELECT category, COUNT(*)
		FROM articles
		WHERE video_article = FALSE
		GROUP BY category
		ORDER BY COUNT(*) DESC, category
		LIMIT 5
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query top categories: %w", err)
	}

	type bucket struct {
		category string
		count    int64
	}
	var buckets []bucket
	for rows.Next() {
		var b bucket
		if err := rows.Scan(&b.category, &b.count); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan category bucket: %w", err)
		}
		buckets = append(buckets, b)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	out := make([]domain.CategoryArticles, 0, len(buckets))
	for _, b := range buckets {
		articleRows, err := s.db.Query(
			ctx,
			`SELECT `+articleColumns+articleFrom+`
			 WHERE a.category = $1 AND a.video_article = FALSE
			 ORDER BY a.created_at DESC LIMIT $2 OFFSET $3`,
			b.category, limit, offset,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to query category articles: %w", err)
		}
		articles, err := collectArticles(articleRows)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.CategoryArticles{
			Category: b.category,
			Count:    b.count,
			Articles: articles,
		})
	}
	return out, nil
}

func (s *Store) AllCategories(ctx context.Context) ([]domain.CategorySummary, error) {
	rows, err := s.db.Query(ctx, `
		SELECT
			category,
			COUNT(*) FILTER (WHERE video_article = FALSE),
			COUNT(*) FILTER (WHERE video_article = TRUE),
			(array_agg(src) FILTER (WHERE src IS NOT NULL))[1]
		FROM articles
		GROUP BY category
		ORDER BY category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query categories: %w", err)
	}
	defer rows.Close()

	var out []domain.CategorySummary
	for rows.Next() {
		var c domain.CategorySummary
		if err := rows.Scan(&c.Category, &c.ArticleCount, &c.VideoCount, &c.Image); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		c.TotalCount = c.ArticleCount + c.VideoCount
		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}
	return out, nil
}

func (s *Store) SearchArticles(ctx context.Context, query string, offset, limit int) ([]domain.Article, int64, error) {
	var total int64
	countSQL := `
		SELECT COUNT(*)
		FROM articles
		WHERE search_vector @@ plainto_tsquery('english', $1)
	`
	if err := s.db.QueryRow(ctx, countSQL, query).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count search results: %w", err)
	}

	rows, err := s.db.Query(ctx, `
		SELECT `+articleColumns+articleFrom+`
		WHERE a.search_vector @@ plainto_tsquery('english', $1)
		ORDER BY ts_rank(a.search_vector, plainto_tsquery('english', $1)) DESC, a.id DESC
		LIMIT $2 OFFSET $3
	`, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to execute search query: %w", err)
	}
	items, err := collectArticles(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}
