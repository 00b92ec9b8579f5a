package pg

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/domain"
)

// Settings live in a single row with id 1; top picks are stored as JSONB.

func (s *Store) GetSettings(ctx context.Context) (domain.Settings, error) {
	var settings domain.Settings
	var picks []byte

	row := s.db.QueryRow(ctx, `SELECT featured_article_id, top_picks FROM settings WHERE id = 1`)
	if err := row.Scan(&settings.FeaturedArticleID, &picks); err != nil {
		return domain.Settings{}, translateErr(err)
	}
	if err := json.Unmarshal(picks, &settings.TopPicks); err != nil {
		return domain.Settings{}, fmt.Errorf("failed to decode top picks: %w", err)
	}
	if settings.TopPicks == nil {
		settings.TopPicks = []domain.TopPick{}
	}
	return settings, nil
}

func (s *Store) SetFeaturedArticle(ctx context.Context, articleID uuid.UUID) error {
	cmd := `
		INSERT INTO settings (id, featured_article_id) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET featured_article_id = EXCLUDED.featured_article_id
	`
	if _, err := s.db.Exec(ctx, cmd, articleID); err != nil {
		return fmt.Errorf("failed to set featured article: %w", err)
	}
	return nil
}

func (s *Store) SetTopPicks(ctx context.Context, picks []domain.TopPick) error {
	if picks == nil {
		picks = []domain.TopPick{}
	}
	encoded, err := json.Marshal(picks)
	if err != nil {
		return fmt.Errorf("failed to encode top picks: %w", err)
	}

	cmd := `
		INSERT INTO settings (id, top_picks) VALUES (1, $1)
		ON CONFLICT (id) DO UPDATE SET top_picks = EXCLUDED.top_picks
	`
	if _, err := s.db.Exec(ctx, cmd, encoded); err != nil {
		return fmt.Errorf("failed to set top picks: %w", err)
	}
	return nil
}
