package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
)

// SettingsService manages the editorial configuration and the super-admin
// user administration surface.
type SettingsService struct {
	store storage.Store
}

func NewSettingsService(store storage.Store) *SettingsService {
	return &SettingsService{store: store}
}

// FeaturedArticle returns the featured article, or nil when nothing is
// featured yet.
func (s *SettingsService) FeaturedArticle(ctx context.Context) (*domain.Article, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if settings.FeaturedArticleID == nil {
		return nil, nil
	}

	article, err := s.store.GetArticle(ctx, *settings.FeaturedArticleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			slog.Warn("featured article missing from store", "id", *settings.FeaturedArticleID)
			return nil, nil
		}
		return nil, err
	}
	return &article, nil
}

// TopPickArticles returns the configured top picks in display order.
// Dangling references are skipped.
func (s *SettingsService) TopPickArticles(ctx context.Context) ([]domain.Article, error) {
	settings, err := s.store.GetSettings(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return []domain.Article{}, nil
		}
		return nil, err
	}

	picks := make([]domain.TopPick, len(settings.TopPicks))
	copy(picks, settings.TopPicks)
	sort.SliceStable(picks, func(i, j int) bool {
		return picks[i].DisplayOrder < picks[j].DisplayOrder
	})

	articles := make([]domain.Article, 0, len(picks))
	for _, pick := range picks {
		article, err := s.store.GetArticle(ctx, pick.ArticleID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				slog.Warn("top pick missing from store", "id", pick.ArticleID)
				continue
			}
			return nil, err
		}
		articles = append(articles, article)
	}
	return articles, nil
}

func (s *SettingsService) SetFeaturedArticle(ctx context.Context, articleID uuid.UUID) error {
	if _, err := s.store.GetArticle(ctx, articleID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NewNotFound("article not found")
		}
		return err
	}
	if err := s.store.SetFeaturedArticle(ctx, articleID); err != nil {
		return fmt.Errorf("failed to set featured article: %w", err)
	}
	return nil
}

// SetTopPicks replaces the top-pick list. Display orders default to the
// 1-based list position when not supplied.
func (s *SettingsService) SetTopPicks(ctx context.Context, articleIDs []uuid.UUID, displayOrders []int) error {
	if len(articleIDs) == 0 {
		return apperr.NewValidation("at least one article is required")
	}
	if len(displayOrders) > 0 && len(displayOrders) != len(articleIDs) {
		return apperr.NewValidation("displayOrders must match articleIds in length")
	}

	picks := make([]domain.TopPick, len(articleIDs))
	for i, id := range articleIDs {
		if _, err := s.store.GetArticle(ctx, id); err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return apperr.NewNotFound("article not found")
			}
			return err
		}
		order := i + 1
		if len(displayOrders) > 0 {
			order = displayOrders[i]
		}
		picks[i] = domain.TopPick{ArticleID: id, DisplayOrder: order}
	}

	if err := s.store.SetTopPicks(ctx, picks); err != nil {
		return fmt.Errorf("failed to set top picks: %w", err)
	}
	return nil
}

func (s *SettingsService) Users(ctx context.Context) ([]domain.User, error) {
	return s.store.ListUsers(ctx)
}

func (s *SettingsService) SetUserAdmin(ctx context.Context, userID uuid.UUID, admin bool) (domain.User, error) {
	user, err := s.store.SetUserAdmin(ctx, userID, admin)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, apperr.NewNotFound("user not found")
		}
		return domain.User{}, fmt.Errorf("failed to update admin flag: %w", err)
	}
	return user, nil
}
