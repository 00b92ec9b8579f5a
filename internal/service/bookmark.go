package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
)

type BookmarkService struct {
	store storage.Store
}

func NewBookmarkService(store storage.Store) *BookmarkService {
	return &BookmarkService{store: store}
}

func (s *BookmarkService) List(ctx context.Context, userID uuid.UUID) ([]domain.Bookmark, error) {
	return s.store.ListBookmarksByUser(ctx, userID)
}

func (s *BookmarkService) Create(ctx context.Context, userID, articleID uuid.UUID) (domain.Bookmark, error) {
	article, err := s.store.GetArticle(ctx, articleID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Bookmark{}, apperr.NewNotFound("article not found")
		}
		return domain.Bookmark{}, err
	}

	bookmark := domain.Bookmark{
		ArticleID: articleID,
		UserID:    userID,
	}
	if err := s.store.CreateBookmark(ctx, &bookmark); err != nil {
		if errors.Is(err, storage.ErrDuplicateBookmark) {
			return domain.Bookmark{}, apperr.NewConflict("article already bookmarked")
		}
		return domain.Bookmark{}, fmt.Errorf("failed to create bookmark: %w", err)
	}

	bookmark.Article = &domain.BookmarkArticle{
		ID:      article.ID,
		Title:   article.Title,
		Content: article.Content,
	}
	return bookmark, nil
}

func (s *BookmarkService) Delete(ctx context.Context, userID, id uuid.UUID) error {
	if err := s.store.DeleteBookmark(ctx, id, userID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NewNotFound("bookmark not found")
		}
		return fmt.Errorf("failed to delete bookmark: %w", err)
	}
	return nil
}
