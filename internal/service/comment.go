package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
)

type CommentService struct {
	store storage.Store
}

func NewCommentService(store storage.Store) *CommentService {
	return &CommentService{store: store}
}

func (s *CommentService) ListForArticle(ctx context.Context, articleID uuid.UUID) ([]domain.Comment, error) {
	return s.store.ListArticleComments(ctx, articleID)
}

func (s *CommentService) ListReplies(ctx context.Context, commentID uuid.UUID) ([]domain.Comment, error) {
	return s.store.ListCommentReplies(ctx, commentID)
}

func (s *CommentService) Create(ctx context.Context, actor domain.User, articleID uuid.UUID, content string, parentID *uuid.UUID) (domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Comment{}, apperr.NewValidation("content is required")
	}

	if _, err := s.store.GetArticle(ctx, articleID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Comment{}, apperr.NewNotFound("article not found")
		}
		return domain.Comment{}, err
	}

	if parentID != nil {
		parent, err := s.store.GetComment(ctx, *parentID)
		if err != nil {
			if errors.Is(err, storage.ErrNotFound) {
				return domain.Comment{}, apperr.NewNotFound("parent comment not found")
			}
			return domain.Comment{}, err
		}
		if parent.ArticleID != articleID {
			return domain.Comment{}, apperr.NewValidation("parent comment belongs to a different article")
		}
	}

	comment := domain.Comment{
		Content:   strings.TrimSpace(content),
		ArticleID: articleID,
		AuthorID:  actor.ID,
		ParentID:  parentID,
	}
	if err := s.store.CreateComment(ctx, &comment); err != nil {
		return domain.Comment{}, fmt.Errorf("failed to create comment: %w", err)
	}
	comment.Author = actor.AsAuthor()
	return comment, nil
}

func (s *CommentService) UpdateContent(ctx context.Context, actor domain.User, commentID uuid.UUID, content string) (domain.Comment, error) {
	if strings.TrimSpace(content) == "" {
		return domain.Comment{}, apperr.NewValidation("content is required")
	}

	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.Comment{}, apperr.NewNotFound("comment not found")
		}
		return domain.Comment{}, err
	}
	if comment.AuthorID != actor.ID {
		return domain.Comment{}, apperr.NewForbidden("only the author can edit a comment")
	}

	updated, err := s.store.UpdateCommentContent(ctx, commentID, strings.TrimSpace(content))
	if err != nil {
		return domain.Comment{}, fmt.Errorf("failed to update comment: %w", err)
	}
	return updated, nil
}

func (s *CommentService) Delete(ctx context.Context, actor domain.User, commentID uuid.UUID) error {
	comment, err := s.store.GetComment(ctx, commentID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NewNotFound("comment not found")
		}
		return err
	}
	if comment.AuthorID != actor.ID {
		return apperr.NewForbidden("only the author can delete a comment")
	}

	if err := s.store.DeleteCommentWithReplies(ctx, commentID); err != nil {
		return fmt.Errorf("failed to delete comment: %w", err)
	}
	return nil
}
