package service

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/auth"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
)

const minPasswordLength = 6

// AccountService handles signup, login, and profile changes.
type AccountService struct {
	store storage.UserStore
	auth  *auth.Service
}

func NewAccountService(store storage.UserStore, authSvc *auth.Service) *AccountService {
	return &AccountService{store: store, auth: authSvc}
}

type SignupInput struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
}

func (s *AccountService) Signup(ctx context.Context, in SignupInput) (domain.User, string, error) {
	if strings.TrimSpace(in.FirstName) == "" || strings.TrimSpace(in.LastName) == "" {
		return domain.User{}, "", apperr.NewValidation("first and last name are required")
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return domain.User{}, "", apperr.NewValidation("a valid email is required")
	}
	if len(in.Password) < minPasswordLength {
		return domain.User{}, "", apperr.NewValidation("password must be at least 6 characters")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return domain.User{}, "", err
	}

	user := domain.User{
		FirstName:    strings.TrimSpace(in.FirstName),
		LastName:     strings.TrimSpace(in.LastName),
		Email:        strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash: hash,
	}
	if err := s.store.CreateUser(ctx, &user); err != nil {
		if errors.Is(err, storage.ErrDuplicateEmail) {
			return domain.User{}, "", apperr.NewConflict("email already registered")
		}
		return domain.User{}, "", fmt.Errorf("failed to create user: %w", err)
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *AccountService) Login(ctx context.Context, email, password string) (domain.User, string, error) {
	user, err := s.store.GetUserByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, "", apperr.NewUnauthorized("invalid credentials")
		}
		return domain.User{}, "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return domain.User{}, "", apperr.NewUnauthorized("invalid credentials")
	}

	token, err := s.auth.IssueToken(user)
	if err != nil {
		return domain.User{}, "", err
	}
	return user, token, nil
}

func (s *AccountService) UpdateName(ctx context.Context, userID uuid.UUID, firstName, lastName *string) (domain.User, error) {
	if firstName == nil && lastName == nil {
		return domain.User{}, apperr.NewValidation("no fields to update")
	}
	if firstName != nil && strings.TrimSpace(*firstName) == "" {
		return domain.User{}, apperr.NewValidation("first name cannot be empty")
	}
	if lastName != nil && strings.TrimSpace(*lastName) == "" {
		return domain.User{}, apperr.NewValidation("last name cannot be empty")
	}

	user, err := s.store.UpdateUserName(ctx, userID, firstName, lastName)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, apperr.NewNotFound("user not found")
		}
		return domain.User{}, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

func (s *AccountService) ChangePassword(ctx context.Context, userID uuid.UUID, current, next string) error {
	if len(next) < minPasswordLength {
		return apperr.NewValidation("password must be at least 6 characters")
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return apperr.NewNotFound("user not found")
		}
		return err
	}
	if !auth.CheckPassword(user.PasswordHash, current) {
		return apperr.NewUnauthorized("current password is incorrect")
	}

	hash, err := auth.HashPassword(next)
	if err != nil {
		return err
	}
	if err := s.store.UpdateUserPassword(ctx, userID, hash); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}
