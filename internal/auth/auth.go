// Package auth issues and verifies the bearer tokens protecting the API.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage"
	"golang.org/x/crypto/bcrypt"
)

const DefaultTokenTTL = 24 * time.Hour

type Service struct {
	users  storage.UserStore
	secret []byte
	ttl    time.Duration
}

func NewService(users storage.UserStore, secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Service{
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
	}
}

func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hash), nil
}

func CheckPassword(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

// IssueToken signs a token carrying the user's ID as subject.
func (s *Service) IssueToken(user domain.User) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Authenticate resolves an Authorization header value to the user it names.
func (s *Service) Authenticate(ctx context.Context, authorization string) (domain.User, error) {
	raw, ok := strings.CutPrefix(authorization, "Bearer ")
	if !ok || raw == "" {
		return domain.User{}, apperr.NewUnauthorized("missing bearer token")
	}

	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return domain.User{}, apperr.NewUnauthorizedWrap("invalid token", err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return domain.User{}, apperr.NewUnauthorized("invalid token subject")
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return domain.User{}, apperr.NewUnauthorized("unknown user")
		}
		return domain.User{}, fmt.Errorf("failed to load user: %w", err)
	}
	return user, nil
}
