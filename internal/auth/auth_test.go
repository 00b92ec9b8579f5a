package auth

import (
	"context"
	"testing"
	"time"

	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHashPassword_Roundtrip(t *testing.T) {
	hash, err := HashPassword("s3cret-pass")
	require.NoError(t, err)
	assert.NotEqual(t, "s3cret-pass", hash)

	assert.True(t, CheckPassword(hash, "s3cret-pass"))
	assert.False(t, CheckPassword(hash, "wrong-pass"))
}

func TestService_IssueAndAuthenticate(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	svc := NewService(store, "test-secret", time.Hour)

	user := domain.User{FirstName: "Ana", LastName: "Petrova", Email: "ana@example.com"}
	require.NoError(t, store.CreateUser(ctx, &user))

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, "Bearer "+token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, got.ID)
	assert.Equal(t, user.Email, got.Email)
}

func TestService_Authenticate_Rejections(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	svc := NewService(store, "test-secret", time.Hour)

	user := domain.User{Email: "ana@example.com"}
	require.NoError(t, store.CreateUser(ctx, &user))

	goodToken, err := svc.IssueToken(user)
	require.NoError(t, err)

	otherSvc := NewService(store, "other-secret", time.Hour)
	foreignToken, err := otherSvc.IssueToken(user)
	require.NoError(t, err)

	tests := []struct {
		name   string
		header string
	}{
		{name: "empty header", header: ""},
		{name: "no bearer prefix", header: goodToken},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.token"},
		{name: "wrong secret", header: "Bearer " + foreignToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authenticate(ctx, tt.header)
			require.Error(t, err)

			var unauthorized *apperr.UnauthorizedError
			assert.ErrorAs(t, err, &unauthorized)
		})
	}
}

func TestService_Authenticate_UnknownUser(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	svc := NewService(store, "test-secret", time.Hour)

	ghost := domain.User{Email: "ghost@example.com"}
	require.NoError(t, store.CreateUser(ctx, &ghost))
	token, err := svc.IssueToken(ghost)
	require.NoError(t, err)

	empty := inmem.NewStore()
	emptySvc := NewService(empty, "test-secret", time.Hour)

	_, err = emptySvc.Authenticate(ctx, "Bearer "+token)
	require.Error(t, err)

	var unauthorized *apperr.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}

func TestService_ExpiredToken(t *testing.T) {
	ctx := context.Background()
	store := inmem.NewStore()
	svc := NewService(store, "test-secret", time.Hour)
	svc.ttl = -time.Minute

	user := domain.User{Email: "ana@example.com"}
	require.NoError(t, store.CreateUser(ctx, &user))

	token, err := svc.IssueToken(user)
	require.NoError(t, err)

	_, err = svc.Authenticate(ctx, "Bearer "+token)
	require.Error(t, err)

	var unauthorized *apperr.UnauthorizedError
	assert.ErrorAs(t, err, &unauthorized)
}
