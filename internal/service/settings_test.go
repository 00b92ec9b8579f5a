package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/apperr"
	"github.com/karyawanmag/content-api/internal/domain"
	"github.com/karyawanmag/content-api/internal/storage/inmem"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettingsFixture(t *testing.T) (*SettingsService, *inmem.Store, []domain.Article) {
	t.Helper()
	ctx := context.Background()
	store := inmem.NewStore()
	svc := NewSettingsService(store)

	user := domain.User{FirstName: "Ana", Email: "ana@example.com"}
	require.NoError(t, store.CreateUser(ctx, &user))

	articles := make([]domain.Article, 3)
	for i := range articles {
		articles[i] = domain.Article{Title: "a", Content: "c", Category: "c", AuthorID: user.ID}
		require.NoError(t, store.CreateArticle(ctx, &articles[i]))
	}
	return svc, store, articles
}

func TestSettingsService_Featured(t *testing.T) {
	ctx := context.Background()
	svc, _, articles := newSettingsFixture(t)

	// Nothing configured yet.
	featured, err := svc.FeaturedArticle(ctx)
	require.NoError(t, err)
	assert.Nil(t, featured)

	err = svc.SetFeaturedArticle(ctx, uuid.New())
	var nferr *apperr.NotFoundError
	assert.ErrorAs(t, err, &nferr)

	require.NoError(t, svc.SetFeaturedArticle(ctx, articles[0].ID))

	featured, err = svc.FeaturedArticle(ctx)
	require.NoError(t, err)
	require.NotNil(t, featured)
	assert.Equal(t, articles[0].ID, featured.ID)
}

func TestSettingsService_TopPicks(t *testing.T) {
	ctx := context.Background()
	svc, _, articles := newSettingsFixture(t)

	picks, err := svc.TopPickArticles(ctx)
	require.NoError(t, err)
	assert.Empty(t, picks)

	err = svc.SetTopPicks(ctx, nil, nil)
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)

	err = svc.SetTopPicks(ctx, []uuid.UUID{articles[0].ID}, []int{1, 2})
	assert.ErrorAs(t, err, &verr)

	// Explicit orders override list position.
	ids := []uuid.UUID{articles[0].ID, articles[1].ID, articles[2].ID}
	require.NoError(t, svc.SetTopPicks(ctx, ids, []int{3, 1, 2}))

	picks, err = svc.TopPickArticles(ctx)
	require.NoError(t, err)
	require.Len(t, picks, 3)
	assert.Equal(t, articles[1].ID, picks[0].ID)
	assert.Equal(t, articles[2].ID, picks[1].ID)
	assert.Equal(t, articles[0].ID, picks[2].ID)
}

func TestSettingsService_TopPicks_DanglingSkipped(t *testing.T) {
	ctx := context.Background()
	svc, store, articles := newSettingsFixture(t)

	ids := []uuid.UUID{articles[0].ID, articles[1].ID}
	require.NoError(t, svc.SetTopPicks(ctx, ids, nil))

	require.NoError(t, store.DeleteArticle(ctx, articles[0].ID))

	picks, err := svc.TopPickArticles(ctx)
	require.NoError(t, err)
	require.Len(t, picks, 1)
	assert.Equal(t, articles[1].ID, picks[0].ID)
}

func TestSettingsService_UserAdministration(t *testing.T) {
	ctx := context.Background()
	svc, _, _ := newSettingsFixture(t)

	users, err := svc.Users(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)

	promoted, err := svc.SetUserAdmin(ctx, users[0].ID, true)
	require.NoError(t, err)
	assert.True(t, promoted.Admin)

	demoted, err := svc.SetUserAdmin(ctx, users[0].ID, false)
	require.NoError(t, err)
	assert.False(t, demoted.Admin)

	_, err = svc.SetUserAdmin(ctx, uuid.New(), true)
	var nferr *apperr.NotFoundError
	assert.ErrorAs(t, err, &nferr)
}
