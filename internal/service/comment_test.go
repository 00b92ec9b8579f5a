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

func newCommentFixture(t *testing.T) (*CommentService, *inmem.Store, domain.User, domain.Article) {
	t.Helper()
	ctx := context.Background()
	store := inmem.NewStore()
	svc := NewCommentService(store)

	user := domain.User{FirstName: "Ana", Email: "ana@example.com"}
	require.NoError(t, store.CreateUser(ctx, &user))

	article := domain.Article{Title: "t", Content: "c", Category: "c", AuthorID: user.ID}
	require.NoError(t, store.CreateArticle(ctx, &article))

	return svc, store, user, article
}

func TestCommentService_CreateAndList(t *testing.T) {
	ctx := context.Background()
	svc, _, user, article := newCommentFixture(t)

	top, err := svc.Create(ctx, user, article.ID, "first!", nil)
	require.NoError(t, err)
	assert.Nil(t, top.ParentID)
	require.NotNil(t, top.Author)
	assert.Equal(t, user.ID, top.Author.ID)

	reply, err := svc.Create(ctx, user, article.ID, "a reply", &top.ID)
	require.NoError(t, err)
	require.NotNil(t, reply.ParentID)
	assert.Equal(t, top.ID, *reply.ParentID)

	topLevel, err := svc.ListForArticle(ctx, article.ID)
	require.NoError(t, err)
	require.Len(t, topLevel, 1)
	assert.Equal(t, top.ID, topLevel[0].ID)

	replies, err := svc.ListReplies(ctx, top.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, reply.ID, replies[0].ID)
}

func TestCommentService_Create_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, store, user, article := newCommentFixture(t)

	_, err := svc.Create(ctx, user, article.ID, "   ", nil)
	var verr *apperr.ValidationError
	assert.ErrorAs(t, err, &verr)

	_, err = svc.Create(ctx, user, uuid.New(), "hello", nil)
	var nferr *apperr.NotFoundError
	assert.ErrorAs(t, err, &nferr)

	ghost := uuid.New()
	_, err = svc.Create(ctx, user, article.ID, "hello", &ghost)
	assert.ErrorAs(t, err, &nferr)

	other := domain.Article{Title: "other", Content: "c", Category: "c", AuthorID: user.ID}
	require.NoError(t, store.CreateArticle(ctx, &other))
	parent, err := svc.Create(ctx, user, other.ID, "on the other article", nil)
	require.NoError(t, err)

	_, err = svc.Create(ctx, user, article.ID, "cross-article reply", &parent.ID)
	assert.ErrorAs(t, err, &verr)
}

func TestCommentService_UpdateContent_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, store, user, article := newCommentFixture(t)

	comment, err := svc.Create(ctx, user, article.ID, "original", nil)
	require.NoError(t, err)

	stranger := domain.User{FirstName: "Bo", Email: "bo@example.com"}
	require.NoError(t, store.CreateUser(ctx, &stranger))

	_, err = svc.UpdateContent(ctx, stranger, comment.ID, "hijacked")
	var ferr *apperr.ForbiddenError
	assert.ErrorAs(t, err, &ferr)

	updated, err := svc.UpdateContent(ctx, user, comment.ID, "edited")
	require.NoError(t, err)
	assert.Equal(t, "edited", updated.Content)
}

func TestCommentService_Delete_CascadesOneLevel(t *testing.T) {
	ctx := context.Background()
	svc, _, user, article := newCommentFixture(t)

	top, err := svc.Create(ctx, user, article.ID, "top", nil)
	require.NoError(t, err)
	reply, err := svc.Create(ctx, user, article.ID, "reply", &top.ID)
	require.NoError(t, err)
	grandchild, err := svc.Create(ctx, user, article.ID, "reply to reply", &reply.ID)
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, user, top.ID))

	topLevel, err := svc.ListForArticle(ctx, article.ID)
	require.NoError(t, err)
	assert.Empty(t, topLevel)

	// One level only: the reply's reply survives.
	replies, err := svc.ListReplies(ctx, reply.ID)
	require.NoError(t, err)
	require.Len(t, replies, 1)
	assert.Equal(t, grandchild.ID, replies[0].ID)
}

func TestCommentService_Delete_OwnerOnly(t *testing.T) {
	ctx := context.Background()
	svc, store, user, article := newCommentFixture(t)

	comment, err := svc.Create(ctx, user, article.ID, "mine", nil)
	require.NoError(t, err)

	stranger := domain.User{FirstName: "Bo", Email: "bo@example.com"}
	require.NoError(t, store.CreateUser(ctx, &stranger))

	err = svc.Delete(ctx, stranger, comment.ID)
	var ferr *apperr.ForbiddenError
	assert.ErrorAs(t, err, &ferr)
}
