package es

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/domain"
	pkgtesting "github.com/karyawanmag/content-api/pkg/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndexAndSearch(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container := pkgtesting.NewESContainer(ctx, t)

	cfg := ClientConfig{
		Addresses: []string{container.Address},
		IndexName: "articles_test",
	}

	indexer, err := NewIndexer(ctx, cfg)
	require.NoError(t, err)

	searcher, err := NewSearcher(cfg)
	require.NoError(t, err)

	jazz := domain.Article{
		ID:        uuid.New(),
		Title:     "Jazz festivals of the decade",
		Content:   "trumpets and saxophones",
		Category:  "music",
		CreatedAt: time.Now(),
	}
	food := domain.Article{
		ID:        uuid.New(),
		Title:     "Street food guide",
		Content:   "noodles and dumplings",
		Category:  "food",
		CreatedAt: time.Now(),
	}
	require.NoError(t, indexer.IndexArticle(ctx, jazz))
	require.NoError(t, indexer.IndexArticle(ctx, food))
	refreshIndex(ctx, t, indexer)

	ids, total, err := searcher.Search(ctx, "jazz trumpets", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, ids, 1)
	assert.Equal(t, jazz.ID, ids[0])

	ids, total, err = searcher.Search(ctx, "guide", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, ids, 1)
	assert.Equal(t, food.ID, ids[0])

	require.NoError(t, indexer.RemoveArticle(ctx, food.ID))
	refreshIndex(ctx, t, indexer)

	_, total, err = searcher.Search(ctx, "guide", 0, 10)
	require.NoError(t, err)
	assert.EqualValues(t, 0, total)
}

func TestEnsureIndexIsIdempotent(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping container-backed test in short mode")
	}

	ctx := context.Background()
	container := pkgtesting.NewESContainer(ctx, t)

	cfg := ClientConfig{
		Addresses: []string{container.Address},
		IndexName: "articles_test",
	}

	indexer, err := NewIndexer(ctx, cfg)
	require.NoError(t, err)

	require.NoError(t, indexer.EnsureIndex(ctx))
}

// refreshIndex forces a segment refresh so freshly indexed documents are
// visible to search immediately.
func refreshIndex(ctx context.Context, t *testing.T, indexer *Indexer) {
	t.Helper()
	_, err := indexer.client.Indices.Refresh().Index(indexer.indexName).Do(ctx)
	require.NoError(t, err)
}
