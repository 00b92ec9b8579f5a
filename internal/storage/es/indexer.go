// Package es keeps a secondary full-text index of articles in
// Elasticsearch. The Postgres store stays the source of truth; the index
// holds only the searchable fields and hands back matching IDs.
package es

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/google/uuid"
	"github.com/karyawanmag/content-api/internal/domain"
)

// ArticleDocument is the indexed projection of an article.
type ArticleDocument struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	Category  string    `json:"category"`
	Video     bool      `json:"video"`
	CreatedAt time.Time `json:"created_at"`
	IndexedAt time.Time `json:"indexed_at"`
}

type Indexer struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewIndexer(ctx context.Context, config ClientConfig) (*Indexer, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	indexer := &Indexer{
		client:    client,
		indexName: config.IndexName,
	}

	if err := indexer.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}

	return indexer, nil
}

func (e *Indexer) IndexArticle(ctx context.Context, article domain.Article) error {
	doc := ArticleDocument{
		ID:        article.ID.String(),
		Title:     article.Title,
		Content:   article.Content,
		Category:  article.Category,
		Video:     article.VideoArticle,
		CreatedAt: article.CreatedAt,
		IndexedAt: time.Now(),
	}

	res, err := e.client.Index(e.indexName).Id(doc.ID).Document(doc).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index document: %w", err)
	}

	slog.Debug("document indexed", "id", doc.ID, "index", e.indexName, "result", res.Result)
	return nil
}

func (e *Indexer) RemoveArticle(ctx context.Context, id uuid.UUID) error {
	_, err := e.client.Delete(e.indexName, id.String()).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to delete document: %w", err)
	}
	return nil
}

func (e *Indexer) EnsureIndex(ctx context.Context) error {
	existsRes, err := e.client.Indices.Exists(e.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}

	if existsRes {
		slog.Info("Index already exists", "index", e.indexName)
		return nil
	}

	shards := "1"
	replicas := "0"
	settings := types.IndexSettings{
		NumberOfShards:   &shards,
		NumberOfReplicas: &replicas,
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"id":         types.NewKeywordProperty(),
			"title":      textPropertyWithKeyword(),
			"content":    types.NewTextProperty(),
			"category":   types.NewKeywordProperty(),
			"video":      types.NewBooleanProperty(),
			"created_at": types.NewDateProperty(),
			"indexed_at": types.NewDateProperty(),
		},
	}

	createRes, err := e.client.Indices.Create(e.indexName).
		Settings(&settings).
		Mappings(&mappings).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}

	if !createRes.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created", "index", e.indexName)
	return nil
}

func textPropertyWithKeyword() types.Property {
	textProp := types.NewTextProperty()
	textProp.Fields = map[string]types.Property{
		"keyword": types.NewKeywordProperty(),
	}
	return textProp
}
