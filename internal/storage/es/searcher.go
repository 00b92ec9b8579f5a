package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/operator"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/sortorder"
	"github.com/google/uuid"
)

// Searcher runs relevance-ranked full-text queries against the article
// index and returns matching IDs for the caller to hydrate from Postgres.
type Searcher struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewSearcher(config ClientConfig) (*Searcher, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}

	return &Searcher{
		client:    client,
		indexName: config.IndexName,
	}, nil
}

// Search runs a multi_match query over title and content, title boosted.
// Results come back best first.
func (r *Searcher) Search(ctx context.Context, query string, offset, limit int) ([]uuid.UUID, int64, error) {
	or := operator.Or
	multiMatch := &types.MultiMatchQuery{
		Query:    query,
		Fields:   []string{"title^2.0", "content"},
		Operator: &or,
	}

	sortOrderDesc := sortorder.Desc
	searchReq := r.client.Search().
		Index(r.indexName).
		Query(&types.Query{
			MultiMatch: multiMatch,
		}).
		From(offset).
		Size(limit).
		TrackScores(true).
		Sort(
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"_score": {Order: &sortOrderDesc},
				},
			},
			&types.SortOptions{
				SortOptions: map[string]types.FieldSort{
					"id": {Order: &sortOrderDesc},
				},
			},
		)

	res, err := searchReq.Do(ctx)
	if err != nil {
		slog.Error("Elasticsearch query failed", "error", err, "query", query)
		return nil, 0, fmt.Errorf("failed to execute search: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(res.Hits.Hits))
	for _, hit := range res.Hits.Hits {
		var doc ArticleDocument
		if err := json.Unmarshal(hit.Source_, &doc); err != nil {
			return nil, 0, fmt.Errorf("failed to unmarshal document: %w", err)
		}
		id, err := uuid.Parse(doc.ID)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to parse document ID: %w", err)
		}
		ids = append(ids, id)
	}

	slog.Debug("es search results fetched",
		"query", query,
		"total_matches", res.Hits.Total.Value,
		"returned_count", len(ids))

	return ids, res.Hits.Total.Value, nil
}
