package es

import (
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
)

// ClientConfig carries the connection settings shared by the indexer and
// the searcher. Username and password are optional; leave both empty for
// unsecured clusters.
type ClientConfig struct {
	Addresses []string
	IndexName string
	Username  string
	Password  string
}

func newClient(config ClientConfig) (*elasticsearch.TypedClient, error) {
	if len(config.Addresses) == 0 {
		return nil, fmt.Errorf("no elasticsearch addresses configured")
	}
	if config.IndexName == "" {
		return nil, fmt.Errorf("no elasticsearch index name configured")
	}

	cfg := elasticsearch.Config{
		Addresses: config.Addresses,
		Username:  config.Username,
		Password:  config.Password,
	}

	return elasticsearch.NewTypedClient(cfg)
}
