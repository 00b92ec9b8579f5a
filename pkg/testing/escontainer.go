package testing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/elasticsearch"
	"github.com/testcontainers/testcontainers-go/wait"
)

// ESContainer is a throwaway single-node Elasticsearch instance for
// integration tests. Security is disabled so clients connect over plain
// HTTP with no credentials.
type ESContainer struct {
	Container testcontainers.Container
	Address   string
}

// NewESContainer starts the container and registers its teardown with tb.
func NewESContainer(ctx context.Context, tb testing.TB) *ESContainer {
	tb.Helper()

	container, err := elasticsearch.Run(ctx,
		"docker.elastic.co/elasticsearch/elasticsearch:8.12.0",
		elasticsearch.WithPassword(""),
		testcontainers.WithWaitStrategy(
			wait.ForHTTP("/").
				WithPort("9200").
				WithStartupTimeout(90*time.Second),
		),
	)
	if err != nil {
		tb.Fatalf("failed to start elasticsearch container: %v", err)
	}

	tb.Cleanup(func() {
		if err := testcontainers.TerminateContainer(container); err != nil {
			tb.Logf("failed to terminate elasticsearch container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		tb.Fatalf("failed to resolve elasticsearch host: %v", err)
	}
	port, err := container.MappedPort(ctx, "9200")
	if err != nil {
		tb.Fatalf("failed to resolve elasticsearch port: %v", err)
	}

	return &ESContainer{
		Container: container,
		Address:   fmt.Sprintf("http://%s:%s", host, port.Port()),
	}
}
