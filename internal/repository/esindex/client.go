// Package esindex maintains the keyword search index of profile documents
// in Elasticsearch.
package esindex

import (
	"context"
	"fmt"

	"github.com/elastic/go-elasticsearch/v8"
	"go.uber.org/zap"
)

// Config carries Elasticsearch connection settings.
type Config struct {
	Addresses []string
	APIKey    string
	Index     string
	Logger    *zap.Logger
}

// Client wraps the Elasticsearch connection for a single index.
type Client struct {
	es     *elasticsearch.Client
	index  string
	logger *zap.Logger
}

// New builds an Elasticsearch client for the configured index.
func New(cfg *Config) (*Client, error) {
	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		APIKey:    cfg.APIKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create elasticsearch client: %w", err)
	}

	return &Client{es: es, index: cfg.Index, logger: cfg.Logger}, nil
}

// Ping checks cluster reachability.
func (c *Client) Ping(ctx context.Context) error {
	res, err := c.es.Ping(c.es.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("ping elasticsearch: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return fmt.Errorf("ping elasticsearch: %s", res.Status())
	}

	return nil
}
