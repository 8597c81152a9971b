// Package openai provides the OpenAI-backed catalog client and the
// model-assisted pricing source, both built on the official SDK. The API key
// is passed through opaquely; the engine neither validates nor stores it.
package openai

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/davidbz/pricebook/internal/observability"
)

// Client implements domain.CatalogClient against the OpenAI model listing
// endpoint. It is failure-tolerant and keeps no cache of its own.
type Client struct {
	client openai.Client
}

// NewClient creates a new OpenAI catalog client.
func NewClient(config Config) (*Client, error) {
	opts, err := requestOptions(config)
	if err != nil {
		return nil, err
	}

	return &Client{
		client: openai.NewClient(opts...),
	}, nil
}

// ListModelIDs returns every raw model identifier the account can see.
func (c *Client) ListModelIDs(ctx context.Context) ([]string, error) {
	logger := observability.FromContext(ctx)

	var ids []string
	iter := c.client.Models.ListAutoPaging(ctx)
	for iter.Next() {
		ids = append(ids, iter.Current().ID)
	}
	if err := iter.Err(); err != nil {
		logger.Error("model listing failed", observability.Error(err))
		return nil, fmt.Errorf("failed to list models: %w", err)
	}

	logger.Debug("listed models", observability.Int("count", len(ids)))
	return ids, nil
}

// requestOptions converts the config into SDK request options.
func requestOptions(config Config) ([]option.RequestOption, error) {
	if config.APIKey == "" {
		return nil, errors.New("OpenAI API key is required")
	}

	opts := []option.RequestOption{
		option.WithAPIKey(config.APIKey),
	}

	if config.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(config.BaseURL))
	}

	if config.Timeout > 0 {
		opts = append(opts, option.WithRequestTimeout(time.Duration(config.Timeout)*time.Second))
	}

	if config.MaxRetries > 0 {
		opts = append(opts, option.WithMaxRetries(config.MaxRetries))
	}

	return opts, nil
}
