// Package web provides a pricing source that reads the pricing table as JSON
// from a configured URL. Opt-in and best-effort: any transport or format
// failure surfaces as an error for the pricing cache to swallow.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/davidbz/pricebook/internal/domain"
)

// A plausible pricing table covers at least this many families.
const minTableSize = 3

// Source fetches the pricing table from a URL.
type Source struct {
	url        string
	httpClient *http.Client
}

// NewSource creates a URL pricing source with a bounded per-request timeout.
func NewSource(url string, timeout time.Duration) *Source {
	return &Source{
		url: url,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Name returns the source identifier.
func (s *Source) Name() string {
	return "url"
}

// FetchPricing GETs the configured URL and decodes the pricing payload.
func (s *Source) FetchPricing(ctx context.Context) (domain.PricingTable, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("pricing URL returned status %d: %s", resp.StatusCode, string(body))
	}

	var payload map[string]domain.PricingPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode pricing payload: %w", err)
	}

	table := domain.TableFromPayload(payload)
	if len(table) < minTableSize {
		return nil, fmt.Errorf("pricing payload too small: %d models", len(table))
	}

	return table, nil
}
