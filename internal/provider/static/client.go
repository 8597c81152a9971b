// Package static provides an offline catalog client with a fixed identifier
// list. It implements the domain.CatalogClient interface without external
// calls, giving deterministic discovery for development and testing.
package static

import "context"

// DefaultModelIDs mirrors a realistic listing response: dated snapshots,
// versioned releases, modality variants, and non-chat models.
func DefaultModelIDs() []string {
	return []string{
		"gpt-4o-2024-11-20",
		"gpt-4o-2024-08-06",
		"gpt-4o",
		"gpt-4o-mini-2024-07-18",
		"gpt-4o-mini",
		"gpt-4-turbo-2024-04-09",
		"gpt-4-turbo",
		"gpt-4-0613",
		"gpt-4",
		"gpt-3.5-turbo-0125",
		"gpt-3.5-turbo",
		"gpt-4o-audio-preview",
		"chatgpt-4o-latest",
		"text-embedding-3-small",
		"whisper-1",
	}
}

// Client serves a fixed model identifier list.
type Client struct {
	ids []string
}

// NewClient creates a static catalog client. With no identifiers it serves
// the default list.
func NewClient(ids []string) *Client {
	if len(ids) == 0 {
		ids = DefaultModelIDs()
	}
	return &Client{
		ids: append([]string(nil), ids...),
	}
}

// ListModelIDs returns a copy of the configured identifier list.
func (c *Client) ListModelIDs(_ context.Context) ([]string, error) {
	return append([]string(nil), c.ids...), nil
}
