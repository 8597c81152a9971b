package openai_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/provider/openai"
)

// completionServer returns a test server that answers every chat completion
// request with the given assistant content.
func completionServer(t *testing.T, content string) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/chat/completions", r.URL.Path)

		resp := map[string]interface{}{
			"id":      "chatcmpl-test",
			"object":  "chat.completion",
			"created": 1736931600,
			"model":   "gpt-4o-mini",
			"choices": []map[string]interface{}{
				{
					"index":         0,
					"message":       map[string]interface{}{"role": "assistant", "content": content},
					"finish_reason": "stop",
				},
			},
		}

		w.Header().Set("Content-Type", "application/json")
		require.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func newSource(t *testing.T, baseURL string) *openai.PricingSource {
	t.Helper()

	source, err := openai.NewPricingSource(openai.Config{APIKey: "test-key", BaseURL: baseURL}, "gpt-4o-mini")
	require.NoError(t, err)
	return source
}

func TestNewPricingSource_MissingModel(t *testing.T) {
	_, err := openai.NewPricingSource(openai.Config{APIKey: "test-key"}, "")
	require.Error(t, err)
	require.Contains(t, err.Error(), "model is required")
}

func TestNewPricingSource_MissingAPIKey(t *testing.T) {
	_, err := openai.NewPricingSource(openai.Config{}, "gpt-4o-mini")
	require.Error(t, err)
}

func TestPricingSource_Name(t *testing.T) {
	source := newSource(t, "https://api.openai.com/v1")
	require.Equal(t, "model", source.Name())
}

func TestPricingSource_FetchPricing(t *testing.T) {
	payload := `{
		"gpt-4o": {"input": 0.0025, "output": 0.010, "description": "Flagship model"},
		"gpt-4o-mini": {"input": 0.00015, "output": 0.0006, "description": "Small model"},
		"gpt-4-turbo": {"input": 0.01, "output": 0.03, "description": "Turbo model"}
	}`

	t.Run("plain JSON", func(t *testing.T) {
		srv := completionServer(t, payload)
		defer srv.Close()

		table, err := newSource(t, srv.URL).FetchPricing(context.Background())
		require.NoError(t, err)
		require.Len(t, table, 3)
		require.InDelta(t, 0.0025, table["gpt-4o"].InputPer1K, 1e-9)
		require.Equal(t, "Small model", table["gpt-4o-mini"].Description)
	})

	t.Run("JSON wrapped in prose", func(t *testing.T) {
		srv := completionServer(t, "Here is the current pricing:\n"+payload+"\nLet me know if you need more.")
		defer srv.Close()

		table, err := newSource(t, srv.URL).FetchPricing(context.Background())
		require.NoError(t, err)
		require.Len(t, table, 3)
	})

	t.Run("JSON wrapped in markdown fences", func(t *testing.T) {
		srv := completionServer(t, "```json\n"+payload+"\n```")
		defer srv.Close()

		table, err := newSource(t, srv.URL).FetchPricing(context.Background())
		require.NoError(t, err)
		require.Len(t, table, 3)
	})
}

func TestPricingSource_FetchPricing_Failures(t *testing.T) {
	t.Run("no JSON object in response", func(t *testing.T) {
		srv := completionServer(t, "I cannot provide pricing information.")
		defer srv.Close()

		_, err := newSource(t, srv.URL).FetchPricing(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "no JSON object")
	})

	t.Run("malformed JSON", func(t *testing.T) {
		srv := completionServer(t, `{"gpt-4o": {"input": not-a-number}}`)
		defer srv.Close()

		_, err := newSource(t, srv.URL).FetchPricing(context.Background())
		require.Error(t, err)
	})

	t.Run("table too small to be plausible", func(t *testing.T) {
		srv := completionServer(t, `{"gpt-4o": {"input": 0.0025, "output": 0.010, "description": "only one"}}`)
		defer srv.Close()

		_, err := newSource(t, srv.URL).FetchPricing(context.Background())
		require.Error(t, err)
		require.Contains(t, err.Error(), "too small")
	})

	t.Run("non-positive prices are dropped", func(t *testing.T) {
		srv := completionServer(t, fmt.Sprintf(`{
			"gpt-4o": {"input": 0.0025, "output": 0.010, "description": "ok"},
			"gpt-4o-mini": {"input": 0.00015, "output": 0.0006, "description": "ok"},
			"gpt-4-turbo": {"input": 0.01, "output": 0.03, "description": "ok"},
			"bogus-free": {"input": 0, "output": 0, "description": "hallucinated"},
			"bogus-negative": {"input": %g, "output": 0.01, "description": "hallucinated"}
		}`, -0.5))
		defer srv.Close()

		table, err := newSource(t, srv.URL).FetchPricing(context.Background())
		require.NoError(t, err)
		require.Len(t, table, 3)
		require.NotContains(t, table, "bogus-free")
		require.NotContains(t, table, "bogus-negative")
	})
}
