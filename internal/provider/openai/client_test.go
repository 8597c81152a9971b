package openai_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/provider/openai"
)

func TestNewClient_Success(t *testing.T) {
	config := openai.Config{
		APIKey:     "test-api-key",
		BaseURL:    "https://api.openai.com/v1",
		Timeout:    60,
		MaxRetries: 3,
	}

	client, err := openai.NewClient(config)

	require.NoError(t, err)
	require.NotNil(t, client)
}

func TestNewClient_MissingAPIKey(t *testing.T) {
	config := openai.Config{
		APIKey: "",
	}

	client, err := openai.NewClient(config)

	require.Error(t, err)
	require.Nil(t, client)
	require.Contains(t, err.Error(), "OpenAI API key is required")
}

func TestClient_ListModelIDs(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/models", r.URL.Path)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"object": "list",
			"data": [
				{"id": "gpt-4o-2024-11-20", "object": "model", "created": 1715367049, "owned_by": "system"},
				{"id": "gpt-4o-mini", "object": "model", "created": 1721172741, "owned_by": "system"},
				{"id": "whisper-1", "object": "model", "created": 1677532384, "owned_by": "openai-internal"}
			]
		}`))
	}))
	defer srv.Close()

	client, err := openai.NewClient(openai.Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	ids, err := client.ListModelIDs(context.Background())
	require.NoError(t, err)
	require.Equal(t, []string{"gpt-4o-2024-11-20", "gpt-4o-mini", "whisper-1"}, ids)
}

func TestClient_ListModelIDs_EmptyList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"object": "list", "data": []}`))
	}))
	defer srv.Close()

	client, err := openai.NewClient(openai.Config{APIKey: "test-key", BaseURL: srv.URL})
	require.NoError(t, err)

	ids, err := client.ListModelIDs(context.Background())
	require.NoError(t, err)
	require.Empty(t, ids)
}
