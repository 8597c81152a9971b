package web_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/davidbz/pricebook/internal/pricing/web"
)

const validPayload = `{
	"gpt-4o": {"input": 0.0025, "output": 0.010, "description": "Flagship model"},
	"gpt-4o-mini": {"input": 0.00015, "output": 0.0006, "description": "Small model"},
	"gpt-4-turbo": {"input": 0.01, "output": 0.03, "description": "Turbo model"}
}`

func TestSource_Name(t *testing.T) {
	source := web.NewSource("http://example.test/pricing.json", time.Second)
	require.Equal(t, "url", source.Name())
}

func TestSource_FetchPricing(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Accept"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(validPayload))
	}))
	defer srv.Close()

	source := web.NewSource(srv.URL, 5*time.Second)

	table, err := source.FetchPricing(context.Background())
	require.NoError(t, err)
	require.Len(t, table, 3)
	require.InDelta(t, 0.0025, table["gpt-4o"].InputPer1K, 1e-9)
	require.Equal(t, "Small model", table["gpt-4o-mini"].Description)
}

func TestSource_FetchPricing_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	}))
	defer srv.Close()

	source := web.NewSource(srv.URL, 5*time.Second)

	_, err := source.FetchPricing(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "status 500")
}

func TestSource_FetchPricing_MalformedPayload(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"gpt-4o": "not an object"}`))
	}))
	defer srv.Close()

	source := web.NewSource(srv.URL, 5*time.Second)

	_, err := source.FetchPricing(context.Background())
	require.Error(t, err)
}

func TestSource_FetchPricing_TableTooSmall(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"gpt-4o": {"input": 0.0025, "output": 0.010, "description": "only one"}}`))
	}))
	defer srv.Close()

	source := web.NewSource(srv.URL, 5*time.Second)

	_, err := source.FetchPricing(context.Background())
	require.Error(t, err)
	require.Contains(t, err.Error(), "too small")
}

func TestSource_FetchPricing_Unreachable(t *testing.T) {
	source := web.NewSource("http://127.0.0.1:1/pricing.json", time.Second)

	_, err := source.FetchPricing(context.Background())
	require.Error(t, err)
}
