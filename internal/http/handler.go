package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/davidbz/pricebook/internal/domain"
	"github.com/davidbz/pricebook/internal/observability"
	"go.uber.org/zap"
)

// Handler handles HTTP requests. Every engine operation it exposes is total,
// so non-2xx answers only ever mean a malformed request or an unknown
// identifier, never an upstream failure.
type Handler struct {
	catalog *domain.CatalogService
	pricing *domain.PricingService
}

// NewHandler creates a new HTTP handler (DI constructor).
func NewHandler(catalog *domain.CatalogService, pricing *domain.PricingService) *Handler {
	return &Handler{
		catalog: catalog,
		pricing: pricing,
	}
}

type modelsResponse struct {
	Models []domain.ModelCatalogEntry `json:"models"`
	Count  int                        `json:"count"`
}

type recommendationResponse struct {
	UseCase string `json:"use_case"`
	Model   string `json:"model"`
}

type estimateRequest struct {
	Model        string `json:"model"`
	InputTokens  int    `json:"input_tokens"`
	OutputTokens int    `json:"output_tokens"`
}

type estimateResponse struct {
	Model        string  `json:"model"`
	InputTokens  int     `json:"input_tokens"`
	OutputTokens int     `json:"output_tokens"`
	Cost         float64 `json:"cost"`
}

type refreshResponse struct {
	Refreshed   bool       `json:"refreshed"`
	LastUpdated *time.Time `json:"last_updated,omitempty"`
}

type pricingResponse struct {
	Pricing     domain.PricingTable `json:"pricing"`
	LastUpdated *time.Time          `json:"last_updated,omitempty"`
}

// HandleModels returns the resolved model catalog.
func (h *Handler) HandleModels(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	forceRefresh := r.URL.Query().Get("refresh") == "true"
	models := h.catalog.GetAvailableModels(ctx, forceRefresh)

	observability.FromContext(ctx).Info("catalog request served",
		zap.Int("models", len(models)),
		zap.Bool("force_refresh", forceRefresh),
	)

	h.writeJSON(ctx, w, modelsResponse{Models: models, Count: len(models)})
}

// HandleModel returns a single catalog entry by raw or family identifier.
func (h *Handler) HandleModel(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	id := strings.TrimPrefix(r.URL.Path, "/v1/models/")
	if id == "" {
		http.Error(w, "model id is required", http.StatusBadRequest)
		return
	}

	ctx = observability.WithModel(ctx, id)

	entry, ok := h.catalog.GetModelInfo(ctx, id)
	if !ok {
		http.Error(w, "model not found", http.StatusNotFound)
		return
	}

	h.writeJSON(ctx, w, entry)
}

// HandleRecommendation recommends a model for a use case.
func (h *Handler) HandleRecommendation(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	useCase := r.URL.Query().Get("use_case")
	if useCase == "" {
		useCase = domain.UseCaseGeneral
	}

	model := h.catalog.GetRecommendedModel(ctx, useCase)

	h.writeJSON(ctx, w, recommendationResponse{UseCase: useCase, Model: model})
}

// HandleEstimate estimates the cost of a request against a model.
func (h *Handler) HandleEstimate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	var req estimateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, fmt.Sprintf("invalid request body: %v", err), http.StatusBadRequest)
		return
	}

	if req.Model == "" {
		http.Error(w, "model is required", http.StatusBadRequest)
		return
	}

	if req.InputTokens < 0 || req.OutputTokens < 0 {
		http.Error(w, "token counts cannot be negative", http.StatusBadRequest)
		return
	}

	ctx = observability.WithModel(ctx, req.Model)

	cost := h.catalog.EstimateCost(ctx, req.Model, req.InputTokens, req.OutputTokens)

	h.writeJSON(ctx, w, estimateResponse{
		Model:        req.Model,
		InputTokens:  req.InputTokens,
		OutputTokens: req.OutputTokens,
		Cost:         cost,
	})
}

// HandleRefreshPricing clears both caches and rebuilds the pricing table.
func (h *Handler) HandleRefreshPricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	logger := observability.FromContext(ctx)
	logger.Info("pricing refresh requested")

	refreshed := h.catalog.RefreshPricing(ctx)

	resp := refreshResponse{Refreshed: refreshed}
	if lastUpdated, ok := h.catalog.PricingLastUpdated(ctx); ok {
		resp.LastUpdated = &lastUpdated
	}

	h.writeJSON(ctx, w, resp)
}

// HandlePricing returns the current pricing table.
func (h *Handler) HandlePricing(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	resp := pricingResponse{Pricing: h.pricing.CurrentPricing(ctx, false)}
	if lastUpdated, ok := h.pricing.LastUpdated(ctx); ok {
		resp.LastUpdated = &lastUpdated
	}

	h.writeJSON(ctx, w, resp)
}

// HandleHealth handles health check requests.
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if err := json.NewEncoder(w).Encode(map[string]string{
		"status": "healthy",
	}); err != nil {
		// Already written status, can't change it, just log.
		return
	}
}

func (h *Handler) writeJSON(ctx context.Context, w http.ResponseWriter, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		observability.FromContext(ctx).Error("failed to encode response", zap.Error(err))
	}
}
