package domain

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/davidbz/pricebook/internal/cache"
	"github.com/davidbz/pricebook/internal/observability"
)

const (
	tokensPerK = 1000.0

	// Prices below this render with five decimals instead of four.
	fineFormatThreshold = 0.001
)

// CatalogService builds the deduplicated, priced, deterministically ordered
// model catalog and answers the selection and cost-estimation queries the UI
// layer consumes. Every public operation is total: failures degrade to a
// local fallback catalog, never to an error.
type CatalogService struct {
	opts       Options
	client     CatalogClient
	pricing    *PricingService
	store      cache.Store[[]ModelCatalogEntry]
	normalizer *Normalizer
	exclusions *ExclusionPolicy
	resolver   *PricingResolver
	group      singleflight.Group
	now        func() time.Time
}

// NewCatalogService creates the catalog resolver (DI constructor).
func NewCatalogService(
	opts Options,
	client CatalogClient,
	pricing *PricingService,
	store cache.Store[[]ModelCatalogEntry],
) *CatalogService {
	return &CatalogService{
		opts:       opts,
		client:     client,
		pricing:    pricing,
		store:      store,
		normalizer: NewNormalizer(opts.FamilyRules),
		exclusions: NewExclusionPolicy(opts.Exclusions),
		resolver:   NewPricingResolver(opts.FamilyRules),
		now:        time.Now,
	}
}

// GetAvailableModels returns the resolved catalog, rebuilding it when the
// cached snapshot is expired, absent, or forceRefresh is set. Concurrent
// rebuilds collapse into a single discovery pass.
func (s *CatalogService) GetAvailableModels(ctx context.Context, forceRefresh bool) []ModelCatalogEntry {
	if !forceRefresh {
		if entries, ok := s.cached(ctx); ok {
			return entries
		}
	}

	result, _, _ := s.group.Do("catalog", func() (interface{}, error) {
		if !forceRefresh {
			if entries, ok := s.cached(ctx); ok {
				return entries, nil
			}
		}

		entries := s.buildCatalog(ctx)

		snap := cache.Snapshot[[]ModelCatalogEntry]{Value: entries, FetchedAt: s.now()}
		if err := s.store.Set(ctx, snap); err != nil {
			observability.FromContext(ctx).Warn("failed to store catalog snapshot",
				observability.Error(err))
		}

		return entries, nil
	})

	entries, _ := result.([]ModelCatalogEntry)
	return copyEntries(entries)
}

// GetModelInfo looks up a catalog entry by raw or family identifier.
func (s *CatalogService) GetModelInfo(ctx context.Context, id string) (ModelCatalogEntry, bool) {
	for _, entry := range s.GetAvailableModels(ctx, false) {
		if entry.RawID == id || entry.FamilyID == id {
			return entry, true
		}
	}
	return ModelCatalogEntry{}, false
}

// EstimateCost estimates the USD cost of a request against the given model.
// Unknown identifiers estimate to zero.
func (s *CatalogService) EstimateCost(ctx context.Context, id string, inputTokens, outputTokens int) float64 {
	info, ok := s.GetModelInfo(ctx, id)
	if !ok {
		return 0
	}

	inputCost := float64(inputTokens) / tokensPerK * info.Pricing.InputPer1K
	outputCost := float64(outputTokens) / tokensPerK * info.Pricing.OutputPer1K

	return inputCost + outputCost
}

// GetRecommendedModel picks a model for the use case. An empty catalog
// recommends the configured default instead of failing.
func (s *CatalogService) GetRecommendedModel(ctx context.Context, useCase string) string {
	models := s.GetAvailableModels(ctx, false)
	if len(models) == 0 {
		return s.opts.DefaultModel
	}

	switch useCase {
	case UseCaseCostEffective:
		best := models[0]
		for _, model := range models[1:] {
			if model.Pricing.InputPer1K < best.Pricing.InputPer1K {
				best = model
			}
		}
		return best.RawID
	case UseCaseHighQuality:
		// Catalog order is the capability ranking.
		return models[0].RawID
	default:
		for _, family := range s.opts.GeneralPreference {
			for _, model := range models {
				if model.FamilyID == family {
					return model.RawID
				}
			}
		}
		return models[0].RawID
	}
}

// RefreshPricing clears both caches and eagerly rebuilds the pricing table.
// It reports whether the refresh completed; it never fails outward.
func (s *CatalogService) RefreshPricing(ctx context.Context) bool {
	logger := observability.FromContext(ctx)

	if err := s.store.Clear(ctx); err != nil {
		logger.Warn("failed to clear catalog cache", observability.Error(err))
		return false
	}

	if err := s.pricing.Invalidate(ctx); err != nil {
		logger.Warn("failed to clear pricing cache", observability.Error(err))
		return false
	}

	s.pricing.CurrentPricing(ctx, true)

	if ctx.Err() != nil {
		return false
	}

	logger.Info("refreshed pricing information")
	return true
}

// PricingLastUpdated returns when the pricing table was last refreshed.
func (s *CatalogService) PricingLastUpdated(ctx context.Context) (time.Time, bool) {
	return s.pricing.LastUpdated(ctx)
}

func (s *CatalogService) cached(ctx context.Context) ([]ModelCatalogEntry, bool) {
	snap, ok, err := s.store.Get(ctx)
	if err != nil {
		observability.FromContext(ctx).Warn("failed to read catalog snapshot",
			observability.Error(err))
		return nil, false
	}
	if !ok || s.now().Sub(snap.FetchedAt) >= s.opts.CatalogTTL {
		return nil, false
	}
	return copyEntries(snap.Value), true
}

// buildCatalog runs the resolution pipeline: pricing, discovery, filtering,
// normalization, deduplication, pricing resolution, ordering. Discovery
// failure degrades to the local fallback catalog.
func (s *CatalogService) buildCatalog(ctx context.Context) []ModelCatalogEntry {
	logger := observability.FromContext(ctx)

	// Pricing honors its own TTL; only RefreshPricing forces a rebuild.
	table := s.pricing.CurrentPricing(ctx, false)

	ids, err := s.client.ListModelIDs(ctx)
	if err != nil || len(ids) == 0 {
		if err != nil {
			logger.Error("model discovery failed, using local fallback catalog",
				observability.Error(err))
		} else {
			logger.Warn("model discovery returned no models, using local fallback catalog")
		}
		observability.CatalogRefreshTotal.WithLabelValues("fallback").Inc()
		return s.fallbackCatalog()
	}

	entries := s.assembleCatalog(ids, table)
	if len(entries) == 0 {
		logger.Warn("no supported chat families discovered, using local fallback catalog")
		observability.CatalogRefreshTotal.WithLabelValues("fallback").Inc()
		return s.fallbackCatalog()
	}

	observability.CatalogRefreshTotal.WithLabelValues("live").Inc()
	logger.Info("resolved model catalog", observability.Int("models", len(entries)))
	return entries
}

func (s *CatalogService) assembleCatalog(ids []string, table PricingTable) []ModelCatalogEntry {
	seen := make(map[string]bool)
	var entries []ModelCatalogEntry

	for _, rawID := range ids {
		if s.normalizer.IsFineTuned(rawID) || !s.normalizer.IsChatFamily(rawID) {
			continue
		}
		if s.exclusions.IsExcluded(rawID) {
			continue
		}

		family := s.normalizer.Normalize(rawID)
		if s.exclusions.IsExcluded(family) {
			continue
		}

		// First raw identifier observed for a family wins.
		if seen[family] {
			continue
		}
		seen[family] = true

		pricing := s.resolver.Resolve(family, table)
		name := s.normalizer.DisplayName(family)

		entries = append(entries, ModelCatalogEntry{
			RawID:       rawID,
			FamilyID:    family,
			DisplayName: name,
			Pricing:     pricing,
			DisplayText: displayText(name, pricing),
		})
	}

	s.sortCatalog(entries)
	return entries
}

// fallbackCatalog is built directly from the curated pricing table, bypassing
// discovery entirely.
func (s *CatalogService) fallbackCatalog() []ModelCatalogEntry {
	entries := make([]ModelCatalogEntry, 0, len(s.opts.CuratedTable))

	for family, pricing := range s.opts.CuratedTable {
		name := s.normalizer.DisplayName(family)
		entries = append(entries, ModelCatalogEntry{
			RawID:       family,
			FamilyID:    family,
			DisplayName: name,
			Pricing:     pricing,
			DisplayText: displayText(name, pricing),
		})
	}

	s.sortCatalog(entries)
	return entries
}

// sortCatalog orders by family priority (flagship first), tie-broken by
// ascending input price.
func (s *CatalogService) sortCatalog(entries []ModelCatalogEntry) {
	sort.SliceStable(entries, func(i, j int) bool {
		pi := s.normalizer.Priority(entries[i].FamilyID)
		pj := s.normalizer.Priority(entries[j].FamilyID)
		if pi != pj {
			return pi < pj
		}
		return entries[i].Pricing.InputPer1K < entries[j].Pricing.InputPer1K
	})
}

func copyEntries(entries []ModelCatalogEntry) []ModelCatalogEntry {
	if entries == nil {
		return nil
	}
	return append([]ModelCatalogEntry(nil), entries...)
}

func displayText(name string, pricing PricingEntry) string {
	if !pricing.Known() {
		return fmt.Sprintf("%s (Pricing not available)", name)
	}
	return fmt.Sprintf("%s ($%s/$%s per 1K tokens)",
		name, formatPrice(pricing.InputPer1K), formatPrice(pricing.OutputPer1K))
}

func formatPrice(price float64) string {
	if price < fineFormatThreshold {
		return fmt.Sprintf("%.5f", price)
	}
	return fmt.Sprintf("%.4f", price)
}
