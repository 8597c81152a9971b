package domain

import (
	"context"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/davidbz/pricebook/internal/cache"
	"github.com/davidbz/pricebook/internal/observability"
)

// PricingService owns the pricing table cache. On refresh it tries the
// optional external source first and degrades to an enhanced curated table on
// any failure; the operation never fails outward — worst case it returns the
// static curated table.
type PricingService struct {
	opts       Options
	source     PricingSource // nil when no external source is configured
	discovery  CatalogClient // nil when live enhancement is unavailable
	store      cache.Store[PricingTable]
	normalizer *Normalizer
	exclusions *ExclusionPolicy
	resolver   *PricingResolver
	group      singleflight.Group
	now        func() time.Time
}

// NewPricingService creates the pricing cache (DI constructor).
func NewPricingService(
	opts Options,
	source PricingSource,
	discovery CatalogClient,
	store cache.Store[PricingTable],
) *PricingService {
	return &PricingService{
		opts:       opts,
		source:     source,
		discovery:  discovery,
		store:      store,
		normalizer: NewNormalizer(opts.FamilyRules),
		exclusions: NewExclusionPolicy(opts.Exclusions),
		resolver:   NewPricingResolver(opts.FamilyRules),
		now:        time.Now,
	}
}

// CurrentPricing returns the current pricing table, refreshing it when the
// cached snapshot is expired, absent, or forceRefresh is set. Concurrent
// refreshes collapse into a single rebuild.
func (s *PricingService) CurrentPricing(ctx context.Context, forceRefresh bool) PricingTable {
	if !forceRefresh {
		if table, ok := s.cached(ctx); ok {
			return table.Clone()
		}
	}

	result, _, _ := s.group.Do("pricing", func() (interface{}, error) {
		// Re-check inside the flight so late arrivals reuse the fresh snapshot.
		if !forceRefresh {
			if table, ok := s.cached(ctx); ok {
				return table, nil
			}
		}
		return s.rebuild(ctx), nil
	})

	table, ok := result.(PricingTable)
	if !ok || table == nil {
		return s.opts.CuratedTable.Clone()
	}
	// Copy on return so callers can never mutate the stored snapshot.
	return table.Clone()
}

// LastUpdated returns when the pricing table was last refreshed.
func (s *PricingService) LastUpdated(ctx context.Context) (time.Time, bool) {
	snap, ok, err := s.store.Get(ctx)
	if err != nil || !ok {
		return time.Time{}, false
	}
	return snap.FetchedAt, true
}

// Invalidate clears the cached pricing table.
func (s *PricingService) Invalidate(ctx context.Context) error {
	return s.store.Clear(ctx)
}

func (s *PricingService) cached(ctx context.Context) (PricingTable, bool) {
	snap, ok, err := s.store.Get(ctx)
	if err != nil {
		observability.FromContext(ctx).Warn("failed to read pricing snapshot",
			observability.Error(err))
		return nil, false
	}
	if !ok || s.now().Sub(snap.FetchedAt) >= s.opts.PricingTTL {
		return nil, false
	}
	return snap.Value, true
}

// rebuild fetches a fresh table and stores it. Every failure mode falls
// through to the enhanced curated table.
func (s *PricingService) rebuild(ctx context.Context) PricingTable {
	logger := observability.FromContext(ctx)

	var table PricingTable
	if s.source != nil {
		fetched, err := s.source.FetchPricing(ctx)
		if err != nil {
			logger.Warn("pricing source failed, falling back to curated table",
				observability.String("source", s.source.Name()),
				observability.Error(err))
			observability.PricingRefreshTotal.WithLabelValues(s.source.Name(), "error").Inc()
		} else {
			logger.Info("fetched current pricing",
				observability.String("source", s.source.Name()),
				observability.Int("models", len(fetched)))
			observability.PricingRefreshTotal.WithLabelValues(s.source.Name(), "ok").Inc()
			table = fetched
		}
	}

	if table == nil {
		table = s.enhancedCuratedTable(ctx)
		observability.PricingRefreshTotal.WithLabelValues("curated", "ok").Inc()
	}

	snap := cache.Snapshot[PricingTable]{Value: table, FetchedAt: s.now()}
	if err := s.store.Set(ctx, snap); err != nil {
		logger.Warn("failed to store pricing snapshot", observability.Error(err))
	}

	return table
}

// enhancedCuratedTable starts from the curated table and adds inferred
// entries for families present live but absent from it. Discovery failure
// leaves the curated table unmodified.
func (s *PricingService) enhancedCuratedTable(ctx context.Context) PricingTable {
	table := s.opts.CuratedTable.Clone()
	if s.discovery == nil {
		return table
	}

	ids, err := s.discovery.ListModelIDs(ctx)
	if err != nil {
		observability.FromContext(ctx).Debug("model discovery unavailable for pricing enhancement",
			observability.Error(err))
		return table
	}

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
		if _, ok := table[family]; ok {
			continue
		}

		if entry := s.resolver.Resolve(family, table); entry.Known() {
			table[family] = entry
		}
	}

	return table
}
