package domain

import "context"

// CatalogClient lists raw model identifiers from a remote catalog. It keeps
// no cache of its own; callers treat an error or an empty result as
// "discovery unavailable".
type CatalogClient interface {
	// ListModelIDs returns the raw model identifiers the account can see.
	ListModelIDs(ctx context.Context) ([]string, error)
}

// PricingSource fetches a pricing table from an external best-effort source.
// Every failure mode surfaces as an error; callers degrade to the curated
// table instead of propagating it.
type PricingSource interface {
	// FetchPricing returns the current pricing table.
	FetchPricing(ctx context.Context) (PricingTable, error)

	// Name returns the source identifier.
	Name() string
}
