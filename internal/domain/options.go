package domain

import "time"

const (
	defaultCatalogTTL = 6 * time.Hour
	defaultPricingTTL = 24 * time.Hour
)

// FamilyRule describes one known model family: how raw identifiers map onto
// it, how it is displayed, where it sorts, and what pricing to infer when the
// family is absent from the pricing table.
type FamilyRule struct {
	// Prefix is the canonical family identifier; raw identifiers starting
	// with it normalize to it.
	Prefix string

	// DisplayName is the human-readable name for the family.
	DisplayName string

	// Priority ranks the family in the catalog; lower sorts first.
	Priority int

	// InferMatch is the substring that triggers inferred pricing. Prefix is
	// used when empty.
	InferMatch string

	// Inferred is the lower-confidence pricing synthesized when no curated
	// entry covers the family.
	Inferred PricingEntry
}

// Options is the immutable engine configuration: the curated pricing table,
// the ordered family rules, the exclusion deny-list, the recommendation
// policy, and the cache TTLs. It is built once and injected at construction;
// tests substitute alternate tables without touching shared state.
type Options struct {
	CuratedTable      PricingTable
	FamilyRules       []FamilyRule
	Exclusions        []string
	GeneralPreference []string
	DefaultModel      string
	CatalogTTL        time.Duration
	PricingTTL        time.Duration
}

// DefaultOptions returns the curated configuration for the OpenAI chat model
// lineup.
func DefaultOptions() Options {
	return Options{
		CuratedTable: PricingTable{
			"gpt-4o": {
				InputPer1K:  0.0025,
				OutputPer1K: 0.010,
				Description: "Most capable model, best for complex tasks",
			},
			"gpt-4o-mini": {
				InputPer1K:  0.00015,
				OutputPer1K: 0.0006,
				Description: "Faster, cheaper version of GPT-4o",
			},
			"gpt-4-turbo": {
				InputPer1K:  0.01,
				OutputPer1K: 0.03,
				Description: "Previous generation turbo model",
			},
			"gpt-4": {
				InputPer1K:  0.03,
				OutputPer1K: 0.06,
				Description: "Original GPT-4 model",
			},
			"gpt-3.5-turbo": {
				InputPer1K:  0.0005,
				OutputPer1K: 0.0015,
				Description: "Fast and efficient for most tasks",
			},
		},
		FamilyRules: []FamilyRule{
			{
				Prefix:      "gpt-4o-mini",
				DisplayName: "GPT-4o Mini",
				Priority:    2,
				Inferred:    PricingEntry{InputPer1K: 0.00015, OutputPer1K: 0.0006, Description: "GPT-4o Mini variant"},
			},
			{
				Prefix:      "gpt-4o",
				DisplayName: "GPT-4o",
				Priority:    1,
				Inferred:    PricingEntry{InputPer1K: 0.0025, OutputPer1K: 0.010, Description: "GPT-4o variant"},
			},
			{
				Prefix:      "gpt-4-turbo",
				DisplayName: "GPT-4 Turbo",
				Priority:    3,
				Inferred:    PricingEntry{InputPer1K: 0.01, OutputPer1K: 0.03, Description: "GPT-4 Turbo variant"},
			},
			{
				Prefix:      "gpt-4",
				DisplayName: "GPT-4",
				Priority:    4,
				Inferred:    PricingEntry{InputPer1K: 0.03, OutputPer1K: 0.06, Description: "GPT-4 variant"},
			},
			{
				Prefix:      "gpt-3.5-turbo",
				DisplayName: "GPT-3.5 Turbo",
				Priority:    5,
				InferMatch:  "gpt-3.5",
				Inferred:    PricingEntry{InputPer1K: 0.0005, OutputPer1K: 0.0015, Description: "GPT-3.5 Turbo variant"},
			},
		},
		// Withdrawn generations and modality variants that would otherwise
		// collapse into a chat family via prefix rules.
		Exclusions: []string{
			"gpt-4-32k",
			"gpt-3.5-turbo-instruct",
			"chatgpt",
			"-audio",
			"-realtime",
			"-search",
			"-transcribe",
			"-tts",
			"-vision",
		},
		GeneralPreference: []string{"gpt-4o-mini", "gpt-4o"},
		DefaultModel:      "gpt-4o-mini",
		CatalogTTL:        defaultCatalogTTL,
		PricingTTL:        defaultPricingTTL,
	}
}
