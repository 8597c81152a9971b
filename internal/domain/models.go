package domain

// DescriptionUnavailable is the description carried by the sentinel pricing
// entry. Callers must treat zero prices as "unknown", never as "free".
const DescriptionUnavailable = "Pricing information not available"

// PricingEntry contains per-1K-token pricing for a model family.
type PricingEntry struct {
	InputPer1K  float64 `json:"input_price_per_1k"`  // USD per 1K input tokens
	OutputPer1K float64 `json:"output_price_per_1k"` // USD per 1K output tokens
	Description string  `json:"description"`
}

// Known reports whether the entry carries real pricing. A resolved entry for
// a known family always has both prices above zero.
func (e PricingEntry) Known() bool {
	return e.InputPer1K > 0 && e.OutputPer1K > 0
}

// SentinelPricing returns the zero-price entry used when no resolution path
// succeeds.
func SentinelPricing() PricingEntry {
	return PricingEntry{
		InputPer1K:  0,
		OutputPer1K: 0,
		Description: DescriptionUnavailable,
	}
}

// PricingTable maps a model family identifier to its pricing.
type PricingTable map[string]PricingEntry

// Clone returns a shallow copy of the table.
func (t PricingTable) Clone() PricingTable {
	clone := make(PricingTable, len(t))
	for family, entry := range t {
		clone[family] = entry
	}
	return clone
}

// PricingPayload is the wire shape external pricing sources deliver per model.
type PricingPayload struct {
	Input       float64 `json:"input"`
	Output      float64 `json:"output"`
	Description string  `json:"description"`
}

// TableFromPayload converts a source payload into a pricing table, dropping
// entries with non-positive prices.
func TableFromPayload(payload map[string]PricingPayload) PricingTable {
	table := make(PricingTable, len(payload))
	for model, entry := range payload {
		if model == "" || entry.Input <= 0 || entry.Output <= 0 {
			continue
		}
		table[model] = PricingEntry{
			InputPer1K:  entry.Input,
			OutputPer1K: entry.Output,
			Description: entry.Description,
		}
	}
	return table
}

// ModelCatalogEntry is one displayable model in the resolved catalog. RawID is
// the first identifier observed for the family and is the one to use in API
// calls; FamilyID is the canonical lineage identity that survives dated and
// versioned releases.
type ModelCatalogEntry struct {
	RawID       string       `json:"id"`
	FamilyID    string       `json:"family_id"`
	DisplayName string       `json:"name"`
	Pricing     PricingEntry `json:"pricing"`
	DisplayText string       `json:"display_text"`
}

// Use cases accepted by model recommendation.
const (
	UseCaseGeneral       = "general"
	UseCaseCostEffective = "cost_effective"
	UseCaseHighQuality   = "high_quality"
)
