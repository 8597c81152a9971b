package domain

import (
	"sort"
	"strings"
)

// PricingResolver resolves a family's pricing through an ordered fallback
// chain: exact table match, longest curated prefix match, family-pattern
// inference, then the zero-price sentinel. It never fails; absence of
// information is always representable as the sentinel.
type PricingResolver struct {
	rules []FamilyRule // longest inference match first
}

// NewPricingResolver creates a resolver from the family rules. Inference
// patterns are re-sorted longest-match-first so precedence stays a property
// of the data, not of code order.
func NewPricingResolver(rules []FamilyRule) *PricingResolver {
	ordered := make([]FamilyRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(inferMatch(ordered[i])) > len(inferMatch(ordered[j]))
	})
	return &PricingResolver{rules: ordered}
}

func inferMatch(rule FamilyRule) string {
	if rule.InferMatch != "" {
		return rule.InferMatch
	}
	return rule.Prefix
}

// Resolve returns the pricing entry for a family, falling through the chain
// until one step succeeds.
func (r *PricingResolver) Resolve(familyID string, table PricingTable) PricingEntry {
	if entry, ok := table[familyID]; ok {
		return entry
	}

	// Longest curated key that is a prefix of the family wins.
	best := ""
	for key := range table {
		if key != "" && strings.HasPrefix(familyID, key) && len(key) > len(best) {
			best = key
		}
	}
	if best != "" {
		return table[best]
	}

	for _, rule := range r.rules {
		if strings.Contains(familyID, inferMatch(rule)) {
			return rule.Inferred
		}
	}

	return SentinelPricing()
}
