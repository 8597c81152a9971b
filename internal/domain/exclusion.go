package domain

import "strings"

// ExclusionPolicy is a pure predicate over a deny-list of substring patterns.
// It is applied both to identifiers discovered live and to identifiers
// considered for pricing inference, so an excluded family can never enter
// the catalog through either path.
type ExclusionPolicy struct {
	patterns []string
}

// NewExclusionPolicy creates a policy from the deny-list patterns.
func NewExclusionPolicy(patterns []string) *ExclusionPolicy {
	lowered := make([]string, 0, len(patterns))
	for _, pattern := range patterns {
		if pattern == "" {
			continue
		}
		lowered = append(lowered, strings.ToLower(pattern))
	}
	return &ExclusionPolicy{patterns: lowered}
}

// IsExcluded reports whether the raw or family identifier matches any
// deny-list pattern.
func (p *ExclusionPolicy) IsExcluded(id string) bool {
	id = strings.ToLower(id)
	for _, pattern := range p.patterns {
		if strings.Contains(id, pattern) {
			return true
		}
	}
	return false
}
