package domain

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	// Trailing release date, e.g. gpt-4o-2024-11-20.
	dateSuffix = regexp.MustCompile(`-\d{4}-\d{2}-\d{2}$`)

	// Trailing bare version, e.g. gpt-3.5-turbo-0125 or gpt-4-0613.
	versionSuffix = regexp.MustCompile(`-\d{3,4}$`)
)

// Normalizer collapses raw, possibly dated or versioned model identifiers to
// canonical family identities. It is pure and performs no I/O.
type Normalizer struct {
	rules           []FamilyRule // longest prefix first
	unknownPriority int
	title           cases.Caser
}

// NewNormalizer creates a normalizer from the ordered family rules. Rules are
// re-sorted longest-prefix-first so a generic family never swallows a
// specialized tier.
func NewNormalizer(rules []FamilyRule) *Normalizer {
	ordered := make([]FamilyRule, len(rules))
	copy(ordered, rules)
	sort.SliceStable(ordered, func(i, j int) bool {
		return len(ordered[i].Prefix) > len(ordered[j].Prefix)
	})

	unknown := 0
	for _, rule := range rules {
		if rule.Priority > unknown {
			unknown = rule.Priority
		}
	}

	return &Normalizer{
		rules:           ordered,
		unknownPriority: unknown + 1,
		title:           cases.Title(language.English),
	}
}

// Normalize maps a raw identifier to its family identity: strip a trailing
// date, strip a trailing bare version, then apply the family prefix rules.
// Identifiers no rule covers are returned stripped but otherwise unchanged,
// so they still deduplicate. Normalizing a canonical family returns itself.
func (n *Normalizer) Normalize(rawID string) string {
	family := dateSuffix.ReplaceAllString(rawID, "")
	family = versionSuffix.ReplaceAllString(family, "")

	for _, rule := range n.rules {
		if strings.HasPrefix(family, rule.Prefix) {
			return rule.Prefix
		}
	}

	return family
}

// IsFineTuned reports whether the identifier denotes a fine-tuned model,
// which disqualifies it from the catalog entirely.
func (n *Normalizer) IsFineTuned(rawID string) bool {
	return strings.Contains(rawID, ":") || strings.HasPrefix(rawID, "ft-")
}

// IsChatFamily reports whether the identifier looks like a supported chat
// completion family.
func (n *Normalizer) IsChatFamily(rawID string) bool {
	id := strings.ToLower(rawID)
	for _, rule := range n.rules {
		if strings.HasPrefix(id, rule.Prefix) {
			return true
		}
	}
	return false
}

// DisplayName returns the human-readable name for a family. Unrecognized
// families get a title-cased rendition of the identifier.
func (n *Normalizer) DisplayName(familyID string) string {
	for _, rule := range n.rules {
		if strings.HasPrefix(familyID, rule.Prefix) {
			return rule.DisplayName
		}
	}
	return n.title.String(strings.ReplaceAll(familyID, "-", " "))
}

// Priority returns the catalog sort rank of a family; unknown families rank
// after every known one.
func (n *Normalizer) Priority(familyID string) int {
	for _, rule := range n.rules {
		if strings.HasPrefix(familyID, rule.Prefix) {
			return rule.Priority
		}
	}
	return n.unknownPriority
}
