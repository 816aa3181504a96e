package reported

import (
	"strings"

	"github.com/wonny/valuescreen/internal/contracts"
)

// taxonomyPrefixes are namespace prefixes stripped from concept tags before comparison,
// so "us-gaap_Revenues" and "us-gaap:Revenues" both match the alias "Revenues".
var taxonomyPrefixes = []string{"us-gaap", "ifrs-full", "dei", "srt"}

// Resolve returns the value of the first item whose concept tag matches one of aliases,
// falling back to the first item whose label matches. Matching is case-insensitive and exact.
// The first matching item decides: if its value is not numeric the result is nil.
func Resolve(items []contracts.RawStatementItem, aliases []string) *float64 {
	if len(items) == 0 || len(aliases) == 0 {
		return nil
	}

	targets := make(map[string]struct{}, len(aliases))
	for _, alias := range aliases {
		targets[normalizeConcept(alias)] = struct{}{}
	}

	// Concept tags are less ambiguous than labels
	for _, item := range items {
		if item.Concept == "" {
			continue
		}
		if _, ok := targets[normalizeConcept(item.Concept)]; ok {
			return item.Float()
		}
	}

	for _, item := range items {
		if item.Label == "" {
			continue
		}
		if _, ok := targets[normalizeLabel(item.Label)]; ok {
			return item.Float()
		}
	}

	return nil
}

func normalizeConcept(concept string) string {
	c := strings.ToLower(strings.TrimSpace(concept))
	for _, prefix := range taxonomyPrefixes {
		if len(c) > len(prefix)+1 && strings.HasPrefix(c, prefix) {
			if sep := c[len(prefix)]; sep == '_' || sep == ':' {
				return c[len(prefix)+1:]
			}
		}
	}
	return c
}

func normalizeLabel(label string) string {
	return strings.ToLower(strings.TrimSpace(label))
}
