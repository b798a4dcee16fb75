// Package search implements topic discovery matching. Both store
// implementations build on these helpers so that SQL and in-memory search
// agree on semantics.
package search

import (
	"strings"
	"unicode"
)

// Sanitize trims the raw query. An empty result means "no filter".
func Sanitize(query string) string {
	return strings.TrimSpace(query)
}

// CasingVariants returns the three literal casings a technology tag is
// matched against: all-lowercase, all-uppercase and capitalized-first-letter.
// Tag matching is exact, not case-insensitive: a tag like "TypeScript"
// matches none of the variants of "typescript". Postgres has no
// case-insensitive array containment, so this is the contract.
func CasingVariants(query string) []string {
	lower := strings.ToLower(query)
	upper := strings.ToUpper(query)
	return []string{lower, upper, capitalize(query)}
}

func capitalize(s string) string {
	runes := []rune(strings.ToLower(s))
	if len(runes) == 0 {
		return s
	}
	runes[0] = unicode.ToUpper(runes[0])
	return string(runes)
}

// MatchesTopic reports whether a topic matches a sanitized non-empty query:
// case-insensitive substring on title or description, or a technology tag
// equal to one of the casing variants.
func MatchesTopic(title, description string, technologies []string, query string) bool {
	q := strings.ToLower(query)
	if strings.Contains(strings.ToLower(title), q) {
		return true
	}
	if strings.Contains(strings.ToLower(description), q) {
		return true
	}
	for _, variant := range CasingVariants(query) {
		for _, tag := range technologies {
			if tag == variant {
				return true
			}
		}
	}
	return false
}
