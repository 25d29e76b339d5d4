package service

import "strings"

// normalizeQuery prepares a user-supplied location query for matching:
// hyphens become spaces (URL slugs like "downtown-dubai" arrive hyphenated),
// everything is lowercased and trimmed.
func normalizeQuery(q string) string {
	q = strings.ReplaceAll(q, "-", " ")
	q = strings.ToLower(strings.TrimSpace(q))
	return strings.Join(strings.Fields(q), " ")
}

// matchesArea reports whether the query matches the listing's combined
// location text. A match is either the full normalized phrase appearing as a
// substring, or every individual word of the query appearing somewhere in the
// text. The disjunction tolerates both exact-phrase and scattered-term
// queries; it is intentionally loose for multi-word queries.
func matchesArea(query, text string) bool {
	q := normalizeQuery(query)
	if q == "" {
		return true
	}
	t := strings.ToLower(text)

	if strings.Contains(t, q) {
		return true
	}

	for _, word := range strings.Fields(q) {
		if !strings.Contains(t, word) {
			return false
		}
	}
	return true
}

// containsFold reports whether needle appears in haystack, ignoring case.
func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

// equalTrimFold compares two values ignoring case and surrounding whitespace.
func equalTrimFold(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}
