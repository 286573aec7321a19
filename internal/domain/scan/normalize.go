// Package scan holds the pure pieces of the scan flow: identifier
// normalization, candidate key matching, and the full-name fallback split.
package scan

import (
	"strings"
	"unicode"
)

// NormalizeID trims the scanned identifier and removes all internal
// whitespace. Matching is whitespace-insensitive but case-sensitive.
func NormalizeID(id string) string {
	var b strings.Builder
	b.Grow(len(id))
	for _, r := range strings.TrimSpace(id) {
		if !unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// TitleEquals reports whether a page title matches the scanned id under
// whitespace-insensitive equality.
func TitleEquals(title, id string) bool {
	return NormalizeID(title) == NormalizeID(id)
}

// SplitFullName splits a combined name at the first whitespace run: the first
// token becomes the first name, everything after it the last name. This is a
// heuristic; multi-token surnames are not segmented further.
func SplitFullName(full string) (first, last string) {
	full = strings.TrimSpace(full)
	if full == "" {
		return "", ""
	}
	fields := strings.Fields(full)
	if len(fields) == 1 {
		return fields[0], ""
	}
	return fields[0], strings.Join(fields[1:], " ")
}
