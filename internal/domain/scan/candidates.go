package scan

import (
	"strings"
	"unicode"
)

// CandidateKeys is an ordered list of accepted spellings for a logical field.
// Earlier entries win. Spellings compare equal after lowercasing and
// stripping whitespace, hyphens, and underscores, so each set only needs one
// spelling per distinct word sequence.
type CandidateKeys []string

// Default candidate sets for the fields the scan response carries. Spanish
// variants are listed because attendance databases in the field mix both
// naming conventions on the same workspace.
var (
	FirstNameKeys = CandidateKeys{"First Name", "Nombre", "Given Name", "Nombres"}
	LastNameKeys  = CandidateKeys{"Last Name", "Apellido", "Apellidos", "Surname"}
	FullNameKeys  = CandidateKeys{"Full Name", "Nombre Completo", "Name", "Nombre y Apellido"}
	DocumentKeys  = CandidateKeys{"Document", "Documento", "Doc", "DNI", "Cedula", "ID Document"}
)

// FoldKey folds a property name for candidate comparison: lowercase, with
// whitespace, hyphens, and underscores removed.
func FoldKey(key string) string {
	var b strings.Builder
	b.Grow(len(key))
	for _, r := range key {
		if unicode.IsSpace(r) || r == '-' || r == '_' {
			continue
		}
		b.WriteRune(unicode.ToLower(r))
	}
	return b.String()
}

// Resolve returns the first literal key in keys (map iteration order hidden
// behind a folded index) matching one of the candidates, in candidate order.
// The second return is false when no candidate matches.
func (c CandidateKeys) Resolve(keys []string) (string, bool) {
	folded := make(map[string]string, len(keys))
	for _, k := range keys {
		f := FoldKey(k)
		if _, taken := folded[f]; !taken {
			folded[f] = k
		}
	}
	for _, cand := range c {
		if literal, ok := folded[FoldKey(cand)]; ok {
			return literal, true
		}
	}
	return "", false
}
