package usecase

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldText pasa a minúsculas y quita acentos ("Conceição" → "conceicao").
func foldText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	out, _, err := transform.String(t, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(strings.TrimSpace(out))
}

// matchesQuery indica si algún campo contiene q, ignorando mayúsculas y acentos. q vacío coincide siempre.
func matchesQuery(q string, fields ...string) bool {
	q = foldText(q)
	if q == "" {
		return true
	}
	for _, f := range fields {
		if strings.Contains(foldText(f), q) {
			return true
		}
	}
	return false
}
