// internal/library/suggest.go
package library

import (
	"strings"
	"unicode"

	"github.com/hbollon/go-edlib"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// suggestionFloor is the minimum Jaro-Winkler similarity for a section name
// to be offered as a likely typo correction.
const suggestionFloor = 0.70

// ClosestName returns the candidate most similar to name, for use as a
// "did you mean" hint when a configured library matches no section. Returns
// false when no candidate clears the similarity floor.
func ClosestName(name string, candidates []string) (string, bool) {
	normalized := normalizeName(name)

	best := ""
	bestScore := 0.0
	for _, candidate := range candidates {
		score := float64(edlib.JaroWinklerSimilarity(normalized, normalizeName(candidate)))
		if score > bestScore {
			best = candidate
			bestScore = score
		}
	}

	if bestScore < suggestionFloor {
		return "", false
	}
	return best, true
}

// normalizeName prepares a section name for similarity comparison:
// lowercase, accents folded, whitespace collapsed.
func normalizeName(s string) string {
	s = strings.ToLower(s)
	s = removeAccents(s)
	return strings.Join(strings.Fields(s), " ")
}

func removeAccents(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, s)
	return result
}
