// Package match isolates name-based entity matching so it can be swapped
// for an id-keyed join once provider identity data is reliable.
package match

import (
	"strings"
	"unicode"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Kind reports which matching stage produced a result.
type Kind int

const (
	KindExact Kind = iota
	KindSubstring
	KindFuzzy
)

func (k Kind) String() string {
	switch k {
	case KindExact:
		return "exact"
	case KindSubstring:
		return "substring"
	case KindFuzzy:
		return "fuzzy"
	}
	return "unknown"
}

var stripMarks = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize lowercases a name, strips diacritics and all characters that are
// neither alphanumeric nor spaces, and collapses whitespace. It is a
// best-effort heuristic key, not a guaranteed-unique identifier.
func Normalize(name string) string {
	if stripped, _, err := transform.String(stripMarks, name); err == nil {
		name = stripped
	}
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(name) {
		if r == ' ' || (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

// LastName returns the normalized final name token, used for crediting
// kickers from scoring-play text.
func LastName(name string) string {
	fields := strings.Fields(Normalize(name))
	if len(fields) == 0 {
		return ""
	}
	return fields[len(fields)-1]
}

// Matcher resolves a candidate name against a set of known entity names.
type Matcher struct {
	// MinSimilarity is the Levenshtein similarity floor for the fuzzy
	// stage, in (0,1].
	MinSimilarity float64
}

// New creates a Matcher with the given fuzzy similarity floor.
func New(minSimilarity float64) Matcher {
	return Matcher{MinSimilarity: minSimilarity}
}

// Match resolves candidate against known names using three stages: exact
// normalized match, substring containment in either direction, then
// Levenshtein similarity. The substring stage can mis-credit a shorter name
// contained in a longer one; the returned Kind lets callers audit which
// stage fired.
func (m Matcher) Match(candidate string, known []string) (string, Kind, bool) {
	normCand := Normalize(candidate)
	if normCand == "" {
		return "", 0, false
	}

	for _, k := range known {
		if Normalize(k) == normCand {
			return k, KindExact, true
		}
	}

	for _, k := range known {
		nk := Normalize(k)
		if nk == "" {
			continue
		}
		if strings.Contains(nk, normCand) || strings.Contains(normCand, nk) {
			return k, KindSubstring, true
		}
	}

	best := ""
	bestSim := -1.0
	for _, k := range known {
		nk := Normalize(k)
		if nk == "" {
			continue
		}
		sim := similarity(normCand, nk)
		if sim >= m.MinSimilarity && sim > bestSim {
			best = k
			bestSim = sim
		}
	}
	if best != "" {
		return best, KindFuzzy, true
	}

	return "", 0, false
}

// similarity converts Levenshtein distance to a 0-1 similarity ratio.
func similarity(a, b string) float64 {
	maxLen := len(a)
	if len(b) > maxLen {
		maxLen = len(b)
	}
	if maxLen == 0 {
		return 0
	}
	dist := fuzzy.LevenshteinDistance(a, b)
	return 1 - float64(dist)/float64(maxLen)
}
