package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Patrick Mahomes", "patrick mahomes"},
		{"A.J. Brown", "aj brown"},
		{"Amon-Ra St. Brown", "amonra st brown"},
		{"José Ramírez", "jose ramirez"},
		{"  Travis   Kelce  ", "travis kelce"},
		{"D'Andre Swift", "dandre swift"},
		{"", ""},
		{"...", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Normalize(tt.in), "input %q", tt.in)
	}
}

func TestLastName(t *testing.T) {
	assert.Equal(t, "mahomes", LastName("Patrick Mahomes"))
	assert.Equal(t, "butker", LastName("H. Butker"))
	assert.Equal(t, "kelce", LastName("Kelce"))
	assert.Equal(t, "", LastName("  "))
}

func TestMatcher_Exact(t *testing.T) {
	m := New(0.8)
	known := []string{"patrick mahomes", "travis kelce", "isiah pacheco"}

	got, kind, ok := m.Match("Patrick Mahomes", known)
	require.True(t, ok)
	assert.Equal(t, "patrick mahomes", got)
	assert.Equal(t, KindExact, kind)
}

func TestMatcher_SubstringBothDirections(t *testing.T) {
	m := New(0.8)

	// Candidate contained in a known name.
	got, kind, ok := m.Match("Mahomes", []string{"patrick mahomes"})
	require.True(t, ok)
	assert.Equal(t, "patrick mahomes", got)
	assert.Equal(t, KindSubstring, kind)

	// Known name contained in the candidate.
	got, kind, ok = m.Match("Patrick Mahomes II", []string{"patrick mahomes"})
	require.True(t, ok)
	assert.Equal(t, "patrick mahomes", got)
	assert.Equal(t, KindSubstring, kind)
}

func TestMatcher_Fuzzy(t *testing.T) {
	m := New(0.8)

	got, kind, ok := m.Match("Patrick Mahones", []string{"patrick mahomes", "travis kelce"})
	require.True(t, ok)
	assert.Equal(t, "patrick mahomes", got)
	assert.Equal(t, KindFuzzy, kind)
}

func TestMatcher_BelowFloorNoMatch(t *testing.T) {
	m := New(0.8)

	_, _, ok := m.Match("Josh Allen", []string{"patrick mahomes", "travis kelce"})
	assert.False(t, ok)
}

func TestMatcher_EmptyCandidate(t *testing.T) {
	m := New(0.8)

	_, _, ok := m.Match("...", []string{"patrick mahomes"})
	assert.False(t, ok)
}

func TestSimilarity(t *testing.T) {
	assert.Equal(t, 1.0, similarity("mahomes", "mahomes"))
	assert.InDelta(t, 1-1.0/7, similarity("mahomes", "mahones"), 1e-9)
	assert.Equal(t, 0.0, similarity("", ""))
}
