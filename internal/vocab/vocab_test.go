package vocab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInternAssignsStableIncreasingIDs(t *testing.T) {
	v := New()
	id0 := v.Intern("alpha")
	id1 := v.Intern("beta")
	assert.Equal(t, uint32(0), id0)
	assert.Equal(t, uint32(1), id1)
	assert.Equal(t, id0, v.Intern("alpha"), "re-interning alpha should return its original id")
}

func TestLookupDoesNotIntern(t *testing.T) {
	v := New()
	_, ok := v.Lookup("ghost")
	require.False(t, ok, "expected lookup of an unseen term to fail")
	require.Equal(t, 0, v.Len(), "lookup must not have interned anything")

	id := v.Intern("ghost")
	got, ok := v.Lookup("ghost")
	require.True(t, ok)
	assert.Equal(t, id, got)
}

func TestTermRoundTrips(t *testing.T) {
	v := New()
	id := v.Intern("roundtrip")
	term, ok := v.Term(id)
	require.True(t, ok)
	assert.Equal(t, "roundtrip", term)
}

func TestTermOutOfRangeFails(t *testing.T) {
	v := New()
	_, ok := v.Term(42)
	assert.False(t, ok)
}

func TestLenCountsDistinctTerms(t *testing.T) {
	v := New()
	v.Intern("a")
	v.Intern("b")
	v.Intern("a")
	assert.Equal(t, 2, v.Len())
}
