package ahocorasick

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func build(keywords ...string) *Automaton {
	a := New()
	for _, kw := range keywords {
		a.AddKeyword(kw)
	}
	return a
}

// drain collects every match from an iterator.
func drain(it *Iterator) []Match {
	var ret []Match
	for m, ok := it.Next(); ok; m, ok = it.Next() {
		ret = append(ret, m)
	}
	return ret
}

func TestMatch_SingleKeyword(t *testing.T) {
	a := build("she")
	assert.Equal(t, []Match{{Start: 0, Keyword: 0}}, a.Match("she"))
	assert.Equal(t, []Match{{Start: 4, Keyword: 0}}, a.Match("    she"))
}

func TestMatch_MultipleKeywords(t *testing.T) {
	a := build("hers", "his", "she")
	assert.Equal(t, []Match{
		{Start: 1, Keyword: 2},
		{Start: 5, Keyword: 0},
		{Start: 10, Keyword: 1},
	}, a.Match(" she hers his "))
}

func TestMatch_Overlap(t *testing.T) {
	// "his" ends at rune 2, "she" ends at rune 4 — the shared 'h'/'s'
	// boundary must not lose either occurrence.
	a := build("his", "she")
	assert.Equal(t, []Match{
		{Start: 0, Keyword: 0},
		{Start: 2, Keyword: 1},
	}, a.Match("hishe"))
}

func TestMatch_SharedSuffixPrefix(t *testing.T) {
	a := build("hers", "his", "she")
	assert.Equal(t, []Match{
		{Start: 0, Keyword: 0},
		{Start: 3, Keyword: 2},
	}, a.Match("hershe"))
}

func TestMatch_FailureChainRecovery(t *testing.T) {
	// Matching "xfoo" fails after "xfo", but the failure state for "fo"
	// carries an output that must still be reported.
	a := build("fo", "xfoo", "bar", "bax")
	assert.Equal(t, []Match{
		{Start: 1, Keyword: 0},
		{Start: 3, Keyword: 3},
		{Start: 6, Keyword: 2},
	}, a.Match("xfobaxbar"))
}

func TestMatch_EmptyText(t *testing.T) {
	a := build("his", "she")
	assert.Nil(t, a.Match(""))
}

func TestMatch_NoKeywords(t *testing.T) {
	a := New()
	assert.Nil(t, a.Match("any text at all"))
}

func TestMatch_RuneOffsets(t *testing.T) {
	// Offsets count runes, not bytes: "año" is 4 bytes but 3 runes.
	a := build("ñ", "año")
	assert.Equal(t, []Match{
		{Start: 1, Keyword: 0},
		{Start: 0, Keyword: 1},
	}, a.Match("año"))

	assert.Equal(t, []Match{
		{Start: 3, Keyword: 0},
		{Start: 2, Keyword: 1},
	}, a.Match("ehaño"))
}

func TestAddKeyword_Dedup(t *testing.T) {
	a := New()
	assert.Equal(t, 0, a.AddKeyword("login"))
	assert.Equal(t, 1, a.AddKeyword("auth"))
	assert.Equal(t, 0, a.AddKeyword("login"))
	assert.Equal(t, 2, a.NumKeywords())

	// One report per occurrence, not one per insertion.
	assert.Equal(t, []Match{{Start: 0, Keyword: 0}}, a.Match("login"))
}

func TestAddKeyword_EmptyPanics(t *testing.T) {
	a := New()
	assert.Panics(t, func() { a.AddKeyword("") })
}

func TestAddKeyword_SharedPrefixStates(t *testing.T) {
	// hers/his/she: root + 4 + 2 + 3 states. "his" shares 'h' with "hers".
	a := build("hers", "his", "she")
	assert.Equal(t, 10, a.NumStates())
}

func TestBuild_Idempotent(t *testing.T) {
	a := build("hers", "his", "she")
	a.Build()

	fails := append([]int(nil), a.fails...)
	outputs := make([][]int, len(a.outputs))
	for i, o := range a.outputs {
		outputs[i] = append([]int(nil), o...)
	}

	a.Build()
	a.Build()
	assert.Equal(t, fails, a.fails)
	assert.Equal(t, outputs, a.outputs)
}

func TestAddKeyword_InvalidatesBuild(t *testing.T) {
	a := build("he")
	assert.Equal(t, []Match{{Start: 1, Keyword: 0}}, a.Match("she"))

	// Insertion after a build must leave no stale links behind.
	a.AddKeyword("she")
	assert.Equal(t, []Match{
		{Start: 1, Keyword: 0},
		{Start: 0, Keyword: 1},
	}, a.Match("she"))
}

func TestInsertOrder_Irrelevant(t *testing.T) {
	// Matching after a late insertion equals building everything up front.
	early := build("fo", "xfoo", "bar", "bax")

	late := build("fo", "xfoo", "bar")
	late.Build()
	late.Match("warm up")
	late.AddKeyword("bax")

	assert.Equal(t, early.Match("xfobaxbar"), late.Match("xfobaxbar"))
}

func TestIter_MatchesEager(t *testing.T) {
	a := build("hers", "his", "she", "he", "fo", "xfoo")
	texts := []string{
		"", "x", "she", "hershe", "hishe", "xfobax",
		"ushers say she sells xfoo", "hhhheeeersrsrs",
	}
	for _, text := range texts {
		assert.Equal(t, a.Match(text), drain(a.Iter(text)), "text=%q", text)
	}
}

func TestIter_EarlyStop(t *testing.T) {
	a := build("aa")
	it := a.Iter("aaaa")

	m, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, Match{Start: 0, Keyword: 0}, m)

	// Abandoning the iterator here is the cancellation mechanism; a
	// fresh iterator starts over from the beginning.
	assert.Equal(t, []Match{
		{Start: 0, Keyword: 0},
		{Start: 1, Keyword: 0},
		{Start: 2, Keyword: 0},
	}, drain(a.Iter("aaaa")))
}

func TestIter_PendingOutputsAcrossPulls(t *testing.T) {
	// "hers" and "she" both end inside "hershe"; a state whose output
	// set inherits through the failure chain must yield one match per
	// pull, not a batch.
	a := build("she", "he")
	it := a.Iter("she")

	m1, ok := it.Next()
	require.True(t, ok)
	m2, ok := it.Next()
	require.True(t, ok)
	_, ok = it.Next()
	assert.False(t, ok)

	assert.ElementsMatch(t, []Match{
		{Start: 0, Keyword: 0},
		{Start: 1, Keyword: 1},
	}, []Match{m1, m2})
}

func TestIter_Exhausted(t *testing.T) {
	a := build("his")
	it := a.Iter("")
	_, ok := it.Next()
	assert.False(t, ok)
	_, ok = it.Next()
	assert.False(t, ok)
}

func TestKeyword_Roundtrip(t *testing.T) {
	a := build("fo", "xfoo")
	assert.Equal(t, "fo", a.Keyword(0))
	assert.Equal(t, "xfoo", a.Keyword(1))
	assert.Equal(t, 2, a.NumKeywords())
}

func BenchmarkMatch(b *testing.B) {
	a := New()
	for i := 0; i < 500; i++ {
		a.AddKeyword(fmt.Sprintf("keyword%03d", i))
	}
	a.Build()

	text := ""
	for i := 0; i < 64; i++ {
		text += "some filler keyword042 more filler keyword499 "
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		a.Match(text)
	}
}
