// Package kmp implements single-pattern exact substring matching with
// the Knuth-Morris-Pratt prefix-function table. Matching is O(n) in the
// text length regardless of pattern or alphabet, and finds overlapping
// occurrences.
//
// The matcher is generic over any comparable symbol type — runes for
// text, but equally bytes, ints, or token IDs. Offsets are always in
// symbol units. NewString and the *String helpers cover the common case
// of scanning UTF-8 text rune by rune.
package kmp

// Matcher is an immutable compiled pattern. Safe for concurrent use.
type Matcher[S comparable] struct {
	pat []S
	pfx []int
}

// New compiles a pattern. Panics on an empty pattern: a matcher for the
// empty pattern is meaningless and signals a caller bug.
func New[S comparable](pattern []S) *Matcher[S] {
	if len(pattern) == 0 {
		panic("kmp: empty pattern")
	}
	pat := append([]S(nil), pattern...)
	return &Matcher[S]{pat: pat, pfx: prefixTable(pat)}
}

// NewString compiles a pattern from a string, treating each rune as one
// symbol.
func NewString(pattern string) *Matcher[rune] {
	return New([]rune(pattern))
}

// prefixTable computes, for each i, the length of the longest proper
// prefix of pat[:i+1] that is also a suffix of it. Example, "ababaca":
//
//	prefix length | 1 2 3 4 5 6 7
//	table entry   | 0 0 1 2 3 0 1
//
// Construction is the matching loop run against the pattern itself, so
// the same amortized O(L) argument applies.
func prefixTable[S comparable](pat []S) []int {
	pfx := make([]int, len(pat))
	matched := 0
	for i := 1; i < len(pat); i++ {
		for matched > 0 && pat[matched] != pat[i] {
			matched = pfx[matched-1]
		}
		if pat[matched] == pat[i] {
			matched++
		}
		pfx[i] = matched
	}
	return pfx
}

// Find scans text once and returns the start offset of every
// occurrence, in order, including overlapping ones. Empty text yields
// nil.
func (m *Matcher[S]) Find(text []S) []int {
	var ret []int
	matched := 0
	for i, c := range text {
		for matched > 0 && m.pat[matched] != c {
			matched = m.pfx[matched-1]
		}
		if m.pat[matched] == c {
			matched++
		}
		if matched == len(m.pat) {
			ret = append(ret, i+1-len(m.pat))
			// Restart from the longest border so overlapping
			// occurrences are still found.
			matched = m.pfx[len(m.pat)-1]
		}
	}
	return ret
}

// Iter returns a lazy cursor over the same offsets Find would return.
// Each Next call consumes input only until the next occurrence, so an
// abandoned cursor skips the rest of the text.
func (m *Matcher[S]) Iter(text []S) *Iterator[S] {
	return &Iterator[S]{m: m, text: text}
}

// Len returns the pattern length in symbols.
func (m *Matcher[S]) Len() int {
	return len(m.pat)
}

// PrefixTable returns a copy of the prefix-function table.
func (m *Matcher[S]) PrefixTable() []int {
	return append([]int(nil), m.pfx...)
}

// FindString runs Find over the runes of text. Offsets are rune counts,
// not byte offsets.
func FindString(m *Matcher[rune], text string) []int {
	var ret []int
	matched := 0
	pos := 0
	for _, c := range text {
		for matched > 0 && m.pat[matched] != c {
			matched = m.pfx[matched-1]
		}
		if m.pat[matched] == c {
			matched++
		}
		if matched == len(m.pat) {
			ret = append(ret, pos+1-len(m.pat))
			matched = m.pfx[len(m.pat)-1]
		}
		pos++
	}
	return ret
}

// Iterator is a resumable cursor: pattern, text, read position, and the
// current partial-match length.
type Iterator[S comparable] struct {
	m       *Matcher[S]
	text    []S
	i       int
	matched int
}

// Next returns the start offset of the next occurrence, or ok=false
// when the text is exhausted.
func (it *Iterator[S]) Next() (int, bool) {
	m := it.m
	for it.i < len(it.text) {
		c := it.text[it.i]
		it.i++
		for it.matched > 0 && m.pat[it.matched] != c {
			it.matched = m.pfx[it.matched-1]
		}
		if m.pat[it.matched] == c {
			it.matched++
		}
		if it.matched == len(m.pat) {
			it.matched = m.pfx[len(m.pat)-1]
			return it.i - len(m.pat), true
		}
	}
	return 0, false
}
