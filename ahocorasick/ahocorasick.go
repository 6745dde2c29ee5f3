// Package ahocorasick implements multi-pattern exact substring matching
// with an Aho-Corasick automaton: a keyword trie augmented with failure
// links and per-state output sets. A single left-to-right pass over the
// text finds every occurrence of every keyword, including overlapping
// ones, in O(n + m + z) where n=text length, m=total keyword length,
// z=number of matches.
//
// All offsets are measured in runes, not bytes, so results stay correct
// for multibyte UTF-8 text.
//
// Typical use: AddKeyword for each keyword, then Match or Iter as many
// times as needed. Failure links are derived state — any insertion marks
// them stale and the next Match/Iter (or an explicit Build) recomputes
// them from scratch. Once built, the automaton is safe for concurrent
// read-only matching; insertion and Build must be externally serialized.
package ahocorasick

import (
	"unicode/utf8"
)

// Match is a single keyword occurrence in the scanned text.
type Match struct {
	Start   int // rune offset of the first symbol of the occurrence
	Keyword int // index of the matched keyword, as returned by AddKeyword
}

// Automaton is a multi-pattern matcher over a growing keyword set.
//
// States live in an arena addressed by integer index; state 0 is the
// root. Goto edges, failure links, and output sets are parallel tables
// keyed by state index. The zero value is not usable — call New.
type Automaton struct {
	keywords []string
	lens     []int          // rune length per keyword
	byText   map[string]int // keyword text -> index, for dedup

	next     []map[rune]int // goto edges per state
	terminal [][]int        // keywords terminating exactly at each state

	// Derived tables, valid only when built is true. fails[0] is never
	// read: the root has no failure link.
	fails   []int
	outputs [][]int
	built   bool
}

// New returns an empty automaton containing only the root state.
func New() *Automaton {
	return &Automaton{
		byText:   make(map[string]int),
		next:     []map[rune]int{{}},
		terminal: [][]int{nil},
	}
}

// AddKeyword inserts a keyword into the trie and returns its index.
//
// Duplicate keywords are deduplicated: re-inserting identical text
// returns the existing index and each occurrence in a scanned text is
// reported once. Panics on an empty keyword — that is a caller bug, not
// a recoverable condition.
//
// A successful insertion invalidates failure links and merged output
// sets; they are rebuilt on the next Build, Match, or Iter call.
func (a *Automaton) AddKeyword(kw string) int {
	if kw == "" {
		panic("ahocorasick: empty keyword")
	}
	if idx, ok := a.byText[kw]; ok {
		return idx
	}

	idx := len(a.keywords)
	a.keywords = append(a.keywords, kw)
	a.lens = append(a.lens, utf8.RuneCountInString(kw))
	a.byText[kw] = idx

	// Walk the shared prefix, then allocate one state per remaining rune.
	state := 0
	for _, r := range kw {
		if t, ok := a.next[state][r]; ok {
			state = t
			continue
		}
		t := len(a.next)
		a.next[state][r] = t
		a.next = append(a.next, map[rune]int{})
		a.terminal = append(a.terminal, nil)
		state = t
	}
	a.terminal[state] = append(a.terminal[state], idx)

	a.built = false
	a.fails = nil
	a.outputs = nil
	return idx
}

// Build computes failure links and merged output sets. Idempotent: a
// no-op when the derived tables are already valid. Match and Iter call
// it automatically, so an explicit call is only needed to control when
// the (one-time) construction cost is paid — e.g. before sharing the
// automaton across goroutines.
func (a *Automaton) Build() {
	if a.built {
		return
	}

	n := len(a.next)
	fails := make([]int, n)
	outputs := make([][]int, n)
	for s := 0; s < n; s++ {
		if len(a.terminal[s]) > 0 {
			outputs[s] = append([]int(nil), a.terminal[s]...)
		}
	}

	// Breadth-first from the root's children. A single-rune prefix has
	// only the empty string as proper suffix, so depth-1 states fail to
	// the root.
	queue := make([]int, 0, n)
	for _, t := range a.next[0] {
		queue = append(queue, t)
	}

	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]

		// fails[s] is final here: BFS processes states in depth order
		// and every failure target is strictly shallower.
		for r, t := range a.next[s] {
			f := fails[s]
			for f != 0 {
				if _, ok := a.next[f][r]; ok {
					break
				}
				f = fails[f]
			}
			if g, ok := a.next[f][r]; ok {
				fails[t] = g
			} else {
				fails[t] = 0
			}

			// output(t) = terminal(t) ∪ output(fail(t)). fail(t) is
			// shallower than t, so its output set is already merged.
			if inherited := outputs[fails[t]]; len(inherited) > 0 {
				outputs[t] = append(outputs[t], inherited...)
			}
			queue = append(queue, t)
		}
	}

	a.fails = fails
	a.outputs = outputs
	a.built = true
}

// step advances one rune: follow failure links until a goto edge on r
// exists or the root is reached, then take the edge if present.
func (a *Automaton) step(state int, r rune) int {
	for state != 0 {
		if _, ok := a.next[state][r]; ok {
			break
		}
		state = a.fails[state]
	}
	if t, ok := a.next[state][r]; ok {
		return t
	}
	return 0
}

// Match scans text once and returns every keyword occurrence, including
// overlapping ones. Matches are ordered by the position of their last
// rune; the relative order of matches ending at the same position is
// unspecified. Builds failure links first if they are stale. Empty text
// or an empty keyword set yields nil.
func (a *Automaton) Match(text string) []Match {
	a.Build()

	var ret []Match
	state := 0
	pos := 0
	for _, r := range text {
		state = a.step(state, r)
		for _, kw := range a.outputs[state] {
			ret = append(ret, Match{Start: pos - a.lens[kw] + 1, Keyword: kw})
		}
		pos++
	}
	return ret
}

// Iter returns a lazy cursor over the same matches Match would produce,
// in the same order. Each Next call does bounded work: it either yields
// a pending match at the current state or consumes exactly one more
// rune. Abandoning the iterator early skips the rest of the scan; no
// result list is allocated up front.
//
// The iterator is forward-only and non-restartable. Inserting keywords
// while an iterator is live is a caller error.
func (a *Automaton) Iter(text string) *Iterator {
	a.Build()
	return &Iterator{a: a, text: text}
}

// Keyword returns the keyword text for an index returned by AddKeyword
// or reported in a Match.
func (a *Automaton) Keyword(idx int) string {
	return a.keywords[idx]
}

// NumKeywords returns the number of distinct keywords inserted.
func (a *Automaton) NumKeywords() int {
	return len(a.keywords)
}

// NumStates returns the number of trie states including the root.
func (a *Automaton) NumStates() int {
	return len(a.next)
}

// Iterator is a resumable cursor over the matches in one text: the
// current state, the read position, and the not-yet-yielded tail of the
// current state's output set.
type Iterator struct {
	a       *Automaton
	text    string
	off     int   // byte offset of the next rune
	pos     int   // runes consumed so far
	state   int
	pending []int // unreported outputs of the current state
}

// Next returns the next match, or ok=false when the text is exhausted
// and no pending outputs remain.
func (it *Iterator) Next() (Match, bool) {
	for {
		if len(it.pending) > 0 {
			kw := it.pending[0]
			it.pending = it.pending[1:]
			return Match{Start: it.pos - it.a.lens[kw], Keyword: kw}, true
		}
		if it.off >= len(it.text) {
			return Match{}, false
		}
		r, size := utf8.DecodeRuneInString(it.text[it.off:])
		it.off += size
		it.pos++
		it.state = it.a.step(it.state, r)
		it.pending = it.a.outputs[it.state]
	}
}
