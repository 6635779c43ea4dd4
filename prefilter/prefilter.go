// Package prefilter finds candidate match positions in a byte buffer before
// the streaming matcher is run on them.
//
// A prefilter is built from the literal prefixes of a pattern: every match
// begins with one of them, so positions where none occurs can be skipped
// without feeding a single rune to a tokenizer.
//
// The strategy is picked from the literals:
//   - one to three single bytes → memchr (SWAR byte search)
//   - one substring → memmem (rare byte search + verification)
//   - several substrings → Aho-Corasick automaton
//
// Example usage:
//
//	pf := prefilter.New([][]byte{[]byte("get"), []byte("put")}, false)
//	haystack := []byte("x := put(y)")
//	pos := pf.Find(haystack, 0)
//	// pos == 5
package prefilter

import (
	"bytes"
	"slices"
)

// Prefilter quickly finds positions where a match may start.
type Prefilter interface {
	// Find returns the index of the first candidate at or after start, or -1
	// if there is none.
	//
	// A candidate is a position where one of the literals occurs. It does not
	// guarantee a match: the caller verifies it unless IsComplete is true.
	Find(haystack []byte, start int) int

	// IsComplete reports whether a candidate is a full match by itself, of
	// length LiteralLen.
	IsComplete() bool

	// LiteralLen returns the match length when IsComplete is true, 0
	// otherwise.
	LiteralLen() int
}

// New builds the best prefilter for a set of literal prefixes. complete
// states that the pattern matches exactly the single literal given.
//
// Returns nil when no prefilter can be built (no literals, or an empty one).
func New(literals [][]byte, complete bool) Prefilter {
	if len(literals) == 0 {
		return nil
	}
	for _, lit := range literals {
		if len(lit) == 0 {
			return nil
		}
	}
	if len(literals) > 1 {
		complete = false
	}

	if len(literals) == 1 {
		lit := literals[0]
		if len(lit) == 1 {
			return newMemchrPrefilter([]byte{lit[0]}, complete)
		}
		return newMemmemPrefilter(lit, complete)
	}

	// Every literal is cut to the length of the shortest one. The cut
	// literals are still prefixes of every match, and with a single length
	// the earliest ending occurrence is also the earliest starting one.
	n := minLen(literals)
	cut := make([][]byte, 0, len(literals))
	for _, lit := range literals {
		if !slices.ContainsFunc(cut, func(c []byte) bool { return bytes.Equal(c, lit[:n]) }) {
			cut = append(cut, lit[:n])
		}
	}

	switch {
	case len(cut) == 1 && n == 1:
		return newMemchrPrefilter(cut[0], false)
	case len(cut) == 1:
		return newMemmemPrefilter(cut[0], false)
	case n == 1 && len(cut) <= 3:
		needles := make([]byte, len(cut))
		for i, c := range cut {
			needles[i] = c[0]
		}
		return newMemchrPrefilter(needles, false)
	}
	return newAhoCorasickPrefilter(cut)
}

// minLen returns the length of the shortest literal.
func minLen(literals [][]byte) int {
	n := len(literals[0])
	for _, lit := range literals[1:] {
		n = min(n, len(lit))
	}
	return n
}
