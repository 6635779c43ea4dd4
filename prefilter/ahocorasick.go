package prefilter

import (
	"github.com/coregx/ahocorasick"
)

// ahoCorasickPrefilter searches for several literals of one common length
// with an Aho-Corasick automaton.
type ahoCorasickPrefilter struct {
	auto *ahocorasick.Automaton
	// memmem fallback when the automaton cannot be built
	fallback []*memmemPrefilter
}

func newAhoCorasickPrefilter(literals [][]byte) Prefilter {
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern(lit)
	}
	auto, err := builder.Build()
	if err == nil {
		return &ahoCorasickPrefilter{auto: auto}
	}

	p := &ahoCorasickPrefilter{}
	for _, lit := range literals {
		p.fallback = append(p.fallback, newMemmemPrefilter(lit, false))
	}
	return p
}

// Find implements Prefilter.Find.
func (p *ahoCorasickPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	if p.auto != nil {
		m := p.auto.Find(haystack, start)
		if m == nil {
			return -1
		}
		return m.Start
	}

	best := -1
	for _, f := range p.fallback {
		if pos := f.Find(haystack, start); pos != -1 && (best == -1 || pos < best) {
			best = pos
		}
	}
	return best
}

// IsComplete implements Prefilter.IsComplete.
func (p *ahoCorasickPrefilter) IsComplete() bool {
	return false
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *ahoCorasickPrefilter) LiteralLen() int {
	return 0
}
