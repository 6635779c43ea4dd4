package pattern

import (
	"slices"
	"sort"
)

// span is an inclusive rune interval.
type span struct {
	lo, hi rune
}

// runeSet is a sorted list of disjoint, non-adjacent spans.
type runeSet []span

// newRuneSet sorts and merges spans.
func newRuneSet(spans []span) runeSet {
	if len(spans) == 0 {
		return nil
	}
	spans = slices.Clone(spans)
	slices.SortFunc(spans, func(a, b span) int {
		return int(a.lo) - int(b.lo)
	})

	merged := spans[:1]
	for _, s := range spans[1:] {
		last := &merged[len(merged)-1]
		if s.lo <= last.hi+1 {
			last.hi = max(last.hi, s.hi)
			continue
		}
		merged = append(merged, s)
	}
	return runeSet(merged)
}

func (s runeSet) contains(r rune) bool {
	i := sort.Search(len(s), func(i int) bool {
		return s[i].hi >= r
	})
	return i < len(s) && s[i].lo <= r
}

// class matches one rune against include and exclude sets. An empty include
// set accepts any rune.
type class struct {
	repeat
	include runeSet
	exclude runeSet
}

func (c *class) reset(*state) {}

func (c *class) write(_ *state, r rune) int {
	if c.matches(r) {
		return 1
	}
	return NoMatch
}

func (c *class) matches(r rune) bool {
	if len(c.include) > 0 && !c.include.contains(r) {
		return false
	}
	return len(c.exclude) == 0 || !c.exclude.contains(r)
}

func (c *class) closed(*state) bool {
	return true
}
