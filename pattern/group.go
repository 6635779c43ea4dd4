package pattern

import (
	"github.com/coregx/patstream/internal/sparse"
)

// group matches its children in sequence or, when alts is set, one of its
// alternatives.
//
// A sequence is matched greedily and never gives a consumed rune back: when
// the current child refuses a rune, the group may move on to the next child
// only if that rune is the first one after the last completed occurrence.
type group struct {
	repeat
	items []item

	// optional[i] is true when every child from i on may be skipped.
	// It has len(items)+1 entries.
	optional []bool

	// alts holds the alternatives of a choice group, each a sequence.
	alts []*group
}

func newSequence(items []item, q repeat) *group {
	g := &group{repeat: q, items: items}
	g.optional = make([]bool, len(items)+1)
	g.optional[len(items)] = true
	for i := len(items) - 1; i >= 0; i-- {
		minCount, _ := items[i].bounds()
		g.optional[i] = g.optional[i+1] && minCount == 0
	}
	return g
}

func newChoice(alts []*group, q repeat) *group {
	return &group{repeat: q, alts: alts}
}

func (g *group) isChoice() bool {
	return g.alts != nil
}

func (g *group) reset(st *state) {
	st.index = 0
	st.count = 0
	st.length = 0
	st.matched = 0
	st.extending = false
	st.choice = -1

	if g.isChoice() {
		if st.live == nil || st.live.Cap() != len(g.alts) {
			st.live = sparse.NewSet(len(g.alts))
			st.alts = make([]state, len(g.alts))
		}
		st.live.Fill()
		for i, alt := range g.alts {
			alt.reset(&st.alts[i])
		}
		return
	}

	if len(g.items) == 0 {
		return
	}
	if st.sub == nil {
		st.sub = &state{}
	}
	g.items[0].reset(st.sub)
}

func (g *group) closed(st *state) bool {
	if !g.isChoice() {
		return st.index >= len(g.items)
	}
	if st.choice >= 0 {
		return g.alts[st.choice].closed(&st.alts[st.choice])
	}
	for _, i := range st.live.Values() {
		if !g.alts[i].closed(&st.alts[i]) {
			return false
		}
	}
	return true
}

func (g *group) write(st *state, r rune) int {
	if g.isChoice() {
		return g.writeChoice(st, r)
	}
	if st.index >= len(g.items) {
		return NoMatch
	}
	st.length++
	res := g.items[st.index].write(st.sub, r)
	if res == NoMatch {
		return g.writeNoMatch(st, r)
	}
	return g.writeResult(st, res)
}

// writeResult handles a NeedData or match result of the current child.
func (g *group) writeResult(st *state, res int) int {
	if res == NeedData {
		return NeedData
	}

	it := g.items[st.index]
	minCount, _ := it.bounds()
	if !st.extending {
		st.count++
	}
	st.matched = st.length

	switch {
	case !it.closed(st.sub):
		// Keep feeding the same occurrence; it may still grow.
		st.extending = true
	case allows(it, st.count):
		st.extending = false
		it.reset(st.sub)
	default:
		g.next(st)
		return g.complete(st, st.index)
	}
	if st.count < minCount {
		return NeedData
	}
	return g.complete(st, st.index+1)
}

// writeNoMatch handles a rune the current child refused. The rune has not
// been consumed by this occurrence yet.
func (g *group) writeNoMatch(st *state, r rune) int {
	if st.length > st.matched+1 {
		// Runes after the last completed occurrence cannot be given back.
		return g.fail(st)
	}

	it := g.items[st.index]
	minCount, _ := it.bounds()
	if st.extending {
		st.extending = false
		if allows(it, st.count) {
			it.reset(st.sub)
			if res := it.write(st.sub, r); res != NoMatch {
				return g.writeResult(st, res)
			}
		}
	}
	if st.count < minCount {
		return g.fail(st)
	}

	for {
		g.next(st)
		if st.index >= len(g.items) {
			return NoMatch
		}
		it = g.items[st.index]
		if res := it.write(st.sub, r); res != NoMatch {
			return g.writeResult(st, res)
		}
		if minCount, _ = it.bounds(); minCount > 0 {
			return g.fail(st)
		}
	}
}

// next moves the cursor to the following child and resets it.
func (g *group) next(st *state) {
	st.index++
	st.count = 0
	st.extending = false
	if st.index < len(g.items) {
		g.items[st.index].reset(st.sub)
	}
}

// complete returns the occurrence length when every child from index on is
// optional, NeedData otherwise.
func (g *group) complete(st *state, index int) int {
	if g.optional[index] {
		return st.length
	}
	return NeedData
}

// fail closes the occurrence for good.
func (g *group) fail(st *state) int {
	st.index = len(g.items)
	st.extending = false
	return NoMatch
}

// writeChoice advances every live alternative with r, each on its own state.
// Alternatives refusing r are dropped; the first declared alternative that
// completes decides the result.
func (g *group) writeChoice(st *state, r rune) int {
	if st.choice >= 0 {
		res := g.alts[st.choice].write(&st.alts[st.choice], r)
		if res == NoMatch {
			st.live.Clear()
		}
		return res
	}

	result := NoMatch
	for i, alt := range g.alts {
		if !st.live.Contains(i) {
			continue
		}
		res := alt.write(&st.alts[i], r)
		switch {
		case res == NoMatch:
			st.live.Remove(i)
		case res > 0 && result <= 0:
			result = res
		case res == NeedData && result == NoMatch:
			result = NeedData
		}
	}
	if st.live.Len() == 1 {
		st.choice = st.live.Values()[0]
	}
	return result
}

func allows(it item, count int) bool {
	_, maxCount := it.bounds()
	return maxCount == 0 || count < maxCount
}
