package pattern

import (
	"github.com/coregx/patstream/internal/bitflag"
	"github.com/coregx/patstream/internal/sparse"
)

// Write results. Any positive value is a match: the length of the completed
// occurrence.
const (
	NoMatch  = -1
	NeedData = 0
)

// parseResult is what a builder reports for one rune of pattern text.
type parseResult uint8

const (
	parseIgnored   parseResult = 0
	parseProcessed parseResult = 1 << 0
	parseEndOfItem parseResult = 1 << 1

	// parseProcessedEnd consumes the rune and completes the item.
	parseProcessedEnd = parseProcessed | parseEndOfItem
)

func (r parseResult) processed() bool {
	return bitflag.Test(r, parseProcessed)
}

func (r parseResult) ended() bool {
	return bitflag.Test(r, parseEndOfItem)
}

func (r parseResult) withoutEnd() parseResult {
	return bitflag.Clear(r, parseEndOfItem)
}

// item is a compiled, immutable node of the pattern tree: a char, a class or
// a group.
type item interface {
	// bounds returns the quantifier: max == 0 means unbounded.
	bounds() (min, max int)

	// reset prepares st for a new occurrence of the item.
	reset(st *state)

	// write evaluates one rune: NoMatch, NeedData or the occurrence length.
	write(st *state, r rune) int

	// closed reports whether the current occurrence cannot consume more runes.
	closed(st *state) bool
}

// repeat holds the quantifier shared by all items.
type repeat struct {
	min, max int
}

func (q repeat) bounds() (int, int) {
	return q.min, q.max
}

// state records the matching progress of one item occurrence. Leaf items keep
// nothing in it; groups use the cursor fields and nest child states.
type state struct {
	index     int  // current child of a sequence
	count     int  // completed occurrences of the current child
	length    int  // runes consumed by this occurrence
	matched   int  // length when a child occurrence last completed
	extending bool // the current child completed and keeps growing

	choice int         // resolved alternative, -1 while several are live
	live   *sparse.Set // live alternatives
	sub    *state      // state of the current child of a sequence
	alts   []state     // one state per alternative
}
