package pattern

import (
	"strconv"
	"strings"
)

// builder accumulates the pattern text of one item. Once the item reports
// parseEndOfItem, finalize freezes it; build produces the immutable item.
type builder interface {
	parse(r rune) (parseResult, error)
	finalize() error
	build() item

	// pending reports why the item is still open at the end of the pattern.
	pending() error

	quantify(minCount, maxCount int) error
	quantified() bool
}

// quant carries the quantifier of a builder.
type quant struct {
	repeat
	set bool
}

func exactlyOnce() quant {
	return quant{repeat: repeat{min: 1, max: 1}}
}

func (q *quant) quantify(minCount, maxCount int) error {
	if q.set {
		return ErrInvalidNestedRepeat
	}
	q.min, q.max, q.set = minCount, maxCount, true
	return nil
}

func (q *quant) quantified() bool {
	return q.set
}

// charBuilder reads a single literal rune.
type charBuilder struct {
	quant
	r rune
}

func newCharBuilder() *charBuilder {
	return &charBuilder{quant: exactlyOnce()}
}

func (b *charBuilder) parse(r rune) (parseResult, error) {
	b.r = r
	return parseProcessedEnd, nil
}

func (b *charBuilder) finalize() error { return nil }

func (b *charBuilder) pending() error { return nil }

func (b *charBuilder) build() item {
	return &char{repeat: b.repeat, r: b.r}
}

// classBuilder reads a bracketed class: '[' '^'? members ']'.
type classBuilder struct {
	quant
	opened  bool
	started bool // a member or the negation was read
	negated bool
	escaped bool
	inRange bool // a '-' waits for the end of a range
	include []span
	exclude []span

	// last single member, the start of a potential range
	last    rune
	hasLast bool

	frozen *class
}

func newClassBuilder() *classBuilder {
	return &classBuilder{quant: exactlyOnce()}
}

// newAnyBuilder returns a finalized class accepting any rune.
func newAnyBuilder() *classBuilder {
	b := newClassBuilder()
	b.opened, b.started, b.negated = true, true, true
	b.frozen = &class{}
	return b
}

func (b *classBuilder) parse(r rune) (parseResult, error) {
	if !b.opened {
		if r != '[' {
			invariant("class opened with %q", r)
		}
		b.opened = true
		return parseProcessed, nil
	}
	if b.escaped {
		b.escaped = false
		return parseProcessed, b.add(r)
	}

	switch r {
	case '\\':
		b.escaped = true
	case '^':
		if b.started {
			return parseIgnored, ErrMisplacedNegation
		}
		b.negated, b.started = true, true
	case ']':
		if b.inRange {
			return parseIgnored, ErrInvalidRange
		}
		if !b.negated && len(b.include) == 0 {
			return parseIgnored, ErrEmptyClass
		}
		return parseProcessedEnd, nil
	case '-':
		if b.inRange || !b.hasLast {
			return parseIgnored, ErrInvalidRange
		}
		b.inRange = true
	default:
		return parseProcessed, b.add(r)
	}
	return parseProcessed, nil
}

// add records a member, closing a pending range.
func (b *classBuilder) add(r rune) error {
	b.started = true
	members := &b.include
	if b.negated {
		members = &b.exclude
	}

	if b.inRange {
		if r < b.last {
			return ErrInvalidRange
		}
		(*members)[len(*members)-1].hi = r
		b.inRange, b.hasLast = false, false
		return nil
	}
	*members = append(*members, span{lo: r, hi: r})
	b.last, b.hasLast = r, true
	return nil
}

func (b *classBuilder) finalize() error {
	if b.frozen == nil {
		b.frozen = &class{
			include: newRuneSet(b.include),
			exclude: newRuneSet(b.exclude),
		}
	}
	return nil
}

func (b *classBuilder) pending() error {
	if b.escaped {
		return ErrTrailingBackslash
	}
	return ErrMissingBracket
}

func (b *classBuilder) build() item {
	c := *b.frozen
	c.repeat = b.repeat
	return &c
}

// groupBuilder reads '(' expression ')'. Its children are kept per
// alternative; a group without '|' has a single alternative.
type groupBuilder struct {
	quant
	config Config
	depth  int

	opened  bool
	escaped bool
	alts    [][]builder
	current builder // child still reading pattern text

	// counted repetition being read, nil outside of braces
	counting *strings.Builder
}

func newGroupBuilder(config Config, depth int) *groupBuilder {
	return &groupBuilder{
		quant:  exactlyOnce(),
		config: config,
		depth:  depth,
		alts:   [][]builder{nil},
	}
}

func (g *groupBuilder) choice() bool {
	return len(g.alts) > 1
}

// items returns the alternative being read.
func (g *groupBuilder) items() []builder {
	return g.alts[len(g.alts)-1]
}

func (g *groupBuilder) lastItem() builder {
	items := g.items()
	if len(items) == 0 {
		return nil
	}
	return items[len(items)-1]
}

func (g *groupBuilder) parse(r rune) (parseResult, error) {
	if g.current != nil {
		res, err := g.parseCurrent(r)
		if err != nil || res != parseIgnored {
			return res, err
		}
	}
	if g.counting != nil {
		return g.parseCount(r)
	}
	if g.escaped {
		g.escaped = false
		return g.push(newCharBuilder(), r)
	}
	if !g.opened {
		if r != '(' {
			invariant("group opened with %q", r)
		}
		g.opened = true
		return parseProcessed, nil
	}

	switch r {
	case '\\':
		g.escaped = true
		return parseProcessed, nil
	case '?':
		return parseProcessed, g.quantifyLast(0, 1)
	case '*':
		return parseProcessed, g.quantifyLast(0, 0)
	case '+':
		return parseProcessed, g.quantifyLast(1, 0)
	case '{':
		if last := g.lastItem(); last == nil {
			return parseIgnored, ErrMissingRepeatArg
		} else if last.quantified() {
			return parseIgnored, ErrInvalidNestedRepeat
		}
		g.counting = &strings.Builder{}
		return parseProcessed, nil
	case '|':
		if len(g.items()) == 0 {
			return parseIgnored, ErrEmptyAlternative
		}
		g.alts = append(g.alts, nil)
		return parseProcessed, nil
	case '(':
		if g.depth >= g.config.MaxNesting {
			return parseIgnored, ErrNestingDepth
		}
		return g.push(newGroupBuilder(g.config, g.depth+1), r)
	case ')':
		if g.depth == 0 {
			return parseIgnored, ErrUnexpectedParen
		}
		return g.close()
	case '[':
		return g.push(newClassBuilder(), r)
	case '.':
		g.alts[len(g.alts)-1] = append(g.items(), newAnyBuilder())
		return parseProcessed, nil
	default:
		return g.push(newCharBuilder(), r)
	}
}

// close ends the group on its closing parenthesis. The root group is closed
// by the compiler at the end of the pattern.
func (g *groupBuilder) close() (parseResult, error) {
	if len(g.items()) == 0 {
		if g.choice() {
			return parseIgnored, ErrEmptyAlternative
		}
		return parseIgnored, ErrEmptyGroup
	}
	return parseProcessedEnd, nil
}

// parseCurrent routes r to the child being read and finalizes it when it
// ends.
func (g *groupBuilder) parseCurrent(r rune) (parseResult, error) {
	res, err := g.current.parse(r)
	if err != nil {
		return parseIgnored, err
	}
	if res.ended() {
		if err := g.current.finalize(); err != nil {
			return parseIgnored, err
		}
		g.current = nil
		res = res.withoutEnd()
	}
	return res, nil
}

// push appends a new child and hands it r.
func (g *groupBuilder) push(b builder, r rune) (parseResult, error) {
	g.alts[len(g.alts)-1] = append(g.items(), b)
	g.current = b
	return g.parseCurrent(r)
}

func (g *groupBuilder) quantifyLast(minCount, maxCount int) error {
	last := g.lastItem()
	if last == nil {
		return ErrMissingRepeatArg
	}
	return last.quantify(minCount, maxCount)
}

// parseCount reads n, n, or n,m up to the closing brace.
func (g *groupBuilder) parseCount(r rune) (parseResult, error) {
	switch {
	case r >= '0' && r <= '9', r == ',':
		g.counting.WriteRune(r)
		return parseProcessed, nil
	case r != '}':
		return parseIgnored, ErrInvalidRepeatCount
	}

	text := g.counting.String()
	g.counting = nil
	minCount, maxCount, err := parseRepeat(text, g.config.MaxRepeat)
	if err != nil {
		return parseIgnored, err
	}
	return parseProcessed, g.quantifyLast(minCount, maxCount)
}

// parseRepeat decodes the inside of {n}, {n,} and {n,m}. A zero max means
// unbounded.
func parseRepeat(text string, limit int) (minCount, maxCount int, err error) {
	lo, hi, ranged := strings.Cut(text, ",")
	if minCount, err = strconv.Atoi(lo); err != nil {
		return 0, 0, ErrInvalidRepeatCount
	}
	switch {
	case !ranged:
		maxCount = minCount
	case hi == "":
		maxCount = 0
	default:
		if maxCount, err = strconv.Atoi(hi); err != nil {
			return 0, 0, ErrInvalidRepeatCount
		}
		if maxCount < minCount {
			return 0, 0, ErrInvalidRepeatCount
		}
	}
	if minCount > limit || maxCount > limit {
		return 0, 0, ErrInvalidRepeatCount
	}
	if ranged && hi == "" {
		return minCount, 0, nil
	}
	if maxCount == 0 {
		return 0, 0, ErrZeroRepeat
	}
	return minCount, maxCount, nil
}

func (g *groupBuilder) finalize() error {
	if g.current != nil {
		return g.pending()
	}
	return nil
}

// pending reports what is left open inside the group. The group itself being
// unclosed is the caller's concern.
func (g *groupBuilder) pending() error {
	switch {
	case g.counting != nil:
		return ErrMissingBrace
	case g.escaped:
		return ErrTrailingBackslash
	case g.current == nil:
		return nil
	}
	if err := g.current.pending(); err != nil {
		return err
	}
	return ErrMissingParen
}

func (g *groupBuilder) build() item {
	if !g.choice() {
		return newSequence(buildAll(g.alts[0]), g.repeat)
	}
	alts := make([]*group, len(g.alts))
	for i, items := range g.alts {
		alts[i] = newSequence(buildAll(items), repeat{min: 1, max: 1})
	}
	return newChoice(alts, g.repeat)
}

func buildAll(builders []builder) []item {
	items := make([]item, len(builders))
	for i, b := range builders {
		items[i] = b.build()
	}
	return items
}
