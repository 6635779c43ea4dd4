// Package parser provides a reusable, character-driven state machine driver.
//
// A Parser is fed text one chunk at a time and dispatches every rune to the
// current state handler, keeping track of the absolute position as well as the
// line and column of the cursor. State handlers decide on the next state and
// may emit items through a pluggable output handler. Because state persists
// between calls to Parse, the input never needs to be materialized as a whole:
//
//	p := parser.New[string](initial, parser.DefaultConfig())
//	p.SetOutputHandler(parser.HandlerFunc[string](func(s string) { fmt.Println(s) }))
//	p.Parse("first chunk", " second chunk")
//	p.Finalize()
//
// A Parser is not safe for concurrent use; one input stream drives one Parser.
package parser

import (
	"errors"
	"fmt"
)

// EOF is the rune passed to the current state when the input is finalized.
const EOF rune = -1

// ErrNoState is the assertion raised when a Parser has no state to dispatch to.
var ErrNoState = errors.New("parser: no current state")

// State handles one rune. It returns the next state, or nil to stay in the
// current one. A handler may also switch states directly with SetState.
type State func(r rune) State

// Config controls line handling of a Parser.
type Config struct {
	// IgnoreCarriageReturn skips '\r': the state handler is not called for it.
	IgnoreCarriageReturn bool

	// IgnoreLineFeed skips '\n'. The line counter still advances.
	IgnoreLineFeed bool
}

// DefaultConfig returns a configuration dispatching every rune.
func DefaultConfig() Config {
	return Config{}
}

// Position locates the parser cursor. All fields are zero-based and count
// runes.
type Position struct {
	Pos    int // absolute rune offset
	Line   int
	Column int
}

// String returns the position as "line:column", one-based for display.
func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// Advance returns the position after consuming r.
func (p Position) Advance(r rune) Position {
	return p.advance(r == '\n')
}

// AdvanceString returns the position after consuming every rune of s.
func (p Position) AdvanceString(s string) Position {
	for _, r := range s {
		p = p.advance(r == '\n')
	}
	return p
}

func (p Position) advance(lineBreak bool) Position {
	p.Pos++
	if lineBreak {
		p.Line++
		p.Column = 0
	} else {
		p.Column++
	}
	return p
}

// Parser drives a character-oriented state machine and emits items of type T.
type Parser[T any] struct {
	config   Config
	pos      Position
	initial  State
	state    State
	output   Handler[T]
	finalize func()
}

// New creates a Parser starting in the initial state.
// Panics if initial is nil.
func New[T any](initial State, config Config) *Parser[T] {
	p := &Parser[T]{
		config:  config,
		initial: initial,
	}
	p.Reset(nil)
	return p
}

// Reset rewinds the position counters and switches to state, or to the
// initial state when state is nil.
func (p *Parser[T]) Reset(state State) {
	p.pos = Position{}
	p.SetState(state)
}

// SetState switches the current state. A nil state selects the initial state.
func (p *Parser[T]) SetState(state State) {
	if state == nil {
		state = p.initial
	}
	if state == nil {
		panic(fmt.Errorf("%w: no initial state configured", ErrNoState))
	}
	p.state = state
}

// Position returns the current cursor position.
func (p *Parser[T]) Position() Position {
	return p.pos
}

// SetOutputHandler defines where emitted items go. A nil handler discards them.
func (p *Parser[T]) SetOutputHandler(h Handler[T]) {
	p.output = h
}

// OnFinalize replaces the default end-of-input behavior, which calls the
// current state with EOF.
func (p *Parser[T]) OnFinalize(fn func()) {
	p.finalize = fn
}

// Output emits an item to the output handler.
func (p *Parser[T]) Output(item T) {
	if p.output != nil {
		p.output.Output(item)
	}
}

// Parse feeds each chunk through the state machine, in order.
func (p *Parser[T]) Parse(chunks ...string) {
	for _, chunk := range chunks {
		for _, r := range chunk {
			p.ParseRune(r)
		}
	}
}

// ParseRune feeds a single rune through the state machine.
func (p *Parser[T]) ParseRune(r rune) {
	dispatch := true
	lineBreak := r == '\n'
	switch {
	case r == '\r' && p.config.IgnoreCarriageReturn:
		dispatch = false
	case lineBreak && p.config.IgnoreLineFeed:
		dispatch = false
	}
	if dispatch {
		p.dispatch(r)
	}
	p.pos = p.pos.advance(lineBreak)
}

// Finalize signals the end of the input.
func (p *Parser[T]) Finalize() {
	if p.finalize != nil {
		p.finalize()
		return
	}
	p.dispatch(EOF)
}

func (p *Parser[T]) dispatch(r rune) {
	if p.state == nil {
		panic(ErrNoState)
	}
	if next := p.state(r); next != nil {
		p.state = next
	}
}
