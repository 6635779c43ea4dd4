// Package lexer splits a character stream into tokens described by a list of
// pattern rules.
//
// Every rule gets its own tokenizer and all of them are fed the same runes.
// Once no tokenizer can grow any further, the longest match wins (the rule
// listed first on ties), a token is emitted for it and the runes that were
// read past its end are fed again from scratch. Rules marked Skip consume
// their text without emitting anything.
//
//	lx, err := lexer.New([]lexer.Rule{
//	    {Name: "ident", Pattern: `[a-z_][a-z0-9_]*`},
//	    {Name: "number", Pattern: `[0-9]+`},
//	    {Name: "space", Pattern: "[ \t\n]+", Skip: true},
//	})
//	tokens, err := lx.Tokens("answer 42")
//
// Input may be supplied in arbitrary chunks; a token split across two calls
// to Parse is still emitted once, with the position of its first rune.
package lexer

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/coregx/patstream"
	"github.com/coregx/patstream/parser"
)

var (
	// ErrNoRules is returned by New for an empty rule list.
	ErrNoRules = errors.New("lexer: no rules")

	// ErrUnnamedRule is returned by New for a rule without a name.
	ErrUnnamedRule = errors.New("lexer: rule without a name")

	// ErrNoMatch is wrapped by *Error.
	ErrNoMatch = errors.New("no rule matches")
)

// Rule associates a token kind with a pattern.
type Rule struct {
	Name    string `yaml:"name"`
	Pattern string `yaml:"pattern"`
	Skip    bool   `yaml:"skip,omitempty"`
}

// Token is a piece of input matched by a rule.
type Token struct {
	Kind string
	Text string
	Pos  parser.Position // position of the first rune
}

// String returns "line:col kind text".
func (t Token) String() string {
	return fmt.Sprintf("%v %s %q", t.Pos, t.Kind, t.Text)
}

// Error reports input that no rule matches.
type Error struct {
	Pos  parser.Position
	Rune rune
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("lexer: %v: %v %q", e.Pos, ErrNoMatch, e.Rune)
}

// Unwrap returns ErrNoMatch.
func (e *Error) Unwrap() error {
	return ErrNoMatch
}

type rule struct {
	Rule
	pat *patstream.Pattern
	tok *patstream.Tokenizer
}

// Lexer is a streaming multi-rule tokenizer. It is not safe for concurrent
// use.
type Lexer struct {
	p       *parser.Parser[Token]
	rules   []rule
	pending []rune
	start   parser.Position
	err     error
}

// New compiles the rules into a Lexer.
func New(rules []Rule) (*Lexer, error) {
	if len(rules) == 0 {
		return nil, ErrNoRules
	}

	compiled := make([]rule, len(rules))
	for i, r := range rules {
		if r.Name == "" {
			return nil, fmt.Errorf("rule %d: %w", i, ErrUnnamedRule)
		}
		p, err := patstream.Compile(r.Pattern)
		if err != nil {
			return nil, fmt.Errorf("rule %q: %w", r.Name, err)
		}
		compiled[i] = rule{Rule: r, pat: p}
	}
	return newLexer(compiled), nil
}

// newLexer allocates fresh tokenizers for compiled rules.
func newLexer(compiled []rule) *Lexer {
	l := &Lexer{rules: make([]rule, len(compiled))}
	for i, r := range compiled {
		l.rules[i] = rule{Rule: r.Rule, pat: r.pat, tok: r.pat.Allocate()}
	}
	l.p = parser.New[Token](l.scan, parser.DefaultConfig())
	return l
}

// SetOutputHandler defines where tokens go.
func (l *Lexer) SetOutputHandler(h parser.Handler[Token]) {
	l.p.SetOutputHandler(h)
}

// Parse feeds chunks of input. It returns the first error met so far; after
// an error the rest of the input is ignored.
func (l *Lexer) Parse(chunks ...string) error {
	l.p.Parse(chunks...)
	return l.err
}

// ParseReader feeds the whole content of r and closes the lexer.
func (l *Lexer) ParseReader(r io.Reader) error {
	if err := l.p.ParseReader(r); err != nil {
		return err
	}
	return l.err
}

// Close marks the end of the input and emits the remaining tokens.
func (l *Lexer) Close() error {
	l.p.Finalize()
	return l.err
}

// Err returns the first error met since the last Reset.
func (l *Lexer) Err() error {
	return l.err
}

// Reset discards buffered input and errors and rewinds positions.
func (l *Lexer) Reset() {
	l.p.Reset(nil)
	l.start = parser.Position{}
	l.err = nil
	l.restart()
}

// Tokens returns all tokens of input. It runs on its own state: the lexer
// and its output handler are left untouched.
func (l *Lexer) Tokens(input string) ([]Token, error) {
	var out parser.Slice[Token]
	lx := newLexer(l.rules)
	lx.SetOutputHandler(&out)

	if err := lx.Parse(input); err != nil {
		return out, err
	}
	if err := lx.Close(); err != nil {
		return out, err
	}
	return out, nil
}

// scan is the only parser state.
func (l *Lexer) scan(r rune) parser.State {
	if r == parser.EOF {
		for len(l.pending) > 0 && l.err == nil {
			l.cut()
		}
	} else {
		l.feed(r)
	}
	if l.err != nil {
		return l.failed
	}
	return nil
}

func (l *Lexer) failed(rune) parser.State {
	return nil
}

// feed adds r to the current token and cuts it once no rule can grow.
func (l *Lexer) feed(r rune) {
	l.pending = append(l.pending, r)
	live := false
	for _, ru := range l.rules {
		if ru.tok.Done() {
			continue
		}
		if ru.tok.Write(r); !ru.tok.Done() {
			live = true
		}
	}
	if !live {
		l.cut()
	}
}

// cut emits the longest token at the start of the pending runes and feeds
// the remaining ones again.
func (l *Lexer) cut() {
	best, n := -1, 0
	for i, ru := range l.rules {
		if m := ru.tok.Close(); m > n {
			best, n = i, m
		}
	}
	if best == -1 {
		l.err = &Error{Pos: l.start, Rune: l.pending[0]}
		l.pending = l.pending[:0]
		return
	}

	text := string(l.pending[:n])
	rest := slices.Clone(l.pending[n:])
	if ru := l.rules[best]; !ru.Skip {
		l.p.Output(Token{Kind: ru.Name, Text: text, Pos: l.start})
	}
	l.start = l.start.AdvanceString(text)
	l.restart()

	for _, r := range rest {
		if l.err != nil {
			return
		}
		l.feed(r)
	}
}

// restart clears the pending runes and rewinds every tokenizer.
func (l *Lexer) restart() {
	l.pending = l.pending[:0]
	for _, ru := range l.rules {
		ru.tok.Reset()
	}
}
