package lexer

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/coregx/patstream/parser"
	"github.com/coregx/patstream/pattern"
)

var testRules = []Rule{
	{Name: "if", Pattern: "if"},
	{Name: "ident", Pattern: "[a-z_][a-z0-9_]*"},
	{Name: "number", Pattern: "[0-9]+"},
	{Name: "eq", Pattern: "=="},
	{Name: "assign", Pattern: "="},
	{Name: "plus", Pattern: `\+`},
	{Name: "space", Pattern: "[ \t\n]+", Skip: true},
}

func tok(kind, text string, pos, line, col int) Token {
	return Token{Kind: kind, Text: text, Pos: parser.Position{Pos: pos, Line: line, Column: col}}
}

func newTestLexer(t *testing.T) *Lexer {
	t.Helper()
	lx, err := New(testRules)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	return lx
}

func TestTokens(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []Token
	}{
		{"statement", "if x1 == 42", []Token{
			tok("if", "if", 0, 0, 0),
			tok("ident", "x1", 3, 0, 3),
			tok("eq", "==", 6, 0, 6),
			tok("number", "42", 9, 0, 9),
		}},
		{"longest match beats keyword", "iffy", []Token{
			tok("ident", "iffy", 0, 0, 0),
		}},
		{"no spaces", "x=y+1", []Token{
			tok("ident", "x", 0, 0, 0),
			tok("assign", "=", 1, 0, 1),
			tok("ident", "y", 2, 0, 2),
			tok("plus", "+", 3, 0, 3),
			tok("number", "1", 4, 0, 4),
		}},
		{"lines", "a\n  b", []Token{
			tok("ident", "a", 0, 0, 0),
			tok("ident", "b", 4, 1, 2),
		}},
		{"only skipped", " \n\t", nil},
		{"empty", "", nil},
	}

	lx := newTestLexer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := lx.Tokens(tt.input)
			if err != nil {
				t.Fatalf("Tokens() error = %v", err)
			}
			if len(got) != len(tt.want) || (len(got) > 0 && !reflect.DeepEqual([]Token(got), tt.want)) {
				t.Errorf("Tokens(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// A token split across chunks is emitted once.
func TestParseChunks(t *testing.T) {
	lx := newTestLexer(t)
	var out parser.Slice[Token]
	lx.SetOutputHandler(&out)

	if err := lx.Parse("if x", "1 == 4", "2"); err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if err := lx.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	want, _ := lx.Tokens("if x1 == 42")
	if !reflect.DeepEqual(out, parser.Slice[Token](want)) {
		t.Errorf("chunked tokens = %v, want %v", out, want)
	}
}

func TestParseReader(t *testing.T) {
	lx := newTestLexer(t)
	var kinds []string
	lx.SetOutputHandler(parser.HandlerFunc[Token](func(tk Token) {
		kinds = append(kinds, tk.Kind)
	}))

	if err := lx.ParseReader(strings.NewReader("if x1 == 42")); err != nil {
		t.Fatalf("ParseReader() error = %v", err)
	}
	if want := []string{"if", "ident", "eq", "number"}; !reflect.DeepEqual(kinds, want) {
		t.Errorf("kinds = %v, want %v", kinds, want)
	}
}

func TestNoRuleMatches(t *testing.T) {
	lx := newTestLexer(t)
	var out parser.Slice[Token]
	lx.SetOutputHandler(&out)

	err := lx.Parse("x $ y")
	var lerr *Error
	if !errors.As(err, &lerr) {
		t.Fatalf("Parse() error = %v, want *Error", err)
	}
	if lerr.Rune != '$' || lerr.Pos != (parser.Position{Pos: 2, Line: 0, Column: 2}) {
		t.Errorf("error at %+v rune %q, want '$' at offset 2", lerr.Pos, lerr.Rune)
	}
	if !errors.Is(err, ErrNoMatch) {
		t.Error("error does not wrap ErrNoMatch")
	}
	if want := "lexer: 1:3: no rule matches '$'"; err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	// the rest of the input is ignored
	if err := lx.Close(); err != lerr {
		t.Errorf("Close() error = %v, want the first error", err)
	}
	if want := []Token{tok("ident", "x", 0, 0, 0)}; !reflect.DeepEqual([]Token(out), want) {
		t.Errorf("tokens = %v, want %v", out, want)
	}

	lx.Reset()
	out = nil
	if err := lx.Parse("y"); err != nil {
		t.Fatalf("Parse() after Reset() error = %v", err)
	}
	if err := lx.Close(); err != nil || lx.Err() != nil {
		t.Fatalf("Close() after Reset() error = %v", err)
	}
	if want := []Token{tok("ident", "y", 0, 0, 0)}; !reflect.DeepEqual([]Token(out), want) {
		t.Errorf("tokens after Reset() = %v, want %v", out, want)
	}
}

func TestTokensLeavesLexerAlone(t *testing.T) {
	lx := newTestLexer(t)
	var out parser.Slice[Token]
	lx.SetOutputHandler(&out)

	if err := lx.Parse("abc"); err != nil {
		t.Fatal(err)
	}
	if _, err := lx.Tokens("x = 1"); err != nil {
		t.Fatal(err)
	}
	if len(out) != 0 {
		t.Errorf("Tokens() wrote %v to the lexer handler", out)
	}

	if err := lx.Close(); err != nil {
		t.Fatal(err)
	}
	if want := []Token{tok("ident", "abc", 0, 0, 0)}; !reflect.DeepEqual([]Token(out), want) {
		t.Errorf("tokens = %v, want %v", out, want)
	}
}

func TestNewErrors(t *testing.T) {
	if _, err := New(nil); !errors.Is(err, ErrNoRules) {
		t.Errorf("New(nil) error = %v, want %v", err, ErrNoRules)
	}
	if _, err := New([]Rule{{Pattern: "a"}}); !errors.Is(err, ErrUnnamedRule) {
		t.Errorf("unnamed rule error = %v, want %v", err, ErrUnnamedRule)
	}

	_, err := New([]Rule{{Name: "bad", Pattern: "(a"}})
	if !errors.Is(err, pattern.ErrMissingParen) {
		t.Errorf("bad pattern error = %v, want %v", err, pattern.ErrMissingParen)
	}
	if err == nil || !strings.HasPrefix(err.Error(), `rule "bad": `) {
		t.Errorf("bad pattern error = %v, want rule name prefix", err)
	}
}

func TestTokenString(t *testing.T) {
	if got, want := tok("ident", "x", 3, 0, 3).String(), `1:4 ident "x"`; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func BenchmarkTokens(b *testing.B) {
	lx, err := New(testRules)
	if err != nil {
		b.Fatal(err)
	}
	input := strings.Repeat("if counter == 42 x = x + 1\n", 50)
	b.SetBytes(int64(len(input)))
	for b.Loop() {
		if _, err := lx.Tokens(input); err != nil {
			b.Fatal(err)
		}
	}
}
