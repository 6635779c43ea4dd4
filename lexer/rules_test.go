package lexer

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const wordRules = `
rules:
  - name: word
    pattern: "[a-z]+"
  - name: space
    pattern: "[ \t]+"
    skip: true
`

func TestLoadRules(t *testing.T) {
	rules, err := LoadRules(strings.NewReader(wordRules))
	if err != nil {
		t.Fatalf("LoadRules() error = %v", err)
	}
	want := []Rule{
		{Name: "word", Pattern: "[a-z]+"},
		{Name: "space", Pattern: "[ \t]+", Skip: true},
	}
	if !reflect.DeepEqual(rules, want) {
		t.Fatalf("LoadRules() = %+v, want %+v", rules, want)
	}

	lx, err := New(rules)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	tokens, err := lx.Tokens("hello \tworld")
	if err != nil {
		t.Fatalf("Tokens() error = %v", err)
	}
	if want := []Token{tok("word", "hello", 0, 0, 0), tok("word", "world", 7, 0, 7)}; !reflect.DeepEqual(tokens, want) {
		t.Errorf("Tokens() = %v, want %v", tokens, want)
	}
}

func TestLoadRulesErrors(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		want error
	}{
		{"empty", "rules: []\n", ErrNoRules},
		{"no document", "", ErrNoRules},
		{"unknown field", "rules:\n  - name: a\n    pattern: a\n    skp: true\n", nil},
		{"not yaml", "rules: [\n", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadRules(strings.NewReader(tt.doc))
			if err == nil {
				t.Fatal("LoadRules() error = nil")
			}
			if tt.want != nil && !errors.Is(err, tt.want) {
				t.Errorf("LoadRules() error = %v, want %v", err, tt.want)
			}
		})
	}
}
