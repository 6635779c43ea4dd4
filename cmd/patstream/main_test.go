package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/coregx/patstream/lexer"
	"github.com/coregx/patstream/pattern"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRunSearch(t *testing.T) {
	input := "mail bob@example.com\nnothing here\ncc: al@x.org, zé@y.org\n"

	for _, noPrefilter := range []bool{false, true} {
		var out bytes.Buffer
		opts := options{expr: `[a-zé]+@[a-z]+\.(com|org)`, noPrefilter: noPrefilter}
		if err := run(opts, nil, strings.NewReader(input), &out); err != nil {
			t.Fatalf("run() error = %v", err)
		}

		want := "-:1:6: bob@example.com\n-:3:5: al@x.org\n-:3:15: zé@y.org\n"
		if out.String() != want {
			t.Errorf("noPrefilter=%v: output = %q, want %q", noPrefilter, out.String(), want)
		}
	}
}

func TestRunSearchLongLine(t *testing.T) {
	long := strings.Repeat("x", 70*1024)
	input := long + "needle\r\nneedle"

	var out bytes.Buffer
	if err := run(options{expr: "needle"}, nil, strings.NewReader(input), &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	want := fmt.Sprintf("-:1:%d: needle\n-:2:1: needle\n", len(long)+1)
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunCount(t *testing.T) {
	a := writeFile(t, "a.txt", "one two\nthree\n")
	b := writeFile(t, "b.txt", "42\n")

	var out bytes.Buffer
	if err := run(options{expr: "[a-z]+", count: true}, []string{a, b}, nil, &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	if want := a + ": 3\n" + b + ": 0\n"; out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestRunLexer(t *testing.T) {
	rules := writeFile(t, "rules.yaml", `
rules:
  - name: ident
    pattern: "[a-z]+"
  - name: number
    pattern: "[0-9]+"
  - name: space
    pattern: "[ \n]+"
    skip: true
`)

	var out bytes.Buffer
	if err := run(options{rules: rules}, nil, strings.NewReader("abc 12\nx"), &out); err != nil {
		t.Fatalf("run() error = %v", err)
	}
	want := "1:1 ident \"abc\"\n1:5 number \"12\"\n2:1 ident \"x\"\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}

	out.Reset()
	err := run(options{rules: rules}, nil, strings.NewReader("abc !"), &out)
	if !errors.Is(err, lexer.ErrNoMatch) {
		t.Errorf("run() error = %v, want %v", err, lexer.ErrNoMatch)
	}
}

func TestRunErrors(t *testing.T) {
	if err := run(options{}, nil, nil, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Errorf("no mode: error = %v, want %v", err, errUsage)
	}
	if err := run(options{expr: "a", rules: "r.yaml"}, nil, nil, &bytes.Buffer{}); !errors.Is(err, errUsage) {
		t.Errorf("two modes: error = %v, want %v", err, errUsage)
	}
	if err := run(options{expr: "(a"}, nil, nil, &bytes.Buffer{}); !errors.Is(err, pattern.ErrMissingParen) {
		t.Errorf("bad pattern: error = %v, want %v", err, pattern.ErrMissingParen)
	}
	missing := filepath.Join(t.TempDir(), "missing.txt")
	if err := run(options{expr: "a"}, []string{missing}, nil, &bytes.Buffer{}); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("missing file: error = %v, want %v", err, os.ErrNotExist)
	}
}
