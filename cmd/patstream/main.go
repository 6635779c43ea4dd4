// Package main is a command-line utility to search text with a streaming
// pattern or to split it into tokens with a set of lexer rules.
//
//	patstream -p '[a-z]+@[a-z]+\.com' mail.txt
//	patstream -rules rules.yaml main.src
//
// Without file arguments the standard input is read.
package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/coregx/patstream"
	"github.com/coregx/patstream/lexer"
	"github.com/coregx/patstream/parser"
)

type options struct {
	expr        string
	rules       string
	count       bool
	noPrefilter bool
}

func main() {
	var opts options
	flag.StringVar(&opts.expr, "p", "", "pattern to search for")
	flag.StringVar(&opts.rules, "rules", "", "YAML file with lexer rules")
	flag.BoolVar(&opts.count, "c", false, "print only the number of matches of each input")
	flag.BoolVar(&opts.noPrefilter, "no-prefilter", false, "try every position instead of searching literal prefixes")
	flag.Parse()

	log.SetFlags(0)
	log.SetPrefix("patstream: ")

	if err := run(opts, flag.Args(), os.Stdin, os.Stdout); err != nil {
		log.Fatal(err)
	}
}

var errUsage = errors.New("exactly one of -p and -rules is required")

func run(opts options, files []string, stdin io.Reader, stdout io.Writer) error {
	w := bufio.NewWriter(stdout)
	defer w.Flush()

	var each func(name string, r io.Reader, prefix bool) error
	switch {
	case (opts.expr == "") == (opts.rules == ""):
		return errUsage
	case opts.expr != "":
		config := patstream.DefaultConfig()
		config.EnablePrefilter = !opts.noPrefilter
		p, err := patstream.CompileWithConfig(opts.expr, config)
		if err != nil {
			return err
		}
		each = func(name string, r io.Reader, _ bool) error {
			return search(w, p, name, r, opts.count)
		}
	default:
		lx, err := loadLexer(opts.rules)
		if err != nil {
			return err
		}
		each = func(name string, r io.Reader, prefix bool) error {
			return tokenize(w, lx, name, r, prefix)
		}
	}

	if len(files) == 0 {
		return each("-", stdin, false)
	}
	for _, name := range files {
		f, err := os.Open(name)
		if err != nil {
			return err
		}
		err = each(name, f, len(files) > 1)
		f.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

// search prints "name:line:col: match" for every match of p, line by line.
// Lines may be of any length.
func search(w io.Writer, p *patstream.Pattern, name string, r io.Reader, count bool) error {
	br := bufio.NewReader(r)
	n := 0
	for line := 1; ; line++ {
		text, err := br.ReadString('\n')
		if err != nil && err != io.EOF {
			return fmt.Errorf("%s: %w", name, err)
		}
		if text == "" && err == io.EOF {
			break
		}
		text = strings.TrimSuffix(strings.TrimSuffix(text, "\n"), "\r")

		for _, loc := range p.FindAllStringIndex(text, -1) {
			n++
			if count {
				continue
			}
			col := utf8.RuneCountInString(text[:loc[0]]) + 1
			if _, werr := fmt.Fprintf(w, "%s:%d:%d: %s\n", name, line, col, text[loc[0]:loc[1]]); werr != nil {
				return werr
			}
		}
		if err == io.EOF {
			break
		}
	}
	if count {
		_, err := fmt.Fprintf(w, "%s: %d\n", name, n)
		return err
	}
	return nil
}

func loadLexer(filename string) (*lexer.Lexer, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	rules, err := lexer.LoadRules(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filename, err)
	}
	return lexer.New(rules)
}

// tokenize prints "line:col kind text" for every token of r.
func tokenize(w io.Writer, lx *lexer.Lexer, name string, r io.Reader, prefix bool) error {
	var werr error
	lx.Reset()
	lx.SetOutputHandler(parser.HandlerFunc[lexer.Token](func(t lexer.Token) {
		if werr != nil {
			return
		}
		if prefix {
			_, werr = fmt.Fprintf(w, "%s:%v\n", name, t)
		} else {
			_, werr = fmt.Fprintln(w, t)
		}
	}))

	if err := lx.ParseReader(r); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return werr
}
