package pattern

import (
	"errors"

	"github.com/coregx/patstream/parser"
)

// Config limits what a compiled pattern may contain.
type Config struct {
	// MaxRepeat caps the counts of {n,m} repetitions.
	// Default: 1000
	MaxRepeat int

	// MaxNesting caps the depth of nested groups.
	// Default: 100
	MaxNesting int
}

// DefaultConfig returns the limits used by Compile.
func DefaultConfig() Config {
	return Config{
		MaxRepeat:  1000,
		MaxNesting: 100,
	}
}

// compiler drives the root group builder with a parser.Parser. The whole
// pattern is read as if it were wrapped in parentheses: the opening one is
// fed on construction, the closing one on finalization.
type compiler struct {
	p    *parser.Parser[*group]
	text string
	root *groupBuilder
	err  error
}

func newCompiler(text string, config Config) *compiler {
	c := &compiler{
		text: text,
		root: newGroupBuilder(config, 0),
	}
	c.p = parser.New[*group](c.route, parser.DefaultConfig())
	c.p.OnFinalize(c.finish)
	if _, err := c.root.parse('('); err != nil {
		invariant("opening root group: %v", err)
	}
	return c
}

// route hands one rune of pattern text to the root group.
func (c *compiler) route(r rune) parser.State {
	res, err := c.root.parse(r)
	switch {
	case err != nil:
		return c.fail(err)
	case res.ended():
		invariant("root group ended by %q", r)
	}
	return nil
}

// failed ignores the rest of the pattern after an error.
func (c *compiler) failed(rune) parser.State {
	return nil
}

func (c *compiler) fail(err error) parser.State {
	if c.err == nil {
		c.err = &Error{
			Kind:    kindOf(err),
			Pattern: c.text,
			Pos:     c.p.Position().Pos,
			Err:     err,
		}
	}
	return c.failed
}

// finish closes the root group and emits the compiled tree.
func (c *compiler) finish() {
	if c.err != nil {
		return
	}
	if err := c.root.pending(); err != nil {
		c.fail(err)
		return
	}

	res, err := c.root.close()
	if errors.Is(err, ErrEmptyGroup) {
		err = ErrEmptyPattern
	}
	if err != nil {
		c.fail(err)
		return
	}
	if !res.ended() {
		invariant("root group left open by %q", c.text)
	}
	if err := c.root.finalize(); err != nil {
		c.fail(err)
		return
	}
	c.p.Output(c.root.build().(*group))
}

// Compile parses a pattern with the default limits.
func Compile(text string) (*Pattern, error) {
	return CompileWithConfig(text, DefaultConfig())
}

// CompileWithConfig parses a pattern with explicit limits.
//
// The returned error is a *Error wrapping one of the Err* sentinels.
func CompileWithConfig(text string, config Config) (*Pattern, error) {
	c := newCompiler(text, config)
	var out parser.Slice[*group]
	c.p.SetOutputHandler(&out)
	c.p.Parse(text)
	c.p.Finalize()

	if c.err != nil {
		return nil, c.err
	}
	if len(out) != 1 {
		invariant("compiler emitted %d roots", len(out))
	}
	return &Pattern{text: text, root: out[0]}, nil
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
func MustCompile(text string) *Pattern {
	p, err := Compile(text)
	if err != nil {
		panic("pattern: Compile(`" + text + "`): " + err.Error())
	}
	return p
}
