// Package pattern implements a streaming pattern matcher.
//
// A pattern is a restricted regular expression compiled into a tree of items
// (literal runes, character classes and groups). Instead of matching against a
// complete string, a Tokenizer allocated from the pattern is fed one rune at a
// time and reports after each rune whether the input so far cannot match, may
// still match, or matches:
//
//	p := pattern.MustCompile(`[a-z][a-z0-9]*`)
//	t := p.Allocate()
//	t.Write('x') // 1
//	t.Write('2') // 2
//	t.Write('-') // 2, the match is over
//
// Supported syntax:
//
//	x        literal rune; \x escapes any special rune
//	.        any rune
//	[a-z]    class with ranges; [^a-z] excludes; [^] is any rune
//	(a|bc)   group, with alternatives
//	? * +    zero or one, zero or more, one or more
//	{n} {n,} {n,m}  counted repetition
//
// Matching is greedy and never backtracks: once a rune has been consumed by
// an item it is not offered to the following ones. A group occurrence must
// consume at least one rune even when its contents are optional: (a*)b does
// not match "b" while a*b does. Alternatives are followed in parallel, each on
// its own state, until a single one remains.
package pattern

// Pattern is a compiled pattern. It is immutable and may be shared by any
// number of goroutines, each allocating its own Tokenizers.
type Pattern struct {
	text string
	root *group
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	return p.text
}

// Allocate returns a new Tokenizer matching p from its first rune.
func (p *Pattern) Allocate() *Tokenizer {
	t := &Tokenizer{root: p.root}
	t.Reset()
	return t
}

// MatchString returns the length in runes of the longest match of p at the
// start of s, or -1 if there is none.
func (p *Pattern) MatchString(s string) int {
	t := p.Allocate()
	for _, r := range s {
		if t.Write(r); t.Done() {
			break
		}
	}
	return t.Close()
}
