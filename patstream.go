// Package patstream provides a streaming pattern matcher for Go.
//
// A pattern is a small regular expression language (literals, classes,
// groups, alternation and repetition) compiled into a tree of items. A
// Tokenizer allocated from a pattern is fed one rune at a time and answers
// after every rune with the length of the longest match so far, 0 while more
// input is needed, or -1 once no match is possible. It never needs the whole
// input, which makes it a building block for lexers and protocol scanners.
//
// Basic usage:
//
//	p := patstream.MustCompile(`[a-z_][a-z0-9_]*`)
//	t := p.Allocate()
//	for _, r := range "foo_1 = 2" {
//	    if t.Write(r); t.Done() {
//	        break
//	    }
//	}
//	fmt.Println(t.Close()) // 5
//
// Buffer search (Find, FindAll, ...) runs tokenizers from successive start
// positions and returns the leftmost longest non-overlapping matches. When
// every match begins with one of a few literals, a prefilter (memchr,
// memmem or Aho-Corasick) skips the positions where none of them occurs.
//
// Matching is greedy and never backtracks: `a*a` matches nothing, because
// the repetition consumes every 'a' before the final item gets a chance.
package patstream

import (
	"unicode/utf8"

	"github.com/coregx/patstream/pattern"
	"github.com/coregx/patstream/prefilter"
)

// Tokenizer matches a Pattern against a stream fed one rune at a time.
type Tokenizer = pattern.Tokenizer

// Error is the error type returned for invalid patterns.
type Error = pattern.Error

// Pattern is a compiled pattern. A Pattern is safe for concurrent use by
// multiple goroutines; the Tokenizers it allocates are not.
type Pattern struct {
	inner     *pattern.Pattern
	prefilter prefilter.Prefilter
}

// Compile parses a pattern with the default configuration.
//
// Example:
//
//	p, err := patstream.Compile(`colou?r`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(expr string) (*Pattern, error) {
	return CompileWithConfig(expr, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be parsed.
func MustCompile(expr string) *Pattern {
	p, err := Compile(expr)
	if err != nil {
		panic("patstream: Compile(" + quote(expr) + "): " + err.Error())
	}
	return p
}

// CompileWithConfig parses a pattern with a custom configuration.
//
// The returned error is a *ConfigError for an invalid configuration and a
// *Error for an invalid pattern.
func CompileWithConfig(expr string, config Config) (*Pattern, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	inner, err := pattern.CompileWithConfig(expr, config.limits())
	if err != nil {
		return nil, err
	}

	p := &Pattern{inner: inner}
	if config.EnablePrefilter {
		p.prefilter = buildPrefilter(inner, config.MinLiteralLen)
	}
	return p, nil
}

// buildPrefilter turns the literal prefixes of a pattern into a prefilter.
// Returns nil when some match may start without one of them.
func buildPrefilter(p *pattern.Pattern, minLen int) prefilter.Prefilter {
	if prefix, complete := p.LiteralPrefix(); prefix != "" && len(prefix) >= minLen {
		return prefilter.New([][]byte{[]byte(prefix)}, complete)
	}

	prefixes := p.LiteralPrefixes()
	if len(prefixes) == 0 {
		return nil
	}
	literals := make([][]byte, len(prefixes))
	for i, s := range prefixes {
		if len(s) < minLen {
			return nil
		}
		literals[i] = []byte(s)
	}
	return prefilter.New(literals, false)
}

// QuoteMeta returns a string that escapes all pattern metacharacters inside
// the argument text; the returned string is a pattern matching the literal
// text.
//
// Example:
//
//	escaped := patstream.QuoteMeta("1+1=2?")
//	// escaped = `1\+1=2\?`
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}`

	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	buf := make([]byte, 0, len(s)+n)
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf = append(buf, '\\')
		}
		buf = append(buf, s[i])
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}

func quote(s string) string {
	return "`" + s + "`"
}

// String returns the source text used to compile the pattern.
func (p *Pattern) String() string {
	return p.inner.String()
}

// Allocate returns a new Tokenizer matching p from its first rune.
func (p *Pattern) Allocate() *Tokenizer {
	return p.inner.Allocate()
}

// LiteralPrefix returns the literal text every match of p begins with. The
// complete result is true when p matches exactly that text.
func (p *Pattern) LiteralPrefix() (prefix string, complete bool) {
	return p.inner.LiteralPrefix()
}

// Match returns the byte length of the longest match of p at the start of
// b, or -1 if there is none.
//
// Example:
//
//	p := patstream.MustCompile(`[0-9]+`)
//	n := p.Match([]byte("42 apples")) // 2
func (p *Pattern) Match(b []byte) int {
	return p.matchAt(p.inner.Allocate(), b, 0)
}

// MatchString is like Match but for a string.
func (p *Pattern) MatchString(s string) int {
	return p.Match([]byte(s))
}

// Find returns a slice holding the text of the leftmost match in b.
// Returns nil if no match is found.
func (p *Pattern) Find(b []byte) []byte {
	loc := p.FindIndex(b)
	if loc == nil {
		return nil
	}
	return b[loc[0]:loc[1]:loc[1]]
}

// FindString returns the text of the leftmost match in s.
// Returns an empty string if no match is found.
func (p *Pattern) FindString(s string) string {
	loc := p.FindStringIndex(s)
	if loc == nil {
		return ""
	}
	return s[loc[0]:loc[1]]
}

// FindIndex returns a two-element slice of integers defining the location of
// the leftmost match in b. The match is at b[loc[0]:loc[1]].
// Returns nil if no match is found.
func (p *Pattern) FindIndex(b []byte) []int {
	s := p.newSearch()
	start, end := s.next(b, 0)
	if start == -1 {
		return nil
	}
	return []int{start, end}
}

// FindStringIndex is like FindIndex but for a string.
func (p *Pattern) FindStringIndex(s string) []int {
	return p.FindIndex([]byte(s))
}

// FindAll returns a slice of all successive non-overlapping matches in b.
// If n >= 0, it returns at most n matches. If n < 0, it returns all matches.
func (p *Pattern) FindAll(b []byte, n int) [][]byte {
	indices := p.FindAllIndex(b, n)
	if indices == nil {
		return nil
	}
	matches := make([][]byte, len(indices))
	for i, loc := range indices {
		matches[i] = b[loc[0]:loc[1]:loc[1]]
	}
	return matches
}

// FindAllString is like FindAll but for a string.
func (p *Pattern) FindAllString(s string, n int) []string {
	indices := p.FindAllStringIndex(s, n)
	if indices == nil {
		return nil
	}
	matches := make([]string, len(indices))
	for i, loc := range indices {
		matches[i] = s[loc[0]:loc[1]]
	}
	return matches
}

// FindAllIndex returns the locations of all successive non-overlapping
// matches in b. If n >= 0, it returns at most n of them.
func (p *Pattern) FindAllIndex(b []byte, n int) [][]int {
	if n == 0 {
		return nil
	}

	var indices [][]int
	s := p.newSearch()
	for pos := 0; pos < len(b); {
		start, end := s.next(b, pos)
		if start == -1 {
			break
		}
		indices = append(indices, []int{start, end})
		if n > 0 && len(indices) >= n {
			break
		}
		pos = end
	}
	return indices
}

// FindAllStringIndex is like FindAllIndex but for a string.
func (p *Pattern) FindAllStringIndex(s string, n int) [][]int {
	return p.FindAllIndex([]byte(s), n)
}

// Count returns the number of non-overlapping matches in b.
// If n >= 0, it counts at most n matches.
func (p *Pattern) Count(b []byte, n int) int {
	return len(p.FindAllIndex(b, n))
}

// Split slices s into substrings separated by the matches of p and returns
// the substrings between them. n limits the number of substrings as in
// strings.SplitN.
func (p *Pattern) Split(s string, n int) []string {
	if n == 0 {
		return nil
	}

	indices := p.FindAllStringIndex(s, -1)
	result := make([]string, 0, len(indices)+1)
	last := 0
	for _, loc := range indices {
		if n > 0 && len(result) == n-1 {
			break
		}
		result = append(result, s[last:loc[0]])
		last = loc[1]
	}
	return append(result, s[last:])
}

// search holds the per-call state of a buffer search.
type search struct {
	p       *Pattern
	tok     *Tokenizer
	tracker *prefilter.Tracker
}

func (p *Pattern) newSearch() *search {
	return &search{
		p:       p,
		tok:     p.inner.Allocate(),
		tracker: prefilter.NewTracker(p.prefilter),
	}
}

// next returns the leftmost longest match starting at or after pos, or
// (-1, -1).
func (s *search) next(b []byte, pos int) (start, end int) {
	for pos < len(b) {
		if s.tracker != nil && s.tracker.IsActive() {
			pos = s.tracker.Find(b, pos)
			if pos == -1 {
				return -1, -1
			}
			if s.tracker.IsComplete() {
				s.tracker.ConfirmMatch()
				return pos, pos + s.tracker.LiteralLen()
			}
		}

		if end := s.p.matchAt(s.tok, b, pos); end != -1 {
			if s.tracker != nil {
				s.tracker.ConfirmMatch()
			}
			return pos, end
		}
		_, size := utf8.DecodeRune(b[pos:])
		pos += size
	}
	return -1, -1
}

// matchAt feeds t the runes of b from pos and returns the byte offset where
// the longest match ends, or -1.
func (p *Pattern) matchAt(t *Tokenizer, b []byte, pos int) int {
	t.Reset()
	end := -1
	for i := pos; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		i += size
		n := t.Write(r)
		if t.Done() {
			break
		}
		if n > 0 && n == t.Len() {
			end = i
		}
	}
	if t.Close() <= 0 {
		return -1
	}
	return end
}
