package pattern

// Tokenizer matches a Pattern against a stream fed one rune at a time.
//
// Write returns the length of the longest match found so far: 0 while more
// runes are needed, -1 once the stream cannot match. A positive result may
// still grow if more runes are written. Once the tokenizer has given up, every
// later Write returns the same frozen result.
//
// A Tokenizer must not be used concurrently.
type Tokenizer struct {
	root        *group
	state       state
	totalLength int
	lastResult  int
	noMatch     bool
}

// Reset rewinds the tokenizer to match from scratch.
func (t *Tokenizer) Reset() {
	if t.root == nil {
		invariant("tokenizer not allocated from a pattern")
	}
	t.totalLength = 0
	t.lastResult = 0
	t.noMatch = false
	t.root.reset(&t.state)
}

// Write submits one rune and returns the current verdict.
func (t *Tokenizer) Write(r rune) int {
	if t.noMatch {
		return t.lastResult
	}
	if t.root == nil {
		invariant("tokenizer not allocated from a pattern")
	}

	t.totalLength++
	switch res := t.root.write(&t.state, r); {
	case res == NoMatch:
		t.latch()
	case res > 0:
		t.lastResult = t.totalLength
	}
	return t.lastResult
}

// WriteString submits the runes of s, stopping as soon as the tokenizer gives
// up, and returns the last verdict.
func (t *Tokenizer) WriteString(s string) int {
	for _, r := range s {
		if t.Write(r); t.noMatch {
			break
		}
	}
	return t.lastResult
}

// Close marks the end of the stream and returns the final verdict: the
// length of the longest match, or -1.
func (t *Tokenizer) Close() int {
	if !t.noMatch {
		t.latch()
	}
	return t.lastResult
}

// Done reports whether the tokenizer has given up; its result is final.
func (t *Tokenizer) Done() bool {
	return t.noMatch
}

// Len returns the number of runes written since the last reset, ignoring
// the ones written after the tokenizer gave up.
func (t *Tokenizer) Len() int {
	return t.totalLength
}

func (t *Tokenizer) latch() {
	t.noMatch = true
	if t.lastResult == 0 {
		t.lastResult = -1
	}
}
