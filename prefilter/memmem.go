package prefilter

import "bytes"

// memmem returns the index of the first instance of needle in haystack, or
// -1. The rarest byte of the needle is searched with memchr and every hit is
// verified against the whole needle.
func memmem(haystack, needle []byte, rare int) int {
	if len(needle) == 0 {
		return 0
	}
	if len(needle) > len(haystack) {
		return -1
	}

	b := []byte{needle[rare]}
	from := rare
	for from < len(haystack) {
		idx := memchr(haystack[from:], b)
		if idx == -1 {
			return -1
		}
		at := from + idx - rare
		if at+len(needle) > len(haystack) {
			return -1
		}
		if bytes.Equal(haystack[at:at+len(needle)], needle) {
			return at
		}
		from += idx + 1
	}
	return -1
}

// rareByte picks the index of the byte of needle least likely to occur in
// text: the one with the lowest rank, the last one on ties.
func rareByte(needle []byte) int {
	best := len(needle) - 1
	for i := len(needle) - 2; i >= 0; i-- {
		if rank(needle[i]) < rank(needle[best]) {
			best = i
		}
	}
	return best
}

// rank estimates how common a byte is in text and source code. Lower is
// rarer.
func rank(b byte) int {
	switch {
	case b == ' ':
		return 255
	case b == 'e' || b == 't' || b == 'a' || b == 'o' || b == 'i' || b == 'n' || b == 's' || b == 'r':
		return 200
	case b >= 'a' && b <= 'z':
		return 140
	case b >= '0' && b <= '9':
		return 130
	case b >= 'A' && b <= 'Z':
		return 90
	case b == '\n' || b == '\t' || b == ',' || b == '.' || b == '_' || b == '(' || b == ')':
		return 120
	case b >= 0x80:
		return 5
	case b < 0x20 || b == 0x7f:
		return 1
	default:
		return 50
	}
}

// memmemPrefilter searches for a single literal of two or more bytes.
type memmemPrefilter struct {
	needle   []byte
	rare     int
	complete bool
}

func newMemmemPrefilter(needle []byte, complete bool) *memmemPrefilter {
	needle = append([]byte(nil), needle...)
	return &memmemPrefilter{
		needle:   needle,
		rare:     rareByte(needle),
		complete: complete,
	}
}

// Find implements Prefilter.Find.
func (p *memmemPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := memmem(haystack[start:], p.needle, p.rare)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memmemPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memmemPrefilter) LiteralLen() int {
	if p.complete {
		return len(p.needle)
	}
	return 0
}
