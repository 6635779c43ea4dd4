package prefilter

import (
	"encoding/binary"
	"math/bits"
)

const (
	lo8 = 0x0101010101010101
	hi8 = 0x8080808080808080
)

// memchr returns the index of the first byte of haystack equal to one of
// the needles (at most three), or -1.
//
// Eight bytes are tested at a time (SWAR): each needle is broadcast to a
// uint64, XOR turns matching bytes into 0x00, and the zero-byte test
// (v - lo8) & ^v & hi8 marks them. Borrows only spill into higher bytes, so
// the lowest mark is always exact.
func memchr(haystack []byte, needles []byte) int {
	var masks [3]uint64
	for i, b := range needles {
		masks[i] = uint64(b) * lo8
	}
	n := len(needles)

	idx := 0
	for ; idx+8 <= len(haystack); idx += 8 {
		chunk := binary.LittleEndian.Uint64(haystack[idx:])
		var found uint64
		for _, mask := range masks[:n] {
			v := chunk ^ mask
			found |= (v - lo8) & ^v & hi8
		}
		if found != 0 {
			return idx + bits.TrailingZeros64(found)/8
		}
	}

	for ; idx < len(haystack); idx++ {
		for _, b := range needles {
			if haystack[idx] == b {
				return idx
			}
		}
	}
	return -1
}

// memchrPrefilter searches for one to three single-byte literals.
type memchrPrefilter struct {
	needles  []byte
	complete bool
}

func newMemchrPrefilter(needles []byte, complete bool) *memchrPrefilter {
	return &memchrPrefilter{
		needles:  append([]byte(nil), needles...),
		complete: complete && len(needles) == 1,
	}
}

// Find implements Prefilter.Find.
func (p *memchrPrefilter) Find(haystack []byte, start int) int {
	if start < 0 || start >= len(haystack) {
		return -1
	}
	idx := memchr(haystack[start:], p.needles)
	if idx == -1 {
		return -1
	}
	return start + idx
}

// IsComplete implements Prefilter.IsComplete.
func (p *memchrPrefilter) IsComplete() bool {
	return p.complete
}

// LiteralLen implements Prefilter.LiteralLen.
func (p *memchrPrefilter) LiteralLen() int {
	if p.complete {
		return 1
	}
	return 0
}
