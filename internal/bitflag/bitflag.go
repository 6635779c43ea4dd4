// Package bitflag provides helpers to test and update flag sets stored in
// unsigned integers, so that two independent facts (for example "processed"
// and "end of item") can travel in a single value.
package bitflag

// Flags is the set of integer types usable as flag sets.
type Flags interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint
}

// Test reports whether every bit of mask is set in v.
func Test[T Flags](v, mask T) bool {
	return v&mask == mask
}

// Any reports whether at least one bit of mask is set in v.
func Any[T Flags](v, mask T) bool {
	return v&mask != 0
}

// Set returns v with the bits of mask set.
func Set[T Flags](v, mask T) T {
	return v | mask
}

// Clear returns v with the bits of mask cleared.
func Clear[T Flags](v, mask T) T {
	return v &^ mask
}
