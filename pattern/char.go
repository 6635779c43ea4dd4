package pattern

// char matches one literal rune.
type char struct {
	repeat
	r rune
}

func (c *char) reset(*state) {}

func (c *char) write(_ *state, r rune) int {
	if r == c.r {
		return 1
	}
	return NoMatch
}

func (c *char) closed(*state) bool {
	return true
}
