package parser

import (
	"bufio"
	"errors"
	"io"
)

// ParseReader streams the runes of r through the state machine and finalizes
// the parser once r is exhausted. Read errors other than io.EOF are returned
// without finalizing.
func (p *Parser[T]) ParseReader(r io.Reader) error {
	br, ok := r.(io.RuneReader)
	if !ok {
		br = bufio.NewReader(r)
	}
	for {
		c, _, err := br.ReadRune()
		if err != nil {
			if errors.Is(err, io.EOF) {
				p.Finalize()
				return nil
			}
			return err
		}
		p.ParseRune(c)
	}
}
