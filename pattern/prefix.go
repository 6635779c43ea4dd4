package pattern

import "strings"

// LiteralPrefix returns the literal text every match of p begins with. The
// complete result is true when p matches exactly that text and nothing else.
func (p *Pattern) LiteralPrefix() (prefix string, complete bool) {
	if p.root.isChoice() || p.root.min != 1 || p.root.max != 1 {
		return "", false
	}
	prefix, n := leadingLiteral(p.root)
	return prefix, n == len(p.root.items)
}

// LiteralPrefixes returns a set of literal texts such that every match of p
// begins with one of them. It returns nil when some match may begin with an
// arbitrary rune.
func (p *Pattern) LiteralPrefixes() []string {
	return prefixes(p.root)
}

func prefixes(it item) []string {
	switch it := it.(type) {
	case *char:
		if it.min > 0 {
			return []string{string(it.r)}
		}
	case *group:
		if it.min == 0 {
			return nil
		}
		if it.isChoice() {
			var all []string
			for _, alt := range it.alts {
				sub := prefixes(alt)
				if sub == nil {
					return nil
				}
				all = append(all, sub...)
			}
			return all
		}
		if prefix, _ := leadingLiteral(it); prefix != "" {
			return []string{prefix}
		}
		if len(it.items) > 0 {
			return prefixes(it.items[0])
		}
	}
	return nil
}

// leadingLiteral collects the mandatory literal runes starting a sequence and
// returns how many children were used up.
func leadingLiteral(g *group) (string, int) {
	var b strings.Builder
	n := 0
	for _, child := range g.items {
		c, ok := child.(*char)
		if !ok || c.min == 0 {
			break
		}
		b.WriteRune(c.r)
		if c.min != 1 || c.max != 1 {
			break
		}
		n++
	}
	return b.String(), n
}
