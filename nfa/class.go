package nfa

import "github.com/laurex-re/laurex/token"

// parseClass parses a "[...]" token's full text (including the
// brackets) into a classMatcher (spec §4.7).
//
// Grammar: "[" ["^"] item+ "]" where item is a literal rune, a
// "lo-hi" range, a predefined-class escape (\d \D \s \S \w \W), any
// other escape (decoded to its literal rune per spec §4.8), or a bare
// "." — which, as outside a class, carries escapeAny semantics (any
// rune except a line terminator) rather than matching the literal
// period character.
func parseClass(text []rune) (*classMatcher, error) {
	if len(text) < 2 || text[0] != '[' || text[len(text)-1] != ']' {
		return nil, errClassSyntax
	}
	body := text[1 : len(text)-1]
	m := &classMatcher{}
	i := 0
	if len(body) > 0 && body[0] == '^' {
		m.negate = true
		i = 1
	}
	readAtom := func() (rune, bool, *escapeMatcher, error) {
		switch body[i] {
		case '.':
			i++
			return 0, false, &escapeMatcher{kind: escapeAny}, nil
		case '\\':
			esc, next, ok := token.ConsumeEscape(body, i)
			if !ok {
				return 0, false, nil, errClassSyntax
			}
			i = next
			if e := predefinedClassEscape(esc); e != nil {
				return 0, false, e, nil
			}
			r, err := decodeLiteralEscape(esc)
			if err != nil {
				return 0, false, nil, err
			}
			return r, true, nil, nil
		default:
			r := body[i]
			i++
			return r, true, nil, nil
		}
	}
	for i < len(body) {
		lo, isLit, esc, err := readAtom()
		if err != nil {
			return nil, err
		}
		if !isLit {
			m.escapes = append(m.escapes, esc)
			continue
		}
		if i+1 < len(body) && body[i] == '-' && body[i+1] != ']' {
			i++ // consume '-'
			hi, hiIsLit, _, err := readAtom()
			if err != nil {
				return nil, err
			}
			if !hiIsLit {
				return nil, errClassSyntax
			}
			m.ranges = append(m.ranges, classRange{lo: lo, hi: hi})
			continue
		}
		m.ranges = append(m.ranges, classRange{lo: lo, hi: lo})
	}
	return m, nil
}
