package nfa

// groupPayload is the payload of a KindGroup functional state: it wraps
// a fully compiled nested automaton for the group's body, plus the
// capture slot it records into when the body accepts.
type groupPayload struct {
	automaton *Automaton
	index     int    // capture group number, 1-based
	name      string // "" if positional
}

// assertionKind distinguishes the eight assertion forms (spec §4.9).
type assertionKind uint8

const (
	assertLineStart assertionKind = iota
	assertLineEnd
	assertWordBoundary
	assertNotWordBoundary
	assertLookahead
	assertNegLookahead
	assertLookbehind
	assertNegLookbehind
)

// assertionPayload is the payload of a KindAssertion functional state.
// nested is non-nil only for the four lookaround kinds.
type assertionPayload struct {
	kind   assertionKind
	nested *Automaton
}

// classRange is one literal [lo, hi] (inclusive) member of a character
// class.
type classRange struct {
	lo, hi rune
}

// classMatcher is the payload of a KindClass functional state: the
// compiled form of a "[...]" construct (spec §4.7).
type classMatcher struct {
	negate  bool
	ranges  []classRange
	escapes []*escapeMatcher // \d, \s, \w (and negations) nested in the class; '.' inside a class uses escapeAny semantics too
}

func (m *classMatcher) matches(r rune) bool {
	hit := false
	for _, rg := range m.ranges {
		if r >= rg.lo && r <= rg.hi {
			hit = true
			break
		}
	}
	if !hit {
		for _, e := range m.escapes {
			if e.matchesRune(r) {
				hit = true
				break
			}
		}
	}
	if m.negate {
		return !hit
	}
	return hit
}

// escapeKind enumerates the single-atom escape forms of spec §4.8.
type escapeKind uint8

const (
	escapeAny escapeKind = iota // '.' : any rune except line terminators
	escapeDigit
	escapeNotDigit
	escapeSpace
	escapeNotSpace
	escapeWord
	escapeNotWord
	escapeLiteral // a specific literal rune (\t, \n, \0, \xXX, \uXXXX, \cX, or a plain escaped char)
	escapeBackref
)

// escapeMatcher is the payload of a KindEscape functional state: either
// a predefined class ('.', \d, \s, \w and negations), a literal rune
// produced by decoding an escape sequence, or a back-reference.
type escapeMatcher struct {
	kind    escapeKind
	literal rune
	backref int
}

func isLineTerminator(r rune) bool { return r == '\n' || r == '\r' }

func isSpaceRune(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	default:
		return false
	}
}

func isWordRune(r rune) bool {
	return (r >= '0' && r <= '9') || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || r == '_'
}

// matchesRune reports whether r is matched by a predefined-class
// escape or, for escapeLiteral, whether r equals the decoded rune. It
// always reports false for escapeBackref, which the simulator handles
// separately.
func (e *escapeMatcher) matchesRune(r rune) bool {
	switch e.kind {
	case escapeAny:
		return !isLineTerminator(r)
	case escapeDigit:
		return r >= '0' && r <= '9'
	case escapeNotDigit:
		return !(r >= '0' && r <= '9')
	case escapeSpace:
		return isSpaceRune(r)
	case escapeNotSpace:
		return !isSpaceRune(r)
	case escapeWord:
		return isWordRune(r)
	case escapeNotWord:
		return !isWordRune(r)
	case escapeLiteral:
		return r == e.literal
	default:
		return false
	}
}
