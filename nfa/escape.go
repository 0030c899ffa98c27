package nfa

import "strconv"

// predefinedClassEscape recognizes \d \D \s \S \w \W and returns the
// matching escapeMatcher, or nil if esc is some other escape form.
func predefinedClassEscape(esc []rune) *escapeMatcher {
	if len(esc) != 2 {
		return nil
	}
	switch esc[1] {
	case 'd':
		return &escapeMatcher{kind: escapeDigit}
	case 'D':
		return &escapeMatcher{kind: escapeNotDigit}
	case 's':
		return &escapeMatcher{kind: escapeSpace}
	case 'S':
		return &escapeMatcher{kind: escapeNotSpace}
	case 'w':
		return &escapeMatcher{kind: escapeWord}
	case 'W':
		return &escapeMatcher{kind: escapeNotWord}
	default:
		return nil
	}
}

// decodeLiteralEscape decodes an escape sequence (as produced by
// token.ConsumeEscape, leading backslash included) to the single rune
// it denotes (spec §4.8): \t \n \v \f \0, \uXXXX, \xXX, \cX, or any
// other "\X" falls back to the literal character X.
func decodeLiteralEscape(esc []rune) (rune, error) {
	body := esc[1:]
	switch {
	case len(body) == 1:
		switch body[0] {
		case 't':
			return '\t', nil
		case 'n':
			return '\n', nil
		case 'v':
			return '\v', nil
		case 'f':
			return '\f', nil
		case 'r':
			return '\r', nil
		case '0':
			return 0, nil
		default:
			return body[0], nil
		}
	case body[0] == 'u' && len(body) == 5:
		v, err := strconv.ParseInt(string(body[1:]), 16, 32)
		if err != nil {
			return 0, err
		}
		return rune(v), nil
	case body[0] == 'x' && len(body) == 3:
		v, err := strconv.ParseInt(string(body[1:]), 16, 32)
		if err != nil {
			return 0, err
		}
		return rune(v), nil
	case body[0] == 'c' && len(body) == 2:
		return body[1] % 32, nil
	default:
		return body[0], nil
	}
}

// parseEscapeAtom classifies a top-level "\..." CHAR-leaf token into
// its escapeMatcher form: a predefined class, a back-reference (one or
// more decimal digits, except the single digit "0" which denotes a NUL
// literal per spec §4.2's bare-\0 rule), or a literal rune.
func parseEscapeAtom(tok []rune) (*escapeMatcher, error) {
	if e := predefinedClassEscape(tok); e != nil {
		return e, nil
	}
	if len(tok) >= 2 && isAllDecimalDigits(tok[1:]) {
		if len(tok) == 2 && tok[1] == '0' {
			return &escapeMatcher{kind: escapeLiteral, literal: 0}, nil
		}
		n, err := strconv.Atoi(string(tok[1:]))
		if err != nil {
			return nil, err
		}
		return &escapeMatcher{kind: escapeBackref, backref: n}, nil
	}
	r, err := decodeLiteralEscape(tok)
	if err != nil {
		return nil, err
	}
	return &escapeMatcher{kind: escapeLiteral, literal: r}, nil
}

func isAllDecimalDigits(rs []rune) bool {
	if len(rs) == 0 {
		return false
	}
	for _, r := range rs {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
