package token


// ConsumeEscape consumes a backslash-introduced escape in src starting at
// pos (src[pos] must be '\\') and returns the escape's text (including
// the leading backslash), the position just past it, and whether the
// escape was well-formed. A truncated escape (source ends before the
// expected trailing characters) returns ok=false.
//
// Recognized forms (spec §4.2):
//
//	\NNN...   one or more decimal digits  -> back-reference
//	\uXXXX    4 hex digits                -> unicode escape
//	\xXX      2 hex digits                -> hex escape
//	\cX       1 control char              -> control escape
//	\0        bare NUL literal
//	\X        any other single char       -> literal char
func ConsumeEscape(src []rune, pos int) (text []rune, newPos int, ok bool) {
	start := pos
	pos++ // skip backslash
	if pos >= len(src) {
		return nil, start, false
	}
	r := src[pos]
	switch {
	case isDecimalDigit(r):
		digitsStart := pos
		for pos < len(src) && isDecimalDigit(src[pos]) {
			pos++
		}
		if pos-digitsStart == 1 && src[digitsStart] == '0' {
			return src[start:pos], pos, true // bare \0
		}
		return src[start:pos], pos, true
	case r == 'u':
		if pos+4 >= len(src) {
			return nil, start, false
		}
		for i := 1; i <= 4; i++ {
			if !isHexDigit(src[pos+i]) {
				return nil, start, false
			}
		}
		return src[start : pos+5], pos + 5, true
	case r == 'x':
		if pos+2 >= len(src) {
			return nil, start, false
		}
		for i := 1; i <= 2; i++ {
			if !isHexDigit(src[pos+i]) {
				return nil, start, false
			}
		}
		return src[start : pos+3], pos + 3, true
	case r == 'c':
		if pos+1 >= len(src) {
			return nil, start, false
		}
		return src[start : pos+2], pos + 2, true
	default:
		return src[start : pos+1], pos + 1, true
	}
}

func isDecimalDigit(r rune) bool { return r >= '0' && r <= '9' }

func isHexDigit(r rune) bool {
	return isDecimalDigit(r) || (r >= 'a' && r <= 'f') || (r >= 'A' && r <= 'F')
}

// IsWordRune reports whether r counts as a "word" character for \w and
// word-boundary assertions: ASCII alphanumeric or underscore.
func IsWordRune(r rune) bool {
	return isDecimalDigit(r) || isASCIIAlpha(r) || r == '_'
}

func isASCIIAlpha(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
