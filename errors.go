package laurex

import (
	"errors"

	"github.com/laurex-re/laurex/nfa"
	"github.com/laurex-re/laurex/token"
)

// Sentinel errors returned by CompileWithConfig when Config.Strict is
// set. Ordinary Compile never returns these: a malformed pattern
// simply compiles to an automaton that never matches (spec §7).
var (
	// ErrUnclosedBracket means a "[", "{", or "(" was never closed.
	ErrUnclosedBracket = errors.New("laurex: unclosed bracket")
	// ErrUnmatchedCloser means a "]", "}", or ")" had no opener.
	ErrUnmatchedCloser = errors.New("laurex: unmatched closing bracket")
	// ErrTruncatedEscape means a "\" was the last character, or was
	// followed by an incomplete \u, \x, or \c form.
	ErrTruncatedEscape = errors.New("laurex: truncated escape sequence")
	// ErrParse covers any other structural parse fault (e.g. a
	// leading quantifier, or an unrecognized "(?" sigil).
	ErrParse = errors.New("laurex: malformed pattern")
)

// QuantifierError reports a malformed or out-of-range quantifier, such
// as "{3,1}" or "{n,m}". Unlike the sentinels above, this is returned
// by plain Compile too: a bad quantifier is always an authoring
// mistake, never ordinary syntactic leniency.
type QuantifierError = nfa.QuantifierError

// diagnose re-tokenizes pattern to classify why the tokenizer/parser
// rejected it, for Config.Strict callers that want a specific sentinel
// rather than the generic degrade-to-empty-automaton behavior.
func diagnose(pattern string) error {
	cur := token.NewCursor(pattern)
	runes := []rune(pattern)
	for !cur.AtEnd() {
		pos := cur.Pos()
		tok := cur.Next()
		if len(tok) > 0 {
			continue
		}
		switch runes[pos] {
		case ']', '}', ')':
			return ErrUnmatchedCloser
		case '[', '{', '(':
			return ErrUnclosedBracket
		case '\\':
			return ErrTruncatedEscape
		default:
			return ErrParse
		}
	}
	return ErrParse
}
