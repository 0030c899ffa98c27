package nfa

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/laurex-re/laurex/alphabet"
	"github.com/laurex-re/laurex/parser"
	"github.com/laurex-re/laurex/token"
)

// MaxCodePoint is the highest code point the default alphabet
// partition makes room for: the full Unicode range.
const MaxCodePoint = 0x10FFFF

// Compile builds a top-level Automaton for pattern. A structurally
// malformed or empty pattern yields an automaton that never matches
// (spec §6, §7) rather than an error; a malformed quantifier is the one
// compile-time fault that is surfaced as an error, wrapped in
// *QuantifierError, since it is an authoring mistake rather than
// ordinary syntactic leniency.
func Compile(pattern string) (*Automaton, error) {
	return CompileWithMax(pattern, MaxCodePoint)
}

// CompileWithMax is Compile with an explicit alphabet ceiling, used by
// callers (Config.MaxCodePoint) that want to bound the partition to
// less than the full Unicode range.
func CompileWithMax(pattern string, maxCodePoint rune) (*Automaton, error) {
	root, err := parser.Parse(pattern)
	if err != nil || root == nil {
		return emptyAutomaton(), nil
	}
	count, names := parser.AssignCaptures(root)
	a, err := compileAutomaton(root, pattern, maxCodePoint)
	if err != nil {
		if qerr, ok := err.(*QuantifierError); ok {
			return nil, qerr
		}
		return emptyAutomaton(), nil
	}
	SetTraceInfo(a, count, names)
	return a, nil
}

// compileAutomaton builds the Automaton for one AST subtree together
// with a fresh range partition scanned from source, the subtree's own
// slice of the original pattern text (spec §4.5: every nested automaton
// gets its own partition over just its own literals).
func compileAutomaton(root *parser.Node, source string, maxCodePoint rune) (*Automaton, error) {
	part, err := alphabet.Build(source, maxCodePoint)
	if err != nil {
		return nil, err
	}
	b := NewBuilder(part, maxCodePoint)
	start, accept, err := compileNode(b, root)
	if err != nil {
		return nil, err
	}
	return b.Build(start, accept), nil
}

func compileNode(b *Builder, n *parser.Node) (StateID, StateID, error) {
	if n == nil {
		s := b.AddCommon()
		return s, s, nil
	}
	switch n.Category {
	case token.CategoryChar:
		return compileChar(b, n.Text)
	case token.CategoryConcat:
		return compileConcat(b, n)
	case token.CategoryAlternation:
		return compileAlternation(b, n)
	case token.CategoryQuantifier:
		min, max, err := parseQuantifier(n.Text)
		if err != nil {
			return 0, 0, &QuantifierError{Text: string(n.Text), Err: err}
		}
		return compileQuantifier(b, n.Left, min, max)
	case token.CategoryGroup:
		return compileGroup(b, n)
	case token.CategoryAssertion:
		return compileAssertion(b, n)
	default:
		s := b.AddCommon()
		return s, s, nil
	}
}

func compileConcat(b *Builder, n *parser.Node) (StateID, StateID, error) {
	ls, la, err := compileNode(b, n.Left)
	if err != nil {
		return 0, 0, err
	}
	rs, ra, err := compileNode(b, n.Right)
	if err != nil {
		return 0, 0, err
	}
	b.AddEmptyEdge(la, rs)
	return ls, ra, nil
}

func compileAlternation(b *Builder, n *parser.Node) (StateID, StateID, error) {
	ls, la, err := compileNode(b, n.Left)
	if err != nil {
		return 0, 0, err
	}
	rs, ra, err := compileNode(b, n.Right)
	if err != nil {
		return 0, 0, err
	}
	start := b.AddCommon()
	accept := b.AddCommon()
	b.AddEmptyEdge(start, ls)
	b.AddEmptyEdge(start, rs)
	b.AddEmptyEdge(la, accept)
	b.AddEmptyEdge(ra, accept)
	return start, accept, nil
}

func compileChar(b *Builder, text []rune) (StateID, StateID, error) {
	switch {
	case len(text) == 0:
		s := b.AddCommon()
		return s, s, nil
	case len(text) == 1 && text[0] == '.':
		return compileFunctionalAtom(b, KindEscape, &escapeMatcher{kind: escapeAny})
	case text[0] == '[':
		m, err := parseClass(text)
		if err != nil {
			return 0, 0, err
		}
		return compileFunctionalAtom(b, KindClass, m)
	case text[0] == '\\':
		m, err := parseEscapeAtom(text)
		if err != nil {
			return 0, 0, err
		}
		return compileFunctionalAtom(b, KindEscape, m)
	default:
		return compileLiteralRune(b, text[0])
	}
}

func compileFunctionalAtom(b *Builder, kind StateKind, payload any) (StateID, StateID, error) {
	fs := b.AddFunctional(kind, payload)
	accept := b.AddCommon()
	b.AddEmptyEdge(fs, accept)
	return fs, accept, nil
}

func compileLiteralRune(b *Builder, r rune) (StateID, StateID, error) {
	start := b.AddCommon()
	accept := b.AddCommon()
	b.AddRangeEdge(start, b.partition.RangeOf(r), accept)
	return start, accept, nil
}

func compileGroup(b *Builder, n *parser.Node) (StateID, StateID, error) {
	sub, err := compileAutomaton(n.Left, n.Source, b.maxCodePoint)
	if err != nil {
		return 0, 0, err
	}
	payload := &groupPayload{automaton: sub, index: n.Index, name: n.Name}
	return compileFunctionalAtom(b, KindGroup, payload)
}

func compileAssertion(b *Builder, n *parser.Node) (StateID, StateID, error) {
	kind, err := classifyAssertionKind(n.Text)
	if err != nil {
		return 0, 0, err
	}
	var nested *Automaton
	switch kind {
	case assertLookahead, assertNegLookahead, assertLookbehind, assertNegLookbehind:
		nested, err = compileAutomaton(n.Left, n.Source, b.maxCodePoint)
		if err != nil {
			return 0, 0, err
		}
	}
	return compileFunctionalAtom(b, KindAssertion, &assertionPayload{kind: kind, nested: nested})
}

func classifyAssertionKind(tok []rune) (assertionKind, error) {
	switch {
	case len(tok) == 1 && tok[0] == '^':
		return assertLineStart, nil
	case len(tok) == 1 && tok[0] == '$':
		return assertLineEnd, nil
	case len(tok) == 2 && tok[0] == '\\' && tok[1] == 'b':
		return assertWordBoundary, nil
	case len(tok) == 2 && tok[0] == '\\' && tok[1] == 'B':
		return assertNotWordBoundary, nil
	case len(tok) >= 3 && tok[0] == '(' && tok[1] == '?':
		switch tok[2] {
		case '=':
			return assertLookahead, nil
		case '!':
			return assertNegLookahead, nil
		case '<':
			if len(tok) >= 4 {
				switch tok[3] {
				case '=':
					return assertLookbehind, nil
				case '!':
					return assertNegLookbehind, nil
				}
			}
		}
	}
	return 0, fmt.Errorf("nfa: unrecognized assertion %q", string(tok))
}

// compileQuantifier expands a QUANTIFIER node's child into the chain of
// fragments spec §4.6 describes: min (or one, if min is zero)
// mandatory concatenated copies; for a finite max, further optional
// copies up to max copies in all, each wired straight to a shared final
// state; for an
// unbounded max, one additional loop copy that both self-loops and
// exits to final; and, when min is zero, a direct empty edge from the
// chain's start to final so zero repetitions is itself accepted.
func compileQuantifier(b *Builder, child *parser.Node, min, max int) (StateID, StateID, error) {
	if min == 0 && max == 0 {
		s := b.AddCommon()
		return s, s, nil
	}

	mandatory := min
	if mandatory == 0 {
		mandatory = 1
	}

	var chainStart, chainEnd StateID = InvalidState, InvalidState
	link := func(cs, ca StateID) {
		if chainStart == InvalidState {
			chainStart, chainEnd = cs, ca
			return
		}
		b.AddEmptyEdge(chainEnd, cs)
		chainEnd = ca
	}
	for i := 0; i < mandatory; i++ {
		cs, ca, err := compileNode(b, child)
		if err != nil {
			return 0, 0, err
		}
		link(cs, ca)
	}

	final := b.AddCommon()
	b.AddEmptyEdge(chainEnd, final)

	switch {
	case max < 0:
		cs, ca, err := compileNode(b, child)
		if err != nil {
			return 0, 0, err
		}
		b.AddEmptyEdge(chainEnd, cs)
		b.AddEmptyEdge(ca, cs)
		b.AddEmptyEdge(ca, final)
	case max > mandatory:
		entry := chainEnd
		for i := 0; i < max-mandatory; i++ {
			cs, ca, err := compileNode(b, child)
			if err != nil {
				return 0, 0, err
			}
			b.AddEmptyEdge(entry, cs)
			b.AddEmptyEdge(ca, final)
			entry = ca
		}
	}

	if min == 0 {
		b.AddEmptyEdge(chainStart, final)
	}
	return chainStart, final, nil
}

// parseQuantifier decodes a quantifier token's text into (min, max),
// with max == -1 meaning unbounded. A trailing '?' (non-greedy marker)
// is stripped and otherwise ignored: this engine's simulator explores
// every configuration and always reports the longest accepting
// position regardless of declared greediness (spec §4.10), so greedy
// and lazy forms of the same quantifier compile identically.
func parseQuantifier(text []rune) (min, max int, err error) {
	if len(text) == 0 {
		return 0, 0, errQuantifierSyntax
	}
	body := text
	if len(body) > 1 && body[len(body)-1] == '?' {
		body = body[:len(body)-1]
	}
	switch body[0] {
	case '*':
		return 0, -1, nil
	case '+':
		return 1, -1, nil
	case '?':
		return 0, 1, nil
	case '{':
		return parseBraceQuantifier(body)
	default:
		return 0, 0, errQuantifierSyntax
	}
}

func parseBraceQuantifier(body []rune) (int, int, error) {
	if len(body) < 2 || body[0] != '{' || body[len(body)-1] != '}' {
		return 0, 0, errQuantifierSyntax
	}
	inner := string(body[1 : len(body)-1])
	parts := strings.SplitN(inner, ",", 2)
	switch len(parts) {
	case 1:
		n, err := strconv.Atoi(parts[0])
		if err != nil || n < 0 {
			return 0, 0, errQuantifierSyntax
		}
		return n, n, nil
	case 2:
		lo, err := strconv.Atoi(parts[0])
		if err != nil || lo < 0 {
			return 0, 0, errQuantifierSyntax
		}
		if parts[1] == "" {
			return lo, -1, nil
		}
		hi, err := strconv.Atoi(parts[1])
		if err != nil || hi < 0 {
			return 0, 0, errQuantifierSyntax
		}
		if hi < lo {
			return 0, 0, errQuantifierRange
		}
		return lo, hi, nil
	default:
		return 0, 0, errQuantifierSyntax
	}
}
