// Package prefilter accelerates search by recognizing patterns that
// are nothing but a literal alternation (e.g. "foo|bar|baz") and
// answering "where could a match start" with an Aho-Corasick automaton
// instead of invoking the simulator at every input position.
//
// A Filter never changes what Match/Find report: skipping a start
// position is only safe because every accepting path through such a
// pattern begins with one of the extracted literals, so any position
// that isn't the start of one can never begin a match.
package prefilter

import (
	"github.com/coregx/ahocorasick"
	"github.com/laurex-re/laurex/parser"
	"github.com/laurex-re/laurex/token"
)

// ExtractLiterals reports whether root is entirely a literal
// alternation — every branch of every nested ALTERNATION, once
// flattened, is a fixed run of literal runes with no ".", character
// class, escape, quantifier, group, or assertion — and if so returns
// the branch literals in left-to-right order.
//
// Patterns with fewer than two literal branches, or any branch that
// isn't pure literal text, report ok == false: those gain nothing from
// a multi-literal automaton (a single literal is better served by the
// simulator itself, and anything else can't be filtered this way).
func ExtractLiterals(root *parser.Node) (literals []string, ok bool) {
	lits, ok := collectAlternatives(root)
	if !ok || len(lits) < 2 {
		return nil, false
	}
	for _, lit := range lits {
		if lit == "" {
			return nil, false
		}
	}
	return lits, true
}

func collectAlternatives(n *parser.Node) ([]string, bool) {
	if n == nil {
		return nil, false
	}
	if n.Category == token.CategoryAlternation {
		left, ok := collectAlternatives(n.Left)
		if !ok {
			return nil, false
		}
		right, ok := collectAlternatives(n.Right)
		if !ok {
			return nil, false
		}
		return append(left, right...), true
	}
	lit, ok := flattenLiteral(n)
	if !ok {
		return nil, false
	}
	return []string{lit}, true
}

// flattenLiteral concatenates a CHAR/CONCAT subtree into a plain
// string, failing as soon as it meets anything that isn't a bare
// literal rune run.
func flattenLiteral(n *parser.Node) (string, bool) {
	if n == nil {
		return "", true
	}
	switch n.Category {
	case token.CategoryConcat:
		left, ok := flattenLiteral(n.Left)
		if !ok {
			return "", false
		}
		right, ok := flattenLiteral(n.Right)
		if !ok {
			return "", false
		}
		return left + right, true
	case token.CategoryChar:
		if isBareLiteral(n.Text) {
			return string(n.Text), true
		}
		return "", false
	default:
		return "", false
	}
}

func isBareLiteral(text []rune) bool {
	if len(text) == 0 {
		return true
	}
	switch text[0] {
	case '.', '[', '\\':
		return false
	}
	return true
}

// Filter wraps a compiled Aho-Corasick automaton over a set of
// literals extracted by ExtractLiterals.
type Filter struct {
	auto *ahocorasick.Automaton
}

// Build compiles literals into a Filter. It returns a nil Filter and a
// nil error if literals has fewer than two entries, since a single
// literal offers nothing an Aho-Corasick automaton improves on here.
func Build(literals []string) (*Filter, error) {
	if len(literals) < 2 {
		return nil, nil
	}
	builder := ahocorasick.NewBuilder()
	for _, lit := range literals {
		builder.AddPattern([]byte(lit))
	}
	auto, err := builder.Build()
	if err != nil {
		return nil, err
	}
	return &Filter{auto: auto}, nil
}

// NextCandidate returns the byte offset of the next position in
// haystack, at or after from, where one of the filter's literals
// begins, and reports whether one exists.
func (f *Filter) NextCandidate(haystack []byte, from int) (int, bool) {
	if f == nil || f.auto == nil {
		return from, true
	}
	if from >= len(haystack) {
		return 0, false
	}
	m := f.auto.Find(haystack, from)
	if m == nil {
		return 0, false
	}
	return m.Start, true
}

// IsMatch reports whether any literal occurs in haystack at all, for
// callers that only need a boolean (MatchString) rather than a start
// position.
func (f *Filter) IsMatch(haystack []byte) bool {
	if f == nil || f.auto == nil {
		return true
	}
	return f.auto.IsMatch(haystack)
}
