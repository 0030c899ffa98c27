// Package alphabet partitions the code-point space into a sorted
// sequence of disjoint ranges used as edge labels in the automaton
// (spec §4.5). Each literal character that appears in a pattern becomes
// the sole member of its own range, so an ordinary character atom needs
// exactly one outgoing edge.
package alphabet

import (
	"errors"
	"sort"

	"github.com/laurex-re/laurex/token"
)

// errInvalidToken is returned when pattern contains a structurally
// malformed token (unclosed bracket, unmatched closer, truncated
// escape). Callers that need the spec §7 degrade-to-empty-automaton
// behavior treat this identically to any other compile fault; it is
// exported as ErrInvalidToken for callers that need to distinguish it.
var errInvalidToken = errors.New("alphabet: invalid token in pattern")

// ErrInvalidToken is the exported form of errInvalidToken.
var ErrInvalidToken = errInvalidToken

// Partition is a sorted sequence of code-point boundaries
// b0=0 < b1 < … < bn = max+1. Range i covers [bounds[i], bounds[i+1])
// and is referenced as edge label i. Label 0 is reserved: it covers
// [0, bounds[1]) and is never used to label a character-consuming
// edge — only empty transitions use it.
type Partition struct {
	bounds []rune
}

// Build scans pattern for literal single-character CHAR tokens and
// returns the resulting partition. Non-capturing groups are recursed
// into (their text is spliced directly into the same automaton by the
// parser, so their literals share this partition); capturing groups and
// assertions are not recursed into, since the automaton builder gives
// each of those its own nested automaton with its own partition built by
// a separate call to Build.
func Build(pattern string, maxCodePoint rune) (*Partition, error) {
	lits := map[rune]struct{}{}
	if err := collectLiterals(pattern, lits); err != nil {
		return nil, err
	}
	bounds := make([]rune, 0, len(lits)*2+2)
	bounds = append(bounds, 0, maxCodePoint+1)
	for c := range lits {
		bounds = append(bounds, c, c+1)
	}
	bounds = dedupSorted(bounds)
	return &Partition{bounds: bounds}, nil
}

func collectLiterals(pattern string, out map[rune]struct{}) error {
	cur := token.NewCursor(pattern)
	for !cur.AtEnd() {
		tok := cur.Next()
		if len(tok) == 0 {
			return errInvalidToken
		}
		cat := token.Classify(tok)
		switch {
		case cat == token.CategoryChar && len(tok) == 1:
			out[tok[0]] = struct{}{}
		case cat == token.CategoryGroup && token.IsNonCapturingGroup(tok):
			inner := token.GroupInner(tok)
			if len(inner) > 0 {
				if err := collectLiterals(string(inner), out); err != nil {
					return err
				}
			}
		}
	}
	return nil
}

func dedupSorted(bounds []rune) []rune {
	sort.Slice(bounds, func(i, j int) bool { return bounds[i] < bounds[j] })
	out := bounds[:0]
	var last rune = -1
	for _, b := range bounds {
		if b != last {
			out = append(out, b)
			last = b
		}
	}
	return out
}

// NumRanges returns the number of disjoint ranges in the partition,
// including reserved range 0.
func (p *Partition) NumRanges() int { return len(p.bounds) - 1 }

// Bounds returns the raw boundary sequence.
func (p *Partition) Bounds() []rune { return p.bounds }

// RangeOf returns the label of the range containing c, i.e. the index i
// such that bounds[i] <= c < bounds[i+1]. Label 0 is returned only for
// characters below the first real boundary (the smallest literal);
// other characters absent from the pattern get the label of the gap
// range between the literals around them.
func (p *Partition) RangeOf(c rune) int {
	// bounds[0]==0 is the reserved empty-label boundary; search within
	// bounds[1:] for c's range and report its index among all ranges.
	i := sort.Search(len(p.bounds)-1, func(i int) bool { return p.bounds[i+1] > c })
	if i >= len(p.bounds)-1 {
		i = len(p.bounds) - 2
	}
	if i == 0 {
		return 0
	}
	return i
}
