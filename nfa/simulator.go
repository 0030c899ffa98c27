package nfa

import (
	"github.com/laurex-re/laurex/internal/sparse"
	"github.com/laurex-re/laurex/token"
)

// Limits bounds a Simulator's work so a pathological pattern cannot run
// away (spec §5: "implementers may add a caller-supplied limit on live
// configurations"). A zero Limits is unbounded.
type Limits struct {
	MaxConfigs int
}

// Simulator walks one input, exploring every path through an automaton
// (and, recursively, through the nested automata owned by its Group and
// lookaround functional states) without consuming more runes than are
// present. It implements the parallel configuration-set semantics of
// spec §4.10 as a memoized recursive search: the per-position visitSet
// plays the role the spec describes as a single generation's
// configuration set, and recursion through Group/lookaround substitutes
// for re-entering the outer set after a variable-width sub-match.
//
// A Simulator is built fresh per Match/Search call; it is not safe for
// concurrent use, though the Automaton it walks is.
type Simulator struct {
	input  []rune
	limits Limits
	steps  int

	exceeded bool
}

// NewSimulator creates a Simulator over input with the given Limits.
func NewSimulator(input []rune, limits Limits) *Simulator {
	return &Simulator{input: input, limits: limits}
}

// LimitExceeded reports whether the last simulation call aborted early
// because limits.MaxConfigs was reached.
func (s *Simulator) LimitExceeded() bool { return s.exceeded }

// Err returns ErrLimitExceeded once this Simulator has aborted a
// search early, nil otherwise. A caller running NextMatch repeatedly
// over successive start positions (e.g. a FindAll loop) should check
// Err after each call and stop: the step budget is shared across the
// whole Simulator, so once it is exhausted every later call returns
// immediately with no results rather than a genuine non-match.
func (s *Simulator) Err() error {
	if s.exceeded {
		return ErrLimitExceeded
	}
	return nil
}

// result pairs an end position reached at the automaton's accept state
// with the capture trace active there.
type result struct {
	pos int
	tr  trace
}

// visitSet tracks which (state, position) configurations have already
// been explored during one explore() call tree, one sparse.SparseSet
// per distinct position, each sized to the automaton's state count.
// This plays the role the spec describes as the simulator's
// configuration-set dedup, adapted to a recursive walk instead of
// generation-by-generation stepping.
type visitSet struct {
	numStates int
	byPos     map[int]*sparse.SparseSet
}

func newVisitSet(a *Automaton) *visitSet {
	return &visitSet{numStates: a.NumStates(), byPos: make(map[int]*sparse.SparseSet)}
}

// mark records (id, pos) as visited and reports whether it was newly
// recorded (spec's "first arrival wins" dedup policy).
func (v *visitSet) mark(id StateID, pos int) bool {
	set := v.byPos[pos]
	if set == nil {
		set = sparse.NewSparseSet(uint32(v.numStates))
		v.byPos[pos] = set
	}
	return set.Insert(uint32(id))
}

// NextMatch runs the automaton from start and returns the longest
// accepting end position reached, per spec §4.10 ("longest match"). ok
// is false if no accepting path exists or a is the empty automaton.
func (s *Simulator) NextMatch(a *Automaton, start int) (end int, tr trace, ok bool) {
	if a == nil || a.Empty() {
		return 0, trace{}, false
	}
	var results []result
	visited := newVisitSet(a)
	s.explore(a, a.Start(), start, newTrace(a.CaptureCount()), visited, &results)
	if len(results) == 0 {
		return 0, trace{}, false
	}
	best := results[0]
	for _, r := range results[1:] {
		if r.pos > best.pos {
			best = r
		}
	}
	return best.pos, best.tr, true
}

// AllAccepting returns every distinct end position a's accept state is
// reached at when starting from pos with tr, used by Group functional
// states (which must continue the outer automaton once per distinct
// sub-match length) and by assertion lookahead.
func (s *Simulator) AllAccepting(a *Automaton, pos int, tr trace) []result {
	if a == nil || a.Empty() {
		return nil
	}
	var results []result
	visited := newVisitSet(a)
	s.explore(a, a.Start(), pos, tr, visited, &results)
	return results
}

// explore performs a depth-first walk of every epsilon/consuming path
// reachable from (state, pos) without exceeding the available input,
// recording a result each time it reaches a.Accept(). visited enforces
// the spec's "first arrival wins" dedup policy per (state, pos): a
// configuration already explored at this position is never revisited,
// which both breaks epsilon cycles and caps the work to
// O(states x input length) for any single explore call.
func (s *Simulator) explore(a *Automaton, id StateID, pos int, tr trace, visited *visitSet, results *[]result) {
	if s.limits.MaxConfigs > 0 && s.steps >= s.limits.MaxConfigs {
		s.exceeded = true
		return
	}
	if !visited.mark(id, pos) {
		return
	}
	s.steps++

	st := a.State(id)
	if st == nil {
		return
	}
	if id == a.Accept() {
		*results = append(*results, result{pos: pos, tr: tr})
	}
	switch st.Kind() {
	case KindCommon:
		s.stepCommon(a, st, pos, tr, visited, results)
	case KindAssertion:
		s.stepAssertion(a, st, pos, tr, visited, results)
	case KindClass:
		m := st.payload.(*classMatcher)
		s.stepConsumer(a, st, pos, tr, visited, results, m.matches)
	case KindEscape:
		s.stepEscape(a, st, pos, tr, visited, results)
	case KindGroup:
		s.stepGroup(a, st, pos, tr, visited, results)
	}
}

func (s *Simulator) stepCommon(a *Automaton, st *State, pos int, tr trace, visited *visitSet, results *[]result) {
	for _, succ := range st.Empty() {
		s.explore(a, succ, pos, tr, visited, results)
	}
	if pos >= len(s.input) {
		return
	}
	label := a.Partition().RangeOf(s.input[pos])
	for _, succ := range st.RangeSuccessors(label) {
		s.explore(a, succ, pos+1, tr, visited, results)
	}
}

func (s *Simulator) stepConsumer(a *Automaton, st *State, pos int, tr trace, visited *visitSet, results *[]result, match func(rune) bool) {
	if pos >= len(s.input) || !match(s.input[pos]) {
		return
	}
	for _, succ := range st.Empty() {
		s.explore(a, succ, pos+1, tr, visited, results)
	}
}

func (s *Simulator) stepEscape(a *Automaton, st *State, pos int, tr trace, visited *visitSet, results *[]result) {
	m := st.payload.(*escapeMatcher)
	if m.kind != escapeBackref {
		s.stepConsumer(a, st, pos, tr, visited, results, m.matchesRune)
		return
	}
	span, ok := tr.get(m.backref)
	if !ok {
		return
	}
	n := span.End - span.Start
	if pos+n > len(s.input) {
		return
	}
	for i := 0; i < n; i++ {
		if s.input[pos+i] != s.input[span.Start+i] {
			return
		}
	}
	for _, succ := range st.Empty() {
		s.explore(a, succ, pos+n, tr, visited, results)
	}
}

func (s *Simulator) stepAssertion(a *Automaton, st *State, pos int, tr trace, visited *visitSet, results *[]result) {
	p := st.payload.(*assertionPayload)
	var ok bool
	switch p.kind {
	case assertLineStart:
		ok = pos == 0 || isLineTerminator(s.input[pos-1])
	case assertLineEnd:
		ok = pos == len(s.input) || isLineTerminator(s.input[pos])
	case assertWordBoundary:
		ok = s.atWordBoundary(pos)
	case assertNotWordBoundary:
		ok = !s.atWordBoundary(pos)
	case assertLookahead:
		ok = len(s.AllAccepting(p.nested, pos, tr.clone())) > 0
	case assertNegLookahead:
		ok = len(s.AllAccepting(p.nested, pos, tr.clone())) == 0
	case assertLookbehind:
		ok = s.matchesEndingAt(p.nested, pos)
	case assertNegLookbehind:
		ok = !s.matchesEndingAt(p.nested, pos)
	}
	if !ok {
		return
	}
	for _, succ := range st.Empty() {
		s.explore(a, succ, pos, tr, visited, results)
	}
}

func (s *Simulator) stepGroup(a *Automaton, st *State, pos int, tr trace, visited *visitSet, results *[]result) {
	p := st.payload.(*groupPayload)
	// Every sub here may share its trace's backing array with any other
	// sub in this same slice (the nested automaton's own epsilon fanout
	// forwards one trace value to many accepting configurations without
	// cloning it per branch). Cloning before with() forces each capture
	// write to take the copy path instead of mutating a backing array a
	// sibling sub (or this outer call's own tr) still points at.
	for _, sub := range s.AllAccepting(p.automaton, pos, tr.clone()) {
		captured := sub.tr.clone().with(p.index, Span{Start: pos, End: sub.pos})
		for _, succ := range st.Empty() {
			s.explore(a, succ, sub.pos, captured, visited, results)
		}
	}
}

func (s *Simulator) atWordBoundary(pos int) bool {
	before := pos > 0 && token.IsWordRune(s.input[pos-1])
	after := pos < len(s.input) && token.IsWordRune(s.input[pos])
	return before != after
}

// matchesEndingAt implements lookbehind by forward suffix-testing: try
// every substring input[pos-l:pos] for l = 0..pos, running nested's
// automaton forwards from pos-l and looking for an accepting
// configuration that lands at exactly pos (spec's resolved Open
// Question on lookbehind, see DESIGN.md).
func (s *Simulator) matchesEndingAt(nested *Automaton, pos int) bool {
	if nested == nil {
		return false
	}
	for l := 0; l <= pos; l++ {
		start := pos - l
		for _, r := range s.AllAccepting(nested, start, newTrace(nested.CaptureCount())) {
			if r.pos == pos {
				return true
			}
		}
	}
	return false
}

// Match reports whether a accepts the exact span input[start:end],
// consuming no more and no less (used by callers that need an anchored
// whole-span check rather than a longest-match search).
func (s *Simulator) Match(a *Automaton, start, end int) bool {
	_, ok := s.MatchTrace(a, start, end)
	return ok
}

// MatchTrace is Match, but also returns the capture trace active at
// the exact-span accepting configuration, for callers that need group
// spans rather than a bare bool (spec §6's core "Match" contract, as
// opposed to Search/NextMatch's longest-match-anywhere contract).
func (s *Simulator) MatchTrace(a *Automaton, start, end int) (trace, bool) {
	if a == nil || a.Empty() {
		return trace{}, false
	}
	saved := s.input
	s.input = s.input[:end]
	defer func() { s.input = saved }()
	for _, r := range s.AllAccepting(a, start, newTrace(a.CaptureCount())) {
		if r.pos == end {
			return r.tr, true
		}
	}
	return trace{}, false
}
