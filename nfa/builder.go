package nfa

import "github.com/laurex-re/laurex/alphabet"

// Builder constructs an Automaton incrementally. Each Builder owns its
// own StateID space (spec §9).
type Builder struct {
	states       []State
	partition    *alphabet.Partition
	maxCodePoint rune
}

// NewBuilder creates a Builder whose character-consuming states will be
// labeled according to partition. maxCodePoint is threaded through so
// that a nested Group/lookaround automaton built from this Builder's
// compilation can reuse the same alphabet ceiling.
func NewBuilder(partition *alphabet.Partition, maxCodePoint rune) *Builder {
	return &Builder{partition: partition, maxCodePoint: maxCodePoint}
}

func (b *Builder) numRanges() int {
	if b.partition == nil {
		return 1
	}
	return b.partition.NumRanges()
}

// AddCommon adds an ordinary state with no edges yet and returns its id.
func (b *Builder) AddCommon() StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: KindCommon, ranges: make([][]StateID, b.numRanges())})
	return id
}

// AddFunctional adds a functional state of the given kind carrying
// payload, and returns its id. The state is both "start" and "accept"
// of its own fragment (spec §4.6); its empty edges (added separately via
// AddEmptyEdge) are where control continues after the functional
// evaluator succeeds.
func (b *Builder) AddFunctional(kind StateKind, payload any) StateID {
	id := StateID(len(b.states))
	b.states = append(b.states, State{id: id, kind: kind, ranges: make([][]StateID, b.numRanges()), payload: payload})
	return id
}

// AddRangeEdge adds a character-consuming edge from `from` to `to` under
// range label. label must not be 0 (reserved).
func (b *Builder) AddRangeEdge(from StateID, label int, to StateID) {
	s := &b.states[from]
	if label <= 0 || label >= len(s.ranges) {
		return
	}
	s.ranges[label] = appendUnique(s.ranges[label], to)
}

// AddEmptyEdge adds an empty (non-consuming) transition from `from` to
// `to`, deduplicating repeats.
func (b *Builder) AddEmptyEdge(from, to StateID) {
	s := &b.states[from]
	s.empty = appendUnique(s.empty, to)
}

func appendUnique(list []StateID, id StateID) []StateID {
	for _, existing := range list {
		if existing == id {
			return list
		}
	}
	return append(list, id)
}

// Build finalizes the automaton with the given start/accept states.
// traceSize and names describe the *whole pattern's* capture groups
// (shared across nested automata, spec §9) and are typically filled in
// by a later pass once the entire tree, including nested groups, has
// been compiled (see SetTraceInfo).
func (b *Builder) Build(start, accept StateID) *Automaton {
	return &Automaton{
		states:    b.states,
		start:     start,
		accept:    accept,
		partition: b.partition,
	}
}

// SetTraceInfo propagates the pattern-wide capture count and names onto
// a (possibly nested) automaton and, recursively, onto every nested
// automaton reachable through its Group/lookaround functional states.
func SetTraceInfo(a *Automaton, traceSize int, names []string) {
	if a == nil {
		return
	}
	a.traceSize = traceSize
	a.captureNames = names
	for i := range a.states {
		switch p := a.states[i].payload.(type) {
		case *groupPayload:
			SetTraceInfo(p.automaton, traceSize, names)
		case *assertionPayload:
			if p.nested != nil {
				SetTraceInfo(p.nested, traceSize, names)
			}
		}
	}
}
