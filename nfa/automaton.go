package nfa

import "github.com/laurex-re/laurex/alphabet"

// Automaton is a compiled, immutable regex automaton: a graph of States
// plus the range partition used to label its edges. Values are safe for
// concurrent use by multiple Simulators (spec §5).
type Automaton struct {
	states    []State
	start     StateID
	accept    StateID
	partition *alphabet.Partition

	// empty is true for the degenerate automaton produced by a
	// tokenizer/parser fault (spec §7): it never matches anything.
	empty bool

	// traceSize is the total number of capture groups across the
	// *entire* top-level pattern, shared by every nested automaton so
	// that a single capture trace can be threaded through group and
	// lookaround simulations without resizing (spec §9,
	// "capture-trace fanout").
	traceSize int

	captureNames []string // index i-1 is the name of group i; "" if unnamed
}

// Start returns the automaton's start state.
func (a *Automaton) Start() StateID { return a.start }

// Accept returns the automaton's accept state. The accept state is
// always KindCommon (spec invariant).
func (a *Automaton) Accept() StateID { return a.accept }

// State returns the state with the given id, or nil if id is invalid.
func (a *Automaton) State(id StateID) *State {
	if id == InvalidState || int(id) >= len(a.states) {
		return nil
	}
	return &a.states[id]
}

// NumStates returns the number of states in the automaton, the domain
// size a Simulator's per-position sparse.SparseSet needs (spec §9).
func (a *Automaton) NumStates() int { return len(a.states) }

// Empty reports whether this automaton was compiled from a malformed or
// empty pattern and therefore never matches (spec §6, §7).
func (a *Automaton) Empty() bool { return a.empty }

// Partition returns the range partition used to label this automaton's
// edges.
func (a *Automaton) Partition() *alphabet.Partition { return a.partition }

// CaptureCount returns the number of capture groups in the whole
// pattern (group 0, the entire match, is not counted here).
func (a *Automaton) CaptureCount() int { return a.traceSize }

// SubexpNames returns the capture group names, index 0 is always "".
func (a *Automaton) SubexpNames() []string {
	out := make([]string, a.traceSize+1)
	copy(out[1:], a.captureNames)
	return out
}

func emptyAutomaton() *Automaton {
	return &Automaton{empty: true}
}
