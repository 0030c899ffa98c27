package nfa

import "fmt"

// StateID uniquely identifies a state within one automaton's state
// array. Per spec §9 ("Global state id counter"), each Builder owns its
// own monotonic counter — ids are never shared across automata, so a
// nested automaton (owned by a GROUP/ASSERTION functional state) has an
// entirely independent id space from its parent.
type StateID uint32

// InvalidState marks an unset StateID.
const InvalidState StateID = 0xFFFFFFFF

// StateKind distinguishes ordinary states from the four functional
// categories (spec §3).
type StateKind uint8

const (
	// KindCommon is an ordinary state: it may carry range-edges and
	// empty-edges but consults no external evaluator.
	KindCommon StateKind = iota
	// KindAssertion holds an assertion evaluator (line/word boundary
	// or lookaround).
	KindAssertion
	// KindGroup holds a nested automaton for a capturing group.
	KindGroup
	// KindClass holds a "[...]" matcher.
	KindClass
	// KindEscape holds a "\x"-style atom matcher, including '.' and
	// back-references.
	KindEscape
)

func (k StateKind) String() string {
	switch k {
	case KindCommon:
		return "Common"
	case KindAssertion:
		return "Assertion"
	case KindGroup:
		return "Group"
	case KindClass:
		return "Class"
	case KindEscape:
		return "Escape"
	default:
		return "Unknown"
	}
}

// State is one node of the automaton.
//
// ranges holds range-consuming edges, indexed by partition label; index
// 0 is never populated (spec invariant: range 0 never matches a
// character) and exists only so label indices line up 1:1 with
// alphabet.Partition's labels. empty holds the state's empty-transition
// successors, kept in a field separate from ranges specifically so a
// character-consuming Step can never mistake an empty-edge target for a
// range-edge target when an input character happens to fall in the
// reserved range 0 (see alphabet.Partition doc).
type State struct {
	id     StateID
	kind   StateKind
	ranges [][]StateID
	empty  []StateID

	payload any // nil for KindCommon; else *assertionPayload / *groupPayload / *classMatcher / *escapeMatcher
}

// ID returns the state's identifier.
func (s *State) ID() StateID { return s.id }

// Kind returns the state's category.
func (s *State) Kind() StateKind { return s.kind }

// Empty returns the state's empty-transition successors.
func (s *State) Empty() []StateID { return s.empty }

// RangeSuccessors returns the successors for range label, or nil if
// label is 0 or out of bounds.
func (s *State) RangeSuccessors(label int) []StateID {
	if label <= 0 || label >= len(s.ranges) {
		return nil
	}
	return s.ranges[label]
}

func (s *State) String() string {
	return fmt.Sprintf("State(%d, %s)", s.id, s.kind)
}
