package nfa

// Span is a half-open position pair [Start, End) into the input,
// tagged implicitly by its slot in a trace (spec §3, "Sub-match").
type Span struct {
	Start, End int
}

// trace is a simulator configuration's capture trace: an ordered
// sequence of sub-match spans, one slot per capture group in the whole
// pattern. It uses copy-on-write sharing, grounded on the teacher's
// cowCaptures/sharedCaptures pattern (nfa/pikevm.go): configurations
// produced by a pure epsilon split share the same backing array until
// one of them actually records a capture, at which point only that one
// copies (spec §9, "capture-trace fanout").
type trace struct {
	shared *sharedSpans
}

type sharedSpans struct {
	spans []Span
	set   []bool
	refs  int
}

// newTrace creates a trace with n unset capture slots.
func newTrace(n int) trace {
	if n == 0 {
		return trace{}
	}
	return trace{shared: &sharedSpans{spans: make([]Span, n), set: make([]bool, n), refs: 1}}
}

// clone returns a reference sharing the same backing storage.
func (t trace) clone() trace {
	if t.shared == nil {
		return t
	}
	t.shared.refs++
	return t
}

// with returns a trace identical to t except that capture group `group`
// (1-based) is set to span. Copies the backing array only if it is
// currently shared by more than one configuration.
func (t trace) with(group int, span Span) trace {
	if t.shared == nil || group < 1 || group > len(t.shared.spans) {
		return t
	}
	idx := group - 1
	if t.shared.refs > 1 {
		spans := make([]Span, len(t.shared.spans))
		set := make([]bool, len(t.shared.set))
		copy(spans, t.shared.spans)
		copy(set, t.shared.set)
		t.shared.refs--
		spans[idx], set[idx] = span, true
		return trace{shared: &sharedSpans{spans: spans, set: set, refs: 1}}
	}
	t.shared.spans[idx] = span
	t.shared.set[idx] = true
	return t
}

// get returns the most recent sub-match recorded for group (1-based)
// and whether it has been set at all (spec §4.8, back-reference lookup:
// "if the referenced group has not captured yet, the match fails").
func (t trace) get(group int) (Span, bool) {
	if t.shared == nil || group < 1 || group > len(t.shared.spans) {
		return Span{}, false
	}
	idx := group - 1
	return t.shared.spans[idx], t.shared.set[idx]
}

// Get returns the most recent sub-match recorded for group (1-based)
// and whether it has been set at all. Exported so a Simulator caller
// holding the trace value NextMatch/AllAccepting returned (inferred via
// :=, since trace itself is unexported) can read captures back out.
func (t trace) Get(group int) (Span, bool) { return t.get(group) }
