// Package laurex implements a regular expression engine: a tokenizer,
// a shunting-yard parser, a rune-range alphabet partitioner, and a
// Thompson-style automaton with functional states, simulated by a
// parallel configuration-set walk that reports the longest match at
// each position, including capture groups, back-references, and
// lookaround assertions.
//
// Basic usage:
//
//	re, err := laurex.Compile(`\d+`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	println(re.FindString("age: 42")) // "42"
//
// Advanced usage:
//
//	config := laurex.DefaultConfig()
//	config.MaxConfigs = 100000
//	re, err := laurex.CompileWithConfig(`(a|b|c)*`, config)
package laurex

import (
	"unicode/utf8"

	"github.com/laurex-re/laurex/nfa"
	"github.com/laurex-re/laurex/parser"
	"github.com/laurex-re/laurex/prefilter"
)

// Regex represents a compiled regular expression. A Regex is safe to
// use concurrently from multiple goroutines.
type Regex struct {
	pattern string
	auto    *nfa.Automaton
	config  Config
	pf      *prefilter.Filter
}

// Regexp is an alias for Regex, for drop-in familiarity with stdlib
// regexp.
type Regexp = Regex

// Compile compiles pattern with DefaultConfig.
//
// A structurally malformed pattern never returns an error here: it
// compiles to a Regex that matches nothing (spec §7). Use
// CompileWithConfig with Config.Strict to get a descriptive error
// instead. The one error plain Compile does return is *QuantifierError,
// for a malformed quantifier like "{3,1}".
func Compile(pattern string) (*Regex, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile compiles pattern and panics if it returns an error.
func MustCompile(pattern string) *Regex {
	re, err := Compile(pattern)
	if err != nil {
		panic("laurex: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern with a custom Config.
func CompileWithConfig(pattern string, config Config) (*Regex, error) {
	auto, err := nfa.CompileWithMax(pattern, config.MaxCodePoint)
	if err != nil {
		return nil, err
	}
	if config.Strict && auto.Empty() && pattern != "" {
		return nil, diagnose(pattern)
	}
	r := &Regex{pattern: pattern, auto: auto, config: config}
	if config.EnablePrefilter {
		if root, perr := parser.Parse(pattern); perr == nil && root != nil {
			if literals, ok := prefilter.ExtractLiterals(root); ok {
				if pf, _ := prefilter.Build(literals); pf != nil {
					r.pf = pf
				}
			}
		}
	}
	return r, nil
}

// String returns the source text the Regex was compiled from.
func (r *Regex) String() string { return r.pattern }

// NumSubexp returns the number of capture groups in the pattern (group
// 0, the whole match, is not counted).
func (r *Regex) NumSubexp() int { return r.auto.CaptureCount() }

// SubexpNames returns the capture group names; names[0] is always "".
func (r *Regex) SubexpNames() []string { return r.auto.SubexpNames() }

func (r *Regex) simulator(input []rune) *nfa.Simulator {
	return nfa.NewSimulator(input, r.config.limits())
}

// Span is a [Start, End) match location.
type Span struct {
	Start, End int
}

// MatchResult is one successful match: the overall span plus one span
// per capture group (index i-1 is group i; a zero Span with ok=false
// marks a group that did not participate).
type MatchResult struct {
	Span   Span
	Groups []GroupMatch
}

// GroupMatch is one capture group's result within a MatchResult.
type GroupMatch struct {
	Span Span
	Ok   bool
}

// findFrom runs a leftmost-longest search over runes starting no
// earlier than from, returning the match and its capture spans. It
// gives up (reporting no match) once the Simulator's configuration
// budget (Config.MaxConfigs) is exhausted, rather than risk a
// pathological pattern running unbounded.
//
// If a literal prefilter is available, it is consulted to skip
// straight to the next rune position that could possibly begin a
// match instead of probing every position in turn.
func (r *Regex) findFrom(runes []rune, from int) (MatchResult, bool) {
	if r.auto.Empty() {
		return MatchResult{}, false
	}
	sim := r.simulator(runes)
	starts := r.candidateStarts(runes, from)
	for {
		start, more := starts()
		if !more {
			return MatchResult{}, false
		}
		end, tr, ok := sim.NextMatch(r.auto, start)
		if sim.Err() != nil {
			return MatchResult{}, false
		}
		if !ok {
			continue
		}
		groups := buildGroups(tr, r.auto.CaptureCount())
		return MatchResult{Span: Span{Start: start, End: end}, Groups: groups}, true
	}
}

// capTrace is the shape a completed simulation's capture trace needs
// to expose for buildGroups to read group spans back out of it. It is
// satisfied structurally by nfa's unexported trace type (returned from
// NextMatch/MatchTrace) without this package needing to name that type.
type capTrace interface {
	Get(group int) (nfa.Span, bool)
}

// buildGroups extracts n capture groups (1-based) from tr into the
// []GroupMatch shape MatchResult carries, shared by findFrom/Search and
// MatchExact so both core contracts (spec §6) report groups identically.
func buildGroups(tr capTrace, n int) []GroupMatch {
	groups := make([]GroupMatch, n)
	for i := range groups {
		if sp, set := tr.Get(i + 1); set {
			groups[i] = GroupMatch{Span: Span{Start: sp.Start, End: sp.End}, Ok: true}
		}
	}
	return groups
}

// MatchExact implements spec.md §6's core "Match" contract: success
// iff some simulation starting at s's first rune reaches the accept
// state at exactly len(s) — the whole input must be consumed, not just
// some prefix of it. This is distinct from the stdlib-shaped
// Match([]byte) bool below, which performs a Search (a match
// anywhere in the input), matching Go's regexp.Regexp.Match naming
// convention instead of this spec's.
func (r *Regex) MatchExact(s []rune) (MatchResult, bool) {
	if r.auto.Empty() {
		return MatchResult{}, false
	}
	sim := r.simulator(s)
	tr, ok := sim.MatchTrace(r.auto, 0, len(s))
	if !ok {
		return MatchResult{}, false
	}
	groups := buildGroups(tr, r.auto.CaptureCount())
	return MatchResult{Span: Span{Start: 0, End: len(s)}, Groups: groups}, true
}

// Search implements spec.md §6's core "Search" contract: try NextMatch
// at every starting position left to right and report the first
// success. It is the rune-based exposure of the same leftmost search
// findFrom performs internally for the stdlib-shaped Find* wrappers.
func (r *Regex) Search(s []rune) (MatchResult, bool) {
	return r.findFrom(s, 0)
}

// candidateStarts returns an iterator over the rune positions in runes
// (from `from` up to and including len(runes)) that findFrom should
// try, in order. With no prefilter this is every position in turn;
// with one, it is only the positions the Aho-Corasick automaton
// reports as the start of one of the extracted literals.
func (r *Regex) candidateStarts(runes []rune, from int) func() (int, bool) {
	if r.pf == nil {
		pos := from
		return func() (int, bool) {
			if pos > len(runes) {
				return 0, false
			}
			p := pos
			pos++
			return p, true
		}
	}
	offsets := runeByteOffsets(runes)
	haystack := []byte(string(runes))
	byteFrom := offsets[from]
	return func() (int, bool) {
		cand, ok := r.pf.NextCandidate(haystack, byteFrom)
		if !ok {
			return 0, false
		}
		byteFrom = cand + 1
		return byteOffsetToRuneOffset(offsets, cand), true
	}
}

// runeByteOffsets returns, for each rune index i in 0..len(runes], the
// byte offset of that rune within the UTF-8 encoding of runes.
func runeByteOffsets(runes []rune) []int {
	offsets := make([]int, len(runes)+1)
	off := 0
	for i, rn := range runes {
		offsets[i] = off
		off += utf8.RuneLen(rn)
	}
	offsets[len(runes)] = off
	return offsets
}

// byteOffsetToRuneOffset maps a byte offset (as reported by the
// prefilter, which works over UTF-8 bytes) back to the rune index it
// falls on, via binary search over the monotonic offsets table.
func byteOffsetToRuneOffset(offsets []int, byteOffset int) int {
	lo, hi := 0, len(offsets)-1
	for lo < hi {
		mid := (lo + hi) / 2
		if offsets[mid] < byteOffset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

// MatchString reports whether s contains any match of the pattern.
func (r *Regex) MatchString(s string) bool {
	if r.pf != nil {
		return r.pf.IsMatch([]byte(s))
	}
	_, ok := r.findFrom([]rune(s), 0)
	return ok
}

// Match reports whether b contains any match of the pattern.
func (r *Regex) Match(b []byte) bool { return r.MatchString(string(b)) }

// FindString returns the text of the leftmost match in s, or "" if
// there is none.
func (r *Regex) FindString(s string) string {
	runes := []rune(s)
	m, ok := r.findFrom(runes, 0)
	if !ok {
		return ""
	}
	return string(runes[m.Span.Start:m.Span.End])
}

// Find returns the bytes of the leftmost match in b, or nil if there
// is none.
func (r *Regex) Find(b []byte) []byte {
	runes := []rune(string(b))
	m, ok := r.findFrom(runes, 0)
	if !ok {
		return nil
	}
	byteStart := runeOffsetToByteOffset(b, runes, m.Span.Start)
	byteEnd := runeOffsetToByteOffset(b, runes, m.Span.End)
	return b[byteStart:byteEnd]
}

// runeOffsetToByteOffset converts a rune index into runes (decoded from
// b) back into the matching byte offset into b.
func runeOffsetToByteOffset(b []byte, runes []rune, runeOffset int) int {
	off := 0
	for i := 0; i < runeOffset; i++ {
		off += utf8.RuneLen(runes[i])
	}
	return off
}

// FindIndex returns the [start, end) byte offsets of the leftmost
// match in b, or nil if there is none.
func (r *Regex) FindIndex(b []byte) []int {
	runes := []rune(string(b))
	m, ok := r.findFrom(runes, 0)
	if !ok {
		return nil
	}
	return []int{
		runeOffsetToByteOffset(b, runes, m.Span.Start),
		runeOffsetToByteOffset(b, runes, m.Span.End),
	}
}

// FindStringIndex returns the [start, end) rune offsets of the
// leftmost match in s, or nil if there is none.
func (r *Regex) FindStringIndex(s string) []int {
	m, ok := r.findFrom([]rune(s), 0)
	if !ok {
		return nil
	}
	return []int{m.Span.Start, m.Span.End}
}

// FindStringSubmatch returns the leftmost match and its capture
// groups: result[0] is the whole match, result[i] the ith group.
// Unmatched groups are "". A nil result means no match.
func (r *Regex) FindStringSubmatch(s string) []string {
	runes := []rune(s)
	m, ok := r.findFrom(runes, 0)
	if !ok {
		return nil
	}
	out := make([]string, len(m.Groups)+1)
	out[0] = string(runes[m.Span.Start:m.Span.End])
	for i, g := range m.Groups {
		if g.Ok {
			out[i+1] = string(runes[g.Span.Start:g.Span.End])
		}
	}
	return out
}

// FindSubmatch returns the leftmost match in b and its capture groups
// as byte slices, or nil if there is no match.
func (r *Regex) FindSubmatch(b []byte) [][]byte {
	idx := r.FindSubmatchIndex(b)
	if idx == nil {
		return nil
	}
	out := make([][]byte, len(idx)/2)
	for i := range out {
		if idx[2*i] < 0 {
			continue
		}
		out[i] = b[idx[2*i]:idx[2*i+1]]
	}
	return out
}

// FindSubmatchIndex is FindSubmatch but returns byte offsets:
// result[2*i:2*i+2] is group i's [start,end), or [-1,-1] if that
// group did not participate.
func (r *Regex) FindSubmatchIndex(b []byte) []int {
	runes := []rune(string(b))
	m, ok := r.findFrom(runes, 0)
	if !ok {
		return nil
	}
	out := make([]int, (len(m.Groups)+1)*2)
	out[0] = runeOffsetToByteOffset(b, runes, m.Span.Start)
	out[1] = runeOffsetToByteOffset(b, runes, m.Span.End)
	for i, g := range m.Groups {
		if g.Ok {
			out[(i+1)*2] = runeOffsetToByteOffset(b, runes, g.Span.Start)
			out[(i+1)*2+1] = runeOffsetToByteOffset(b, runes, g.Span.End)
		} else {
			out[(i+1)*2], out[(i+1)*2+1] = -1, -1
		}
	}
	return out
}

// FindStringSubmatchIndex is FindStringSubmatch but returns rune
// offsets: result[2*i:2*i+2] is group i's [start,end), or [-1,-1] if
// that group did not participate.
func (r *Regex) FindStringSubmatchIndex(s string) []int {
	m, ok := r.findFrom([]rune(s), 0)
	if !ok {
		return nil
	}
	out := make([]int, (len(m.Groups)+1)*2)
	out[0], out[1] = m.Span.Start, m.Span.End
	for i, g := range m.Groups {
		if g.Ok {
			out[(i+1)*2], out[(i+1)*2+1] = g.Span.Start, g.Span.End
		} else {
			out[(i+1)*2], out[(i+1)*2+1] = -1, -1
		}
	}
	return out
}

// FindAllString returns every non-overlapping successive match in s.
// If n >= 0, at most n matches are returned; n < 0 means unlimited.
func (r *Regex) FindAllString(s string, n int) []string {
	runes := []rune(s)
	matches := r.allMatches(runes, n)
	if matches == nil {
		return nil
	}
	out := make([]string, len(matches))
	for i, m := range matches {
		out[i] = string(runes[m.Span.Start:m.Span.End])
	}
	return out
}

// FindAllStringIndex is FindAllString but returns [start, end) index
// pairs instead of substrings.
func (r *Regex) FindAllStringIndex(s string, n int) [][]int {
	runes := []rune(s)
	matches := r.allMatches(runes, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = []int{m.Span.Start, m.Span.End}
	}
	return out
}

// allMatches runs the non-overlapping successive-match loop shared by
// every FindAll* variant, returning up to n matches (n < 0: unlimited).
func (r *Regex) allMatches(runes []rune, n int) []MatchResult {
	if n == 0 {
		return nil
	}
	var out []MatchResult
	pos := 0
	for pos <= len(runes) {
		m, ok := r.findFrom(runes, pos)
		if !ok {
			break
		}
		out = append(out, m)
		if m.Span.End > pos {
			pos = m.Span.End
		} else {
			pos++
		}
		if n > 0 && len(out) >= n {
			break
		}
	}
	return out
}

// FindAll is the []byte analogue of FindAllString.
func (r *Regex) FindAll(b []byte, n int) [][]byte {
	runes := []rune(string(b))
	matches := r.allMatches(runes, n)
	if matches == nil {
		return nil
	}
	out := make([][]byte, len(matches))
	for i, m := range matches {
		start := runeOffsetToByteOffset(b, runes, m.Span.Start)
		end := runeOffsetToByteOffset(b, runes, m.Span.End)
		out[i] = b[start:end]
	}
	return out
}

// FindAllIndex is the []byte analogue of FindAllStringIndex.
func (r *Regex) FindAllIndex(b []byte, n int) [][]int {
	runes := []rune(string(b))
	matches := r.allMatches(runes, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		out[i] = []int{
			runeOffsetToByteOffset(b, runes, m.Span.Start),
			runeOffsetToByteOffset(b, runes, m.Span.End),
		}
	}
	return out
}

// FindAllStringSubmatch is FindAllString with each match's capture
// groups included, in FindStringSubmatch's layout.
func (r *Regex) FindAllStringSubmatch(s string, n int) [][]string {
	runes := []rune(s)
	matches := r.allMatches(runes, n)
	if matches == nil {
		return nil
	}
	out := make([][]string, len(matches))
	for i, m := range matches {
		row := make([]string, len(m.Groups)+1)
		row[0] = string(runes[m.Span.Start:m.Span.End])
		for j, g := range m.Groups {
			if g.Ok {
				row[j+1] = string(runes[g.Span.Start:g.Span.End])
			}
		}
		out[i] = row
	}
	return out
}

// FindAllSubmatch is the []byte analogue of FindAllStringSubmatch.
func (r *Regex) FindAllSubmatch(b []byte, n int) [][][]byte {
	runes := []rune(string(b))
	matches := r.allMatches(runes, n)
	if matches == nil {
		return nil
	}
	out := make([][][]byte, len(matches))
	for i, m := range matches {
		row := make([][]byte, len(m.Groups)+1)
		row[0] = b[runeOffsetToByteOffset(b, runes, m.Span.Start):runeOffsetToByteOffset(b, runes, m.Span.End)]
		for j, g := range m.Groups {
			if g.Ok {
				row[j+1] = b[runeOffsetToByteOffset(b, runes, g.Span.Start):runeOffsetToByteOffset(b, runes, g.Span.End)]
			}
		}
		out[i] = row
	}
	return out
}

// FindAllStringSubmatchIndex is FindAllStringSubmatch but returns rune
// offset pairs in FindStringSubmatchIndex's layout.
func (r *Regex) FindAllStringSubmatchIndex(s string, n int) [][]int {
	runes := []rune(s)
	matches := r.allMatches(runes, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		row := make([]int, (len(m.Groups)+1)*2)
		row[0], row[1] = m.Span.Start, m.Span.End
		for j, g := range m.Groups {
			if g.Ok {
				row[(j+1)*2], row[(j+1)*2+1] = g.Span.Start, g.Span.End
			} else {
				row[(j+1)*2], row[(j+1)*2+1] = -1, -1
			}
		}
		out[i] = row
	}
	return out
}

// FindAllSubmatchIndex is the []byte analogue of
// FindAllStringSubmatchIndex, returning byte offset pairs.
func (r *Regex) FindAllSubmatchIndex(b []byte, n int) [][]int {
	runes := []rune(string(b))
	matches := r.allMatches(runes, n)
	if matches == nil {
		return nil
	}
	out := make([][]int, len(matches))
	for i, m := range matches {
		row := make([]int, (len(m.Groups)+1)*2)
		row[0] = runeOffsetToByteOffset(b, runes, m.Span.Start)
		row[1] = runeOffsetToByteOffset(b, runes, m.Span.End)
		for j, g := range m.Groups {
			if g.Ok {
				row[(j+1)*2] = runeOffsetToByteOffset(b, runes, g.Span.Start)
				row[(j+1)*2+1] = runeOffsetToByteOffset(b, runes, g.Span.End)
			} else {
				row[(j+1)*2], row[(j+1)*2+1] = -1, -1
			}
		}
		out[i] = row
	}
	return out
}

// QuoteMeta escapes every regex metacharacter in s so that the result
// matches s literally.
func QuoteMeta(s string) string {
	const special = `\.+*?()|[]{}^$`
	n := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			n++
		}
	}
	if n == 0 {
		return s
	}
	buf := make([]byte, len(s)+n)
	j := 0
	for i := 0; i < len(s); i++ {
		if isSpecial(s[i], special) {
			buf[j] = '\\'
			j++
		}
		buf[j] = s[i]
		j++
	}
	return string(buf)
}

func isSpecial(c byte, special string) bool {
	for i := 0; i < len(special); i++ {
		if c == special[i] {
			return true
		}
	}
	return false
}
