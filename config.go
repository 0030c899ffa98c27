package laurex

import "github.com/laurex-re/laurex/nfa"

// Config tunes how a pattern is compiled and simulated, mirroring the
// teacher engine's DefaultConfig/CompileWithConfig shape.
type Config struct {
	// MaxCodePoint bounds the alphabet partition built for the
	// pattern (spec §4.5). Defaults to the full Unicode range.
	MaxCodePoint rune

	// MaxConfigs bounds the number of (state, position) configurations
	// a single search may explore before giving up, guarding against
	// pathological patterns (spec §5). Zero means unbounded.
	MaxConfigs int

	// Strict makes CompileWithConfig return one of the sentinel
	// errors in errors.go for a structurally malformed pattern,
	// instead of silently compiling it to an automaton that never
	// matches (spec §7's default, lenient behavior).
	Strict bool

	// EnablePrefilter builds an Aho-Corasick literal filter for
	// patterns that are nothing but a literal alternation (e.g.
	// "foo|bar|baz"), letting search skip starting positions that
	// cannot possibly begin a match. Disabling it never changes what
	// a match reports, only how many positions the simulator runs at.
	EnablePrefilter bool
}

// DefaultConfig returns the default compilation configuration: the
// full Unicode alphabet, no configuration limit, lenient (non-Strict)
// handling of malformed patterns, and the literal prefilter enabled.
func DefaultConfig() Config {
	return Config{MaxCodePoint: nfa.MaxCodePoint, EnablePrefilter: true}
}

func (c Config) limits() nfa.Limits {
	return nfa.Limits{MaxConfigs: c.MaxConfigs}
}
