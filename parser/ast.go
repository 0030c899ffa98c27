// Package parser turns a token stream into a binary abstract syntax
// tree via an operator-precedence shunting procedure that inserts
// implicit concatenation (spec §4.4).
package parser

import "github.com/laurex-re/laurex/token"

// Node is a binary AST node. CONCAT and ALTERNATION use both children,
// QUANTIFIER and GROUP use only Left (the quantified sub-expression, or
// the group's body), and CHAR/ASSERTION are leaves.
//
// Text carries the node's raw lexeme: the atom source for CHAR, and the
// full sigil-bearing lexeme for ASSERTION and QUANTIFIER. GROUP carries
// no Text; its body is parsed eagerly into Left exactly once, so that a
// quantifier unrolling the same GROUP node repeatedly (spec §4.6) sees
// one already-parsed subtree rather than re-parsing raw text (which
// would otherwise hand out a fresh set of capture numbers per copy).
// Source preserves the body's raw text alongside Left for GROUP and
// lookaround ASSERTION nodes, since the automaton builder needs it to
// build that body's own range partition (spec §4.5: each nested
// automaton gets a fresh partition over just its own literals).
//
// Index is the 1-based capture group number, assigned by a single
// pre-order walk (see AssignCaptures) over the whole tree; it is
// meaningless for any Category other than GROUP.
type Node struct {
	Category token.Category
	Text     []rune
	Name     string // non-empty only for a named capture GROUP
	Source   string
	Index    int
	Left     *Node
	Right    *Node
}

func leaf(cat token.Category, text []rune) *Node {
	return &Node{Category: cat, Text: text}
}

// AssignCaptures walks root in pre-order (the same order opening
// parentheses appear in the source) and assigns each GROUP node its
// Index, starting at 1. It returns the total capture count and a
// slice of group names indexed by Index-1 ("" for a positional group).
func AssignCaptures(root *Node) (count int, names []string) {
	var walk func(n *Node)
	walk = func(n *Node) {
		if n == nil {
			return
		}
		if n.Category == token.CategoryGroup {
			count++
			n.Index = count
			names = append(names, n.Name)
		}
		walk(n.Left)
		walk(n.Right)
	}
	walk(root)
	return count, names
}
