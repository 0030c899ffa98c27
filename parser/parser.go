package parser

import (
	"errors"

	"github.com/laurex-re/laurex/token"
)

// ErrUnderflow is returned (wrapped) when a binding operation finds
// fewer operands on the rpn stack than its operator needs — a
// malformed expression such as a leading '|' or '*'.
var ErrUnderflow = errors.New("parser: operator stack underflow")

// ErrMalformed is returned for a lexeme the classifier tagged
// CategoryError, e.g. "(?" followed by an unrecognized sigil.
var ErrMalformed = errors.New("parser: malformed construct")

// ErrTrailingOperators is returned when more than one subtree remains
// on the rpn stack after draining all operators.
var ErrTrailingOperators = errors.New("parser: incomplete expression")

// Parse tokenizes and parses a regex source string into an AST.
//
// An empty pattern returns a nil Node with a nil error: "" does not
// parse to a tree that matches the empty string, so that the caller
// compiles it to an empty automaton. A non-nil error is only ever returned for
// structural tokenizer/parser faults; callers degrade those to an
// empty (never matching) automaton rather than surfacing them (spec
// §7), so Parse's error return exists mainly for tests and for the
// caller to distinguish "malformed" from "legitimately nil".
func Parse(src string) (*Node, error) {
	cur := token.NewCursor(src)
	var toks [][]rune
	for !cur.AtEnd() {
		tok := cur.Next()
		if len(tok) == 0 {
			return nil, ErrMalformed
		}
		toks = append(toks, tok)
	}
	if len(toks) == 0 {
		return nil, nil
	}
	return ParseTokens(toks)
}

// op represents an operator awaiting operands: ALTERNATION and CONCAT
// bind two rpn operands, QUANTIFIER binds one.
type op struct {
	category token.Category
	text     []rune
}

// ParseTokens runs the shunting-yard procedure over an already
// tokenized lexeme sequence.
func ParseTokens(toks [][]rune) (*Node, error) {
	var ops []op
	var rpn []*Node
	orFlag := true

	bindTop := func() error {
		top := ops[len(ops)-1]
		ops = ops[:len(ops)-1]
		switch top.category {
		case token.CategoryConcat, token.CategoryAlternation:
			if len(rpn) < 2 {
				return ErrUnderflow
			}
			right := rpn[len(rpn)-1]
			left := rpn[len(rpn)-2]
			rpn = rpn[:len(rpn)-2]
			rpn = append(rpn, &Node{Category: top.category, Left: left, Right: right})
		default: // QUANTIFIER
			if len(rpn) < 1 {
				return ErrUnderflow
			}
			child := rpn[len(rpn)-1]
			rpn = rpn[:len(rpn)-1]
			rpn = append(rpn, &Node{Category: token.CategoryQuantifier, Text: top.text, Left: child})
		}
		return nil
	}

	pushOr := func() error {
		for len(ops) > 0 {
			if err := bindTop(); err != nil {
				return err
			}
		}
		return nil
	}
	pushAnd := func() error {
		for len(ops) > 0 && ops[len(ops)-1].category != token.CategoryAlternation {
			if err := bindTop(); err != nil {
				return err
			}
		}
		return nil
	}
	pushQuantifier := func() error {
		for len(ops) > 0 {
			t := ops[len(ops)-1].category
			if t == token.CategoryConcat || t == token.CategoryAlternation {
				break
			}
			if err := bindTop(); err != nil {
				return err
			}
		}
		return nil
	}

	for _, tok := range toks {
		cat := token.Classify(tok)
		switch cat {
		case token.CategoryError:
			return nil, ErrMalformed
		case token.CategoryAlternation:
			if err := pushOr(); err != nil {
				return nil, err
			}
			ops = append(ops, op{category: token.CategoryAlternation})
			orFlag = true
		case token.CategoryQuantifier:
			if err := pushQuantifier(); err != nil {
				return nil, err
			}
			ops = append(ops, op{category: token.CategoryQuantifier, text: tok})
			orFlag = false
		case token.CategoryChar, token.CategoryGroup, token.CategoryAssertion:
			if !orFlag {
				if err := pushAnd(); err != nil {
					return nil, err
				}
				ops = append(ops, op{category: token.CategoryConcat})
			}
			node, err := buildAtom(cat, tok)
			if err != nil {
				return nil, err
			}
			if node == nil {
				// A non-capturing group splices its parsed
				// subtree directly in place of a leaf, so it
				// must still land on rpn; buildAtom handles
				// that by returning the spliced node itself,
				// never nil for a well-formed token. nil here
				// means the inner pattern was empty/malformed.
				return nil, ErrMalformed
			}
			rpn = append(rpn, node)
			orFlag = false
		}
	}

	if err := pushOr(); err != nil {
		return nil, err
	}
	if len(rpn) != 1 {
		return nil, ErrTrailingOperators
	}
	return rpn[0], nil
}

// buildAtom turns a single CHAR/GROUP/ASSERTION token into the subtree
// it contributes to the parent expression.
func buildAtom(cat token.Category, tok []rune) (*Node, error) {
	switch cat {
	case token.CategoryChar:
		return leaf(token.CategoryChar, tok), nil
	case token.CategoryAssertion:
		body := token.AssertionBody(tok)
		if body == nil {
			// "^", "$", "\b", "\B": zero-width, no subtree.
			return leaf(token.CategoryAssertion, tok), nil
		}
		var child *Node
		if len(body) > 0 {
			var err error
			child, err = Parse(string(body))
			if err != nil {
				return nil, err
			}
		}
		return &Node{Category: token.CategoryAssertion, Text: tok, Left: child, Source: string(body)}, nil
	case token.CategoryGroup:
		inner := token.GroupInner(tok)
		if token.IsNonCapturingGroup(tok) {
			if len(inner) == 0 {
				// "(?:)" matches empty; represent as a CHAR
				// leaf with empty text, which the automaton
				// builder turns into a start==accept state.
				return leaf(token.CategoryChar, nil), nil
			}
			return Parse(string(inner))
		}
		var body *Node
		if len(inner) == 0 {
			body = leaf(token.CategoryChar, nil)
		} else {
			var err error
			body, err = Parse(string(inner))
			if err != nil {
				return nil, err
			}
		}
		return &Node{Category: token.CategoryGroup, Name: token.GroupName(tok), Left: body, Source: string(inner)}, nil
	default:
		return nil, ErrMalformed
	}
}
