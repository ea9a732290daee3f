// Package parse provides the table-driven LL(1) pushdown parser runtime: a
// recognizer that answers yes/no, and a variant that builds the concrete
// syntax tree of an accepted input.
//
// The parsing state is a stack of grammar variables and tokens, seeded with
// the start variable. A token at the top of the stack must match the next
// input token; a variable at the top is replaced by the body the LL(1) table
// selects for it under one token of lookahead. Input is accepted when the
// stack and the input run out together.
package parse

import (
	"github.com/dekarrin/chef/grammar"
	"github.com/dekarrin/chef/internal/util"
)

// LL1Parser is a predictive parser for an LL(1) grammar.
type LL1Parser struct {
	table grammar.LL1Table
	g     grammar.Cfg
}

// NewLL1Parser creates a parser for LL(1) grammar g. The grammar must
// already be LL(1); if its parse table cannot be built, the table
// construction error is returned.
func NewLL1Parser(g grammar.Cfg) (LL1Parser, error) {
	M, err := g.LLParseTable()
	if err != nil {
		return LL1Parser{}, err
	}
	return LL1Parser{table: M, g: g.Copy()}, nil
}

// Table returns the parser's LL(1) table.
func (ll1 LL1Parser) Table() grammar.LL1Table {
	return ll1.table
}

// lookahead gives the token to consult the table with: the next input token,
// or EOF once the stream has run out.
func (ll1 LL1Parser) lookahead(stream TokenStream) grammar.Token {
	if !stream.HasNext() {
		return grammar.EOF
	}
	return stream.Peek()
}

// Recognize reports whether the token stream is a sentence of the parser's
// grammar. Failure to parse is an answer, not an error.
func (ll1 LL1Parser) Recognize(stream TokenStream) bool {
	stack := util.Stack[grammar.Element]{Of: []grammar.Element{ll1.g.Start()}}

	for stack.Len() > 0 {
		switch X := stack.Peek().(type) {
		case grammar.Token:
			if !stream.HasNext() || stream.Peek() != X {
				return false
			}
			stream.Next()
			stack.Pop()

		case grammar.Var:
			entry, ok := ll1.table.Get(X, ll1.lookahead(stream))
			if !ok {
				return false
			}

			// replace the variable with its body, reversed so the body's
			// first element ends up on top; the lookahead is not consumed
			stack.Pop()
			pushBodyReversed(&stack, entry.Seq)
		}
	}

	return !stream.HasNext()
}

// Parse parses the token stream and builds its concrete syntax tree. The
// second return value is whether the input was accepted; if it is false,
// there is no tree.
func (ll1 LL1Parser) Parse(stream TokenStream) (Tree, bool) {
	// the control stack mirrors Recognize's, plus an end marker (nil
	// element) under each expanded body that closes out the variable's CST
	// node when every body element has been handled
	type frame struct {
		elem grammar.Element
	}

	stack := util.Stack[frame]{Of: []frame{{elem: ll1.g.Start()}}}

	// holder is a pseudo-root that ends up with the real root as its only
	// child
	holder := &Tree{}
	nodes := util.Stack[*Tree]{Of: []*Tree{holder}}

	for stack.Len() > 0 {
		f := stack.Pop()

		if f.elem == nil {
			// end marker: the node on top is complete, hand it to its parent
			done := nodes.Pop()
			parent := nodes.Peek()
			parent.Children = append(parent.Children, done)
			continue
		}

		switch X := f.elem.(type) {
		case grammar.Token:
			if !stream.HasNext() || stream.Peek() != X {
				return Tree{}, false
			}
			tok := stream.Next()

			cur := nodes.Peek()
			cur.Children = append(cur.Children, &Tree{Terminal: true, Token: tok})

		case grammar.Var:
			entry, ok := ll1.table.Get(X, ll1.lookahead(stream))
			if !ok {
				return Tree{}, false
			}

			stack.Push(frame{})
			for i := len(entry.Seq) - 1; i >= 0; i-- {
				if tok, isTok := entry.Seq[i].(grammar.Token); isTok && tok == grammar.Epsilon {
					continue
				}
				stack.Push(frame{elem: entry.Seq[i]})
			}

			nodes.Push(&Tree{Var: X, Alt: entry.Alt})
		}
	}

	if stream.HasNext() {
		return Tree{}, false
	}

	return *holder.Children[0], true
}

func pushBodyReversed(stack *util.Stack[grammar.Element], body grammar.Seq) {
	for i := len(body) - 1; i >= 0; i-- {
		if tok, isTok := body[i].(grammar.Token); isTok && tok == grammar.Epsilon {
			// ε contributes nothing to match
			continue
		}
		stack.Push(body[i])
	}
}
