package parse

import (
	"testing"

	"github.com/dekarrin/chef/grammar"
	"github.com/stretchr/testify/assert"
)

// S -> F | ( S + F ) ; F -> a, with a=0 (=1 )=2 +=3
func parensGrammar(t *testing.T) grammar.Cfg {
	g, err := grammar.New("S", []grammar.Rule{
		{Var: "S", Alts: []grammar.Seq{
			{grammar.Var("F")},
			{grammar.Token(1), grammar.Var("S"), grammar.Token(3), grammar.Var("F"), grammar.Token(2)},
		}},
		{Var: "F", Alts: []grammar.Seq{{grammar.Token(0)}}},
	})
	if err != nil {
		t.Fatalf("building grammar: %v", err)
	}
	return g
}

func Test_LL1Parser_Recognize(t *testing.T) {
	testCases := []struct {
		name   string
		input  []grammar.Token
		expect bool
	}{
		{
			name:   "single atom",
			input:  []grammar.Token{0},
			expect: true,
		},
		{
			name:   "parenthesized sum",
			input:  []grammar.Token{1, 0, 3, 0, 2},
			expect: true,
		},
		{
			name:   "nested parenthesized sum",
			input:  []grammar.Token{1, 1, 0, 3, 0, 2, 3, 0, 2},
			expect: true,
		},
		{
			name:   "missing close paren",
			input:  []grammar.Token{1, 0, 3, 0},
			expect: false,
		},
		{
			name:   "trailing garbage",
			input:  []grammar.Token{0, 0},
			expect: false,
		},
		{
			name:   "empty input",
			input:  []grammar.Token{},
			expect: false,
		},
		{
			name:   "lone open paren",
			input:  []grammar.Token{1},
			expect: false,
		},
	}

	g := parensGrammar(t)
	p, err := NewLL1Parser(g)
	if err != nil {
		t.Fatalf("building parser: %v", err)
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			actual := p.Recognize(NewTokenStream(tc.input...))

			assert.Equal(tc.expect, actual)
		})
	}
}

func Test_LL1Parser_Parse_buildsTheTree(t *testing.T) {
	assert := assert.New(t)

	g := parensGrammar(t)
	p, err := NewLL1Parser(g)
	if !assert.NoError(err) {
		return
	}

	input := []grammar.Token{1, 0, 3, 0, 2}
	tree, ok := p.Parse(NewTokenStream(input...))
	if !assert.True(ok) {
		return
	}

	// root is S expanded by its parenthesized alternative, with all five
	// body elements as children
	assert.False(tree.Terminal)
	assert.Equal(grammar.Var("S"), tree.Var)
	assert.Equal(1, tree.Alt)
	if !assert.Len(tree.Children, 5) {
		return
	}

	assert.True(tree.Children[0].Terminal)
	assert.Equal(grammar.Token(1), tree.Children[0].Token)

	assert.False(tree.Children[1].Terminal)
	assert.Equal(grammar.Var("S"), tree.Children[1].Var)
	assert.Equal(0, tree.Children[1].Alt)

	assert.True(tree.Children[2].Terminal)
	assert.Equal(grammar.Token(3), tree.Children[2].Token)

	assert.False(tree.Children[3].Terminal)
	assert.Equal(grammar.Var("F"), tree.Children[3].Var)

	assert.True(tree.Children[4].Terminal)
	assert.Equal(grammar.Token(2), tree.Children[4].Token)

	// the token leaves read back the input, in order
	assert.Equal(input, tree.Leaves())
}

func Test_LL1Parser_Parse_failureGivesNoTree(t *testing.T) {
	assert := assert.New(t)

	g := parensGrammar(t)
	p, err := NewLL1Parser(g)
	if !assert.NoError(err) {
		return
	}

	_, ok := p.Parse(NewTokenStream(1, 0, 3, 0))

	assert.False(ok)
}

func Test_LL1Parser_handlesErasableVariables(t *testing.T) {
	assert := assert.New(t)

	// the expression-grammar staple: S -> T X ; T -> ( S ) | int Y ;
	// X -> + S | ε ; Y -> * T | ε, with int=0 (=1 )=2 +=3 *=4
	g, err := grammar.New("S", []grammar.Rule{
		{Var: "S", Alts: []grammar.Seq{
			{grammar.Var("T"), grammar.Var("X")},
		}},
		{Var: "T", Alts: []grammar.Seq{
			{grammar.Token(1), grammar.Var("S"), grammar.Token(2)},
			{grammar.Token(0), grammar.Var("Y")},
		}},
		{Var: "X", Alts: []grammar.Seq{
			{grammar.Token(3), grammar.Var("S")},
			{grammar.Epsilon},
		}},
		{Var: "Y", Alts: []grammar.Seq{
			{grammar.Token(4), grammar.Var("T")},
			{grammar.Epsilon},
		}},
	})
	if !assert.NoError(err) {
		return
	}

	p, err := NewLL1Parser(g)
	if !assert.NoError(err) {
		return
	}

	// int * int
	input := []grammar.Token{0, 4, 0}
	assert.True(p.Recognize(NewTokenStream(input...)))

	tree, ok := p.Parse(NewTokenStream(input...))
	if !assert.True(ok) {
		return
	}

	// S has children T and X; X took its ε-alternative, so it has no
	// children at all
	if !assert.Len(tree.Children, 2) {
		return
	}
	x := tree.Children[1]
	assert.Equal(grammar.Var("X"), x.Var)
	assert.Equal(1, x.Alt)
	assert.Empty(x.Children)

	assert.Equal(input, tree.Leaves())

	// the ε-expansions must not eat real input
	assert.False(p.Recognize(NewTokenStream(0, 4)))
	assert.False(p.Recognize(NewTokenStream(4, 0)))
}

func Test_Tree_EqualAndString(t *testing.T) {
	assert := assert.New(t)

	tree1 := Tree{
		Var: "S",
		Alt: 1,
		Children: []*Tree{
			{Terminal: true, Token: 1},
			{Var: "F", Children: []*Tree{{Terminal: true, Token: 0}}},
		},
	}
	tree2 := tree1.Copy()

	assert.True(tree1.Equal(tree2))
	assert.Equal(tree1.String(), tree2.String())

	tree2.Children[1].Children[0].Token = 2
	assert.False(tree1.Equal(tree2))
}
