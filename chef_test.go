package chef

import (
	"testing"

	"github.com/dekarrin/chef/grammar"
	"github.com/dekarrin/chef/parse"
	"github.com/stretchr/testify/assert"
)

func Test_CompileRegex(t *testing.T) {
	assert := assert.New(t)

	m, err := CompileRegex("(ab|a)baby")
	if !assert.NoError(err) {
		return
	}

	assert.True(m.Match("ababy"))
	assert.True(m.Match("abbaby"))
	assert.False(m.Match("baby"))

	_, err = CompileRegex("(ab")
	assert.Error(err)
}

func Test_NewLL1Parser(t *testing.T) {
	assert := assert.New(t)

	g, err := grammar.New("S", []grammar.Rule{
		{Var: "S", Alts: []grammar.Seq{
			{grammar.Var("F")},
			{grammar.Token(1), grammar.Var("S"), grammar.Token(3), grammar.Var("F"), grammar.Token(2)},
		}},
		{Var: "F", Alts: []grammar.Seq{{grammar.Token(0)}}},
	})
	if !assert.NoError(err) {
		return
	}

	p, err := NewLL1Parser(g)
	if !assert.NoError(err) {
		return
	}

	assert.True(p.Recognize(parse.NewTokenStream(1, 0, 3, 0, 2)))
	assert.False(p.Recognize(parse.NewTokenStream(1, 0, 3, 0)))
}
