package plantuml

import (
	"strings"
	"testing"

	"github.com/dekarrin/chef/automaton"
	"github.com/stretchr/testify/assert"
)

func Test_WriteDFA(t *testing.T) {
	assert := assert.New(t)

	dfa, err := automaton.NewDFA(2, 1, []automaton.Edge{
		{From: 0, To: 1, On: 0},
		{From: 1, To: 0, On: 0},
	})
	if !assert.NoError(err) {
		return
	}

	var sb strings.Builder
	err = WriteDFA(&sb, dfa, map[automaton.State]string{0: "start"})
	if !assert.NoError(err) {
		return
	}

	expect := "@startuml\n" +
		"[*] --> 0\n" +
		"0:start\n" +
		"0 --> 1 : 0\n" +
		"1:\n" +
		"1 --> 0 : 0\n" +
		"@enduml\n"

	assert.Equal(expect, sb.String())
}

func Test_WriteNFA(t *testing.T) {
	assert := assert.New(t)

	nfa, err := automaton.NewNFA(2, 2, []automaton.Edge{
		{From: 0, To: 1, On: automaton.Epsilon},
		{From: 0, To: 1, On: 1},
		{From: 1, To: 0, On: 1},
	})
	if !assert.NoError(err) {
		return
	}

	var sb strings.Builder
	err = WriteNFA(&sb, nfa, nil)
	if !assert.NoError(err) {
		return
	}

	expect := "@startuml\n" +
		"[*] --> 0\n" +
		"0:\n" +
		"0 --> 1 : 0\n" +
		"0 --> 1 : 1\n" +
		"1:\n" +
		"1 --> 0 : 1\n" +
		"@enduml\n"

	assert.Equal(expect, sb.String())
}
