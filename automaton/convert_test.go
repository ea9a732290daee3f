package automaton

import (
	"testing"

	"github.com/dekarrin/chef/internal/util"
	"github.com/stretchr/testify/assert"
)

func stateSet(states ...State) StateSet {
	return util.KeySetOf(states)
}

func Test_ToDFA(t *testing.T) {
	assert := assert.New(t)

	// no ε-moves here; every multi-state is driven purely by symbol moves
	nfa, err := NewNFA(4, 3, []Edge{
		{From: 0, To: 1, On: 1},
		{From: 0, To: 0, On: 1},
		{From: 0, To: 0, On: 2},
		{From: 1, To: 2, On: 1},
		{From: 2, To: 3, On: 2},
	})
	if !assert.NoError(err) {
		return
	}

	dfa, categories := ToDFA(nfa, []StateSet{
		stateSet(0),
		stateSet(1),
		stateSet(2),
		stateSet(3),
		stateSet(1, 2),
		stateSet(2, 3),
	})

	assert.Equal(nfa.NumSymbols()-1, dfa.NumSymbols())

	// found by manually doing the conversion
	assert.Equal(4, dfa.NumStates())
	st0 := State(0)
	st01 := dfa.Process(st0, 0)
	st012 := dfa.Process(st01, 0)
	st03 := dfa.Process(st012, 1)
	assert.ElementsMatch([]State{0, 1, 2, 3}, []State{st0, st01, st012, st03})

	assert.Equal(st0, dfa.Process(st0, 1))
	assert.Equal(st0, dfa.Process(st01, 1))
	assert.Equal(st012, dfa.Process(st012, 0))
	assert.Equal(st01, dfa.Process(st03, 0))
	assert.Equal(st0, dfa.Process(st03, 1))

	if !assert.Len(categories, 6) {
		return
	}
	assert.ElementsMatch([]State{st0, st01, st012, st03}, categories[0].Elements())
	assert.ElementsMatch([]State{st01, st012}, categories[1].Elements())
	assert.ElementsMatch([]State{st012}, categories[2].Elements())
	assert.ElementsMatch([]State{st03}, categories[3].Elements())
	assert.ElementsMatch([]State{st01, st012}, categories[4].Elements())
	assert.ElementsMatch([]State{st012, st03}, categories[5].Elements())
}

func Test_ToDFA_withEpsilons(t *testing.T) {
	assert := assert.New(t)

	// NFA example from Wikipedia's article on the powerset construction,
	// except accept states are much fewer.
	nfa, err := NewNFA(4, 3, []Edge{
		{From: 0, To: 2, On: Epsilon},
		{From: 0, To: 1, On: 1},
		{From: 1, To: 1, On: 2},
		{From: 1, To: 3, On: 2},
		{From: 2, To: 1, On: Epsilon},
		{From: 2, To: 3, On: 1},
		{From: 3, To: 2, On: 1},
	})
	if !assert.NoError(err) {
		return
	}

	dfa, categories := ToDFA(nfa, []StateSet{stateSet(3)})

	assert.Equal(nfa.NumSymbols()-1, dfa.NumSymbols())

	// the fifth state is the dead multi-state: a transition on symbol 2 out
	// of anything not containing NFA state 1 goes nowhere
	assert.Equal(5, dfa.NumStates())
	st123 := State(0)
	st24 := dfa.Process(st123, 0)
	st23 := dfa.Process(st24, 0)
	st4 := dfa.Process(st23, 0)
	st5 := dfa.Process(st4, 1)
	assert.ElementsMatch([]State{0, 1, 2, 3, 4}, []State{st123, st24, st23, st4, st5})

	assert.Equal(st24, dfa.Process(st123, 1))
	assert.Equal(st24, dfa.Process(st24, 1))
	assert.Equal(st24, dfa.Process(st23, 1))
	assert.Equal(st23, dfa.Process(st4, 0))
	assert.Equal(st5, dfa.Process(st5, 0))
	assert.Equal(st5, dfa.Process(st5, 1))

	if !assert.Len(categories, 1) {
		return
	}
	assert.ElementsMatch([]State{st24, st4}, categories[0].Elements())
}
