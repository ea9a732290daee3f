package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewDFA_requiresTotalTransitionFunction(t *testing.T) {
	testCases := []struct {
		name       string
		numStates  int
		numSymbols int
		edges      []Edge
	}{
		{
			name:       "missing cell",
			numStates:  2,
			numSymbols: 1,
			edges:      []Edge{{From: 0, To: 1, On: 0}},
		},
		{
			name:       "doubly-defined cell",
			numStates:  1,
			numSymbols: 1,
			edges: []Edge{
				{From: 0, To: 0, On: 0},
				{From: 0, To: 0, On: 0},
			},
		},
		{
			name:       "edge from out-of-range state",
			numStates:  1,
			numSymbols: 1,
			edges: []Edge{
				{From: 0, To: 0, On: 0},
				{From: 1, To: 0, On: 0},
			},
		},
		{
			name:       "edge on out-of-range symbol",
			numStates:  1,
			numSymbols: 1,
			edges:      []Edge{{From: 0, To: 0, On: 1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := NewDFA(tc.numStates, tc.numSymbols, tc.edges)

			assert.ErrorIs(err, ErrInvalidAutomaton)
		})
	}
}

func Test_DFA_Process(t *testing.T) {
	assert := assert.New(t)

	// parity-of-1s machine
	dfa, err := NewDFA(2, 2, []Edge{
		{From: 0, To: 0, On: 0},
		{From: 0, To: 1, On: 1},
		{From: 1, To: 1, On: 0},
		{From: 1, To: 0, On: 1},
	})
	if !assert.NoError(err) {
		return
	}

	assert.Equal(2, dfa.NumStates())
	assert.Equal(2, dfa.NumSymbols())

	cur := State(0)
	for _, sym := range []Symbol{1, 0, 1, 1} {
		cur = dfa.Process(cur, sym)
	}
	assert.Equal(State(1), cur)
}

func Test_DFA_binaryRoundTrip(t *testing.T) {
	assert := assert.New(t)

	original, err := NewDFA(2, 2, []Edge{
		{From: 0, To: 0, On: 0},
		{From: 0, To: 1, On: 1},
		{From: 1, To: 1, On: 0},
		{From: 1, To: 0, On: 1},
	})
	if !assert.NoError(err) {
		return
	}

	data, err := original.MarshalBinary()
	if !assert.NoError(err) {
		return
	}

	var decoded DFA
	if !assert.NoError(decoded.UnmarshalBinary(data)) {
		return
	}

	assert.Equal(original.String(), decoded.String())
}

func Test_NFA_binaryRoundTrip(t *testing.T) {
	assert := assert.New(t)

	original, err := NewNFA(3, 2, []Edge{
		{From: 0, To: 1, On: 1},
		{From: 0, To: 2, On: 1},
		{From: 1, To: 2, On: Epsilon},
	})
	if !assert.NoError(err) {
		return
	}

	data, err := original.MarshalBinary()
	if !assert.NoError(err) {
		return
	}

	var decoded NFA
	if !assert.NoError(decoded.UnmarshalBinary(data)) {
		return
	}

	assert.Equal(original.String(), decoded.String())
}
