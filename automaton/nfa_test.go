package automaton

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_NewNFA_rejectsBadEdgeLists(t *testing.T) {
	testCases := []struct {
		name       string
		numStates  int
		numSymbols int
		edges      []Edge
	}{
		{
			name:       "no states at all",
			numStates:  0,
			numSymbols: 1,
		},
		{
			name:       "no symbols, not even ε",
			numStates:  1,
			numSymbols: 0,
		},
		{
			name:       "edge from out-of-range state",
			numStates:  2,
			numSymbols: 2,
			edges:      []Edge{{From: 2, To: 0, On: 1}},
		},
		{
			name:       "edge to out-of-range state",
			numStates:  2,
			numSymbols: 2,
			edges:      []Edge{{From: 0, To: 8, On: 1}},
		},
		{
			name:       "edge on out-of-range symbol",
			numStates:  2,
			numSymbols: 2,
			edges:      []Edge{{From: 0, To: 1, On: 2}},
		},
		{
			name:       "edge on negative symbol",
			numStates:  2,
			numSymbols: 2,
			edges:      []Edge{{From: 0, To: 1, On: -1}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := NewNFA(tc.numStates, tc.numSymbols, tc.edges)

			assert.ErrorIs(err, ErrInvalidAutomaton)
		})
	}
}

func Test_NFA_Process(t *testing.T) {
	assert := assert.New(t)

	nfa, err := NewNFA(3, 2, []Edge{
		{From: 0, To: 1, On: 1},
		{From: 0, To: 2, On: 1},
		{From: 1, To: 2, On: Epsilon},
	})
	if !assert.NoError(err) {
		return
	}

	assert.Equal(3, nfa.NumStates())
	assert.Equal(2, nfa.NumSymbols())

	assert.ElementsMatch([]State{1, 2}, nfa.Process(0, 1))
	assert.ElementsMatch([]State{2}, nfa.Process(1, Epsilon))
	assert.Empty(nfa.Process(2, 1))
}

func Test_NFA_EpsilonClosure(t *testing.T) {
	testCases := []struct {
		name   string
		edges  []Edge
		from   State
		expect []State
	}{
		{
			name:   "no ε-moves gives just the state itself",
			edges:  []Edge{{From: 0, To: 1, On: 1}},
			from:   0,
			expect: []State{0},
		},
		{
			name: "ε-moves chain transitively",
			edges: []Edge{
				{From: 0, To: 1, On: Epsilon},
				{From: 1, To: 2, On: Epsilon},
			},
			from:   0,
			expect: []State{0, 1, 2},
		},
		{
			name: "ε-cycles do not loop forever",
			edges: []Edge{
				{From: 0, To: 1, On: Epsilon},
				{From: 1, To: 0, On: Epsilon},
			},
			from:   1,
			expect: []State{0, 1},
		},
		{
			name: "non-ε edges are not followed",
			edges: []Edge{
				{From: 0, To: 1, On: Epsilon},
				{From: 1, To: 2, On: 1},
			},
			from:   0,
			expect: []State{0, 1},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			nfa, err := NewNFA(3, 2, tc.edges)
			if !assert.NoError(err) {
				return
			}

			actual := nfa.EpsilonClosure(tc.from)

			assert.ElementsMatch(tc.expect, actual.Elements())
		})
	}
}
