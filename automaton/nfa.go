package automaton

import (
	"fmt"
	"strings"

	"github.com/dekarrin/chef/internal/util"
)

// NFA is a nondeterministic finite automaton. Processing a symbol from a
// state gives a set of next states, possibly empty, and symbol 0 is the ε
// symbol, whose transitions consume no input.
//
// An NFA is immutable once constructed.
type NFA struct {
	numSymbols int

	// table[from][on] is the list of destination states, in the order their
	// edges were given. Duplicate destinations are preserved here but every
	// algorithm treats the list as a set.
	table [][][]State
}

// NewNFA creates an NFA with the given number of states and symbols from an
// edge list. The symbol count includes the ε symbol, so an NFA over an
// alphabet of k real symbols has numSymbols == k+1.
//
// Returns an error wrapping ErrInvalidAutomaton if any edge refers to a state
// or symbol outside of the declared ranges.
func NewNFA(numStates int, numSymbols int, edges []Edge) (NFA, error) {
	if numStates < 1 {
		return NFA{}, fmt.Errorf("%w: must have at least 1 state for the start state", ErrInvalidAutomaton)
	}
	if numSymbols < 1 {
		return NFA{}, fmt.Errorf("%w: must have at least 1 symbol for ε", ErrInvalidAutomaton)
	}

	nfa := NFA{
		numSymbols: numSymbols,
		table:      make([][][]State, numStates),
	}

	for i := range nfa.table {
		nfa.table[i] = make([][]State, numSymbols)
	}

	for _, e := range edges {
		if e.From < 0 || int(e.From) >= numStates {
			return NFA{}, fmt.Errorf("%w: edge from non-existing state %d", ErrInvalidAutomaton, e.From)
		}
		if e.To < 0 || int(e.To) >= numStates {
			return NFA{}, fmt.Errorf("%w: edge to non-existing state %d", ErrInvalidAutomaton, e.To)
		}
		if e.On < 0 || int(e.On) >= numSymbols {
			return NFA{}, fmt.Errorf("%w: edge on non-existing symbol %d", ErrInvalidAutomaton, e.On)
		}

		nfa.table[e.From][e.On] = append(nfa.table[e.From][e.On], e.To)
	}

	return nfa, nil
}

// NumStates returns the number of states in the NFA.
func (nfa NFA) NumStates() int {
	return len(nfa.table)
}

// NumSymbols returns the number of symbols in the NFA's alphabet, including
// the ε symbol.
func (nfa NFA) NumSymbols() int {
	return nfa.numSymbols
}

// States returns all states of the NFA in increasing order.
func (nfa NFA) States() []State {
	states := make([]State, nfa.NumStates())
	for i := range states {
		states[i] = State(i)
	}
	return states
}

// Symbols returns all symbols of the NFA in increasing order, ε first.
func (nfa NFA) Symbols() []Symbol {
	syms := make([]Symbol, nfa.numSymbols)
	for i := range syms {
		syms[i] = Symbol(i)
	}
	return syms
}

// Process returns the states reachable from the given state with a single
// transition on the given symbol. The returned slice is a read-only view
// owned by the NFA; callers must not modify it. It may contain duplicates if
// duplicate edges were given at construction.
func (nfa NFA) Process(from State, on Symbol) []State {
	if from < 0 || int(from) >= nfa.NumStates() {
		panic(fmt.Sprintf("process from non-existing state: %d", from))
	}
	if on < 0 || int(on) >= nfa.numSymbols {
		panic(fmt.Sprintf("process on non-existing symbol: %d", on))
	}

	return nfa.table[from][on]
}

// EpsilonClosure gives the set of states reachable from s using zero or more
// ε-moves. Every state is in its own ε-closure.
func (nfa NFA) EpsilonClosure(s State) StateSet {
	closure := util.NewKeySet[State]()

	checkingStates := util.Stack[State]{}
	checkingStates.Push(s)

	for checkingStates.Len() > 0 {
		checking := checkingStates.Pop()

		if closure.Has(checking) {
			// we've already checked it. skip.
			continue
		}

		// add it to the closure and then check it for more ε-moves
		closure.Add(checking)

		for _, next := range nfa.table[checking][Epsilon] {
			checkingStates.Push(next)
		}
	}

	return closure
}

// EpsilonClosureOfSet gives the set of states reachable from some state in X
// using zero or more ε-moves.
func (nfa NFA) EpsilonClosureOfSet(X util.ISet[State]) StateSet {
	allClosures := util.NewKeySet[State]()

	for _, s := range X.Elements() {
		closures := nfa.EpsilonClosure(s)
		allClosures.AddAll(closures)
	}

	return allClosures
}

func (nfa NFA) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("<NFA states: %d, symbols: %d, transitions:", nfa.NumStates(), nfa.numSymbols))

	for from := range nfa.table {
		for on := range nfa.table[from] {
			for _, to := range nfa.table[from][on] {
				symStr := fmt.Sprintf("%d", on)
				if Symbol(on) == Epsilon {
					symStr = "ε"
				}
				sb.WriteString(fmt.Sprintf("\n\t%d =(%s)=> %d", from, symStr, to))
			}
		}
	}

	sb.WriteString("\n>")

	return sb.String()
}
