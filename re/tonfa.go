package re

import (
	"fmt"

	"github.com/dekarrin/chef/automaton"
	"github.com/dekarrin/chef/internal/util"
)

// NFAConversion is the result of compiling a regex to an NFA: the automaton
// itself, the set of its accepting states, and the mapping from the regex's
// characters to the NFA's symbol ids. Symbol 0 is reserved for ε, so
// characters map starting from 1.
type NFAConversion struct {
	NFA automaton.NFA

	Accepts automaton.StateSet

	SymbolMap map[byte]automaton.Symbol
}

// ToNFA compiles the regex into a nondeterministic finite automaton that
// accepts exactly its language, by Thompson-style construction with
// ε-transitions.
//
// Returns ErrUnsupported if the regex contains a CharClass.
func ToNFA(r Regex) (NFAConversion, error) {
	// assign each distinct character of the regex a symbol id, in order of
	// first appearance, leaving 0 for ε
	symbolMap := map[byte]automaton.Symbol{}
	if err := collectChars(r, symbolMap); err != nil {
		return NFAConversion{}, err
	}

	numStates, edges, accepts, err := buildNFA(r, symbolMap)
	if err != nil {
		return NFAConversion{}, err
	}

	nfa, err := automaton.NewNFA(numStates, len(symbolMap)+1, edges)
	if err != nil {
		// every edge below is built in-range; this cannot happen
		panic("regex compilation built an invalid NFA: " + err.Error())
	}

	return NFAConversion{
		NFA:       nfa,
		Accepts:   accepts,
		SymbolMap: symbolMap,
	}, nil
}

func collectChars(r Regex, symbolMap map[byte]automaton.Symbol) error {
	switch x := r.(type) {
	case Lit:
		for i := 0; i < len(x); i++ {
			if _, ok := symbolMap[x[i]]; !ok {
				symbolMap[x[i]] = automaton.Symbol(len(symbolMap) + 1)
			}
		}
		return nil
	case Cat:
		for i := range x {
			if err := collectChars(x[i], symbolMap); err != nil {
				return err
			}
		}
		return nil
	case Union:
		for i := range x {
			if err := collectChars(x[i], symbolMap); err != nil {
				return err
			}
		}
		return nil
	case Star:
		return collectChars(x.Sub, symbolMap)
	case Empty:
		return nil
	case CharClass:
		return fmt.Errorf("%w: cannot compile a char class to an NFA", ErrUnsupported)
	default:
		panic(fmt.Sprintf("collecting chars of unknown regex variant: %T", r))
	}
}

// buildNFA recursively assembles the edge list for the regex. Sub-automata
// are built with their own state ids starting at 0 and shifted into place by
// each composite form.
func buildNFA(r Regex, symbolMap map[byte]automaton.Symbol) (numStates int, edges []automaton.Edge, accepts automaton.StateSet, err error) {
	switch x := r.(type) {
	case Lit:
		// a chain of len(x)+1 states, one edge per character
		numStates = len(x) + 1
		for i := 0; i < len(x); i++ {
			edges = append(edges, automaton.Edge{
				From: automaton.State(i),
				To:   automaton.State(i + 1),
				On:   symbolMap[x[i]],
			})
		}
		accepts = util.KeySetOf([]automaton.State{automaton.State(len(x))})
		return numStates, edges, accepts, nil

	case Empty:
		// one state, no edges, and in particular nothing accepting
		return 1, nil, util.NewKeySet[automaton.State](), nil

	case Union:
		// a fresh initial state with an ε-edge into each alternative
		numStates = 1
		accepts = util.NewKeySet[automaton.State]()

		for i := range x {
			subStates, subEdges, subAccepts, err := buildNFA(x[i], symbolMap)
			if err != nil {
				return 0, nil, nil, err
			}

			offset := automaton.State(numStates)

			edges = append(edges, automaton.Edge{From: 0, To: offset, On: automaton.Epsilon})
			for _, e := range subEdges {
				edges = append(edges, automaton.Edge{From: e.From + offset, To: e.To + offset, On: e.On})
			}
			for _, a := range subAccepts.Elements() {
				accepts.Add(a + offset)
			}

			numStates += subStates
		}

		return numStates, edges, accepts, nil

	case Cat:
		// pieces laid end to end, ε-edges from each piece's accepts to the
		// start of the next; only the last piece's accepts survive
		var prevAccepts automaton.StateSet

		for i := range x {
			subStates, subEdges, subAccepts, err := buildNFA(x[i], symbolMap)
			if err != nil {
				return 0, nil, nil, err
			}

			offset := automaton.State(numStates)

			for _, a := range prevAccepts.Elements() {
				edges = append(edges, automaton.Edge{From: a, To: offset, On: automaton.Epsilon})
			}
			for _, e := range subEdges {
				edges = append(edges, automaton.Edge{From: e.From + offset, To: e.To + offset, On: e.On})
			}

			prevAccepts = util.NewKeySet[automaton.State]()
			for _, a := range subAccepts.Elements() {
				prevAccepts.Add(a + offset)
			}

			numStates += subStates
		}

		if numStates == 0 {
			// an empty Cat is not constructible through the combinators, but
			// its language would be ε
			return 1, nil, util.KeySetOf([]automaton.State{0}), nil
		}

		return numStates, edges, prevAccepts, nil

	case Star:
		subStates, subEdges, subAccepts, err := buildNFA(x.Sub, symbolMap)
		if err != nil {
			return 0, nil, nil, err
		}

		// fresh start at 0, the operand shifted up by 1, and a fresh sink
		// that is the sole accepting state
		numStates = subStates + 2
		sink := automaton.State(numStates - 1)

		edges = append(edges, automaton.Edge{From: 0, To: 1, On: automaton.Epsilon})
		edges = append(edges, automaton.Edge{From: 0, To: sink, On: automaton.Epsilon})

		for _, e := range subEdges {
			edges = append(edges, automaton.Edge{From: e.From + 1, To: e.To + 1, On: e.On})
		}

		for _, a := range subAccepts.Elements() {
			// the back edge for another repetition, and the way out
			edges = append(edges, automaton.Edge{From: a + 1, To: 1, On: automaton.Epsilon})
			edges = append(edges, automaton.Edge{From: a + 1, To: sink, On: automaton.Epsilon})
		}

		accepts = util.KeySetOf([]automaton.State{sink})
		return numStates, edges, accepts, nil

	case CharClass:
		return 0, nil, nil, fmt.Errorf("%w: cannot compile a char class to an NFA", ErrUnsupported)

	default:
		panic(fmt.Sprintf("compiling unknown regex variant: %T", r))
	}
}
