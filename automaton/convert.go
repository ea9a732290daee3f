package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/chef/internal/util"
)

// multiState is a sorted, deduplicated collection of NFA states standing in
// for a single DFA state during subset construction. Its canonical string
// form doubles as its identity in maps.
type multiState []State

func toMultiState(states StateSet) multiState {
	m := multiState(states.Elements())
	sort.Slice(m, func(i, j int) bool {
		return m[i] < m[j]
	})
	return m
}

func (m multiState) key() string {
	var sb strings.Builder
	for i := range m {
		if i > 0 {
			sb.WriteRune(',')
		}
		sb.WriteString(strconv.Itoa(int(m[i])))
	}
	return sb.String()
}

// ToDFA converts the NFA into a deterministic finite automaton accepting the
// same strings, using subset construction with ε-closures. This is the
// powerset version of algorithm 3.20 from the purple dragon book, adjusted so
// that even dead multi-states get a number; the result's transition function
// is total.
//
// The DFA's alphabet drops the ε symbol, so DFA symbol s corresponds to NFA
// symbol s+1. The DFA's start state is 0 (the ε-closure of NFA state 0) and
// the remaining states are numbered in the order they are discovered.
//
// Each given category is projected onto the new automaton: a DFA state is in
// category i exactly when at least one of its constituent NFA states is.
func ToDFA(nfa NFA, categories []StateSet) (DFA, []StateSet) {
	numDFASymbols := nfa.NumSymbols() - 1

	// initially, ε-closure(s₀) is the only discovered state
	start := toMultiState(nfa.EpsilonClosure(0))

	stateNumbers := map[string]State{start.key(): 0}
	discovered := []multiState{start}
	transitions := map[State][]State{}

	// Using a stack for the worklist rather than a FIFO queue. States are
	// numbered in discovery order, and discovery follows this LIFO processing
	// order, so a FIFO worklist could number the non-start states differently.
	worklist := util.Stack[State]{}
	worklist.Push(0)

	for !worklist.Empty() {
		curID := worklist.Pop()
		cur := discovered[curID]

		row := make([]State, numDFASymbols)

		for sym := 0; sym < numDFASymbols; sym++ {
			// MOVE(T, a), but a is the NFA symbol one past the DFA one
			moves := util.NewKeySet[State]()
			for _, q := range cur {
				for _, t := range nfa.Process(q, Symbol(sym+1)) {
					moves.Add(t)
				}
			}

			next := toMultiState(nfa.EpsilonClosureOfSet(moves))

			nextID, haveIt := stateNumbers[next.key()]
			if !haveIt {
				nextID = State(len(discovered))
				stateNumbers[next.key()] = nextID
				discovered = append(discovered, next)
				worklist.Push(nextID)
			}

			row[sym] = nextID
		}

		transitions[curID] = row
	}

	// gather the transition info into the DFA's edge-list format
	edges := make([]Edge, 0, len(discovered)*numDFASymbols)
	for id := range discovered {
		row := transitions[State(id)]
		for sym := 0; sym < numDFASymbols; sym++ {
			edges = append(edges, Edge{
				From: State(id),
				To:   row[sym],
				On:   Symbol(sym),
			})
		}
	}

	dfa, err := NewDFA(len(discovered), numDFASymbols, edges)
	if err != nil {
		// the construction above covers every cell; this cannot happen
		panic("subset construction built an invalid DFA: " + err.Error())
	}

	// trace categories through the conversion
	dfaCategories := make([]StateSet, len(categories))
	for i := range categories {
		dfaCategories[i] = util.NewKeySet[State]()

		for id, m := range discovered {
			for _, q := range m {
				if categories[i].Has(q) {
					dfaCategories[i].Add(State(id))
					break
				}
			}
		}
	}

	return dfa, dfaCategories
}
