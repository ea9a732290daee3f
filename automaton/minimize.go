package automaton

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dekarrin/chef/internal/util"
)

// blockKey gives a canonical, order-independent string form for a set of
// states, making whole sets usable as map keys so partitions can be inserted
// and erased by value during refinement.
func blockKey(states StateSet) string {
	elems := states.Elements()
	sort.Slice(elems, func(i, j int) bool {
		return elems[i] < elems[j]
	})

	var sb strings.Builder
	for i := range elems {
		if i > 0 {
			sb.WriteRune(',')
		}
		sb.WriteString(strconv.Itoa(int(elems[i])))
	}
	return sb.String()
}

// initialPartitions groups the DFA's states by their category signature: two
// states start in the same block exactly when they belong to the same set of
// categories.
func initialPartitions(dfa DFA, categories []StateSet) map[string]StateSet {
	// what are the categories each state belongs to?
	signatures := make([]string, dfa.NumStates())
	for q := 0; q < dfa.NumStates(); q++ {
		var sb strings.Builder
		for i := range categories {
			if categories[i].Has(State(q)) {
				sb.WriteString(strconv.Itoa(i))
				sb.WriteRune(';')
			}
		}
		signatures[q] = sb.String()
	}

	bySignature := map[string]StateSet{}
	for q := 0; q < dfa.NumStates(); q++ {
		sig := signatures[q]
		if _, ok := bySignature[sig]; !ok {
			bySignature[sig] = util.NewKeySet[State]()
		}
		bySignature[sig].Add(State(q))
	}

	partitions := map[string]StateSet{}
	for _, block := range bySignature {
		partitions[blockKey(block)] = block
	}

	return partitions
}

// Minimize produces an equivalent DFA with the minimum number of states that
// still distinguishes every given category, along with the categories lifted
// to the new states. It implements Hopcroft's partition-refinement algorithm;
// single-letter variable names follow Wikipedia's pseudocode.
//
// The start state of the result is 0. Minimization of a well-formed DFA
// cannot fail.
func Minimize(dfa DFA, categories []StateSet) (DFA, []StateSet) {
	// P
	partitions := initialPartitions(dfa, categories)

	// W
	workPartitions := map[string]StateSet{}
	for k, v := range partitions {
		workPartitions[k] = v
	}

	for len(workPartitions) > 0 {
		// pop a partition from W; taking the smallest key keeps the whole
		// run deterministic
		aKey := util.OrderedKeys(workPartitions)[0]
		A := workPartitions[aKey]
		delete(workPartitions, aKey)

		for sym := 0; sym < dfa.NumSymbols(); sym++ {
			// X: states which go into A on sym
			X := util.NewKeySet[State]()
			for q := 0; q < dfa.NumStates(); q++ {
				if A.Has(dfa.Process(State(q), Symbol(sym))) {
					X.Add(State(q))
				}
			}
			if X.Empty() {
				continue
			}

			for _, yKey := range util.OrderedKeys(partitions) {
				Y := partitions[yKey]

				intersect := Y.Intersection(X)
				diff := Y.Difference(X)
				if intersect.Empty() || diff.Empty() {
					continue
				}

				// replace Y in P by the two pieces
				delete(partitions, yKey)
				partitions[blockKey(intersect)] = intersect
				partitions[blockKey(diff)] = diff

				if _, inW := workPartitions[yKey]; inW {
					delete(workPartitions, yKey)
					workPartitions[blockKey(intersect)] = intersect
					workPartitions[blockKey(diff)] = diff
				} else if intersect.Len() <= diff.Len() {
					workPartitions[blockKey(intersect)] = intersect
				} else {
					workPartitions[blockKey(diff)] = diff
				}
			}
		}
	}

	// translate partitions to an indexable form
	blocks := make([]StateSet, 0, len(partitions))
	for _, k := range util.OrderedKeys(partitions) {
		blocks = append(blocks, partitions[k])
	}

	// the block holding old state 0 must be at index 0 so that we maintain
	// start == 0
	for i := range blocks {
		if blocks[i].Has(0) {
			blocks[0], blocks[i] = blocks[i], blocks[0]
			break
		}
	}

	// map [old state] -> [new state]
	newStateMap := make([]State, dfa.NumStates())
	for bi := range blocks {
		for _, q := range blocks[bi].Elements() {
			newStateMap[q] = State(bi)
		}
	}

	// construct the edge list for the new DFA; any representative of a block
	// will do, all of its members are equivalent by construction
	edges := make([]Edge, 0, len(blocks)*dfa.NumSymbols())
	for bi := range blocks {
		rep := representative(blocks[bi])

		for sym := 0; sym < dfa.NumSymbols(); sym++ {
			oldTo := dfa.Process(rep, Symbol(sym))
			edges = append(edges, Edge{
				From: State(bi),
				To:   newStateMap[oldTo],
				On:   Symbol(sym),
			})
		}
	}

	newDFA, err := NewDFA(len(blocks), dfa.NumSymbols(), edges)
	if err != nil {
		// every block gets every symbol exactly once; this cannot happen
		panic("minimization built an invalid DFA: " + err.Error())
	}

	// track categories for the new DFA
	newCategories := make([]StateSet, len(categories))
	for i := range categories {
		newCategories[i] = util.NewKeySet[State]()
		for _, q := range categories[i].Elements() {
			newCategories[i].Add(newStateMap[q])
		}
	}

	return newDFA, newCategories
}

func representative(block StateSet) State {
	elems := block.Elements()

	rep := elems[0]
	for _, q := range elems[1:] {
		if q < rep {
			rep = q
		}
	}

	return rep
}
