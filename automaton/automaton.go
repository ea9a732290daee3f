// Package automaton provides finite automata represented as dense transition
// tables, along with the two classic transformations between them: subset
// construction to turn an NFA into a DFA, and Hopcroft minimization to shrink
// a DFA to its minimum number of states.
//
// States and symbols are dense non-negative integers. An automaton with N
// states uses exactly the ids in [0, N), and state 0 is always the start
// state. On an NFA, symbol 0 is reserved for ε; a DFA has no ε symbol.
//
// Alongside an automaton callers may track categories: sets of states with
// some application-defined meaning, typically "the accepting states" or "the
// states that emit token class X". Both ToDFA and Minimize carry categories
// through the transformation, so a category marked on the input automaton can
// be queried on the output one.
//
// All automata are immutable once constructed and may be shared freely
// between readers.
package automaton

import (
	"errors"

	"github.com/dekarrin/chef/internal/util"
)

// State identifies a single state of a finite automaton.
type State int

// Symbol identifies one symbol of an automaton's input alphabet. On NFAs,
// Symbol 0 is the ε symbol.
type Symbol int

// Epsilon is the NFA symbol for a transition that consumes no input. It is
// not a valid symbol on a DFA.
const Epsilon Symbol = 0

// StateSet is a set of automaton states.
type StateSet = util.KeySet[State]

// Edge is a single transition of an automaton, given to the constructors as
// part of an edge list.
type Edge struct {
	From State
	To   State
	On   Symbol
}

// ErrInvalidAutomaton is returned from automaton constructors given an edge
// list that does not describe a well-formed automaton.
var ErrInvalidAutomaton = errors.New("not a valid automaton")
