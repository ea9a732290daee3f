package automaton

import (
	"fmt"

	"github.com/dekarrin/rezi"
)

// This file contains the binary encodings of automata, so that a compiled
// recognizer can be stored and reloaded without redoing subset construction
// or minimization.

// MarshalBinary converts the DFA into a slice of bytes that can be decoded
// with UnmarshalBinary.
func (dfa DFA) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncInt(dfa.numStates)...)
	data = append(data, rezi.EncInt(dfa.numSymbols)...)
	for _, to := range dfa.table {
		data = append(data, rezi.EncInt(int(to))...)
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into the
// DFA. All of the DFA's fields are replaced by the decoded values.
func (dfa *DFA) UnmarshalBinary(data []byte) error {
	var err error
	var n int

	dfa.numStates, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("numStates: %w", err)
	}
	data = data[n:]

	dfa.numSymbols, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("numSymbols: %w", err)
	}
	data = data[n:]

	if dfa.numStates < 1 || dfa.numSymbols < 0 {
		return fmt.Errorf("%w: bad state or symbol count", ErrInvalidAutomaton)
	}

	dfa.table = make([]State, dfa.numStates*dfa.numSymbols)
	for cell := range dfa.table {
		var to int
		to, n, err = rezi.DecInt(data)
		if err != nil {
			return fmt.Errorf("transition cell %d: %w", cell, err)
		}
		data = data[n:]

		if to < 0 || to >= dfa.numStates {
			return fmt.Errorf("%w: transition to non-existing state %d", ErrInvalidAutomaton, to)
		}
		dfa.table[cell] = State(to)
	}

	return nil
}

// MarshalBinary converts the NFA into a slice of bytes that can be decoded
// with UnmarshalBinary.
func (nfa NFA) MarshalBinary() ([]byte, error) {
	var data []byte

	data = append(data, rezi.EncInt(nfa.NumStates())...)
	data = append(data, rezi.EncInt(nfa.numSymbols)...)

	for from := range nfa.table {
		for on := range nfa.table[from] {
			dests := nfa.table[from][on]
			data = append(data, rezi.EncInt(len(dests))...)
			for _, to := range dests {
				data = append(data, rezi.EncInt(int(to))...)
			}
		}
	}

	return data, nil
}

// UnmarshalBinary decodes a slice of bytes created by MarshalBinary into the
// NFA. All of the NFA's fields are replaced by the decoded values.
func (nfa *NFA) UnmarshalBinary(data []byte) error {
	var err error
	var n int

	var numStates int
	numStates, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("numStates: %w", err)
	}
	data = data[n:]

	nfa.numSymbols, n, err = rezi.DecInt(data)
	if err != nil {
		return fmt.Errorf("numSymbols: %w", err)
	}
	data = data[n:]

	if numStates < 1 || nfa.numSymbols < 1 {
		return fmt.Errorf("%w: bad state or symbol count", ErrInvalidAutomaton)
	}

	nfa.table = make([][][]State, numStates)
	for from := range nfa.table {
		nfa.table[from] = make([][]State, nfa.numSymbols)

		for on := range nfa.table[from] {
			var count int
			count, n, err = rezi.DecInt(data)
			if err != nil {
				return fmt.Errorf("state %d symbol %d: %w", from, on, err)
			}
			data = data[n:]

			if count < 0 {
				return fmt.Errorf("%w: negative destination count", ErrInvalidAutomaton)
			}

			for i := 0; i < count; i++ {
				var to int
				to, n, err = rezi.DecInt(data)
				if err != nil {
					return fmt.Errorf("state %d symbol %d: %w", from, on, err)
				}
				data = data[n:]

				if to < 0 || to >= numStates {
					return fmt.Errorf("%w: transition to non-existing state %d", ErrInvalidAutomaton, to)
				}
				nfa.table[from][on] = append(nfa.table[from][on], State(to))
			}
		}
	}

	return nil
}
