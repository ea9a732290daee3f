// Package plantuml renders automata as PlantUML state-diagram documents,
// which can be piped through the plantuml tool to get a picture of the
// machine. It consumes only the query surface of the automata; it never looks
// inside them.
//
// Symbols are printed by their numeric id; on an NFA, symbol 0 is ε.
package plantuml

import (
	"fmt"
	"io"

	"github.com/dekarrin/chef/automaton"
)

// WriteDFA writes the DFA to w as a PlantUML state diagram. labels gives the
// display text for states; states absent from it are declared with an empty
// label. labels may be nil.
func WriteDFA(w io.Writer, dfa automaton.DFA, labels map[automaton.State]string) error {
	if _, err := io.WriteString(w, "@startuml\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "[*] --> 0\n"); err != nil {
		return err
	}

	for _, state := range dfa.States() {
		if _, err := fmt.Fprintf(w, "%d:%s\n", state, labels[state]); err != nil {
			return err
		}

		for _, symbol := range dfa.Symbols() {
			next := dfa.Process(state, symbol)
			if _, err := fmt.Fprintf(w, "%d --> %d : %d\n", state, next, symbol); err != nil {
				return err
			}
		}
	}

	_, err := io.WriteString(w, "@enduml\n")
	return err
}

// WriteNFA writes the NFA to w as a PlantUML state diagram, one arrow per
// transition. labels is as for WriteDFA.
func WriteNFA(w io.Writer, nfa automaton.NFA, labels map[automaton.State]string) error {
	if _, err := io.WriteString(w, "@startuml\n"); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "[*] --> 0\n"); err != nil {
		return err
	}

	for _, state := range nfa.States() {
		if _, err := fmt.Fprintf(w, "%d:%s\n", state, labels[state]); err != nil {
			return err
		}

		for _, symbol := range nfa.Symbols() {
			for _, next := range nfa.Process(state, symbol) {
				if _, err := fmt.Fprintf(w, "%d --> %d : %d\n", state, next, symbol); err != nil {
					return err
				}
			}
		}
	}

	_, err := io.WriteString(w, "@enduml\n")
	return err
}
