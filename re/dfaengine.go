package re

import (
	"github.com/dekarrin/chef/automaton"
)

// Matcher is a regex compiled down to a minimal DFA. Compiling runs the full
// pipeline once — Thompson construction, subset construction, Hopcroft
// minimization — and after that each Match is a single pass over the input
// with one table lookup per character.
//
// A Matcher is immutable and can be shared between any number of readers.
type Matcher struct {
	dfa       automaton.DFA
	accepting automaton.StateSet

	// symbols maps input characters to DFA symbol ids; anything not in here
	// is not in the regex's alphabet at all.
	symbols map[byte]automaton.Symbol
}

// Compile compiles the regex into a minimal-DFA Matcher.
//
// Returns ErrUnsupported if the regex contains a CharClass.
func Compile(r Regex) (*Matcher, error) {
	conv, err := ToNFA(r)
	if err != nil {
		return nil, err
	}

	// the accepting states ride through conversion and minimization as a
	// category
	dfa, categories := automaton.ToDFA(conv.NFA, []automaton.StateSet{conv.Accepts})
	minDFA, minCategories := automaton.Minimize(dfa, categories)

	// DFA symbol ids sit one below the NFA ones, ε having dropped out
	symbols := make(map[byte]automaton.Symbol, len(conv.SymbolMap))
	for c, sym := range conv.SymbolMap {
		symbols[c] = sym - 1
	}

	return &Matcher{
		dfa:       minDFA,
		accepting: minCategories[0],
		symbols:   symbols,
	}, nil
}

// Match reports whether the compiled regex matches the entire string.
func (m *Matcher) Match(s string) bool {
	cur := automaton.State(0)

	for i := 0; i < len(s); i++ {
		sym, ok := m.symbols[s[i]]
		if !ok {
			return false
		}
		cur = m.dfa.Process(cur, sym)
	}

	return m.accepting.Has(cur)
}

// DFA returns the minimal DFA backing the matcher.
func (m *Matcher) DFA() automaton.DFA {
	return m.dfa
}

// Accepting returns the matcher's accepting states.
func (m *Matcher) Accepting() automaton.StateSet {
	return m.accepting.Copy()
}

// SymbolMap returns the mapping from input characters to the DFA's symbol
// ids.
func (m *Matcher) SymbolMap() map[byte]automaton.Symbol {
	syms := make(map[byte]automaton.Symbol, len(m.symbols))
	for c, sym := range m.symbols {
		syms[c] = sym
	}
	return syms
}
