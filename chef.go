// Package chef is a compiler-construction toolkit: it builds lexers and
// parsers from declarative descriptions. Finite automata with subset
// construction and Hopcroft minimization live in package automaton, the
// regular expression algebra and its engines in package re, context-free
// grammars with FIRST/FOLLOW analysis and LL(1) tables in package grammar,
// and the table-driven parser runtime in package parse.
//
// This package ties the pipeline ends together for the common cases.
package chef

import (
	"github.com/dekarrin/chef/grammar"
	"github.com/dekarrin/chef/parse"
	"github.com/dekarrin/chef/re"
)

// CompileRegex parses a regex from source text and compiles it down to a
// minimal-DFA matcher.
func CompileRegex(pattern string) (*re.Matcher, error) {
	r, err := re.Parse(pattern)
	if err != nil {
		return nil, err
	}
	return re.Compile(r)
}

// NewLL1Parser builds the LL(1) parse table for g and returns a predictive
// parser driven by it. Returns an error wrapping grammar.ErrNotLL1 if g is
// not an LL(1) grammar.
func NewLL1Parser(g grammar.Cfg) (parse.LL1Parser, error) {
	return parse.NewLL1Parser(g)
}
