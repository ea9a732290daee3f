package grammar

import (
	"errors"
	"fmt"

	"github.com/dekarrin/chef/internal/util"
	"github.com/dekarrin/rosed"
)

// ErrNotLL1 is returned from LLParseTable when the grammar is not LL(1):
// for some variable, a single token of lookahead cannot decide between two of
// its alternatives. Grammars that are ambiguous, not left-factored, or
// left-recursive all surface here.
var ErrNotLL1 = errors.New("grammar is not LL(1)")

// LL1Entry is a single cell of an LL(1) table: the alternative to expand to,
// along with its index within its rule body. The index is what parse trees
// carry as their alternative discriminator.
type LL1Entry struct {
	Seq Seq
	Alt int
}

// LL1Table tells an LL(1) parser how to expand a variable given the next
// token of input.
type LL1Table util.Matrix2[Var, Token, LL1Entry]

func NewLL1Table() LL1Table {
	return LL1Table(util.NewMatrix2[Var, Token, LL1Entry]())
}

func (M LL1Table) Set(v Var, t Token, entry LL1Entry) {
	util.Matrix2[Var, Token, LL1Entry](M).Set(v, t, entry)
}

// Get returns the entry registered at the given coordinates, and whether one
// is registered there at all.
func (M LL1Table) Get(v Var, t Token) (LL1Entry, bool) {
	entry := util.Matrix2[Var, Token, LL1Entry](M).Get(v, t)
	if entry == nil {
		return LL1Entry{}, false
	}
	return *entry, true
}

// Vars returns all variables used as the first-level keys of the table, in
// sorted order.
func (M LL1Table) Vars() []Var {
	return util.OrderedKeys(M)
}

// Tokens returns all tokens used as second-level keys anywhere in the table,
// in sorted order. EOF is first if present, since it sorts below all real
// tokens.
func (M LL1Table) Tokens() []Token {
	tokSet := map[Token]bool{}

	for v := range M {
		for t := range M[v] {
			tokSet[t] = true
		}
	}

	return util.OrderedKeys(tokSet)
}

func (M LL1Table) String() string {
	data := [][]string{}

	toks := M.Tokens()
	vars := M.Vars()

	topRow := []string{""}
	for i := range toks {
		topRow = append(topRow, toks[i].String())
	}
	data = append(data, topRow)

	for i := range vars {
		dataRow := []string{string(vars[i])}
		for j := range toks {
			if entry, ok := M.Get(vars[i], toks[j]); ok {
				dataRow = append(dataRow, entry.Seq.String())
			} else {
				dataRow = append(dataRow, "")
			}
		}
		data = append(data, dataRow)
	}

	return rosed.Edit("").
		InsertTableOpts(0, data, 80, rosed.Options{
			TableBorders: true,
		}).
		String()
}

// LLParseTable builds and returns the LL(1) predictive parsing table for the
// grammar: for each variable v and alternative v → α, the entry (v, t) → α is
// registered for every token t in FIRST⁺(v → α).
//
// If two different alternatives land on the same (v, t) cell, the grammar is
// not LL(1) and an error wrapping ErrNotLL1 is returned that names the
// variable and the conflicting token.
func (cfg Cfg) LLParseTable() (LL1Table, error) {
	first := cfg.FirstSets()
	follow := cfg.FollowSets(first)

	M := NewLL1Table()

	for _, v := range cfg.Vars() {
		for altIdx, alt := range cfg.Alternatives(v) {
			firstPlus := cfg.FirstPlus(v, alt, first, follow)

			for _, t := range util.OrderedKeys(firstPlus) {
				if existing, ok := M.Get(v, t); ok && !existing.Seq.Equal(alt) {
					return nil, fmt.Errorf(
						"%w: it is not left factored! variable `%s` has multiple possible rules which could be taken given the token: %s",
						ErrNotLL1, v, t)
				}
				M.Set(v, t, LL1Entry{Seq: alt.Copy(), Alt: altIdx})
			}
		}
	}

	return M, nil
}
