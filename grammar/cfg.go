// Package grammar provides context-free grammars over pre-lexed token
// streams, the FIRST/FOLLOW/FIRST⁺ set computations on them, and construction
// of LL(1) predictive parsing tables.
//
// A grammar is a set of rules mapping each variable (non-terminal) to the
// alternatives it can produce. Terminals are small integers assigned by
// whatever lexer runs in front of the parser; two token values are reserved,
// Epsilon for erasable productions and EOF for end of input.
package grammar

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dekarrin/chef/internal/util"
)

// Var is a grammar non-terminal, identified by name.
type Var string

// Token is a grammar terminal, identified by the small integer its token
// class was assigned. Negative values are reserved.
type Token int

const (
	// Epsilon is the token standing for the empty string in erasable
	// productions. It never appears on a parse stack or in a FOLLOW set.
	Epsilon Token = -1

	// EOF is the token standing for end of input. It appears in FOLLOW sets
	// and LL(1) tables but is never part of a token stream; the parser
	// treats running out of input as an implicit EOF.
	EOF Token = -2
)

// Element is one element of a production body: either a Var or a Token.
type Element interface {
	fmt.Stringer

	cfgElement()
}

func (v Var) cfgElement() {}

func (v Var) String() string {
	return string(v)
}

func (t Token) cfgElement() {}

func (t Token) String() string {
	switch t {
	case Epsilon:
		return "ε"
	case EOF:
		return "$"
	default:
		return strconv.Itoa(int(t))
	}
}

// TokenSet is a set of tokens, as produced by the FIRST and FOLLOW
// computations.
type TokenSet = util.KeySet[Token]

// Seq is a straight sequence of variables and tokens; it forms the body of a
// single alternative of a rule.
type Seq []Element

// Copy returns a deep-copied duplicate of this sequence.
func (s Seq) Copy() Seq {
	s2 := make(Seq, len(s))
	copy(s2, s)
	return s2
}

// Equal returns whether the sequence has the same elements as o in the same
// order. o may be a Seq or a *Seq.
func (s Seq) Equal(o any) bool {
	other, ok := o.(Seq)
	if !ok {
		otherPtr, ok := o.(*Seq)
		if !ok {
			return false
		} else if otherPtr == nil {
			return false
		}
		other = *otherPtr
	}

	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}

	return true
}

func (s Seq) String() string {
	if len(s) == 0 {
		return "ε"
	}

	var sb strings.Builder
	for i := range s {
		if i > 0 {
			sb.WriteRune(' ')
		}
		sb.WriteString(s[i].String())
	}

	return sb.String()
}

// Rule pairs a variable with the alternatives it produces, for passing rule
// lists to New.
type Rule struct {
	Var  Var
	Alts []Seq
}

// Cfg is a context-free grammar: a designated start variable and a rule body
// for every variable. Build one with New, or with AddRule followed by a
// Validate call. After construction a Cfg should be treated as immutable.
type Cfg struct {
	start Var

	rules map[Var][]Seq

	// rule iteration must be in a stable order, so the insertion order of
	// variables is kept on the side
	varOrder []Var
}

// New creates a Cfg from a start variable and a list of rules, and validates
// it. Multiple Rule entries for the same Var accumulate their alternatives.
func New(start Var, rules []Rule) (Cfg, error) {
	cfg := Cfg{start: start}

	for _, r := range rules {
		for _, alt := range r.Alts {
			cfg.AddRule(r.Var, alt)
		}
	}

	if err := cfg.Validate(); err != nil {
		return Cfg{}, err
	}

	return cfg, nil
}

// AddRule adds one alternative to the rule body of the given variable,
// creating the rule if this is the variable's first alternative.
func (cfg *Cfg) AddRule(v Var, alt Seq) {
	if cfg.rules == nil {
		cfg.rules = map[Var][]Seq{}
	}

	if _, ok := cfg.rules[v]; !ok {
		cfg.varOrder = append(cfg.varOrder, v)
	}

	cfg.rules[v] = append(cfg.rules[v], alt.Copy())
}

// Start returns the grammar's start variable.
func (cfg Cfg) Start() Var {
	return cfg.start
}

// Vars returns every variable that has a rule, in the order the rules were
// first added.
func (cfg Cfg) Vars() []Var {
	vs := make([]Var, len(cfg.varOrder))
	copy(vs, cfg.varOrder)
	return vs
}

// Alternatives returns the alternatives of the given variable's rule body, in
// the order they were added. Returns nil if the variable has no rule.
func (cfg Cfg) Alternatives(v Var) []Seq {
	return cfg.rules[v]
}

// Validate returns an error if the grammar refers to a variable that has no
// rule, or if the start variable has no rule.
func (cfg Cfg) Validate() error {
	if _, ok := cfg.rules[cfg.start]; !ok {
		return fmt.Errorf("start variable %q has no rule", cfg.start)
	}

	for _, v := range cfg.varOrder {
		for _, alt := range cfg.rules[v] {
			for _, el := range alt {
				if u, isVar := el.(Var); isVar {
					if _, ok := cfg.rules[u]; !ok {
						return fmt.Errorf("rule for %q refers to variable %q, which has no rule", v, u)
					}
				}
			}
		}
	}

	return nil
}

// Copy returns a deep-copied duplicate of this grammar.
func (cfg Cfg) Copy() Cfg {
	cfg2 := Cfg{
		start:    cfg.start,
		rules:    make(map[Var][]Seq, len(cfg.rules)),
		varOrder: make([]Var, len(cfg.varOrder)),
	}

	copy(cfg2.varOrder, cfg.varOrder)

	for v := range cfg.rules {
		alts := make([]Seq, len(cfg.rules[v]))
		for i := range cfg.rules[v] {
			alts[i] = cfg.rules[v][i].Copy()
		}
		cfg2.rules[v] = alts
	}

	return cfg2
}

func (cfg Cfg) String() string {
	var sb strings.Builder

	for i, v := range cfg.varOrder {
		if i > 0 {
			sb.WriteString(" ; ")
		}
		sb.WriteString(string(v))
		sb.WriteString(" -> ")
		for j, alt := range cfg.rules[v] {
			if j > 0 {
				sb.WriteString(" | ")
			}
			sb.WriteString(alt.String())
		}
	}

	return sb.String()
}
