// Package re implements an algebra of regular expressions together with
// three ways of using them: direct matching by Brzozowski derivatives,
// compilation to an NFA by Thompson-style construction, and from there
// compilation to a minimal DFA matcher.
//
// Expressions are built from the combinators rather than assembled by hand:
// Lit gives a literal (the empty literal is ε), and the Or, Then, and Star
// methods combine expressions. The combinators normalize as they go — unions
// and concatenations flatten, ∅ annihilates concatenation and disappears from
// union, adjacent literals merge — so the algorithms downstream never see a
// degenerate tree.
//
// Each expression exclusively owns its sub-expressions; combinators return
// fresh trees and never mutate their operands.
package re

import (
	"errors"
	"strings"
)

// ErrUnsupported is returned when evaluating a regex feature that is
// represented but deliberately not implemented by any engine. Right now
// that is exactly the CharClass variant.
var ErrUnsupported = errors.New("unsupported regex feature")

// Regex is a node of a regular expression tree. The concrete types are
// Empty, Lit, Cat, Union, Star, and CharClass.
type Regex interface {

	// Or returns a regex matching everything this regex matches plus
	// everything rhs matches.
	Or(rhs Regex) Regex

	// Then returns a regex matching a match for this regex immediately
	// followed by a match for rhs.
	Then(rhs Regex) Regex

	// Star returns the Kleene closure of this regex: zero or more matches in
	// sequence.
	Star() Regex

	// Nullable returns whether the regex matches the empty string.
	Nullable() bool

	// Equal returns whether the regex is structurally identical to o.
	Equal(o any) bool

	// String returns the regex in source-like notation.
	String() string
}

// Empty is the regex matching no string at all; its language is ∅. Note that
// this is not the regex matching the empty string, which is Lit("").
type Empty struct{}

// Lit is a regex matching exactly its value. Lit("") matches the empty
// string, ε.
type Lit string

// Cat is the ordered concatenation of its pieces. Built by Then; always has
// at least two pieces.
type Cat []Regex

// Union is the alternation of its pieces. Built by Or; always has at least
// two pieces.
type Union []Regex

// Star is the Kleene closure of its operand.
type Star struct {
	Sub Regex
}

// CharClass is a reserved variant for character classes. It can be carried
// in a tree but no engine evaluates it; doing so gives ErrUnsupported.
type CharClass struct{}

func or(lhs Regex, rhs Regex) Regex {
	if _, isEmpty := lhs.(Empty); isEmpty {
		return rhs
	}
	if _, isEmpty := rhs.(Empty); isEmpty {
		return lhs
	}

	lhsU, lhsIsUnion := lhs.(Union)
	rhsU, rhsIsUnion := rhs.(Union)

	switch {
	case lhsIsUnion && rhsIsUnion:
		return append(append(Union{}, lhsU...), rhsU...)
	case lhsIsUnion:
		return append(append(Union{}, lhsU...), rhs)
	case rhsIsUnion:
		return append(Union{lhs}, rhsU...)
	default:
		return Union{lhs, rhs}
	}
}

func then(lhs Regex, rhs Regex) Regex {
	if _, isEmpty := lhs.(Empty); isEmpty {
		return Empty{}
	}
	if _, isEmpty := rhs.(Empty); isEmpty {
		return Empty{}
	}

	if lhsLit, ok := lhs.(Lit); ok {
		if rhsLit, ok := rhs.(Lit); ok {
			// adjacent literals merge, so empty literals vanish on their own
			return lhsLit + rhsLit
		}
		if lhsLit == "" {
			return rhs
		}
	}
	if rhsLit, ok := rhs.(Lit); ok && rhsLit == "" {
		return lhs
	}

	lhsC, lhsIsCat := lhs.(Cat)
	rhsC, rhsIsCat := rhs.(Cat)

	var pieces Cat
	switch {
	case lhsIsCat && rhsIsCat:
		pieces = append(append(Cat{}, lhsC...), rhsC...)
	case lhsIsCat:
		pieces = append(append(Cat{}, lhsC...), rhs)
	case rhsIsCat:
		pieces = append(Cat{lhs}, rhsC...)
	default:
		pieces = Cat{lhs, rhs}
	}

	if len(pieces) == 1 {
		return pieces[0]
	}
	return pieces
}

func star(r Regex) Regex {
	switch r.(type) {
	case Empty:
		return Empty{}
	case Star:
		return r
	default:
		return Star{Sub: r}
	}
}

func (r Empty) Or(rhs Regex) Regex     { return or(r, rhs) }
func (r Lit) Or(rhs Regex) Regex       { return or(r, rhs) }
func (r Cat) Or(rhs Regex) Regex       { return or(r, rhs) }
func (r Union) Or(rhs Regex) Regex     { return or(r, rhs) }
func (r Star) Or(rhs Regex) Regex      { return or(r, rhs) }
func (r CharClass) Or(rhs Regex) Regex { return or(r, rhs) }

func (r Empty) Then(rhs Regex) Regex     { return then(r, rhs) }
func (r Lit) Then(rhs Regex) Regex       { return then(r, rhs) }
func (r Cat) Then(rhs Regex) Regex       { return then(r, rhs) }
func (r Union) Then(rhs Regex) Regex     { return then(r, rhs) }
func (r Star) Then(rhs Regex) Regex      { return then(r, rhs) }
func (r CharClass) Then(rhs Regex) Regex { return then(r, rhs) }

func (r Empty) Star() Regex     { return star(r) }
func (r Lit) Star() Regex       { return star(r) }
func (r Cat) Star() Regex       { return star(r) }
func (r Union) Star() Regex     { return star(r) }
func (r Star) Star() Regex      { return star(r) }
func (r CharClass) Star() Regex { return star(r) }

// Nullable: ∅ matches nothing, so in particular not ε.
func (r Empty) Nullable() bool { return false }

// Nullable: a literal is ε exactly when it is empty.
func (r Lit) Nullable() bool { return r == "" }

// Nullable: a concatenation vanishes only if every piece does.
func (r Cat) Nullable() bool {
	for i := range r {
		if !r[i].Nullable() {
			return false
		}
	}
	return true
}

// Nullable: an alternation vanishes if any branch does.
func (r Union) Nullable() bool {
	for i := range r {
		if r[i].Nullable() {
			return true
		}
	}
	return false
}

// Nullable: a Kleene closure always matches zero repetitions.
func (r Star) Nullable() bool { return true }

// Nullable: char classes are placeholders and never vanish.
func (r CharClass) Nullable() bool { return false }

func (r Empty) Equal(o any) bool {
	_, ok := o.(Empty)
	return ok
}

func (r Lit) Equal(o any) bool {
	other, ok := o.(Lit)
	return ok && r == other
}

func (r Cat) Equal(o any) bool {
	other, ok := o.(Cat)
	if !ok || len(r) != len(other) {
		return false
	}
	for i := range r {
		if !r[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (r Union) Equal(o any) bool {
	other, ok := o.(Union)
	if !ok || len(r) != len(other) {
		return false
	}
	for i := range r {
		if !r[i].Equal(other[i]) {
			return false
		}
	}
	return true
}

func (r Star) Equal(o any) bool {
	other, ok := o.(Star)
	return ok && r.Sub.Equal(other.Sub)
}

func (r CharClass) Equal(o any) bool {
	_, ok := o.(CharClass)
	return ok
}

func (r Empty) String() string { return "<EMPTY>" }

func (r Lit) String() string { return string(r) }

func (r Cat) String() string {
	var sb strings.Builder

	for i := range r {
		_, needsParens := r[i].(Union)
		if needsParens {
			sb.WriteRune('(')
		}
		sb.WriteString(r[i].String())
		if needsParens {
			sb.WriteRune(')')
		}
	}

	return sb.String()
}

func (r Union) String() string {
	var sb strings.Builder

	for i := range r {
		if i > 0 {
			sb.WriteRune('|')
		}
		sb.WriteString(r[i].String())
	}

	return sb.String()
}

func (r Star) String() string {
	if _, isLit := r.Sub.(Lit); isLit {
		return r.Sub.String() + "*"
	}
	return "(" + r.Sub.String() + ")*"
}

func (r CharClass) String() string { return "[]" }
