package re

import "fmt"

// Derivative computes the Brzozowski derivative of the regex with respect to
// c: a regex whose language is every string w such that c·w is in the
// language of r.
//
// Returns ErrUnsupported if the regex contains a CharClass anywhere the
// derivative needs to look.
func Derivative(r Regex, c byte) (Regex, error) {
	switch x := r.(type) {
	case Lit:
		if len(x) > 0 && x[0] == c {
			return x[1:], nil
		}
		return Empty{}, nil

	case Empty:
		return Empty{}, nil

	case Union:
		var result Regex = Empty{}
		for i := range x {
			d, err := Derivative(x[i], c)
			if err != nil {
				return nil, err
			}
			result = result.Or(d)
		}
		return result, nil

	case Cat:
		if len(x) == 0 {
			// not constructible through the combinators, but its language is
			// ε so the derivative is ∅
			return Empty{}, nil
		}

		var rest Regex
		if len(x) == 2 {
			rest = x[1]
		} else {
			rest = Cat(x[1:])
		}

		dHead, err := Derivative(x[0], c)
		if err != nil {
			return nil, err
		}
		result := dHead.Then(rest)

		if x[0].Nullable() {
			dRest, err := Derivative(rest, c)
			if err != nil {
				return nil, err
			}
			result = result.Or(dRest)
		}

		return result, nil

	case Star:
		d, err := Derivative(x.Sub, c)
		if err != nil {
			return nil, err
		}
		return d.Then(x), nil

	case CharClass:
		return nil, fmt.Errorf("%w: cannot take the derivative of a char class", ErrUnsupported)

	default:
		panic(fmt.Sprintf("derivative of unknown regex variant: %T", r))
	}
}

// Matches reports whether the regex matches the entire string, deciding by
// repeated derivatives: fold the derivative over every character of s, then
// check that what remains is nullable.
//
// Returns ErrUnsupported if one of the derivatives taken reaches a CharClass.
func Matches(r Regex, s string) (bool, error) {
	cur := r

	for i := 0; i < len(s); i++ {
		var err error
		cur, err = Derivative(cur, s[i])
		if err != nil {
			return false, err
		}
	}

	return cur.Nullable(), nil
}
