package grammar

import "github.com/dekarrin/chef/internal/util"

// The FIRST and FOLLOW sets are the least fixed points of monotone functions
// on token sets, so both computations below run full passes over every rule
// until a pass makes no set grow. Termination is guaranteed because sets only
// ever grow and the token universe is finite.

// FirstSets computes FIRST(v) for every variable of the grammar: the tokens
// that can begin a string derived from v, plus Epsilon if v can derive the
// empty string.
func (cfg Cfg) FirstSets() map[Var]TokenSet {
	first := map[Var]TokenSet{}
	for _, v := range cfg.Vars() {
		first[v] = util.NewKeySet[Token]()
	}

	updated := true
	for updated {
		updated = false

		for _, v := range cfg.Vars() {
			for _, alt := range cfg.Alternatives(v) {
				before := first[v].Len()

				allErasable := true
				for _, el := range alt {
					if done := addFirstOfElement(first[v], el, first); done {
						allErasable = false
						break
					}
				}
				if allErasable {
					first[v].Add(Epsilon)
				}

				if first[v].Len() > before {
					updated = true
				}
			}
		}
	}

	return first
}

// addFirstOfElement adds the FIRST contribution of a single element of a
// production body to dest, and returns whether the scan of the body should
// stop at this element (because it cannot be erased).
func addFirstOfElement(dest TokenSet, el Element, first map[Var]TokenSet) (stop bool) {
	switch x := el.(type) {
	case Token:
		if x == Epsilon {
			// an explicit ε erases itself; keep scanning
			return false
		}
		dest.Add(x)
		return true
	case Var:
		for _, t := range first[x].Elements() {
			if t != Epsilon {
				dest.Add(t)
			}
		}
		return !first[x].Has(Epsilon)
	default:
		panic("unknown element type in production body")
	}
}

// FollowSets computes FOLLOW(v) for every variable of the grammar: the tokens
// that can appear immediately after a string derived from v in some
// derivation from the start variable. FOLLOW of the start variable contains
// EOF; no FOLLOW set ever contains Epsilon.
//
// first must be the result of FirstSets on the same grammar.
func (cfg Cfg) FollowSets(first map[Var]TokenSet) map[Var]TokenSet {
	follow := map[Var]TokenSet{}
	for _, v := range cfg.Vars() {
		follow[v] = util.NewKeySet[Token]()
	}
	follow[cfg.Start()].Add(EOF)

	updated := true
	for updated {
		updated = false

		for _, v := range cfg.Vars() {
			for _, alt := range cfg.Alternatives(v) {
				for i, el := range alt {
					u, isVar := el.(Var)
					if !isVar {
						continue
					}

					before := follow[u].Len()

					// walk the suffix β after this occurrence of u; if all of
					// it can erase, whatever follows v can follow u too
					erasableSuffix := true
					for _, suffixEl := range alt[i+1:] {
						if done := addFirstOfElement(follow[u], suffixEl, first); done {
							erasableSuffix = false
							break
						}
					}
					if erasableSuffix {
						follow[u].AddAll(follow[v])
					}

					if follow[u].Len() > before {
						updated = true
					}
				}
			}
		}
	}

	return follow
}

// FirstPlus computes FIRST⁺(v → alt), the set of lookahead tokens on which an
// LL(1) parser should choose this alternative: the FIRST set of the
// alternative's body, plus FOLLOW(v) if the whole body can erase. Epsilon is
// never in the result.
//
// first and follow must be the results of FirstSets and FollowSets on the
// same grammar.
func (cfg Cfg) FirstPlus(v Var, alt Seq, first map[Var]TokenSet, follow map[Var]TokenSet) TokenSet {
	result := util.NewKeySet[Token]()

	erasable := true
	for _, el := range alt {
		if done := addFirstOfElement(result, el, first); done {
			erasable = false
			break
		}
	}
	if erasable {
		result.AddAll(follow[v])
	}

	return result
}
