package grammar

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// sample CFG comes from https://youtu.be/vrWr_5Yk1OA?t=2187
// 0 == b
// 1 == a
func sampleSetsGrammar(t *testing.T) Cfg {
	g, err := New("Start", []Rule{
		{Var: "Start", Alts: []Seq{
			{Var("A")},
			{Var("B")},
		}},
		{Var: "A", Alts: []Seq{
			{Token(0)},
		}},
		{Var: "B", Alts: []Seq{
			{Var("B"), Var("A"), Var("C"), Token(0)},
			{Token(1)},
		}},
		{Var: "C", Alts: []Seq{
			{Var("A"), Var("D")},
			{Epsilon},
		}},
		{Var: "D", Alts: []Seq{
			{Var("B"), Var("C")},
			{Token(0), Var("C")},
		}},
	})
	if err != nil {
		t.Fatalf("building grammar: %v", err)
	}
	return g
}

func Test_FirstSets(t *testing.T) {
	assert := assert.New(t)

	g := sampleSetsGrammar(t)

	first := g.FirstSets()

	assert.ElementsMatch([]Token{0, 1}, first["Start"].Elements())
	assert.ElementsMatch([]Token{0}, first["A"].Elements())
	assert.ElementsMatch([]Token{1}, first["B"].Elements())
	assert.ElementsMatch([]Token{0, Epsilon}, first["C"].Elements())
	assert.ElementsMatch([]Token{0, 1}, first["D"].Elements())
}

func Test_FollowSets(t *testing.T) {
	assert := assert.New(t)

	g := sampleSetsGrammar(t)

	first := g.FirstSets()
	follow := g.FollowSets(first)

	assert.ElementsMatch([]Token{EOF}, follow["Start"].Elements())
	assert.ElementsMatch([]Token{EOF, 0, 1}, follow["A"].Elements())
	assert.ElementsMatch([]Token{EOF, 0}, follow["B"].Elements())
	assert.ElementsMatch([]Token{0}, follow["C"].Elements())
	assert.ElementsMatch([]Token{0}, follow["D"].Elements())
}

func Test_FirstSets_epsilonOnlyWhenFullyErasable(t *testing.T) {
	assert := assert.New(t)

	g, err := New("S", []Rule{
		{Var: "S", Alts: []Seq{{Var("A"), Var("B")}}},
		{Var: "A", Alts: []Seq{{Var("C")}, {Epsilon}}},
		{Var: "B", Alts: []Seq{{Token(0)}}},
		{Var: "C", Alts: []Seq{{Var("D"), Token(0)}}},
		{Var: "D", Alts: []Seq{{Epsilon}}},
	})
	if !assert.NoError(err) {
		return
	}

	first := g.FirstSets()

	assert.True(first["D"].Has(Epsilon))
	assert.False(first["C"].Has(Epsilon))
	assert.False(first["S"].Has(Epsilon))
}

func Test_FirstPlus(t *testing.T) {
	assert := assert.New(t)

	// S -> F | ( S + F ) ; F -> a, with a=0 (=1 )=2 +=3
	g, err := New("S", []Rule{
		{Var: "S", Alts: []Seq{
			{Var("F")},
			{Token(1), Var("S"), Token(3), Var("F"), Token(2)},
		}},
		{Var: "F", Alts: []Seq{{Token(0)}}},
	})
	if !assert.NoError(err) {
		return
	}

	first := g.FirstSets()
	follow := g.FollowSets(first)

	fp1 := g.FirstPlus("S", g.Alternatives("S")[0], first, follow)
	fp2 := g.FirstPlus("S", g.Alternatives("S")[1], first, follow)

	assert.ElementsMatch([]Token{0}, fp1.Elements())
	assert.ElementsMatch([]Token{1}, fp2.Elements())
}

func Test_Cfg_Validate(t *testing.T) {
	testCases := []struct {
		name      string
		start     Var
		rules     []Rule
		expectErr bool
	}{
		{
			name:  "well-formed grammar",
			start: "S",
			rules: []Rule{
				{Var: "S", Alts: []Seq{{Token(0)}}},
			},
		},
		{
			name:  "start variable has no rule",
			start: "S",
			rules: []Rule{
				{Var: "T", Alts: []Seq{{Token(0)}}},
			},
			expectErr: true,
		},
		{
			name:  "body refers to ruleless variable",
			start: "S",
			rules: []Rule{
				{Var: "S", Alts: []Seq{{Var("Ghost")}}},
			},
			expectErr: true,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert := assert.New(t)

			_, err := New(tc.start, tc.rules)

			if tc.expectErr {
				assert.Error(err)
			} else {
				assert.NoError(err)
			}
		})
	}
}
