package parse

import "github.com/dekarrin/chef/grammar"

// TokenStream is a finite stream of tokens for a parser to consume. The
// stream may be lazily-loaded or immediately available. End of input is
// signaled by HasNext returning false; there is no in-band EOF token.
type TokenStream interface {
	// Next returns the next token in the stream and advances the stream by
	// one token. Panics if the stream has no more tokens.
	Next() grammar.Token

	// Peek returns the next token in the stream without advancing the
	// stream. Panics if the stream has no more tokens.
	Peek() grammar.Token

	// HasNext returns whether the stream has any additional tokens.
	HasNext() bool
}

// NewTokenStream returns a TokenStream over the given already-read tokens.
func NewTokenStream(tokens ...grammar.Token) TokenStream {
	buf := make([]grammar.Token, len(tokens))
	copy(buf, tokens)
	return &sliceTokenStream{tokens: buf}
}

type sliceTokenStream struct {
	tokens []grammar.Token
	cur    int
}

func (ts *sliceTokenStream) Next() grammar.Token {
	if !ts.HasNext() {
		panic("Next called on empty token stream")
	}
	tok := ts.tokens[ts.cur]
	ts.cur++
	return tok
}

func (ts *sliceTokenStream) Peek() grammar.Token {
	if !ts.HasNext() {
		panic("Peek called on empty token stream")
	}
	return ts.tokens[ts.cur]
}

func (ts *sliceTokenStream) HasNext() bool {
	return ts.cur < len(ts.tokens)
}
