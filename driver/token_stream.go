package driver

import "github.com/kagehara/lltab/grammar"

// Token is one input token handed to the parser. Kind must be a
// terminal of the grammar the table was built from; Text is the lexeme
// and is kept only for tree output and error messages.
type Token struct {
	Kind grammar.Token
	Text string
}

// TokenStream supplies the input. Implementations return nil once the
// input is exhausted; the parser then substitutes the table's EOF
// terminal, so streams need not emit an explicit end marker.
type TokenStream interface {
	Next() (*Token, error)
}

// SliceTokenStream replays a fixed token sequence.
type SliceTokenStream struct {
	toks []*Token
	pos  int
}

func NewSliceTokenStream(toks []*Token) *SliceTokenStream {
	return &SliceTokenStream{
		toks: toks,
	}
}

func (s *SliceTokenStream) Next() (*Token, error) {
	if s.pos >= len(s.toks) {
		return nil, nil
	}
	tok := s.toks[s.pos]
	s.pos++
	return tok, nil
}
