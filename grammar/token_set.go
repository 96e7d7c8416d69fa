package grammar

import (
	"strings"

	"github.com/emirpasic/gods/sets/linkedhashset"
)

// TokenSet is a set of tokens that preserves insertion order. Iteration
// order is the order in which tokens were first added, which makes the
// fixed-point computations reproducible and lets callers compare two
// sets by their element sequences.
type TokenSet struct {
	elems *linkedhashset.Set
}

func NewTokenSet(toks ...Token) *TokenSet {
	s := &TokenSet{
		elems: linkedhashset.New(),
	}
	for _, t := range toks {
		s.elems.Add(t)
	}
	return s
}

// Add inserts tok and reports whether the set changed.
func (s *TokenSet) Add(tok Token) bool {
	if s.elems.Contains(tok) {
		return false
	}
	s.elems.Add(tok)
	return true
}

// AddAll inserts every token of other in other's order and reports
// whether the set changed.
func (s *TokenSet) AddAll(other *TokenSet) bool {
	if other == nil {
		return false
	}
	changed := false
	it := other.elems.Iterator()
	for it.Next() {
		if s.Add(it.Value().(Token)) {
			changed = true
		}
	}
	return changed
}

func (s *TokenSet) Remove(tok Token) {
	s.elems.Remove(tok)
}

func (s *TokenSet) Contains(tok Token) bool {
	return s.elems.Contains(tok)
}

func (s *TokenSet) Size() int {
	return s.elems.Size()
}

// Tokens returns the elements in insertion order.
func (s *TokenSet) Tokens() []Token {
	vals := s.elems.Values()
	toks := make([]Token, len(vals))
	for i, v := range vals {
		toks[i] = v.(Token)
	}
	return toks
}

// Difference returns a new set containing the tokens of s that are not
// in other, keeping s's order.
func (s *TokenSet) Difference(other *TokenSet) *TokenSet {
	d := NewTokenSet()
	it := s.elems.Iterator()
	for it.Next() {
		tok := it.Value().(Token)
		if other != nil && other.Contains(tok) {
			continue
		}
		d.Add(tok)
	}
	return d
}

// Equal reports whether s and other contain the same tokens in the same
// order. The fixed-point loops rely on this to detect quiescence by
// comparing against a pre-iteration clone.
func (s *TokenSet) Equal(other *TokenSet) bool {
	if other == nil || s.Size() != other.Size() {
		return false
	}
	a := s.elems.Iterator()
	b := other.elems.Iterator()
	for a.Next() && b.Next() {
		if a.Value().(Token) != b.Value().(Token) {
			return false
		}
	}
	return true
}

func (s *TokenSet) Clone() *TokenSet {
	c := NewTokenSet()
	c.AddAll(s)
	return c
}

func (s *TokenSet) String() string {
	var b strings.Builder
	b.WriteString("{")
	for i, tok := range s.Tokens() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(tok.String())
	}
	b.WriteString("}")
	return b.String()
}
