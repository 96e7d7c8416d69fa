package grammar

import "testing"

// assertTokenSet checks membership and size, not order; the scenarios
// pin down which tokens a set holds, while order follows the insertion
// sequence of the fixed-point computation.
func assertTokenSet(t *testing.T, label string, got *TokenSet, want []Token) {
	t.Helper()

	if got == nil {
		t.Fatalf("%v: the set was not generated", label)
	}
	if got.Size() != len(want) {
		t.Fatalf("%v: unexpected size; want: %v, got: %v (%v)", label, len(want), got.Size(), got)
	}
	for _, tok := range want {
		if !got.Contains(tok) {
			t.Errorf("%v: a token was not found; want: %v, got: %v", label, tok, got)
		}
	}
}

// assertAlternatives checks a production's alternatives exactly,
// including order.
func assertAlternatives(t *testing.T, prod *Production, want [][]Token) {
	t.Helper()

	if prod == nil {
		t.Fatalf("the production was not found")
	}
	alts := prod.Alternatives()
	if len(alts) != len(want) {
		t.Fatalf("unexpected alternative count for %v; want: %v, got: %v", prod.LHS(), want, alts)
	}
	for i, alt := range alts {
		if len(alt) != len(want[i]) {
			t.Fatalf("unexpected alternative #%v for %v; want: %v, got: %v", i, prod.LHS(), want[i], alt)
		}
		for j, tok := range alt {
			if tok != want[i][j] {
				t.Fatalf("unexpected alternative #%v for %v; want: %v, got: %v", i, prod.LHS(), want[i], alt)
			}
		}
	}
}

// newSequenceGrammar declares A -> B C omega; B -> b B | eps;
// C -> c | eps with terminals b=-2, c=-3, omega=-4 and nonterminals
// A=1, B=2, C=3. It is recursion-free and collision-free, so a build
// leaves the productions untouched.
func newSequenceGrammar(t *testing.T) *Builder {
	t.Helper()

	b := NewBuilder()
	for _, term := range []struct {
		name string
		tok  Token
	}{
		{name: "b", tok: -2},
		{name: "c", tok: -3},
		{name: "omega", tok: -4},
	} {
		if err := b.AddTerminal(term.name, term.tok); err != nil {
			t.Fatal(err)
		}
	}
	for _, nt := range []struct {
		name string
		tok  Token
	}{
		{name: "A", tok: 1},
		{name: "B", tok: 2},
		{name: "C", tok: 3},
	} {
		if err := b.AddNonTerminal(nt.name, nt.tok); err != nil {
			t.Fatal(err)
		}
	}
	for _, r := range []struct {
		lhs Token
		rhs []Token
	}{
		{lhs: 1, rhs: []Token{2, 3, -4}},
		{lhs: 2, rhs: []Token{-2, 2}},
		{lhs: 2, rhs: []Token{TokenEpsilon}},
		{lhs: 3, rhs: []Token{-3}},
		{lhs: 3, rhs: []Token{TokenEpsilon}},
	} {
		if err := b.AddRule(r.lhs, r.rhs); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

// newAdditionGrammar declares E -> E + E | P; P -> 1 with terminals
// plus=-2, one=-3 and nonterminals E=1, P=2. Building it exercises
// left-recursion elimination.
func newAdditionGrammar(t *testing.T) *Builder {
	t.Helper()

	b := NewBuilder()
	if err := b.AddTerminal("plus", -2); err != nil {
		t.Fatal(err)
	}
	if err := b.AddTerminal("one", -3); err != nil {
		t.Fatal(err)
	}
	if err := b.AddNonTerminal("E", 1); err != nil {
		t.Fatal(err)
	}
	if err := b.AddNonTerminal("P", 2); err != nil {
		t.Fatal(err)
	}
	for _, r := range []struct {
		lhs Token
		rhs []Token
	}{
		{lhs: 1, rhs: []Token{1, -2, 1}},
		{lhs: 1, rhs: []Token{2}},
		{lhs: 2, rhs: []Token{-3}},
	} {
		if err := b.AddRule(r.lhs, r.rhs); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

// newDoubledAdditionGrammar is newAdditionGrammar with the extra
// alternative E -> E + + E, which forces a left-factoring pass after
// the recursion is eliminated.
func newDoubledAdditionGrammar(t *testing.T) *Builder {
	t.Helper()

	b := NewBuilder()
	if err := b.AddTerminal("plus", -2); err != nil {
		t.Fatal(err)
	}
	if err := b.AddTerminal("one", -3); err != nil {
		t.Fatal(err)
	}
	if err := b.AddNonTerminal("E", 1); err != nil {
		t.Fatal(err)
	}
	if err := b.AddNonTerminal("P", 2); err != nil {
		t.Fatal(err)
	}
	for _, r := range []struct {
		lhs Token
		rhs []Token
	}{
		{lhs: 1, rhs: []Token{1, -2, 1}},
		{lhs: 1, rhs: []Token{1, -2, -2, 1}},
		{lhs: 1, rhs: []Token{2}},
		{lhs: 2, rhs: []Token{-3}},
	} {
		if err := b.AddRule(r.lhs, r.rhs); err != nil {
			t.Fatal(err)
		}
	}
	return b
}

func findProduction(b *Builder, lhs Token) *Production {
	for _, prod := range b.Productions() {
		if prod.LHS() == lhs {
			return prod
		}
	}
	return nil
}
