package grammar

import (
	"errors"
	"testing"
)

func TestGenParseTable(t *testing.T) {
	t.Run("a plain grammar is poured into the table unchanged", func(t *testing.T) {
		b := newSequenceGrammar(t)
		tab, err := b.Build()
		if err != nil {
			t.Fatal(err)
		}

		if tab.RuleCount() != 5 {
			t.Fatalf("unexpected rule count; want: 5, got: %v", tab.RuleCount())
		}

		cells := []struct {
			nonTerm Token
			term    Token
			want    RuleID
		}{
			{nonTerm: 1, term: -2, want: 1},
			{nonTerm: 1, term: -3, want: 1},
			{nonTerm: 1, term: -4, want: 1},
			{nonTerm: 2, term: -2, want: 2},
			{nonTerm: 2, term: -3, want: 3},
			{nonTerm: 2, term: -4, want: 3},
			{nonTerm: 3, term: -3, want: 4},
			{nonTerm: 3, term: -4, want: 5},
			// everything else is the error cell
			{nonTerm: 1, term: TokenEOFDefault, want: RuleIDNil},
			{nonTerm: 2, term: TokenEOFDefault, want: RuleIDNil},
			{nonTerm: 3, term: -2, want: RuleIDNil},
			{nonTerm: 3, term: TokenEOFDefault, want: RuleIDNil},
		}
		for _, c := range cells {
			if got := tab.Lookup(c.nonTerm, c.term); got != c.want {
				t.Errorf("unexpected cell (%v, %v); want: %v, got: %v", c.nonTerm, c.term, c.want, got)
			}
		}

		// The RHS store mirrors the declared alternatives.
		wantRHS := [][]Token{
			nil,
			{2, 3, -4},
			{-2, 2},
			{TokenEpsilon},
			{-3},
			{TokenEpsilon},
		}
		for id := RuleID(1); int(id) <= tab.RuleCount(); id++ {
			rhs := tab.RHS(id)
			if len(rhs) != len(wantRHS[id]) {
				t.Fatalf("unexpected RHS for rule %v; want: %v, got: %v", id, wantRHS[id], rhs)
			}
			for i, tok := range rhs {
				if tok != wantRHS[id][i] {
					t.Fatalf("unexpected RHS for rule %v; want: %v, got: %v", id, wantRHS[id], rhs)
				}
			}
		}
	})

	t.Run("an eliminated recursion yields the expected cells", func(t *testing.T) {
		b := newAdditionGrammar(t)
		tab, err := b.Build()
		if err != nil {
			t.Fatal(err)
		}

		cells := []struct {
			nonTerm Token
			term    Token
			want    RuleID
		}{
			{nonTerm: 1, term: -3, want: 1},              // E, one
			{nonTerm: 2, term: -3, want: 2},              // P, one
			{nonTerm: 3, term: -2, want: 3},              // EPrime, plus
			{nonTerm: 3, term: TokenEOFDefault, want: 4}, // EPrime, EOF
			{nonTerm: 1, term: -2, want: RuleIDNil},
			{nonTerm: 2, term: TokenEOFDefault, want: RuleIDNil},
		}
		for _, c := range cells {
			if got := tab.Lookup(c.nonTerm, c.term); got != c.want {
				t.Errorf("unexpected cell (%v, %v); want: %v, got: %v", c.nonTerm, c.term, c.want, got)
			}
		}
	})

	t.Run("factoring after elimination yields the expected cells", func(t *testing.T) {
		b := newDoubledAdditionGrammar(t)
		tab, err := b.Build()
		if err != nil {
			t.Fatal(err)
		}

		cells := []struct {
			nonTerm Token
			term    Token
			want    RuleID
		}{
			{nonTerm: 3, term: TokenEOFDefault, want: 3}, // F, EOF
			{nonTerm: 3, term: -2, want: 4},              // F, plus
			{nonTerm: 4, term: -3, want: 5},              // G, one
			{nonTerm: 4, term: -2, want: 6},              // G, plus
		}
		for _, c := range cells {
			if got := tab.Lookup(c.nonTerm, c.term); got != c.want {
				t.Errorf("unexpected cell (%v, %v); want: %v, got: %v", c.nonTerm, c.term, c.want, got)
			}
		}
	})

	t.Run("a FIRST/FOLLOW overlap is reported as ambiguity", func(t *testing.T) {
		b := NewBuilder()
		if err := b.AddTerminal("a", -2); err != nil {
			t.Fatal(err)
		}
		if err := b.AddNonTerminal("S", 1); err != nil {
			t.Fatal(err)
		}
		if err := b.AddNonTerminal("A", 2); err != nil {
			t.Fatal(err)
		}
		// S -> A a; A -> a | eps: both rules of A predict on a.
		if err := b.AddRule(1, []Token{2, -2}); err != nil {
			t.Fatal(err)
		}
		if err := b.AddRule(2, []Token{-2}); err != nil {
			t.Fatal(err)
		}
		if err := b.AddRule(2, []Token{TokenEpsilon}); err != nil {
			t.Fatal(err)
		}

		_, err := b.Build()
		if !errors.Is(err, SemErrAmbiguousGrammar) {
			t.Fatalf("want: %v, got: %v", SemErrAmbiguousGrammar, err)
		}
	})

	t.Run("a cell is occupied exactly when a rule predicts it", func(t *testing.T) {
		b := newSequenceGrammar(t)
		tab, err := b.Build()
		if err != nil {
			t.Fatal(err)
		}

		for _, n := range tab.NonTerminals() {
			for _, term := range tab.Terminals() {
				var want RuleID
				for id := RuleID(1); int(id) <= tab.RuleCount(); id++ {
					if tab.LHS(id) != n {
						continue
					}
					predict, _ := b.Predict(id)
					if predict.Contains(term) {
						want = id
						break
					}
				}
				if got := tab.Lookup(n, term); got != want {
					t.Errorf("coverage mismatch at (%v, %v); want: %v, got: %v", n, term, want, got)
				}
			}
		}
	})

	t.Run("ordered iteration visits rows in nonterminal order", func(t *testing.T) {
		b := newSequenceGrammar(t)
		tab, err := b.Build()
		if err != nil {
			t.Fatal(err)
		}

		var visited []Token
		tab.EachEntry(func(nonTerm, term Token, id RuleID) {
			if id == RuleIDNil {
				t.Fatalf("EachEntry must skip empty cells")
			}
			visited = append(visited, nonTerm)
		})
		for i := 1; i < len(visited); i++ {
			if visited[i] < visited[i-1] {
				t.Fatalf("rows are out of order: %v", visited)
			}
		}
	})
}
