package driver

import (
	"errors"
	"strings"
	"testing"

	"github.com/kagehara/lltab/grammar"
)

// buildAdditionTable builds E -> E + E | P; P -> 1 into a table. The
// build rewrites it to E -> P F; P -> 1; F -> + P F | eps with F=3.
func buildAdditionTable(t *testing.T) *grammar.ParseTable {
	t.Helper()

	b := grammar.NewBuilder()
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
		lhs grammar.Token
		rhs []grammar.Token
	}{
		{lhs: 1, rhs: []grammar.Token{1, -2, 1}},
		{lhs: 1, rhs: []grammar.Token{2}},
		{lhs: 2, rhs: []grammar.Token{-3}},
	} {
		if err := b.AddRule(r.lhs, r.rhs); err != nil {
			t.Fatal(err)
		}
	}
	tab, err := b.Build()
	if err != nil {
		t.Fatal(err)
	}
	return tab
}

func TestParserBuildsATree(t *testing.T) {
	tab := buildAdditionTable(t)
	p := NewParser(tab, NewSliceTokenStream([]*Token{
		{Kind: -3, Text: "1"},
		{Kind: -2, Text: "+"},
		{Kind: -3, Text: "1"},
	}))

	root, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}

	if root.Token != 1 || len(root.Children) != 2 {
		t.Fatalf("unexpected root; got: %v with %v children", root.KindName, len(root.Children))
	}

	primary := root.Children[0]
	if primary.Token != 2 || len(primary.Children) != 1 {
		t.Fatalf("unexpected first child; got: %v", primary.KindName)
	}
	if leaf := primary.Children[0]; leaf.Token != -3 || leaf.Text != "1" {
		t.Fatalf("unexpected leaf; got: %v %q", leaf.KindName, leaf.Text)
	}

	cont := root.Children[1]
	if cont.Token != 3 || len(cont.Children) != 3 {
		t.Fatalf("unexpected continuation; got: %v with %v children", cont.KindName, len(cont.Children))
	}
	if op := cont.Children[0]; op.Token != -2 || op.Text != "+" {
		t.Fatalf("unexpected operator leaf; got: %v %q", op.KindName, op.Text)
	}

	// The second continuation is empty and closes with an epsilon node.
	tail := cont.Children[2]
	if len(tail.Children) != 1 || !tail.Children[0].Token.IsEpsilon() {
		t.Fatalf("the empty continuation must expand to epsilon; got: %v", tail.Children)
	}
}

func TestParserReportsSyntaxErrors(t *testing.T) {
	tests := []struct {
		caption  string
		toks     []*Token
		expected string
	}{
		{
			caption:  "a non-viable lookahead",
			toks:     []*Token{{Kind: -2, Text: "+"}},
			expected: "one",
		},
		{
			caption:  "input ends too early",
			toks:     nil,
			expected: "one",
		},
		{
			caption: "trailing input after the sentence",
			toks: []*Token{
				{Kind: -3, Text: "1"},
				{Kind: -3, Text: "1"},
			},
			expected: "<eof>",
		},
	}
	for _, tt := range tests {
		t.Run(tt.caption, func(t *testing.T) {
			tab := buildAdditionTable(t)
			p := NewParser(tab, NewSliceTokenStream(tt.toks))

			_, err := p.Parse()
			var synErr *SyntaxError
			if !errors.As(err, &synErr) {
				t.Fatalf("want a syntax error, got: %v", err)
			}
			found := false
			for _, name := range synErr.Expected {
				if name == tt.expected {
					found = true
				}
			}
			if !found {
				t.Fatalf("the error must expect %v; got: %v", tt.expected, synErr.Expected)
			}
		})
	}
}

func TestPrintTree(t *testing.T) {
	tab := buildAdditionTable(t)
	p := NewParser(tab, NewSliceTokenStream([]*Token{
		{Kind: -3, Text: "1"},
	}))
	root, err := p.Parse()
	if err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	PrintTree(&b, root)
	out := b.String()
	if !strings.Contains(out, "E") || !strings.Contains(out, `"1"`) {
		t.Fatalf("unexpected tree output:\n%v", out)
	}
}
