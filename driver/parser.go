// Package driver runs an LL(1) parse over a table emitted by the
// grammar package. The input arrives pre-tokenized through a
// TokenStream; the driver performs no lexing.
package driver

import (
	"fmt"
	"io"
	"strings"

	"github.com/kagehara/lltab/grammar"
)

// Node is a concrete-syntax-tree node. Terminal nodes carry the lexeme
// of the matched token; an epsilon node marks an empty expansion and
// has neither text nor children.
type Node struct {
	Token    grammar.Token
	KindName string
	Text     string
	Children []*Node
}

// PrintTree writes a parse tree as an indented outline, one node per
// line with ASCII connectors.
func PrintTree(w io.Writer, root *Node) {
	if root == nil {
		return
	}
	writeNode(w, root, "", "")
}

func writeNode(w io.Writer, n *Node, lead, rest string) {
	if n.Text != "" {
		fmt.Fprintf(w, "%v%v %q\n", lead, n.KindName, n.Text)
	} else {
		fmt.Fprintf(w, "%v%v\n", lead, n.KindName)
	}

	for i, child := range n.Children {
		if i == len(n.Children)-1 {
			writeNode(w, child, rest+"`- ", rest+"   ")
		} else {
			writeNode(w, child, rest+"|- ", rest+"|  ")
		}
	}
}

// SyntaxError reports a lookahead no rule accounts for, along with the
// terminals that would have been viable.
type SyntaxError struct {
	Token    *Token
	Expected []string
}

func (e *SyntaxError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "unexpected token: %v", e.Token.Text)
	if e.Token.Text == "" {
		b.Reset()
		fmt.Fprintf(&b, "unexpected end of input")
	}
	if len(e.Expected) > 0 {
		fmt.Fprintf(&b, "; expected: %v", strings.Join(e.Expected, ", "))
	}
	return b.String()
}

type parseFrame struct {
	sym  grammar.Token
	node *Node
}

// Parser is a push-down LL(1) parser. A Parser reads its stream once;
// create a new one per input.
type Parser struct {
	tab    *grammar.ParseTable
	stream TokenStream
}

func NewParser(tab *grammar.ParseTable, stream TokenStream) *Parser {
	return &Parser{
		tab:    tab,
		stream: stream,
	}
}

func (p *Parser) Parse() (*Node, error) {
	start := p.tab.StartRule()
	eof := p.tab.EOFToken()
	root := &Node{
		Token:    start,
		KindName: p.tab.TokenName(start),
	}
	stack := []*parseFrame{
		{sym: eof},
		{sym: start, node: root},
	}

	look, err := p.next()
	if err != nil {
		return nil, err
	}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		if !top.sym.IsNonTerminal() {
			if top.sym != look.Kind {
				return nil, &SyntaxError{
					Token:    look,
					Expected: []string{p.tab.TokenName(top.sym)},
				}
			}
			if top.node != nil {
				top.node.Text = look.Text
			}
			stack = stack[:len(stack)-1]
			if len(stack) == 0 {
				break
			}
			look, err = p.next()
			if err != nil {
				return nil, err
			}
			continue
		}

		id := p.tab.Lookup(top.sym, look.Kind)
		if id == grammar.RuleIDNil {
			var expected []string
			for _, term := range p.tab.ExpectedTerminals(top.sym) {
				expected = append(expected, p.tab.TokenName(term))
			}
			return nil, &SyntaxError{
				Token:    look,
				Expected: expected,
			}
		}

		rhs := p.tab.RHS(id)
		stack = stack[:len(stack)-1]
		children := make([]*Node, len(rhs))
		for i, sym := range rhs {
			children[i] = &Node{
				Token:    sym,
				KindName: p.tab.TokenName(sym),
			}
		}
		top.node.Children = children
		for i := len(rhs) - 1; i >= 0; i-- {
			if rhs[i].IsEpsilon() {
				continue
			}
			stack = append(stack, &parseFrame{
				sym:  rhs[i],
				node: children[i],
			})
		}
	}

	return root, nil
}

func (p *Parser) next() (*Token, error) {
	tok, err := p.stream.Next()
	if err != nil {
		return nil, err
	}
	if tok == nil {
		return &Token{Kind: p.tab.EOFToken()}, nil
	}
	return tok, nil
}
