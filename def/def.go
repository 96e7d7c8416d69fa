// Package def loads TOML grammar-definition files and lowers them onto
// a grammar builder.
//
// A definition names its symbols and writes rules against those names:
//
//	name = "addition"
//
//	[[terminals]]
//	name = "plus"
//
//	[[terminals]]
//	name = "one"
//
//	[[nonterminals]]
//	name = "expr"
//
//	[[rules]]
//	lhs = "expr"
//	rhs = ["expr", "plus", "expr"]
//
// Token numbers may be given explicitly per symbol; symbols without one
// are numbered automatically. An empty rhs list declares an epsilon
// alternative.
package def

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
	derr "github.com/kagehara/lltab/error"
	"github.com/kagehara/lltab/grammar"
)

type GrammarDef struct {
	Name         string      `toml:"name"`
	Start        string      `toml:"start"`
	EOF          string      `toml:"eof"`
	Terminals    []SymbolDef `toml:"terminals"`
	NonTerminals []SymbolDef `toml:"nonterminals"`
	Rules        []RuleDef   `toml:"rules"`
}

type SymbolDef struct {
	Name  string `toml:"name"`
	Token int    `toml:"token"`
}

type RuleDef struct {
	LHS string   `toml:"lhs"`
	RHS []string `toml:"rhs"`
}

// Load reads a definition file. Errors carry the file path so the CLI
// can echo the offending line.
func Load(path string) (*GrammarDef, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	d, err := Parse(f)
	if err != nil {
		var de *derr.DefError
		if errors.As(err, &de) {
			de.Path = path
			return nil, err
		}
		return nil, &derr.DefError{
			Cause: err,
			Path:  path,
		}
	}
	return d, nil
}

func Parse(r io.Reader) (*GrammarDef, error) {
	d := &GrammarDef{}
	if _, err := toml.NewDecoder(r).Decode(d); err != nil {
		var pe toml.ParseError
		if errors.As(err, &pe) {
			return nil, &derr.DefError{
				Cause: err,
				Line:  pe.Position.Line,
			}
		}
		return nil, err
	}
	if d.Name == "" {
		return nil, &derr.DefError{
			Cause: fmt.Errorf("a grammar definition needs a name"),
		}
	}
	return d, nil
}

// Builder lowers the definition onto a fresh grammar builder: symbols
// are declared, the EOF and start configuration is applied, and every
// rule is registered with its names resolved to tokens. Errors are
// returned as DefErrors without a path or line; the cause stays
// reachable through errors.Is.
func (d *GrammarDef) Builder() (_ *grammar.Builder, retErr error) {
	defer func() {
		if retErr != nil {
			retErr = &derr.DefError{
				Cause: retErr,
			}
		}
	}()

	b := grammar.NewBuilder()

	used := map[grammar.Token]bool{
		grammar.TokenEOFDefault: true,
	}
	for _, s := range d.Terminals {
		if s.Token != 0 {
			used[grammar.Token(s.Token)] = true
		}
	}
	for _, s := range d.NonTerminals {
		if s.Token != 0 {
			used[grammar.Token(s.Token)] = true
		}
	}

	nextTerm := grammar.Token(-2)
	nextNonTerm := grammar.Token(1)
	names := map[string]grammar.Token{}

	for _, s := range d.Terminals {
		if s.Name == "" {
			return nil, fmt.Errorf("a terminal needs a name")
		}
		if _, ok := names[s.Name]; ok {
			return nil, fmt.Errorf("duplicate symbol name: %v", s.Name)
		}
		tok := grammar.Token(s.Token)
		if tok == grammar.TokenEpsilon {
			for used[nextTerm] {
				nextTerm--
			}
			tok = nextTerm
			used[tok] = true
		}
		if err := b.AddTerminal(s.Name, tok); err != nil {
			return nil, err
		}
		names[s.Name] = tok
	}

	for _, s := range d.NonTerminals {
		if s.Name == "" {
			return nil, fmt.Errorf("a nonterminal needs a name")
		}
		if _, ok := names[s.Name]; ok {
			return nil, fmt.Errorf("duplicate symbol name: %v", s.Name)
		}
		tok := grammar.Token(s.Token)
		if tok == grammar.TokenEpsilon {
			for used[nextNonTerm] {
				nextNonTerm++
			}
			tok = nextNonTerm
			used[tok] = true
		}
		if err := b.AddNonTerminal(s.Name, tok); err != nil {
			return nil, err
		}
		names[s.Name] = tok
	}

	if d.EOF != "" {
		tok, ok := names[d.EOF]
		if !ok {
			return nil, fmt.Errorf("%w: EOF symbol %v", grammar.SemErrUndeclaredToken, d.EOF)
		}
		if err := b.SetEOFToken(tok); err != nil {
			return nil, err
		}
	}
	if d.Start != "" {
		tok, ok := names[d.Start]
		if !ok {
			return nil, fmt.Errorf("%w: start symbol %v", grammar.SemErrUndeclaredToken, d.Start)
		}
		if err := b.SetStartRule(tok); err != nil {
			return nil, err
		}
	}

	for _, r := range d.Rules {
		lhs, ok := names[r.LHS]
		if !ok {
			return nil, fmt.Errorf("%w: LHS %v", grammar.SemErrUndeclaredToken, r.LHS)
		}
		var rhs []grammar.Token
		if len(r.RHS) == 0 {
			rhs = []grammar.Token{grammar.TokenEpsilon}
		} else {
			for _, name := range r.RHS {
				tok, ok := names[name]
				if !ok {
					return nil, fmt.Errorf("%w: %v in a rule for %v", grammar.SemErrUndeclaredToken, name, r.LHS)
				}
				rhs = append(rhs, tok)
			}
		}
		if err := b.AddRule(lhs, rhs); err != nil {
			return nil, err
		}
	}

	return b, nil
}
