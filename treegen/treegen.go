// Package treegen mirrors a built grammar back into code-shaped
// records: one Go struct per original nonterminal, with the
// nonterminals minted during transformation folded back into the
// records they came from.
package treegen

import (
	"bytes"
	"fmt"
	"go/format"
	"strings"
	"unicode"

	"github.com/kagehara/lltab/grammar"
)

type field struct {
	name  string
	tok   grammar.Token
	count int
}

// GenNodeTypes generates the node-record source for a built grammar.
//
// For each original nonterminal N the record's fields are the distinct
// tokens of N's alternatives, each with multiplicity equal to the
// highest count inside any single alternative. Synthetic nonterminals
// derived from N are inlined: their fields merge into N's by name with
// the counts summed. Epsilon never becomes a field, and a reference to
// a synthetic nonterminal of another record resolves to that record's
// original.
func GenNodeTypes(b *grammar.Builder, pkgName string) ([]byte, error) {
	if pkgName == "" {
		pkgName = "main"
	}

	trans := b.Transformations()
	resolve := func(tok grammar.Token) grammar.Token {
		for {
			orig, ok := trans[tok]
			if !ok {
				return tok
			}
			tok = orig
		}
	}

	var originals []grammar.Token
	groups := map[grammar.Token][]grammar.Token{}
	for _, n := range b.NonTerminals().Tokens() {
		root := resolve(n)
		if root == n {
			originals = append(originals, n)
		}
		groups[root] = append(groups[root], n)
	}

	nodeName := func(tok grammar.Token) string {
		name, _ := b.TokenName(tok)
		return exportedName(name) + "Node"
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "// Code generated by lltab-go. DO NOT EDIT.\n\n")
	fmt.Fprintf(&buf, "package %v\n\n", pkgName)

	for _, orig := range originals {
		var fields []*field
		byName := map[string]*field{}

		for _, member := range groups[orig] {
			prod := findProduction(b, member)
			if prod == nil {
				continue
			}

			memberMax := map[string]int{}
			var memberOrder []string
			for _, alt := range prod.Alternatives() {
				altCount := map[string]int{}
				for _, tok := range alt {
					if tok.IsEpsilon() {
						continue
					}
					ref := tok
					if tok.IsNonTerminal() {
						root := resolve(tok)
						if root == orig && tok != orig {
							// an inlined member of this record
							continue
						}
						ref = root
					}
					name, _ := b.TokenName(ref)
					fname := exportedName(name)
					altCount[fname]++
					if altCount[fname] == 1 && memberMax[fname] == 0 {
						memberOrder = append(memberOrder, fname)
					}
					if f, ok := byName[fname]; !ok {
						f = &field{name: fname, tok: ref}
						byName[fname] = f
						fields = append(fields, f)
					}
					if altCount[fname] > memberMax[fname] {
						memberMax[fname] = altCount[fname]
					}
				}
			}
			for _, fname := range memberOrder {
				byName[fname].count += memberMax[fname]
			}
		}

		fmt.Fprintf(&buf, "// %v mirrors the %v production.\n", nodeName(orig), displayName(b, orig))
		fmt.Fprintf(&buf, "type %v struct {\n", nodeName(orig))
		for _, f := range fields {
			typ := "string"
			if f.tok.IsNonTerminal() {
				typ = "*" + nodeName(f.tok)
			}
			if f.count > 1 {
				typ = fmt.Sprintf("[%v]%v", f.count, typ)
			}
			fmt.Fprintf(&buf, "\t%v %v\n", f.name, typ)
		}
		fmt.Fprintf(&buf, "}\n\n")
	}

	src, err := format.Source(buf.Bytes())
	if err != nil {
		return nil, fmt.Errorf("failed to format the generated source: %w", err)
	}
	return src, nil
}

func findProduction(b *grammar.Builder, lhs grammar.Token) *grammar.Production {
	for _, prod := range b.Productions() {
		if prod.LHS() == lhs {
			return prod
		}
	}
	return nil
}

func displayName(b *grammar.Builder, tok grammar.Token) string {
	name, ok := b.TokenName(tok)
	if !ok {
		return tok.String()
	}
	return name
}

// exportedName turns a symbol name into an exported Go identifier:
// separator runs start a new capitalized segment.
func exportedName(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			upper = true
			continue
		}
		if b.Len() == 0 && unicode.IsDigit(r) {
			b.WriteString("N")
		}
		if upper {
			b.WriteRune(unicode.ToUpper(r))
			upper = false
		} else {
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "X"
	}
	return b.String()
}
