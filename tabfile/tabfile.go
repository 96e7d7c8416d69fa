// Package tabfile defines the JSON file format for a compiled parse
// table and converts between it and the in-memory table.
package tabfile

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/kagehara/lltab/compressor"
	"github.com/kagehara/lltab/grammar"
)

type SymbolEntry struct {
	Name  string `json:"name"`
	Token int    `json:"token"`
}

// CompiledTable is the serialized form of a built parse table. The cell
// matrix is stored row-collapsed (nonterminals in declaration order by
// terminals in declaration order); rule 0 slots in the per-rule slices
// are placeholders for the reserved error rule.
type CompiledTable struct {
	Name         string               `json:"name"`
	Start        int                  `json:"start"`
	EOF          int                  `json:"eof"`
	Terminals    []SymbolEntry        `json:"terminals"`
	NonTerminals []SymbolEntry        `json:"non_terminals"`
	LHSSymbols   []int                `json:"lhs_symbols"`
	Alternatives [][]int              `json:"alternatives"`
	Cells        *compressor.RowTable `json:"cells"`
}

// FromParseTable flattens and compresses a built table.
func FromParseTable(name string, tab *grammar.ParseTable) (*CompiledTable, error) {
	nonTerms := tab.NonTerminals()
	terms := tab.Terminals()

	ct := &CompiledTable{
		Name:  name,
		Start: int(tab.StartRule()),
		EOF:   int(tab.EOFToken()),
	}
	for _, t := range terms {
		ct.Terminals = append(ct.Terminals, SymbolEntry{Name: tab.TokenName(t), Token: int(t)})
	}
	for _, n := range nonTerms {
		ct.NonTerminals = append(ct.NonTerminals, SymbolEntry{Name: tab.TokenName(n), Token: int(n)})
	}

	ct.LHSSymbols = make([]int, tab.RuleCount()+1)
	ct.Alternatives = make([][]int, tab.RuleCount()+1)
	ct.Alternatives[0] = []int{}
	for id := grammar.RuleID(1); int(id) <= tab.RuleCount(); id++ {
		ct.LHSSymbols[id] = int(tab.LHS(id))
		alt := make([]int, 0, len(tab.RHS(id)))
		for _, tok := range tab.RHS(id) {
			alt = append(alt, int(tok))
		}
		ct.Alternatives[id] = alt
	}

	rows := make([][]int, 0, len(nonTerms))
	for _, n := range nonTerms {
		row := make([]int, 0, len(terms))
		for _, t := range terms {
			row = append(row, int(tab.Lookup(n, t)))
		}
		rows = append(rows, row)
	}
	cells, err := compressor.CompressRows(rows)
	if err != nil {
		return nil, err
	}
	ct.Cells = cells
	return ct, nil
}

// ParseTable reassembles the in-memory table.
func (ct *CompiledTable) ParseTable() (*grammar.ParseTable, error) {
	if ct.Cells == nil {
		return nil, fmt.Errorf("the table file carries no cells")
	}

	names := map[grammar.Token]string{}
	terms := make([]grammar.Token, len(ct.Terminals))
	for i, e := range ct.Terminals {
		terms[i] = grammar.Token(e.Token)
		names[terms[i]] = e.Name
	}
	nonTerms := make([]grammar.Token, len(ct.NonTerminals))
	for i, e := range ct.NonTerminals {
		nonTerms[i] = grammar.Token(e.Token)
		names[nonTerms[i]] = e.Name
	}

	ruleLHS := make([]grammar.Token, len(ct.LHSSymbols))
	for id, lhs := range ct.LHSSymbols {
		ruleLHS[id] = grammar.Token(lhs)
	}
	ruleRHS := make([][]grammar.Token, len(ct.Alternatives))
	for id, alt := range ct.Alternatives {
		if id == 0 {
			continue
		}
		rhs := make([]grammar.Token, len(alt))
		for i, tok := range alt {
			rhs[i] = grammar.Token(tok)
		}
		ruleRHS[id] = rhs
	}

	entries := map[grammar.Token]map[grammar.Token]grammar.RuleID{}
	for row, n := range nonTerms {
		cells := map[grammar.Token]grammar.RuleID{}
		for col, t := range terms {
			v, err := ct.Cells.At(row, col)
			if err != nil {
				return nil, err
			}
			if v != 0 {
				cells[t] = grammar.RuleID(v)
			}
		}
		entries[n] = cells
	}

	return grammar.RestoreParseTable(
		grammar.Token(ct.Start), grammar.Token(ct.EOF),
		nonTerms, terms, names, ruleLHS, ruleRHS, entries,
	), nil
}

func Write(w io.Writer, ct *CompiledTable) error {
	out, err := json.Marshal(ct)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

func Read(r io.Reader) (*CompiledTable, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	ct := &CompiledTable{}
	if err := json.Unmarshal(data, ct); err != nil {
		return nil, err
	}
	return ct, nil
}
