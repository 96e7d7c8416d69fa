package grammar

import "fmt"

// RuleID numbers the alternatives of the rewritten grammar in
// grammar order, starting at 1.
type RuleID int

// RuleIDNil marks an empty table cell: no rule applies, the input is a
// syntax error.
const RuleIDNil = RuleID(0)

// ParseTable is the emitted LL(1) action table: it maps a (nonterminal,
// lookahead terminal) pair to the rule-id to expand, and keeps the LHS
// and RHS of every rule. The table is a self-contained value; it shares
// no state with the builder that produced it.
type ParseTable struct {
	start        Token
	eof          Token
	nonTerminals []Token
	terminals    []Token
	names        map[Token]string
	entries      map[Token]map[Token]RuleID
	ruleLHS      []Token
	ruleRHS      [][]Token
}

func (b *Builder) genParseTable(rules []*rule) (*ParseTable, error) {
	names := make(map[Token]string, len(b.names))
	for tok, name := range b.names {
		names[tok] = name
	}
	tab := &ParseTable{
		start:        b.start,
		eof:          b.eof,
		nonTerminals: b.nonTerminals.Tokens(),
		terminals:    b.terminals.Tokens(),
		names:        names,
		entries:      map[Token]map[Token]RuleID{},
		ruleLHS:      make([]Token, len(rules)+1),
		ruleRHS:      make([][]Token, len(rules)+1),
	}
	for _, n := range tab.nonTerminals {
		tab.entries[n] = map[Token]RuleID{}
	}

	for _, r := range rules {
		tab.ruleLHS[r.id] = r.lhs
		tab.ruleRHS[r.id] = append([]Token{}, r.rhs...)
		row := tab.entries[r.lhs]
		for _, t := range b.predicts[r.id].Tokens() {
			if prev, ok := row[t]; ok && prev != r.id {
				return nil, fmt.Errorf("%w: cell (%v, %v) is claimed by both rule %v and rule %v",
					SemErrAmbiguousGrammar, b.displayName(r.lhs), b.displayName(t), prev, r.id)
			}
			row[t] = r.id
		}
	}
	return tab, nil
}

// RestoreParseTable reassembles a table from its serialized parts. The
// slices and maps become the table's own; callers must not reuse them.
func RestoreParseTable(start, eof Token, nonTerminals, terminals []Token, names map[Token]string, ruleLHS []Token, ruleRHS [][]Token, entries map[Token]map[Token]RuleID) *ParseTable {
	return &ParseTable{
		start:        start,
		eof:          eof,
		nonTerminals: nonTerminals,
		terminals:    terminals,
		names:        names,
		entries:      entries,
		ruleLHS:      ruleLHS,
		ruleRHS:      ruleRHS,
	}
}

func (t *ParseTable) StartRule() Token {
	return t.start
}

func (t *ParseTable) EOFToken() Token {
	return t.eof
}

// NonTerminals returns the nonterminals in declaration order, fresh
// ones last. The slice is the table's own.
func (t *ParseTable) NonTerminals() []Token {
	return t.nonTerminals
}

// Terminals returns the terminals in declaration order, including the
// EOF terminal.
func (t *ParseTable) Terminals() []Token {
	return t.terminals
}

// Lookup returns the rule to expand for nonTerm under the lookahead
// term, or RuleIDNil when the cell is empty.
func (t *ParseTable) Lookup(nonTerm, term Token) RuleID {
	row, ok := t.entries[nonTerm]
	if !ok {
		return RuleIDNil
	}
	return row[term]
}

func (t *ParseTable) RuleCount() int {
	return len(t.ruleLHS) - 1
}

// LHS returns the left-hand side of a rule, or TokenEpsilon when the
// rule-id is out of range.
func (t *ParseTable) LHS(id RuleID) Token {
	if id <= RuleIDNil || int(id) >= len(t.ruleLHS) {
		return TokenEpsilon
	}
	return t.ruleLHS[id]
}

// RHS returns the right-hand side bound to a rule-id; nil for
// RuleIDNil and out-of-range ids. The slice is the table's own.
func (t *ParseTable) RHS(id RuleID) []Token {
	if id <= RuleIDNil || int(id) >= len(t.ruleRHS) {
		return nil
	}
	return t.ruleRHS[id]
}

// ExpectedTerminals returns, in terminal declaration order, the
// lookaheads that have a rule for nonTerm. The driver reports these on
// a syntax error.
func (t *ParseTable) ExpectedTerminals(nonTerm Token) []Token {
	var expected []Token
	for _, term := range t.terminals {
		if t.Lookup(nonTerm, term) != RuleIDNil {
			expected = append(expected, term)
		}
	}
	return expected
}

// EachEntry visits every non-empty cell, rows in nonterminal order and
// columns in terminal order.
func (t *ParseTable) EachEntry(f func(nonTerm, term Token, id RuleID)) {
	for _, n := range t.nonTerminals {
		for _, term := range t.terminals {
			if id := t.Lookup(n, term); id != RuleIDNil {
				f(n, term, id)
			}
		}
	}
}

// TokenName returns the display name of a token, falling back to the
// compact numeric form for unknown tokens.
func (t *ParseTable) TokenName(tok Token) string {
	if tok.IsEpsilon() {
		return "eps"
	}
	if name, ok := t.names[tok]; ok {
		return name
	}
	return tok.String()
}
