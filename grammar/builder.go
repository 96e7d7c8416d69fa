package grammar

import "fmt"

// Builder accumulates a context-free grammar and turns it into an LL(1)
// parse table. Terminals, nonterminals, and rules are registered
// incrementally; Build runs the transformation pipeline.
//
// Build rewrites the stored grammar in place: after it returns, the
// productions are left-recursion-free and left-factored, and the name
// and transformation tables describe the rewritten grammar. Callers
// that need the pristine grammar afterwards must Clone the builder
// before building.
type Builder struct {
	eof             Token
	start           Token
	startExplicit   bool
	terminals       *TokenSet
	nonTerminals    *TokenSet
	names           map[Token]string
	prods           []*Production
	lhs2Prod        map[Token]*Production
	transformations map[Token]Token
	firsts          map[Token]*TokenSet
	follows         map[Token]*TokenSet
	predicts        map[RuleID]*TokenSet
}

func NewBuilder() *Builder {
	return &Builder{
		eof:             TokenEOFDefault,
		terminals:       NewTokenSet(),
		nonTerminals:    NewTokenSet(),
		names:           map[Token]string{},
		lhs2Prod:        map[Token]*Production{},
		transformations: map[Token]Token{},
	}
}

// SetEOFToken changes the end-of-input terminal. The token may, but
// need not, be declared via AddTerminal; an undeclared EOF is
// registered under the reserved name <eof> during Build.
func (b *Builder) SetEOFToken(t Token) error {
	if !t.IsTerminal() {
		return fmt.Errorf("an EOF token must be a terminal; got %v", t)
	}
	b.eof = t
	return nil
}

// SetStartRule changes the start nonterminal. By default the first
// nonterminal added is the start.
func (b *Builder) SetStartRule(n Token) error {
	if !n.IsNonTerminal() {
		return fmt.Errorf("a start rule must be a nonterminal; got %v", n)
	}
	b.start = n
	b.startExplicit = true
	return nil
}

func (b *Builder) AddTerminal(name string, t Token) error {
	if !t.IsTerminal() {
		return fmt.Errorf("a terminal token must be negative; name: %v, token: %v", name, t)
	}
	if b.terminals.Contains(t) {
		return fmt.Errorf("%w: terminal %v (%v)", SemErrDuplicateToken, t, name)
	}
	b.terminals.Add(t)
	b.names[t] = name
	return nil
}

func (b *Builder) AddNonTerminal(name string, n Token) error {
	if !n.IsNonTerminal() {
		return fmt.Errorf("a nonterminal token must be positive; name: %v, token: %v", name, n)
	}
	if b.nonTerminals.Contains(n) {
		return fmt.Errorf("%w: nonterminal %v (%v)", SemErrDuplicateToken, n, name)
	}
	b.nonTerminals.Add(n)
	b.names[n] = name
	if !b.startExplicit && b.start.IsEpsilon() {
		b.start = n
	}
	return nil
}

// AddRule appends a new alternative to the production whose LHS is lhs,
// creating the production if absent. Every token of the alternative
// must be a declared terminal, a declared nonterminal, or epsilon;
// epsilon is only accepted as the sole token.
func (b *Builder) AddRule(lhs Token, rhs []Token) error {
	if !b.nonTerminals.Contains(lhs) {
		return fmt.Errorf("%w: LHS %v", SemErrUndeclaredToken, lhs)
	}
	if len(rhs) == 0 {
		return fmt.Errorf("an alternative must contain at least one token; use epsilon for an empty derivation; LHS: %v", b.displayName(lhs))
	}
	for _, tok := range rhs {
		switch {
		case tok.IsEpsilon():
			if len(rhs) != 1 {
				return fmt.Errorf("%w: LHS: %v", SemErrMisplacedEpsilon, b.displayName(lhs))
			}
		case tok.IsTerminal():
			if !b.terminals.Contains(tok) {
				return fmt.Errorf("%w: terminal %v in a rule for %v", SemErrUndeclaredToken, tok, b.displayName(lhs))
			}
		default:
			if !b.nonTerminals.Contains(tok) {
				return fmt.Errorf("%w: nonterminal %v in a rule for %v", SemErrUndeclaredToken, tok, b.displayName(lhs))
			}
		}
	}

	prod, ok := b.lhs2Prod[lhs]
	if !ok {
		prod = newProduction(lhs)
		b.prods = append(b.prods, prod)
		b.lhs2Prod[lhs] = prod
	}
	prod.addAlternative(append([]Token{}, rhs...))
	return nil
}

// Build runs the pipeline: left-recursion elimination, left-factoring,
// FIRST/FOLLOW/PREDICT computation, and table emission. It mutates the
// stored grammar; see the type comment.
func (b *Builder) Build() (*ParseTable, error) {
	if b.start.IsEpsilon() {
		return nil, fmt.Errorf("%w: no nonterminal was declared", SemErrNoStartRule)
	}
	if _, ok := b.lhs2Prod[b.start]; !ok {
		return nil, fmt.Errorf("%w: start rule: %v", SemErrNoStartRule, b.displayName(b.start))
	}
	if b.terminals.Add(b.eof) {
		if _, ok := b.names[b.eof]; !ok {
			b.names[b.eof] = tokenNameEOF
		}
	}

	b.eliminateLeftRecursion()
	if err := b.checkLeftCornerCycles(); err != nil {
		return nil, err
	}
	b.factorLeft()
	b.genFirstSets()
	b.genFollowSets()
	rules := b.numberRules()
	b.genPredictSets(rules)
	return b.genParseTable(rules)
}

// Clone returns an independent deep copy of the builder, including any
// sets computed by a previous Build.
func (b *Builder) Clone() *Builder {
	c := NewBuilder()
	c.eof = b.eof
	c.start = b.start
	c.startExplicit = b.startExplicit
	c.terminals = b.terminals.Clone()
	c.nonTerminals = b.nonTerminals.Clone()
	for tok, name := range b.names {
		c.names[tok] = name
	}
	for _, prod := range b.prods {
		p := prod.clone()
		c.prods = append(c.prods, p)
		c.lhs2Prod[p.lhs] = p
	}
	for fresh, orig := range b.transformations {
		c.transformations[fresh] = orig
	}
	c.firsts = cloneTokenSetMap(b.firsts)
	c.follows = cloneTokenSetMap(b.follows)
	if b.predicts != nil {
		c.predicts = map[RuleID]*TokenSet{}
		for id, set := range b.predicts {
			c.predicts[id] = set.Clone()
		}
	}
	return c
}

func cloneTokenSetMap(sets map[Token]*TokenSet) map[Token]*TokenSet {
	if sets == nil {
		return nil
	}
	c := map[Token]*TokenSet{}
	for tok, set := range sets {
		c[tok] = set.Clone()
	}
	return c
}

func (b *Builder) EOFToken() Token {
	return b.eof
}

func (b *Builder) StartRule() Token {
	return b.start
}

// Terminals returns the declared terminals in declaration order. The
// returned set is the builder's own; callers must not mutate it.
func (b *Builder) Terminals() *TokenSet {
	return b.terminals
}

// NonTerminals returns the declared nonterminals, including any fresh
// ones minted by Build, in declaration order.
func (b *Builder) NonTerminals() *TokenSet {
	return b.nonTerminals
}

// Productions returns the productions in their canonical order. After
// Build this is the rewritten grammar.
func (b *Builder) Productions() []*Production {
	return b.prods
}

// Transformations maps each fresh nonterminal minted during Build to
// the nonterminal it was derived from.
func (b *Builder) Transformations() map[Token]Token {
	m := make(map[Token]Token, len(b.transformations))
	for fresh, orig := range b.transformations {
		m[fresh] = orig
	}
	return m
}

// First returns the FIRST set of a token. Valid after Build.
func (b *Builder) First(tok Token) (*TokenSet, bool) {
	set, ok := b.firsts[tok]
	return set, ok
}

// Follow returns the FOLLOW set of a nonterminal. Valid after Build.
func (b *Builder) Follow(n Token) (*TokenSet, bool) {
	set, ok := b.follows[n]
	return set, ok
}

// Predict returns the PREDICT set of a rule-id. Valid after Build.
func (b *Builder) Predict(id RuleID) (*TokenSet, bool) {
	set, ok := b.predicts[id]
	return set, ok
}

// TokenName returns the display name of a declared token.
func (b *Builder) TokenName(tok Token) (string, bool) {
	if tok.IsEpsilon() {
		return "eps", true
	}
	name, ok := b.names[tok]
	return name, ok
}

func (b *Builder) displayName(tok Token) string {
	if name, ok := b.TokenName(tok); ok {
		return name
	}
	return tok.String()
}

// mintNonTerminal creates a fresh nonterminal derived from orig. Its
// numeric identity is one past the highest declared nonterminal and its
// display name is the original's with a Prime suffix.
func (b *Builder) mintNonTerminal(orig Token) Token {
	max := Token(0)
	for _, n := range b.nonTerminals.Tokens() {
		if n > max {
			max = n
		}
	}
	fresh := max + 1
	b.nonTerminals.Add(fresh)
	b.names[fresh] = b.displayName(orig) + "Prime"
	b.transformations[fresh] = orig
	return fresh
}

// appendProduction registers a production minted during rewriting.
func (b *Builder) appendProduction(prod *Production) {
	b.prods = append(b.prods, prod)
	b.lhs2Prod[prod.lhs] = prod
}
