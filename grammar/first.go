package grammar

// genFirstSets computes FIRST for every token. Terminals and epsilon
// are seeded with their singletons, nonterminals start empty, and the
// production recurrence is iterated until a full pass leaves every set
// unchanged. Quiescence is detected by comparing against a clone taken
// at the start of the pass rather than by a mutation flag.
func (b *Builder) genFirstSets() {
	firsts := map[Token]*TokenSet{}
	for _, t := range b.terminals.Tokens() {
		firsts[t] = NewTokenSet(t)
	}
	firsts[TokenEpsilon] = NewTokenSet(TokenEpsilon)
	for _, n := range b.nonTerminals.Tokens() {
		firsts[n] = NewTokenSet()
	}
	b.firsts = firsts

	for {
		snapshot := cloneTokenSetMap(firsts)
		for _, prod := range b.prods {
			acc := firsts[prod.lhs]
			for _, alt := range prod.alts {
				acc.AddAll(b.firstOfSequence(alt))
			}
		}
		if tokenSetMapsEqual(firsts, snapshot) {
			return
		}
	}
}

// firstOfSequence computes FIRST of a token sequence against the
// current FIRST sets: each symbol contributes its FIRST minus epsilon,
// the walk stops at the first non-nullable symbol, and epsilon is
// included only when every symbol is nullable. FIRST of the empty
// sequence is {epsilon}.
func (b *Builder) firstOfSequence(seq []Token) *TokenSet {
	fs := NewTokenSet()
	for _, tok := range seq {
		sub, ok := b.firsts[tok]
		if !ok {
			return fs
		}
		for _, t := range sub.Tokens() {
			if !t.IsEpsilon() {
				fs.Add(t)
			}
		}
		if !sub.Contains(TokenEpsilon) {
			return fs
		}
	}
	fs.Add(TokenEpsilon)
	return fs
}

func tokenSetMapsEqual(a, b map[Token]*TokenSet) bool {
	if len(a) != len(b) {
		return false
	}
	for tok, set := range a {
		other, ok := b[tok]
		if !ok || !set.Equal(other) {
			return false
		}
	}
	return true
}
