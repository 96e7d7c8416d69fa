package grammar

// genFollowSets computes FOLLOW for every nonterminal. The start rule
// is seeded with the EOF terminal; for every occurrence of a
// nonterminal B in an alternative of A, FIRST of the remainder minus
// epsilon flows into FOLLOW(B), and FOLLOW(A) flows in as well when the
// remainder is empty or nullable. Iterated to a fixed point with the
// same snapshot comparison as FIRST.
func (b *Builder) genFollowSets() {
	follows := map[Token]*TokenSet{}
	for _, n := range b.nonTerminals.Tokens() {
		follows[n] = NewTokenSet()
	}
	follows[b.start].Add(b.eof)

	for {
		snapshot := cloneTokenSetMap(follows)
		for _, prod := range b.prods {
			for _, alt := range prod.alts {
				for i, tok := range alt {
					if !tok.IsNonTerminal() {
						continue
					}
					rest := b.firstOfSequence(alt[i+1:])
					for _, t := range rest.Tokens() {
						if !t.IsEpsilon() {
							follows[tok].Add(t)
						}
					}
					if rest.Contains(TokenEpsilon) {
						follows[tok].AddAll(follows[prod.lhs])
					}
				}
			}
		}
		if tokenSetMapsEqual(follows, snapshot) {
			break
		}
	}
	b.follows = follows
}
