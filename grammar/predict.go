package grammar

// rule is a single numbered alternative of the rewritten grammar.
type rule struct {
	id  RuleID
	lhs Token
	rhs []Token
}

// numberRules assigns rule-ids 1..n to the alternatives in production
// order, alternatives in declaration order. Rule-id 0 stays reserved
// for the error cell.
func (b *Builder) numberRules() []*rule {
	var rules []*rule
	id := RuleIDNil
	for _, prod := range b.prods {
		for _, alt := range prod.alts {
			id++
			rules = append(rules, &rule{
				id:  id,
				lhs: prod.lhs,
				rhs: alt,
			})
		}
	}
	return rules
}

// genPredictSets computes PREDICT per rule: FIRST of the RHS minus
// epsilon, plus FOLLOW of the LHS when the RHS is nullable.
func (b *Builder) genPredictSets(rules []*rule) {
	predicts := map[RuleID]*TokenSet{}
	for _, r := range rules {
		fs := b.firstOfSequence(r.rhs)
		p := NewTokenSet()
		for _, t := range fs.Tokens() {
			if !t.IsEpsilon() {
				p.Add(t)
			}
		}
		if fs.Contains(TokenEpsilon) {
			p.AddAll(b.follows[r.lhs])
		}
		predicts[r.id] = p
	}
	b.predicts = predicts
}
