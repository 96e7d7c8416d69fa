package grammar

// factorLeft removes FIRST/FIRST collisions on leading tokens: whenever
// two or more alternatives of a production start with the same token,
// the common token is factored out and the tails move to a fresh
// nonterminal. Multi-token common prefixes need no special handling;
// after one token is factored the collision reappears at the next
// position inside the fresh nonterminal and a later pass picks it up.
func (b *Builder) factorLeft() {
	for {
		refactored := false
	scan:
		for _, prod := range b.prods {
			for _, alt := range prod.alts {
				head := alt[0]
				if head.IsEpsilon() {
					continue
				}
				group := leadingGroup(prod, head)
				if len(group) > 1 {
					b.factorAlternatives(prod, head, group)
					refactored = true
					break scan
				}
			}
		}
		if !refactored {
			return
		}
	}
}

// leadingGroup returns the indexes of all alternatives beginning with
// head, in declaration order.
func leadingGroup(prod *Production, head Token) []int {
	var group []int
	for i, alt := range prod.alts {
		if alt[0] == head {
			group = append(group, i)
		}
	}
	return group
}

func (b *Builder) factorAlternatives(prod *Production, head Token, group []int) {
	prime := b.mintNonTerminal(prod.lhs)

	grouped := map[int]bool{}
	for _, i := range group {
		grouped[i] = true
	}

	var remaining [][]Token
	var tails [][]Token
	for i, alt := range prod.alts {
		if !grouped[i] {
			remaining = append(remaining, alt)
			continue
		}
		tail := alt[1:]
		if len(tail) == 0 {
			// The alternative was exactly the factored token; its
			// derivation ends where the fresh nonterminal begins.
			tail = []Token{TokenEpsilon}
		}
		tails = append(tails, tail)
	}
	prod.alts = append(remaining, []Token{head, prime})

	primeProd := newProduction(prime)
	for _, tail := range tails {
		primeProd.addAlternative(tail)
	}
	b.appendProduction(primeProd)
}
