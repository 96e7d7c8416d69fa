package grammar

import "fmt"

// eliminateLeftRecursion rewrites every directly left-recursive
// production A -> A alpha | beta into A -> beta A' and
// A' -> alpha A' | epsilon. The outer loop restarts the scan after each
// rewrite and stops once a full pass changes nothing. Each rewrite
// removes one directly left-recursive production and mints none, so the
// loop needs at most one pass per production.
func (b *Builder) eliminateLeftRecursion() {
	for {
		rewritten := false
		for _, prod := range b.prods {
			if !prod.isLeftRecursive() {
				continue
			}
			b.rewriteLeftRecursion(prod)
			rewritten = true
			break
		}
		if !rewritten {
			return
		}
	}
}

func (b *Builder) rewriteLeftRecursion(prod *Production) {
	var alphas, betas [][]Token
	for _, alt := range prod.alts {
		if alt[0] != prod.lhs {
			betas = append(betas, alt)
			continue
		}
		tail := alt[1:]
		if len(tail) == 0 {
			// A -> A derives nothing new; keeping its empty tail would
			// make the fresh nonterminal left-recursive in turn.
			continue
		}
		alphas = append(alphas, tail)
	}

	prime := b.mintNonTerminal(prod.lhs)

	// Tails that still mention A must be expanded against the beta
	// alternatives, otherwise the rewritten grammar would reintroduce A
	// at the front of a derivation. Tails without A survive unchanged.
	if anyMentions(alphas, prod.lhs) {
		var expanded [][]Token
		for _, alpha := range alphas {
			if !mentions(alpha, prod.lhs) {
				expanded = append(expanded, alpha)
				continue
			}
			for _, beta := range betas {
				expanded = append(expanded, substitute(alpha, prod.lhs, beta))
			}
		}
		alphas = expanded
	}

	var alts [][]Token
	for _, beta := range betas {
		alts = append(alts, appendToken(beta, prime))
	}
	if len(alts) == 0 {
		// Every alternative was left-recursive; the production keeps
		// only the continuation.
		alts = [][]Token{{prime}}
	}
	prod.alts = alts

	primeProd := newProduction(prime)
	for _, alpha := range alphas {
		primeProd.addAlternative(appendToken(alpha, prime))
	}
	primeProd.addAlternative([]Token{TokenEpsilon})
	b.appendProduction(primeProd)
}

// appendToken returns seq ++ [tok], dropping an epsilon-only seq so the
// result stays a well-formed alternative.
func appendToken(seq []Token, tok Token) []Token {
	if isEpsilonAlternative(seq) {
		return []Token{tok}
	}
	alt := make([]Token, 0, len(seq)+1)
	alt = append(alt, seq...)
	return append(alt, tok)
}

func mentions(seq []Token, tok Token) bool {
	for _, t := range seq {
		if t == tok {
			return true
		}
	}
	return false
}

func anyMentions(seqs [][]Token, tok Token) bool {
	for _, seq := range seqs {
		if mentions(seq, tok) {
			return true
		}
	}
	return false
}

// substitute replaces every occurrence of tok in seq with repl.
func substitute(seq []Token, tok Token, repl []Token) []Token {
	var out []Token
	for _, t := range seq {
		if t == tok {
			out = append(out, repl...)
		} else {
			out = append(out, t)
		}
	}
	return out
}

// checkLeftCornerCycles reports indirect left recursion left over after
// the direct elimination. Only leading symbols are considered, matching
// the definition of left recursion used by the rewriter.
func (b *Builder) checkLeftCornerCycles() error {
	leads := map[Token][]Token{}
	for _, prod := range b.prods {
		for _, alt := range prod.alts {
			if alt[0].IsNonTerminal() {
				leads[prod.lhs] = append(leads[prod.lhs], alt[0])
			}
		}
	}

	const (
		unvisited = 0
		visiting  = 1
		done      = 2
	)
	state := map[Token]int{}
	var walk func(n Token) error
	walk = func(n Token) error {
		state[n] = visiting
		for _, m := range leads[n] {
			switch state[m] {
			case visiting:
				return fmt.Errorf("%w: a derivation of %v leads back to itself", SemErrIndirectLeftRecursion, b.displayName(m))
			case unvisited:
				if err := walk(m); err != nil {
					return err
				}
			}
		}
		state[n] = done
		return nil
	}
	for _, prod := range b.prods {
		if state[prod.lhs] == unvisited {
			if err := walk(prod.lhs); err != nil {
				return err
			}
		}
	}
	return nil
}
