package compile

import (
	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// collectNonterminals returns every distinct non-terminal ID a table's rules
// are keyed under, in first-appearance order.
func collectNonterminals(t *pt.Table) []symbol.ID {
	seen := map[symbol.ID]bool{}
	var out []symbol.ID
	for _, r := range t.Rules {
		if !seen[r.Nonterminal] {
			seen[r.Nonterminal] = true
			out = append(out, r.Nonterminal)
		}
	}
	return out
}

// firstOfSequence computes the FIRST set of a term sequence into out
// (a set already created over the right terminal domain), returning whether
// the whole sequence can derive the empty string (every term either a
// zero-width marker or a nullable non-terminal).
func firstOfSequence(terms []pt.Term, first map[symbol.ID]*symbol.Set, out *symbol.Set) bool {
	for _, t := range terms {
		switch t.Kind {
		case pt.KindTerminal:
			out.AddRange(t.Range.Low, t.Range.High)
			return false
		case pt.KindNonterminal:
			nf := first[t.Nonterminal]
			if nf == nil {
				return false
			}
			out.AddSet(nf)
			out.RemoveEpsilon()
			if !nf.Epsilon() {
				return false
			}
		case pt.KindPrecedPred, pt.KindPylon:
			// zero-width: does not affect FIRST, does not block nullability.
		}
	}
	return true
}

// computeFirst runs the standard fixed-point FIRST computation over every
// non-terminal in t, treating preced_pred/pylon terms as transparent.
func computeFirst(t *pt.Table, domain symbol.Range) map[symbol.ID]*symbol.Set {
	ids := collectNonterminals(t)
	first := make(map[symbol.ID]*symbol.Set, len(ids))
	for _, id := range ids {
		first[id] = symbol.NewSet(domain)
	}

	for changed := true; changed; {
		changed = false
		for _, r := range t.Rules {
			s := first[r.Nonterminal]
			beforeLen, beforeEps := s.Len(), s.Epsilon()
			nullable := firstOfSequence(r.Terms, first, s)
			if nullable {
				s.AddEpsilon()
			}
			if s.Len() != beforeLen || s.Epsilon() != beforeEps {
				changed = true
			}
		}
	}
	return first
}

// computeFollow implements the "live" FOLLOW used throughout: rather than the
// classical transitive closure over contexts where a non-terminal appears,
// FOLLOW(A) is simply the domain complement of FIRST(A). A parser that has
// just finished deriving A is, by construction, looking at whatever the
// enclosing rule's own FIRST/FOLLOW already predicts next; the complement
// definition sidesteps needing to track every call site and is what the
// module's LL(1) construction was designed against.
func computeFollow(first map[symbol.ID]*symbol.Set) map[symbol.ID]*symbol.Set {
	follow := make(map[symbol.ID]*symbol.Set, len(first))
	for id, s := range first {
		follow[id] = s.Inverse()
	}
	return follow
}

// computePrefix derives, for each non-terminal, the lookahead set that
// legally predicts it in any context: its own FIRST, widened by FOLLOW when
// it can derive the empty string.
func computePrefix(first, follow map[symbol.ID]*symbol.Set) map[symbol.ID]*symbol.Set {
	prefix := make(map[symbol.ID]*symbol.Set, len(first))
	for id, s := range first {
		p := s.Copy()
		if s.Epsilon() {
			p.AddSet(follow[id])
		}
		prefix[id] = p
	}
	return prefix
}
