package compile

import (
	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// precedAlt is one raw alternative of a precedence ppr, collected before
// reshaping: its terms as originally lowered (self-references still carrying
// whatever precedence value a caller's name(...) operand gave them, normally
// pt.NoPreced) and whether it was opened with right_assoc.
type precedAlt struct {
	rightAssoc bool
	terms      []pt.Term
}

// reshapePrecedence turns the declared alternatives of a precedence ppr into
// the flattened rule set the engine executes directly under mainID, using
// preced_pred/pylon terms to implement precedence climbing without a
// separate non-terminal per level.
//
// Alternatives are leveled by declaration order: alts[0] binds loosest,
// alts[len-1] binds tightest. An alternative recurses left if its first term
// is a self-reference, right if right_assoc was set and its last term is a
// self-reference; anything else is a base alternative (including one with a
// self-reference only in the middle, e.g. a parenthesized regrouping, which
// always resets the precedence ceiling to unrestricted).
func reshapePrecedence(mainID symbol.ID, alts []precedAlt) []pt.Rule {
	n := len(alts)
	rules := make([]pt.Rule, 0, n)

	for level, alt := range alts {
		terms := append([]pt.Term{}, alt.terms...)
		isSelf := func(t pt.Term) bool { return t.Kind == pt.KindNonterminal && t.Nonterminal == mainID }

		leftRecurse := len(terms) > 0 && isSelf(terms[0])
		rightRecurse := alt.rightAssoc && len(terms) > 0 && isSelf(terms[len(terms)-1])

		out := make([]pt.Term, 0, len(terms)+2)
		out = append(out, pt.Pylon())

		switch {
		case leftRecurse:
			out = append(out, pt.PrecedPred(uint32(level), uint32(level)))
			out = append(out, pt.Nonterminal(mainID, uint32(level+1)))
			for _, t := range terms[1:] {
				out = append(out, rewriteMiddleSelf(t, mainID, uint32(level+1)))
			}
		case rightRecurse:
			out = append(out, pt.PrecedPred(uint32(level), uint32(level)))
			for _, t := range terms[:len(terms)-1] {
				out = append(out, rewriteMiddleSelf(t, mainID, uint32(level+1)))
			}
			out = append(out, pt.Nonterminal(mainID, uint32(level)))
		default:
			for _, t := range terms {
				out = append(out, rewriteMiddleSelf(t, mainID, pt.NoPreced))
			}
		}

		rules = append(rules, pt.Rule{Nonterminal: mainID, Terms: out})
	}

	return rules
}

// rewriteMiddleSelf replaces a self-referencing non-terminal term that is
// not the recursion anchor handled by reshapePrecedence's caller with a copy
// carrying precedVal, leaving every other term untouched.
func rewriteMiddleSelf(t pt.Term, mainID symbol.ID, precedVal uint32) pt.Term {
	if t.Kind == pt.KindNonterminal && t.Nonterminal == mainID {
		return pt.Nonterminal(mainID, precedVal)
	}
	return t
}
