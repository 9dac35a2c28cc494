package pt

import "github.com/dekarrin/taul/internal/taul/symbol"

// Rule is one production `Nonterminal -> Terms...`.
type Rule struct {
	Nonterminal symbol.ID
	Terms       []Term
}

func (r Rule) String() string {
	s := r.Nonterminal.String() + " ->"
	if len(r.Terms) == 0 {
		return s + " <empty>"
	}
	for _, t := range r.Terms {
		s += " " + t.String()
	}
	return s
}
