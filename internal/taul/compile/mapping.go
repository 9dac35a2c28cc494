package compile

import (
	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// ruleLead is the precomputed lookahead set that predicts one rule.
type ruleLead struct {
	idx         int
	nonterminal symbol.ID
	set         *symbol.Set
}

// buildMapping computes FIRST, FOLLOW, and Prefix for every non-terminal in
// t, refines t's grouper so every rule's lead set is coverable by whole
// groups, and fills in t's (nonterminal, group) -> rule mapping, raising
// TagIllegalAmbiguity for any cell two different rules both claim.
func buildMapping(t *pt.Table, domain symbol.Range, diags *diagSink) {
	first := computeFirst(t, domain)
	follow := computeFollow(first)
	prefix := computePrefix(first, follow)
	for id, s := range first {
		t.First[id] = s
	}
	for id, s := range follow {
		t.Follow[id] = s
	}
	for id, s := range prefix {
		t.Prefix[id] = s
	}

	leads := make([]ruleLead, 0, len(t.Rules))
	for idx, r := range t.Rules {
		s := symbol.NewSet(domain)
		nullable := firstOfSequence(r.Terms, first, s)
		if nullable {
			if fs := follow[r.Nonterminal]; fs != nil {
				s.AddSet(fs)
			}
		}
		leads = append(leads, ruleLead{idx: idx, nonterminal: r.Nonterminal, set: s})
	}

	for _, l := range leads {
		for _, rg := range l.set.Ranges() {
			t.Grouper.AddUseCase(rg.Low, rg.High)
		}
	}

	for _, l := range leads {
		for _, rg := range l.set.Ranges() {
			lowGid := t.Grouper.GroupID(rg.Low)
			highGid := t.Grouper.GroupID(rg.High)
			for gid := lowGid; gid <= highGid; gid++ {
				key := pt.Key{Nonterminal: l.nonterminal, Group: gid}
				if existing, ok := t.Map(key, l.idx); !ok {
					diags.raise(TagIllegalAmbiguity, 0,
						"rule %s and rule %s are both predicted by %s",
						t.Rules[existing].String(), t.Rules[l.idx].String(), t.Grouper.SymbolRange(gid))
				}
			}
		}
	}
}
