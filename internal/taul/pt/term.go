// Package pt holds the parse-table data model: terms, rules, and the table
// that maps (non-terminal, terminal-group) pairs to a rule index, plus the
// FIRST/FOLLOW/prefix sets computed over it.
package pt

import (
	"fmt"
	"math"

	"github.com/dekarrin/taul/internal/taul/symbol"
)

// NoPreced is the "this non-terminal carries no precedence value" sentinel.
const NoPreced uint32 = 0

// SignalPreced is the "propagate the enclosing symbol's precedence value"
// sentinel, represented as the maximum uint32 value per the module spec.
const SignalPreced uint32 = math.MaxUint32

// TermKind discriminates the tagged union a Term holds.
type TermKind uint8

const (
	KindTerminal TermKind = iota
	KindNonterminal
	KindPrecedPred
	KindPylon
)

// Term is one element of a Rule's right-hand side.
//
// Exactly one of the kind-specific field groups is meaningful, selected by
// Kind; this mirrors the tagged union in the original implementation without
// reaching for an interface, since no behaviour needs to vary per kind beyond
// what the engine's single switch already does (see internal/taul/engine).
type Term struct {
	Kind TermKind

	// KindTerminal
	Range     symbol.Range
	Assertion bool

	// KindNonterminal
	Nonterminal symbol.ID
	PrecedVal   uint32

	// KindPrecedPred
	PrecedMax uint32
	// PrecedVal above doubles as the preced_pred's own preced_val operand.
}

// Terminal constructs a terminal Term matching every ID in r.
func Terminal(r symbol.Range, assertion bool) Term {
	return Term{Kind: KindTerminal, Range: r, Assertion: assertion}
}

// Nonterminal constructs a non-terminal-reference Term.
func Nonterminal(id symbol.ID, precedVal uint32) Term {
	return Term{Kind: KindNonterminal, Nonterminal: id, PrecedVal: precedVal}
}

// PrecedPred constructs a precedence-predicate Term.
func PrecedPred(precedMax, precedVal uint32) Term {
	return Term{Kind: KindPrecedPred, PrecedMax: precedMax, PrecedVal: precedVal}
}

// Pylon constructs an inert pylon marker Term.
func Pylon() Term { return Term{Kind: KindPylon} }

func (t Term) String() string {
	switch t.Kind {
	case KindTerminal:
		if t.Assertion {
			return fmt.Sprintf("assert%s", t.Range)
		}
		return t.Range.String()
	case KindNonterminal:
		if t.PrecedVal == SignalPreced {
			return fmt.Sprintf("%s/*signal*", t.Nonterminal)
		}
		return fmt.Sprintf("%s/%d", t.Nonterminal, t.PrecedVal)
	case KindPrecedPred:
		return fmt.Sprintf("{%d<=%d}", t.PrecedVal, t.PrecedMax)
	case KindPylon:
		return "*pylon*"
	default:
		return "?"
	}
}
