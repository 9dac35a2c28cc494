// Package engine implements the stack-driven LL(1) executor shared by the
// lexer and the parser: both walk a pt.Table the same way, differing only in
// which symbol domain they read lookahead from and what they do with each
// terminal/non-terminal event. That shared behaviour lives here as a single
// driver parameterized by a Policy; internal/taul/lex and internal/taul/parse
// each supply their own Policy and react to the events Run emits.
package engine

import (
	"fmt"

	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// Policy supplies the table to drive and reacts to what the driver finds.
// All methods may be called from within Run; Policy implementations are not
// expected to be safe for concurrent use by more than one Run call.
type Policy interface {
	// Table returns the parse table to execute.
	Table() *pt.Table

	// Start returns the non-terminal to begin parsing from.
	Start() symbol.ID

	// Peek returns the ID of the next unconsumed input symbol, without
	// consuming it.
	Peek() (symbol.ID, error)

	// Advance consumes the symbol most recently returned by Peek.
	Advance() error

	// Pos returns the input offset Peek's result came from, for diagnostics.
	Pos() int

	// OnTerminal reports a successfully matched terminal, receiving the
	// matched ID and whether the term was an assertion (in
	// which case Advance was not called for it).
	OnTerminal(id symbol.ID, matched symbol.Range, assertion bool, depth int)

	// OnNonterminalBegin/OnNonterminalEnd bracket a non-terminal's expansion.
	// Helper non-terminals (IsHelper) do not get their own begin/end pair or
	// depth increment: the depth protocol is transparent to them.
	OnNonterminalBegin(id symbol.ID, depth int)
	OnNonterminalEnd(id symbol.ID, depth int)

	// IsHelper reports whether id is a compiler-generated helper, which
	// should not appear as its own node in client-visible output.
	IsHelper(id symbol.ID) bool

	// HandleTerminalError is called when the input does not match what the
	// active rule predicted. Returning true tells Run to skip the offending
	// input symbol and retry the same stack position; returning false aborts
	// the parse with the given error.
	HandleTerminalError(want pt.Term, got symbol.ID, pos int) (retry bool, err error)

	// HandleNonterminalError is called when no rule is mapped for
	// (nonterminal, lookahead). Same retry contract as HandleTerminalError.
	HandleNonterminalError(nonterminal symbol.ID, got symbol.ID, pos int) (retry bool, err error)

	// HandlePrecedenceError is called when a preced_pred guard rejects the
	// alternative already committed to. The driver does not backtrack and
	// unwinds nothing: returning true makes Run go on with the next stack
	// entry without advancing the input; returning false aborts the parse
	// with the given error.
	HandlePrecedenceError(level, required uint32, pos int) (retry bool, err error)
}

// stackFrame is one entry of the parse stack: a term to match/expand, the
// depth it should be reported at, and the precedence ceiling in force for
// the call that pushed it (0 if none).
type stackFrame struct {
	term      pt.Term
	depth     int
	precedMax uint32
}

// Run drives p's table from its start symbol until its stack is empty,
// reporting every matched terminal and every non-helper non-terminal's
// begin/end via the Policy. It returns the first unrecoverable error a
// Policy handler reports, or nil on a clean parse. Input still unconsumed
// when the stack empties is neither checked nor reported.
func Run(p Policy) error {
	table := p.Table()
	start := p.Start()

	stack := []stackFrame{{term: pt.Nonterminal(start, pt.NoPreced), depth: 0}}

	for len(stack) > 0 {
		top := stack[len(stack)-1]

		switch top.term.Kind {
		case pt.KindTerminal:
			pos, lookahead, err := peekPos(p)
			if err != nil {
				return err
			}
			if !top.term.Range.Includes(lookahead) {
				retry, err := p.HandleTerminalError(top.term, lookahead, pos)
				if err != nil {
					return err
				}
				if retry {
					if err := p.Advance(); err != nil {
						return err
					}
					continue
				}
				return fmt.Errorf("engine: unrecoverable terminal mismatch at %d: want %s got %s", pos, top.term.Range, lookahead)
			}
			stack = stack[:len(stack)-1]
			p.OnTerminal(lookahead, top.term.Range, top.term.Assertion, top.depth)
			if !top.term.Assertion {
				if err := p.Advance(); err != nil {
					return err
				}
			}

		case pt.KindNonterminal:
			_, lookahead, err := peekPos(p)
			if err != nil {
				return err
			}
			rule, _, ok := table.Get(top.term.Nonterminal, lookahead)
			if !ok {
				pos, _, _ := peekPos(p)
				retry, err := p.HandleNonterminalError(top.term.Nonterminal, lookahead, pos)
				if err != nil {
					return err
				}
				if retry {
					if err := p.Advance(); err != nil {
						return err
					}
					continue
				}
				return fmt.Errorf("engine: unrecoverable parse error at %d: no rule for %s on %s", pos, top.term.Nonterminal, lookahead)
			}
			stack = stack[:len(stack)-1]

			childDepth := top.depth
			isHelper := p.IsHelper(top.term.Nonterminal)
			if !isHelper {
				childDepth = top.depth + 1
			}

			precedMax := top.precedMax
			if top.term.PrecedVal != pt.SignalPreced {
				precedMax = top.term.PrecedVal
			}

			if !isHelper {
				p.OnNonterminalBegin(top.term.Nonterminal, childDepth)
				// closeMarker is pushed before the rule's own terms so it
				// sits underneath them on the stack, and is only reached
				// (firing OnNonterminalEnd) once every one of them has been
				// popped.
				stack = append(stack, stackFrame{term: closeMarker(top.term.Nonterminal), depth: childDepth})
			}

			pushed := make([]stackFrame, len(rule.Terms))
			for i, t := range rule.Terms {
				pushed[i] = stackFrame{term: t, depth: childDepth, precedMax: precedMax}
			}
			for i := len(pushed) - 1; i >= 0; i-- {
				stack = append(stack, pushed[i])
			}

		case pt.KindPylon:
			// no client-visible event: the pylon is simply popped. A failed
			// preced_pred does not unwind the stack to it.
			stack = stack[:len(stack)-1]

		case pt.KindPrecedPred:
			stack = stack[:len(stack)-1]
			if top.term.PrecedVal < top.precedMax {
				pos := p.Pos()
				retry, err := p.HandlePrecedenceError(top.term.PrecedVal, top.precedMax, pos)
				if err != nil {
					return err
				}
				if !retry {
					return fmt.Errorf("engine: precedence predicate failed at %d: level %d < required %d", pos, top.term.PrecedVal, top.precedMax)
				}
			}

		default:
			stack = stack[:len(stack)-1]
			if marker, ok := asCloseMarker(top.term); ok {
				p.OnNonterminalEnd(marker, top.depth)
			}
		}
	}

	return nil
}

func peekPos(p Policy) (int, symbol.ID, error) {
	id, err := p.Peek()
	return p.Pos(), id, err
}

// closeMarker terms are a Run-internal bookkeeping device, never produced by
// the compiler: a pt.Term whose Kind is out of the normal tagged-union range,
// smuggling the non-terminal ID it should fire OnNonterminalEnd for.
const closeMarkerKind pt.TermKind = 0xFF

func closeMarker(id symbol.ID) pt.Term {
	return pt.Term{Kind: closeMarkerKind, Nonterminal: id}
}

func asCloseMarker(t pt.Term) (symbol.ID, bool) {
	if t.Kind == closeMarkerKind {
		return t.Nonterminal, true
	}
	return 0, false
}
