// Package lex implements the longest-match tokenizer driven by a compiled
// lexer pt.Table: at each source position it attempts every declared LPR in
// turn via internal/taul/engine, keeps the longest match, and emits a Token
// for it (or a failure token, coalesced with any immediately preceding one,
// when nothing matches).
package lex

import (
	"fmt"

	"github.com/dekarrin/taul/internal/source"
	"github.com/dekarrin/taul/internal/taul/engine"
	"github.com/dekarrin/taul/internal/taul/grammar"
	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// Token is one lexed unit: which LPR matched (or symbol.FailureLPR), the
// source span it covers, and its text.
type Token struct {
	LPR  symbol.ID
	Low  int
	High int
	Text string
}

func (t Token) String() string {
	return fmt.Sprintf("%s %q", t.LPR, t.Text)
}

// candidate is one declared LPR the driver tries at a given position, in
// declaration order (earlier wins ties).
type candidate struct {
	id symbol.ID
}

// Lexer tokenizes a source.Buffer against a compiled Grammar's lexer table.
type Lexer struct {
	g          *grammar.Grammar
	candidates []candidate

	// CutSkipTokens, when true, drops skip-qualified tokens from the output
	// stream entirely instead of emitting them for the caller to filter.
	CutSkipTokens bool
}

// New returns a Lexer for g's compiled lexer table. order lists the main LPR
// IDs to attempt at each position, in priority order (normally declaration
// order, so the first-declared LPR among same-length matches wins).
// `support`-qualified LPRs are excluded from the candidate list: they exist
// to be referenced by name from other rules, not to be tried as entry points
// in their own right.
func New(g *grammar.Grammar, order []symbol.ID) *Lexer {
	l := &Lexer{g: g}
	for _, id := range order {
		if g.LPRQualifier(id) == llspec.QualifierSupport {
			continue
		}
		l.candidates = append(l.candidates, candidate{id: id})
	}
	return l
}

// Tokenize runs the full source buffer through the lexer, applying
// skip/support filtering per each matched LPR's declared qualifier.
func (l *Lexer) Tokenize(buf *source.Buffer) ([]Token, error) {
	var out []Token
	pos := 0
	var pendingFailure *Token

	for pos < buf.Len() {
		tok, consumed, err := l.matchLongest(buf, pos)
		if err != nil {
			return nil, err
		}
		if consumed == 0 {
			if pendingFailure != nil && pendingFailure.High == pos {
				pendingFailure.High = pos + 1
				pendingFailure.Text = buf.String(pendingFailure.Low, pendingFailure.High)
			} else {
				ft := Token{LPR: symbol.FailureLPR, Low: pos, High: pos + 1, Text: buf.String(pos, pos+1)}
				out = append(out, ft)
				pendingFailure = &out[len(out)-1]
			}
			pos++
			continue
		}
		pendingFailure = nil

		q := l.g.LPRQualifier(tok.LPR)
		if q == llspec.QualifierSkip && l.CutSkipTokens {
			pos += consumed
			continue
		}
		out = append(out, tok)
		pos += consumed
	}

	return out, nil
}

// matchLongest tries every candidate LPR starting at pos and returns the
// longest match, or consumed=0 if none matched.
func (l *Lexer) matchLongest(buf *source.Buffer, pos int) (Token, int, error) {
	var best Token
	bestLen := -1

	for _, cand := range l.candidates {
		p := &attemptPolicy{table: l.g.Lexer, start: cand.id, buf: buf, base: pos, helper: l.g}
		if err := engine.Run(p); err != nil {
			continue
		}
		if p.pos > bestLen {
			bestLen = p.pos
			best = Token{LPR: cand.id, Low: pos, High: pos + p.pos, Text: buf.String(pos, pos+p.pos)}
		}
	}

	if bestLen <= 0 {
		return Token{}, 0, nil
	}
	return best, bestLen, nil
}

// attemptPolicy is a single engine.Policy run: one candidate LPR attempted
// at one fixed starting offset. It never mutates buf and tracks its own
// relative position so a failed or shorter attempt leaves no trace.
type attemptPolicy struct {
	table  *pt.Table
	start  symbol.ID
	buf    *source.Buffer
	base   int
	pos    int
	helper *grammar.Grammar
}

func (p *attemptPolicy) Table() *pt.Table { return p.table }
func (p *attemptPolicy) Start() symbol.ID { return p.start }
func (p *attemptPolicy) Pos() int         { return p.base + p.pos }

func (p *attemptPolicy) Peek() (symbol.ID, error) {
	abs := p.base + p.pos
	if abs >= p.buf.Len() {
		return symbol.EndOfCPInput, nil
	}
	return symbol.CPID(p.buf.At(abs)), nil
}

func (p *attemptPolicy) Advance() error {
	p.pos++
	return nil
}

func (p *attemptPolicy) OnTerminal(symbol.ID, symbol.Range, bool, int)    {}
func (p *attemptPolicy) OnNonterminalBegin(symbol.ID, int)                {}
func (p *attemptPolicy) OnNonterminalEnd(symbol.ID, int)                  {}
func (p *attemptPolicy) IsHelper(id symbol.ID) bool                       { return p.helper.LPRIsHelper(id) }

func (p *attemptPolicy) HandleTerminalError(want pt.Term, got symbol.ID, pos int) (bool, error) {
	return false, fmt.Errorf("lex: no match")
}

func (p *attemptPolicy) HandleNonterminalError(nonterminal symbol.ID, got symbol.ID, pos int) (bool, error) {
	return false, fmt.Errorf("lex: no match")
}

func (p *attemptPolicy) HandlePrecedenceError(level, required uint32, pos int) (bool, error) {
	return false, fmt.Errorf("lex: precedence is not legal in a lexer rule")
}
