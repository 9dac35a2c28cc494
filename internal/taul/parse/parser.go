// Package parse drives a compiled parser pt.Table over a lexed token stream,
// producing a Tree, using internal/taul/engine as the stack machine. It takes
// already-lexed internal/taul/lex tokens and does no tokenization itself.
package parse

import (
	"fmt"

	"github.com/dekarrin/taul/internal/taul/engine"
	"github.com/dekarrin/taul/internal/taul/grammar"
	"github.com/dekarrin/taul/internal/taul/lex"
	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// ErrorHandler lets a caller customize how recoverable parse errors are
// reported and whether parsing should attempt to continue past them,
// mirroring the teacher's SyntaxError-on-abort, keep-going-on-recover shape.
type ErrorHandler interface {
	// Startup is called once before the first token is consumed.
	Startup()
	// Shutdown is called once after parsing finishes, successfully or not.
	Shutdown()
	// TerminalError is called when the next token doesn't match what the
	// grammar predicted. Returning true skips the token and retries.
	TerminalError(want pt.Term, got lex.Token) (retry bool)
	// NonterminalError is called when no rule predicts the next token under
	// the given non-terminal. Returning true skips the token and retries.
	NonterminalError(nonterminal symbol.ID, got lex.Token) (retry bool)
	// RecoveryFailed is called once a handler above has already declined to
	// recover, right before the parse aborts.
	RecoveryFailed(pos int)
}

// NopErrorHandler always aborts on the first error.
type NopErrorHandler struct{}

func (NopErrorHandler) Startup()                                                {}
func (NopErrorHandler) Shutdown()                                               {}
func (NopErrorHandler) TerminalError(pt.Term, lex.Token) bool                    { return false }
func (NopErrorHandler) NonterminalError(symbol.ID, lex.Token) bool               { return false }
func (NopErrorHandler) RecoveryFailed(int)                                      {}

// Parser drives a Grammar's parser table over a token stream.
type Parser struct {
	g *grammar.Grammar
}

// New returns a Parser bound to g.
func New(g *grammar.Grammar) *Parser { return &Parser{g: g} }

// Parse runs start (normally the grammar's designated entry PPR) over
// tokens, using h to decide whether recoverable errors should be retried.
func (p *Parser) Parse(start symbol.ID, tokens []lex.Token, h ErrorHandler) (*Tree, error) {
	if h == nil {
		h = NopErrorHandler{}
	}
	pp := &parserPolicy{
		g:      p.g,
		start:  start,
		tokens: tokens,
		h:      h,
	}

	h.Startup()
	err := engine.Run(pp)
	h.Shutdown()
	if err != nil {
		h.RecoveryFailed(pp.idx)
		return pp.root, err
	}
	return pp.root, nil
}

type parserPolicy struct {
	g      *grammar.Grammar
	start  symbol.ID
	tokens []lex.Token
	idx    int

	root  *Tree
	stack []*Tree

	h ErrorHandler
}

func (p *parserPolicy) Table() *pt.Table { return p.g.Parser }
func (p *parserPolicy) Start() symbol.ID { return p.start }

func (p *parserPolicy) Pos() int { return p.idx }

func (p *parserPolicy) current() lex.Token {
	if p.idx >= len(p.tokens) {
		return lex.Token{LPR: symbol.EndOfLPRInput}
	}
	return p.tokens[p.idx]
}

func (p *parserPolicy) Peek() (symbol.ID, error) {
	return p.current().LPR, nil
}

func (p *parserPolicy) Advance() error {
	p.idx++
	return nil
}

func (p *parserPolicy) OnTerminal(id symbol.ID, matched symbol.Range, assertion bool, depth int) {
	if assertion {
		return
	}
	leaf := &Tree{Terminal: true, Token: p.current()}
	p.attach(leaf)
}

func (p *parserPolicy) OnNonterminalBegin(id symbol.ID, depth int) {
	node := &Tree{PPR: id}
	if p.root == nil {
		p.root = node
	} else {
		p.attach(node)
	}
	p.stack = append(p.stack, node)
}

func (p *parserPolicy) OnNonterminalEnd(id symbol.ID, depth int) {
	p.stack = p.stack[:len(p.stack)-1]
}

func (p *parserPolicy) attach(leaf *Tree) {
	if len(p.stack) == 0 {
		return
	}
	top := p.stack[len(p.stack)-1]
	top.Children = append(top.Children, leaf)
}

func (p *parserPolicy) IsHelper(id symbol.ID) bool { return p.g.PPRIsHelper(id) }

func (p *parserPolicy) HandleTerminalError(want pt.Term, got symbol.ID, pos int) (bool, error) {
	if p.h.TerminalError(want, p.current()) {
		return true, nil
	}
	return false, fmt.Errorf("parse: unexpected %s at %d, want %s", got, pos, want.Range)
}

func (p *parserPolicy) HandleNonterminalError(nonterminal symbol.ID, got symbol.ID, pos int) (bool, error) {
	if p.h.NonterminalError(nonterminal, p.current()) {
		return true, nil
	}
	return false, fmt.Errorf("parse: unexpected %s at %d in %s", got, pos, p.g.PPRName(nonterminal))
}

func (p *parserPolicy) HandlePrecedenceError(level, required uint32, pos int) (bool, error) {
	return false, fmt.Errorf("parse: precedence predicate failed at %d: %d < %d", pos, level, required)
}
