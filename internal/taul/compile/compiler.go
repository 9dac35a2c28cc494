package compile

import (
	"github.com/dekarrin/taul/internal/taul/idgroup"
	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// tableBuilder accumulates one of the two compiled tables (lexer or parser)
// during a single Compile call.
type tableBuilder struct {
	domain symbol.Range
	alloc  *nonterminalAlloc
	table  *pt.Table

	// name -> allocated ID, populated by *_decl and by the first lpr/ppr seen
	// for a name that was never separately declared.
	ids map[string]symbol.ID
	// name -> true once its body (lpr/ppr) has been processed.
	defined map[string]bool

	qualifiers map[symbol.ID]llspec.Qualifier

	// declaration order of main non-terminals, for deterministic iteration.
	order []symbol.ID
}

func newTableBuilder(domain, nonterminalDomain symbol.Range) *tableBuilder {
	return &tableBuilder{
		domain:     domain,
		alloc:      newNonterminalAlloc(nonterminalDomain.Low),
		table:      pt.NewTable(idgroup.New(domain)),
		ids:        map[string]symbol.ID{},
		defined:    map[string]bool{},
		qualifiers: map[symbol.ID]llspec.Qualifier{},
	}
}

func (b *tableBuilder) declare(pos int, name string) symbol.ID {
	if id, ok := b.ids[name]; ok {
		return id
	}
	id := b.alloc.Define(pos, name)
	b.ids[name] = id
	b.order = append(b.order, id)
	return id
}

// compiler walks an llspec.Spec with a cursor (rather than the push-style
// Visitor, since the lowering pass needs arbitrary lookahead and re-entrant
// sub-parses for kleene_plus) and produces the lexer and parser pt.Table
// values plus any diagnostics raised along the way.
type compiler struct {
	diagSink

	recs []llspec.Record
	pos  int

	lexer  *tableBuilder
	parser *tableBuilder

	// set once DoneDefiningMain has been called on both allocators, after the
	// decl/def top-level pass and before any helper non-terminal is made.
	doneMainPass bool
}

func newCompiler(spec llspec.Spec) *compiler {
	return &compiler{
		recs:   spec.Records,
		lexer:  newTableBuilder(symbol.CodePointDomain, symbol.Range{Low: symbol.FirstLPRID, High: symbol.LastLPRID}),
		parser: newTableBuilder(symbol.LexerRuleDomain, symbol.Range{Low: symbol.FirstPPRID, High: symbol.LastPPRID}),
	}
}

// other returns the tableBuilder that isn't b, for the cross-table name
// checks a single shared lpr/ppr namespace requires.
func (c *compiler) other(b *tableBuilder) *tableBuilder {
	if b == c.lexer {
		return c.parser
	}
	return c.lexer
}

// declareIn declares name in target, raising rule_name_conflict instead if
// name is already declared in target's sibling table under the other kind.
// lpr and ppr names share one namespace: a name is either an LPR or a PPR,
// never both.
func (c *compiler) declareIn(target *tableBuilder, pos int, name string) symbol.ID {
	other := c.other(target)
	if id, ok := other.ids[name]; ok {
		c.raise(TagRuleNameConflict, pos, "%q is already declared as a different kind of rule", name)
		return id
	}
	return target.declare(pos, name)
}

func (c *compiler) atEnd() bool { return c.pos >= len(c.recs) }

func (c *compiler) peek() (llspec.Record, bool) {
	if c.atEnd() {
		return llspec.Record{}, false
	}
	return c.recs[c.pos], true
}

func (c *compiler) advance() llspec.Record {
	r := c.recs[c.pos]
	c.pos++
	return r
}

// run performs the full compile: a top-level pass over decls/defs, dispatched
// into per-rule lowering, producing both tables.
func (c *compiler) run() {
	for !c.atEnd() {
		r, _ := c.peek()
		switch r.Op {
		case llspec.LprDecl:
			c.advance()
			c.declareIn(c.lexer, r.Pos, r.Name)
		case llspec.PprDecl:
			c.advance()
			c.declareIn(c.parser, r.Pos, r.Name)
		case llspec.Lpr:
			c.advance()
			c.compileRule(c.lexer, r)
		case llspec.Ppr:
			c.advance()
			c.compileRule(c.parser, r)
		case llspec.Close:
			c.advance()
			c.raise(TagStrayClose, r.Pos, "close with nothing open")
		default:
			c.advance()
			c.raise(TagIllegalInNoScope, r.Pos, "%s is not legal outside of an lpr or ppr body", r.Op)
			c.skipIfComposite(r.Op)
		}
	}

	c.lexer.alloc.DoneDefiningMain()
	c.parser.alloc.DoneDefiningMain()
	c.doneMainPass = true
}

// compileRule lowers one full lpr/ppr body (a sequence of alternatives up to
// the matching close) into zero or more rules under its main non-terminal.
func (c *compiler) compileRule(b *tableBuilder, open llspec.Record) {
	if b.defined[open.Name] {
		c.raise(TagRuleAlreadyDefined, open.Pos, "%q is already defined", open.Name)
	}
	b.defined[open.Name] = true
	id := c.declareIn(b, open.Pos, open.Name)
	b.qualifiers[id] = open.Qualifier

	type altBuf struct {
		rightAssoc bool
		terms      []pt.Term
	}
	var alts []altBuf

	for {
		r, ok := c.peek()
		if !ok {
			c.raise(TagScopeNotClosed, open.Pos, "%s %q was never closed", open.Op, open.Name)
			break
		}
		if r.Op == llspec.Close {
			c.advance()
			break
		}

		var cur altBuf
		if r.Op == llspec.RightAssoc {
			c.advance()
			if open.Qualifier != llspec.QualifierPrecedence {
				c.raise(TagIllegalRightAssoc, r.Pos, "right_assoc is only legal in a precedence ppr")
			}
			cur.rightAssoc = true
		}

		cur.terms = c.parseTermSequence(b, id)
		alts = append(alts, altBuf{rightAssoc: cur.rightAssoc, terms: cur.terms})

		r, ok = c.peek()
		if !ok {
			c.raise(TagScopeNotClosed, open.Pos, "%s %q was never closed", open.Op, open.Name)
			break
		}
		if r.Op == llspec.Alternative {
			c.advance()
			continue
		}
		if r.Op == llspec.Close {
			c.advance()
			break
		}
	}

	if open.Qualifier == llspec.QualifierPrecedence {
		if b != c.parser {
			c.raise(TagIllegalQualifier, open.Pos, "precedence qualifier is only legal on a ppr")
		}
		rawAlts := make([]precedAlt, len(alts))
		for i, a := range alts {
			rawAlts[i] = precedAlt{rightAssoc: a.rightAssoc, terms: a.terms}
		}
		for _, rule := range reshapePrecedence(id, rawAlts) {
			b.table.AddRule(rule)
		}
		return
	}

	for _, a := range alts {
		b.table.AddRule(pt.Rule{Nonterminal: id, Terms: a.terms})
	}
}

// parseTermSequence parses leaves and composites, appending their lowered
// terms in order, until it sees `alternative` or `close` belonging to the
// caller's scope (ownerID is the enclosing lpr/ppr, used to resolve bare self
// references and to reject illegal cross-table references).
func (c *compiler) parseTermSequence(b *tableBuilder, ownerID symbol.ID) []pt.Term {
	var terms []pt.Term
	for {
		r, ok := c.peek()
		if !ok || r.Op == llspec.Alternative || r.Op == llspec.Close {
			return terms
		}
		terms = append(terms, c.parseOneUnit(b, ownerID)...)
	}
}

// parseOneUnit consumes exactly one leaf or composite opcode and returns the
// term(s) it lowers to.
func (c *compiler) parseOneUnit(b *tableBuilder, ownerID symbol.ID) []pt.Term {
	r := c.advance()
	switch r.Op {
	case llspec.End:
		return []pt.Term{pt.Terminal(symbol.Range{Low: c.endSentinel(b), High: c.endSentinel(b)}, false)}
	case llspec.Any:
		if b == c.lexer {
			return []pt.Term{pt.Terminal(symbol.Range{Low: symbol.FirstNormalCPID, High: symbol.LastNormalCPID}, false)}
		}
		return []pt.Term{pt.Terminal(symbol.Range{Low: symbol.FirstNormalLPRID, High: symbol.LastNormalLPRID}, false)}
	case llspec.Token:
		if b != c.parser {
			c.raise(TagIllegalInLprScope, r.Pos, "token is only legal in a ppr")
			return nil
		}
		return []pt.Term{pt.Terminal(symbol.Range{Low: symbol.FirstNormalLPRID, High: symbol.LastNormalLPRID}, false)}
	case llspec.Failure:
		if b != c.parser {
			c.raise(TagIllegalInLprScope, r.Pos, "failure is only legal in a ppr")
			return nil
		}
		return []pt.Term{pt.Terminal(symbol.Range{Low: symbol.FailureLPR, High: symbol.FailureLPR}, false)}
	case llspec.String:
		return c.lowerString(b, r)
	case llspec.Charset:
		return c.lowerCharset(b, r)
	case llspec.Name:
		return c.lowerName(b, ownerID, r)
	case llspec.Sequence:
		return c.lowerSequence(b, ownerID, r)
	case llspec.Lookahead:
		return c.lowerSetLike(b, ownerID, r, llspec.Lookahead)
	case llspec.LookaheadNot:
		return c.lowerSetLike(b, ownerID, r, llspec.LookaheadNot)
	case llspec.Not:
		return c.lowerSetLike(b, ownerID, r, llspec.Not)
	case llspec.Optional:
		return c.lowerOptionalOrStar(b, ownerID, r, false)
	case llspec.KleeneStar:
		return c.lowerOptionalOrStar(b, ownerID, r, true)
	case llspec.KleenePlus:
		return c.lowerKleenePlus(b, ownerID, r)
	default:
		c.raise(TagIllegalInNoScope, r.Pos, "%s is not legal here", r.Op)
		return nil
	}
}

func (c *compiler) endSentinel(b *tableBuilder) symbol.ID {
	if b == c.lexer {
		return symbol.EndOfCPInput
	}
	return symbol.EndOfLPRInput
}

// skipIfComposite discards one already-consumed composite opcode's body
// (used only to resynchronize after raising a diagnostic for content that
// should never have been parsed at all).
func (c *compiler) skipIfComposite(op llspec.Opcode) {
	depth := 0
	switch op {
	case llspec.Sequence, llspec.Lookahead, llspec.LookaheadNot, llspec.Not,
		llspec.Optional, llspec.KleeneStar, llspec.KleenePlus, llspec.Lpr, llspec.Ppr:
		depth = 1
	default:
		return
	}
	for depth > 0 && !c.atEnd() {
		r := c.advance()
		switch r.Op {
		case llspec.Sequence, llspec.Lookahead, llspec.LookaheadNot, llspec.Not,
			llspec.Optional, llspec.KleeneStar, llspec.KleenePlus, llspec.Lpr, llspec.Ppr:
			depth++
		case llspec.Close:
			depth--
		}
	}
}

func (c *compiler) lowerString(b *tableBuilder, r llspec.Record) []pt.Term {
	if b != c.lexer {
		c.raise(TagIllegalInPprScope, r.Pos, "string is only legal in an lpr")
		return nil
	}
	text, err := unescape(r.Text)
	if err != nil {
		c.raise(TagIllegalStringLiteral, r.Pos, "%v", err)
		return nil
	}
	var terms []pt.Term
	for _, ch := range text {
		if !isVisibleASCII(ch) && !isLegalCodePoint(ch) {
			c.raise(TagIllegalStringLiteral, r.Pos, "illegal code point %U in string literal", ch)
			continue
		}
		id := symbol.CPID(ch)
		terms = append(terms, pt.Terminal(symbol.Range{Low: id, High: id}, false))
	}
	return terms
}

func (c *compiler) lowerCharset(b *tableBuilder, r llspec.Record) []pt.Term {
	if b != c.lexer {
		c.raise(TagIllegalInPprScope, r.Pos, "charset is only legal in an lpr")
		return nil
	}
	ranges, err := parseCharset(r.Text)
	if err != nil {
		c.raise(TagIllegalCharsetLiteral, r.Pos, "%v", err)
		return nil
	}
	var symRanges []symbol.Range
	for _, cr := range ranges {
		if !isLegalCodePoint(cr.Low) || !isLegalCodePoint(cr.High) {
			c.raise(TagIllegalCharsetLiteral, r.Pos, "illegal code point in charset literal")
			continue
		}
		lo, hi := cr.Low, cr.High
		if lo > hi {
			lo, hi = hi, lo
		}
		symRanges = append(symRanges, symbol.Range{Low: symbol.CPID(lo), High: symbol.CPID(hi)})
	}
	if len(symRanges) == 0 {
		return nil
	}
	if len(symRanges) == 1 {
		return []pt.Term{pt.Terminal(symRanges[0], false)}
	}

	helper := b.alloc.Define(r.Pos, "")
	for _, sr := range symRanges {
		b.table.AddRule(pt.Rule{Nonterminal: helper, Terms: []pt.Term{pt.Terminal(sr, false)}})
	}
	return []pt.Term{pt.Nonterminal(helper, pt.NoPreced)}
}

// lowerName resolves a name leaf against the single namespace shared by lprs
// and pprs: inside an lpr body the target must be an lpr; inside a ppr body,
// a name resolving to an lpr is a terminal reference (match that token) and
// one resolving to a ppr is a non-terminal reference carrying the
// precedence-value operand the lowering pass attached (0 outside precedence
// rules).
func (c *compiler) lowerName(b *tableBuilder, ownerID symbol.ID, r llspec.Record) []pt.Term {
	if b == c.lexer {
		if id, ok := c.lexer.ids[r.Name]; ok {
			return []pt.Term{pt.Nonterminal(id, pt.NoPreced)}
		}
		if _, ok := c.parser.ids[r.Name]; ok {
			c.raise(TagRuleMayNotBePpr, r.Pos, "%q is a ppr and may not be referenced from an lpr", r.Name)
			return nil
		}
		c.raise(TagRuleNotFound, r.Pos, "%q was never declared", r.Name)
		return nil
	}

	if id, ok := c.lexer.ids[r.Name]; ok {
		return []pt.Term{pt.Terminal(symbol.Range{Low: id, High: id}, false)}
	}
	if id, ok := c.parser.ids[r.Name]; ok {
		return []pt.Term{pt.Nonterminal(id, r.PrecedVal)}
	}
	c.raise(TagRuleNotFound, r.Pos, "%q was never declared", r.Name)
	return nil
}

// lowerSequence is transparent: its body's terms are spliced directly into
// the caller's list, since flattening a fixed-order concatenation changes
// nothing about what it matches.
func (c *compiler) lowerSequence(b *tableBuilder, ownerID symbol.ID, open llspec.Record) []pt.Term {
	var terms []pt.Term
	for {
		r, ok := c.peek()
		if !ok {
			c.raise(TagScopeNotClosed, open.Pos, "sequence was never closed")
			return terms
		}
		if r.Op == llspec.Close {
			c.advance()
			return terms
		}
		if r.Op == llspec.Alternative {
			c.advance()
			c.raise(TagIllegalInNoAlternationScope, r.Pos, "alternative is not legal directly inside a sequence")
			continue
		}
		terms = append(terms, c.parseOneUnit(b, ownerID)...)
	}
}

// lowerSetLike handles lookahead, lookahead_not, and not: the body accumulates
// a set of terminal ranges from terminal-producing leaves only, which is then
// expanded into one alternative per range under a fresh helper non-terminal.
func (c *compiler) lowerSetLike(b *tableBuilder, ownerID symbol.ID, open llspec.Record, mode llspec.Opcode) []pt.Term {
	set := symbol.NewSet(b.domain)
	for {
		r, ok := c.peek()
		if !ok {
			c.raise(TagScopeNotClosed, open.Pos, "%s was never closed", open.Op)
			break
		}
		if r.Op == llspec.Close {
			c.advance()
			break
		}
		if r.Op == llspec.Alternative {
			c.advance()
			c.raise(TagIllegalInNoAlternationScope, r.Pos, "alternative is not legal inside %s", open.Op)
			continue
		}
		switch r.Op {
		case llspec.Any:
			c.advance()
			if b == c.lexer {
				set.AddRange(symbol.FirstNormalCPID, symbol.LastNormalCPID)
			} else {
				set.AddRange(symbol.FirstNormalLPRID, symbol.LastNormalLPRID)
			}
		case llspec.End:
			c.advance()
			id := c.endSentinel(b)
			set.AddRange(id, id)
		case llspec.Token:
			c.advance()
			if b != c.parser {
				c.raise(TagIllegalInLprScope, r.Pos, "token is only legal in a ppr")
				continue
			}
			set.AddRange(symbol.FirstNormalLPRID, symbol.LastNormalLPRID)
		case llspec.Failure:
			c.advance()
			if b != c.parser {
				c.raise(TagIllegalInLprScope, r.Pos, "failure is only legal in a ppr")
				continue
			}
			set.AddRange(symbol.FailureLPR, symbol.FailureLPR)
		case llspec.String:
			c.advance()
			for _, t := range c.lowerString(b, r) {
				set.AddRange(t.Range.Low, t.Range.High)
			}
		case llspec.Charset:
			c.advance()
			if b != c.lexer {
				c.raise(TagIllegalInPprScope, r.Pos, "charset is only legal in an lpr")
				continue
			}
			ranges, err := parseCharset(r.Text)
			if err != nil {
				c.raise(TagIllegalCharsetLiteral, r.Pos, "%v", err)
				continue
			}
			for _, cr := range ranges {
				lo, hi := cr.Low, cr.High
				if lo > hi {
					lo, hi = hi, lo
				}
				set.AddRange(symbol.CPID(lo), symbol.CPID(hi))
			}
		case llspec.Name:
			c.advance()
			if b != c.parser {
				c.raise(TagIllegalInSingleTerminalScope, r.Pos, "%q is not legal inside %s of an lpr", r.Name, open.Op)
				continue
			}
			id, ok := c.lexer.ids[r.Name]
			if !ok {
				c.raise(TagIllegalInSingleTerminalScope, r.Pos, "%q does not refer to an lpr and is not legal inside %s", r.Name, open.Op)
				continue
			}
			set.AddRange(id, id)
		default:
			c.advance()
			c.raise(TagIllegalInSingleTerminalScope, r.Pos, "%s is not a terminal and is not legal inside %s", r.Op, open.Op)
			c.skipIfComposite(r.Op)
		}
	}

	if mode != llspec.Lookahead {
		set = set.Inverse()
		set.RemoveEpsilon()
		end := c.endSentinel(b)
		set.RemoveRange(end, end)
	}

	helper := b.alloc.Define(open.Pos, "")
	assertion := mode != llspec.Not
	for _, sr := range set.Ranges() {
		b.table.AddRule(pt.Rule{Nonterminal: helper, Terms: []pt.Term{pt.Terminal(sr, assertion)}})
	}
	return []pt.Term{pt.Nonterminal(helper, pt.NoPreced)}
}

// lowerOptionalOrStar handles optional and kleene_star: a helper with an
// empty alternative pre-appended, plus one alternative holding the single
// permitted subexpression's terms.
func (c *compiler) lowerOptionalOrStar(b *tableBuilder, ownerID symbol.ID, open llspec.Record, isStar bool) []pt.Term {
	helper := b.alloc.Define(open.Pos, "")
	b.table.AddRule(pt.Rule{Nonterminal: helper, Terms: nil})

	terms := c.parseSingleSubexprBody(b, ownerID, open, true)
	if isStar {
		terms = append(append([]pt.Term{}, terms...), pt.Nonterminal(helper, pt.NoPreced))
	}
	b.table.AddRule(pt.Rule{Nonterminal: helper, Terms: terms})

	return []pt.Term{pt.Nonterminal(helper, pt.NoPreced)}
}

// lowerKleenePlus decomposes V+ into "V then V*": the subexpression is
// lowered twice, once directly and once inside a nested kleene_star helper,
// since Go has no value to "replay" here other than re-running the lowering
// itself over the same captured record span.
func (c *compiler) lowerKleenePlus(b *tableBuilder, ownerID symbol.ID, open llspec.Record) []pt.Term {
	start := c.pos
	firstTerms := c.parseSingleSubexprBody(b, ownerID, open, false)
	end := c.pos

	var secondTerms []pt.Term
	saved := c.diags
	c.diags = nil
	func() {
		savedPos := c.pos
		c.pos = start
		secondTerms = c.parseSingleSubexprBody(b, ownerID, open, true)
		c.pos = savedPos
	}()
	c.diags = saved
	c.pos = end

	star := b.alloc.Define(open.Pos, "")
	b.table.AddRule(pt.Rule{Nonterminal: star, Terms: nil})
	starTerms := append(append([]pt.Term{}, secondTerms...), pt.Nonterminal(star, pt.NoPreced))
	b.table.AddRule(pt.Rule{Nonterminal: star, Terms: starTerms})

	outer := b.alloc.Define(open.Pos, "")
	outerTerms := append(append([]pt.Term{}, firstTerms...), pt.Nonterminal(star, pt.NoPreced))
	b.table.AddRule(pt.Rule{Nonterminal: outer, Terms: outerTerms})

	if r, ok := c.peek(); ok && r.Op == llspec.Close {
		c.advance()
	} else {
		c.raise(TagScopeNotClosed, open.Pos, "kleene_plus was never closed")
	}

	return []pt.Term{pt.Nonterminal(outer, pt.NoPreced)}
}

// parseSingleSubexprBody parses exactly one leaf-or-composite unit as the
// sole content of a single-subexpr, no-alternation scope (optional,
// kleene_star, kleene_plus), raising a diagnostic (unless suppressed, for
// kleene_plus's second pass) for any extra content before the matching
// close. It does not consume the terminating close itself unless
// consumeClose is requested.
func (c *compiler) parseSingleSubexprBody(b *tableBuilder, ownerID symbol.ID, open llspec.Record, consumeClose bool) []pt.Term {
	r, ok := c.peek()
	if !ok {
		c.raise(TagScopeNotClosed, open.Pos, "%s was never closed", open.Op)
		return nil
	}
	if r.Op == llspec.Close {
		c.raise(TagIllegalInSingleSubexprScope, r.Pos, "%s requires exactly one subexpression", open.Op)
		if consumeClose {
			c.advance()
		}
		return nil
	}
	if r.Op == llspec.Alternative {
		c.advance()
		c.raise(TagIllegalInNoAlternationScope, r.Pos, "alternative is not legal inside %s", open.Op)
		return c.parseSingleSubexprBody(b, ownerID, open, consumeClose)
	}

	terms := c.parseOneUnit(b, ownerID)

	for {
		r, ok = c.peek()
		if !ok {
			c.raise(TagScopeNotClosed, open.Pos, "%s was never closed", open.Op)
			return terms
		}
		if r.Op == llspec.Close {
			if consumeClose {
				c.advance()
			}
			return terms
		}
		if r.Op == llspec.Alternative {
			c.advance()
			c.raise(TagIllegalInNoAlternationScope, r.Pos, "alternative is not legal inside %s", open.Op)
			continue
		}
		c.raise(TagIllegalInSingleSubexprScope, r.Pos, "%s requires exactly one subexpression", open.Op)
		c.parseOneUnit(b, ownerID)
	}
}
