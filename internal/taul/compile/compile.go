package compile

import (
	"github.com/dekarrin/taul/internal/taul/grammar"
	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// Compile runs the full validation, lowering, set-computation, and mapping
// pipeline over an llspec.Spec, returning a ready-to-use Grammar. Any
// diagnostics raised along the way mean the returned Grammar is nil; a
// caller must check Diagnostics.HasErrors() before using the result.
func Compile(spec llspec.Spec) (*grammar.Grammar, Diagnostics) {
	c := newCompiler(spec)
	c.run()

	if !c.diags.HasErrors() {
		checkUndeclared(c.lexer, &c.diagSink)
		checkUndeclared(c.parser, &c.diagSink)
	}

	if c.diags.HasErrors() {
		return nil, c.diags
	}

	buildMapping(c.lexer.table, symbol.CodePointDomain, &c.diagSink)
	buildMapping(c.parser.table, symbol.LexerRuleDomain, &c.diagSink)

	if c.diags.HasErrors() {
		return nil, c.diags
	}

	lprNames := map[symbol.ID]string{}
	for name, id := range c.lexer.ids {
		lprNames[id] = name
	}
	pprNames := map[symbol.ID]string{}
	for name, id := range c.parser.ids {
		pprNames[id] = name
	}

	g := grammar.New(c.lexer.table, c.parser.table, lprNames, pprNames, c.lexer.qualifiers, c.parser.qualifiers, c.lexer.order, c.parser.order)
	return g, c.diags
}

// checkUndeclared reports a rule that was declared (via *_decl) but never
// given a body.
func checkUndeclared(b *tableBuilder, diags *diagSink) {
	for name := range b.ids {
		if !b.defined[name] {
			diags.raise(TagRuleNeverDefined, 0, "%q was declared but never defined", name)
		}
	}
}
