// Package grammar holds the immutable, compiled result of running a grammar
// compiler pass: the lexer and parser parse tables plus the rule-name lookup
// needed to report sensible diagnostics and debug dumps.
package grammar

import (
	"fmt"

	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// Grammar is the read-only product of a successful compile: both tables,
// ready for internal/taul/lex and internal/taul/parse to execute directly.
type Grammar struct {
	Lexer  *pt.Table
	Parser *pt.Table

	lprNames map[symbol.ID]string
	pprNames map[symbol.ID]string

	lprQualifiers map[symbol.ID]llspec.Qualifier
	pprQualifiers map[symbol.ID]llspec.Qualifier

	lprOrder []symbol.ID
	pprOrder []symbol.ID
}

// New builds a Grammar from the compiled tables and their name/qualifier
// lookups. It is called only by internal/taul/compile once a spec has
// compiled with no diagnostics. lprOrder and pprOrder are the declaration
// order of each table's main (named) rules: lprOrder is the candidate order
// internal/taul/lex.New expects, and pprOrder's first element is a
// grammar's conventional entry rule when a caller has no other way to pick
// one (e.g. cmd/taulc's REPL).
func New(
	lexer, parser *pt.Table,
	lprNames, pprNames map[symbol.ID]string,
	lprQualifiers, pprQualifiers map[symbol.ID]llspec.Qualifier,
	lprOrder, pprOrder []symbol.ID,
) *Grammar {
	return &Grammar{
		Lexer:         lexer,
		Parser:        parser,
		lprNames:      lprNames,
		pprNames:      pprNames,
		lprOrder:      lprOrder,
		pprOrder:      pprOrder,
		lprQualifiers: lprQualifiers,
		pprQualifiers: pprQualifiers,
	}
}

// LPRName returns the declared name of the lexer rule with id, or a
// synthetic name for a compiler-generated helper.
func (g *Grammar) LPRName(id symbol.ID) string {
	if name, ok := g.lprNames[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("$lpr_helper_%d", uint32(id))
}

// PPRName returns the declared name of the parser rule with id, or a
// synthetic name for a compiler-generated helper.
func (g *Grammar) PPRName(id symbol.ID) string {
	if name, ok := g.pprNames[id]; ok && name != "" {
		return name
	}
	return fmt.Sprintf("$ppr_helper_%d", uint32(id))
}

// LPRQualifier returns the qualifier a declared lexer rule was given.
func (g *Grammar) LPRQualifier(id symbol.ID) llspec.Qualifier { return g.lprQualifiers[id] }

// PPRQualifier returns the qualifier a declared parser rule was given.
func (g *Grammar) PPRQualifier(id symbol.ID) llspec.Qualifier { return g.pprQualifiers[id] }

// LPROrder returns the main LPRs in declaration order, the candidate order
// internal/taul/lex.New expects.
func (g *Grammar) LPROrder() []symbol.ID { return g.lprOrder }

// PPROrder returns the main PPRs in declaration order.
func (g *Grammar) PPROrder() []symbol.ID { return g.pprOrder }

// LPRIsHelper reports whether id has no declared name of its own, i.e. it was
// allocated by the lowering pass rather than by an lpr_decl/ppr_decl.
func (g *Grammar) LPRIsHelper(id symbol.ID) bool {
	_, ok := g.lprNames[id]
	return !ok
}

func (g *Grammar) PPRIsHelper(id symbol.ID) bool {
	_, ok := g.pprNames[id]
	return !ok
}

// String renders both tables for debugging.
func (g *Grammar) String() string {
	return "=== lexer table ===\n" + g.Lexer.String() + "\n=== parser table ===\n" + g.Parser.String()
}
