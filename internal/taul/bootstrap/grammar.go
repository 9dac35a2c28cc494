// Package bootstrap is the self-hosted grammar: a hand-written llspec.Spec
// describing taul's own .taul grammar-file syntax, compiled once into a
// Grammar and used to parse a user's .taul source into the llspec.Spec that
// describes *their* grammar. It exists so the only hand-built llspec program
// in the whole system is this one, small, fixed grammar; everything a user
// writes goes through the same compile.Compile pipeline as any other
// grammar.
package bootstrap

import (
	"sync"

	"github.com/dekarrin/taul/internal/taul/compile"
	"github.com/dekarrin/taul/internal/taul/grammar"
	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// Lexer rule indices, fixed by the declaration order buildSpec emits them
// in. nonterminalAlloc (internal/taul/compile) assigns IDs strictly in
// lpr_decl/ppr_decl order, so declaring every name up front before any body
// makes these indices exact: lprID(n) is always symbol.LPRID(n).
const (
	lprAtRight = iota
	lprKwToken
	lprKwFail
	lprColon
	lprSemi
	lprPipe
	lprDashBang
	lprBang
	lprAmp
	lprQuestion
	lprStar
	lprPlus
	lprLParen
	lprRParen
	lprDot
	lprDollar
	lprString
	lprCharset
	lprStrChar
	lprCsetChar
	lprIdent
	lprWS
	lprComment
)

// Parser rule indices, same fixed-by-declaration-order scheme.
const (
	pprGrammar = iota
	pprRule
	pprAltList
	pprAlt
	pprTermSeq
	pprTerm
	pprPrefixOp
	pprPostfixOp
	pprUnit
)

func lprID(n int) symbol.ID { return symbol.LPRID(n) }
func pprID(n int) symbol.ID { return symbol.PPRID(n) }

// StartRule is the parser entry point for a .taul source file.
var StartRule = pprID(pprGrammar)

// candidateOrder lists the LPRs the lexer should try at each source
// position, in priority order. STR_CHAR and CSET_CHAR are deliberately
// excluded: they only ever appear as a name reference from inside STRING
// and CHARSET and must never be attempted as a standalone token.
var candidateOrder = []symbol.ID{
	lprID(lprAtRight),
	lprID(lprKwToken),
	lprID(lprKwFail),
	lprID(lprColon),
	lprID(lprSemi),
	lprID(lprPipe),
	lprID(lprDashBang),
	lprID(lprBang),
	lprID(lprAmp),
	lprID(lprQuestion),
	lprID(lprStar),
	lprID(lprPlus),
	lprID(lprLParen),
	lprID(lprRParen),
	lprID(lprDot),
	lprID(lprDollar),
	lprID(lprString),
	lprID(lprCharset),
	lprID(lprIdent),
	lprID(lprWS),
	lprID(lprComment),
}

var (
	once     sync.Once
	compiled *grammar.Grammar
	order    []symbol.ID
)

// Grammar returns the compiled bootstrap grammar and its lexer candidate
// order, compiling it on first use. The hand-built spec is a fixed internal
// invariant, not user input, so a diagnostic here is a bug in this package
// and panics rather than returning an error.
func Grammar() (*grammar.Grammar, []symbol.ID) {
	once.Do(func() {
		g, diags := compile.Compile(buildSpec())
		if diags.HasErrors() {
			panic("bootstrap: internal grammar failed to compile: " + diags.Error())
		}
		compiled = g
		order = candidateOrder
	})
	return compiled, order
}

// buildSpec hand-writes the llspec opcode stream for the .taul text-grammar
// format described in spec.md §6. Every lpr/ppr name is declared up front,
// in the exact order the lprXxx/pprXxx index constants assume, before any
// body is opened.
func buildSpec() llspec.Spec {
	w := llspec.NewWriter()

	for _, name := range []string{
		"AT_RIGHT", "KW_TOKEN", "KW_FAIL", "COLON", "SEMI", "PIPE",
		"DASH_BANG", "BANG", "AMP", "QUESTION", "STAR", "PLUS",
		"LPAREN", "RPAREN", "DOT", "DOLLAR", "STRING", "CHARSET",
		"STR_CHAR", "CSET_CHAR", "IDENT", "WS", "COMMENT",
	} {
		w.LprDecl(name)
	}
	for _, name := range []string{
		"GRAMMAR", "RULE", "ALT_LIST", "ALT", "TERM_SEQ", "TERM",
		"PREFIX_OP", "POSTFIX_OP", "UNIT",
	} {
		w.PprDecl(name)
	}

	defineLexerRules(w)
	defineParserRules(w)

	return w.Spec()
}

func defineLexerRules(w *llspec.Writer) {
	w.Lpr("AT_RIGHT", llspec.QualifierNone).StringOp("@right").Close()
	w.Lpr("KW_TOKEN", llspec.QualifierNone).StringOp("token").Close()
	w.Lpr("KW_FAIL", llspec.QualifierNone).StringOp("fail").Close()
	w.Lpr("COLON", llspec.QualifierNone).StringOp(":").Close()
	w.Lpr("SEMI", llspec.QualifierNone).StringOp(";").Close()
	w.Lpr("PIPE", llspec.QualifierNone).StringOp("|").Close()
	w.Lpr("DASH_BANG", llspec.QualifierNone).StringOp("-!").Close()
	w.Lpr("BANG", llspec.QualifierNone).StringOp("!").Close()
	w.Lpr("AMP", llspec.QualifierNone).StringOp("&").Close()
	w.Lpr("QUESTION", llspec.QualifierNone).StringOp("?").Close()
	w.Lpr("STAR", llspec.QualifierNone).StringOp("*").Close()
	w.Lpr("PLUS", llspec.QualifierNone).StringOp("+").Close()
	w.Lpr("LPAREN", llspec.QualifierNone).StringOp("(").Close()
	w.Lpr("RPAREN", llspec.QualifierNone).StringOp(")").Close()
	w.Lpr("DOT", llspec.QualifierNone).StringOp(".").Close()
	w.Lpr("DOLLAR", llspec.QualifierNone).StringOp("$").Close()

	// STRING: ' STR_CHAR* '
	w.Lpr("STRING", llspec.QualifierNone).
		StringOp("'").
		KleeneStarOp().NameOp("STR_CHAR").Close().
		StringOp("'").
		Close()

	// STR_CHAR: a backslash followed by any one code point (an escape, not
	// validated further here), or anything but a bare quote/backslash.
	w.Lpr("STR_CHAR", llspec.QualifierNone).
		StringOp(`\`).Any().
		Alternative().NotOp().CharsetOp(`'\\`).Close().
		Close()

	// CHARSET: [ CSET_CHAR+ ]
	w.Lpr("CHARSET", llspec.QualifierNone).
		StringOp("[").
		KleenePlusOp().NameOp("CSET_CHAR").Close().
		StringOp("]").
		Close()

	w.Lpr("CSET_CHAR", llspec.QualifierNone).
		StringOp(`\`).Any().
		Alternative().NotOp().CharsetOp(`]\\`).Close().
		Close()

	// IDENT: a letter or underscore followed by letters, digits, underscores.
	w.Lpr("IDENT", llspec.QualifierNone).
		CharsetOp("a-zA-Z_").
		KleeneStarOp().CharsetOp("a-zA-Z0-9_").Close().
		Close()

	w.Lpr("WS", llspec.QualifierSkip).
		KleenePlusOp().CharsetOp(" \t\r\n").Close().
		Close()

	// COMMENT: # followed by anything but a newline, to end of line.
	w.Lpr("COMMENT", llspec.QualifierSkip).
		StringOp("#").
		KleeneStarOp().NotOp().StringOp("\n").Close().Close().
		Close()
}

func defineParserRules(w *llspec.Writer) {
	// GRAMMAR: RULE*
	w.Ppr("GRAMMAR", llspec.QualifierNone).
		KleeneStarOp().NameOp("RULE").Close().
		Close()

	// RULE: IDENT IDENT? COLON ALT_LIST SEMI
	// the optional IDENT is a qualifier keyword (skip/support/precedence),
	// disambiguated by the transducer inspecting its text rather than by
	// the lexer, since it is lexically identical to a rule name.
	w.Ppr("RULE", llspec.QualifierNone).
		NameOp("IDENT").
		OptionalOp().NameOp("IDENT").Close().
		NameOp("COLON").
		NameOp("ALT_LIST").
		NameOp("SEMI").
		Close()

	// ALT_LIST: ALT (PIPE ALT)*
	w.Ppr("ALT_LIST", llspec.QualifierNone).
		NameOp("ALT").
		KleeneStarOp().Sequence().NameOp("PIPE").NameOp("ALT").Close().Close().
		Close()

	// ALT: AT_RIGHT? TERM_SEQ
	w.Ppr("ALT", llspec.QualifierNone).
		OptionalOp().NameOp("AT_RIGHT").Close().
		NameOp("TERM_SEQ").
		Close()

	// TERM_SEQ: TERM+
	w.Ppr("TERM_SEQ", llspec.QualifierNone).
		KleenePlusOp().NameOp("TERM").Close().
		Close()

	// TERM: PREFIX_OP? UNIT POSTFIX_OP?
	w.Ppr("TERM", llspec.QualifierNone).
		OptionalOp().NameOp("PREFIX_OP").Close().
		NameOp("UNIT").
		OptionalOp().NameOp("POSTFIX_OP").Close().
		Close()

	// PREFIX_OP: AMP | DASH_BANG | BANG
	w.Ppr("PREFIX_OP", llspec.QualifierNone).
		NameOp("AMP").
		Alternative().NameOp("DASH_BANG").
		Alternative().NameOp("BANG").
		Close()

	// POSTFIX_OP: QUESTION | STAR | PLUS
	w.Ppr("POSTFIX_OP", llspec.QualifierNone).
		NameOp("QUESTION").
		Alternative().NameOp("STAR").
		Alternative().NameOp("PLUS").
		Close()

	// UNIT: STRING | CHARSET | KW_TOKEN | KW_FAIL | DOT | DOLLAR | IDENT
	//     | LPAREN TERM_SEQ RPAREN
	w.Ppr("UNIT", llspec.QualifierNone).
		NameOp("STRING").
		Alternative().NameOp("CHARSET").
		Alternative().NameOp("KW_TOKEN").
		Alternative().NameOp("KW_FAIL").
		Alternative().NameOp("DOT").
		Alternative().NameOp("DOLLAR").
		Alternative().NameOp("IDENT").
		Alternative().NameOp("LPAREN").NameOp("TERM_SEQ").NameOp("RPAREN").
		Close()
}
