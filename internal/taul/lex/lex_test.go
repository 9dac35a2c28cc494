package lex

import (
	"testing"

	"github.com/dekarrin/taul/internal/source"
	"github.com/dekarrin/taul/internal/taul/compile"
	"github.com/dekarrin/taul/internal/taul/grammar"
	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taul/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// numPlusGrammar declares NUM = [0-9]+, PLUS = '+', WS (skip) = [ ]+, in that
// declaration order.
func numPlusGrammar(t *testing.T) (*grammar.Grammar, symbol.ID, symbol.ID, symbol.ID) {
	t.Helper()
	w := llspec.NewWriter()
	w.LprDecl("NUM")
	w.LprDecl("PLUS")
	w.LprDecl("WS")

	w.Lpr("NUM", llspec.QualifierNone)
	w.KleenePlusOp().CharsetOp("0-9").Close()
	w.Close()

	w.Lpr("PLUS", llspec.QualifierNone)
	w.StringOp("+")
	w.Close()

	w.Lpr("WS", llspec.QualifierSkip)
	w.KleenePlusOp().CharsetOp(" ").Close()
	w.Close()

	g, diags := compile.Compile(w.Spec())
	require.False(t, diags.HasErrors(), "%v", diags)

	return g, symbol.LPRID(0), symbol.LPRID(1), symbol.LPRID(2)
}

func TestLexer_TokenizesAndFiltersSkips(t *testing.T) {
	g, num, plus, ws := numPlusGrammar(t)
	order := []symbol.ID{num, plus, ws}

	l := New(g, order)
	l.CutSkipTokens = true

	buf := source.New()
	buf.AddStr("12 + 3")

	tokens, err := l.Tokenize(buf)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, "12", tokens[0].Text)
	assert.Equal(t, num, tokens[0].LPR)
	assert.Equal(t, "+", tokens[1].Text)
	assert.Equal(t, plus, tokens[1].LPR)
	assert.Equal(t, "3", tokens[2].Text)
}

func TestLexer_KeepsSkipTokensWhenNotCut(t *testing.T) {
	g, num, plus, ws := numPlusGrammar(t)
	order := []symbol.ID{num, plus, ws}

	l := New(g, order)
	l.CutSkipTokens = false

	buf := source.New()
	buf.AddStr("1 2")

	tokens, err := l.Tokenize(buf)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, ws, tokens[1].LPR)
}

// digitAndNumGrammar declares DIGIT (support) = [0-9], NUM = DIGIT+, so DIGIT
// exists only to be referenced from NUM and must never win the longest-match
// race as a token in its own right.
func digitAndNumGrammar(t *testing.T) (*grammar.Grammar, symbol.ID, symbol.ID) {
	t.Helper()
	w := llspec.NewWriter()
	w.LprDecl("DIGIT")
	w.LprDecl("NUM")

	w.Lpr("DIGIT", llspec.QualifierSupport)
	w.CharsetOp("0-9")
	w.Close()

	w.Lpr("NUM", llspec.QualifierNone)
	w.KleenePlusOp().NameOp("DIGIT").Close()
	w.Close()

	g, diags := compile.Compile(w.Spec())
	require.False(t, diags.HasErrors(), "%v", diags)

	return g, symbol.LPRID(0), symbol.LPRID(1)
}

func TestLexer_ExcludesSupportQualifiedLPRsFromCandidates(t *testing.T) {
	g, digit, num := digitAndNumGrammar(t)

	l := New(g, g.LPROrder())
	require.Len(t, l.candidates, 1)
	assert.Equal(t, num, l.candidates[0].id)

	buf := source.New()
	buf.AddStr("123")

	tokens, err := l.Tokenize(buf)
	require.NoError(t, err)
	require.Len(t, tokens, 1)
	assert.Equal(t, num, tokens[0].LPR)
	assert.Equal(t, "123", tokens[0].Text)
	assert.NotEqual(t, digit, tokens[0].LPR)
}

func TestLexer_UnrecognizedCharacterProducesFailureToken(t *testing.T) {
	g, num, plus, ws := numPlusGrammar(t)
	order := []symbol.ID{num, plus, ws}

	l := New(g, order)
	l.CutSkipTokens = true

	buf := source.New()
	buf.AddStr("1@2")

	tokens, err := l.Tokenize(buf)
	require.NoError(t, err)
	require.Len(t, tokens, 3)
	assert.Equal(t, symbol.FailureLPR, tokens[1].LPR)
	assert.Equal(t, "@", tokens[1].Text)
}
