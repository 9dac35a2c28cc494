package parse

import (
	"testing"

	"github.com/dekarrin/taul/internal/taul/grammar"
	"github.com/dekarrin/taul/internal/taul/idgroup"
	"github.com/dekarrin/taul/internal/taul/lex"
	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/dekarrin/taul/internal/taul/symbol"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildExprGrammar builds a parser table for EXPR -> NUM PLUS NUM, with NUM
// and PLUS as pre-existing lexer rule IDs (no lexer table is needed since the
// tests feed pre-built lex.Token values directly).
func buildExprGrammar() (*grammar.Grammar, symbol.ID, symbol.ID, symbol.ID) {
	num := symbol.LPRID(0)
	plus := symbol.LPRID(1)

	domain := symbol.ParserRuleDomain
	grouper := idgroup.New(domain)
	table := pt.NewTable(grouper)

	expr := symbol.PPRID(0)
	table.AddRule(pt.Rule{Nonterminal: expr, Terms: []pt.Term{
		pt.Terminal(symbol.Range{Low: num, High: num}, false),
		pt.Terminal(symbol.Range{Low: plus, High: plus}, false),
		pt.Terminal(symbol.Range{Low: num, High: num}, false),
	}})

	grouper.AddUseCase(num, num)
	grouper.AddUseCase(plus, plus)

	table.Map(pt.Key{Nonterminal: expr, Group: grouper.GroupID(num)}, 0)

	pprNames := map[symbol.ID]string{expr: "EXPR"}
	lprNames := map[symbol.ID]string{num: "NUM", plus: "PLUS"}

	g := grammar.New(pt.NewTable(idgroup.New(symbol.CodePointDomain)), table, lprNames, pprNames,
		map[symbol.ID]llspec.Qualifier{}, map[symbol.ID]llspec.Qualifier{}, []symbol.ID{num, plus}, []symbol.ID{expr})

	return g, expr, num, plus
}

func TestParse_MatchesSimpleExpression(t *testing.T) {
	g, expr, num, plus := buildExprGrammar()
	tokens := []lex.Token{
		{LPR: num, Text: "1"},
		{LPR: plus, Text: "+"},
		{LPR: num, Text: "2"},
	}

	p := New(g)
	tree, err := p.Parse(expr, tokens, nil)
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, expr, tree.PPR)
	require.Len(t, tree.Children, 3)
	assert.Equal(t, "1", tree.Children[0].Token.Text)
	assert.Equal(t, "+", tree.Children[1].Token.Text)
	assert.Equal(t, "2", tree.Children[2].Token.Text)
	assert.Equal(t, "1+2", tree.Text())
}

func TestParse_UnexpectedTokenReturnsError(t *testing.T) {
	g, expr, num, _ := buildExprGrammar()
	tokens := []lex.Token{
		{LPR: num, Text: "1"},
	}

	p := New(g)
	_, err := p.Parse(expr, tokens, nil)
	assert.Error(t, err)
}
