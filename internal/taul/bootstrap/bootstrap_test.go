package bootstrap

import (
	"testing"

	"github.com/dekarrin/taul/internal/taul/compile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGrammar_CompilesWithNoDiagnostics(t *testing.T) {
	g, order := Grammar()
	require.NotNil(t, g)
	assert.NotEmpty(t, order)
	assert.NotEmpty(t, g.Lexer.Rules)
	assert.NotEmpty(t, g.Parser.Rules)
}

func TestGrammar_IsMemoized(t *testing.T) {
	g1, _ := Grammar()
	g2, _ := Grammar()
	assert.Same(t, g1, g2)
}

func TestParseSource_SimpleLexerAndParserRule(t *testing.T) {
	src := `
DIGIT: [0-9];

num: DIGIT+;
`
	spec, err := ParseSource(src)
	require.NoError(t, err)

	g, diags := compile.Compile(spec)
	require.False(t, diags.HasErrors(), "%v", diags)
	require.NotNil(t, g)
	assert.NotEmpty(t, g.Lexer.Rules)
	assert.NotEmpty(t, g.Parser.Rules)
}

func TestParseSource_RuleWithQualifier(t *testing.T) {
	src := `
WS skip: [ \t]+;

LETTER: [a-zA-Z];
`
	spec, err := ParseSource(src)
	require.NoError(t, err)

	g, diags := compile.Compile(spec)
	require.False(t, diags.HasErrors(), "%v", diags)
	require.NotNil(t, g)
}

func TestParseSource_AlternationAndGrouping(t *testing.T) {
	src := `
A: 'a';
B: 'b';

PAIR: (A B) | (B A);
`
	spec, err := ParseSource(src)
	require.NoError(t, err)

	g, diags := compile.Compile(spec)
	require.False(t, diags.HasErrors(), "%v", diags)
	require.NotNil(t, g)
}

func TestParseSource_PrefixAndPostfixOps(t *testing.T) {
	src := `
A: 'a';

r: &A A? -!A !A A*;
`
	spec, err := ParseSource(src)
	require.NoError(t, err)

	_, diags := compile.Compile(spec)
	require.False(t, diags.HasErrors(), "%v", diags)
}

func TestParseSource_StrayTokenIsParseError(t *testing.T) {
	_, err := ParseSource("@@@ not a grammar")
	assert.Error(t, err)
}

func TestParseSource_ForwardReference(t *testing.T) {
	src := `
START: NUM;

NUM: DIGIT+;

DIGIT: [0-9];
`
	spec, err := ParseSource(src)
	require.NoError(t, err)

	g, diags := compile.Compile(spec)
	require.False(t, diags.HasErrors(), "%v", diags)
	require.NotNil(t, g)
}
