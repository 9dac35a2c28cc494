package compile

import (
	"testing"

	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taul/pt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// digitsAndLetter builds: LPR DIGIT = '0'-'9' (via charset), PPR EXPR = token.
func digitsAndLetter() llspec.Spec {
	w := llspec.NewWriter()
	w.LprDecl("DIGIT")
	w.PprDecl("EXPR")

	w.Lpr("DIGIT", llspec.QualifierNone)
	w.CharsetOp("0-9")
	w.Close()

	w.Ppr("EXPR", llspec.QualifierNone)
	w.TokenOp()
	w.Close()

	return w.Spec()
}

func TestCompile_SimpleGrammar_NoDiagnostics(t *testing.T) {
	g, diags := Compile(digitsAndLetter())
	require.False(t, diags.HasErrors(), "%v", diags)
	require.NotNil(t, g)
	assert.NotEmpty(t, g.Lexer.Rules)
	assert.NotEmpty(t, g.Parser.Rules)
}

func TestCompile_UndeclaredName_RaisesRuleNotFound(t *testing.T) {
	w := llspec.NewWriter()
	w.PprDecl("EXPR")
	w.Ppr("EXPR", llspec.QualifierNone)
	w.NameOp("NOPE")
	w.Close()

	_, diags := Compile(w.Spec())
	require.True(t, diags.HasErrors())
	assert.True(t, diags.Has(TagRuleNotFound))
}

func TestCompile_StrayClose_RaisesDiagnostic(t *testing.T) {
	w := llspec.NewWriter()
	w.Close()

	_, diags := Compile(w.Spec())
	require.True(t, diags.HasErrors())
	assert.True(t, diags.Has(TagStrayClose))
}

// optionalGrammar builds: LPR LETTER = 'a'-'z'; LPR WORD = LETTER LETTER*
func optionalGrammar() llspec.Spec {
	w := llspec.NewWriter()
	w.LprDecl("LETTER")
	w.LprDecl("WORD")

	w.Lpr("LETTER", llspec.QualifierNone)
	w.CharsetOp("a-z")
	w.Close()

	w.Lpr("WORD", llspec.QualifierNone)
	w.NameOp("LETTER")
	w.KleeneStarOp()
	w.NameOp("LETTER")
	w.Close()
	w.Close()

	return w.Spec()
}

func TestCompile_KleeneStar_ProducesRepeatingHelper(t *testing.T) {
	g, diags := Compile(optionalGrammar())
	require.False(t, diags.HasErrors(), "%v", diags)
	require.NotNil(t, g)

	// one of the lexer helper rules should reference itself (the star loop).
	foundSelfRef := false
	for _, r := range g.Lexer.Rules {
		for _, term := range r.Terms {
			if term.Kind == pt.KindNonterminal && term.Nonterminal == r.Nonterminal {
				foundSelfRef = true
			}
		}
	}
	assert.True(t, foundSelfRef, "expected a self-recursive helper rule for kleene_star")
}

func precedenceGrammar() llspec.Spec {
	w := llspec.NewWriter()
	w.PprDecl("EXPR")
	w.Ppr("EXPR", llspec.QualifierPrecedence)

	// base: a number token
	w.TokenOp()
	w.Alternative()

	// left-recursive: EXPR '+' EXPR
	w.NameOp("EXPR")
	w.TokenOp()
	w.NameOp("EXPR")
	w.Close()

	return w.Spec()
}

func TestCompile_PrecedencePpr_ProducesPylonGuardedRules(t *testing.T) {
	g, diags := Compile(precedenceGrammar())
	require.False(t, diags.HasErrors(), "%v", diags)
	require.NotNil(t, g)

	sawPylon := false
	sawPrecedPred := false
	for _, r := range g.Parser.Rules {
		for _, term := range r.Terms {
			switch term.Kind {
			case pt.KindPylon:
				sawPylon = true
			case pt.KindPrecedPred:
				sawPrecedPred = true
			}
		}
	}
	assert.True(t, sawPylon, "expected every precedence alternative to open with a pylon")
	assert.True(t, sawPrecedPred, "expected the recursive alternative to carry a preced_pred guard")
}
