package bootstrap

import (
	"fmt"
	"unicode"

	"github.com/dekarrin/taul/internal/source"
	"github.com/dekarrin/taul/internal/taul/lex"
	"github.com/dekarrin/taul/internal/taul/llspec"
	"github.com/dekarrin/taul/internal/taul/parse"
	"github.com/dekarrin/taul/internal/taulerr"
)

// ParseSource tokenizes and parses text as a .taul grammar file and
// transduces the resulting parse tree into the llspec.Spec it describes.
// The returned Spec has not itself been compiled; callers pass it to
// compile.Compile.
func ParseSource(text string) (llspec.Spec, error) {
	g, order := Grammar()

	buf := source.New()
	buf.AddStr(text)

	lexer := lex.New(g, order)
	lexer.CutSkipTokens = true
	tokens, err := lexer.Tokenize(buf)
	if err != nil {
		return llspec.Spec{}, taulerr.Wrap(err, taulerr.ErrParse)
	}

	p := parse.New(g)
	tree, err := p.Parse(StartRule, tokens, nil)
	if err != nil {
		return llspec.Spec{}, taulerr.Wrap(err, taulerr.ErrParse)
	}

	w := llspec.NewWriter()
	ruleNames := tree.Children

	// Every lpr/ppr name is declared before any body is opened, so forward
	// references (a ppr naming a ppr or lpr declared later in the source)
	// resolve regardless of textual order.
	for _, rn := range ruleNames {
		name := rn.Children[0].Token.Text
		if isLexerName(name) {
			w.LprDecl(name)
		} else {
			w.PprDecl(name)
		}
	}

	for _, rn := range ruleNames {
		if err := transduceRule(rn, w); err != nil {
			return llspec.Spec{}, taulerr.Wrap(err, taulerr.ErrParse)
		}
	}

	return w.Spec(), nil
}

// isLexerName applies the convention this grammar format uses to tell lexer
// rules from parser rules without a dedicated keyword: an initial uppercase
// letter names an lpr, anything else a ppr.
func isLexerName(name string) bool {
	if name == "" {
		return false
	}
	return unicode.IsUpper(rune(name[0]))
}

func transduceRule(r *parse.Tree, w *llspec.Writer) error {
	name := r.Children[0].Token.Text
	idx := 1

	qualifier := llspec.QualifierNone
	if idx < len(r.Children) && r.Children[idx].Terminal && r.Children[idx].Token.LPR == lprID(lprIdent) {
		qtext := r.Children[idx].Token.Text
		switch qtext {
		case "skip":
			qualifier = llspec.QualifierSkip
		case "support":
			qualifier = llspec.QualifierSupport
		case "precedence":
			qualifier = llspec.QualifierPrecedence
		default:
			return fmt.Errorf("bootstrap: %q is not a known rule qualifier", qtext)
		}
		idx++
	}
	idx++ // COLON
	altList := r.Children[idx]
	idx++ // ALT_LIST
	// SEMI follows; nothing further to read from it.

	if isLexerName(name) {
		w.Pos(r.Children[0].Token.Low).Lpr(name, qualifier)
	} else {
		w.Pos(r.Children[0].Token.Low).Ppr(name, qualifier)
	}

	alts := nonTerminalChildren(altList)
	for i, alt := range alts {
		if i > 0 {
			w.Alternative()
		}
		transduceAlt(alt, w)
	}
	w.Close()

	return nil
}

func transduceAlt(a *parse.Tree, w *llspec.Writer) {
	idx := 0
	if idx < len(a.Children) && a.Children[idx].Terminal && a.Children[idx].Token.LPR == lprID(lprAtRight) {
		w.RightAssocOp()
		idx++
	}
	termSeq := a.Children[idx]
	for _, term := range termSeq.Children {
		transduceTerm(term, w)
	}
}

func transduceTerm(t *parse.Tree, w *llspec.Writer) {
	idx := 0

	var prefix *parse.Tree
	if idx < len(t.Children) && !t.Children[idx].Terminal && t.Children[idx].PPR == pprID(pprPrefixOp) {
		prefix = t.Children[idx]
		idx++
	}
	unit := t.Children[idx]
	idx++

	var postfix *parse.Tree
	if idx < len(t.Children) && !t.Children[idx].Terminal && t.Children[idx].PPR == pprID(pprPostfixOp) {
		postfix = t.Children[idx]
	}

	if prefix != nil {
		switch prefix.Children[0].Token.LPR {
		case lprID(lprAmp):
			w.LookaheadOp()
		case lprID(lprDashBang):
			w.LookaheadNotOp()
		case lprID(lprBang):
			w.NotOp()
		}
	}
	if postfix != nil {
		switch postfix.Children[0].Token.LPR {
		case lprID(lprQuestion):
			w.OptionalOp()
		case lprID(lprStar):
			w.KleeneStarOp()
		case lprID(lprPlus):
			w.KleenePlusOp()
		}
	}

	transduceUnit(unit, w)

	if postfix != nil {
		w.Close()
	}
	if prefix != nil {
		w.Close()
	}
}

func transduceUnit(u *parse.Tree, w *llspec.Writer) {
	first := u.Children[0]
	if !first.Terminal {
		return
	}
	switch first.Token.LPR {
	case lprID(lprString):
		text := first.Token.Text
		w.StringOp(text[1 : len(text)-1])
	case lprID(lprCharset):
		text := first.Token.Text
		w.CharsetOp(text[1 : len(text)-1])
	case lprID(lprKwToken):
		w.TokenOp()
	case lprID(lprKwFail):
		w.FailureOp()
	case lprID(lprDot):
		w.Any()
	case lprID(lprDollar):
		w.End()
	case lprID(lprIdent):
		w.NameOp(first.Token.Text)
	case lprID(lprLParen):
		termSeq := u.Children[1]
		w.Sequence()
		for _, term := range termSeq.Children {
			transduceTerm(term, w)
		}
		w.Close()
	}
}

// nonTerminalChildren filters out the PIPE separators ALT_LIST's repetition
// splices in alongside each ALT node.
func nonTerminalChildren(n *parse.Tree) []*parse.Tree {
	out := make([]*parse.Tree, 0, len(n.Children))
	for _, c := range n.Children {
		if !c.Terminal {
			out = append(out, c)
		}
	}
	return out
}
