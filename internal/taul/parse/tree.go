package parse

import (
	"strings"

	"github.com/dekarrin/taul/internal/taul/lex"
	"github.com/dekarrin/taul/internal/taul/symbol"
)

// Tree is a parse-tree node: either a terminal leaf holding the lex.Token it
// matched, or a non-terminal with children in production order.
type Tree struct {
	PPR      symbol.ID
	Terminal bool
	Token    lex.Token
	Children []*Tree
}

// Text returns the concatenated source text spanned by the subtree.
func (t *Tree) Text() string {
	if t.Terminal {
		return t.Token.Text
	}
	var sb strings.Builder
	for _, c := range t.Children {
		sb.WriteString(c.Text())
	}
	return sb.String()
}

func (t *Tree) String() string {
	var sb strings.Builder
	t.dump(&sb, 0)
	return sb.String()
}

func (t *Tree) dump(sb *strings.Builder, depth int) {
	sb.WriteString(strings.Repeat("  ", depth))
	if t.Terminal {
		sb.WriteString(t.Token.String())
		sb.WriteByte('\n')
		return
	}
	sb.WriteString(t.PPR.String())
	sb.WriteByte('\n')
	for _, c := range t.Children {
		c.dump(sb, depth+1)
	}
}
