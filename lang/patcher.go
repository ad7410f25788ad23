package lang

import (
	"log/slog"

	"github.com/expr-lang/expr/ast"

	"github.com/ardnew/duck/log"
)

// tokenPatcher restores the generic tokens that were replaced by
// placeholder identifiers before parsing, and folds signs into numeric
// literals.
//
// The expression parser cannot read "name<T1,T2>" as a single identifier,
// so the source is rewritten first (see substitute). A placeholder may end
// up as an identifier or as the property of a member access; either way the
// original token text is put back and the node is recorded in restored.
type tokenPatcher struct {
	tokens   map[string]string
	restored map[ast.Node]bool
	logger   log.Logger
}

// Visit implements ast.Visitor for tokenPatcher.
func (p *tokenPatcher) Visit(node *ast.Node) {
	switch n := (*node).(type) {
	case *ast.IdentifierNode:
		p.restore(n, &n.Value)

	case *ast.StringNode:
		p.restore(n, &n.Value)

	case *ast.UnaryNode:
		p.foldSign(node, n)
	}
}

func (p *tokenPatcher) restore(n ast.Node, value *string) {
	tok, ok := p.tokens[*value]
	if !ok {
		return
	}

	p.logger.Trace("restore generic token",
		slog.String("placeholder", *value),
		slog.String("token", tok),
	)

	*value = tok

	if p.restored == nil {
		p.restored = make(map[ast.Node]bool)
	}

	p.restored[n] = true
}

// foldSign rewrites UnaryNode("-", number) to a negative number literal.
func (p *tokenPatcher) foldSign(node *ast.Node, n *ast.UnaryNode) {
	if n.Operator != "-" && n.Operator != "+" {
		return
	}

	neg := n.Operator == "-"

	switch v := n.Node.(type) {
	case *ast.IntegerNode:
		if neg {
			ast.Patch(node, &ast.IntegerNode{Value: -v.Value})
		} else {
			ast.Patch(node, &ast.IntegerNode{Value: v.Value})
		}

	case *ast.FloatNode:
		if neg {
			ast.Patch(node, &ast.FloatNode{Value: -v.Value})
		} else {
			ast.Patch(node, &ast.FloatNode{Value: v.Value})
		}
	}
}
