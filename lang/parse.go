package lang

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/expr-lang/expr/ast"
	"github.com/expr-lang/expr/file"
	"github.com/expr-lang/expr/parser"

	"github.com/ardnew/duck/token"
	"github.com/ardnew/duck/typeinfo"
)

// placeholderPrefix begins the identifiers substituted for generic tokens
// before the source reaches the expression parser.
const placeholderPrefix = "__duck_"

// Parse parses a member-access expression such as
//
//	order.Lines[0].Total
//	repo.Find<Customer>("id")
//	Math.Max(a, b)
//
// Identifiers may carry type arguments in angle brackets. Operators and the
// other constructs of the underlying expression grammar are rejected with
// [ErrUnsupportedSyntax]. Results are cached by source text unless
// WithCache(false) is given.
func Parse(ctx context.Context, src string, opts ...Option) (*Expr, error) {
	cfg := makeConfig(opts...)

	if cfg.cache {
		return parseCached(ctx, src, cfg)
	}

	return parse(ctx, src, cfg)
}

// MustParse is like [Parse] but panics on error.
func MustParse(src string, opts ...Option) *Expr {
	e, err := Parse(context.Background(), src, opts...)
	if err != nil {
		panic(err)
	}

	return e
}

func parse(ctx context.Context, src string, cfg config) (*Expr, error) {
	rewritten, tokens := substitute(src)

	cfg.logger.TraceContext(ctx, "parse start",
		slog.String("source", src),
		slog.Int("generic_tokens", len(tokens)),
	)

	tree, err := parser.Parse(rewritten)
	if err != nil {
		perr := ErrParse.Wrap(err).With(slog.String("source", src))

		var ferr *file.Error
		if errors.As(err, &ferr) {
			perr = perr.With(
				slog.Int("line", ferr.Line),
				slog.Int("column", ferr.Column),
			)
		}

		return nil, perr
	}

	patcher := &tokenPatcher{tokens: tokens, logger: cfg.logger}
	ast.Walk(&tree.Node, patcher)

	root, err := (&builder{
		registry: cfg.registry,
		generic:  patcher.restored,
	}).build(tree.Node)
	if err != nil {
		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete", slog.String("tree", root.String()))

	return &Expr{Source: src, Root: root}, nil
}

// substitute replaces each generic token of src, and each identifier the
// expression parser would not accept, with a placeholder identifier. It
// returns the rewritten source and the original tokens by placeholder.
func substitute(src string) (string, map[string]string) {
	var (
		sb     strings.Builder
		tokens map[string]string
		last   int
	)

	for m := range token.All(src, token.GenericVariable{}, token.Quoted{}) {
		if _, ok := m.Matcher.(token.GenericVariable); !ok ||
			!strings.ContainsAny(m.Token, "<@$") {
			continue
		}

		if tokens == nil {
			tokens = make(map[string]string)
		}

		name := placeholderPrefix + strconv.Itoa(len(tokens))
		tokens[name] = m.Token

		sb.WriteString(src[last:m.Offset])
		sb.WriteString(name)

		last = m.End()
	}

	if tokens == nil {
		return src, nil
	}

	sb.WriteString(src[last:])

	return sb.String(), tokens
}

// builder converts an expression parser tree into evaluation nodes.
type builder struct {
	registry *typeinfo.Registry
	generic  map[ast.Node]bool // nodes restored from generic tokens
}

func (b *builder) build(n ast.Node) (Node, error) {
	switch n := n.(type) {
	case *ast.IdentifierNode:
		if strings.ContainsRune(n.Value, '<') {
			return NewGenericVariable(n.Value, b.registry)
		}

		return &Variable{Name: n.Value}, nil

	case *ast.NilNode:
		return &Constant{Value: Null(Dynamic)}, nil

	case *ast.IntegerNode:
		return &Constant{Value: ValueOf(n.Value)}, nil

	case *ast.FloatNode:
		return &Constant{Value: ValueOf(n.Value)}, nil

	case *ast.BoolNode:
		return &Constant{Value: ValueOf(n.Value)}, nil

	case *ast.StringNode:
		return &Constant{Value: ValueOf(n.Value)}, nil

	case *ast.ChainNode:
		return b.build(n.Node)

	case *ast.MemberNode:
		return b.member(n)

	case *ast.CallNode:
		return b.call(n)

	default:
		return nil, ErrUnsupportedSyntax.With(slog.String("node", fmt.Sprintf("%T", n)))
	}
}

func (b *builder) member(n *ast.MemberNode) (Node, error) {
	target, err := b.build(n.Node)
	if err != nil {
		return nil, err
	}

	if prop, ok := n.Property.(*ast.StringNode); ok {
		if !b.generic[prop] {
			return &FieldAccess{Target: target, Member: prop.Value}, nil
		}

		name, args, err := ParseGenericToken(prop.Value, b.registry)
		if err != nil {
			return nil, err
		}

		return &FieldAccess{Target: target, Member: name, Generics: args}, nil
	}

	key, err := b.build(n.Property)
	if err != nil {
		return nil, err
	}

	return &Index{Target: target, Key: key}, nil
}

func (b *builder) call(n *ast.CallNode) (Node, error) {
	callee, err := b.build(n.Callee)
	if err != nil {
		return nil, err
	}

	args := make([]Node, len(n.Arguments))

	for i, a := range n.Arguments {
		if args[i], err = b.build(a); err != nil {
			return nil, err
		}
	}

	return &Call{Target: callee, Args: args}, nil
}
