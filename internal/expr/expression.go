package expr

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
)

// Expression is a parsed, validated expression of the closed grammar.
// It is immutable and safe to share between recipes and goroutines.
type Expression struct {
	src  string
	expr hclsyntax.Expression

	references []string
	functions  []string
}

// ParseExpression parses src as a single expression and checks that it only
// uses literals, single-name references and built-in calls.
func ParseExpression(src string) (*Expression, error) {
	trimmed := strings.TrimSpace(src)
	if trimmed == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrUnsupportedExpression)
	}

	parsed, diags := hclsyntax.ParseExpression([]byte(trimmed), "expression", hcl.Pos{Line: 1, Column: 1, Byte: 0})
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %q: %s", ErrUnsupportedExpression, trimmed, diags.Error())
	}

	e := &Expression{src: trimmed, expr: parsed}
	refs := make(map[string]struct{})
	funcs := make(map[string]struct{})
	if err := e.check(parsed, refs, funcs); err != nil {
		return nil, err
	}
	e.references = sortedKeys(refs)
	e.functions = sortedKeys(funcs)
	return e, nil
}

// Source returns the trimmed source text of the expression.
func (e *Expression) Source() string { return e.src }

// References returns the unique names the expression reads, sorted.
func (e *Expression) References() []string { return e.references }

// Functions returns the unique built-ins the expression calls, sorted.
func (e *Expression) Functions() []string { return e.functions }

// check walks the syntax tree and rejects anything outside the grammar.
func (e *Expression) check(node hclsyntax.Expression, refs, funcs map[string]struct{}) error {
	switch n := node.(type) {
	case *hclsyntax.LiteralValueExpr:
		if n.Val.IsNull() {
			return e.unsupported("null literal")
		}
		return nil
	case *hclsyntax.TemplateExpr:
		if !n.IsStringLiteral() {
			return e.unsupported("string interpolation")
		}
		return nil
	case *hclsyntax.TemplateWrapExpr:
		return e.unsupported("string interpolation")
	case *hclsyntax.ScopeTraversalExpr:
		if len(n.Traversal) != 1 {
			return e.unsupported("attribute or index access")
		}
		refs[n.Traversal.RootName()] = struct{}{}
		return nil
	case *hclsyntax.FunctionCallExpr:
		if n.ExpandFinal {
			return e.unsupported("argument expansion")
		}
		sig, ok := signatures[n.Name]
		if !ok {
			return fmt.Errorf("%w: %s() in %q", ErrUnknownFunction, n.Name, e.src)
		}
		if err := sig.checkArity(n.Name, len(n.Args)); err != nil {
			return fmt.Errorf("%w in %q", err, e.src)
		}
		funcs[n.Name] = struct{}{}
		for _, arg := range n.Args {
			if err := e.check(arg, refs, funcs); err != nil {
				return err
			}
		}
		return nil
	case *hclsyntax.ParenthesesExpr:
		return e.check(n.Expression, refs, funcs)
	default:
		return e.unsupported(fmt.Sprintf("%T", node))
	}
}

func (e *Expression) unsupported(what string) error {
	return fmt.Errorf("%w: %s in %q", ErrUnsupportedExpression, what, e.src)
}

func sortedKeys(m map[string]struct{}) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
