package expr

import (
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/function"
)

// Evaluator resolves expressions and templates against a Scope.
type Evaluator struct {
	host  Host
	funcs map[string]function.Function
}

// NewEvaluator binds the built-ins to the given host snapshot.
func NewEvaluator(h Host) *Evaluator {
	return &Evaluator{host: h, funcs: Builtins(h)}
}

// Host returns the snapshot the evaluator was created with.
func (ev *Evaluator) Host() Host { return ev.host }

// Evaluate resolves e in scope and returns its string value.
func (ev *Evaluator) Evaluate(e *Expression, scope *Scope) (string, error) {
	for _, name := range e.References() {
		if _, ok := scope.Lookup(name); !ok {
			return "", &UnboundError{Name: name}
		}
	}

	evalCtx := &hcl.EvalContext{
		Variables: scope.variables(),
		Functions: ev.funcs,
	}
	val, diags := e.expr.Value(evalCtx)
	if diags.HasErrors() {
		return "", fmt.Errorf("evaluating %q: %w", e.src, diags)
	}
	if val.IsNull() || !val.IsKnown() {
		return "", fmt.Errorf("evaluating %q: expression has no value", e.src)
	}

	str, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", fmt.Errorf("evaluating %q: %w", e.src, err)
	}
	return str.AsString(), nil
}

// Render substitutes every expression in t and returns the resulting text.
func (ev *Evaluator) Render(t *Template, scope *Scope) (string, error) {
	var sb strings.Builder
	for _, p := range t.parts {
		if p.expr == nil {
			sb.WriteString(p.text)
			continue
		}
		v, err := ev.Evaluate(p.expr, scope)
		if err != nil {
			return "", err
		}
		sb.WriteString(v)
	}
	return sb.String(), nil
}
