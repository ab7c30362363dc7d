package plan

import (
	"fmt"

	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/expr"
)

// Globals evaluates the top-level assignments in declaration order. Each
// assignment sees the ones declared before it.
func Globals(ev *expr.Evaluator, assignments []*config.Assignment) (*expr.Scope, error) {
	scope := expr.NewScope(nil)
	for _, a := range assignments {
		v, err := ev.Render(a.Value, scope)
		if err != nil {
			return nil, fmt.Errorf("%w: %s at %s: %w", ErrInvalidAssignment, a.Name, a.Pos, err)
		}
		scope.Bind(a.Name, v)
	}
	return scope, nil
}
