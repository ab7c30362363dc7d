package plan

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/ctxlog"
	"github.com/specialistvlad/burstrun/internal/expr"
)

// Recipes is the read side of the definition store the resolver needs.
type Recipes interface {
	Lookup(name string) (*config.Recipe, error)
	Default() (*config.Recipe, error)
}

// Resolver expands a request into a Plan.
type Resolver struct {
	recipes Recipes
	eval    *expr.Evaluator
	globals *expr.Scope
}

// NewResolver creates a resolver. globals may be nil when the recipe file has
// no assignments.
func NewResolver(recipes Recipes, eval *expr.Evaluator, globals *expr.Scope) *Resolver {
	if globals == nil {
		globals = expr.NewScope(nil)
	}
	return &Resolver{recipes: recipes, eval: eval, globals: globals}
}

// Resolve builds the plan for recipe name invoked with args. An empty name
// selects the default recipe.
func (r *Resolver) Resolve(ctx context.Context, name string, args []string) (*Plan, error) {
	var (
		target *config.Recipe
		err    error
	)
	if name == "" {
		target, err = r.recipes.Default()
	} else {
		target, err = r.recipes.Lookup(name)
	}
	if err != nil {
		return nil, err
	}

	p := &Plan{RunID: uuid.NewString(), Globals: r.globals}
	logger := ctxlog.FromContext(ctx).With("run_id", p.RunID)

	w := &walk{
		resolver: r,
		plan:     p,
		done:     make(map[string]struct{}),
		active:   make(map[string]int),
	}
	if err := w.expand(target, args); err != nil {
		return nil, err
	}

	logger.Debug("Plan resolved.", "recipe", target.Name, "entries", len(p.Entries), "order", strings.Join(p.Names(), ","))
	return p, nil
}

// walk is the state of one depth-first expansion.
type walk struct {
	resolver *Resolver
	plan     *Plan
	done     map[string]struct{}
	// active maps the keys on the current path to their index in path.
	active map[string]int
	path   []string
}

func (w *walk) expand(recipe *config.Recipe, values []string) error {
	scope, args, err := w.resolver.bind(recipe, values)
	if err != nil {
		return err
	}
	key := entryKey(recipe.Name, args)
	if i, onPath := w.active[key]; onPath {
		cycle := append(append([]string{}, w.path[i:]...), label(recipe.Name, args))
		return &CycleError{Path: cycle}
	}
	if _, seen := w.done[key]; seen {
		return nil
	}

	w.active[key] = len(w.path)
	w.path = append(w.path, label(recipe.Name, args))

	if err := w.dependencies(recipe, recipe.Before, scope); err != nil {
		return err
	}
	w.plan.Entries = append(w.plan.Entries, Entry{Recipe: recipe, Args: args, Scope: scope})
	w.done[key] = struct{}{}
	if err := w.dependencies(recipe, recipe.After, scope); err != nil {
		return err
	}

	delete(w.active, key)
	w.path = w.path[:len(w.path)-1]
	return nil
}

func (w *walk) dependencies(parent *config.Recipe, deps []*config.Dependency, scope *expr.Scope) error {
	for _, d := range deps {
		target, err := w.resolver.recipes.Lookup(d.Recipe)
		if err != nil {
			return fmt.Errorf("recipe %q: dependency %s: %w", parent.Name, d, err)
		}
		values := make([]string, 0, len(d.Args))
		for _, a := range d.Args {
			v, err := w.resolver.eval.Render(a, scope)
			if err != nil {
				return fmt.Errorf("recipe %q: dependency %s: %w", parent.Name, d, err)
			}
			values = append(values, v)
		}
		if err := w.expand(target, values); err != nil {
			return err
		}
	}
	return nil
}

// bind assigns values to the recipe's parameters positionally. It returns the
// parameter scope and the resolved value of every parameter.
func (r *Resolver) bind(recipe *config.Recipe, values []string) (*expr.Scope, []string, error) {
	scope := expr.NewScope(r.globals)
	args := make([]string, 0, len(recipe.Params))

	consumed := 0
	for i, p := range recipe.Params {
		var (
			v   string
			err error
		)
		switch {
		case p.Variadic():
			rest := values[min(i, len(values)):]
			consumed = len(values)
			if len(rest) > 0 {
				v = strings.Join(rest, " ")
			} else if p.Default != nil {
				v, err = r.eval.Render(p.Default, scope)
			} else if p.Kind == config.VariadicOneOrMore {
				return nil, nil, &ArgumentError{Kind: ErrMissingArgument, Recipe: recipe.Name, Parameter: p.Name}
			}
		case i < len(values):
			v = values[i]
			consumed = i + 1
		case p.Default != nil:
			v, err = r.eval.Render(p.Default, scope)
		default:
			return nil, nil, &ArgumentError{Kind: ErrMissingArgument, Recipe: recipe.Name, Parameter: p.Name}
		}
		if err != nil {
			return nil, nil, fmt.Errorf("recipe %q: default of %q: %w", recipe.Name, p.Name, err)
		}
		scope.Bind(p.Name, v)
		args = append(args, v)
	}

	if consumed < len(values) {
		return nil, nil, &ArgumentError{
			Kind:   ErrTooManyArguments,
			Recipe: recipe.Name,
			Got:    len(values),
			Max:    len(recipe.Params),
		}
	}
	return scope, args, nil
}
