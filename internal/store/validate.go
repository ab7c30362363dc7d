package store

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/expr"
)

// Validate checks the whole store against the global assignments before
// anything runs: dependencies must name known recipes with an acceptable
// number of arguments, and every template may only read names that will be
// in scope when it is evaluated.
func (s *Store) Validate(assignments []*config.Assignment) error {
	globals := make(map[string]struct{}, len(assignments))
	for _, a := range assignments {
		if err := checkRefs(a.Value, globals, "assignment %q at %s", a.Name, a.Pos); err != nil {
			return err
		}
		globals[a.Name] = struct{}{}
	}

	for _, r := range s.recipes {
		if err := s.validateRecipe(r, globals); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) validateRecipe(r *config.Recipe, globals map[string]struct{}) error {
	scope := make(map[string]struct{}, len(globals)+len(r.Params))
	for g := range globals {
		scope[g] = struct{}{}
	}

	declared := make(map[string]struct{}, len(r.Params))
	seenDefault := false
	for i, p := range r.Params {
		if _, dup := declared[p.Name]; dup {
			return invalidf("recipe %q at %s declares parameter %q twice", r.Name, r.Pos, p.Name)
		}
		declared[p.Name] = struct{}{}
		if p.Variadic() && i != len(r.Params)-1 {
			return invalidf("recipe %q at %s: variadic parameter %q must be last", r.Name, r.Pos, p.Name)
		}
		if p.Default != nil {
			if err := checkRefs(p.Default, scope, "default of parameter %q of recipe %q at %s", p.Name, r.Name, r.Pos); err != nil {
				return err
			}
			seenDefault = true
		} else if seenDefault && !p.Variadic() {
			return invalidf("recipe %q at %s: required parameter %q follows a parameter with a default", r.Name, r.Pos, p.Name)
		}
		scope[p.Name] = struct{}{}
	}

	for _, deps := range [][]*config.Dependency{r.Before, r.After} {
		for _, d := range deps {
			if err := s.validateDependency(r, d, scope); err != nil {
				return err
			}
		}
	}

	for _, line := range r.Body {
		if err := checkRefs(line.Text, scope, "recipe %q at %s", r.Name, r.Pos); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) validateDependency(r *config.Recipe, d *config.Dependency, scope map[string]struct{}) error {
	target, err := s.Lookup(d.Recipe)
	if err != nil {
		return fmt.Errorf("%w: recipe %q at %s depends on %w", ErrInvalidRecipe, r.Name, r.Pos, err)
	}
	n := len(d.Args)
	if n < target.MinArgs() || (target.MaxArgs() >= 0 && n > target.MaxArgs()) {
		return invalidf("recipe %q at %s passes %d argument(s) to %q, which takes %s",
			r.Name, r.Pos, n, target.Name, arity(target))
	}
	for _, a := range d.Args {
		if err := checkRefs(a, scope, "dependency %s of recipe %q at %s", d, r.Name, r.Pos); err != nil {
			return err
		}
	}
	return nil
}

func checkRefs(t *expr.Template, scope map[string]struct{}, where string, args ...any) error {
	for _, ref := range t.References() {
		if _, ok := scope[ref]; !ok {
			return fmt.Errorf("%w: "+where+": %w", append(append([]any{ErrInvalidRecipe}, args...), &expr.UnboundError{Name: ref})...)
		}
	}
	return nil
}

func arity(r *config.Recipe) string {
	minArgs, maxArgs := r.MinArgs(), r.MaxArgs()
	switch {
	case maxArgs < 0:
		return "at least " + strconv.Itoa(minArgs)
	case minArgs == maxArgs:
		return strconv.Itoa(minArgs)
	default:
		return strconv.Itoa(minArgs) + " to " + strconv.Itoa(maxArgs)
	}
}
