package store

import (
	"context"
	"fmt"

	"github.com/agext/levenshtein"
	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/ctxlog"
)

// Store is the recipe definition store.
type Store struct {
	recipes []*config.Recipe
	index   map[string]int
}

// New creates an empty store.
func New() *Store {
	return &Store{index: make(map[string]int)}
}

// FromModel defines every recipe of the model in order.
func FromModel(ctx context.Context, model *config.Model) (*Store, error) {
	logger := ctxlog.FromContext(ctx)
	s := New()
	for _, r := range model.Recipes {
		if err := s.Define(r); err != nil {
			return nil, err
		}
	}
	logger.Debug("Recipe store populated.", "recipes", s.Len())
	return s, nil
}

// Define adds a recipe. Names must be unique.
func (s *Store) Define(r *config.Recipe) error {
	if r == nil || r.Name == "" {
		return invalidf("recipe name is required")
	}
	if i, exists := s.index[r.Name]; exists {
		prev := s.recipes[i]
		return fmt.Errorf("%w: %q at %s, first defined at %s", ErrDuplicateName, r.Name, r.Pos, prev.Pos)
	}
	s.index[r.Name] = len(s.recipes)
	s.recipes = append(s.recipes, r)
	return nil
}

// Lookup returns the recipe with the given name.
func (s *Store) Lookup(name string) (*config.Recipe, error) {
	if i, ok := s.index[name]; ok {
		return s.recipes[i], nil
	}
	return nil, &LookupError{Name: name, Suggestion: s.suggest(name)}
}

// Default returns the first recipe, in definition order, that takes no
// required arguments and is not hidden by the reserved prefix.
func (s *Store) Default() (*config.Recipe, error) {
	for _, r := range s.recipes {
		if r.MinArgs() == 0 && !r.Hidden() {
			return r, nil
		}
	}
	return nil, ErrNoDefault
}

// Recipes returns every recipe in definition order.
func (s *Store) Recipes() []*config.Recipe {
	out := make([]*config.Recipe, len(s.recipes))
	copy(out, s.recipes)
	return out
}

// Visible returns the recipes shown in listings, in definition order.
func (s *Store) Visible() []*config.Recipe {
	var out []*config.Recipe
	for _, r := range s.recipes {
		if !r.Hidden() {
			out = append(out, r)
		}
	}
	return out
}

// Len returns the number of defined recipes.
func (s *Store) Len() int { return len(s.recipes) }

// suggest returns the closest visible recipe name within edit distance 2.
func (s *Store) suggest(name string) string {
	best, bestDist := "", 3
	for _, r := range s.recipes {
		if r.Hidden() {
			continue
		}
		if d := levenshtein.Distance(name, r.Name, nil); d < bestDist {
			best, bestDist = r.Name, d
		}
	}
	return best
}
