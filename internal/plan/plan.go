package plan

import (
	"strings"

	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/expr"
)

// Entry is one recipe invocation of a plan.
type Entry struct {
	Recipe *config.Recipe
	// Args holds one resolved value per declared parameter, defaults applied.
	// Variadic values are joined with single spaces.
	Args []string
	// Scope binds the parameters on top of the global assignments.
	Scope *expr.Scope
}

// Key identifies the invocation for deduplication and cycle detection.
func (e Entry) Key() string {
	return entryKey(e.Recipe.Name, e.Args)
}

// String renders the invocation as it would be typed, e.g. `build x86_64`.
func (e Entry) String() string {
	return label(e.Recipe.Name, e.Args)
}

// Invocation is the comparable summary of an Entry.
type Invocation struct {
	Recipe string
	Args   []string
}

// Plan is the ordered, deduplicated list of invocations for one request.
type Plan struct {
	// RunID identifies the run in logs.
	RunID   string
	Entries []Entry
	// Globals holds the evaluated top-level assignments.
	Globals *expr.Scope
}

// Invocations returns the recipe names and arguments of the plan, in order.
func (p *Plan) Invocations() []Invocation {
	out := make([]Invocation, 0, len(p.Entries))
	for _, e := range p.Entries {
		args := make([]string, len(e.Args))
		copy(args, e.Args)
		out = append(out, Invocation{Recipe: e.Recipe.Name, Args: args})
	}
	return out
}

// Names returns the recipe names of the plan, in order.
func (p *Plan) Names() []string {
	out := make([]string, 0, len(p.Entries))
	for _, e := range p.Entries {
		out = append(out, e.Recipe.Name)
	}
	return out
}

// entryKey is built from the bound values, not the argument tokens, so a
// variadic given "a b" and one given "a" "b" share a key. Both render the
// same body.
func entryKey(name string, args []string) string {
	return name + "\x00" + strings.Join(args, "\x00")
}

func label(name string, args []string) string {
	if len(args) == 0 {
		return name
	}
	quoted := make([]string, 0, len(args)+1)
	quoted = append(quoted, name)
	for _, a := range args {
		if a == "" || strings.ContainsAny(a, " \t") {
			a = `"` + a + `"`
		}
		quoted = append(quoted, a)
	}
	return strings.Join(quoted, " ")
}
