package config

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/burstrun/internal/expr"
)

// HiddenPrefix marks a recipe as hidden from listings and from default selection.
const HiddenPrefix = "_"

// DefaultShell runs line-oriented recipe bodies when no `set shell` is given.
var DefaultShell = []string{"sh", "-eu"}

// Model is the unified, format-agnostic representation of a recipe file.
type Model struct {
	// Path is the absolute path of the file the model was loaded from.
	Path        string
	Settings    Settings
	Assignments []*Assignment
	Recipes     []*Recipe
}

// Settings holds the `set` directives of a recipe file.
type Settings struct {
	Shell      []string `yaml:"shell,omitempty" json:"shell,omitempty"`
	DotenvLoad bool     `yaml:"dotenv_load,omitempty" json:"dotenv_load,omitempty"`
	DotenvPath string   `yaml:"dotenv_path,omitempty" json:"dotenv_path,omitempty"`
	Export     bool     `yaml:"export,omitempty" json:"export,omitempty"`
}

// ShellCommand returns the configured shell, or DefaultShell.
func (s Settings) ShellCommand() []string {
	if len(s.Shell) == 0 {
		return DefaultShell
	}
	return s.Shell
}

// Assignment is a top-level `name := expression` binding.
type Assignment struct {
	Name     string
	Value    *expr.Template
	Exported bool
	Pos      Pos
}

// Pos locates a definition in its source file.
type Pos struct {
	File string
	Line int
}

func (p Pos) String() string {
	if p.File == "" {
		return fmt.Sprintf("line %d", p.Line)
	}
	return fmt.Sprintf("%s:%d", p.File, p.Line)
}

// ParameterKind distinguishes plain and variadic parameters.
type ParameterKind int

const (
	// Singular binds exactly one positional value.
	Singular ParameterKind = iota
	// VariadicOneOrMore (`+name`) binds every remaining value, at least one.
	VariadicOneOrMore
	// VariadicZeroOrMore (`*name`) binds every remaining value, possibly none.
	VariadicZeroOrMore
)

// Parameter is one declared recipe parameter.
type Parameter struct {
	Name     string
	Default  *expr.Template
	Kind     ParameterKind
	Exported bool
}

// Required reports whether a value must be supplied for the parameter.
func (p *Parameter) Required() bool {
	return p.Default == nil && p.Kind != VariadicZeroOrMore
}

// Variadic reports whether the parameter absorbs the remaining values.
func (p *Parameter) Variadic() bool { return p.Kind != Singular }

func (p *Parameter) String() string {
	var sb strings.Builder
	switch p.Kind {
	case VariadicOneOrMore:
		sb.WriteByte('+')
	case VariadicZeroOrMore:
		sb.WriteByte('*')
	}
	if p.Exported {
		sb.WriteByte('$')
	}
	sb.WriteString(p.Name)
	if p.Default != nil {
		sb.WriteByte('=')
		sb.WriteString(p.Default.Source())
	}
	return sb.String()
}

// Dependency is a reference from one recipe to another, with argument
// expressions evaluated in the scope of the referencing recipe.
type Dependency struct {
	Recipe string
	Args   []*expr.Template
}

func (d *Dependency) String() string {
	if len(d.Args) == 0 {
		return d.Recipe
	}
	parts := []string{d.Recipe}
	for _, a := range d.Args {
		parts = append(parts, a.Source())
	}
	return "(" + strings.Join(parts, " ") + ")"
}

// Line is one logical command of a recipe body. Continuation lines ending in
// a backslash are kept together in a single Line.
type Line struct {
	Text  *expr.Template
	Quiet bool
}

// Recipe is a named, parameterized task.
type Recipe struct {
	Name        string
	Doc         string
	Params      []*Parameter
	Before      []*Dependency
	After       []*Dependency
	Body        []*Line
	Private     bool
	Pos         Pos
	Interpreter []string
}

// Hidden reports whether the recipe is left out of listings.
func (r *Recipe) Hidden() bool {
	return r.Private || strings.HasPrefix(r.Name, HiddenPrefix)
}

// IsScript reports whether the body runs as one interpreter script.
func (r *Recipe) IsScript() bool { return len(r.Interpreter) > 0 }

// MinArgs returns how many positional values the recipe requires.
func (r *Recipe) MinArgs() int {
	n := 0
	for _, p := range r.Params {
		if p.Required() {
			n++
		}
	}
	return n
}

// MaxArgs returns how many positional values the recipe accepts, or -1 if
// the last parameter is variadic.
func (r *Recipe) MaxArgs() int {
	if len(r.Params) > 0 && r.Params[len(r.Params)-1].Variadic() {
		return -1
	}
	return len(r.Params)
}

// Signature renders the recipe header, e.g. `build target=arch() *flags`.
func (r *Recipe) Signature() string {
	parts := []string{r.Name}
	for _, p := range r.Params {
		parts = append(parts, p.String())
	}
	return strings.Join(parts, " ")
}
