package hclrecipe

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/burstrun/internal/config"
)

func (l *Loader) translate(path string, root *fileRoot) (*config.Model, error) {
	model := &config.Model{Path: path}

	if s := root.Settings; s != nil {
		model.Settings = config.Settings{
			Shell:      s.Shell,
			DotenvLoad: s.DotenvLoad,
			DotenvPath: s.DotenvPath,
			Export:     s.Export,
		}
	}

	for _, v := range root.Variables {
		value, err := l.compiler.Template(v.Value)
		if err != nil {
			return nil, fmt.Errorf("%s: variable %q: %w", v.DefRange, v.Name, err)
		}
		model.Assignments = append(model.Assignments, &config.Assignment{
			Name:     v.Name,
			Value:    value,
			Exported: v.Export,
			Pos:      config.Pos{File: path, Line: v.DefRange.Start.Line},
		})
	}

	for _, rb := range root.Recipes {
		r, err := l.translateRecipe(path, rb)
		if err != nil {
			return nil, err
		}
		model.Recipes = append(model.Recipes, r)
	}
	return model, nil
}

func (l *Loader) translateRecipe(path string, rb *recipeBlock) (*config.Recipe, error) {
	r := &config.Recipe{
		Name:        rb.Name,
		Doc:         rb.Description,
		Private:     rb.Private,
		Interpreter: rb.Interpreter,
		Pos:         config.Pos{File: path, Line: rb.DefRange.Start.Line},
	}
	fail := func(err error) error {
		return fmt.Errorf("%s: recipe %q: %w", rb.DefRange, rb.Name, err)
	}

	for _, pb := range rb.Parameters {
		param, err := l.translateParameter(pb)
		if err != nil {
			return nil, fail(err)
		}
		r.Params = append(r.Params, param)
	}

	var err error
	if r.Before, err = l.translateDependencies(rb.Before); err != nil {
		return nil, fail(err)
	}
	if r.After, err = l.translateDependencies(rb.After); err != nil {
		return nil, fail(err)
	}

	if rb.Script != "" {
		lines := strings.Split(dedent(rb.Script), "\n")
		if err := l.bodies.Body(path, rb.DefRange.Start.Line+1, r, lines); err != nil {
			return nil, err
		}
	}
	return r, nil
}

func (l *Loader) translateParameter(pb *parameterBlock) (*config.Parameter, error) {
	param := &config.Parameter{Name: pb.Name, Exported: pb.Export}
	switch pb.Variadic {
	case "":
		param.Kind = config.Singular
	case "one_or_more":
		param.Kind = config.VariadicOneOrMore
	case "zero_or_more":
		param.Kind = config.VariadicZeroOrMore
	default:
		return nil, fmt.Errorf("parameter %q: variadic must be \"one_or_more\" or \"zero_or_more\", got %q", pb.Name, pb.Variadic)
	}
	if pb.Default != nil {
		def, err := l.compiler.Template(*pb.Default)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", pb.Name, err)
		}
		param.Default = def
	}
	return param, nil
}

func (l *Loader) translateDependencies(blocks []*dependencyBlock) ([]*config.Dependency, error) {
	var deps []*config.Dependency
	for _, db := range blocks {
		dep := &config.Dependency{Recipe: db.Recipe}
		for _, a := range db.Args {
			t, err := l.compiler.Template(a)
			if err != nil {
				return nil, fmt.Errorf("dependency %q: %w", db.Recipe, err)
			}
			dep.Args = append(dep.Args, t)
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

// dedent removes the indentation shared by every non-blank line. Plain
// heredocs keep their source indentation; `<<-` heredocs are already
// stripped by HCL and pass through unchanged.
func dedent(s string) string {
	lines := strings.Split(s, "\n")
	prefix := ""
	first := true
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if first {
			prefix, first = indent, false
			continue
		}
		for !strings.HasPrefix(indent, prefix) {
			prefix = prefix[:len(prefix)-1]
		}
	}
	for i, line := range lines {
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Join(lines, "\n")
}
