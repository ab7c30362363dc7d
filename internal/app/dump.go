package app

import (
	"encoding/json"
	"fmt"

	"github.com/specialistvlad/burstrun/internal/config"
	"gopkg.in/yaml.v3"
)

type dumpFile struct {
	Path        string           `yaml:"path" json:"path"`
	Settings    config.Settings  `yaml:"settings" json:"settings"`
	Assignments []dumpAssignment `yaml:"assignments,omitempty" json:"assignments,omitempty"`
	Recipes     []dumpRecipe     `yaml:"recipes" json:"recipes"`
}

type dumpAssignment struct {
	Name     string `yaml:"name" json:"name"`
	Value    string `yaml:"value" json:"value"`
	Exported bool   `yaml:"exported,omitempty" json:"exported,omitempty"`
}

type dumpRecipe struct {
	Name        string   `yaml:"name" json:"name"`
	Doc         string   `yaml:"doc,omitempty" json:"doc,omitempty"`
	Parameters  []string `yaml:"parameters,omitempty" json:"parameters,omitempty"`
	Before      []string `yaml:"before,omitempty" json:"before,omitempty"`
	After       []string `yaml:"after,omitempty" json:"after,omitempty"`
	Interpreter []string `yaml:"interpreter,omitempty" json:"interpreter,omitempty"`
	Body        []string `yaml:"body,omitempty" json:"body,omitempty"`
	Private     bool     `yaml:"private,omitempty" json:"private,omitempty"`
	Position    string   `yaml:"position" json:"position"`
}

func newDumpFile(m *config.Model) dumpFile {
	out := dumpFile{Path: m.Path, Settings: m.Settings}
	for _, as := range m.Assignments {
		out.Assignments = append(out.Assignments, dumpAssignment{
			Name:     as.Name,
			Value:    as.Value.Source(),
			Exported: as.Exported,
		})
	}
	for _, r := range m.Recipes {
		dr := dumpRecipe{
			Name:        r.Name,
			Doc:         r.Doc,
			Interpreter: r.Interpreter,
			Private:     r.Private,
			Position:    r.Pos.String(),
		}
		for _, p := range r.Params {
			dr.Parameters = append(dr.Parameters, p.String())
		}
		for _, d := range r.Before {
			dr.Before = append(dr.Before, d.String())
		}
		for _, d := range r.After {
			dr.After = append(dr.After, d.String())
		}
		for _, l := range r.Body {
			line := l.Text.Source()
			if l.Quiet {
				line = "@" + line
			}
			dr.Body = append(dr.Body, line)
		}
		out.Recipes = append(out.Recipes, dr)
	}
	return out
}

// dump writes the parsed recipe file in the configured format.
func (a *App) dump() error {
	doc := newDumpFile(a.model)
	switch a.cfg.DumpFormat {
	case "json":
		enc := json.NewEncoder(a.outW)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case "yaml":
		enc := yaml.NewEncoder(a.outW)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: dump format %q", ErrInvalidConfig, a.cfg.DumpFormat)
	}
}
