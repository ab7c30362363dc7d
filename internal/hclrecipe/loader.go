package hclrecipe

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/ctxlog"
	"github.com/specialistvlad/burstrun/internal/expr"
	"github.com/specialistvlad/burstrun/internal/recipefile"
)

// Loader is the HCL-specific implementation of the config.Loader interface.
type Loader struct {
	compiler *expr.Compiler
	bodies   *recipefile.Parser
}

// NewLoader creates a new HCL recipe loader.
func NewLoader(c *expr.Compiler) *Loader {
	return &Loader{compiler: c, bodies: recipefile.NewParser(c)}
}

// Load parses and decodes the HCL file at path, then translates every block
// into the format-agnostic model.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("HCL loader started.", "path", path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving recipe file path %s: %w", path, err)
	}

	parser := hclparse.NewParser()
	file, diags := parser.ParseHCLFile(abs)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file %s: %w", abs, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL file %s: %w", abs, diags)
	}

	model, err := l.translate(abs, &root)
	if err != nil {
		return nil, err
	}
	logger.Debug("HCL loading complete.", "recipes", len(model.Recipes), "variables", len(model.Assignments))
	return model, nil
}
