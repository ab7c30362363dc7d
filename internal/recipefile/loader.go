package recipefile

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/ctxlog"
	"github.com/specialistvlad/burstrun/internal/expr"
)

// Loader is the text-format implementation of the config.Loader interface.
type Loader struct {
	parser *Parser
}

// NewLoader creates a loader that compiles expressions with c.
func NewLoader(c *expr.Compiler) *Loader {
	return &Loader{parser: NewParser(c)}
}

// Load reads and parses the recipe file at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Model, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Recipe file loader started.", "path", path)

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving recipe file path %s: %w", path, err)
	}
	src, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("reading recipe file: %w", err)
	}

	model, err := l.parser.Parse(abs, src)
	if err != nil {
		return nil, err
	}
	logger.Debug("Recipe file parsed.", "recipes", len(model.Recipes), "assignments", len(model.Assignments))
	return model, nil
}
