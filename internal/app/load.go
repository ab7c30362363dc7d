package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/ctxlog"
	"github.com/specialistvlad/burstrun/internal/expr"
	"github.com/specialistvlad/burstrun/internal/fsutil"
	"github.com/specialistvlad/burstrun/internal/hclrecipe"
	"github.com/specialistvlad/burstrun/internal/recipefile"
	"github.com/specialistvlad/burstrun/internal/store"
)

// RecipeFileNames are tried, in order, in every directory of the upward
// search.
var RecipeFileNames = []string{"justfile", "Justfile", ".justfile", "recipes.hcl"}

// locate returns the absolute path of the recipe file to load.
func locate(cfg *Config) (string, error) {
	if cfg.File != "" {
		return filepath.Abs(cfg.File)
	}
	dir := cfg.SearchDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("determining working directory: %w", err)
		}
		dir = wd
	}
	return fsutil.FindUpward(dir, RecipeFileNames...)
}

// loaderFor picks the loader by file extension.
func loaderFor(path string, c *expr.Compiler) config.Loader {
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		return hclrecipe.NewLoader(c)
	}
	return recipefile.NewLoader(c)
}

// load reads the recipe file and populates a validated store from it.
func load(ctx context.Context, cfg *Config) (*config.Model, *store.Store, error) {
	logger := ctxlog.FromContext(ctx)

	path, err := locate(cfg)
	if err != nil {
		return nil, nil, err
	}
	logger.Debug("Recipe file located.", "path", path)

	model, err := loaderFor(path, expr.NewCompiler(expr.DefaultCacheSize)).Load(ctx, path)
	if err != nil {
		return nil, nil, err
	}

	s, err := store.FromModel(ctx, model)
	if err != nil {
		return nil, nil, err
	}
	if err := s.Validate(model.Assignments); err != nil {
		return nil, nil, err
	}
	logger.Debug("Recipe file validated.", "recipes", s.Len(), "assignments", len(model.Assignments))
	return model, s, nil
}
