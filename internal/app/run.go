package app

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/specialistvlad/burstrun/internal/ctxlog"
	"github.com/specialistvlad/burstrun/internal/executor"
	"github.com/specialistvlad/burstrun/internal/plan"
)

// Run performs the configured action: list, dump, or resolve and execute the
// requested recipe.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	switch {
	case a.cfg.List:
		return a.list()
	case a.cfg.Dump:
		return a.dump()
	}

	a.setPhase(ctx, PhaseResolving)
	globals, err := plan.Globals(a.eval, a.model.Assignments)
	if err != nil {
		a.setPhase(ctx, PhaseFailed)
		return err
	}
	p, err := plan.NewResolver(a.store, a.eval, globals).Resolve(ctx, a.cfg.Recipe, a.cfg.Args)
	if err != nil {
		a.setPhase(ctx, failurePhase(err))
		return err
	}

	opts, err := a.engineOptions()
	if err != nil {
		a.setPhase(ctx, PhaseFailed)
		return err
	}

	a.setPhase(ctx, PhaseExecuting)
	if err := executor.New(a.runner, a.eval, opts).Run(ctx, p); err != nil {
		a.setPhase(ctx, PhaseFailed)
		return err
	}

	a.setPhase(ctx, PhaseSucceeded)
	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) engineOptions() (executor.Options, error) {
	settings := a.model.Settings
	var exported []string
	for _, as := range a.model.Assignments {
		if as.Exported {
			exported = append(exported, as.Name)
		}
	}

	dotenv, err := a.dotenv()
	if err != nil {
		return executor.Options{}, err
	}

	return executor.Options{
		Shell:     settings.ShellCommand(),
		Dir:       a.workingDir(),
		Env:       a.environ,
		Dotenv:    dotenv,
		ExportAll: settings.Export,
		Exported:  exported,
		DryRun:    a.cfg.DryRun,
		Stdin:     a.stdin,
		Stdout:    a.outW,
		Stderr:    a.errW,
	}, nil
}

func (a *App) recipeDir() string {
	return filepath.Dir(a.model.Path)
}

func (a *App) workingDir() string {
	if a.cfg.WorkingDir != "" {
		return a.cfg.WorkingDir
	}
	return a.recipeDir()
}

// dotenv loads the dotenv file chosen by, in order, the command line, the
// dotenv-path setting, or dotenv-load. Only the last tolerates a missing
// file.
func (a *App) dotenv() (map[string]string, error) {
	settings := a.model.Settings
	switch {
	case a.cfg.DotenvPath != "":
		return executor.ReadDotenv(a.cfg.DotenvPath, true)
	case settings.DotenvPath != "":
		path := settings.DotenvPath
		if !filepath.IsAbs(path) {
			path = filepath.Join(a.recipeDir(), path)
		}
		return executor.ReadDotenv(path, true)
	case settings.DotenvLoad:
		vars, err := executor.ReadDotenv(filepath.Join(a.recipeDir(), ".env"), false)
		if err != nil {
			return nil, fmt.Errorf("dotenv-load: %w", err)
		}
		return vars, nil
	}
	return nil, nil
}
