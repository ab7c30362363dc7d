package app

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/ctxlog"
	"github.com/specialistvlad/burstrun/internal/executor"
	"github.com/specialistvlad/burstrun/internal/expr"
	"github.com/specialistvlad/burstrun/internal/store"
)

// App holds a loaded recipe file and runs one request against it.
type App struct {
	outW   io.Writer
	errW   io.Writer
	stdin  io.Reader
	logger *slog.Logger
	cfg    *Config

	model *config.Model
	store *store.Store
	eval  *expr.Evaluator

	runner  executor.ProcessRunner
	environ []string
	phase   Phase
}

// Option customizes an App.
type Option func(*App)

// WithRunner replaces the process runner, mainly for tests.
func WithRunner(r executor.ProcessRunner) Option {
	return func(a *App) { a.runner = r }
}

// WithEnviron sets the base environment of child processes instead of the
// process environment.
func WithEnviron(env []string) Option {
	return func(a *App) { a.environ = env }
}

// WithStdin sets the standard input handed to recipes.
func WithStdin(r io.Reader) Option {
	return func(a *App) { a.stdin = r }
}

// NewApp builds the logger, then loads and validates the recipe file. Recipe
// output goes to outW; logs and command echo go to errW.
func NewApp(outW, errW io.Writer, cfg *Config, opts ...Option) (*App, error) {
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, errW)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	model, s, err := load(ctx, cfg)
	if err != nil {
		return nil, err
	}

	a := &App{
		outW:   outW,
		errW:   errW,
		logger: logger,
		cfg:    cfg,
		model:  model,
		store:  s,
		eval:   expr.NewEvaluator(expr.CurrentHost(model.Path)),
		runner: executor.ExecRunner{},
		phase:  PhaseIdle,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a, nil
}

// Model returns the loaded recipe file.
func (a *App) Model() *config.Model { return a.model }

// Phase returns the current state of the run.
func (a *App) Phase() Phase { return a.phase }

func (a *App) setPhase(ctx context.Context, p Phase) {
	ctxlog.FromContext(ctx).Debug("Run phase changed.", "from", a.phase, "to", p)
	a.phase = p
}
