package executor

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/ctxlog"
	"github.com/specialistvlad/burstrun/internal/expr"
	"github.com/specialistvlad/burstrun/internal/plan"
)

// Options configures an Engine. Zero values fall back to the process
// defaults.
type Options struct {
	// Shell runs line-mode bodies; the script path is appended.
	Shell []string
	// Dir is the working directory of every child.
	Dir string
	// Env is the base child environment, os.Environ() when nil.
	Env []string
	// Dotenv variables are layered over Env.
	Dotenv map[string]string
	// ExportAll exports every assignment and parameter.
	ExportAll bool
	// Exported names the assignments declared with `export`.
	Exported []string
	// DryRun prints the commands instead of running them.
	DryRun  bool
	TempDir string

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Engine executes plans sequentially.
type Engine struct {
	runner   ProcessRunner
	eval     *expr.Evaluator
	opts     Options
	exported map[string]struct{}
}

// New creates an engine. A nil runner uses ExecRunner.
func New(runner ProcessRunner, eval *expr.Evaluator, opts Options) *Engine {
	if runner == nil {
		runner = ExecRunner{}
	}
	if len(opts.Shell) == 0 {
		opts.Shell = config.DefaultShell
	}
	if opts.Env == nil {
		opts.Env = os.Environ()
	}
	if opts.Stdin == nil {
		opts.Stdin = os.Stdin
	}
	if opts.Stdout == nil {
		opts.Stdout = os.Stdout
	}
	if opts.Stderr == nil {
		opts.Stderr = os.Stderr
	}

	exported := make(map[string]struct{}, len(opts.Exported))
	for _, name := range opts.Exported {
		exported[name] = struct{}{}
	}
	return &Engine{runner: runner, eval: eval, opts: opts, exported: exported}
}

// Run executes the entries of p in order and stops at the first failure.
func (e *Engine) Run(ctx context.Context, p *plan.Plan) error {
	ctx = ctxlog.With(ctx, "run_id", p.RunID)
	logger := ctxlog.FromContext(ctx)
	logger.Info("🚀 Starting run.", "entries", len(p.Entries), "dry_run", e.opts.DryRun)

	for _, entry := range p.Entries {
		if ctx.Err() != nil {
			return fmt.Errorf("before recipe %q: %w", entry.Recipe.Name, ErrInterrupted)
		}
		if err := e.runEntry(ctx, p.Globals, entry); err != nil {
			return err
		}
	}

	logger.Info("🏁 Run finished.")
	return nil
}

func (e *Engine) runEntry(ctx context.Context, globals *expr.Scope, entry plan.Entry) error {
	r := entry.Recipe
	logger := ctxlog.FromContext(ctx).With("recipe", entry.String())

	lines, err := e.render(entry)
	if err != nil {
		return fmt.Errorf("recipe %q: %w", r.Name, err)
	}
	if len(lines) == 0 {
		logger.Debug("Recipe has no body, nothing to run.")
		return nil
	}
	if e.opts.DryRun {
		return e.printDryRun(r, lines)
	}

	argv := e.opts.Shell
	var contents string
	if r.IsScript() {
		argv = r.Interpreter
		contents = interpreterScript(lines)
	} else {
		contents = shellScript(lines)
	}

	path, cleanup, err := writeScript(e.opts.TempDir, contents)
	if err != nil {
		return fmt.Errorf("recipe %q: %w", r.Name, err)
	}
	defer cleanup()

	args := make([]string, 0, len(argv))
	args = append(args, argv[1:]...)
	args = append(args, path)
	cmd := Command{
		Path:   argv[0],
		Args:   args,
		Env:    e.environ(globals, entry),
		Dir:    e.opts.Dir,
		Stdin:  e.opts.Stdin,
		Stdout: e.opts.Stdout,
		Stderr: e.opts.Stderr,
	}

	logger.Info("▶️ Running recipe.", "interpreter", argv[0])
	code, err := e.runner.Run(ctx, cmd)
	if ctx.Err() != nil {
		logger.Debug("Recipe cancelled.", "exit_code", code)
		return fmt.Errorf("recipe %q: %w", r.Name, ErrInterrupted)
	}
	if err != nil {
		return fmt.Errorf("recipe %q: running %s: %w", r.Name, argv[0], err)
	}
	if code != 0 {
		logger.Debug("Recipe exited with failure.", "exit_code", code)
		return &RecipeFailedError{Recipe: r.Name, ExitCode: code}
	}

	logger.Info("✅ Recipe finished.")
	return nil
}

func (e *Engine) render(entry plan.Entry) ([]renderedLine, error) {
	lines := make([]renderedLine, 0, len(entry.Recipe.Body))
	for _, l := range entry.Recipe.Body {
		text, err := e.eval.Render(l.Text, entry.Scope)
		if err != nil {
			return nil, err
		}
		lines = append(lines, renderedLine{text: text, quiet: l.Quiet})
	}
	return lines, nil
}

func (e *Engine) printDryRun(r *config.Recipe, lines []renderedLine) error {
	if r.IsScript() {
		_, err := io.WriteString(e.opts.Stderr, interpreterScript(lines))
		return err
	}
	for _, l := range lines {
		if _, err := fmt.Fprintln(e.opts.Stderr, l.text); err != nil {
			return err
		}
	}
	return nil
}
