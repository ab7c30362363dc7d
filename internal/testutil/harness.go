package testutil

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/burstrun/internal/app"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcome of a harness run.
type HarnessResult struct {
	Stdout string
	Stderr string
	// Err is the load error if loading failed, otherwise the run error.
	Err    error
	App    *app.App
	Runner *StubRunner
	Dir    string
}

// RunRecipes writes files into a temp directory, loads it with cfg and runs
// it against a StubRunner. Relative cfg.File paths are resolved inside the
// temp directory; without one the recipe file is searched for from there.
func RunRecipes(t *testing.T, files map[string]string, cfg app.Config, runner *StubRunner) *HarnessResult {
	t.Helper()
	return RunRecipesWithContext(context.Background(), t, files, cfg, runner)
}

// RunRecipesWithContext is RunRecipes with a caller-provided context.
func RunRecipesWithContext(ctx context.Context, t *testing.T, files map[string]string, cfg app.Config, runner *StubRunner) *HarnessResult {
	t.Helper()

	dir := t.TempDir()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}

	if cfg.File != "" && !filepath.IsAbs(cfg.File) {
		cfg.File = filepath.Join(dir, cfg.File)
	}
	if cfg.SearchDir == "" {
		cfg.SearchDir = dir
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "debug"
	}
	if runner == nil {
		runner = &StubRunner{}
	}

	appCfg, err := app.NewConfig(cfg)
	require.NoError(t, err)

	stdout, stderr := &SafeBuffer{}, &SafeBuffer{}
	res := &HarnessResult{Runner: runner, Dir: dir}

	a, err := app.NewApp(stdout, stderr, appCfg, app.WithRunner(runner), app.WithEnviron([]string{}))
	if err == nil {
		res.App = a
		err = a.Run(ctx)
	}
	res.Err = err
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()

	if os.Getenv("BURSTRUN_TEST_LOGS") == "true" {
		t.Logf("--- Output for %s ---\n%s", t.Name(), res.Stderr)
	}
	return res
}
