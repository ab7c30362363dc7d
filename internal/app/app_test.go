package app_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/burstrun/internal/app"
	"github.com/specialistvlad/burstrun/internal/executor"
	"github.com/specialistvlad/burstrun/internal/fsutil"
	"github.com/specialistvlad/burstrun/internal/plan"
	"github.com/specialistvlad/burstrun/internal/recipefile"
	"github.com/specialistvlad/burstrun/internal/store"
	"github.com/specialistvlad/burstrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

const justfile = `version := "1.0"

# Run the tests.
test:
    go test ./...

check: test
    go vet ./...

# Commit everything.
commit message="wip": check && status (tag version)
    git commit -m "{{message}}"

status:
    git status

tag name:
    git tag {{name}}

_hidden:
    echo hidden
`

func TestRun_ExecutesPlanInOrder(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"justfile": justfile}

	// --- Act ---
	res := testutil.RunRecipes(t, files, app.Config{Recipe: "commit", Args: []string{"done"}}, nil)

	// --- Assert ---
	require.NoError(t, res.Err)
	assert.Equal(t, app.PhaseSucceeded, res.App.Phase())

	calls := res.Runner.Calls()
	require.Len(t, calls, 5)
	var last []string
	for _, c := range calls {
		assert.Equal(t, res.Dir, c.Command.Dir)
		cmds := c.Commands()
		last = append(last, cmds[len(cmds)-1])
	}
	assert.Equal(t, []string{
		"go test ./...",
		"go vet ./...",
		`git commit -m "done"`,
		"git status",
		"git tag 1.0",
	}, last)
	assert.Contains(t, res.Stderr, "run_id=")
}

func TestRun_DefaultRecipe(t *testing.T) {
	// --- Act ---
	res := testutil.RunRecipes(t, map[string]string{"justfile": justfile}, app.Config{}, nil)

	// --- Assert ---
	require.NoError(t, res.Err)
	assert.Len(t, res.Runner.Calls(), 1, "test is the first recipe without required parameters")
}

func TestRun_FailurePhases(t *testing.T) {
	testCases := []struct {
		name      string
		src       string
		recipe    string
		exitCodes []int
		wantErr   error
		wantPhase app.Phase
		wantCalls int
	}{
		{
			name:      "unknown recipe",
			src:       justfile,
			recipe:    "comit",
			wantErr:   store.ErrUnknownRecipe,
			wantPhase: app.PhaseLookupError,
		},
		{
			name:      "no default",
			src:       "tag name:\n    git tag {{name}}\n",
			wantErr:   store.ErrNoDefault,
			wantPhase: app.PhaseLookupError,
		},
		{
			name:      "cycle",
			src:       "a: b\n    echo a\nb: a\n    echo b\n",
			recipe:    "a",
			wantErr:   plan.ErrDependencyCycle,
			wantPhase: app.PhaseCycleError,
		},
		{
			name:      "missing argument",
			src:       justfile,
			recipe:    "tag",
			wantErr:   plan.ErrMissingArgument,
			wantPhase: app.PhaseFailed,
		},
		{
			name:      "failing recipe",
			src:       justfile,
			recipe:    "check",
			exitCodes: []int{0, 2},
			wantPhase: app.PhaseFailed,
			wantCalls: 2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// --- Arrange ---
			runner := &testutil.StubRunner{ExitCodes: tc.exitCodes}

			// --- Act ---
			res := testutil.RunRecipes(t, map[string]string{"justfile": tc.src}, app.Config{Recipe: tc.recipe}, runner)

			// --- Assert ---
			require.Error(t, res.Err)
			if tc.wantErr != nil {
				require.ErrorIs(t, res.Err, tc.wantErr)
			}
			require.NotNil(t, res.App)
			assert.Equal(t, tc.wantPhase, res.App.Phase())
			assert.True(t, res.App.Phase().Terminal())
			assert.Len(t, runner.Calls(), tc.wantCalls)
		})
	}
}

func TestRun_Interrupted(t *testing.T) {
	// --- Arrange ---
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	runner := &testutil.StubRunner{
		ExitCodes: []int{-1},
		OnRun:     func(context.Context, executor.Command) { cancel() },
	}

	// --- Act ---
	res := testutil.RunRecipesWithContext(ctx, t, map[string]string{"justfile": justfile}, app.Config{Recipe: "check"}, runner)

	// --- Assert ---
	require.ErrorIs(t, res.Err, executor.ErrInterrupted)
	assert.Equal(t, app.PhaseFailed, res.App.Phase())
	assert.Len(t, runner.Calls(), 1)
}

func TestRun_List(t *testing.T) {
	// --- Act ---
	res := testutil.RunRecipes(t, map[string]string{"justfile": justfile}, app.Config{List: true}, nil)

	// --- Assert ---
	require.NoError(t, res.Err)
	want := `Available recipes:
    test                 # Run the tests.
    check
    commit message="wip" # Commit everything.
    status
    tag name
`
	assert.Equal(t, want, res.Stdout)
	assert.Empty(t, res.Runner.Calls())
	assert.Equal(t, app.PhaseIdle, res.App.Phase())
}

func TestRun_Dump(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		// --- Act ---
		res := testutil.RunRecipes(t, map[string]string{"justfile": justfile}, app.Config{Dump: true}, nil)

		// --- Assert ---
		require.NoError(t, res.Err)
		var doc struct {
			Assignments []struct {
				Name  string `yaml:"name"`
				Value string `yaml:"value"`
			} `yaml:"assignments"`
			Recipes []struct {
				Name   string   `yaml:"name"`
				Before []string `yaml:"before"`
				After  []string `yaml:"after"`
			} `yaml:"recipes"`
		}
		require.NoError(t, yaml.Unmarshal([]byte(res.Stdout), &doc))
		require.Len(t, doc.Assignments, 1)
		assert.Equal(t, `"1.0"`, doc.Assignments[0].Value)
		require.Len(t, doc.Recipes, 6)
		assert.Equal(t, "commit", doc.Recipes[2].Name)
		assert.Equal(t, []string{"check"}, doc.Recipes[2].Before)
		assert.Equal(t, []string{"status", "(tag version)"}, doc.Recipes[2].After)
	})

	t.Run("json", func(t *testing.T) {
		// --- Act ---
		res := testutil.RunRecipes(t, map[string]string{"justfile": justfile}, app.Config{Dump: true, DumpFormat: "json"}, nil)

		// --- Assert ---
		require.NoError(t, res.Err)
		var doc map[string]any
		require.NoError(t, json.Unmarshal([]byte(res.Stdout), &doc))
		assert.Len(t, doc["recipes"], 6)
	})
}

func TestRun_HCLRecipeFile(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{"recipes.hcl": `
variable "target" {
  value = "linux"
}

recipe "build" {
  parameter "mode" {
    default = "debug"
  }
  before "fmt" {}
  script = "go build -tags {{mode}} -o bin/{{target}}"
}

recipe "fmt" {
  script = "@gofmt -l ."
}
`}

	// --- Act ---
	res := testutil.RunRecipes(t, files, app.Config{Recipe: "build"}, nil)

	// --- Assert ---
	require.NoError(t, res.Err)
	calls := res.Runner.Calls()
	require.Len(t, calls, 2)
	assert.Equal(t, []string{"gofmt -l ."}, calls[0].Commands())
	assert.Equal(t, []string{"go build -tags debug -o bin/linux"}, calls[1].Commands())
}

func TestRun_Dotenv(t *testing.T) {
	// --- Arrange ---
	files := map[string]string{
		"justfile": "set dotenv-load\n\nshow:\n    env\n",
		".env":     "GREETING=hello\n",
	}

	// --- Act ---
	res := testutil.RunRecipes(t, files, app.Config{}, nil)

	// --- Assert ---
	require.NoError(t, res.Err)
	require.Len(t, res.Runner.Calls(), 1)
	assert.Contains(t, res.Runner.Calls()[0].Command.Env, "GREETING=hello")
}

func TestRun_DryRun(t *testing.T) {
	// --- Act ---
	res := testutil.RunRecipes(t, map[string]string{"justfile": justfile}, app.Config{Recipe: "check", DryRun: true}, nil)

	// --- Assert ---
	require.NoError(t, res.Err)
	assert.Empty(t, res.Runner.Calls())
	assert.Contains(t, res.Stderr, "go test ./...\ngo vet ./...\n")
}

func TestNewApp_LoadErrors(t *testing.T) {
	t.Run("syntax error", func(t *testing.T) {
		// --- Act ---
		res := testutil.RunRecipes(t, map[string]string{"justfile": "test\n"}, app.Config{}, nil)

		// --- Assert ---
		var syntaxErr *recipefile.SyntaxError
		require.ErrorAs(t, res.Err, &syntaxErr)
		assert.Equal(t, 1, syntaxErr.Line)
		assert.Nil(t, res.App)
	})

	t.Run("explicit file missing", func(t *testing.T) {
		// --- Act ---
		res := testutil.RunRecipes(t, nil, app.Config{File: "nope"}, nil)

		// --- Assert ---
		require.Error(t, res.Err)
		assert.Nil(t, res.App)
	})

	t.Run("file found in parent directory", func(t *testing.T) {
		// --- Arrange ---
		root := t.TempDir()
		nested := filepath.Join(root, "sub", "dir")
		require.NoError(t, os.MkdirAll(nested, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "justfile"), []byte(justfile), 0o644))
		cfg, err := app.NewConfig(app.Config{SearchDir: nested})
		require.NoError(t, err)

		// --- Act ---
		a, err := app.NewApp(&testutil.SafeBuffer{}, &testutil.SafeBuffer{}, cfg)

		// --- Assert ---
		require.NoError(t, err)
		assert.Equal(t, filepath.Join(root, "justfile"), a.Model().Path)
	})
}

func TestNewApp_NoRecipeFile(t *testing.T) {
	// --- Arrange ---
	dir := t.TempDir()
	cfg, err := app.NewConfig(app.Config{SearchDir: dir})
	require.NoError(t, err)

	// --- Act ---
	_, err = app.NewApp(&testutil.SafeBuffer{}, &testutil.SafeBuffer{}, cfg)

	// --- Assert ---
	if err == nil {
		t.Skip("a recipe file exists above the temp directory")
	}
	require.ErrorIs(t, err, fsutil.ErrNotFound)
}
