package recipefile_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/burstrun/internal/config"
	"github.com/specialistvlad/burstrun/internal/ctxlog"
	"github.com/specialistvlad/burstrun/internal/expr"
	"github.com/specialistvlad/burstrun/internal/recipefile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = `set shell := ["bash", "-eu"]
set dotenv-load

version := "1.0"
export PROFILE := env_var_or_default("PROFILE", "dev")

# Run the test suite.
test:
    cargo test

check: test
    cargo clippy

# Commit everything.
commit message="wip": check && status (tag version)
    git add -A
    @git commit -m "{{message}}"

status:
    git status

tag name:
    git tag {{name}}

build target=arch() $mode="debug" *flags:
    cargo build --target {{target}} \
        --profile {{mode}} {{flags}}

[private]
helper:
    echo hidden

_internal:
    echo also hidden

script:
    #!/usr/bin/env python3
    import sys

    print(sys.argv)
`

func parse(t *testing.T, src string) *config.Model {
	t.Helper()
	p := recipefile.NewParser(expr.NewCompiler(0))
	model, err := p.Parse("justfile", []byte(src))
	require.NoError(t, err)
	return model
}

func recipeByName(t *testing.T, m *config.Model, name string) *config.Recipe {
	t.Helper()
	for _, r := range m.Recipes {
		if r.Name == name {
			return r
		}
	}
	t.Fatalf("recipe %q not found", name)
	return nil
}

func depNames(deps []*config.Dependency) []string {
	out := make([]string, 0, len(deps))
	for _, d := range deps {
		out = append(out, d.String())
	}
	return out
}

func TestParse_SampleFile(t *testing.T) {
	t.Parallel()

	// --- Act ---
	m := parse(t, sample)

	// --- Assert ---
	assert.Equal(t, []string{"bash", "-eu"}, m.Settings.Shell)
	assert.True(t, m.Settings.DotenvLoad)

	require.Len(t, m.Assignments, 2)
	assert.Equal(t, "version", m.Assignments[0].Name)
	assert.True(t, m.Assignments[0].Value.IsLiteral())
	assert.Equal(t, "PROFILE", m.Assignments[1].Name)
	assert.True(t, m.Assignments[1].Exported)

	names := make([]string, 0, len(m.Recipes))
	for _, r := range m.Recipes {
		names = append(names, r.Name)
	}
	assert.Equal(t, []string{"test", "check", "commit", "status", "tag", "build", "helper", "_internal", "script"}, names)

	test := recipeByName(t, m, "test")
	assert.Equal(t, "Run the test suite.", test.Doc)
	assert.Equal(t, 8, test.Pos.Line)

	check := recipeByName(t, m, "check")
	assert.Empty(t, check.Doc)
	assert.Equal(t, []string{"test"}, depNames(check.Before))

	commit := recipeByName(t, m, "commit")
	assert.Equal(t, "Commit everything.", commit.Doc)
	assert.Equal(t, []string{"check"}, depNames(commit.Before))
	assert.Equal(t, []string{"status", "(tag version)"}, depNames(commit.After))
	require.Len(t, commit.Params, 1)
	assert.Equal(t, `message="wip"`, commit.Params[0].String())
	require.Len(t, commit.Body, 2)
	assert.False(t, commit.Body[0].Quiet)
	assert.True(t, commit.Body[1].Quiet)
	assert.Equal(t, `git commit -m "{{message}}"`, commit.Body[1].Text.Source())

	build := recipeByName(t, m, "build")
	assert.Equal(t, `build target=arch() $mode="debug" *flags`, build.Signature())
	assert.Equal(t, 0, build.MinArgs())
	assert.Equal(t, -1, build.MaxArgs())
	require.Len(t, build.Body, 1, "continuation lines form one command")
	assert.Equal(t, "cargo build --target {{target}} \\\n    --profile {{mode}} {{flags}}", build.Body[0].Text.Source())

	assert.True(t, recipeByName(t, m, "helper").Hidden())
	assert.True(t, recipeByName(t, m, "_internal").Hidden())
	assert.False(t, recipeByName(t, m, "status").Hidden())

	script := recipeByName(t, m, "script")
	assert.True(t, script.IsScript())
	assert.Equal(t, []string{"/usr/bin/env", "python3"}, script.Interpreter)
	require.Len(t, script.Body, 4, "script bodies keep interior blank lines")
	assert.Equal(t, "", script.Body[2].Text.Source())
}

func TestParse_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
		line int
	}{
		{name: "missing colon", src: "build target\n    echo\n", line: 1},
		{name: "stray indentation", src: "    echo hi\n", line: 1},
		{name: "inconsistent indentation", src: "a:\n    echo one\n  echo two\n", line: 3},
		{name: "unknown setting", src: "set fancy := true\n", line: 1},
		{name: "unknown attribute", src: "[weird]\na:\n    echo\n", line: 1},
		{name: "unterminated interpolation", src: "a:\n    echo {{x\n", line: 2},
		{name: "unsupported expression", src: "a x:\n    echo {{x + 1}}\n", line: 2},
		{name: "double post section", src: "a: b && c && d\n", line: 1},
		{name: "unclosed dependency", src: "a: (b \"x\"\n", line: 1},
		{name: "reassigned variable", src: "x := \"1\"\nx := \"2\"\n", line: 2},
		{name: "empty interpreter", src: "a:\n    #!\n    echo\n", line: 2},
		{name: "unterminated string", src: "a x=\"oops:\n", line: 1},
	}

	p := recipefile.NewParser(expr.NewCompiler(0))
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := p.Parse("justfile", []byte(tc.src))
			require.ErrorIs(t, err, recipefile.ErrSyntax)

			var synErr *recipefile.SyntaxError
			require.ErrorAs(t, err, &synErr)
			assert.Equal(t, tc.line, synErr.Line)
			assert.Equal(t, "justfile", synErr.File)
		})
	}
}

func TestParse_DependencyArguments(t *testing.T) {
	t.Parallel()

	m := parse(t, `release: (build "x86_64" 'raw {{x}}' os()) (tag (uppercase("v1")))
    echo done

build a b c:
    echo {{a}} {{b}} {{c}}

tag n:
    echo {{n}}
`)

	release := recipeByName(t, m, "release")
	require.Len(t, release.Before, 2)

	build := release.Before[0]
	assert.Equal(t, "build", build.Recipe)
	require.Len(t, build.Args, 3)
	assert.True(t, build.Args[0].IsLiteral())
	assert.True(t, build.Args[1].IsLiteral(), "quoted strings are never interpolated")
	assert.Equal(t, `"raw {{x}}"`, build.Args[1].Source())
	assert.Equal(t, []string{"os"}, build.Args[2].Functions())

	tag := release.Before[1]
	require.Len(t, tag.Args, 1)
	assert.Equal(t, []string{"uppercase"}, tag.Args[0].Functions())
}

func TestParse_DocCommentNeedsAdjacency(t *testing.T) {
	t.Parallel()

	m := parse(t, "# detached\n\na:\n    echo\n\n# attached\n[private]\nb:\n    echo\n")

	assert.Empty(t, recipeByName(t, m, "a").Doc)
	assert.Equal(t, "attached", recipeByName(t, m, "b").Doc)
	assert.True(t, recipeByName(t, m, "b").Private)
}

func TestLoader_Load(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := filepath.Join(dir, "justfile")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o600))
	ctx := ctxlog.WithLogger(context.Background(), slog.New(slog.DiscardHandler))

	// --- Act ---
	m, err := recipefile.NewLoader(expr.NewCompiler(0)).Load(ctx, path)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, path, m.Path)
	assert.Len(t, m.Recipes, 9)

	_, err = recipefile.NewLoader(expr.NewCompiler(0)).Load(ctx, filepath.Join(dir, "missing"))
	require.Error(t, err)
}
