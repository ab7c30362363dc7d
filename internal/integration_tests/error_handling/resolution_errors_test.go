package integration_tests

import (
	"testing"

	"github.com/specialistvlad/burstrun/internal/app"
	"github.com/specialistvlad/burstrun/internal/expr"
	"github.com/specialistvlad/burstrun/internal/plan"
	"github.com/specialistvlad/burstrun/internal/recipefile"
	"github.com/specialistvlad/burstrun/internal/store"
	"github.com/specialistvlad/burstrun/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrorHandling_NothingRunsWhenResolutionFails(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		cfg     app.Config
		wantErr error
		wantMsg string
	}{
		{
			name:    "dependency cycle",
			src:     "a: b\n    echo a\n\nb: c\n    echo b\n\nc: a\n    echo c\n",
			cfg:     app.Config{Recipe: "a"},
			wantErr: plan.ErrDependencyCycle,
			wantMsg: "a -> b -> c -> a",
		},
		{
			name:    "required argument missing",
			src:     "greet name:\n    echo {{name}}\n",
			cfg:     app.Config{Recipe: "greet"},
			wantErr: plan.ErrMissingArgument,
			wantMsg: `"name"`,
		},
		{
			name:    "too many arguments",
			src:     "lint:\n    golangci-lint run\n",
			cfg:     app.Config{Recipe: "lint", Args: []string{"./..."}},
			wantErr: plan.ErrTooManyArguments,
		},
		{
			name:    "unknown recipe with suggestion",
			src:     "lint:\n    golangci-lint run\n",
			cfg:     app.Config{Recipe: "lnt"},
			wantErr: store.ErrUnknownRecipe,
			wantMsg: `did you mean "lint"?`,
		},
		{
			name:    "missing environment variable",
			src:     "token := env_var(\"BURSTRUN_SURELY_UNSET\")\n\nlint:\n    echo {{token}}\n",
			cfg:     app.Config{Recipe: "lint"},
			wantErr: plan.ErrInvalidAssignment,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.RunRecipes(t, map[string]string{"justfile": tc.src}, tc.cfg, nil)

			// --- Assert ---
			require.ErrorIs(t, result.Err, tc.wantErr)
			if tc.wantMsg != "" {
				assert.Contains(t, result.Err.Error(), tc.wantMsg)
			}
			assert.Empty(t, result.Runner.Calls())
		})
	}
}

func TestErrorHandling_InvalidRecipeFileIsRejected(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		src     string
		wantErr error
	}{
		{name: "missing colon", src: "build\n    go build\n", wantErr: recipefile.ErrSyntax},
		{name: "unsupported expression", src: "x := (1 + 2)\n", wantErr: expr.ErrUnsupportedExpression},
		{name: "unknown function", src: "x := shout(\"a\")\n", wantErr: expr.ErrUnknownFunction},
		{name: "unbound parameter", src: "build:\n    go build {{flags}}\n", wantErr: expr.ErrUnboundParameter},
		{name: "duplicate recipe", src: "a:\n    echo 1\na:\n    echo 2\n", wantErr: store.ErrDuplicateName},
		{name: "unknown dependency", src: "a: b\n    echo a\n", wantErr: store.ErrUnknownRecipe},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			// --- Act ---
			result := testutil.RunRecipes(t, map[string]string{"justfile": tc.src}, app.Config{}, nil)

			// --- Assert ---
			require.ErrorIs(t, result.Err, tc.wantErr)
			assert.Nil(t, result.App, "loading must fail before a run starts")
			assert.Empty(t, result.Runner.Calls())
		})
	}
}
