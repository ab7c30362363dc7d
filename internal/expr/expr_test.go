package expr_test

import (
	"errors"
	"testing"

	"github.com/specialistvlad/burstrun/internal/expr"
	"github.com/stretchr/testify/require"
)

func testHost() expr.Host {
	return expr.Host{
		OS:            "linux",
		Arch:          "x86_64",
		NumCPU:        8,
		Env:           map[string]string{"HOME": "/home/dev", "EMPTY": ""},
		InvocationDir: "/work/sub",
		RecipeFile:    "/work/justfile",
	}
}

func TestParseExpression_AcceptsClosedGrammar(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		src   string
		refs  []string
		funcs []string
	}{
		{src: `"literal"`},
		{src: `42`},
		{src: `target`, refs: []string{"target"}},
		{src: `arch()`, funcs: []string{"arch"}},
		{src: `(os())`, funcs: []string{"os"}},
		{src: `env_var_or_default("PROFILE", mode)`, refs: []string{"mode"}, funcs: []string{"env_var_or_default"}},
		{src: `join(recipe_directory(), "target", name)`, refs: []string{"name"}, funcs: []string{"join", "recipe_directory"}},
	}

	for _, tc := range testCases {
		t.Run(tc.src, func(t *testing.T) {
			e, err := expr.ParseExpression(tc.src)
			require.NoError(t, err)
			require.ElementsMatch(t, tc.refs, e.References())
			require.ElementsMatch(t, tc.funcs, e.Functions())
		})
	}
}

func TestParseExpression_RejectsOtherSyntax(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		src  string
		want error
	}{
		{name: "arithmetic", src: `a + b`, want: expr.ErrUnsupportedExpression},
		{name: "attribute access", src: `var.name`, want: expr.ErrUnsupportedExpression},
		{name: "conditional", src: `a ? "x" : "y"`, want: expr.ErrUnsupportedExpression},
		{name: "hcl interpolation", src: `"${a}"`, want: expr.ErrUnsupportedExpression},
		{name: "tuple", src: `["a"]`, want: expr.ErrUnsupportedExpression},
		{name: "null", src: `null`, want: expr.ErrUnsupportedExpression},
		{name: "empty", src: `   `, want: expr.ErrUnsupportedExpression},
		{name: "unknown function", src: `shell("ls")`, want: expr.ErrUnknownFunction},
		{name: "wrong arity", src: `arch("x")`, want: expr.ErrUnsupportedExpression},
		{name: "missing variadic base", src: `join()`, want: expr.ErrUnsupportedExpression},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := expr.ParseExpression(tc.src)
			require.ErrorIs(t, err, tc.want)
		})
	}
}

func TestEvaluator_Builtins(t *testing.T) {
	t.Parallel()
	ev := expr.NewEvaluator(testHost())
	scope := expr.NewScope(nil)
	scope.Bind("name", "  Widget ")

	testCases := map[string]string{
		`arch()`:                              "x86_64",
		`os()`:                                "linux",
		`os_family()`:                         "unix",
		`num_cpus()`:                          "8",
		`env_var("HOME")`:                     "/home/dev",
		`env_var_or_default("MISSING", "d")`:  "d",
		`env_var_or_default("EMPTY", "d")`:    "",
		`invocation_directory()`:              "/work/sub",
		`recipe_directory()`:                  "/work",
		`recipe_file()`:                       "/work/justfile",
		`uppercase(trim(name))`:               "WIDGET",
		`lowercase("ABC")`:                    "abc",
		`replace("a-b-c", "-", "_")`:          "a_b_c",
		`join(recipe_directory(), "out", "x")`: "/work/out/x",
		`7`:                                   "7",
		`true`:                                "true",
	}

	for src, want := range testCases {
		e, err := expr.ParseExpression(src)
		require.NoError(t, err, src)
		got, err := ev.Evaluate(e, scope)
		require.NoError(t, err, src)
		require.Equal(t, want, got, src)
	}
}

func TestEvaluator_UnboundParameter(t *testing.T) {
	t.Parallel()
	ev := expr.NewEvaluator(testHost())

	e, err := expr.ParseExpression(`uppercase(missing)`)
	require.NoError(t, err)

	_, err = ev.Evaluate(e, expr.NewScope(nil))

	require.ErrorIs(t, err, expr.ErrUnboundParameter)
	var unbound *expr.UnboundError
	require.True(t, errors.As(err, &unbound))
	require.Equal(t, "missing", unbound.Name)
}

func TestEvaluator_MissingEnvVarFails(t *testing.T) {
	t.Parallel()
	ev := expr.NewEvaluator(testHost())

	e, err := expr.ParseExpression(`env_var("NOPE")`)
	require.NoError(t, err)

	_, err = ev.Evaluate(e, nil)
	require.ErrorContains(t, err, `environment variable "NOPE" not present`)
}

func TestScope_ChildShadowsParent(t *testing.T) {
	t.Parallel()

	globals := expr.NewScope(nil)
	globals.Bind("mode", "release")
	globals.Bind("version", "1.0")
	params := expr.NewScope(globals)
	params.Bind("mode", "debug")

	ev := expr.NewEvaluator(testHost())
	tmpl, err := expr.ParseTemplate("{{mode}}-{{version}}")
	require.NoError(t, err)

	got, err := ev.Render(tmpl, params)
	require.NoError(t, err)
	require.Equal(t, "debug-1.0", got)
	require.Equal(t, []string{"mode"}, params.Names())
	require.Equal(t, []string{"debug"}, params.Values())
}
