package expr

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
)

// Host is the snapshot of the invoking environment that built-ins read.
type Host struct {
	OS            string
	Arch          string
	NumCPU        int
	Env           map[string]string
	InvocationDir string
	RecipeFile    string
}

// CurrentHost captures the running process: platform, CPU count, environment
// and working directory. recipeFile is the absolute path of the loaded file.
func CurrentHost(recipeFile string) Host {
	wd, _ := os.Getwd()
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return Host{
		OS:            hostOS(runtime.GOOS),
		Arch:          hostArch(runtime.GOARCH),
		NumCPU:        runtime.NumCPU(),
		Env:           env,
		InvocationDir: wd,
		RecipeFile:    recipeFile,
	}
}

func hostOS(goos string) string {
	switch goos {
	case "darwin":
		return "macos"
	default:
		return goos
	}
}

func hostArch(goarch string) string {
	switch goarch {
	case "amd64":
		return "x86_64"
	case "arm64":
		return "aarch64"
	case "386":
		return "x86"
	default:
		return goarch
	}
}

func (h Host) family() string {
	if h.OS == "windows" {
		return "windows"
	}
	return "unix"
}

// Builtins returns the functions available to expressions, bound to h.
func Builtins(h Host) map[string]function.Function {
	return map[string]function.Function{
		"arch":                 constant(h.Arch),
		"os":                   constant(h.OS),
		"os_family":            constant(h.family()),
		"num_cpus":             constant(strconv.Itoa(h.NumCPU)),
		"invocation_directory": constant(h.InvocationDir),
		"recipe_file":          constant(h.RecipeFile),
		"recipe_directory":     constant(filepath.Dir(h.RecipeFile)),
		"env_var":              envVar(h.Env),
		"env_var_or_default":   envVarOrDefault(h.Env),
		"uppercase":            stdlib.UpperFunc,
		"lowercase":            stdlib.LowerFunc,
		"trim":                 stdlib.TrimSpaceFunc,
		"replace":              stdlib.ReplaceFunc,
		"join":                 joinPath,
	}
}

func constant(v string) function.Function {
	return function.New(&function.Spec{
		Type: function.StaticReturnType(cty.String),
		Impl: func(_ []cty.Value, _ cty.Type) (cty.Value, error) {
			return cty.StringVal(v), nil
		},
	})
}

func envVar(env map[string]string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{{Name: "name", Type: cty.String}},
		Type:   function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			name := args[0].AsString()
			v, ok := env[name]
			if !ok {
				return cty.NilVal, fmt.Errorf("environment variable %q not present", name)
			}
			return cty.StringVal(v), nil
		},
	})
}

func envVarOrDefault(env map[string]string) function.Function {
	return function.New(&function.Spec{
		Params: []function.Parameter{
			{Name: "name", Type: cty.String},
			{Name: "default", Type: cty.String},
		},
		Type: function.StaticReturnType(cty.String),
		Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
			if v, ok := env[args[0].AsString()]; ok {
				return cty.StringVal(v), nil
			}
			return args[1], nil
		},
	})
}

var joinPath = function.New(&function.Spec{
	Params:   []function.Parameter{{Name: "base", Type: cty.String}},
	VarParam: &function.Parameter{Name: "parts", Type: cty.String},
	Type:     function.StaticReturnType(cty.String),
	Impl: func(args []cty.Value, _ cty.Type) (cty.Value, error) {
		parts := make([]string, 0, len(args))
		for _, a := range args {
			parts = append(parts, a.AsString())
		}
		return cty.StringVal(filepath.Join(parts...)), nil
	},
})

// signature is the host-independent arity of a built-in, used to reject bad
// calls when an expression is parsed rather than when it is first evaluated.
type signature struct {
	params   int
	variadic bool
}

func (s signature) checkArity(name string, got int) error {
	if got == s.params || (s.variadic && got > s.params) {
		return nil
	}
	want := strconv.Itoa(s.params)
	if s.variadic {
		want = "at least " + want
	}
	return fmt.Errorf("%w: %s() takes %s argument(s), got %d", ErrUnsupportedExpression, name, want, got)
}

var signatures = func() map[string]signature {
	out := make(map[string]signature)
	for name, fn := range Builtins(Host{}) {
		out[name] = signature{params: len(fn.Params()), variadic: fn.VarParam() != nil}
	}
	return out
}()

// BuiltinNames returns the names of all built-in functions.
func BuiltinNames() []string {
	names := make(map[string]struct{}, len(signatures))
	for n := range signatures {
		names[n] = struct{}{}
	}
	return sortedKeys(names)
}
