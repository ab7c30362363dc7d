package executor

import (
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"slices"

	"github.com/joho/godotenv"
	"github.com/specialistvlad/burstrun/internal/expr"
	"github.com/specialistvlad/burstrun/internal/plan"
)

// ReadDotenv parses a dotenv file. A missing file is an error only when
// required is set.
func ReadDotenv(path string, required bool) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if err != nil {
		if !required && errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("loading dotenv file %s: %w", path, err)
	}
	return vars, nil
}

// environ builds the child environment for entry: the base environment,
// then dotenv variables, then exported assignments, then exported
// parameters. Later values win.
func (e *Engine) environ(globals *expr.Scope, entry plan.Entry) []string {
	env := slices.Clone(e.opts.Env)
	for _, k := range slices.Sorted(maps.Keys(e.opts.Dotenv)) {
		env = append(env, k+"="+e.opts.Dotenv[k])
	}
	if globals != nil {
		values := globals.Values()
		for i, name := range globals.Names() {
			if _, ok := e.exported[name]; ok || e.opts.ExportAll {
				env = append(env, name+"="+values[i])
			}
		}
	}
	for i, p := range entry.Recipe.Params {
		if p.Exported || e.opts.ExportAll {
			env = append(env, p.Name+"="+entry.Args[i])
		}
	}
	return env
}
