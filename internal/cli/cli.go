package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/specialistvlad/burstrun/internal/app"
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated Config, a
// boolean indicating the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")
	flagSet := flag.NewFlagSet("burstrun", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
burstrun - run named, parameterized recipes from a recipe file.

Usage:
  burstrun [options] [RECIPE [ARGS...]]

Arguments:
  RECIPE
    Recipe to run. Without one, the first recipe that takes no required
    arguments runs.
  ARGS
    Values bound to the recipe's parameters, in order.

Options:
`)
		flagSet.PrintDefaults()
	}

	fileFlag := flagSet.String("file", "", "Path to the recipe file. Searched for upward from the current directory when empty.")
	fFlag := flagSet.String("f", "", "Path to the recipe file (shorthand).")
	workDirFlag := flagSet.String("working-directory", "", "Directory recipes run in. Defaults to the recipe file's directory.")
	dFlag := flagSet.String("d", "", "Directory recipes run in (shorthand).")
	listFlag := flagSet.Bool("list", false, "List available recipes and exit.")
	lFlag := flagSet.Bool("l", false, "List available recipes and exit (shorthand).")
	dumpFlag := flagSet.Bool("dump", false, "Print the parsed recipe file and exit.")
	dumpFormatFlag := flagSet.String("dump-format", "yaml", "Format for --dump. Options: 'yaml' or 'json'.")
	dryRunFlag := flagSet.Bool("dry-run", false, "Print the commands that would run without running them.")
	nFlag := flagSet.Bool("n", false, "Print the commands that would run without running them (shorthand).")
	dotenvFlag := flagSet.String("dotenv-path", "", "Load environment variables from this file.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "warn", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	var recipe string
	var recipeArgs []string
	if rest := flagSet.Args(); len(rest) > 0 {
		recipe = rest[0]
		if len(rest) > 1 {
			recipeArgs = rest[1:]
		}
	}
	slog.Debug("Recipe request determined.", "recipe", recipe, "args", recipeArgs)

	cfg, err := app.NewConfig(app.Config{
		File:       firstNonEmpty(*fileFlag, *fFlag),
		WorkingDir: firstNonEmpty(*workDirFlag, *dFlag),
		DotenvPath: *dotenvFlag,
		List:       *listFlag || *lFlag,
		Dump:       *dumpFlag,
		DumpFormat: strings.ToLower(*dumpFormatFlag),
		DryRun:     *dryRunFlag || *nFlag,
		LogLevel:   strings.ToLower(*logLevelFlag),
		LogFormat:  strings.ToLower(*logFormatFlag),
		Recipe:     recipe,
		Args:       recipeArgs,
	})
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", cfg)
	return cfg, false, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
