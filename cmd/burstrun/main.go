package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/specialistvlad/burstrun/internal/app"
	"github.com/specialistvlad/burstrun/internal/cli"
)

// main is the entrypoint for the burstrun application.
func main() {
	// Use a minimal logger until the full one is configured.
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelWarn,
	})))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %s\n", err)
		os.Exit(cli.ExitCode(err))
	}
}

// run parses args, loads the recipe file and performs the request.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cfg, shouldExit, err := cli.Parse(args, stdout)
	if err != nil {
		return err
	}
	if shouldExit {
		return nil
	}

	a, err := app.NewApp(stdout, stderr, cfg)
	if err != nil {
		return err
	}
	return a.Run(ctx)
}
