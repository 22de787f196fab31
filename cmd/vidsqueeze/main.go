// Command vidsqueeze is the CLI entrypoint for the batch video shrinker.
//
// It parses flags, validates configuration, and either runs system
// diagnostics (--check), prints a plan table (--analyze), or runs the
// encode or thumbnail batch over the discovered inputs.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/backmassage/vidsqueeze/internal/check"
	"github.com/backmassage/vidsqueeze/internal/config"
	"github.com/backmassage/vidsqueeze/internal/display"
	"github.com/backmassage/vidsqueeze/internal/logging"
	"github.com/backmassage/vidsqueeze/internal/pipeline"
	"github.com/backmassage/vidsqueeze/internal/term"
)

// version is injected at build time via -ldflags "-X main.version=...".
var version = "0.1.0"

// Exit statuses.
const (
	exitOK          = 0
	exitFailure     = 1
	exitInterrupted = 130
)

func main() {
	os.Exit(run())
}

func run() int {
	// Phase 1: Bootstrap. The logger doesn't exist yet, so errors go
	// directly to stderr via fmt.
	cfg := config.DefaultConfig()
	if err := config.ParseFlags(&cfg, os.Args[1:], version); err != nil {
		if errors.Is(err, flag.ErrHelp) || errors.Is(err, config.ErrVersion) {
			return exitOK
		}
		fmt.Fprintf(os.Stderr, "vidsqueeze: %v\n", err)
		return exitFailure
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "vidsqueeze: %v\n", err)
		return exitFailure
	}

	log, err := logging.NewLogger(&cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "vidsqueeze: %v\n", err)
		return exitFailure
	}
	defer log.Close()

	// Phase 2: Logger available; all output goes through log from here on.
	display.PrintBanner(os.Stdout, version)

	if cfg.CheckOnly {
		if !check.RunCheck(&cfg, log) {
			return exitFailure
		}
		return exitOK
	}

	// Fail fast if ffmpeg/ffprobe or the chosen encoder are unavailable.
	if err := check.CheckDeps(&cfg); err != nil {
		log.Error("%v", err)
		return exitFailure
	}

	files, errs := pipeline.Discover(cfg.Inputs, cfg.Depth)
	for _, err := range errs {
		log.Warn("Skip input: %v", err)
	}
	if len(files) == 0 {
		log.Error("No video files found")
		return exitFailure
	}

	// Phase 3: Signal handling. The context is canceled on SIGINT/SIGTERM;
	// the runner kills the in-flight child and the batch stops.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	env := pipeline.NewEnv(&cfg, log)
	if cfg.Analyze {
		stats := pipeline.Analyze(ctx, env, files)
		return exitCode(stats)
	}

	if !confirm(&cfg, len(files)) {
		log.Warn("Aborted")
		return exitOK
	}

	// Phase 4: Run the batch (probe → plan → execute per file).
	stats := pipeline.RunWith(ctx, env, files)
	return exitCode(stats)
}

// confirm asks before a real batch on an interactive terminal. --yes,
// --dry-run and non-TTY stdin skip the prompt.
func confirm(cfg *config.Config, n int) bool {
	if cfg.AssumeYes || cfg.DryRun || !term.IsTerminal(os.Stdin) || !term.IsTerminal(os.Stdout) {
		return true
	}
	ok, err := display.Confirm(fmt.Sprintf("Process %d files (%s)", n, cfg.Task))
	return ok && err == nil
}

func exitCode(stats pipeline.RunStats) int {
	switch {
	case stats.Canceled:
		return exitInterrupted
	case stats.HasFailure():
		return exitFailure
	}
	return exitOK
}
