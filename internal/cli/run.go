// Package cli implements the todo command line.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/present"
	"github.com/nhle/todo/internal/seed"
	"github.com/nhle/todo/internal/selector"
	"github.com/nhle/todo/internal/store"
)

// Exit codes.
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// options holds parsed command-line options.
type options struct {
	add        bool
	delete     bool
	selector   selector.Selector
	configPath string
}

// Run executes the todo command with args (without the program name) and
// returns the process exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet()

	opts, err := parseArgs(fs, args)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			printUsage(stdout, fs)
			return ExitOK
		}
		fmt.Fprintln(stderr, "error:", err)
		fmt.Fprintln(stderr)
		printUsage(stderr, fs)
		return ExitUsage
	}

	cfg, err := model.LoadConfig(opts.configPath, fs)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return ExitFailure
	}

	logger, err := newLogger(stderr, cfg.Log.Level)
	if err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return ExitFailure
	}

	if err := run(ctx, opts, cfg, stdout, logger); err != nil {
		logger.Error("todo failed", "err", err)
		return ExitFailure
	}
	return ExitOK
}

// run opens the store, reseeds it and performs the requested actions.
func run(
	ctx context.Context,
	opts options,
	cfg *model.AppConfig,
	stdout io.Writer,
	logger *log.Logger,
) error {
	s, err := store.NewSQLiteStore(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("opening store %s: %w", cfg.Database.Path, err)
	}
	defer s.Close()

	if _, err := seed.NewLoader(s, logger).Load(ctx, cfg.Seed.Path); err != nil {
		return fmt.Errorf("seeding store: %w", err)
	}

	if opts.add {
		logger.Warn("adding todos is not implemented yet")
	}
	if opts.delete {
		logger.Warn("deleting todos is not implemented yet")
	}

	if opts.selector == nil {
		return nil
	}

	logger.Debug("listing todos", "selector", opts.selector)
	p := present.NewPrinter(stdout, present.Widths{
		Topic:       cfg.Display.TopicWidth,
		Description: cfg.Display.DescriptionWidth,
	})
	n, err := p.PrintAll(s.Todos(ctx, opts.selector))
	if err != nil {
		return fmt.Errorf("listing todos: %w", err)
	}
	logger.Debug("listed todos", "count", n)
	return nil
}

func newLogger(w io.Writer, level string) (*log.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("log level: %w", err)
	}
	return log.NewWithOptions(w, log.Options{
		Level:  lvl,
		Prefix: "todo",
	}), nil
}
