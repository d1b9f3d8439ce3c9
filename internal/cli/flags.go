package cli

import (
	"fmt"
	"io"
	"strings"

	flag "github.com/spf13/pflag"

	"github.com/nhle/todo/internal/model"
	"github.com/nhle/todo/internal/selector"
)

const listHelp = `list todos matching SELECTOR:
  all                    all todos, including done ones
  open                   open todos
  done                   done todos
  dd.mm.yyyy             todos due on that day
  dd.mm.yyyy-dd.mm.yyyy  todos due within the range (inclusive)
  {x}d                   open todos due within the next {x} days (0..99)
  {x}w                   open todos due within the next {x} weeks (0..99)`

func newFlagSet() *flag.FlagSet {
	fs := flag.NewFlagSet("todo", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.SortFlags = false

	fs.BoolP("add", "a", false, "add a new todo")
	fs.BoolP("delete", "d", false, "delete a todo")
	fs.StringP("list", "l", "", listHelp)
	fs.String("config", model.DefaultConfigPath(), "config file")
	fs.String("db", model.DefaultDatabasePath, "SQLite database file")
	fs.String("seed", model.DefaultSeedPath, "CSV file loaded on every run")
	fs.String("log-level", model.DefaultLogLevel, "log level (debug|info|warn|error)")

	return fs
}

// parseArgs parses args and validates the selector. It touches neither the
// config file nor the store.
func parseArgs(fs *flag.FlagSet, args []string) (options, error) {
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	var opts options
	opts.add, _ = fs.GetBool("add")
	opts.delete, _ = fs.GetBool("delete")
	opts.configPath, _ = fs.GetString("config")

	if fs.Changed("list") {
		text, _ := fs.GetString("list")
		sel, err := selector.Parse(text)
		if err != nil {
			return options{}, fmt.Errorf("--list: %w", err)
		}
		opts.selector = sel
	}

	return opts, nil
}

func printUsage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "Usage: todo [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Manage a list of todos. The database is reseeded from the seed file on every run.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Flags:")
	fmt.Fprint(w, fs.FlagUsages())
}
