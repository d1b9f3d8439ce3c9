// Package seed repopulates the todo store from a CSV file.
package seed

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"github.com/nhle/todo/internal/model"
)

// ErrSeedInvalid is returned when the seed file is missing, unreadable, or
// contains a row that cannot be parsed.
var ErrSeedInvalid = errors.New("seed data invalid")

// CSV column names.
const (
	ColumnTopic       = "Topic"
	ColumnDone        = "Done"
	ColumnDueDate     = "DueDate"
	ColumnDescription = "Description"
)

var requiredColumns = []string{ColumnTopic, ColumnDone, ColumnDueDate, ColumnDescription}

// Replacer swaps the whole contents of the store for a new batch and reports
// rows whose topic repeats an earlier row of the batch.
type Replacer interface {
	ReplaceTodos(ctx context.Context, todos []model.Todo) ([]model.Todo, error)
}

// Result summarizes a completed load.
type Result struct {
	RunID      string
	Inserted   int
	Duplicates []model.Todo
	Elapsed    time.Duration
}

// Loader reads seed files into a store.
type Loader struct {
	store  Replacer
	logger *log.Logger
}

// NewLoader returns a Loader writing to s and logging to logger.
func NewLoader(s Replacer, logger *log.Logger) *Loader {
	return &Loader{store: s, logger: logger}
}

// Load replaces the store contents with the rows of the CSV file at path.
// The file is fully parsed before the store is touched.
func (l *Loader) Load(ctx context.Context, path string) (Result, error) {
	start := time.Now()
	runID := uuid.New().String()

	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("%w: %w", ErrSeedInvalid, err)
	}
	defer f.Close()

	todos, err := Read(f)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", path, err)
	}

	duplicates, err := l.store.ReplaceTodos(ctx, todos)
	if err != nil {
		return Result{}, fmt.Errorf("replacing todos: %w", err)
	}

	for _, d := range duplicates {
		l.logger.Warn("topic already exists",
			"topic", d.Topic,
			"due", d.DueDate.Format(model.DateLayout),
		)
	}

	res := Result{
		RunID:      runID,
		Inserted:   len(todos),
		Duplicates: duplicates,
		Elapsed:    time.Since(start),
	}
	l.logger.Info("seeded todos",
		"run", res.RunID,
		"file", path,
		"count", res.Inserted,
		"duplicates", len(duplicates),
		"elapsed", res.Elapsed,
	)
	return res, nil
}

// Read parses seed rows from r. A leading UTF-8 byte order mark is skipped.
// Columns are located by header name, so their order is free.
func Read(r io.Reader) ([]model.Todo, error) {
	decoded := transform.NewReader(r, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	cr := csv.NewReader(decoded)

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: missing header row", ErrSeedInvalid)
		}
		return nil, fmt.Errorf("%w: reading header: %w", ErrSeedInvalid, err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[strings.TrimSpace(name)] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: missing column %q", ErrSeedInvalid, name)
		}
	}

	var todos []model.Todo
	for line := 2; ; line++ {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %w", ErrSeedInvalid, err)
		}

		todo, err := parseRecord(record, index)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %w", ErrSeedInvalid, line, err)
		}
		todos = append(todos, todo)
	}

	return todos, nil
}

func parseRecord(record []string, index map[string]int) (model.Todo, error) {
	field := func(name string) string {
		return record[index[name]]
	}

	done, err := ParseBool(field(ColumnDone))
	if err != nil {
		return model.Todo{}, err
	}

	due, err := time.Parse(model.DateLayout, strings.TrimSpace(field(ColumnDueDate)))
	if err != nil {
		return model.Todo{}, fmt.Errorf("invalid due date %q", field(ColumnDueDate))
	}

	for _, name := range []string{ColumnTopic, ColumnDescription} {
		if strings.TrimSpace(field(name)) == "" {
			return model.Todo{}, fmt.Errorf("empty %s", name)
		}
	}

	return model.Todo{
		Topic:       field(ColumnTopic),
		Done:        done,
		DueDate:     due,
		Description: field(ColumnDescription),
	}, nil
}

// ParseBool accepts y, yes, t, true, on, 1 and n, no, f, false, off, 0 in
// any letter case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "y", "yes", "t", "true", "on", "1":
		return true, nil
	case "n", "no", "f", "false", "off", "0":
		return false, nil
	}
	return false, fmt.Errorf("invalid boolean %q", s)
}
