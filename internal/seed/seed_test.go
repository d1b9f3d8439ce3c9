package seed_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhle/todo/internal/seed"
	"github.com/nhle/todo/internal/selector"
	"github.com/nhle/todo/tests/testutil"
)

func newLogger(buf *bytes.Buffer) *log.Logger {
	return log.NewWithOptions(buf, log.Options{Level: log.DebugLevel})
}

func TestLoadInsertsEveryRow(t *testing.T) {
	s := testutil.NewTestStore(t)
	var logs bytes.Buffer
	path := testutil.WriteSeedCSV(t,
		"Buy milk,False,01.01.2030,Get milk",
		`Write report,True,15.02.2030,"Quarterly, with charts"`,
	)

	res, err := seed.NewLoader(s, newLogger(&logs)).Load(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Inserted)
	assert.Empty(t, res.Duplicates)
	assert.NotEmpty(t, res.RunID)

	todos, err := s.ListTodos(context.Background(), selector.All{})
	require.NoError(t, err)
	require.Len(t, todos, 2)

	byTopic := map[string]int{}
	for i, todo := range todos {
		byTopic[todo.Topic] = i
	}
	milk := todos[byTopic["Buy milk"]]
	assert.False(t, milk.Done)
	assert.True(t, milk.DueDate.Equal(time.Date(2030, time.January, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "Get milk", milk.Description)

	report := todos[byTopic["Write report"]]
	assert.True(t, report.Done)
	assert.Equal(t, "Quarterly, with charts", report.Description)

	assert.Contains(t, logs.String(), "seeded todos")
}

func TestLoadTwiceKeepsRowCount(t *testing.T) {
	s := testutil.NewTestStore(t)
	path := testutil.WriteSeedCSV(t,
		"A,no,01.01.2030,a",
		"B,yes,02.01.2030,b",
		"C,0,03.01.2030,c",
	)
	loader := seed.NewLoader(s, newLogger(&bytes.Buffer{}))

	for range 2 {
		_, err := loader.Load(context.Background(), path)
		require.NoError(t, err)
	}

	n, err := s.CountTodos(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
}

func TestLoadWarnsOncePerDuplicateTopic(t *testing.T) {
	s := testutil.NewTestStore(t)
	var logs bytes.Buffer
	path := testutil.WriteSeedCSV(t,
		"Call Bob,False,01.01.2030,lunch",
		"Call Bob,False,02.01.2030,dinner",
	)

	res, err := seed.NewLoader(s, newLogger(&logs)).Load(context.Background(), path)
	require.NoError(t, err)
	require.Len(t, res.Duplicates, 1)
	assert.Equal(t, 1, strings.Count(logs.String(), "topic already exists"))
	assert.Contains(t, logs.String(), "02.01.2030")

	n, err := s.CountTodosByTopic(context.Background(), "Call Bob")
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestLoadFailsOnInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		rows []string
	}{
		{"bad date", []string{"A,False,2030-01-01,a"}},
		{"impossible date", []string{"A,False,31.02.2030,a"}},
		{"bad boolean", []string{"A,maybe,01.01.2030,a"}},
		{"short row", []string{"A,False,01.01.2030"}},
		{"blank topic", []string{" ,False,01.01.2030,a"}},
		{"blank description", []string{"A,False,01.01.2030,"}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			s := testutil.NewTestStore(t)
			path := testutil.WriteSeedCSV(t, tc.rows...)

			_, err := seed.NewLoader(s, newLogger(&bytes.Buffer{})).Load(context.Background(), path)
			require.ErrorIs(t, err, seed.ErrSeedInvalid)
		})
	}
}

func TestLoadFailsOnMissingFile(t *testing.T) {
	s := testutil.NewTestStore(t)
	path := filepath.Join(t.TempDir(), "missing.csv")

	_, err := seed.NewLoader(s, newLogger(&bytes.Buffer{})).Load(context.Background(), path)
	require.ErrorIs(t, err, seed.ErrSeedInvalid)
}

func TestLoadFailureKeepsPreviousRows(t *testing.T) {
	s := testutil.NewTestStore(t)
	loader := seed.NewLoader(s, newLogger(&bytes.Buffer{}))
	ctx := context.Background()

	_, err := loader.Load(ctx, testutil.WriteSeedCSV(t, "A,False,01.01.2030,a", "B,False,01.01.2030,b"))
	require.NoError(t, err)

	_, err = loader.Load(ctx, testutil.WriteSeedCSV(t, "C,False,01.01.2030,c", "D,nope,01.01.2030,d"))
	require.ErrorIs(t, err, seed.ErrSeedInvalid)

	n, err := s.CountTodos(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, n)
}

func TestReadSkipsByteOrderMark(t *testing.T) {
	input := "\ufeffTopic,Done,DueDate,Description\nBuy milk,False,01.01.2030,Get milk\n"

	todos, err := seed.Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Topic)
}

func TestReadLocatesColumnsByName(t *testing.T) {
	input := "Description,DueDate,Topic,Done\nGet milk,01.01.2030,Buy milk,t\n"

	todos, err := seed.Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, todos, 1)
	assert.Equal(t, "Buy milk", todos[0].Topic)
	assert.True(t, todos[0].Done)
}

func TestReadRequiresAllColumns(t *testing.T) {
	_, err := seed.Read(strings.NewReader("Topic,Done,Description\nA,False,a\n"))
	require.ErrorIs(t, err, seed.ErrSeedInvalid)

	_, err = seed.Read(strings.NewReader(""))
	require.ErrorIs(t, err, seed.ErrSeedInvalid)
}

func TestParseBool(t *testing.T) {
	for _, s := range []string{"y", "YES", "t", "True", "on", "1"} {
		got, err := seed.ParseBool(s)
		require.NoError(t, err, s)
		assert.True(t, got, s)
	}
	for _, s := range []string{"n", "No", "f", "FALSE", "off", "0"} {
		got, err := seed.ParseBool(s)
		require.NoError(t, err, s)
		assert.False(t, got, s)
	}
	_, err := seed.ParseBool("2")
	require.Error(t, err)
}

func TestReadHandlesMissingTrailingNewline(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.csv")
	require.NoError(t, os.WriteFile(path, []byte("Topic,Done,DueDate,Description\nA,0,01.01.2030,a"), 0o644))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	todos, err := seed.Read(f)
	require.NoError(t, err)
	assert.Len(t, todos, 1)
}
