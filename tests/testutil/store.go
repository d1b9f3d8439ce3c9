package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/nhle/todo/internal/store"
)

// NewTestStore creates an in-memory SQLiteStore with all migrations applied.
// It automatically closes the store when the test completes.
func NewTestStore(t *testing.T, opts ...store.Option) *store.SQLiteStore {
	t.Helper()

	s, err := store.NewSQLiteStore(":memory:", opts...)
	if err != nil {
		t.Fatalf("creating test store: %v", err)
	}

	t.Cleanup(func() {
		if err := s.Close(); err != nil {
			t.Errorf("closing test store: %v", err)
		}
	})

	return s
}

// SeedHeader is the header row expected by the seed loader.
const SeedHeader = "Topic,Done,DueDate,Description"

// WriteSeedCSV writes a seed file made of SeedHeader followed by rows into a
// temporary directory and returns its path.
func WriteSeedCSV(t *testing.T, rows ...string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "fakedata.csv")
	content := strings.Join(append([]string{SeedHeader}, rows...), "\n") + "\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing seed csv: %v", err)
	}
	return path
}
