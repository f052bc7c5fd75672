package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/roach88/recordq/internal/record"
)

// createTestStore creates a new file-backed store in a temp dir.
func createTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// createTestRecord creates a record stamped with a dataset.
func createTestRecord(id int64, dataset, name string, age int64, dept string) record.Record {
	return record.New(id, name, age, dept).WithDataset(dataset)
}

// mustInsert writes records in order and fails the test on error.
func mustInsert(t *testing.T, s *Store, recs ...record.Record) {
	t.Helper()
	for _, rec := range recs {
		if _, inserted, err := s.InsertIfAbsent(context.Background(), rec); err != nil || !inserted {
			t.Fatalf("InsertIfAbsent(%d) inserted=%v err=%v", rec.IDValue(), inserted, err)
		}
	}
}
