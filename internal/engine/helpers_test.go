package engine

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/roach88/recordq/internal/memstore"
	"github.com/roach88/recordq/internal/record"
	"github.com/roach88/recordq/internal/store"
)

// backends returns each RecordStore implementation for table-driven tests.
func backends(t *testing.T) map[string]func(t *testing.T) RecordStore {
	t.Helper()
	return map[string]func(t *testing.T) RecordStore{
		"memstore": func(t *testing.T) RecordStore { return memstore.New() },
		"sqlite": func(t *testing.T) RecordStore {
			s, err := store.Open(filepath.Join(t.TempDir(), "engine.db"))
			require.NoError(t, err)
			t.Cleanup(func() { s.Close() })
			return s
		},
	}
}

func newRecord(id int64, name string, age int64, dept string) record.Record {
	return record.New(id, name, age, dept)
}

func mustInsert(t *testing.T, e *Engine, dataset string, recs ...record.Record) {
	t.Helper()
	for _, r := range recs {
		_, err := e.Insert(context.Background(), dataset, r)
		require.NoError(t, err)
	}
}

// plainStore hides memstore's InsertIfAbsent to exercise the
// check-then-save path.
type plainStore struct {
	inner *memstore.Store
}

func (p plainStore) FindByDataset(ctx context.Context, d string) ([]record.Record, error) {
	return p.inner.FindByDataset(ctx, d)
}

func (p plainStore) FindByDatasetSorted(ctx context.Context, d string, f record.Field, dir record.Direction) ([]record.Record, error) {
	return p.inner.FindByDatasetSorted(ctx, d, f, dir)
}

func (p plainStore) ExistsByID(ctx context.Context, id int64) (bool, error) {
	return p.inner.ExistsByID(ctx, id)
}

func (p plainStore) Save(ctx context.Context, r record.Record) (record.Record, error) {
	return p.inner.Save(ctx, r)
}

var errStoreDown = errors.New("disk on fire")

// failingStore fails every call and counts them.
type failingStore struct {
	calls int
}

func (f *failingStore) FindByDataset(context.Context, string) ([]record.Record, error) {
	f.calls++
	return nil, errStoreDown
}

func (f *failingStore) FindByDatasetSorted(context.Context, string, record.Field, record.Direction) ([]record.Record, error) {
	f.calls++
	return nil, errStoreDown
}

func (f *failingStore) ExistsByID(context.Context, int64) (bool, error) {
	f.calls++
	return false, errStoreDown
}

func (f *failingStore) Save(context.Context, record.Record) (record.Record, error) {
	f.calls++
	return record.Record{}, errStoreDown
}
