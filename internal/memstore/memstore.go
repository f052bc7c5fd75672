// Package memstore is an in-memory record store with the same contract and
// ordering guarantees as the SQLite store. It backs engine tests, the
// scenario harness, and embedded use where durability is not needed.
package memstore

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/roach88/recordq/internal/queryir"
	"github.com/roach88/recordq/internal/record"
)

// ErrMissingID is returned when a record without an id is written.
var ErrMissingID = errors.New("record has no id")

// Store is a mutex-guarded in-memory record store. Records are kept in
// insertion order; Save on an existing id replaces it in place.
type Store struct {
	mu   sync.RWMutex
	rows []record.Record
	byID map[int64]int
}

// New creates an empty store.
func New() *Store {
	return &Store{byID: make(map[int64]int)}
}

// FindByDataset returns all records of a dataset in insertion order.
func (s *Store) FindByDataset(ctx context.Context, dataset string) ([]record.Record, error) {
	return s.List(ctx, queryir.ListDataset{Dataset: dataset})
}

// FindByDatasetSorted returns the records of a dataset ordered by field.
// Ties keep insertion order.
func (s *Store) FindByDatasetSorted(ctx context.Context, dataset string, field record.Field, dir record.Direction) ([]record.Record, error) {
	return s.List(ctx, queryir.SortedBy(dataset, field, dir))
}

// List interprets a ListDataset query.
func (s *Store) List(ctx context.Context, q queryir.ListDataset) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := queryir.Validate(q); err != nil {
		return nil, err
	}

	s.mu.RLock()
	out := []record.Record{}
	for _, r := range s.rows {
		if r.DatasetName == q.Dataset {
			out = append(out, r.Clone())
		}
	}
	s.mu.RUnlock()

	if len(q.OrderBy) == 0 {
		return out, nil
	}

	descs := make([]record.Descriptor, len(q.OrderBy))
	for i, o := range q.OrderBy {
		descs[i], _ = record.Lookup(o.Field)
	}
	slices.SortStableFunc(out, func(a, b record.Record) int {
		for i, o := range q.OrderBy {
			c := descs[i].Compare(a, b)
			if o.Direction == record.Descending {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out, nil
}

// ExistsByID reports whether any dataset holds a record with the id.
func (s *Store) ExistsByID(ctx context.Context, id int64) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.byID[id]
	return ok, nil
}

// Save writes rec, replacing any record with the same id in place.
func (s *Store) Save(ctx context.Context, rec record.Record) (record.Record, error) {
	if err := ctx.Err(); err != nil {
		return record.Record{}, err
	}
	if !rec.HasID() {
		return record.Record{}, fmt.Errorf("save record: %w", ErrMissingID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	stored := rec.Clone()
	if i, ok := s.byID[*rec.ID]; ok {
		s.rows[i] = stored
	} else {
		s.byID[*rec.ID] = len(s.rows)
		s.rows = append(s.rows, stored)
	}
	return stored.Clone(), nil
}

// InsertIfAbsent writes rec only if no record has its id.
func (s *Store) InsertIfAbsent(ctx context.Context, rec record.Record) (record.Record, bool, error) {
	if err := ctx.Err(); err != nil {
		return record.Record{}, false, err
	}
	if !rec.HasID() {
		return record.Record{}, false, fmt.Errorf("insert record: %w", ErrMissingID)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.byID[*rec.ID]; ok {
		return record.Record{}, false, nil
	}
	stored := rec.Clone()
	s.byID[*rec.ID] = len(s.rows)
	s.rows = append(s.rows, stored)
	return stored.Clone(), true, nil
}

// Len returns the number of stored records.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.rows)
}
