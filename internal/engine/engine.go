package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/roach88/recordq/internal/record"
)

// RecordStore is the persistence contract the engine depends on.
// Implemented by store.Store (SQLite) and memstore.Store.
type RecordStore interface {
	// FindByDataset returns a dataset's records in insertion order.
	FindByDataset(ctx context.Context, dataset string) ([]record.Record, error)

	// FindByDatasetSorted returns a dataset's records ordered by field.
	// Ties keep insertion order.
	FindByDatasetSorted(ctx context.Context, dataset string, field record.Field, dir record.Direction) ([]record.Record, error)

	// ExistsByID reports whether any dataset holds the id.
	ExistsByID(ctx context.Context, id int64) (bool, error)

	// Save appends rec, or replaces the record with the same id.
	Save(ctx context.Context, rec record.Record) (record.Record, error)
}

// AtomicInserter is implemented by stores that can check id uniqueness and
// write in one atomic step. When available the write gate uses it.
type AtomicInserter interface {
	InsertIfAbsent(ctx context.Context, rec record.Record) (record.Record, bool, error)
}

// Engine runs queries and inserts against a RecordStore.
// Engine is stateless and safe for concurrent use.
type Engine struct {
	store  RecordStore
	logger *zap.Logger
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine's logger. Default: zap.NewNop().
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// New creates an Engine over store.
func New(store RecordStore, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ExistsByID reports whether any dataset holds a record with the id.
func (e *Engine) ExistsByID(ctx context.Context, id int64) (bool, error) {
	exists, err := e.store.ExistsByID(ctx, id)
	if err != nil {
		return false, NewStoreUnavailableError("exists", "", err)
	}
	return exists, nil
}
