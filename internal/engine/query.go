package engine

import (
	"context"
	"encoding/json"

	"go.uber.org/zap"

	"github.com/roach88/recordq/internal/record"
)

// Grouping is the result of GroupBy.
//
// Keys lists group keys in order of first appearance in the dataset.
// Each group keeps the store's retrieval order.
type Grouping struct {
	Field  string
	Keys   []string
	Groups map[string][]record.Record
}

// Len returns the number of groups.
func (g *Grouping) Len() int {
	return len(g.Keys)
}

// Get returns the records of one group.
func (g *Grouping) Get(key string) []record.Record {
	return g.Groups[key]
}

// Size returns the total number of grouped records.
func (g *Grouping) Size() int {
	n := 0
	for _, recs := range g.Groups {
		n += len(recs)
	}
	return n
}

// MarshalJSON encodes the grouping as an object of key → records.
func (g *Grouping) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.Groups)
}

// GroupBy partitions the records of dataset by the canonical key of field.
//
// Absent values group under "null", integers under their decimal form and
// strings under themselves. Fails with INVALID_FIELD before touching the
// store when field is not in the schema, and with DATASET_NOT_FOUND when the
// dataset has no records.
func (e *Engine) GroupBy(ctx context.Context, dataset, field string) (*Grouping, error) {
	desc, err := record.Resolve(field)
	if err != nil {
		return nil, NewInvalidFieldError("groupBy", dataset, field, err)
	}

	recs, err := e.store.FindByDataset(ctx, dataset)
	if err != nil {
		return nil, NewStoreUnavailableError("groupBy", dataset, err)
	}
	if len(recs) == 0 {
		return nil, NewDatasetNotFoundError(dataset)
	}

	g := &Grouping{
		Field:  desc.Name,
		Groups: make(map[string][]record.Record),
	}
	for _, r := range recs {
		key := desc.Key(r)
		if _, seen := g.Groups[key]; !seen {
			g.Keys = append(g.Keys, key)
		}
		g.Groups[key] = append(g.Groups[key], r)
	}

	e.logger.Debug("dataset grouped",
		zap.String("dataset", dataset),
		zap.String("field", desc.Name),
		zap.Int("records", len(recs)),
		zap.Int("groups", len(g.Keys)))
	return g, nil
}

// SortBy returns the records of dataset ordered by field.
//
// direction must be asc/ascending or desc/descending, case-insensitively;
// no default is applied here. Ordering is pushed to the store and ties keep
// retrieval order.
func (e *Engine) SortBy(ctx context.Context, dataset, field, direction string) ([]record.Record, error) {
	desc, err := record.Resolve(field)
	if err != nil {
		return nil, NewInvalidFieldError("sortBy", dataset, field, err)
	}

	dir, err := record.ParseDirection(direction)
	if err != nil {
		return nil, NewInvalidSortOrderError(dataset, direction, err)
	}

	recs, err := e.store.FindByDatasetSorted(ctx, dataset, desc.Field, dir)
	if err != nil {
		return nil, NewStoreUnavailableError("sortBy", dataset, err)
	}
	if len(recs) == 0 {
		return nil, NewDatasetNotFoundError(dataset)
	}

	e.logger.Debug("dataset sorted",
		zap.String("dataset", dataset),
		zap.String("field", desc.Name),
		zap.String("direction", string(dir)),
		zap.Int("records", len(recs)))
	return recs, nil
}
