package engine

import (
	"context"

	"go.uber.org/zap"

	"github.com/roach88/recordq/internal/record"
)

// Insert stores rec in dataset.
//
// The record must carry an id that no record in any dataset already has.
// The dataset name is stamped onto the record, overriding any value the
// caller set. On failure nothing is written.
func (e *Engine) Insert(ctx context.Context, dataset string, rec record.Record) (record.Record, error) {
	if !rec.HasID() {
		return record.Record{}, NewMissingIDError(dataset)
	}
	id := *rec.ID
	rec = rec.Clone().WithDataset(dataset)

	if ai, ok := e.store.(AtomicInserter); ok {
		stored, inserted, err := ai.InsertIfAbsent(ctx, rec)
		if err != nil {
			return record.Record{}, NewStoreUnavailableError("insert", dataset, err)
		}
		if !inserted {
			return record.Record{}, e.duplicate(dataset, id)
		}
		e.logger.Debug("record inserted", zap.String("dataset", dataset), zap.Int64("id", id))
		return stored, nil
	}

	// Non-atomic path: a concurrent insert of the same id can slip between
	// the check and the save.
	exists, err := e.store.ExistsByID(ctx, id)
	if err != nil {
		return record.Record{}, NewStoreUnavailableError("insert", dataset, err)
	}
	if exists {
		return record.Record{}, e.duplicate(dataset, id)
	}

	stored, err := e.store.Save(ctx, rec)
	if err != nil {
		return record.Record{}, NewStoreUnavailableError("insert", dataset, err)
	}
	e.logger.Debug("record inserted", zap.String("dataset", dataset), zap.Int64("id", id))
	return stored, nil
}

func (e *Engine) duplicate(dataset string, id int64) error {
	e.logger.Debug("duplicate id rejected", zap.String("dataset", dataset), zap.Int64("id", id))
	return NewDuplicateIDError(dataset, id)
}
