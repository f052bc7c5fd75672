package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/recordq/internal/record"
)

// ErrMissingID is returned when a record without an id is written.
var ErrMissingID = errors.New("record has no id")

// Save writes rec, replacing any existing record with the same id.
// The stored record is read back and returned.
func (s *Store) Save(ctx context.Context, rec record.Record) (record.Record, error) {
	if !rec.HasID() {
		return record.Record{}, fmt.Errorf("save record: %w", ErrMissingID)
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, dataset_name, name, age, department)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			dataset_name = excluded.dataset_name,
			name = excluded.name,
			age = excluded.age,
			department = excluded.department
	`, recordArgs(rec)...)
	if err != nil {
		return record.Record{}, fmt.Errorf("save record: %w", err)
	}

	return s.ReadByID(ctx, *rec.ID)
}

// InsertIfAbsent writes rec only if no record has its id.
// Returns inserted=false, and leaves the store unchanged, when the id exists.
//
// The existence check and the write are a single statement, so concurrent
// callers with the same id cannot both insert.
func (s *Store) InsertIfAbsent(ctx context.Context, rec record.Record) (record.Record, bool, error) {
	if !rec.HasID() {
		return record.Record{}, false, fmt.Errorf("insert record: %w", ErrMissingID)
	}

	result, err := s.db.ExecContext(ctx, `
		INSERT INTO records (id, dataset_name, name, age, department)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`, recordArgs(rec)...)
	if err != nil {
		return record.Record{}, false, fmt.Errorf("insert record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return record.Record{}, false, fmt.Errorf("insert record: rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return record.Record{}, false, nil
	}

	stored, err := s.ReadByID(ctx, *rec.ID)
	if err != nil {
		return record.Record{}, false, err
	}
	return stored, true, nil
}

func recordArgs(rec record.Record) []any {
	var age sql.NullInt64
	if rec.Age != nil {
		age = sql.NullInt64{Int64: *rec.Age, Valid: true}
	}
	return []any{*rec.ID, rec.DatasetName, rec.Name, age, rec.Department}
}
