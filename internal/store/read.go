package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/recordq/internal/queryir"
	"github.com/roach88/recordq/internal/querysql"
	"github.com/roach88/recordq/internal/record"
)

// ErrNotFound is returned by ReadByID when no record has the id.
var ErrNotFound = errors.New("record not found")

// DatasetInfo summarises one dataset.
type DatasetInfo struct {
	Name    string `json:"name"`
	Records int    `json:"records"`
}

// FindByDataset returns all records of a dataset in insertion order.
// Returns an empty slice (not nil) when the dataset has no records.
func (s *Store) FindByDataset(ctx context.Context, dataset string) ([]record.Record, error) {
	return s.List(ctx, queryir.ListDataset{Dataset: dataset})
}

// FindByDatasetSorted returns the records of a dataset ordered by field.
// Ties keep insertion order.
func (s *Store) FindByDatasetSorted(ctx context.Context, dataset string, field record.Field, dir record.Direction) ([]record.Record, error) {
	return s.List(ctx, queryir.SortedBy(dataset, field, dir))
}

// List runs a ListDataset query.
func (s *Store) List(ctx context.Context, q queryir.ListDataset) ([]record.Record, error) {
	query, params, err := s.compiler.Compile(q)
	if err != nil {
		return nil, fmt.Errorf("compile query: %w", err)
	}

	rows, err := s.db.QueryContext(ctx, query, params...)
	if err != nil {
		return nil, fmt.Errorf("query records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// ExistsByID reports whether any dataset holds a record with the id.
func (s *Store) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query, params, err := s.compiler.Compile(queryir.ExistsID{ID: id})
	if err != nil {
		return false, fmt.Errorf("compile query: %w", err)
	}

	var exists bool
	if err := s.db.QueryRowContext(ctx, query, params...).Scan(&exists); err != nil {
		return false, fmt.Errorf("check record exists: %w", err)
	}
	return exists, nil
}

// ReadByID returns a single record. Returns ErrNotFound if absent.
func (s *Store) ReadByID(ctx context.Context, id int64) (record.Record, error) {
	row := s.db.QueryRowContext(ctx,
		"SELECT "+querysql.Columns+" FROM records WHERE id = ?", id)

	rec, err := scanRecord(row)
	if errors.Is(err, sql.ErrNoRows) {
		return record.Record{}, fmt.Errorf("read record %d: %w", id, ErrNotFound)
	}
	if err != nil {
		return record.Record{}, fmt.Errorf("read record %d: %w", id, err)
	}
	return rec, nil
}

// ReadAll returns every record of every dataset in insertion order.
func (s *Store) ReadAll(ctx context.Context) ([]record.Record, error) {
	rows, err := s.db.QueryContext(ctx,
		"SELECT "+querysql.Columns+" FROM records ORDER BY seq ASC")
	if err != nil {
		return nil, fmt.Errorf("query all records: %w", err)
	}
	defer rows.Close()

	return scanRecords(rows)
}

// Datasets lists every dataset that holds at least one record, by name.
func (s *Store) Datasets(ctx context.Context) ([]DatasetInfo, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT dataset_name, COUNT(*)
		FROM records
		GROUP BY dataset_name
		ORDER BY dataset_name COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query datasets: %w", err)
	}
	defer rows.Close()

	infos := []DatasetInfo{}
	for rows.Next() {
		var info DatasetInfo
		if err := rows.Scan(&info.Name, &info.Records); err != nil {
			return nil, fmt.Errorf("scan dataset: %w", err)
		}
		infos = append(infos, info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate datasets: %w", err)
	}
	return infos, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (record.Record, error) {
	var (
		rec record.Record
		id  int64
		age sql.NullInt64
	)
	if err := row.Scan(&id, &rec.DatasetName, &rec.Name, &age, &rec.Department); err != nil {
		return record.Record{}, err
	}
	rec.ID = record.Int64(id)
	if age.Valid {
		rec.Age = record.Int64(age.Int64)
	}
	return rec, nil
}

func scanRecords(rows *sql.Rows) ([]record.Record, error) {
	recs := []record.Record{}
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate records: %w", err)
	}
	return recs, nil
}
