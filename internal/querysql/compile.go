// Package querysql compiles queryir queries to parameterized SQLite SQL.
//
// CRITICAL: every list query ends with "seq ASC" so that rows with equal
// sort keys keep insertion order.
// CRITICAL: values are always bound as ? parameters, never interpolated.
// Column names come only from the record schema table.
package querysql

import (
	"fmt"
	"strings"

	"github.com/roach88/recordq/internal/queryir"
	"github.com/roach88/recordq/internal/record"
)

// Columns is the SELECT list shared by every record query, in scan order.
const Columns = "id, dataset_name, name, age, department"

// SQLCompiler compiles queryir queries against the records table.
type SQLCompiler struct {
	// Table is the records table name. Defaults to "records".
	Table string
}

// NewSQLCompiler creates a compiler for the default records table.
func NewSQLCompiler() *SQLCompiler {
	return &SQLCompiler{Table: "records"}
}

// Compile converts a query to SQL. Returns (sql, params, error).
func (c *SQLCompiler) Compile(q queryir.Query) (string, []any, error) {
	if err := queryir.Validate(q); err != nil {
		return "", nil, err
	}

	switch query := q.(type) {
	case queryir.ListDataset:
		return c.compileList(query)
	case *queryir.ListDataset:
		return c.compileList(*query)
	case queryir.ExistsID:
		return c.compileExists(query)
	case *queryir.ExistsID:
		return c.compileExists(*query)
	default:
		return "", nil, fmt.Errorf("unsupported query type: %T", q)
	}
}

func (c *SQLCompiler) compileList(q queryir.ListDataset) (string, []any, error) {
	orderBy, err := c.orderBy(q.OrderBy)
	if err != nil {
		return "", nil, err
	}

	sql := fmt.Sprintf("SELECT %s FROM %s WHERE dataset_name = ? ORDER BY %s",
		Columns, c.table(), orderBy)
	return sql, []any{q.Dataset}, nil
}

func (c *SQLCompiler) compileExists(q queryir.ExistsID) (string, []any, error) {
	sql := fmt.Sprintf("SELECT EXISTS(SELECT 1 FROM %s WHERE id = ?)", c.table())
	return sql, []any{q.ID}, nil
}

// orderBy renders the ORDER BY list. The seq tiebreaker is always last.
func (c *SQLCompiler) orderBy(terms []queryir.Order) (string, error) {
	parts := make([]string, 0, len(terms)+1)
	for _, o := range terms {
		d, ok := record.Lookup(o.Field)
		if !ok {
			return "", fmt.Errorf("unknown field %s", o.Field)
		}
		col := d.Column
		if d.Kind == record.KindString {
			col += " COLLATE BINARY"
		}
		parts = append(parts, col+" "+o.Direction.SQL())
	}
	parts = append(parts, "seq ASC")
	return strings.Join(parts, ", "), nil
}

func (c *SQLCompiler) table() string {
	if c.Table == "" {
		return "records"
	}
	return c.Table
}
