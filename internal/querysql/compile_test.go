package querysql

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recordq/internal/queryir"
	"github.com/roach88/recordq/internal/record"
)

func TestCompile_ListDataset(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(queryir.ListDataset{Dataset: "TestDS"})
	require.NoError(t, err)

	assert.Equal(t,
		"SELECT id, dataset_name, name, age, department FROM records WHERE dataset_name = ? ORDER BY seq ASC",
		sql)
	assert.Equal(t, []any{"TestDS"}, params)
}

func TestCompile_DatasetNeverInterpolated(t *testing.T) {
	compiler := NewSQLCompiler()

	evil := "x'; DROP TABLE records; --"
	sql, params, err := compiler.Compile(queryir.ListDataset{Dataset: evil})
	require.NoError(t, err)

	assert.NotContains(t, sql, "DROP")
	assert.Equal(t, []any{evil}, params)
}

func TestCompile_SortedBy(t *testing.T) {
	compiler := NewSQLCompiler()

	testCases := []struct {
		field record.Field
		dir   record.Direction
		want  string
	}{
		{record.FieldAge, record.Ascending, "ORDER BY age ASC, seq ASC"},
		{record.FieldAge, record.Descending, "ORDER BY age DESC, seq ASC"},
		{record.FieldID, record.Ascending, "ORDER BY id ASC, seq ASC"},
		{record.FieldName, record.Ascending, "ORDER BY name COLLATE BINARY ASC, seq ASC"},
		{record.FieldDepartment, record.Descending, "ORDER BY department COLLATE BINARY DESC, seq ASC"},
		{record.FieldDatasetName, record.Ascending, "ORDER BY dataset_name COLLATE BINARY ASC, seq ASC"},
	}

	for _, tc := range testCases {
		t.Run(tc.field.String()+"_"+string(tc.dir), func(t *testing.T) {
			sql, params, err := compiler.Compile(queryir.SortedBy("TestDS", tc.field, tc.dir))
			require.NoError(t, err)
			assert.Contains(t, sql, tc.want)
			assert.Contains(t, sql, "WHERE dataset_name = ?")
			assert.Equal(t, []any{"TestDS"}, params)
		})
	}
}

func TestCompile_TiebreakerAlwaysLast(t *testing.T) {
	compiler := NewSQLCompiler()

	q := &queryir.ListDataset{Dataset: "d", OrderBy: []queryir.Order{
		{Field: record.FieldDepartment, Direction: record.Ascending},
		{Field: record.FieldAge, Direction: record.Descending},
	}}
	sql, _, err := compiler.Compile(q)
	require.NoError(t, err)
	assert.Contains(t, sql, "ORDER BY department COLLATE BINARY ASC, age DESC, seq ASC")
}

func TestCompile_ExistsID(t *testing.T) {
	compiler := NewSQLCompiler()

	sql, params, err := compiler.Compile(queryir.ExistsID{ID: 42})
	require.NoError(t, err)
	assert.Equal(t, "SELECT EXISTS(SELECT 1 FROM records WHERE id = ?)", sql)
	assert.Equal(t, []any{int64(42)}, params)
}

func TestCompile_CustomTable(t *testing.T) {
	compiler := &SQLCompiler{Table: "archive"}
	sql, _, err := compiler.Compile(queryir.ExistsID{ID: 1})
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM archive")

	compiler = &SQLCompiler{}
	sql, _, err = compiler.Compile(queryir.ExistsID{ID: 1})
	require.NoError(t, err)
	assert.Contains(t, sql, "FROM records")
}

func TestCompile_RejectsInvalid(t *testing.T) {
	compiler := NewSQLCompiler()

	_, _, err := compiler.Compile(nil)
	assert.Error(t, err)

	_, _, err = compiler.Compile(queryir.ListDataset{OrderBy: []queryir.Order{{Field: record.Field(77), Direction: record.Ascending}}})
	var ve *queryir.ValidationError
	assert.ErrorAs(t, err, &ve)
}
