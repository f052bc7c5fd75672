package queryir

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recordq/internal/record"
)

func TestValidate_ValidQueries(t *testing.T) {
	testCases := []struct {
		name  string
		query Query
	}{
		{"plain list", ListDataset{Dataset: "TestDS"}},
		{"list pointer", &ListDataset{Dataset: "TestDS"}},
		{"empty dataset name", ListDataset{Dataset: ""}},
		{"sorted", SortedBy("TestDS", record.FieldAge, record.Descending)},
		{"multi order", ListDataset{Dataset: "d", OrderBy: []Order{
			{Field: record.FieldDepartment, Direction: record.Ascending},
			{Field: record.FieldName, Direction: record.Descending},
		}}},
		{"exists", ExistsID{ID: 1}},
		{"exists pointer", &ExistsID{ID: 1}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.NoError(t, Validate(tc.query))
		})
	}
}

func TestValidate_InvalidQueries(t *testing.T) {
	testCases := []struct {
		name    string
		query   Query
		message string
	}{
		{"nil", nil, "nil query"},
		{"nil list pointer", (*ListDataset)(nil), "nil query"},
		{"nil exists pointer", (*ExistsID)(nil), "nil query"},
		{"bad field", ListDataset{OrderBy: []Order{{Field: record.Field(99), Direction: record.Ascending}}}, "unknown field"},
		{"zero field", ListDataset{OrderBy: []Order{{Direction: record.Ascending}}}, "unknown field"},
		{"bad direction", ListDataset{OrderBy: []Order{{Field: record.FieldAge, Direction: "sideways"}}}, "unknown direction"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := Validate(tc.query)
			var ve *ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Contains(t, err.Error(), tc.message)
		})
	}
}

func TestSortedBy(t *testing.T) {
	q := SortedBy("TestDS", record.FieldName, record.Ascending)
	assert.Equal(t, "TestDS", q.Dataset)
	require.Len(t, q.OrderBy, 1)
	assert.Equal(t, record.FieldName, q.OrderBy[0].Field)
	assert.Equal(t, record.Ascending, q.OrderBy[0].Direction)
}
