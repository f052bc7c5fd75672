package record

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve_AllSchemaFields(t *testing.T) {
	for _, name := range []string{"id", "datasetName", "name", "age", "department"} {
		t.Run(name, func(t *testing.T) {
			d, err := Resolve(name)
			require.NoError(t, err)
			assert.Equal(t, name, d.Name)
			assert.False(t, d.IsZero())
		})
	}
}

func TestResolve_RejectsUnknownFields(t *testing.T) {
	testCases := []string{
		"salary",
		"",
		"ID",
		"Name",
		"dataset_name",
		"get",
		"Clone",
		"name ",
	}

	for _, name := range testCases {
		t.Run(name, func(t *testing.T) {
			d, err := Resolve(name)
			require.Error(t, err)
			assert.True(t, d.IsZero())

			var ufe *UnsupportedFieldError
			require.ErrorAs(t, err, &ufe)
			assert.Equal(t, name, ufe.Name)
			assert.Contains(t, err.Error(), "unsupported field")
		})
	}
}

func TestFields_DeclarationOrder(t *testing.T) {
	assert.Equal(t, []string{"id", "datasetName", "name", "age", "department"}, FieldNames())

	fields := Fields()
	require.Len(t, fields, 5)
	fields[0].Name = "mutated"
	assert.Equal(t, "id", Fields()[0].Name, "Fields must return a copy")
}

func TestLookup(t *testing.T) {
	d, ok := Lookup(FieldAge)
	require.True(t, ok)
	assert.Equal(t, "age", d.Name)
	assert.Equal(t, "age", d.Column)
	assert.Equal(t, KindInt, d.Kind)

	d, ok = Lookup(FieldDatasetName)
	require.True(t, ok)
	assert.Equal(t, "dataset_name", d.Column)

	_, ok = Lookup(Field(0))
	assert.False(t, ok)
	_, ok = Lookup(Field(99))
	assert.False(t, ok)

	assert.Equal(t, "department", FieldDepartment.String())
	assert.Equal(t, "Field(42)", Field(42).String())
}

func TestDescriptor_Key(t *testing.T) {
	rec := New(7, "Alice", 25, "Engineering").WithDataset("TestDS")

	testCases := []struct {
		field string
		want  string
	}{
		{"id", "7"},
		{"datasetName", "TestDS"},
		{"name", "Alice"},
		{"age", "25"},
		{"department", "Engineering"},
	}

	for _, tc := range testCases {
		t.Run(tc.field, func(t *testing.T) {
			d, err := Resolve(tc.field)
			require.NoError(t, err)
			assert.Equal(t, tc.want, d.Key(rec))
		})
	}
}

func TestDescriptor_KeyAbsentRendersNull(t *testing.T) {
	rec := Record{Name: "Bob", Department: "HR"}

	age, err := Resolve("age")
	require.NoError(t, err)
	assert.Equal(t, "null", age.Key(rec))

	id, err := Resolve("id")
	require.NoError(t, err)
	assert.Equal(t, "null", id.Key(rec))
}

func TestDescriptor_Compare(t *testing.T) {
	alice := New(1, "Alice", 25, "Engineering")
	bob := New(2, "Bob", 30, "HR")
	noAge := Record{ID: Int64(3), Name: "Carl"}

	age, _ := Resolve("age")
	assert.Negative(t, age.Compare(alice, bob))
	assert.Positive(t, age.Compare(bob, alice))
	assert.Zero(t, age.Compare(alice, alice))
	assert.Negative(t, age.Compare(noAge, alice), "absent sorts first")

	name, _ := Resolve("name")
	assert.Negative(t, name.Compare(alice, bob))

	// Bytewise: uppercase sorts before lowercase.
	lower := New(4, "alice", 1, "x")
	assert.Negative(t, name.Compare(bob, lower))
}

func TestCompareValues_Numeric(t *testing.T) {
	// 9 < 10 numerically even though "10" < "9" lexicographically.
	assert.Negative(t, CompareValues(Int(9), Int(10)))
	assert.Positive(t, CompareValues(String("9"), String("10")))
	assert.Zero(t, CompareValues(Null{}, Null{}))
	assert.Negative(t, CompareValues(Int(1), String("a")))
}
