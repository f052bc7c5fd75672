package record

import "fmt"

// Field identifies one of the fixed record fields.
type Field int

const (
	FieldID Field = iota + 1
	FieldDatasetName
	FieldName
	FieldAge
	FieldDepartment
)

// Kind is the semantic type of a field.
type Kind string

const (
	KindInt    Kind = "int"
	KindString Kind = "string"
)

// Descriptor is a schema entry: the wire name of a field, its store
// column, its kind, and a typed accessor on Record.
type Descriptor struct {
	Field  Field
	Name   string
	Column string
	Kind   Kind

	get func(Record) Value
}

// Value returns the field's value on r.
func (d Descriptor) Value(r Record) Value {
	return d.get(r)
}

// Key renders the field's value on r as a group key.
func (d Descriptor) Key(r Record) string {
	return d.get(r).Key()
}

// Compare orders a and b by this field's natural order.
func (d Descriptor) Compare(a, b Record) int {
	return CompareValues(d.get(a), d.get(b))
}

// IsZero reports whether d is the zero Descriptor (not a schema entry).
func (d Descriptor) IsZero() bool {
	return d.get == nil
}

func intValue(p *int64) Value {
	if p == nil {
		return Null{}
	}
	return Int(*p)
}

// schema is the complete, ordered field table. It is the only source of
// truth for which field names exist.
var schema = [...]Descriptor{
	{
		Field:  FieldID,
		Name:   "id",
		Column: "id",
		Kind:   KindInt,
		get:    func(r Record) Value { return intValue(r.ID) },
	},
	{
		Field:  FieldDatasetName,
		Name:   "datasetName",
		Column: "dataset_name",
		Kind:   KindString,
		get:    func(r Record) Value { return String(r.DatasetName) },
	},
	{
		Field:  FieldName,
		Name:   "name",
		Column: "name",
		Kind:   KindString,
		get:    func(r Record) Value { return String(r.Name) },
	},
	{
		Field:  FieldAge,
		Name:   "age",
		Column: "age",
		Kind:   KindInt,
		get:    func(r Record) Value { return intValue(r.Age) },
	},
	{
		Field:  FieldDepartment,
		Name:   "department",
		Column: "department",
		Kind:   KindString,
		get:    func(r Record) Value { return String(r.Department) },
	},
}

var byName = func() map[string]Descriptor {
	m := make(map[string]Descriptor, len(schema))
	for _, d := range schema {
		m[d.Name] = d
	}
	return m
}()

// Fields returns the schema in declaration order.
func Fields() []Descriptor {
	out := make([]Descriptor, len(schema))
	copy(out, schema[:])
	return out
}

// FieldNames returns the wire names of all schema fields.
func FieldNames() []string {
	names := make([]string, len(schema))
	for i, d := range schema {
		names[i] = d.Name
	}
	return names
}

// Resolve looks up a field by its wire name. Matching is exact.
// Names outside the schema return *UnsupportedFieldError.
func Resolve(name string) (Descriptor, error) {
	d, ok := byName[name]
	if !ok {
		return Descriptor{}, &UnsupportedFieldError{Name: name}
	}
	return d, nil
}

// Lookup returns the descriptor for a Field constant.
func Lookup(f Field) (Descriptor, bool) {
	if f < FieldID || f > FieldDepartment {
		return Descriptor{}, false
	}
	return schema[f-1], true
}

// String returns the wire name of the field.
func (f Field) String() string {
	if d, ok := Lookup(f); ok {
		return d.Name
	}
	return fmt.Sprintf("Field(%d)", int(f))
}

// UnsupportedFieldError reports a field name that is not in the schema.
type UnsupportedFieldError struct {
	Name string
}

func (e *UnsupportedFieldError) Error() string {
	return fmt.Sprintf("unsupported field %q (valid: %v)", e.Name, FieldNames())
}
