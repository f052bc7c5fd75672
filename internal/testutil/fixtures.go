package testutil

import "github.com/roach88/recordq/internal/record"

// EmployeeDataset is the dataset name used by Employees.
const EmployeeDataset = "employee_dataset"

// Employees returns a fresh copy of the three-record employee fixture:
//
//	1 John Doe    30 Engineering
//	2 Jane Smith  25 Engineering
//	3 Alice Brown 28 Marketing
func Employees() []record.Record {
	return []record.Record{
		record.New(1, "John Doe", 30, "Engineering"),
		record.New(2, "Jane Smith", 25, "Engineering"),
		record.New(3, "Alice Brown", 28, "Marketing"),
	}
}

// WithoutAge returns rec with the age cleared.
func WithoutAge(rec record.Record) record.Record {
	rec = rec.Clone()
	rec.Age = nil
	return rec
}

// WithoutID returns rec with the id cleared.
func WithoutID(rec record.Record) record.Record {
	rec = rec.Clone()
	rec.ID = nil
	return rec
}
