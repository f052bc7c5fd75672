package record

// Record is a single row of a dataset.
//
// ID and Age are pointers so that an absent value can be represented.
// DatasetName is stamped by the engine at insert time and is never taken
// from the caller.
type Record struct {
	ID          *int64 `json:"id" yaml:"id"`
	DatasetName string `json:"datasetName" yaml:"datasetName"`
	Name        string `json:"name" yaml:"name"`
	Age         *int64 `json:"age" yaml:"age"`
	Department  string `json:"department" yaml:"department"`
}

// New builds a record with all attributes set.
func New(id int64, name string, age int64, department string) Record {
	return Record{
		ID:         Int64(id),
		Name:       name,
		Age:        Int64(age),
		Department: department,
	}
}

// Int64 returns a pointer to n.
func Int64(n int64) *int64 {
	return &n
}

// HasID reports whether the record carries an id.
func (r Record) HasID() bool {
	return r.ID != nil
}

// IDValue returns the id, or 0 when absent.
func (r Record) IDValue() int64 {
	if r.ID == nil {
		return 0
	}
	return *r.ID
}

// WithDataset returns a copy of r stamped with the dataset name.
func (r Record) WithDataset(name string) Record {
	r.DatasetName = name
	return r
}

// Clone returns a deep copy; the pointer fields are not shared.
func (r Record) Clone() Record {
	out := r
	if r.ID != nil {
		out.ID = Int64(*r.ID)
	}
	if r.Age != nil {
		out.Age = Int64(*r.Age)
	}
	return out
}

// IDs returns the ids of recs in order. Absent ids are reported as 0.
func IDs(recs []Record) []int64 {
	ids := make([]int64, len(recs))
	for i, r := range recs {
		ids[i] = r.IDValue()
	}
	return ids
}
