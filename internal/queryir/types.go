package queryir

import "github.com/roach88/recordq/internal/record"

// Query is a store query. Sealed to this package.
type Query interface {
	queryNode()
}

// ListDataset selects every record whose dataset equals Dataset.
//
// With no OrderBy terms rows come back in insertion order. Each OrderBy
// term is applied in sequence; insertion order is always the final
// tiebreaker so equal keys keep retrieval order.
type ListDataset struct {
	Dataset string
	OrderBy []Order
}

func (ListDataset) queryNode() {}

// ExistsID checks whether any record, in any dataset, has the id.
type ExistsID struct {
	ID int64
}

func (ExistsID) queryNode() {}

// Order is a single ordering term.
type Order struct {
	Field     record.Field
	Direction record.Direction
}

// SortedBy builds a ListDataset ordered by one field.
func SortedBy(dataset string, field record.Field, dir record.Direction) ListDataset {
	return ListDataset{
		Dataset: dataset,
		OrderBy: []Order{{Field: field, Direction: dir}},
	}
}
