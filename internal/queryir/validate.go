package queryir

import (
	"fmt"

	"github.com/roach88/recordq/internal/record"
)

// ValidationError reports a malformed query.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid query: " + e.Message
}

// Validate checks that every ordering term names a schema field and a
// known direction. Validate is pure.
func Validate(q Query) error {
	switch query := q.(type) {
	case nil:
		return &ValidationError{Message: "nil query"}
	case ListDataset:
		return validateList(query)
	case *ListDataset:
		if query == nil {
			return &ValidationError{Message: "nil query"}
		}
		return validateList(*query)
	case ExistsID:
		return nil
	case *ExistsID:
		if query == nil {
			return &ValidationError{Message: "nil query"}
		}
		return nil
	default:
		return &ValidationError{Message: fmt.Sprintf("unknown query type %T", q)}
	}
}

func validateList(q ListDataset) error {
	for i, o := range q.OrderBy {
		if _, ok := record.Lookup(o.Field); !ok {
			return &ValidationError{Message: fmt.Sprintf("order[%d]: unknown field %s", i, o.Field)}
		}
		switch o.Direction {
		case record.Ascending, record.Descending:
		default:
			return &ValidationError{Message: fmt.Sprintf("order[%d]: unknown direction %q", i, o.Direction)}
		}
	}
	return nil
}
