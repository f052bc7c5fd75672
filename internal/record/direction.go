package record

import (
	"fmt"
	"strings"
)

// Direction is a sort direction.
type Direction string

const (
	Ascending  Direction = "asc"
	Descending Direction = "desc"
)

// DefaultDirection is what transports use when the caller gives no order.
// ParseDirection never applies it.
const DefaultDirection = Ascending

// ParseDirection accepts asc, ascending, desc or descending in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(s) {
	case "asc", "ascending":
		return Ascending, nil
	case "desc", "descending":
		return Descending, nil
	}
	return "", &InvalidDirectionError{Value: s}
}

// SQL returns the SQL keyword for the direction.
func (d Direction) SQL() string {
	if d == Descending {
		return "DESC"
	}
	return "ASC"
}

// InvalidDirectionError reports an unrecognised sort direction.
type InvalidDirectionError struct {
	Value string
}

func (e *InvalidDirectionError) Error() string {
	return fmt.Sprintf("invalid sort order %q: use 'asc' or 'desc'", e.Value)
}
