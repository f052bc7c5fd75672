package record

import "strconv"

// Value is a sealed interface over the field value kinds a record can hold.
// Only Null, Int and String implement it.
type Value interface {
	value()

	// Key renders the value as a canonical group key.
	Key() string
}

// Null is an absent field value.
type Null struct{}

func (Null) value() {}

// Key returns the literal "null".
func (Null) Key() string { return "null" }

// Int is an integer field value.
type Int int64

func (Int) value() {}

// Key returns the decimal form.
func (v Int) Key() string { return strconv.FormatInt(int64(v), 10) }

// String is a text field value.
type String string

func (String) value() {}

// Key returns the string unchanged.
func (v String) Key() string { return string(v) }

// CompareValues orders two values of the same field.
// Null sorts before everything else; Ints compare numerically and Strings
// compare bytewise, matching SQLite's BINARY collation.
func CompareValues(a, b Value) int {
	_, aNull := a.(Null)
	_, bNull := b.(Null)
	switch {
	case aNull && bNull:
		return 0
	case aNull:
		return -1
	case bNull:
		return 1
	}

	switch av := a.(type) {
	case Int:
		bv, ok := b.(Int)
		if !ok {
			return kindRank(a) - kindRank(b)
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	case String:
		bv, ok := b.(String)
		if !ok {
			return kindRank(a) - kindRank(b)
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		}
		return 0
	}
	return 0
}

// kindRank mirrors SQLite's cross-type ordering: NULL < INTEGER < TEXT.
func kindRank(v Value) int {
	switch v.(type) {
	case Null:
		return 0
	case Int:
		return 1
	default:
		return 2
	}
}
