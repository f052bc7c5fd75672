package engine

import (
	"errors"
	"fmt"
)

// Kind categorizes engine errors. Values are stable and safe to expose.
type Kind string

const (
	// KindMissingID indicates an insert without an id.
	KindMissingID Kind = "MISSING_ID"

	// KindDuplicateID indicates an insert with an id present in any dataset.
	KindDuplicateID Kind = "DUPLICATE_ID"

	// KindInvalidField indicates a field name outside the record schema.
	KindInvalidField Kind = "INVALID_FIELD"

	// KindInvalidSortOrder indicates a direction other than asc/desc.
	KindInvalidSortOrder Kind = "INVALID_SORT_ORDER"

	// KindDatasetNotFound indicates a dataset with no records.
	KindDatasetNotFound Kind = "DATASET_NOT_FOUND"

	// KindStoreUnavailable indicates a record store failure.
	KindStoreUnavailable Kind = "STORE_UNAVAILABLE"
)

// Kinds lists every error kind.
var Kinds = []Kind{
	KindMissingID,
	KindDuplicateID,
	KindInvalidField,
	KindInvalidSortOrder,
	KindDatasetNotFound,
	KindStoreUnavailable,
}

// Error is returned by every engine operation.
//
// Message always contains the offending dataset, field, direction or id.
// The structured fields carry the same values for programmatic use.
type Error struct {
	Kind      Kind
	Message   string
	Dataset   string
	Field     string
	Direction string
	ID        int64

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying cause.
func (e *Error) Unwrap() error {
	return e.Err
}

// KindOf returns the Kind of an engine error, or "" for other errors.
// Uses errors.As to handle wrapped errors.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err is an engine error of kind k.
func IsKind(err error, k Kind) bool {
	return err != nil && KindOf(err) == k
}

// NewMissingIDError creates an Error for an insert without an id.
func NewMissingIDError(dataset string) *Error {
	return &Error{
		Kind:    KindMissingID,
		Message: "ID is required",
		Dataset: dataset,
	}
}

// NewDuplicateIDError creates an Error for an id that already exists.
func NewDuplicateIDError(dataset string, id int64) *Error {
	return &Error{
		Kind:    KindDuplicateID,
		Message: fmt.Sprintf("Record with ID %d already exists", id),
		Dataset: dataset,
		ID:      id,
	}
}

// NewInvalidFieldError creates an Error for an unsupported field name.
// op is "groupBy" or "sortBy".
func NewInvalidFieldError(op, dataset, field string, cause error) *Error {
	return &Error{
		Kind:    KindInvalidField,
		Message: fmt.Sprintf("Unsupported %s field: %s", op, field),
		Dataset: dataset,
		Field:   field,
		Err:     cause,
	}
}

// NewInvalidSortOrderError creates an Error for an unknown direction.
func NewInvalidSortOrderError(dataset, direction string, cause error) *Error {
	return &Error{
		Kind:      KindInvalidSortOrder,
		Message:   fmt.Sprintf("Invalid sort order: %s. Use 'asc' or 'desc'.", direction),
		Dataset:   dataset,
		Direction: direction,
		Err:       cause,
	}
}

// NewDatasetNotFoundError creates an Error for a dataset with no records.
func NewDatasetNotFoundError(dataset string) *Error {
	return &Error{
		Kind:    KindDatasetNotFound,
		Message: "No records found for dataset: " + dataset,
		Dataset: dataset,
	}
}

// NewStoreUnavailableError wraps a record store failure.
func NewStoreUnavailableError(op, dataset string, cause error) *Error {
	return &Error{
		Kind:    KindStoreUnavailable,
		Message: fmt.Sprintf("record store failed during %s on dataset %q", op, dataset),
		Dataset: dataset,
		Err:     cause,
	}
}
