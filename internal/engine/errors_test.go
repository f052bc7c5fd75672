package engine

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindDuplicateID, KindOf(NewDuplicateIDError("d", 3)))
	assert.Equal(t, KindDatasetNotFound, KindOf(fmt.Errorf("wrapped: %w", NewDatasetNotFoundError("d"))))
	assert.Equal(t, Kind(""), KindOf(errors.New("plain")))
	assert.Equal(t, Kind(""), KindOf(nil))
	assert.False(t, IsKind(nil, KindMissingID))
}

func TestError_MessagesContainOffendingValue(t *testing.T) {
	testCases := []struct {
		err  *Error
		want string
	}{
		{NewMissingIDError("d"), "ID is required"},
		{NewDuplicateIDError("d", 42), "42"},
		{NewInvalidFieldError("groupBy", "d", "salary", nil), "salary"},
		{NewInvalidSortOrderError("d", "sideways", nil), "sideways"},
		{NewDatasetNotFoundError("Ghost"), "Ghost"},
		{NewStoreUnavailableError("sortBy", "Ghost", errors.New("boom")), "Ghost"},
	}

	for _, tc := range testCases {
		t.Run(string(tc.err.Kind), func(t *testing.T) {
			assert.Contains(t, tc.err.Error(), tc.want)
			assert.Contains(t, tc.err.Error(), string(tc.err.Kind))
		})
	}
}

func TestError_Unwrap(t *testing.T) {
	cause := errors.New("boom")
	err := NewStoreUnavailableError("insert", "d", cause)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "boom")
	assert.Nil(t, NewDatasetNotFoundError("d").Unwrap())
}

func TestKinds_Distinct(t *testing.T) {
	seen := map[Kind]bool{}
	for _, k := range Kinds {
		assert.False(t, seen[k], "duplicate kind %s", k)
		seen[k] = true
	}
	assert.Len(t, seen, 6)
}
