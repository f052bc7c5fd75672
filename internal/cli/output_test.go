package cli

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/recordq/internal/engine"
	"github.com/roach88/recordq/internal/validate"
)

func TestOutputFormatter_JSONSuccess(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Success(map[string]string{"result": "success"}))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "ok", resp.Status)
	assert.NotNil(t, resp.Data)
}

func TestOutputFormatter_JSONError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "json", Writer: buf}

	require.NoError(t, formatter.Error("INVALID_FIELD", "Unsupported groupBy field: salary", nil))

	var resp CLIResponse
	require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
	assert.Equal(t, "error", resp.Status)
	require.NotNil(t, resp.Error)
	assert.Equal(t, "INVALID_FIELD", resp.Error.Code)
	assert.Equal(t, "Unsupported groupBy field: salary", resp.Error.Message)
}

func TestOutputFormatter_TextError(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	require.NoError(t, formatter.Error("VALIDATION_FAILED", "Validation failed",
		[]string{"name : Name is required", "age : Age is required"}))

	assert.Equal(t, "Error [VALIDATION_FAILED]: Validation failed\n"+
		"  name : Name is required\n"+
		"  age : Age is required\n", buf.String())
}

func TestOutputFormatter_VerboseLog(t *testing.T) {
	out := &bytes.Buffer{}
	errOut := &bytes.Buffer{}

	quiet := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut}
	quiet.VerboseLog("hidden %d", 1)
	assert.Empty(t, errOut.String())

	loud := &OutputFormatter{Format: "json", Writer: out, ErrWriter: errOut, Verbose: true}
	loud.VerboseLog("shown %d", 2)
	assert.Equal(t, "shown 2\n", errOut.String())
	assert.Empty(t, out.String())
}

func TestOutputFormatter_Fail(t *testing.T) {
	testCases := []struct {
		name     string
		err      error
		code     string
		message  string
		exitCode int
	}{
		{
			name:     "engine query error",
			err:      engine.NewDatasetNotFoundError("ghost"),
			code:     "DATASET_NOT_FOUND",
			message:  "No records found for dataset: ghost",
			exitCode: ExitFailure,
		},
		{
			name:     "store unavailable",
			err:      engine.NewStoreUnavailableError("sortBy", "d", errors.New("locked")),
			code:     "STORE_UNAVAILABLE",
			message:  `record store failed during sortBy on dataset "d"`,
			exitCode: ExitCommandError,
		},
		{
			name:     "validation",
			err:      &validate.Error{Violations: []validate.Violation{{Field: "age", Message: "Age is required"}}},
			code:     "VALIDATION_FAILED",
			message:  "Validation failed",
			exitCode: ExitFailure,
		},
		{
			name:     "indexed import failure",
			err:      &RecordError{Index: 4, Err: engine.NewDuplicateIDError("d", 9)},
			code:     "DUPLICATE_ID",
			message:  "records[4]: Record with ID 9 already exists",
			exitCode: ExitFailure,
		},
		{
			name:     "plain error",
			err:      errors.New("boom"),
			code:     "ERROR",
			message:  "boom",
			exitCode: ExitFailure,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			formatter := &OutputFormatter{Format: "json", Writer: buf}

			err := formatter.Fail(tc.err)
			require.Error(t, err)
			assert.Equal(t, tc.exitCode, GetExitCode(err))
			assert.True(t, IsReported(err))
			assert.ErrorIs(t, err, tc.err)

			var resp CLIResponse
			require.NoError(t, json.Unmarshal(buf.Bytes(), &resp))
			require.NotNil(t, resp.Error)
			assert.Equal(t, tc.code, resp.Error.Code)
			assert.Equal(t, tc.message, resp.Error.Message)
		})
	}
}

func TestExitError(t *testing.T) {
	cause := errors.New("disk full")
	err := WrapExitError(ExitCommandError, "failed to write", cause)
	assert.Equal(t, "failed to write: disk full", err.Error())
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, ExitCommandError, GetExitCode(err))
	assert.False(t, IsReported(err))

	assert.Equal(t, ExitFailure, GetExitCode(errors.New("plain")))
	assert.Equal(t, "bare", NewExitError(ExitFailure, "bare").Error())
}
