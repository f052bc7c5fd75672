package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/roach88/recordq/internal/engine"
	"github.com/roach88/recordq/internal/record"
	"github.com/roach88/recordq/internal/validate"
)

// Exit codes for CLI commands.
const (
	ExitSuccess      = 0 // Successful execution
	ExitFailure      = 1 // Rejected request or failed scenario
	ExitCommandError = 2 // Command error (bad flags, unreadable files, database unavailable)
)

// ExitError represents an error with a specific exit code.
type ExitError struct {
	Code    int    // Exit code (use ExitFailure or ExitCommandError)
	Message string // Error message
	Err     error  // Underlying error (optional)

	// Reported is set once the error has been written through an
	// OutputFormatter, so main does not print it twice.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// NewExitError creates a new ExitError with the given code and message.
func NewExitError(code int, message string) *ExitError {
	return &ExitError{Code: code, Message: message}
}

// WrapExitError wraps an existing error with an exit code.
func WrapExitError(code int, message string, err error) *ExitError {
	return &ExitError{Code: code, Message: message, Err: err}
}

// GetExitCode extracts the exit code from an error.
// Returns ExitFailure (1) if the error is not an ExitError.
func GetExitCode(err error) int {
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitFailure
}

// IsReported reports whether err was already written to the user.
func IsReported(err error) bool {
	var exitErr *ExitError
	return errors.As(err, &exitErr) && exitErr.Reported
}

// OutputFormatter handles JSON vs text output for CLI commands.
type OutputFormatter struct {
	Format    string
	Writer    io.Writer
	ErrWriter io.Writer // Separate writer for verbose/diagnostic output (defaults to Writer)
	Verbose   bool
}

// CLIResponse is the standard JSON response format for CLI output.
type CLIResponse struct {
	Status string    `json:"status"`          // "ok" or "error"
	Data   any       `json:"data,omitempty"`  // success payload
	Error  *CLIError `json:"error,omitempty"` // error details
}

// CLIError is the error structure for CLI responses.
type CLIError struct {
	Code    string `json:"code"`              // engine kind or transport code
	Message string `json:"message"`           // human-readable message
	Details any    `json:"details,omitempty"` // additional context
}

// Success outputs a successful result. In text mode data is printed with
// fmt.Println; commands with tabular output use Records or Groups instead.
func (f *OutputFormatter) Success(data any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "ok",
			Data:   data,
		})
	}

	fmt.Fprintln(f.Writer, data)
	return nil
}

// Error outputs an error in the configured format.
func (f *OutputFormatter) Error(code, message string, details any) error {
	if f.Format == "json" {
		return json.NewEncoder(f.Writer).Encode(CLIResponse{
			Status: "error",
			Error: &CLIError{
				Code:    code,
				Message: message,
				Details: details,
			},
		})
	}

	fmt.Fprintf(f.Writer, "Error [%s]: %s\n", code, message)
	if details != nil {
		if list, ok := details.([]string); ok {
			for _, d := range list {
				fmt.Fprintf(f.Writer, "  %s\n", d)
			}
		} else if f.Verbose {
			fmt.Fprintf(f.Writer, "Details: %v\n", details)
		}
	}
	return nil
}

// Records outputs records as a table (text) or under data.records (json).
func (f *OutputFormatter) Records(recs []record.Record) error {
	if f.Format == "json" {
		return f.Success(map[string]any{"records": recs})
	}
	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	writeRecordHeader(tw)
	for _, r := range recs {
		writeRecordRow(tw, r)
	}
	return tw.Flush()
}

// Groups outputs a grouping. Text output lists groups in first-appearance
// order, each followed by its records.
func (f *OutputFormatter) Groups(g *engine.Grouping) error {
	if f.Format == "json" {
		return f.Success(map[string]any{"field": g.Field, "groups": g})
	}
	tw := tabwriter.NewWriter(f.Writer, 0, 4, 2, ' ', 0)
	for i, key := range g.Keys {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		recs := g.Get(key)
		fmt.Fprintf(tw, "%s = %s (%d)\n", g.Field, key, len(recs))
		writeRecordHeader(tw)
		for _, r := range recs {
			writeRecordRow(tw, r)
		}
	}
	return tw.Flush()
}

func writeRecordHeader(w io.Writer) {
	fmt.Fprintln(w, "ID\tDATASET\tNAME\tAGE\tDEPARTMENT")
}

func writeRecordRow(w io.Writer, r record.Record) {
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		optional(r.ID), r.DatasetName, r.Name, optional(r.Age), r.Department)
}

func optional(n *int64) string {
	if n == nil {
		return "-"
	}
	return fmt.Sprintf("%d", *n)
}

// Fail reports err through the formatter and returns an ExitError marked as
// reported. Engine errors exit 1 except STORE_UNAVAILABLE, which exits 2.
// Validation errors exit 1 with their violations as details.
func (f *OutputFormatter) Fail(err error) error {
	var ee *engine.Error
	var ve *validate.Error
	var xe *ExitError

	var code, message string
	var details any
	exit := ExitFailure

	switch {
	case errors.As(err, &ve):
		code, message, details = "VALIDATION_FAILED", "Validation failed", ve.Details()
	case errors.As(err, &ee):
		code, message = string(ee.Kind), ee.Message
		if ee.Kind == engine.KindStoreUnavailable {
			exit = ExitCommandError
			if ee.Err != nil {
				details = ee.Err.Error()
			}
		}
	case errors.As(err, &xe):
		code, message, exit = "COMMAND_ERROR", xe.Error(), xe.Code
	default:
		code, message = "ERROR", err.Error()
	}

	var re *RecordError
	if errors.As(err, &re) {
		message = fmt.Sprintf("records[%d]: %s", re.Index, message)
	}

	if outErr := f.Error(code, message, details); outErr != nil {
		return outErr
	}
	return &ExitError{Code: exit, Message: message, Err: err, Reported: true}
}

// VerboseLog outputs a message only if verbose mode is enabled.
// Uses ErrWriter if set, otherwise falls back to Writer.
func (f *OutputFormatter) VerboseLog(format string, args ...any) {
	if !f.Verbose {
		return
	}
	fmt.Fprintf(f.GetErrWriter(), format+"\n", args...)
}

// GetErrWriter returns ErrWriter if set, otherwise Writer.
func (f *OutputFormatter) GetErrWriter() io.Writer {
	if f.ErrWriter != nil {
		return f.ErrWriter
	}
	return f.Writer
}
