// Package validate checks inbound records against the record shape before
// they reach the engine: a positive id when present, a non-negative age, and
// names and departments made of letters and spaces only.
//
// The shape lives in record.cue and is evaluated with the CUE Go API. A
// Validator owns its own cue.Context, which is not safe for concurrent use;
// use one Validator per goroutine, or the package-level Record function,
// which serialises access to a shared Validator.
package validate

import (
	_ "embed"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"

	"github.com/roach88/recordq/internal/record"
)

//go:embed record.cue
var recordSchema string

// Violation is one failed constraint.
type Violation struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// String renders the violation as "field : message".
func (v Violation) String() string {
	return v.Field + " : " + v.Message
}

// Error lists every violation found in a record.
type Error struct {
	Violations []Violation
}

func (e *Error) Error() string {
	return "validation failed: " + strings.Join(e.Details(), "; ")
}

// Details returns the violations as "field : message" strings.
func (e *Error) Details() []string {
	out := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		out[i] = v.String()
	}
	return out
}

// Validator evaluates records against the CUE record shape.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// New compiles the embedded record shape.
func New() (*Validator, error) {
	ctx := cuecontext.New()
	v := ctx.CompileString(recordSchema, cue.Filename("record.cue"))
	if err := v.Err(); err != nil {
		return nil, fmt.Errorf("compile record schema: %w", err)
	}
	schema := v.LookupPath(cue.ParsePath("#Record"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("lookup #Record: %w", err)
	}
	return &Validator{ctx: ctx, schema: schema}, nil
}

// Record validates rec. Returns nil or *Error.
func (v *Validator) Record(rec record.Record) error {
	unified := v.schema.Unify(v.ctx.Encode(encode(rec)))

	var violations []Violation
	for _, d := range record.Fields() {
		if d.Field == record.FieldDatasetName {
			continue
		}
		if d.Field == record.FieldID && !rec.HasID() {
			continue
		}
		fv := unified.LookupPath(cue.ParsePath(d.Name))
		if err := fv.Validate(cue.Concrete(true)); err != nil || !fv.Exists() {
			violations = append(violations, Violation{
				Field:   d.Name,
				Message: message(d, rec),
			})
		}
	}

	if len(violations) > 0 {
		return &Error{Violations: violations}
	}
	return nil
}

// encode builds the CUE input, omitting absent optional values.
func encode(rec record.Record) map[string]any {
	m := map[string]any{
		"name":       rec.Name,
		"department": rec.Department,
	}
	if rec.ID != nil {
		m["id"] = *rec.ID
	}
	if rec.Age != nil {
		m["age"] = *rec.Age
	}
	return m
}

func message(d record.Descriptor, rec record.Record) string {
	switch d.Field {
	case record.FieldID:
		return "Id must be a positive integer"
	case record.FieldName:
		if strings.TrimSpace(rec.Name) == "" {
			return "Name is required"
		}
		return "Name must contain only letters and spaces"
	case record.FieldAge:
		if rec.Age == nil {
			return "Age is required"
		}
		return "Age must be a positive integer"
	case record.FieldDepartment:
		if strings.TrimSpace(rec.Department) == "" {
			return "Department is required"
		}
		return "Department must contain only letters and spaces"
	}
	return "invalid value"
}

var (
	defaultOnce sync.Once
	defaultMu   sync.Mutex
	defaultV    *Validator
	defaultErr  error
)

// Record validates rec with a shared Validator. Safe for concurrent use.
func Record(rec record.Record) error {
	defaultOnce.Do(func() {
		defaultV, defaultErr = New()
	})
	if defaultErr != nil {
		return defaultErr
	}
	defaultMu.Lock()
	defer defaultMu.Unlock()
	return defaultV.Record(rec)
}
