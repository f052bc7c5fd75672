package harness

// Trace operations.
const (
	OpSeed   = "seed"
	OpInsert = "insert"
	OpGroup  = "group"
	OpSort   = "sort"
)

// Trace outcomes.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// TraceEvent records one seed or step and what the engine returned.
type TraceEvent struct {
	Seq     int64  `json:"seq"`
	Op      string `json:"op"`
	Dataset string `json:"dataset"`
	Field   string `json:"field,omitempty"`
	Order   string `json:"order,omitempty"`
	ID      *int64 `json:"id,omitempty"`
	Outcome string `json:"outcome"`

	// Error is the engine error kind when Outcome is "error".
	Error string `json:"error,omitempty"`

	IDs    []int64            `json:"ids,omitempty"`
	Groups map[string][]int64 `json:"groups,omitempty"`
}

// Result is the outcome of a scenario execution.
type Result struct {
	// Pass is true when every expect clause matched.
	Pass bool `json:"pass"`

	// Trace holds seeds and steps in execution order.
	Trace []TraceEvent `json:"trace"`

	// Errors holds expectation mismatches. Empty if Pass is true.
	Errors []string `json:"errors,omitempty"`
}

// NewResult creates a passing result with an empty trace.
func NewResult() *Result {
	return &Result{
		Pass:   true,
		Trace:  []TraceEvent{},
		Errors: []string{},
	}
}

// AddError records a mismatch and marks the result as failed.
func (r *Result) AddError(err string) {
	r.Errors = append(r.Errors, err)
	r.Pass = false
}

// AddEvent appends ev to the trace.
func (r *Result) AddEvent(ev TraceEvent) {
	r.Trace = append(r.Trace, ev)
}
