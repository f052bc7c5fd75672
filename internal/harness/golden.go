package harness

import (
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/roach88/recordq/internal/canonical"
)

// Snapshot renders a scenario's trace as canonical JSON:
//
//	{"scenario_name":..., "trace":[...]}
//
// Identical runs produce identical bytes.
func Snapshot(scenarioName string, result *Result) ([]byte, error) {
	trace := make([]any, len(result.Trace))
	for i, ev := range result.Trace {
		trace[i] = eventMap(ev)
	}
	return canonical.Marshal(map[string]any{
		"scenario_name": scenarioName,
		"trace":         trace,
	})
}

func eventMap(ev TraceEvent) map[string]any {
	m := map[string]any{
		"seq":     ev.Seq,
		"op":      ev.Op,
		"dataset": ev.Dataset,
		"outcome": ev.Outcome,
	}
	if ev.Field != "" {
		m["field"] = ev.Field
	}
	if ev.Order != "" {
		m["order"] = ev.Order
	}
	if ev.ID != nil {
		m["id"] = *ev.ID
	}
	if ev.Error != "" {
		m["error"] = ev.Error
	}
	if ev.IDs != nil {
		m["ids"] = ev.IDs
	}
	if ev.Groups != nil {
		groups := make(map[string]any, len(ev.Groups))
		for k, ids := range ev.Groups {
			groups[k] = ids
		}
		m["groups"] = groups
	}
	return m
}

// RunWithGolden executes scenario and compares its trace against
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) (*Result, error) {
	t.Helper()

	result, err := Run(scenario)
	if err != nil {
		return nil, err
	}
	if err := AssertGolden(t, scenario.Name, result); err != nil {
		return nil, err
	}
	return result, nil
}

// AssertGolden compares result's trace against the named golden file.
func AssertGolden(t *testing.T, scenarioName string, result *Result) error {
	t.Helper()

	data, err := Snapshot(scenarioName, result)
	if err != nil {
		return err
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenarioName, data)
	return nil
}
