package harness

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScenarios_Golden(t *testing.T) {
	files, err := filepath.Glob("testdata/scenarios/*.yaml")
	require.NoError(t, err)
	require.NotEmpty(t, files)

	for _, file := range files {
		t.Run(filepath.Base(file), func(t *testing.T) {
			scenario, err := LoadScenario(file)
			require.NoError(t, err)

			result, err := RunWithGolden(t, scenario)
			require.NoError(t, err)
			assert.True(t, result.Pass, "errors: %v", result.Errors)
			assert.Empty(t, result.Errors)
		})
	}
}

func TestRun_Deterministic(t *testing.T) {
	scenario, err := LoadScenario("testdata/scenarios/employee_queries.yaml")
	require.NoError(t, err)

	first, err := Run(scenario)
	require.NoError(t, err)
	second, err := Run(scenario)
	require.NoError(t, err)

	a, err := Snapshot(scenario.Name, first)
	require.NoError(t, err)
	b, err := Snapshot(scenario.Name, second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestRun_ReportsMismatches(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: wrong_expectations
description: Every expectation here is wrong
records:
  - dataset: d
    records:
      - {id: 1, name: A, age: 2, department: X}
      - {id: 2, name: B, age: 1, department: X}
steps:
  - sort: {dataset: d, field: age}
    expect:
      ids: [1, 2]
  - group: {dataset: d, field: department}
    expect:
      groups: {Y: [1, 2]}
  - group: {dataset: d, field: age}
    expect:
      error: INVALID_FIELD
  - sort: {dataset: d, field: nope}
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	assert.False(t, result.Pass)
	require.Len(t, result.Errors, 4)
	assert.Equal(t, "steps[0] sort: expected ids [1 2], got [2 1]", result.Errors[0])
	assert.Contains(t, result.Errors[1], "expected groups")
	assert.Equal(t, "steps[2] group: expected error INVALID_FIELD, got success", result.Errors[2])
	assert.Equal(t, "steps[3] sort: unexpected error INVALID_FIELD", result.Errors[3])
}

func TestRun_WrongErrorKind(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: wrong_kind
description: Expects the wrong error kind
steps:
  - group: {dataset: empty, field: age}
    expect:
      error: INVALID_FIELD
`))
	require.NoError(t, err)

	result, err := Run(scenario)
	require.NoError(t, err)
	require.Len(t, result.Errors, 1)
	assert.Equal(t, "steps[0] group: expected error INVALID_FIELD, got DATASET_NOT_FOUND", result.Errors[0])
}

func TestRun_SeedFailureAborts(t *testing.T) {
	scenario, err := ParseScenario([]byte(`
name: dup_seed
description: Seeds collide
records:
  - dataset: a
    records:
      - {id: 1, name: A, age: 1, department: X}
  - dataset: b
    records:
      - {id: 1, name: B, age: 1, department: X}
steps:
  - sort: {dataset: a, field: id}
`))
	require.NoError(t, err)

	_, err = Run(scenario)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "records[1].records[0]")
}

func TestParseScenario_Invalid(t *testing.T) {
	testCases := []struct {
		name   string
		yaml   string
		errMsg string
	}{
		{"missing name", "description: d\nsteps: [{sort: {dataset: a, field: id}}]", "name is required"},
		{"missing description", "name: n\nsteps: [{sort: {dataset: a, field: id}}]", "description is required"},
		{"no steps", "name: n\ndescription: d", "steps list is required"},
		{"unknown field", "name: n\ndescription: d\nstep: []", "failed to parse YAML"},
		{"two ops", "name: n\ndescription: d\nsteps: [{sort: {dataset: a, field: id}, group: {dataset: a, field: id}}]", "exactly one"},
		{"no op", "name: n\ndescription: d\nsteps: [{expect: {error: MISSING_ID}}]", "exactly one"},
		{"sort without field", "name: n\ndescription: d\nsteps: [{sort: {dataset: a}}]", "dataset and field are required"},
		{"group with order", "name: n\ndescription: d\nsteps: [{group: {dataset: a, field: id, order: asc}}]", "order is not allowed"},
		{"insert without dataset", "name: n\ndescription: d\nsteps: [{insert: {record: {id: 1}}}]", "dataset is required"},
		{"unknown kind", "name: n\ndescription: d\nsteps: [{sort: {dataset: a, field: id}, expect: {error: BOOM}}]", "unknown error kind"},
		{"error plus ids", "name: n\ndescription: d\nsteps: [{sort: {dataset: a, field: id}, expect: {error: MISSING_ID, ids: [1]}}]", "cannot be combined"},
		{"ids on group", "name: n\ndescription: d\nsteps: [{group: {dataset: a, field: id}, expect: {ids: [1]}}]", "only valid for sort"},
		{"groups on sort", "name: n\ndescription: d\nsteps: [{sort: {dataset: a, field: id}, expect: {groups: {a: [1]}}}]", "only valid for group"},
		{"seed without id", "name: n\ndescription: d\nrecords: [{dataset: a, records: [{name: X}]}]\nsteps: [{sort: {dataset: a, field: id}}]", "id is required"},
		{"seed without dataset", "name: n\ndescription: d\nrecords: [{records: []}]\nsteps: [{sort: {dataset: a, field: id}}]", "dataset is required"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tc.yaml))
			require.Error(t, err)
			assert.True(t, strings.Contains(err.Error(), tc.errMsg), "got %q", err.Error())
		})
	}
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read scenario file")
}

func TestStepOp(t *testing.T) {
	assert.Equal(t, OpInsert, Step{Insert: &InsertStep{}}.Op())
	assert.Equal(t, OpGroup, Step{Group: &QueryStep{}}.Op())
	assert.Equal(t, OpSort, Step{Sort: &QueryStep{}}.Op())
	assert.Equal(t, "", Step{}.Op())
}
