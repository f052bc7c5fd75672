// Package harness runs YAML conformance scenarios against the record engine.
//
// A scenario seeds one or more datasets, then executes a list of steps
// (insert, group, sort). Each step may carry an expect clause naming either
// the error kind the engine must return or the ids/groups it must produce.
// Every seed and step is appended to a trace; the trace is serialised with
// canonical JSON so it can be compared byte-for-byte against a golden file.
//
// Scenarios run against a fresh in-memory store, so results depend only on
// the scenario file.
//
// Example:
//
//	name: employee_queries
//	description: Group and sort a small employee dataset
//	records:
//	  - dataset: employee_dataset
//	    records:
//	      - {id: 1, name: John Doe, age: 30, department: Engineering}
//	steps:
//	  - group: {dataset: employee_dataset, field: department}
//	    expect:
//	      groups: {Engineering: [1]}
//	  - sort: {dataset: employee_dataset, field: age, order: desc}
//	    expect:
//	      ids: [1]
//	  - group: {dataset: employee_dataset, field: salary}
//	    expect:
//	      error: INVALID_FIELD
package harness
