package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/roach88/recordq/internal/engine"
	"github.com/roach88/recordq/internal/record"
)

// Scenario is a conformance test: seed data, then steps with expectations.
type Scenario struct {
	// Name uniquely identifies the scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what the scenario checks.
	Description string `yaml:"description"`

	// Records seeds datasets before any step runs.
	// Seeds are assumed to succeed.
	Records []SeedSet `yaml:"records,omitempty"`

	// Steps run in order after seeding.
	Steps []Step `yaml:"steps"`
}

// SeedSet is a batch of records inserted into one dataset.
type SeedSet struct {
	Dataset string          `yaml:"dataset"`
	Records []record.Record `yaml:"records"`
}

// Step is one engine operation. Exactly one of Insert, Group and Sort is set.
type Step struct {
	Insert *InsertStep `yaml:"insert,omitempty"`
	Group  *QueryStep  `yaml:"group,omitempty"`
	Sort   *QueryStep  `yaml:"sort,omitempty"`

	// Expect is optional; without it the step must succeed.
	Expect *Expect `yaml:"expect,omitempty"`
}

// InsertStep inserts one record.
type InsertStep struct {
	Dataset string        `yaml:"dataset"`
	Record  record.Record `yaml:"record"`
}

// QueryStep groups or sorts a dataset. Order applies to sort only and
// defaults to asc.
type QueryStep struct {
	Dataset string `yaml:"dataset"`
	Field   string `yaml:"field"`
	Order   string `yaml:"order,omitempty"`
}

// Expect names either an error kind or the expected output.
type Expect struct {
	// Error is an engine error kind, e.g. DUPLICATE_ID.
	Error string `yaml:"error,omitempty"`

	// IDs is the expected record id order of a sort.
	IDs []int64 `yaml:"ids,omitempty"`

	// Groups maps each expected group key to its record ids.
	Groups map[string][]int64 `yaml:"groups,omitempty"`
}

// Op returns the step's operation name, or "" if none is set.
func (s Step) Op() string {
	switch {
	case s.Insert != nil:
		return OpInsert
	case s.Group != nil:
		return OpGroup
	case s.Sort != nil:
		return OpSort
	}
	return ""
}

// LoadScenario reads and parses a scenario YAML file.
// Unknown fields are rejected so typos fail loudly.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses and validates scenario YAML.
func ParseScenario(data []byte) (*Scenario, error) {
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &scenario, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Steps) == 0 {
		return fmt.Errorf("steps list is required and must be non-empty")
	}

	for i, set := range s.Records {
		if set.Dataset == "" {
			return fmt.Errorf("records[%d]: dataset is required", i)
		}
		for j, rec := range set.Records {
			if !rec.HasID() {
				return fmt.Errorf("records[%d].records[%d]: id is required", i, j)
			}
		}
	}

	for i, step := range s.Steps {
		if err := validateStep(step); err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}
	return nil
}

func validateStep(step Step) error {
	n := 0
	for _, set := range []bool{step.Insert != nil, step.Group != nil, step.Sort != nil} {
		if set {
			n++
		}
	}
	if n != 1 {
		return fmt.Errorf("exactly one of insert, group or sort is required")
	}

	switch {
	case step.Insert != nil:
		if step.Insert.Dataset == "" {
			return fmt.Errorf("insert: dataset is required")
		}
	case step.Group != nil:
		if step.Group.Dataset == "" || step.Group.Field == "" {
			return fmt.Errorf("group: dataset and field are required")
		}
		if step.Group.Order != "" {
			return fmt.Errorf("group: order is not allowed")
		}
	case step.Sort != nil:
		if step.Sort.Dataset == "" || step.Sort.Field == "" {
			return fmt.Errorf("sort: dataset and field are required")
		}
	}

	if step.Expect == nil {
		return nil
	}
	e := step.Expect
	if e.Error != "" {
		if !isKnownKind(e.Error) {
			return fmt.Errorf("expect: unknown error kind %q", e.Error)
		}
		if e.IDs != nil || e.Groups != nil {
			return fmt.Errorf("expect: error cannot be combined with ids or groups")
		}
	}
	if e.IDs != nil && step.Sort == nil {
		return fmt.Errorf("expect: ids is only valid for sort")
	}
	if e.Groups != nil && step.Group == nil {
		return fmt.Errorf("expect: groups is only valid for group")
	}
	return nil
}

func isKnownKind(s string) bool {
	for _, k := range engine.Kinds {
		if string(k) == s {
			return true
		}
	}
	return false
}
