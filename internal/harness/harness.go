package harness

import (
	"context"
	"fmt"
	"maps"
	"slices"

	"go.uber.org/zap"

	"github.com/roach88/recordq/internal/engine"
	"github.com/roach88/recordq/internal/memstore"
	"github.com/roach88/recordq/internal/record"
	"github.com/roach88/recordq/internal/testutil"
)

// Harness executes one scenario against a fresh engine.
type Harness struct {
	engine *engine.Engine
	seq    *testutil.Sequence
	logger *zap.Logger
}

// Run executes scenario with a no-op logger.
func Run(scenario *Scenario) (*Result, error) {
	return RunWithLogger(context.Background(), scenario, zap.NewNop())
}

// RunWithLogger executes scenario and returns its trace and any
// expectation mismatches.
//
// Seeds must succeed; a failing seed aborts the run with an error. Step
// mismatches do not abort: they are collected in Result.Errors so that a
// single run reports every failing step.
func RunWithLogger(ctx context.Context, scenario *Scenario, logger *zap.Logger) (*Result, error) {
	h := &Harness{
		engine: engine.New(memstore.New(), engine.WithLogger(logger)),
		seq:    testutil.NewSequence(),
		logger: logger,
	}

	result := NewResult()
	if err := h.seed(ctx, scenario.Records, result); err != nil {
		return nil, fmt.Errorf("failed to seed records: %w", err)
	}
	for i, step := range scenario.Steps {
		h.executeStep(ctx, i, step, result)
	}

	h.logger.Debug("scenario finished",
		zap.String("scenario", scenario.Name),
		zap.Bool("pass", result.Pass),
		zap.Int("events", len(result.Trace)))
	return result, nil
}

func (h *Harness) seed(ctx context.Context, sets []SeedSet, result *Result) error {
	for i, set := range sets {
		for j, rec := range set.Records {
			stored, err := h.engine.Insert(ctx, set.Dataset, rec)
			if err != nil {
				return fmt.Errorf("records[%d].records[%d]: %w", i, j, err)
			}
			result.AddEvent(TraceEvent{
				Seq:     h.seq.Next(),
				Op:      OpSeed,
				Dataset: set.Dataset,
				ID:      stored.ID,
				Outcome: OutcomeOK,
			})
		}
	}
	return nil
}

func (h *Harness) executeStep(ctx context.Context, i int, step Step, result *Result) {
	var (
		ev  TraceEvent
		err error
	)

	switch {
	case step.Insert != nil:
		ev = TraceEvent{Op: OpInsert, Dataset: step.Insert.Dataset, ID: step.Insert.Record.ID}
		_, err = h.engine.Insert(ctx, step.Insert.Dataset, step.Insert.Record)

	case step.Group != nil:
		ev = TraceEvent{Op: OpGroup, Dataset: step.Group.Dataset, Field: step.Group.Field}
		var g *engine.Grouping
		g, err = h.engine.GroupBy(ctx, step.Group.Dataset, step.Group.Field)
		if err == nil {
			ev.Groups = groupIDs(g)
		}

	case step.Sort != nil:
		order := step.Sort.Order
		if order == "" {
			order = string(record.DefaultDirection)
		}
		ev = TraceEvent{Op: OpSort, Dataset: step.Sort.Dataset, Field: step.Sort.Field, Order: order}
		var recs []record.Record
		recs, err = h.engine.SortBy(ctx, step.Sort.Dataset, step.Sort.Field, order)
		if err == nil {
			ev.IDs = record.IDs(recs)
		}
	}

	ev.Seq = h.seq.Next()
	if err != nil {
		ev.Outcome = OutcomeError
		ev.Error = string(engine.KindOf(err))
		if ev.Error == "" {
			ev.Error = err.Error()
		}
	} else {
		ev.Outcome = OutcomeOK
	}
	result.AddEvent(ev)

	for _, msg := range checkExpect(step.Expect, ev) {
		result.AddError(fmt.Sprintf("steps[%d] %s: %s", i, ev.Op, msg))
	}

	h.logger.Debug("step completed",
		zap.Int("step", i),
		zap.String("op", ev.Op),
		zap.String("dataset", ev.Dataset),
		zap.String("outcome", ev.Outcome))
}

// checkExpect compares an executed step against its expect clause.
func checkExpect(expect *Expect, ev TraceEvent) []string {
	if expect == nil || expect.Error == "" {
		if ev.Outcome == OutcomeError {
			return []string{fmt.Sprintf("unexpected error %s", ev.Error)}
		}
	}
	if expect == nil {
		return nil
	}

	if expect.Error != "" {
		if ev.Outcome != OutcomeError {
			return []string{fmt.Sprintf("expected error %s, got success", expect.Error)}
		}
		if ev.Error != expect.Error {
			return []string{fmt.Sprintf("expected error %s, got %s", expect.Error, ev.Error)}
		}
		return nil
	}

	var errs []string
	if expect.IDs != nil && !slices.Equal(expect.IDs, ev.IDs) {
		errs = append(errs, fmt.Sprintf("expected ids %v, got %v", expect.IDs, ev.IDs))
	}
	if expect.Groups != nil && !maps.EqualFunc(expect.Groups, ev.Groups, slices.Equal[[]int64]) {
		errs = append(errs, fmt.Sprintf("expected groups %v, got %v", expect.Groups, ev.Groups))
	}
	return errs
}

func groupIDs(g *engine.Grouping) map[string][]int64 {
	out := make(map[string][]int64, g.Len())
	for _, key := range g.Keys {
		out[key] = record.IDs(g.Get(key))
	}
	return out
}
