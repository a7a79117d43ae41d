// Package cpm computes critical-path schedules over a project's task graph:
// a forward pass for early dates, a backward pass for late dates bounded by
// the project finish horizon, and a reducer that derives total float and the
// critical flag.
//
// The engine is a pure function of its input. Every call builds its own
// memo tables, so concurrent calls for different projects share nothing.
// Callers must prove the graph acyclic first (see package cycle); the walks
// still refuse to re-enter a task in progress.
package cpm

import (
	"context"
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-project-scheduling/internal/observability/tracing"
)

type Schedule struct {
	Results       []domain.ScheduleResult
	ProjectStart  time.Time
	ProjectFinish time.Time
	CriticalPath  []domain.TaskID
	Skipped       []domain.SkippedReference
}

// Compute builds the graph and runs both passes.
func Compute(ctx context.Context, tasks []domain.Task, deps []domain.Dependency, constraints []domain.Constraint, opts Options) (*Schedule, error) {
	return ComputeGraph(ctx, BuildGraph(ctx, tasks, deps, constraints), opts)
}

// ComputeGraph runs the forward pass, the backward pass and the reducer over
// an already built graph.
func ComputeGraph(ctx context.Context, g *Graph, opts Options) (*Schedule, error) {
	opts = opts.withDefaults()

	if g.TaskCount() == 0 {
		return &Schedule{
			Results:      []domain.ScheduleResult{},
			CriticalPath: []domain.TaskID{},
			Skipped:      g.Skipped(),
		}, nil
	}

	_, fwdSpan := tracing.StartPassSpan(ctx, "forward_pass", g.TaskCount(), g.EdgeCount())
	forward, err := forwardPass(g, opts)
	tracing.EndPassSpan(fwdSpan, err)
	if err != nil {
		return nil, err
	}

	projectFinish := projectHorizon(forward)

	_, bwdSpan := tracing.StartPassSpan(ctx, "backward_pass", g.TaskCount(), g.EdgeCount())
	backward, err := backwardPass(g, opts, projectFinish)
	tracing.EndPassSpan(bwdSpan, err)
	if err != nil {
		return nil, err
	}

	results := reduce(g, forward, backward)

	projectStart := results[0].EarlyStart
	for _, r := range results[1:] {
		projectStart = minTime(projectStart, r.EarlyStart)
	}

	return &Schedule{
		Results:       results,
		ProjectStart:  projectStart,
		ProjectFinish: projectFinish,
		CriticalPath:  criticalPath(g, results),
		Skipped:       g.Skipped(),
	}, nil
}

// CriticalCount returns the number of tasks flagged critical.
func (s *Schedule) CriticalCount() int {
	n := 0
	for _, r := range s.Results {
		if r.IsCritical {
			n++
		}
	}
	return n
}
