package cpm

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

type backwardWalk struct {
	g             *Graph
	opts          Options
	projectFinish time.Time
	memo          map[domain.TaskID]window
	inProgress    map[domain.TaskID]bool
}

// projectHorizon is the latest early finish across all tasks.
func projectHorizon(forward map[domain.TaskID]window) time.Time {
	var horizon time.Time
	first := true
	for _, v := range forward {
		if first || v.finish.After(horizon) {
			horizon = v.finish
			first = false
		}
	}
	return horizon
}

// backwardPass computes late start/finish for every task by resolving
// successors first, bounded by the project finish horizon.
func backwardPass(g *Graph, opts Options, projectFinish time.Time) (map[domain.TaskID]window, error) {
	w := &backwardWalk{
		g:             g,
		opts:          opts,
		projectFinish: projectFinish,
		memo:          make(map[domain.TaskID]window, len(g.order)),
		inProgress:    make(map[domain.TaskID]bool),
	}

	for _, id := range g.order {
		if _, err := w.latest(id, 0); err != nil {
			return nil, err
		}
	}

	return w.memo, nil
}

func (w *backwardWalk) latest(id domain.TaskID, depth int) (window, error) {
	if v, ok := w.memo[id]; ok {
		return v, nil
	}
	if w.inProgress[id] {
		return window{}, fmt.Errorf("backward pass at task %d: %w", id, domain.ErrWalkReentered)
	}
	if depth > w.opts.MaxWalkDepth {
		return window{}, fmt.Errorf("backward pass at task %d: %w", id, domain.ErrWalkDepthExceeded)
	}

	w.inProgress[id] = true
	defer delete(w.inProgress, id)

	duration := w.g.duration(id, w.opts)

	// No task may finish after the horizon; successors only pull earlier.
	lf := w.projectFinish
	for _, e := range w.g.outgoing[id] {
		succ, err := w.latest(e.SuccessorID, depth+1)
		if err != nil {
			return window{}, err
		}

		gate := succ.start
		if e.Type.ConstrainsSuccessorFinish() {
			gate = succ.finish
		}
		candidate := addDays(gate, -e.LagDays)
		if !e.Type.GatesOnPredecessorFinish() {
			candidate = addDays(candidate, duration)
		}

		lf = minTime(lf, candidate)
	}

	lf = applyBackwardConstraints(lf, duration, w.g.constraints[id])

	v := window{start: addDays(lf, -duration), finish: lf}
	w.memo[id] = v
	return v, nil
}
