package cpm

import (
	"fmt"
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

// window is a start/finish pair in whole days.
type window struct {
	start  time.Time
	finish time.Time
}

type forwardWalk struct {
	g          *Graph
	opts       Options
	base       time.Time
	memo       map[domain.TaskID]window
	inProgress map[domain.TaskID]bool
}

// forwardPass computes early start/finish for every task by resolving
// predecessors first. The memo and in-progress set live for one call only.
func forwardPass(g *Graph, opts Options) (map[domain.TaskID]window, error) {
	w := &forwardWalk{
		g:          g,
		opts:       opts,
		base:       opts.baseStart(),
		memo:       make(map[domain.TaskID]window, len(g.order)),
		inProgress: make(map[domain.TaskID]bool),
	}

	for _, id := range g.order {
		if _, err := w.earliest(id, 0); err != nil {
			return nil, err
		}
	}

	return w.memo, nil
}

func (w *forwardWalk) earliest(id domain.TaskID, depth int) (window, error) {
	if v, ok := w.memo[id]; ok {
		return v, nil
	}
	if w.inProgress[id] {
		return window{}, fmt.Errorf("forward pass at task %d: %w", id, domain.ErrWalkReentered)
	}
	if depth > w.opts.MaxWalkDepth {
		return window{}, fmt.Errorf("forward pass at task %d: %w", id, domain.ErrWalkDepthExceeded)
	}

	w.inProgress[id] = true
	defer delete(w.inProgress, id)

	duration := w.g.duration(id, w.opts)

	var es time.Time
	incoming := w.g.incoming[id]
	if len(incoming) == 0 {
		es = w.base
		if ps := w.g.tasks[id].PlannedStart; ps != nil {
			es = Day(*ps)
		}
	} else {
		for i, e := range incoming {
			pred, err := w.earliest(e.PredecessorID, depth+1)
			if err != nil {
				return window{}, err
			}

			gate := pred.start
			if e.Type.GatesOnPredecessorFinish() {
				gate = pred.finish
			}
			candidate := addDays(gate, e.LagDays)
			if e.Type.ConstrainsSuccessorFinish() {
				candidate = addDays(candidate, -duration)
			}

			if i == 0 || candidate.After(es) {
				es = candidate
			}
		}
	}

	es = applyForwardConstraints(es, duration, w.g.constraints[id])

	v := window{start: es, finish: addDays(es, duration)}
	w.memo[id] = v
	return v, nil
}
