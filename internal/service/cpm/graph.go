package cpm

import (
	"container/heap"
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

// Graph is an indexed, filtered view of one project's scheduling input.
// It holds only active edges and constraints whose endpoints exist.
type Graph struct {
	order       []domain.TaskID
	tasks       map[domain.TaskID]domain.Task
	incoming    map[domain.TaskID][]domain.Dependency
	outgoing    map[domain.TaskID][]domain.Dependency
	constraints map[domain.TaskID][]domain.Constraint
	edgeCount   int
	skipped     []domain.SkippedReference
}

// BuildGraph indexes tasks and drops inactive or dangling edges and
// constraints. Dangling references are logged and reported, never fatal.
func BuildGraph(ctx context.Context, tasks []domain.Task, deps []domain.Dependency, constraints []domain.Constraint) *Graph {
	g := &Graph{
		order:       make([]domain.TaskID, 0, len(tasks)),
		tasks:       make(map[domain.TaskID]domain.Task, len(tasks)),
		incoming:    make(map[domain.TaskID][]domain.Dependency),
		outgoing:    make(map[domain.TaskID][]domain.Dependency),
		constraints: make(map[domain.TaskID][]domain.Constraint),
	}

	for _, t := range tasks {
		if _, dup := g.tasks[t.ID]; dup {
			slog.WarnContext(ctx, "duplicate task id in scheduling input, keeping first",
				slog.Int64("task_id", int64(t.ID)),
			)
			continue
		}
		g.tasks[t.ID] = t
		g.order = append(g.order, t.ID)
	}

	for _, d := range deps {
		if !d.IsActive {
			continue
		}
		if d.Type == "" {
			d.Type = domain.FinishToStart
		}
		if !d.Type.IsValid() {
			slog.WarnContext(ctx, "ignoring dependency with unknown type",
				slog.Int64("dependency_id", d.ID),
				slog.String("type", d.Type.String()),
			)
			continue
		}
		if missing, ok := g.missingEndpoint(d); ok {
			g.skip(ctx, domain.SkippedReference{
				Kind:    domain.ReferenceDependency,
				ID:      d.ID,
				TaskID:  missing,
				Message: fmt.Sprintf("dependency %d references unknown task %d", d.ID, missing),
			})
			continue
		}
		g.outgoing[d.PredecessorID] = append(g.outgoing[d.PredecessorID], d)
		g.incoming[d.SuccessorID] = append(g.incoming[d.SuccessorID], d)
		g.edgeCount++
	}

	for _, c := range constraints {
		if !c.IsActive {
			continue
		}
		if _, ok := g.tasks[c.ActivityID]; !ok {
			g.skip(ctx, domain.SkippedReference{
				Kind:    domain.ReferenceConstraint,
				ID:      c.ID,
				TaskID:  c.ActivityID,
				Message: fmt.Sprintf("constraint %d references unknown task %d", c.ID, c.ActivityID),
			})
			continue
		}
		if !c.Type.IsValid() {
			slog.WarnContext(ctx, "ignoring constraint with unknown type",
				slog.Int64("constraint_id", c.ID),
				slog.String("type", c.Type.String()),
			)
			continue
		}
		g.constraints[c.ActivityID] = append(g.constraints[c.ActivityID], c)
	}

	// Bounds first, then must_* so a mandatory date always wins; within each
	// group lower priority applies first and the last applied wins.
	for id := range g.constraints {
		cs := g.constraints[id]
		sort.SliceStable(cs, func(i, j int) bool {
			mi, mj := cs[i].Type.IsMandatory(), cs[j].Type.IsMandatory()
			if mi != mj {
				return !mi
			}
			return cs[i].Priority < cs[j].Priority
		})
	}

	return g
}

func (g *Graph) missingEndpoint(d domain.Dependency) (domain.TaskID, bool) {
	if _, ok := g.tasks[d.PredecessorID]; !ok {
		return d.PredecessorID, true
	}
	if _, ok := g.tasks[d.SuccessorID]; !ok {
		return d.SuccessorID, true
	}
	return 0, false
}

func (g *Graph) skip(ctx context.Context, ref domain.SkippedReference) {
	slog.WarnContext(ctx, "skipping dangling reference",
		slog.String("kind", string(ref.Kind)),
		slog.Int64("id", ref.ID),
		slog.Int64("task_id", int64(ref.TaskID)),
	)
	g.skipped = append(g.skipped, ref)
}

func (g *Graph) TaskCount() int {
	return len(g.order)
}

func (g *Graph) EdgeCount() int {
	return g.edgeCount
}

func (g *Graph) Skipped() []domain.SkippedReference {
	return g.skipped
}

// Tasks returns the indexed tasks in input order.
func (g *Graph) Tasks() []domain.Task {
	out := make([]domain.Task, 0, len(g.order))
	for _, id := range g.order {
		out = append(out, g.tasks[id])
	}
	return out
}

// Dependencies returns the retained active edges.
func (g *Graph) Dependencies() []domain.Dependency {
	out := make([]domain.Dependency, 0, g.edgeCount)
	for _, id := range g.order {
		out = append(out, g.outgoing[id]...)
	}
	return out
}

func (g *Graph) duration(id domain.TaskID, opts Options) int {
	if d := g.tasks[id].DurationDays; d > 0 {
		return d
	}
	return opts.DefaultDurationDays
}

// topoOrder is Kahn's algorithm. Among ready tasks the earliest start is
// taken first, ties broken by id. Tasks on a cycle are left out.
func (g *Graph) topoOrder(earlyStart map[domain.TaskID]time.Time) []domain.TaskID {
	inDegree := make(map[domain.TaskID]int, len(g.order))
	q := &readyQueue{}
	for _, id := range g.order {
		inDegree[id] = len(g.incoming[id])
		if inDegree[id] == 0 {
			q.items = append(q.items, &readyItem{id: id, earlyStart: earlyStart[id], index: len(q.items)})
		}
	}
	heap.Init(q)

	order := make([]domain.TaskID, 0, len(g.order))
	for q.Len() > 0 {
		node := heap.Pop(q).(*readyItem).id
		order = append(order, node)

		for _, e := range g.outgoing[node] {
			inDegree[e.SuccessorID]--
			if inDegree[e.SuccessorID] == 0 {
				heap.Push(q, &readyItem{id: e.SuccessorID, earlyStart: earlyStart[e.SuccessorID]})
			}
		}
	}

	return order
}
