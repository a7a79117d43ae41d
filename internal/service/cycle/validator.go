// Package cycle proves that the active dependency graph of a project is
// acyclic before any date arithmetic runs.
package cycle

import (
	"sort"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

const (
	white = iota // unvisited
	gray         // on the current DFS stack
	black        // finished
)

// Validate walks every task as a DFS root (unless already visited) and
// returns one CycleError per back edge found. An empty result means the
// active edges form a DAG. Inactive edges, edges of an unknown type and
// edges touching unknown tasks are ignored, matching what the scheduler
// keeps. An empty type counts as finish-to-start.
func Validate(tasks []domain.Task, deps []domain.Dependency) []domain.CycleError {
	known := make(map[domain.TaskID]bool, len(tasks))
	ids := make([]domain.TaskID, 0, len(tasks))
	for _, t := range tasks {
		if known[t.ID] {
			continue
		}
		known[t.ID] = true
		ids = append(ids, t.ID)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	adj := make(map[domain.TaskID][]domain.Dependency)
	for _, d := range deps {
		if !d.IsActive || !known[d.PredecessorID] || !known[d.SuccessorID] {
			continue
		}
		if d.Type != "" && !d.Type.IsValid() {
			continue
		}
		adj[d.PredecessorID] = append(adj[d.PredecessorID], d)
	}
	for id := range adj {
		edges := adj[id]
		sort.SliceStable(edges, func(i, j int) bool {
			if edges[i].SuccessorID != edges[j].SuccessorID {
				return edges[i].SuccessorID < edges[j].SuccessorID
			}
			return edges[i].ID < edges[j].ID
		})
	}

	w := &walker{
		adj:     adj,
		color:   make(map[domain.TaskID]int, len(ids)),
		entered: make(map[domain.TaskID]int, len(ids)),
	}
	for _, id := range ids {
		if w.color[id] == white {
			w.visit(id)
		}
	}

	return w.cycles
}

type walker struct {
	adj   map[domain.TaskID][]domain.Dependency
	color map[domain.TaskID]int
	// entered holds len(path) at the moment a gray node was entered, so the
	// edges of a cycle closing on it are path[entered[node]:].
	entered map[domain.TaskID]int
	path    []domain.Dependency
	cycles  []domain.CycleError
}

func (w *walker) visit(node domain.TaskID) {
	w.color[node] = gray
	w.entered[node] = len(w.path)

	for _, edge := range w.adj[node] {
		next := edge.SuccessorID
		switch w.color[next] {
		case gray:
			start := w.entered[next]
			cycleEdges := make([]domain.Dependency, 0, len(w.path)-start+1)
			cycleEdges = append(cycleEdges, w.path[start:]...)
			cycleEdges = append(cycleEdges, edge)
			w.cycles = append(w.cycles, domain.CycleError{
				Closing: edge,
				Edges:   cycleEdges,
			})
		case white:
			w.path = append(w.path, edge)
			w.visit(next)
			w.path = w.path[:len(w.path)-1]
		}
	}

	w.color[node] = black
	delete(w.entered, node)
}
