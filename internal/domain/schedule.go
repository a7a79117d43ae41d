package domain

import (
	"fmt"
	"strings"
	"time"
)

// ScheduleResult is the engine's per-task output.
type ScheduleResult struct {
	TaskID         TaskID    `json:"task_id"`
	EarlyStart     time.Time `json:"early_start"`
	EarlyFinish    time.Time `json:"early_finish"`
	LateStart      time.Time `json:"late_start"`
	LateFinish     time.Time `json:"late_finish"`
	TotalFloatDays int       `json:"total_float_days"`
	IsCritical     bool      `json:"is_critical"`
}

// ReferenceKind names the kind of record that carried a dangling reference.
type ReferenceKind string

const (
	ReferenceDependency ReferenceKind = "dependency"
	ReferenceConstraint ReferenceKind = "constraint"
)

// SkippedReference records an edge or constraint dropped because it points at
// a task outside the loaded set.
type SkippedReference struct {
	Kind    ReferenceKind `json:"kind"`
	ID      int64         `json:"id"`
	TaskID  TaskID        `json:"task_id"`
	Message string        `json:"message"`
}

// CycleError describes one cycle in the active dependency graph. Closing is
// the back edge that closed it; Edges lists every edge on the cycle in walk
// order, ending with Closing.
type CycleError struct {
	Closing Dependency
	Edges   []Dependency
}

func (e CycleError) Error() string {
	parts := make([]string, 0, len(e.Edges)+1)
	if len(e.Edges) > 0 {
		parts = append(parts, fmt.Sprintf("%d", e.Edges[0].PredecessorID))
	}
	for _, edge := range e.Edges {
		parts = append(parts, fmt.Sprintf("%d", edge.SuccessorID))
	}
	return fmt.Sprintf("dependency cycle closed by edge %d (%d -> %d): %s",
		e.Closing.ID, e.Closing.PredecessorID, e.Closing.SuccessorID, strings.Join(parts, " -> "))
}

// CycleDetectedError is the structural error returned when validation fails.
type CycleDetectedError struct {
	Cycles []CycleError
}

func (e *CycleDetectedError) Error() string {
	msgs := make([]string, 0, len(e.Cycles))
	for _, c := range e.Cycles {
		msgs = append(msgs, c.Error())
	}
	return fmt.Sprintf("%d dependency cycle(s) detected: %s", len(e.Cycles), strings.Join(msgs, "; "))
}

func (e *CycleDetectedError) Is(target error) bool {
	return target == ErrCyclicGraph
}

// OffendingEdges returns every distinct edge participating in a cycle,
// in first-seen order.
func (e *CycleDetectedError) OffendingEdges() []Dependency {
	seen := make(map[Dependency]bool)
	edges := make([]Dependency, 0)
	for _, c := range e.Cycles {
		for _, edge := range c.Edges {
			if seen[edge] {
				continue
			}
			seen[edge] = true
			edges = append(edges, edge)
		}
	}
	return edges
}

// WriteError records a failed write-back for one task.
type WriteError struct {
	TaskID TaskID
	Err    error
}

func (e WriteError) Error() string {
	return fmt.Sprintf("write schedule for task %d: %v", e.TaskID, e.Err)
}

func (e WriteError) Unwrap() error {
	return e.Err
}

// ScheduleUpdate is the subset of task fields the writer persists.
type ScheduleUpdate struct {
	TaskID         TaskID
	PlannedStart   time.Time
	PlannedFinish  time.Time
	EarlyStart     time.Time
	EarlyFinish    time.Time
	LateStart      time.Time
	LateFinish     time.Time
	TotalFloatDays int
	CriticalPath   bool
}

func NewScheduleUpdate(r ScheduleResult) ScheduleUpdate {
	return ScheduleUpdate{
		TaskID:         r.TaskID,
		PlannedStart:   r.EarlyStart,
		PlannedFinish:  r.EarlyFinish,
		EarlyStart:     r.EarlyStart,
		EarlyFinish:    r.EarlyFinish,
		LateStart:      r.LateStart,
		LateFinish:     r.LateFinish,
		TotalFloatDays: r.TotalFloatDays,
		CriticalPath:   r.IsCritical,
	}
}
