package graphio

import (
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

// ScheduleView is the wire form of a computed schedule. Dates are rendered
// as calendar days.
type ScheduleView struct {
	RunID         string          `json:"run_id,omitempty" yaml:"run_id,omitempty"`
	ProjectID     int64           `json:"project_id" yaml:"project_id"`
	ProjectStart  string          `json:"project_start" yaml:"project_start"`
	ProjectFinish string          `json:"project_finish" yaml:"project_finish"`
	CriticalPath  []int64         `json:"critical_path" yaml:"critical_path"`
	Results       []ResultView    `json:"results" yaml:"results"`
	Skipped       []SkippedView   `json:"skipped,omitempty" yaml:"skipped,omitempty"`
	WrittenCount  *int            `json:"written_count,omitempty" yaml:"written_count,omitempty"`
	WriteErrors   []WriteErrorDoc `json:"write_errors,omitempty" yaml:"write_errors,omitempty"`
	ComputedAt    *time.Time      `json:"computed_at,omitempty" yaml:"computed_at,omitempty"`
}

type ResultView struct {
	TaskID         int64  `json:"task_id" yaml:"task_id"`
	EarlyStart     string `json:"early_start" yaml:"early_start"`
	EarlyFinish    string `json:"early_finish" yaml:"early_finish"`
	LateStart      string `json:"late_start" yaml:"late_start"`
	LateFinish     string `json:"late_finish" yaml:"late_finish"`
	TotalFloatDays int    `json:"total_float_days" yaml:"total_float_days"`
	IsCritical     bool   `json:"is_critical" yaml:"is_critical"`
}

type SkippedView struct {
	Kind    string `json:"kind" yaml:"kind"`
	ID      int64  `json:"id" yaml:"id"`
	TaskID  int64  `json:"task_id" yaml:"task_id"`
	Message string `json:"message" yaml:"message"`
}

type WriteErrorDoc struct {
	TaskID int64  `json:"task_id" yaml:"task_id"`
	Error  string `json:"error" yaml:"error"`
}

// EdgeView identifies one dependency in error reports.
type EdgeView struct {
	ID            int64  `json:"id" yaml:"id"`
	PredecessorID int64  `json:"predecessor_id" yaml:"predecessor_id"`
	SuccessorID   int64  `json:"successor_id" yaml:"successor_id"`
	Type          string `json:"type" yaml:"type"`
}

type CycleView struct {
	ClosingEdge EdgeView   `json:"closing_edge" yaml:"closing_edge"`
	Edges       []EdgeView `json:"edges" yaml:"edges"`
	Message     string     `json:"message" yaml:"message"`
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.DateOnly)
}

func NewScheduleView(s *domain.ComputedSchedule) ScheduleView {
	view := ScheduleView{
		RunID:         s.RunID,
		ProjectID:     int64(s.ProjectID),
		ProjectStart:  formatDate(s.ProjectStart),
		ProjectFinish: formatDate(s.ProjectFinish),
		CriticalPath:  make([]int64, 0, len(s.CriticalPath)),
		Results:       make([]ResultView, 0, len(s.Results)),
	}
	if !s.ComputedAt.IsZero() {
		at := s.ComputedAt.UTC()
		view.ComputedAt = &at
	}
	for _, id := range s.CriticalPath {
		view.CriticalPath = append(view.CriticalPath, int64(id))
	}
	for _, r := range s.Results {
		view.Results = append(view.Results, ResultView{
			TaskID:         int64(r.TaskID),
			EarlyStart:     formatDate(r.EarlyStart),
			EarlyFinish:    formatDate(r.EarlyFinish),
			LateStart:      formatDate(r.LateStart),
			LateFinish:     formatDate(r.LateFinish),
			TotalFloatDays: r.TotalFloatDays,
			IsCritical:     r.IsCritical,
		})
	}
	for _, sk := range s.Skipped {
		view.Skipped = append(view.Skipped, SkippedView{
			Kind:    string(sk.Kind),
			ID:      sk.ID,
			TaskID:  int64(sk.TaskID),
			Message: sk.Message,
		})
	}
	return view
}

// WithWrites attaches write-back outcome to the view.
func (v ScheduleView) WithWrites(written int, failures []domain.WriteError) ScheduleView {
	v.WrittenCount = &written
	for _, f := range failures {
		v.WriteErrors = append(v.WriteErrors, WriteErrorDoc{
			TaskID: int64(f.TaskID),
			Error:  f.Err.Error(),
		})
	}
	return v
}

func NewEdgeView(d domain.Dependency) EdgeView {
	return EdgeView{
		ID:            d.ID,
		PredecessorID: int64(d.PredecessorID),
		SuccessorID:   int64(d.SuccessorID),
		Type:          d.Type.String(),
	}
}

func NewCycleViews(err *domain.CycleDetectedError) []CycleView {
	views := make([]CycleView, 0, len(err.Cycles))
	for _, c := range err.Cycles {
		edges := make([]EdgeView, 0, len(c.Edges))
		for _, e := range c.Edges {
			edges = append(edges, NewEdgeView(e))
		}
		views = append(views, CycleView{
			ClosingEdge: NewEdgeView(c.Closing),
			Edges:       edges,
			Message:     c.Error(),
		})
	}
	return views
}
