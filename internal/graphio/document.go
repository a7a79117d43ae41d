// Package graphio converts project graphs and computed schedules between the
// domain model and their JSON/YAML documents.
package graphio

import (
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

var (
	ErrInvalidDate    = errors.New("invalid date")
	ErrMissingTaskID  = errors.New("task id is required")
	ErrInvalidGraph   = errors.New("invalid graph document")
	ErrUnknownDepType = errors.New("unknown dependency type")
)

// GraphDocument is a project graph as written by hand or sent over HTTP.
// Dates are plain calendar dates (2006-01-02) or RFC3339 timestamps.
type GraphDocument struct {
	ProjectID    int64           `json:"project_id" yaml:"project_id"`
	ProjectStart string          `json:"project_start,omitempty" yaml:"project_start,omitempty"`
	Tasks        []TaskDoc       `json:"tasks" yaml:"tasks"`
	Dependencies []DependencyDoc `json:"dependencies,omitempty" yaml:"dependencies,omitempty"`
	Constraints  []ConstraintDoc `json:"constraints,omitempty" yaml:"constraints,omitempty"`
}

type TaskDoc struct {
	ID              int64  `json:"id" yaml:"id"`
	Name            string `json:"name,omitempty" yaml:"name,omitempty"`
	PlannedStart    string `json:"planned_start,omitempty" yaml:"planned_start,omitempty"`
	PlannedFinish   string `json:"planned_finish,omitempty" yaml:"planned_finish,omitempty"`
	DurationDays    int    `json:"duration_days,omitempty" yaml:"duration_days,omitempty"`
	IsAutoScheduled *bool  `json:"is_auto_scheduled,omitempty" yaml:"is_auto_scheduled,omitempty"`
}

type DependencyDoc struct {
	ID            int64  `json:"id" yaml:"id"`
	PredecessorID int64  `json:"predecessor_id" yaml:"predecessor_id"`
	SuccessorID   int64  `json:"successor_id" yaml:"successor_id"`
	Type          string `json:"type,omitempty" yaml:"type,omitempty"`
	LagDays       int    `json:"lag_days,omitempty" yaml:"lag_days,omitempty"`
	IsActive      *bool  `json:"is_active,omitempty" yaml:"is_active,omitempty"`
}

type ConstraintDoc struct {
	ID         int64  `json:"id" yaml:"id"`
	ActivityID int64  `json:"activity_id" yaml:"activity_id"`
	Type       string `json:"type" yaml:"type"`
	Date       string `json:"date" yaml:"date"`
	Priority   int    `json:"priority,omitempty" yaml:"priority,omitempty"`
	IsActive   *bool  `json:"is_active,omitempty" yaml:"is_active,omitempty"`
}

// Decode reads a YAML document. JSON input is accepted as well.
func Decode(r io.Reader) (*GraphDocument, error) {
	var doc GraphDocument
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty document", ErrInvalidGraph)
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidGraph, err)
	}
	return &doc, nil
}

// ParseDate accepts a plain date or an RFC3339 timestamp and returns UTC
// midnight of that day.
func ParseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t.UTC().Truncate(24 * time.Hour), nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDate, v)
}

func optionalDate(field, v string) (*time.Time, error) {
	if v == "" {
		return nil, nil
	}
	t, err := ParseDate(v)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", field, err)
	}
	return &t, nil
}

func boolOr(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

// ToDomain validates the document shape and converts it. Omitted
// is_auto_scheduled and is_active default to true.
func (d *GraphDocument) ToDomain() (*domain.ProjectGraph, error) {
	pid := domain.ProjectID(d.ProjectID)
	graph := &domain.ProjectGraph{
		ProjectID:    pid,
		Tasks:        make([]domain.Task, 0, len(d.Tasks)),
		Dependencies: make([]domain.Dependency, 0, len(d.Dependencies)),
		Constraints:  make([]domain.Constraint, 0, len(d.Constraints)),
	}

	var errs []error
	for i, t := range d.Tasks {
		if t.ID == 0 {
			errs = append(errs, fmt.Errorf("tasks[%d]: %w", i, ErrMissingTaskID))
			continue
		}
		start, err := optionalDate(fmt.Sprintf("tasks[%d].planned_start", i), t.PlannedStart)
		if err != nil {
			errs = append(errs, err)
		}
		finish, err := optionalDate(fmt.Sprintf("tasks[%d].planned_finish", i), t.PlannedFinish)
		if err != nil {
			errs = append(errs, err)
		}
		graph.Tasks = append(graph.Tasks, domain.Task{
			ID:              domain.TaskID(t.ID),
			ProjectID:       pid,
			Name:            t.Name,
			PlannedStart:    start,
			PlannedFinish:   finish,
			DurationDays:    t.DurationDays,
			IsAutoScheduled: boolOr(t.IsAutoScheduled, true),
		})
	}

	for i, dep := range d.Dependencies {
		typ := domain.DependencyType(dep.Type)
		if typ == "" {
			typ = domain.FinishToStart
		}
		if !typ.IsValid() {
			errs = append(errs, fmt.Errorf("dependencies[%d]: %w: %q", i, ErrUnknownDepType, dep.Type))
			continue
		}
		id := dep.ID
		if id == 0 {
			id = int64(i + 1)
		}
		graph.Dependencies = append(graph.Dependencies, domain.Dependency{
			ID:            id,
			ProjectID:     pid,
			PredecessorID: domain.TaskID(dep.PredecessorID),
			SuccessorID:   domain.TaskID(dep.SuccessorID),
			Type:          typ,
			LagDays:       dep.LagDays,
			IsActive:      boolOr(dep.IsActive, true),
		})
	}

	for i, c := range d.Constraints {
		date, err := ParseDate(c.Date)
		if err != nil {
			errs = append(errs, fmt.Errorf("constraints[%d].date: %w", i, err))
			continue
		}
		id := c.ID
		if id == 0 {
			id = int64(i + 1)
		}
		graph.Constraints = append(graph.Constraints, domain.Constraint{
			ID:         id,
			ProjectID:  pid,
			ActivityID: domain.TaskID(c.ActivityID),
			Type:       domain.ConstraintType(c.Type),
			Date:       date,
			Priority:   c.Priority,
			IsActive:   boolOr(c.IsActive, true),
		})
	}

	if err := errors.Join(errs...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidGraph, err)
	}
	return graph, nil
}

// StartDate returns the document's project start, zero when unset.
func (d *GraphDocument) StartDate() (time.Time, error) {
	if d.ProjectStart == "" {
		return time.Time{}, nil
	}
	return ParseDate(d.ProjectStart)
}
