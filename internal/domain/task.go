package domain

import (
	"time"
)

// TaskID identifies a schedulable activity within a project.
type TaskID int64

// ProjectID scopes tasks, dependencies and constraints to one dashboard.
type ProjectID int64

type Task struct {
	ID              TaskID
	ProjectID       ProjectID
	Name            string
	PlannedStart    *time.Time
	PlannedFinish   *time.Time
	DurationDays    int // zero means unset
	IsAutoScheduled bool

	// Computed by the scheduling engine, overwritten on every run.
	EarlyStart     *time.Time
	EarlyFinish    *time.Time
	LateStart      *time.Time
	LateFinish     *time.Time
	TotalFloatDays *int
	IsCritical     bool
}

// DependencyType selects which date of the predecessor gates which date of
// the successor.
type DependencyType string

const (
	FinishToStart  DependencyType = "finish_to_start"
	StartToStart   DependencyType = "start_to_start"
	FinishToFinish DependencyType = "finish_to_finish"
	StartToFinish  DependencyType = "start_to_finish"
)

func (t DependencyType) String() string {
	return string(t)
}

func (t DependencyType) IsValid() bool {
	switch t {
	case FinishToStart, StartToStart, FinishToFinish, StartToFinish:
		return true
	default:
		return false
	}
}

// GatesOnPredecessorFinish reports whether the predecessor's finish date
// gates the successor.
func (t DependencyType) GatesOnPredecessorFinish() bool {
	return t == FinishToStart || t == FinishToFinish
}

// ConstrainsSuccessorFinish reports whether the edge bounds the successor's
// finish date rather than its start date.
func (t DependencyType) ConstrainsSuccessorFinish() bool {
	return t == FinishToFinish || t == StartToFinish
}

type Dependency struct {
	ID            int64
	ProjectID     ProjectID
	PredecessorID TaskID
	SuccessorID   TaskID
	Type          DependencyType
	LagDays       int
	IsActive      bool
}

func (d Dependency) IsSelfLoop() bool {
	return d.PredecessorID == d.SuccessorID
}

type ConstraintType string

const (
	MustStartOn         ConstraintType = "must_start_on"
	MustFinishOn        ConstraintType = "must_finish_on"
	StartNoEarlierThan  ConstraintType = "start_no_earlier_than"
	StartNoLaterThan    ConstraintType = "start_no_later_than"
	FinishNoEarlierThan ConstraintType = "finish_no_earlier_than"
	FinishNoLaterThan   ConstraintType = "finish_no_later_than"
)

func (t ConstraintType) String() string {
	return string(t)
}

func (t ConstraintType) IsValid() bool {
	switch t {
	case MustStartOn, MustFinishOn, StartNoEarlierThan, StartNoLaterThan, FinishNoEarlierThan, FinishNoLaterThan:
		return true
	default:
		return false
	}
}

// IsMandatory reports whether the constraint pins a date instead of bounding it.
func (t ConstraintType) IsMandatory() bool {
	return t == MustStartOn || t == MustFinishOn
}

type Constraint struct {
	ID         int64
	ProjectID  ProjectID
	ActivityID TaskID
	Type       ConstraintType
	Date       time.Time
	Priority   int
	IsActive   bool
}
