package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=schedule_store.go -destination=schedule_store_mock.go -package=domain

// ComputedSchedule is a finished recompute as cached and served to readers.
type ComputedSchedule struct {
	RunID         string             `json:"run_id"`
	ProjectID     ProjectID          `json:"project_id"`
	ProjectStart  time.Time          `json:"project_start"`
	ProjectFinish time.Time          `json:"project_finish"`
	CriticalPath  []TaskID           `json:"critical_path"`
	Results       []ScheduleResult   `json:"results"`
	Skipped       []SkippedReference `json:"skipped,omitempty"`
	ComputedAt    time.Time          `json:"computed_at"`
}

type ScheduleCache interface {
	SaveSchedule(ctx context.Context, schedule *ComputedSchedule) error
	GetSchedule(ctx context.Context, projectID ProjectID) (*ComputedSchedule, error)
	DeleteSchedule(ctx context.Context, projectID ProjectID) error
}

// ProjectLocker serializes recomputes per project.
type ProjectLocker interface {
	// Acquire returns ErrProjectBusy when another holder owns the lock.
	Acquire(ctx context.Context, projectID ProjectID, token string) error
	Release(ctx context.Context, projectID ProjectID, token string) error
}
