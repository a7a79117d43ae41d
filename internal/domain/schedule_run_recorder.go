package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=schedule_run_recorder.go -destination=schedule_run_recorder_mock.go -package=domain

type RunOutcome string

const (
	RunOutcomeSucceeded RunOutcome = "succeeded"
	RunOutcomePartial   RunOutcome = "partial"
	RunOutcomeCyclic    RunOutcome = "cyclic"
	RunOutcomeBusy      RunOutcome = "busy"
	RunOutcomeFailed    RunOutcome = "failed"
)

func (o RunOutcome) String() string {
	return string(o)
}

type ScheduleRunRecord struct {
	RunID         string
	ProjectID     ProjectID
	Outcome       RunOutcome
	TaskCount     int
	EdgeCount     int
	CriticalCount int
	CycleCount    int
	SkippedCount  int
	WriteCount    int
	WriteFailures int
	ProjectStart  time.Time
	ProjectFinish time.Time
	Duration      time.Duration
}

type ScheduleRunRecorder interface {
	RecordRun(ctx context.Context, record ScheduleRunRecord) error
	Flush(ctx context.Context) error
	Close() error
}
