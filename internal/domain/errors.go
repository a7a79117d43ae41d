package domain

import "errors"

var (
	ErrCyclicGraph       = errors.New("dependency graph contains a cycle")
	ErrTaskNotFound      = errors.New("task not found")
	ErrScheduleNotFound  = errors.New("schedule not found")
	ErrProjectBusy       = errors.New("schedule recompute already running for project")
	ErrLockNotHeld       = errors.New("project lock not held")
	ErrWriteBackFailed   = errors.New("schedule write-back failed")
	ErrWalkDepthExceeded = errors.New("dependency walk exceeded maximum depth")
	ErrWalkReentered     = errors.New("dependency walk re-entered a task in progress")
)
