package schedule

import (
	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

// RecalculateResult is returned for every run that got as far as
// computing dates, including runs with failed writes.
type RecalculateResult struct {
	Schedule     *domain.ComputedSchedule
	WriteErrors  []domain.WriteError
	WrittenCount int
}

type EnqueueResult struct {
	TaskName      string
	AlreadyQueued bool
}
