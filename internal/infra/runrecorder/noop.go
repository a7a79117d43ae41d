package runrecorder

import (
	"context"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.ScheduleRunRecorder {
	return noopRecorder{}
}

func (noopRecorder) RecordRun(context.Context, domain.ScheduleRunRecord) error {
	return nil
}

func (noopRecorder) Flush(context.Context) error {
	return nil
}

func (noopRecorder) Close() error {
	return nil
}
