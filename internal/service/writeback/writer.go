// Package writeback persists computed schedules for auto-scheduled tasks.
package writeback

import (
	"context"
	"log/slog"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

type Writer struct {
	repo domain.GraphRepository
}

func NewWriter(repo domain.GraphRepository) *Writer {
	return &Writer{repo: repo}
}

// Result summarizes one write-back.
type Result struct {
	Written  int
	Manual   int
	Failures []domain.WriteError
}

// WriteBack stores each result whose task is auto-scheduled. A failed write
// is logged and collected; the remaining tasks are still written.
func (w *Writer) WriteBack(ctx context.Context, projectID domain.ProjectID, results []domain.ScheduleResult, tasks []domain.Task) Result {
	auto := make(map[domain.TaskID]bool, len(tasks))
	for _, t := range tasks {
		auto[t.ID] = t.IsAutoScheduled
	}

	var res Result
	for _, r := range results {
		if !auto[r.TaskID] {
			res.Manual++
			continue
		}

		if err := ctx.Err(); err != nil {
			res.Failures = append(res.Failures, domain.WriteError{TaskID: r.TaskID, Err: err})
			continue
		}

		if err := w.repo.UpdateTaskSchedule(ctx, projectID, domain.NewScheduleUpdate(r)); err != nil {
			slog.WarnContext(ctx, "failed to write task schedule",
				slog.Int64("project_id", int64(projectID)),
				slog.Int64("task_id", int64(r.TaskID)),
				slog.String("error", err.Error()),
			)
			res.Failures = append(res.Failures, domain.WriteError{TaskID: r.TaskID, Err: err})
			continue
		}
		res.Written++
	}

	slog.DebugContext(ctx, "schedule write-back finished",
		slog.Int64("project_id", int64(projectID)),
		slog.Int("written", res.Written),
		slog.Int("manual", res.Manual),
		slog.Int("failed", len(res.Failures)),
	)

	return res
}
