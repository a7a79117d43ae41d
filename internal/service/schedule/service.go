// Package schedule orchestrates a whole-project recompute: lock, load,
// validate, compute, write back and publish.
package schedule

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-project-scheduling/internal/infra/recomputequeue"
	"github.com/KasumiMercury/primind-project-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-project-scheduling/internal/observability/tracing"
	"github.com/KasumiMercury/primind-project-scheduling/internal/service/cpm"
	"github.com/KasumiMercury/primind-project-scheduling/internal/service/cycle"
	"github.com/KasumiMercury/primind-project-scheduling/internal/service/writeback"
)

type Service struct {
	repo     domain.GraphRepository
	locker   domain.ProjectLocker
	cache    domain.ScheduleCache
	recorder domain.ScheduleRunRecorder
	queue    recomputequeue.Queue
	writer   *writeback.Writer
	metrics  *metrics.ScheduleMetrics
	engine   cpm.Options
	window   time.Duration
	newRunID func() string
	now      func() time.Time
}

// NewService wires the orchestration. cache, recorder, queue and
// scheduleMetrics may be nil. recomputeWindow groups deferred triggers;
// zero means recomputequeue.DefaultWindow.
func NewService(
	repo domain.GraphRepository,
	locker domain.ProjectLocker,
	cache domain.ScheduleCache,
	recorder domain.ScheduleRunRecorder,
	queue recomputequeue.Queue,
	scheduleMetrics *metrics.ScheduleMetrics,
	engine cpm.Options,
	recomputeWindow time.Duration,
) *Service {
	return &Service{
		repo:     repo,
		locker:   locker,
		cache:    cache,
		recorder: recorder,
		queue:    queue,
		writer:   writeback.NewWriter(repo),
		metrics:  scheduleMetrics,
		engine:   engine,
		window:   recomputeWindow,
		newRunID: uuid.NewString,
		now:      time.Now,
	}
}

// Recalculate recomputes and persists the schedule of one project. A run
// with failed task writes returns both the result and an error wrapping
// domain.ErrWriteBackFailed.
func (s *Service) Recalculate(ctx context.Context, projectID domain.ProjectID) (*RecalculateResult, error) {
	runID := s.newRunID()
	started := s.now()

	ctx, span := tracing.StartRecalculateSpan(ctx, int64(projectID), runID)
	defer span.End()

	record := domain.ScheduleRunRecord{RunID: runID, ProjectID: projectID}

	result, err := s.recalculate(ctx, projectID, runID, &record)

	record.Duration = s.now().Sub(started)
	record.Outcome = outcomeOf(err)

	var projectFinish time.Time
	if result != nil {
		projectFinish = result.Schedule.ProjectFinish
	}
	tracing.RecordRecalculateResult(span, record.TaskCount, record.CriticalCount, record.WriteFailures, projectFinish, err)

	s.finishRun(ctx, record)

	if err != nil {
		level := slog.LevelError
		if record.Outcome == domain.RunOutcomeCyclic || record.Outcome == domain.RunOutcomeBusy {
			level = slog.LevelWarn
		}
		slog.Log(ctx, level, "schedule recalculation did not complete cleanly",
			slog.String("run_id", runID),
			slog.Int64("project_id", int64(projectID)),
			slog.String("outcome", record.Outcome.String()),
			slog.String("error", err.Error()),
		)
	} else {
		slog.InfoContext(ctx, "schedule recalculated",
			slog.String("run_id", runID),
			slog.Int64("project_id", int64(projectID)),
			slog.Int("task_count", record.TaskCount),
			slog.Int("critical_count", record.CriticalCount),
			slog.Int("written", record.WriteCount),
			slog.Duration("duration", record.Duration),
		)
	}

	return result, err
}

func (s *Service) recalculate(ctx context.Context, projectID domain.ProjectID, runID string, record *domain.ScheduleRunRecord) (*RecalculateResult, error) {
	if err := s.locker.Acquire(ctx, projectID, runID); err != nil {
		return nil, err
	}
	defer func() {
		// The run context may already be cancelled; the lock must still go.
		releaseCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		if err := s.locker.Release(releaseCtx, projectID, runID); err != nil && !errors.Is(err, domain.ErrLockNotHeld) {
			slog.WarnContext(ctx, "failed to release project lock",
				slog.Int64("project_id", int64(projectID)),
				slog.String("error", err.Error()),
			)
		}
	}()

	graph, err := s.repo.LoadGraph(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("load project graph: %w", err)
	}

	computed, g, err := s.compute(ctx, graph, record, s.engine)
	if err != nil {
		if errors.Is(err, domain.ErrCyclicGraph) {
			s.evictSchedule(ctx, projectID)
		}
		return nil, err
	}
	computed.RunID = runID

	wbStart := s.now()
	_, wbSpan := tracing.StartPassSpan(ctx, "write_back", g.TaskCount(), g.EdgeCount())
	wb := s.writer.WriteBack(ctx, projectID, computed.Results, g.Tasks())
	var wbErr error
	if len(wb.Failures) > 0 {
		wbErr = writeFailuresError(wb.Failures)
	}
	tracing.EndPassSpan(wbSpan, wbErr)
	s.recordPass(ctx, "write_back", wbStart)

	record.WriteCount = wb.Written
	record.WriteFailures = len(wb.Failures)

	if s.cache != nil {
		if err := s.cache.SaveSchedule(ctx, computed); err != nil {
			slog.WarnContext(ctx, "failed to cache computed schedule",
				slog.Int64("project_id", int64(projectID)),
				slog.String("error", err.Error()),
			)
		}
	}

	return &RecalculateResult{
		Schedule:     computed,
		WriteErrors:  wb.Failures,
		WrittenCount: wb.Written,
	}, wbErr
}

// evictSchedule drops the cached result of a project whose current graph
// no longer schedules.
func (s *Service) evictSchedule(ctx context.Context, projectID domain.ProjectID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteSchedule(ctx, projectID); err != nil {
		slog.WarnContext(ctx, "failed to evict cached schedule",
			slog.Int64("project_id", int64(projectID)),
			slog.String("error", err.Error()),
		)
	}
}

// compute validates and schedules a loaded graph without touching storage.
func (s *Service) compute(ctx context.Context, graph *domain.ProjectGraph, record *domain.ScheduleRunRecord, opts cpm.Options) (*domain.ComputedSchedule, *cpm.Graph, error) {
	g := cpm.BuildGraph(ctx, graph.Tasks, graph.Dependencies, graph.Constraints)
	record.TaskCount = g.TaskCount()
	record.EdgeCount = g.EdgeCount()
	record.SkippedCount = len(g.Skipped())

	validateStart := s.now()
	_, vSpan := tracing.StartPassSpan(ctx, "validate", g.TaskCount(), g.EdgeCount())
	cycles := cycle.Validate(g.Tasks(), g.Dependencies())
	tracing.RecordCycleResult(vSpan, len(cycles))
	var cycleErr error
	if len(cycles) > 0 {
		cycleErr = &domain.CycleDetectedError{Cycles: cycles}
	}
	tracing.EndPassSpan(vSpan, cycleErr)
	s.recordPass(ctx, "validate", validateStart)

	if cycleErr != nil {
		record.CycleCount = len(cycles)
		if s.metrics != nil {
			s.metrics.RecordCycles(ctx, len(cycles))
		}
		return nil, nil, cycleErr
	}

	computeStart := s.now()
	sched, err := cpm.ComputeGraph(ctx, g, opts)
	s.recordPass(ctx, "compute", computeStart)
	if err != nil {
		return nil, nil, fmt.Errorf("compute schedule: %w", err)
	}

	record.CriticalCount = sched.CriticalCount()
	record.ProjectStart = sched.ProjectStart
	record.ProjectFinish = sched.ProjectFinish

	if s.metrics != nil {
		s.metrics.RecordTasksScheduled(ctx, len(sched.Results), record.CriticalCount)
	}

	return &domain.ComputedSchedule{
		ProjectID:     graph.ProjectID,
		ProjectStart:  sched.ProjectStart,
		ProjectFinish: sched.ProjectFinish,
		CriticalPath:  sched.CriticalPath,
		Results:       sched.Results,
		Skipped:       sched.Skipped,
		ComputedAt:    s.now().UTC(),
	}, g, nil
}

// DryRun validates and schedules a caller supplied graph. Nothing is
// locked, written or cached. A non-zero projectStart overrides the
// configured one.
func (s *Service) DryRun(ctx context.Context, graph *domain.ProjectGraph, projectStart time.Time) (*domain.ComputedSchedule, error) {
	opts := s.engine
	if !projectStart.IsZero() {
		opts.ProjectStart = projectStart
	}

	var record domain.ScheduleRunRecord
	computed, _, err := s.compute(ctx, graph, &record, opts)
	if err != nil {
		return nil, err
	}
	computed.RunID = s.newRunID()
	return computed, nil
}

// GetSchedule returns the last computed schedule for a project.
func (s *Service) GetSchedule(ctx context.Context, projectID domain.ProjectID) (*domain.ComputedSchedule, error) {
	if s.cache == nil {
		return nil, domain.ErrScheduleNotFound
	}
	return s.cache.GetSchedule(ctx, projectID)
}

// Enqueue defers a recompute to the end of the current window. Triggers
// within one window collapse into a single task.
func (s *Service) Enqueue(ctx context.Context, projectID domain.ProjectID, reason string) (*EnqueueResult, error) {
	if s.queue == nil {
		return nil, recomputequeue.ErrQueueDisabled
	}

	task := recomputequeue.NewRecomputeTask(projectID, reason, s.now(), s.window)
	resp, err := s.queue.EnqueueRecompute(ctx, task)
	if err != nil {
		return nil, fmt.Errorf("enqueue recompute: %w", err)
	}

	return &EnqueueResult{TaskName: resp.Name, AlreadyQueued: resp.AlreadyQueued}, nil
}

func (s *Service) finishRun(ctx context.Context, record domain.ScheduleRunRecord) {
	if s.metrics != nil {
		s.metrics.RecordRun(ctx, record.Outcome.String(), record.Duration)
		s.metrics.RecordWriteFailures(ctx, record.WriteFailures)
	}
	if s.recorder != nil {
		if err := s.recorder.RecordRun(ctx, record); err != nil {
			slog.WarnContext(ctx, "failed to record schedule run",
				slog.String("run_id", record.RunID),
				slog.String("error", err.Error()),
			)
		}
	}
}

func (s *Service) recordPass(ctx context.Context, pass string, started time.Time) {
	if s.metrics != nil {
		s.metrics.RecordPassDuration(ctx, pass, s.now().Sub(started))
	}
}

func outcomeOf(err error) domain.RunOutcome {
	switch {
	case err == nil:
		return domain.RunOutcomeSucceeded
	case errors.Is(err, domain.ErrWriteBackFailed):
		return domain.RunOutcomePartial
	case errors.Is(err, domain.ErrCyclicGraph):
		return domain.RunOutcomeCyclic
	case errors.Is(err, domain.ErrProjectBusy):
		return domain.RunOutcomeBusy
	default:
		return domain.RunOutcomeFailed
	}
}

func writeFailuresError(failures []domain.WriteError) error {
	errs := make([]error, 0, len(failures)+1)
	errs = append(errs, fmt.Errorf("%w: %d task(s)", domain.ErrWriteBackFailed, len(failures)))
	for _, f := range failures {
		errs = append(errs, f)
	}
	return errors.Join(errs...)
}
