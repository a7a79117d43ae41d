package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	scheduleMeterName = "schedule.service"
)

type ScheduleMetrics struct {
	runs               metric.Int64Counter
	tasksScheduled     metric.Int64Counter
	criticalTasks      metric.Int64Histogram
	cyclesDetected     metric.Int64Counter
	writeFailures      metric.Int64Counter
	recalculateLatency metric.Float64Histogram
	passDuration       metric.Float64Histogram
}

func NewScheduleMetrics() (*ScheduleMetrics, error) {
	meter := otel.Meter(scheduleMeterName)

	runs, err := meter.Int64Counter(
		"schedule_runs_total",
		metric.WithDescription("Total number of schedule recalculations by outcome"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, err
	}

	tasksScheduled, err := meter.Int64Counter(
		"schedule_tasks_total",
		metric.WithDescription("Total number of tasks scheduled"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	criticalTasks, err := meter.Int64Histogram(
		"schedule_critical_tasks",
		metric.WithDescription("Critical tasks per recalculation"),
		metric.WithUnit("{task}"),
		metric.WithExplicitBucketBoundaries(0, 1, 2, 5, 10, 25, 50, 100, 250, 1000),
	)
	if err != nil {
		return nil, err
	}

	cyclesDetected, err := meter.Int64Counter(
		"schedule_cycles_detected_total",
		metric.WithDescription("Total number of dependency cycles reported"),
		metric.WithUnit("{cycle}"),
	)
	if err != nil {
		return nil, err
	}

	writeFailures, err := meter.Int64Counter(
		"schedule_write_failures_total",
		metric.WithDescription("Total number of task updates that failed to persist"),
		metric.WithUnit("{task}"),
	)
	if err != nil {
		return nil, err
	}

	recalculateLatency, err := meter.Float64Histogram(
		"schedule_recalculate_duration_seconds",
		metric.WithDescription("End to end recalculation duration"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10,
		),
	)
	if err != nil {
		return nil, err
	}

	passDuration, err := meter.Float64Histogram(
		"schedule_pass_duration_seconds",
		metric.WithDescription("Time spent in each scheduling stage"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(
			0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1,
		),
	)
	if err != nil {
		return nil, err
	}

	return &ScheduleMetrics{
		runs:               runs,
		tasksScheduled:     tasksScheduled,
		criticalTasks:      criticalTasks,
		cyclesDetected:     cyclesDetected,
		writeFailures:      writeFailures,
		recalculateLatency: recalculateLatency,
		passDuration:       passDuration,
	}, nil
}

func (m *ScheduleMetrics) RecordRun(ctx context.Context, outcome string, duration time.Duration) {
	attrs := metric.WithAttributes(attribute.String("outcome", outcome))
	m.runs.Add(ctx, 1, attrs)
	m.recalculateLatency.Record(ctx, duration.Seconds(), attrs)
}

func (m *ScheduleMetrics) RecordTasksScheduled(ctx context.Context, total, critical int) {
	m.tasksScheduled.Add(ctx, int64(total))
	m.criticalTasks.Record(ctx, int64(critical))
}

func (m *ScheduleMetrics) RecordCycles(ctx context.Context, count int) {
	m.cyclesDetected.Add(ctx, int64(count))
}

func (m *ScheduleMetrics) RecordWriteFailures(ctx context.Context, count int) {
	if count == 0 {
		return
	}
	m.writeFailures.Add(ctx, int64(count))
}

func (m *ScheduleMetrics) RecordPassDuration(ctx context.Context, pass string, duration time.Duration) {
	m.passDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(
		attribute.String("pass", pass),
	))
}
