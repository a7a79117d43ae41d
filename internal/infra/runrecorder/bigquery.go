//go:build gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt    time.Time `bigquery:"recorded_at"`
	RunID         string    `bigquery:"run_id"`
	ProjectID     int64     `bigquery:"project_id"`
	Outcome       string    `bigquery:"outcome"`
	TaskCount     int64     `bigquery:"task_count"`
	EdgeCount     int64     `bigquery:"edge_count"`
	CriticalCount int64     `bigquery:"critical_count"`
	CycleCount    int64     `bigquery:"cycle_count"`
	SkippedCount  int64     `bigquery:"skipped_count"`
	WriteCount    int64     `bigquery:"write_count"`
	WriteFailures int64     `bigquery:"write_failures"`
	ProjectStart  time.Time `bigquery:"project_start"`
	ProjectFinish time.Time `bigquery:"project_finish"`
	DurationMs    int64     `bigquery:"duration_ms"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleRunRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule run recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, schedule run recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, schedule run recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	slog.InfoContext(ctx, "schedule run recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter(),
	}, nil
}

func (r *bigQueryRecorder) RecordRun(ctx context.Context, record domain.ScheduleRunRecord) error {
	row := &bigQueryRecord{
		RecordedAt:    time.Now(),
		RunID:         record.RunID,
		ProjectID:     int64(record.ProjectID),
		Outcome:       record.Outcome.String(),
		TaskCount:     int64(record.TaskCount),
		EdgeCount:     int64(record.EdgeCount),
		CriticalCount: int64(record.CriticalCount),
		CycleCount:    int64(record.CycleCount),
		SkippedCount:  int64(record.SkippedCount),
		WriteCount:    int64(record.WriteCount),
		WriteFailures: int64(record.WriteFailures),
		ProjectStart:  record.ProjectStart,
		ProjectFinish: record.ProjectFinish,
		DurationMs:    record.Duration.Milliseconds(),
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert schedule run to BigQuery",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
		)
	}

	return nil
}

func (r *bigQueryRecorder) Flush(context.Context) error {
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
