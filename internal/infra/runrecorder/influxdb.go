//go:build !gcloud

package runrecorder

import (
	"context"
	"log/slog"
	"strconv"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

const runMeasurement = "schedule_run"

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func NewRecorder(ctx context.Context, cfg *Config) (domain.ScheduleRunRecorder, error) {
	if cfg.Disabled {
		slog.InfoContext(ctx, "schedule run recording disabled")
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, schedule run recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)

	slog.InfoContext(ctx, "schedule run recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket),
	}, nil
}

func runPoint(record domain.ScheduleRunRecord, at time.Time) *write.Point {
	fields := map[string]any{
		"task_count":     record.TaskCount,
		"edge_count":     record.EdgeCount,
		"critical_count": record.CriticalCount,
		"cycle_count":    record.CycleCount,
		"skipped_count":  record.SkippedCount,
		"write_count":    record.WriteCount,
		"write_failures": record.WriteFailures,
		"duration_ms":    record.Duration.Milliseconds(),
	}
	if !record.ProjectFinish.IsZero() {
		fields["project_start_unix"] = record.ProjectStart.Unix()
		fields["project_finish_unix"] = record.ProjectFinish.Unix()
	}

	return influxdb2.NewPoint(
		runMeasurement,
		map[string]string{
			"run_id":     record.RunID,
			"project_id": strconv.FormatInt(int64(record.ProjectID), 10),
			"outcome":    record.Outcome.String(),
		},
		fields,
		at,
	)
}

func (r *influxDBRecorder) RecordRun(ctx context.Context, record domain.ScheduleRunRecord) error {
	if err := r.writeAPI.WritePoint(ctx, runPoint(record, time.Now())); err != nil {
		slog.WarnContext(ctx, "failed to write schedule run to InfluxDB",
			slog.String("error", err.Error()),
			slog.String("run_id", record.RunID),
			slog.String("outcome", record.Outcome.String()),
		)
	}
	return nil
}

func (r *influxDBRecorder) Flush(ctx context.Context) error {
	return r.writeAPI.Flush(ctx)
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
