//go:build !gcloud

package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/KasumiMercury/primind-project-scheduling/internal/config"
	"github.com/KasumiMercury/primind-project-scheduling/internal/infra/recomputequeue"
	"github.com/KasumiMercury/primind-project-scheduling/internal/observability"
	"github.com/KasumiMercury/primind-project-scheduling/internal/observability/logging"
)

const serviceModule = logging.Module("project-scheduling")

func initRecomputeQueue(_ context.Context, cfg *config.Config) (recomputequeue.Queue, func() error, error) {
	if cfg.TaskQueue.PrimindTasksURL == "" {
		slog.Warn("PRIMIND_TASKS_URL not set, deferred recompute disabled")

		return nil, nil, nil
	}

	q := recomputequeue.NewPrimindTasksClient(
		cfg.TaskQueue.PrimindTasksURL,
		cfg.TaskQueue.QueueName,
		cfg.TaskQueue.CallbackBaseURL,
		cfg.TaskQueue.MaxRetries,
	)

	slog.Info("recompute queue initialized",
		slog.String("type", "primind_tasks"),
		slog.String("url", cfg.TaskQueue.PrimindTasksURL),
		slog.String("queue", cfg.TaskQueue.QueueName),
	)

	return q, q.Close, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("SERVICE_NAME")
	if serviceName == "" {
		serviceName = "scheduling"
	}

	env := logging.EnvDev
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:    serviceName,
			Version: Version,
		},
		Environment:   env,
		SamplingRate:  1.0,
		DefaultModule: serviceModule,
		LogLevel:      logging.ParseLevel(os.Getenv("LOG_LEVEL")),
	})
}
