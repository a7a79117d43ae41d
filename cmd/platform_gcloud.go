//go:build gcloud

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

func initRecomputeQueue(ctx context.Context, cfg *config.Config) (recomputequeue.Queue, func() error, error) {
	client, err := recomputequeue.NewCloudTasksClient(ctx, recomputequeue.CloudTasksConfig{
		ProjectID:       cfg.TaskQueue.GCloudProjectID,
		LocationID:      cfg.TaskQueue.GCloudLocationID,
		QueueID:         cfg.TaskQueue.GCloudQueueID,
		CallbackBaseURL: cfg.TaskQueue.GCloudCallbackURL,
		Endpoint:        cfg.TaskQueue.CloudTasksEndpoint,
		MaxRetries:      cfg.TaskQueue.MaxRetries,
	})
	if err != nil {
		return nil, nil, err
	}

	slog.Info("recompute queue initialized",
		slog.String("type", "cloud_tasks"),
		slog.String("project", cfg.TaskQueue.GCloudProjectID),
		slog.String("location", cfg.TaskQueue.GCloudLocationID),
		slog.String("queue", cfg.TaskQueue.GCloudQueueID),
	)

	cleanup := func() error {
		if err := client.Close(); err != nil {
			slog.Warn("failed to close cloud tasks client", slog.String("error", err.Error()))

			return err
		}

		return nil
	}

	return client, cleanup, nil
}

func initObservability(ctx context.Context) (*observability.Resources, error) {
	serviceName := os.Getenv("K_SERVICE")
	if serviceName == "" {
		serviceName = "scheduling"
	}

	env := logging.EnvProd
	if e := os.Getenv("ENV"); e != "" {
		env = logging.Environment(e)
	}

	projectID := os.Getenv("GOOGLE_CLOUD_PROJECT")
	if projectID == "" {
		projectID = os.Getenv("GCLOUD_PROJECT_ID")
	}

	return observability.Init(ctx, observability.Config{
		ServiceInfo: logging.ServiceInfo{
			Name:     serviceName,
			Version:  Version,
			Revision: os.Getenv("K_REVISION"),
		},
		Environment:   env,
		GCPProjectID:  projectID,
		SamplingRate:  1.0,
		DefaultModule: serviceModule,
		LogLevel:      logging.ParseLevel(os.Getenv("LOG_LEVEL")),
	})
}
