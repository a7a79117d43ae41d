package config

import (
	"log/slog"
	"os"
	"strconv"

	"github.com/KasumiMercury/primind-project-scheduling/internal/observability/logging"
)

type Config struct {
	Port      string
	LogLevel  slog.Level
	TaskQueue TaskQueueConfig
	Database  *DatabaseConfig
	Redis     *RedisConfig
	Schedule  *ScheduleConfig
}

type TaskQueueConfig struct {
	PrimindTasksURL string
	QueueName       string
	// CallbackBaseURL is this service's base URL as seen by the queue; each
	// task calls the recalculate endpoint of its own project under it.
	CallbackBaseURL string

	GCloudProjectID    string
	GCloudLocationID   string
	GCloudQueueID      string
	GCloudCallbackURL  string
	CloudTasksEndpoint string

	MaxRetries int
}

func Load() (*Config, error) {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	queueName := os.Getenv("TASK_QUEUE_NAME")
	if queueName == "" {
		queueName = "default"
	}

	maxRetries := 3
	if v := os.Getenv("TASK_QUEUE_MAX_RETRIES"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			maxRetries = parsed
		}
	}

	databaseConfig, err := LoadDatabaseConfig()
	if err != nil {
		return nil, err
	}

	redisConfig, err := LoadRedisConfig()
	if err != nil {
		return nil, err
	}

	scheduleConfig, err := LoadScheduleConfig()
	if err != nil {
		return nil, err
	}

	return &Config{
		Port:     port,
		LogLevel: logging.ParseLevel(os.Getenv("LOG_LEVEL")),
		TaskQueue: TaskQueueConfig{
			PrimindTasksURL: os.Getenv("PRIMIND_TASKS_URL"),
			QueueName:       queueName,
			CallbackBaseURL: os.Getenv("RECOMPUTE_CALLBACK_BASE_URL"),

			GCloudProjectID:    os.Getenv("GCLOUD_PROJECT_ID"),
			GCloudLocationID:   os.Getenv("GCLOUD_LOCATION_ID"),
			GCloudQueueID:      os.Getenv("GCLOUD_QUEUE_ID"),
			GCloudCallbackURL:  os.Getenv("GCLOUD_CALLBACK_BASE_URL"),
			CloudTasksEndpoint: os.Getenv("CLOUD_TASKS_ENDPOINT"),

			MaxRetries: maxRetries,
		},
		Database: databaseConfig,
		Redis:    redisConfig,
		Schedule: scheduleConfig,
	}, nil
}
