package main

import (
	"context"
	"crypto/tls"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/extra/redisotel/v9"
	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-project-scheduling/internal/config"
	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-project-scheduling/internal/handler"
	"github.com/KasumiMercury/primind-project-scheduling/internal/health"
	"github.com/KasumiMercury/primind-project-scheduling/internal/infra/database"
	"github.com/KasumiMercury/primind-project-scheduling/internal/infra/repository"
	"github.com/KasumiMercury/primind-project-scheduling/internal/infra/runrecorder"
	"github.com/KasumiMercury/primind-project-scheduling/internal/observability/metrics"
	"github.com/KasumiMercury/primind-project-scheduling/internal/observability/middleware"
	"github.com/KasumiMercury/primind-project-scheduling/internal/service/cpm"
	"github.com/KasumiMercury/primind-project-scheduling/internal/service/schedule"
)

// Version is set via ldflags at build time
var Version = "dev"

func main() {
	os.Exit(run())
}

func run() int {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	obs, err := initObservability(ctx)
	if err != nil {
		slog.Error("failed to initialize observability", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := obs.Shutdown(shutdownCtx); err != nil {
			slog.Warn("observability shutdown error", slog.String("error", err.Error()))
		}
	}()

	slog.SetDefault(obs.Logger())

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", slog.String("error", err.Error()))
		return 1
	}

	if err := config.ValidateForRun(cfg); err != nil {
		slog.Error("configuration validation error", slog.String("error", err.Error()))
		return 1
	}

	if err := cfg.TaskQueue.Validate(); err != nil {
		slog.Error("task queue configuration error", slog.String("error", err.Error()))
		return 1
	}

	httpMetrics, err := metrics.NewHTTPMetrics()
	if err != nil {
		slog.Error("failed to initialize HTTP metrics", slog.String("error", err.Error()))
		return 1
	}

	scheduleMetrics, err := metrics.NewScheduleMetrics()
	if err != nil {
		slog.Error("failed to initialize schedule metrics", slog.String("error", err.Error()))
		return 1
	}

	// InfluxDB for local, BigQuery for gcloud
	runRecorder, err := runrecorder.NewRecorder(ctx, runrecorder.LoadConfig())
	if err != nil {
		slog.Error("failed to initialize schedule run recorder", slog.String("error", err.Error()))
		return 1
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := runRecorder.Flush(flushCtx); err != nil {
			slog.Warn("failed to flush schedule run recorder", slog.String("error", err.Error()))
		}
		if err := runRecorder.Close(); err != nil {
			slog.Warn("failed to close schedule run recorder", slog.String("error", err.Error()))
		}
	}()

	db, err := database.Open(ctx, cfg.Database)
	if err != nil {
		slog.Error("failed to open database",
			slog.String("event", "database.connect.fail"),
			slog.String("driver", cfg.Database.Driver),
			slog.String("error", err.Error()),
		)
		return 1
	}
	defer func() {
		if err := database.Close(db); err != nil {
			slog.Warn("failed to close database", slog.String("error", err.Error()))
		}
	}()

	slog.Info("database connected", slog.String("driver", cfg.Database.Driver))

	recomputeQueue, cleanup, err := initRecomputeQueue(ctx, cfg)
	if err != nil {
		slog.Error("failed to initialize recompute queue", slog.String("error", err.Error()))
		return 1
	}
	if cleanup != nil {
		defer func() {
			if err := cleanup(); err != nil {
				slog.Error("recompute queue cleanup error", slog.String("error", err.Error()))
			}
		}()
	}

	var (
		redisClient *redis.Client
		locker      domain.ProjectLocker
		cache       domain.ScheduleCache
	)
	if cfg.Redis.Disabled {
		slog.Warn("REDIS_DISABLED set, using process-local locks and no schedule cache")
		locker = repository.NewMemoryLocker()
	} else {
		redisClient, err = connectRedis(ctx, cfg.Redis)
		if err != nil {
			return 1
		}
		defer func() {
			if err := redisClient.Close(); err != nil {
				slog.Warn("failed to close redis client", slog.String("error", err.Error()))
			}
		}()

		locker, err = repository.NewProjectLocker(redisClient, cfg.Schedule.LockTTL)
		if err != nil {
			slog.Error("failed to create project locker", slog.String("error", err.Error()))
			return 1
		}
		cache = repository.NewScheduleCache(redisClient, cfg.Schedule.CacheTTL)
	}

	engineOpts := cpm.DefaultOptions()
	engineOpts.ProjectStart = cfg.Schedule.ProjectStart
	engineOpts.DefaultDurationDays = cfg.Schedule.DefaultDurationDays
	engineOpts.MaxWalkDepth = cfg.Schedule.MaxWalkDepth

	scheduleService := schedule.NewService(
		repository.NewGraphRepository(db),
		locker,
		cache,
		runRecorder,
		recomputeQueue,
		scheduleMetrics,
		engineOpts,
		cfg.Schedule.RecomputeWindow,
	)
	scheduleHandler := handler.NewScheduleHandler(scheduleService)

	r := gin.New()
	r.Use(middleware.Gin(middleware.GinConfig{
		SkipPaths:   []string{"/health", "/health/live", "/health/ready", "/metrics"},
		Module:      serviceModule,
		TracerName:  "github.com/KasumiMercury/primind-project-scheduling/internal/observability/middleware",
		HTTPMetrics: httpMetrics,
	}))
	r.Use(middleware.PanicRecoveryGin())

	health.NewChecker(db, redisClient, Version).Register(r)
	scheduleHandler.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting server",
			slog.String("port", cfg.Port),
			slog.Int("default_duration_days", cfg.Schedule.DefaultDurationDays),
			slog.Int("max_walk_depth", cfg.Schedule.MaxWalkDepth),
			slog.Bool("redis_enabled", !cfg.Redis.Disabled),
			slog.Bool("queue_enabled", recomputeQueue != nil),
		)
		serverErr <- srv.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutdown signal received", slog.String("signal", sig.String()))
		cancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("failed to shutdown server", slog.String("error", err.Error()))
			return 1
		}

		slog.Info("server exited properly")
		return 0

	case err := <-serverErr:
		if errors.Is(err, http.ErrServerClosed) {
			return 0
		}
		slog.Error("server exited with error", slog.String("error", err.Error()))
		return 1
	}
}

func connectRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := &redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.TLS {
		opts.TLSConfig = &tls.Config{MinVersion: tls.VersionTLS12}
	}
	client := redis.NewClient(opts)

	if err := redisotel.InstrumentTracing(client); err != nil {
		slog.Error("failed to instrument redis tracing",
			slog.String("event", "redis.otel.tracing.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	if err := redisotel.InstrumentMetrics(client); err != nil {
		slog.Error("failed to instrument redis metrics",
			slog.String("event", "redis.otel.metrics.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	if err := client.Ping(ctx).Err(); err != nil {
		slog.Error("failed to connect redis",
			slog.String("event", "redis.connect.fail"),
			slog.String("error", err.Error()),
		)
		_ = client.Close()
		return nil, err
	}

	slog.Info("redis connected", slog.String("addr", cfg.Addr))
	return client, nil
}
