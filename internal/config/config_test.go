package config

import (
	"errors"
	"log/slog"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	for _, env := range []string{
		"PORT", "LOG_LEVEL", "TASK_QUEUE_NAME", "TASK_QUEUE_MAX_RETRIES",
		databaseDriverEnv, databaseDSNEnv, databaseAutoMigrateEnv,
		redisAddrEnv, redisDBEnv,
		defaultDurationDaysEnv, maxWalkDepthEnv, lockTTLSecondsEnv, cacheTTLHoursEnv, projectStartEnv, recomputeWindowEnv,
	} {
		t.Setenv(env, "")
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.TaskQueue.QueueName != "default" || cfg.TaskQueue.MaxRetries != 3 {
		t.Errorf("TaskQueue = %+v", cfg.TaskQueue)
	}
	if cfg.Database.Driver != DriverSQLite || cfg.Database.DSN != defaultSQLiteDSN || !cfg.Database.AutoMigrate {
		t.Errorf("Database = %+v", cfg.Database)
	}
	if cfg.Redis.Addr != defaultRedisAddr {
		t.Errorf("Redis.Addr = %q", cfg.Redis.Addr)
	}
	if cfg.Schedule.DefaultDurationDays != 1 || cfg.Schedule.MaxWalkDepth != 10000 {
		t.Errorf("Schedule = %+v", cfg.Schedule)
	}
	if cfg.Schedule.LockTTL != time.Minute || cfg.Schedule.CacheTTL != 24*time.Hour {
		t.Errorf("Schedule TTLs = %v / %v", cfg.Schedule.LockTTL, cfg.Schedule.CacheTTL)
	}
	if !cfg.Schedule.ProjectStart.IsZero() {
		t.Errorf("ProjectStart = %v, want zero", cfg.Schedule.ProjectStart)
	}
	if cfg.Schedule.RecomputeWindow != 30*time.Second {
		t.Errorf("RecomputeWindow = %v, want 30s", cfg.Schedule.RecomputeWindow)
	}
	if err := ValidateForRun(cfg); err != nil {
		t.Errorf("ValidateForRun() error = %v", err)
	}
}

func TestLoadScheduleConfig(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
		check   func(t *testing.T, c *ScheduleConfig)
	}{
		{
			name: "overrides",
			env: map[string]string{
				defaultDurationDaysEnv: "2",
				maxWalkDepthEnv:        "50",
				lockTTLSecondsEnv:      "5",
				projectStartEnv:        "2024-01-01",
				recomputeWindowEnv:     "120",
			},
			check: func(t *testing.T, c *ScheduleConfig) {
				if c.DefaultDurationDays != 2 || c.MaxWalkDepth != 50 || c.LockTTL != 5*time.Second {
					t.Errorf("config = %+v", c)
				}
				if !c.ProjectStart.Equal(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) {
					t.Errorf("ProjectStart = %v", c.ProjectStart)
				}
				if c.RecomputeWindow != 2*time.Minute {
					t.Errorf("RecomputeWindow = %v", c.RecomputeWindow)
				}
			},
		},
		{
			name: "rfc3339 project start",
			env:  map[string]string{projectStartEnv: "2024-03-05T10:00:00Z"},
			check: func(t *testing.T, c *ScheduleConfig) {
				if c.ProjectStart.Day() != 5 {
					t.Errorf("ProjectStart = %v", c.ProjectStart)
				}
			},
		},
		{
			name:    "bad project start",
			env:     map[string]string{projectStartEnv: "next monday"},
			wantErr: ErrInvalidProjectStart,
		},
		{
			name:    "zero duration rejected",
			env:     map[string]string{defaultDurationDaysEnv: "0"},
			wantErr: ErrInvalidScheduleSetting,
		},
		{
			name:    "non numeric depth rejected",
			env:     map[string]string{maxWalkDepthEnv: "deep"},
			wantErr: ErrInvalidScheduleSetting,
		},
		{
			name:    "negative recompute window rejected",
			env:     map[string]string{recomputeWindowEnv: "-5"},
			wantErr: ErrInvalidScheduleSetting,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for _, env := range []string{defaultDurationDaysEnv, maxWalkDepthEnv, lockTTLSecondsEnv, cacheTTLHoursEnv, projectStartEnv, recomputeWindowEnv} {
				t.Setenv(env, "")
			}
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			c, err := LoadScheduleConfig()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			tt.check(t, c)
		})
	}
}

func TestDatabaseConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     DatabaseConfig
		wantErr error
	}{
		{name: "sqlite", cfg: DatabaseConfig{Driver: DriverSQLite, DSN: "file::memory:"}},
		{name: "postgres", cfg: DatabaseConfig{Driver: DriverPostgres, DSN: "host=db"}},
		{name: "unknown driver", cfg: DatabaseConfig{Driver: "mysql", DSN: "x"}, wantErr: ErrUnsupportedDriver},
		{name: "postgres without dsn", cfg: DatabaseConfig{Driver: DriverPostgres}, wantErr: ErrDatabaseDSNMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRedisConfig_InvalidDB(t *testing.T) {
	t.Setenv(redisDBEnv, "one")

	if _, err := LoadRedisConfig(); !errors.Is(err, ErrInvalidRedisDB) {
		t.Errorf("error = %v, want ErrInvalidRedisDB", err)
	}
}

func TestRedisConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     *RedisConfig
		wantErr error
	}{
		{name: "nil", cfg: nil, wantErr: ErrRedisAddrMissing},
		{name: "missing addr", cfg: &RedisConfig{}, wantErr: ErrRedisAddrMissing},
		{name: "disabled without addr", cfg: &RedisConfig{Disabled: true}},
		{name: "configured", cfg: &RedisConfig{Addr: "localhost:6379"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestLoadRedisConfig_Disabled(t *testing.T) {
	t.Setenv(redisDisabledEnv, "true")

	cfg, err := LoadRedisConfig()
	if err != nil {
		t.Fatalf("LoadRedisConfig: %v", err)
	}
	if !cfg.Disabled {
		t.Error("expected redis to be disabled")
	}
}
