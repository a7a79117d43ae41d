package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	defaultDurationDaysEnv = "SCHEDULE_DEFAULT_DURATION_DAYS"
	maxWalkDepthEnv        = "SCHEDULE_MAX_WALK_DEPTH"
	lockTTLSecondsEnv      = "SCHEDULE_LOCK_TTL_SECONDS"
	cacheTTLHoursEnv       = "SCHEDULE_CACHE_TTL_HOURS"
	projectStartEnv        = "SCHEDULE_PROJECT_START"
	recomputeWindowEnv     = "SCHEDULE_RECOMPUTE_WINDOW_SECONDS"

	defaultDurationDays           = 1
	defaultMaxWalkDepth           = 10000
	defaultLockTTLSeconds         = 60
	defaultCacheTTLHours          = 24
	defaultRecomputeWindowSeconds = 30
)

type ScheduleConfig struct {
	DefaultDurationDays int
	MaxWalkDepth        int
	LockTTL             time.Duration
	CacheTTL            time.Duration
	// RecomputeWindow groups deferred recompute triggers; one task per
	// project runs at the end of each window.
	RecomputeWindow time.Duration
	// ProjectStart pins the start of tasks without predecessors or a planned
	// start. Zero means the current day.
	ProjectStart time.Time
}

func LoadScheduleConfig() (*ScheduleConfig, error) {
	durationDays, err := positiveIntEnv(defaultDurationDaysEnv, defaultDurationDays)
	if err != nil {
		return nil, err
	}
	maxDepth, err := positiveIntEnv(maxWalkDepthEnv, defaultMaxWalkDepth)
	if err != nil {
		return nil, err
	}
	lockTTL, err := positiveIntEnv(lockTTLSecondsEnv, defaultLockTTLSeconds)
	if err != nil {
		return nil, err
	}
	cacheTTL, err := positiveIntEnv(cacheTTLHoursEnv, defaultCacheTTLHours)
	if err != nil {
		return nil, err
	}

	recomputeWindow, err := positiveIntEnv(recomputeWindowEnv, defaultRecomputeWindowSeconds)
	if err != nil {
		return nil, err
	}

	var projectStart time.Time
	if v := os.Getenv(projectStartEnv); v != "" {
		projectStart, err = ParseDate(v)
		if err != nil {
			return nil, err
		}
	}

	return &ScheduleConfig{
		DefaultDurationDays: durationDays,
		MaxWalkDepth:        maxDepth,
		LockTTL:             time.Duration(lockTTL) * time.Second,
		CacheTTL:            time.Duration(cacheTTL) * time.Hour,
		RecomputeWindow:     time.Duration(recomputeWindow) * time.Second,
		ProjectStart:        projectStart,
	}, nil
}

// ParseDate accepts a plain date or an RFC3339 timestamp.
func ParseDate(v string) (time.Time, error) {
	if t, err := time.Parse(time.DateOnly, v); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, v); err == nil {
		return t, nil
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidProjectStart, v)
}

func positiveIntEnv(name string, def int) (int, error) {
	v := os.Getenv(name)
	if v == "" {
		return def, nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil || parsed <= 0 {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidScheduleSetting, name, v)
	}
	return parsed, nil
}
