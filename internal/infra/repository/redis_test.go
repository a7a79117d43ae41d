package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-project-scheduling/internal/testutil"
)

func TestScheduleCache(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	cache := NewScheduleCache(client, time.Hour)

	t.Run("missing schedule", func(t *testing.T) {
		_, err := cache.GetSchedule(ctx, 1)
		if !errors.Is(err, domain.ErrScheduleNotFound) {
			t.Errorf("expected ErrScheduleNotFound, got %v", err)
		}
	})

	t.Run("round trip", func(t *testing.T) {
		finish := time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC)
		want := &domain.ComputedSchedule{
			RunID:         "run-1",
			ProjectID:     2,
			ProjectFinish: finish,
			CriticalPath:  []domain.TaskID{1, 2},
			Results: []domain.ScheduleResult{
				{TaskID: 1, EarlyFinish: finish, IsCritical: true},
			},
		}

		if err := cache.SaveSchedule(ctx, want); err != nil {
			t.Fatalf("SaveSchedule: %v", err)
		}

		got, err := cache.GetSchedule(ctx, 2)
		if err != nil {
			t.Fatalf("GetSchedule: %v", err)
		}
		if got.RunID != "run-1" || !got.ProjectFinish.Equal(finish) || len(got.CriticalPath) != 2 {
			t.Errorf("unexpected schedule: %+v", got)
		}

		ttl, err := client.TTL(ctx, "schedule:result:2").Result()
		if err != nil {
			t.Fatalf("TTL: %v", err)
		}
		if ttl <= 0 || ttl > time.Hour {
			t.Errorf("ttl = %v, want within one hour", ttl)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := cache.DeleteSchedule(ctx, 2); err != nil {
			t.Fatalf("DeleteSchedule: %v", err)
		}
		if _, err := cache.GetSchedule(ctx, 2); !errors.Is(err, domain.ErrScheduleNotFound) {
			t.Errorf("expected ErrScheduleNotFound after delete, got %v", err)
		}
	})

	t.Run("corrupt payload", func(t *testing.T) {
		if err := client.Set(ctx, "schedule:result:3", "not json", 0).Err(); err != nil {
			t.Fatalf("failed to set up test data: %v", err)
		}
		if _, err := cache.GetSchedule(ctx, 3); !errors.Is(err, ErrInvalidScheduleData) {
			t.Errorf("expected ErrInvalidScheduleData, got %v", err)
		}
	})

	t.Run("nil schedule", func(t *testing.T) {
		if err := cache.SaveSchedule(ctx, nil); !errors.Is(err, ErrInvalidScheduleData) {
			t.Errorf("expected ErrInvalidScheduleData, got %v", err)
		}
	})
}

func TestProjectLocker(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	locker, err := NewProjectLocker(client, time.Minute)
	if err != nil {
		t.Fatalf("NewProjectLocker: %v", err)
	}

	if err := locker.Acquire(ctx, 5, "run-a"); err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if err := locker.Acquire(ctx, 5, "run-b"); !errors.Is(err, domain.ErrProjectBusy) {
		t.Errorf("second acquire = %v, want ErrProjectBusy", err)
	}
	if err := locker.Release(ctx, 5, "run-b"); !errors.Is(err, domain.ErrLockNotHeld) {
		t.Errorf("foreign release = %v, want ErrLockNotHeld", err)
	}

	held, err := client.Get(ctx, "schedule:lock:5").Result()
	if err != nil || held != "run-a" {
		t.Errorf("lock value = %q (%v), want run-a", held, err)
	}

	if err := locker.Release(ctx, 5, "run-a"); err != nil {
		t.Errorf("release: %v", err)
	}
	if err := locker.Acquire(ctx, 5, "run-b"); err != nil {
		t.Errorf("acquire after release: %v", err)
	}
}

func TestProjectLocker_Expiry(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	locker, err := NewProjectLocker(client, 200*time.Millisecond)
	if err != nil {
		t.Fatalf("NewProjectLocker: %v", err)
	}

	if err := locker.Acquire(ctx, 9, "crashed"); err != nil {
		t.Fatalf("acquire: %v", err)
	}

	time.Sleep(400 * time.Millisecond)

	if err := locker.Acquire(ctx, 9, "next"); err != nil {
		t.Errorf("acquire after expiry: %v", err)
	}
}

func TestNewProjectLocker_InvalidTTL(t *testing.T) {
	if _, err := NewProjectLocker(nil, 0); !errors.Is(err, ErrInvalidLockTTL) {
		t.Errorf("expected ErrInvalidLockTTL, got %v", err)
	}
}
