package repository

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

func TestMemoryLocker(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	if err := l.Acquire(ctx, 1, "a"); err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	if err := l.Acquire(ctx, 1, "b"); !errors.Is(err, domain.ErrProjectBusy) {
		t.Errorf("second acquire = %v, want ErrProjectBusy", err)
	}
	if err := l.Acquire(ctx, 2, "b"); err != nil {
		t.Errorf("other project acquire: %v", err)
	}
	if err := l.Release(ctx, 1, "b"); !errors.Is(err, domain.ErrLockNotHeld) {
		t.Errorf("release with wrong token = %v, want ErrLockNotHeld", err)
	}
	if err := l.Release(ctx, 1, "a"); err != nil {
		t.Errorf("release: %v", err)
	}
	if err := l.Acquire(ctx, 1, "c"); err != nil {
		t.Errorf("acquire after release: %v", err)
	}
}

func TestMemoryLocker_Concurrent(t *testing.T) {
	ctx := context.Background()
	l := NewMemoryLocker()

	var wins atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Acquire(ctx, 7, "token") == nil {
				wins.Add(1)
			}
		}()
	}
	wg.Wait()

	if wins.Load() != 1 {
		t.Errorf("acquired %d times, want exactly once", wins.Load())
	}
}
