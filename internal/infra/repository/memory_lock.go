package repository

import (
	"context"
	"sync"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

// MemoryLocker serializes recomputes within one process. It is used when no
// redis is configured.
type MemoryLocker struct {
	mu      sync.Mutex
	holders map[domain.ProjectID]string
}

func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{holders: make(map[domain.ProjectID]string)}
}

func (l *MemoryLocker) Acquire(_ context.Context, projectID domain.ProjectID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if _, held := l.holders[projectID]; held {
		return domain.ErrProjectBusy
	}
	l.holders[projectID] = token
	return nil
}

func (l *MemoryLocker) Release(_ context.Context, projectID domain.ProjectID, token string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.holders[projectID] != token {
		return domain.ErrLockNotHeld
	}
	delete(l.holders, projectID)
	return nil
}
