package repository

import (
	"context"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

const (
	lockKeyPrefix = "schedule:lock:"
)

// releaseScript deletes the lock only while it still carries the caller's
// token.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

func lockKey(projectID domain.ProjectID) string {
	return lockKeyPrefix + strconv.FormatInt(int64(projectID), 10)
}

type projectLocker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewProjectLocker returns a redis lock per project. The TTL bounds how long
// a crashed holder can block recomputes.
func NewProjectLocker(client *redis.Client, ttl time.Duration) (domain.ProjectLocker, error) {
	if ttl <= 0 {
		return nil, ErrInvalidLockTTL
	}
	return &projectLocker{
		client: client,
		ttl:    ttl,
	}, nil
}

func (l *projectLocker) Acquire(ctx context.Context, projectID domain.ProjectID, token string) error {
	ok, err := l.client.SetNX(ctx, lockKey(projectID), token, l.ttl).Result()
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrProjectBusy
	}
	return nil
}

func (l *projectLocker) Release(ctx context.Context, projectID domain.ProjectID, token string) error {
	n, err := releaseScript.Run(ctx, l.client, []string{lockKey(projectID)}, token).Int()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrLockNotHeld
	}
	return nil
}
