// Package testutil holds fixtures shared by the scheduling tests: a
// disposable redis for the lock and cache tests, and generated project
// graphs for the engine.
package testutil

import (
	"context"
	"testing"

	"github.com/redis/go-redis/v9"
	redismodule "github.com/testcontainers/testcontainers-go/modules/redis"
)

const redisImage = "redis:8-alpine"

// SetupRedisContainer starts a redis for the schedule cache and project lock
// tests. The test is skipped when no container runtime is available.
func SetupRedisContainer(ctx context.Context, t *testing.T) (*redis.Client, func()) {
	t.Helper()

	defer func() {
		if r := recover(); r != nil {
			t.Skipf("redis container unavailable for schedule tests: %v", r)
		}
	}()

	container, err := redismodule.Run(ctx, redisImage)
	if err != nil {
		t.Skipf("redis container unavailable for schedule tests: %v", err)
	}

	endpoint, err := container.Endpoint(ctx, "")
	if err != nil {
		_ = container.Terminate(ctx)
		t.Skipf("failed to resolve redis endpoint: %v", err)
	}

	client := redis.NewClient(&redis.Options{
		Addr:       endpoint,
		ClientName: "schedule-tests",
	})

	cleanup := func() {
		if err := client.Close(); err != nil {
			t.Logf("failed to close redis client: %v", err)
		}
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate redis container: %v", err)
		}
	}

	if err := client.Ping(ctx).Err(); err != nil {
		cleanup()
		t.Skipf("redis container not answering: %v", err)
	}

	return client, cleanup
}
