package recomputequeue

import (
	"context"
	"log/slog"
	"math"
	"time"
)

// retry runs op up to attempts times with exponential backoff starting at
// 100ms. It stops early when op reports the error as permanent.
func retry(ctx context.Context, attempts int, name string, op func() (permanent bool, err error)) error {
	var lastErr error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			backoff := time.Duration(math.Pow(2, float64(attempt-1))) * 100 * time.Millisecond
			slog.DebugContext(ctx, "retrying "+name,
				slog.Int("attempt", attempt+1),
				slog.Duration("backoff", backoff),
			)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(backoff):
			}
		}

		permanent, err := op()
		if err == nil {
			return nil
		}
		lastErr = err
		if permanent {
			return err
		}
	}

	slog.ErrorContext(ctx, "all retries exhausted for "+name,
		slog.Int("max_retries", attempts),
		slog.String("error", lastErr.Error()),
	)
	return lastErr
}
