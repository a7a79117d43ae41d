package recomputequeue

import (
	"context"
)

//go:generate mockgen -source=queue.go -destination=mock.go -package=recomputequeue

// Queue defers project recomputes to an HTTP task queue that calls back
// into the recalculate endpoint of the task's project.
type Queue interface {
	EnqueueRecompute(ctx context.Context, task *RecomputeTask) (*TaskResponse, error)
}
