package recomputequeue

import "errors"

var ErrQueueDisabled = errors.New("recompute queue not configured")
