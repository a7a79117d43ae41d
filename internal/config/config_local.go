//go:build !gcloud

package config

import "errors"

// Validate accepts an empty PRIMIND_TASKS_URL; the queue is then disabled.
func (c *TaskQueueConfig) Validate() error {
	if c.PrimindTasksURL != "" && c.CallbackBaseURL == "" {
		return errors.New("RECOMPUTE_CALLBACK_BASE_URL is required when PRIMIND_TASKS_URL is set")
	}
	return nil
}
