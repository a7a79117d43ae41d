package recomputequeue

import (
	"fmt"
	"strings"
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

const DefaultWindow = 30 * time.Second

type RecomputeTask struct {
	ProjectID domain.ProjectID `json:"project_id"`
	Reason    string           `json:"reason,omitempty"`
	// ScheduleAt is the end of the debounce window the trigger fell into.
	// The queue calls back then, and it is part of the task name.
	ScheduleAt time.Time `json:"-"`
}

// NewRecomputeTask places a trigger at now into its debounce window. Every
// trigger inside one window maps to the same task.
func NewRecomputeTask(projectID domain.ProjectID, reason string, now time.Time, window time.Duration) *RecomputeTask {
	if window <= 0 {
		window = DefaultWindow
	}
	return &RecomputeTask{
		ProjectID:  projectID,
		Reason:     reason,
		ScheduleAt: now.UTC().Truncate(window).Add(window),
	}
}

// TaskID names the task after its project and window. A task that already
// ran belongs to a past window, so a reserved name never swallows a new
// trigger.
func (t *RecomputeTask) TaskID() string {
	if t.ScheduleAt.IsZero() {
		return fmt.Sprintf("project-%d-recompute", t.ProjectID)
	}
	return fmt.Sprintf("project-%d-recompute-%d", t.ProjectID, t.ScheduleAt.Unix())
}

// CallbackURL is the recalculate endpoint of the task's project under base.
func (t *RecomputeTask) CallbackURL(base string) string {
	return fmt.Sprintf("%s/api/v1/projects/%d/schedule/recalculate", strings.TrimRight(base, "/"), t.ProjectID)
}

type TaskResponse struct {
	Name          string    `json:"name"`
	ScheduleTime  time.Time `json:"schedule_time"`
	CreateTime    time.Time `json:"create_time"`
	AlreadyQueued bool      `json:"already_queued"`
}

type PrimindTaskRequest struct {
	Task PrimindTask `json:"task"`
}

type PrimindTask struct {
	Name         string             `json:"name,omitempty"`
	HTTPRequest  PrimindHTTPRequest `json:"httpRequest"`
	ScheduleTime string             `json:"scheduleTime,omitempty"`
}

type PrimindHTTPRequest struct {
	URL     string            `json:"url,omitempty"`
	Body    string            `json:"body"`
	Headers map[string]string `json:"headers,omitempty"`
}

type PrimindTaskResponse struct {
	Name         string `json:"name"`
	ScheduleTime string `json:"scheduleTime"`
	CreateTime   string `json:"createTime"`
}
