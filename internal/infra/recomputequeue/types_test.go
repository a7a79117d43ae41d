package recomputequeue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewRecomputeTask(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name   string
		at     time.Time
		window time.Duration
		want   time.Time
	}{
		{name: "inside window", at: base.Add(10 * time.Second), window: time.Minute, want: base.Add(time.Minute)},
		{name: "on boundary starts next window", at: base.Add(time.Minute), window: time.Minute, want: base.Add(2 * time.Minute)},
		{name: "zero window uses default", at: base.Add(time.Second), window: 0, want: base.Add(DefaultWindow)},
		{name: "non utc input", at: base.In(time.FixedZone("JST", 9*60*60)).Add(5 * time.Second), window: time.Minute, want: base.Add(time.Minute)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			task := NewRecomputeTask(5, "api", tt.at, tt.window)
			assert.True(t, task.ScheduleAt.Equal(tt.want), "ScheduleAt = %v, want %v", task.ScheduleAt, tt.want)
		})
	}
}

func TestRecomputeTask_TaskID(t *testing.T) {
	at := time.Date(2024, 1, 1, 9, 0, 10, 0, time.UTC)

	a := NewRecomputeTask(5, "", at, time.Minute)
	b := NewRecomputeTask(5, "other", at.Add(30*time.Second), time.Minute)
	next := NewRecomputeTask(5, "", at.Add(time.Minute), time.Minute)
	other := NewRecomputeTask(6, "", at, time.Minute)

	assert.Equal(t, "project-5-recompute-1704099660", a.TaskID())
	assert.Equal(t, a.TaskID(), b.TaskID())
	assert.NotEqual(t, a.TaskID(), next.TaskID())
	assert.NotEqual(t, a.TaskID(), other.TaskID())
	assert.Equal(t, "project-5-recompute", (&RecomputeTask{ProjectID: 5}).TaskID())
}

func TestRecomputeTask_CallbackURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{base: "http://scheduler", want: "http://scheduler/api/v1/projects/12/schedule/recalculate"},
		{base: "https://scheduler.run.app/", want: "https://scheduler.run.app/api/v1/projects/12/schedule/recalculate"},
	}

	for _, tt := range tests {
		t.Run(tt.base, func(t *testing.T) {
			assert.Equal(t, tt.want, (&RecomputeTask{ProjectID: 12}).CallbackURL(tt.base))
		})
	}
}
