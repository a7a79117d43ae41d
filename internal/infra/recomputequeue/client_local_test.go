//go:build !gcloud

package recomputequeue

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

func TestPrimindTasksClient_EnqueueRecompute(t *testing.T) {
	window := time.Minute
	now := time.Date(2024, 1, 1, 9, 0, 10, 0, time.UTC)

	var (
		mu   sync.Mutex
		sent = map[string]PrimindTask{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/tasks/schedule", r.URL.Path)

		var req PrimindTaskRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		sent[req.Task.Name] = req.Task
		mu.Unlock()

		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{
			Name:       "queues/schedule/tasks/" + req.Task.Name,
			CreateTime: "2024-01-01T09:00:10Z",
		})
	}))
	defer srv.Close()

	c := NewPrimindTasksClient(srv.URL, "schedule", "http://scheduler/", 3)

	for _, id := range []int64{7, 8} {
		task := NewRecomputeTask(domain.ProjectID(id), "edge added", now, window)
		resp, err := c.EnqueueRecompute(context.Background(), task)
		require.NoError(t, err)
		assert.Equal(t, "queues/schedule/tasks/"+task.TaskID(), resp.Name)
		assert.False(t, resp.AlreadyQueued)
	}

	require.Len(t, sent, 2)

	tests := []struct {
		name    string
		task    string
		wantURL string
		body    string
	}{
		{
			name:    "project 7",
			task:    "project-7-recompute-1704099660",
			wantURL: "http://scheduler/api/v1/projects/7/schedule/recalculate",
			body:    `{"project_id":7,"reason":"edge added"}`,
		},
		{
			name:    "project 8",
			task:    "project-8-recompute-1704099660",
			wantURL: "http://scheduler/api/v1/projects/8/schedule/recalculate",
			body:    `{"project_id":8,"reason":"edge added"}`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := sent[tt.task]
			require.True(t, ok, "task %s not sent", tt.task)
			assert.Equal(t, tt.wantURL, got.HTTPRequest.URL)
			assert.Equal(t, "2024-01-01T09:01:00Z", got.ScheduleTime)

			body, err := base64.StdEncoding.DecodeString(got.HTTPRequest.Body)
			require.NoError(t, err)
			assert.JSONEq(t, tt.body, string(body))
		})
	}
}

func TestPrimindTasksClient_EnqueueRecompute_Window(t *testing.T) {
	// The emulator keeps every name it has seen, like Cloud Tasks keeps names
	// of executed tasks reserved.
	var (
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req PrimindTaskRequest
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		mu.Lock()
		defer mu.Unlock()
		if seen[req.Task.Name] {
			w.WriteHeader(http.StatusConflict)
			return
		}
		seen[req.Task.Name] = true
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(PrimindTaskResponse{Name: req.Task.Name})
	}))
	defer srv.Close()

	c := NewPrimindTasksClient(srv.URL, "default", "http://scheduler", 1)
	window := 30 * time.Second
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name       string
		at         time.Time
		wantQueued bool
	}{
		{name: "first trigger creates a task", at: base.Add(5 * time.Second)},
		{name: "trigger in the same window joins it", at: base.Add(20 * time.Second), wantQueued: true},
		{name: "trigger after the task ran creates a new one", at: base.Add(31 * time.Second)},
		{name: "later trigger in that window joins it", at: base.Add(59 * time.Second), wantQueued: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := c.EnqueueRecompute(context.Background(), NewRecomputeTask(3, "", tt.at, window))
			require.NoError(t, err)
			assert.Equal(t, tt.wantQueued, resp.AlreadyQueued)
		})
	}
	assert.Len(t, seen, 2)
}

func TestPrimindTasksClient_EnqueueRecompute_Retries(t *testing.T) {
	tests := []struct {
		name        string
		statuses    []int
		wantErr     bool
		wantQueued  bool
		wantAttempt int32
	}{
		{name: "recovers after server error", statuses: []int{500, 201}, wantAttempt: 2},
		{name: "conflict means already queued", statuses: []int{409}, wantQueued: true, wantAttempt: 1},
		{name: "client error is not retried", statuses: []int{400}, wantErr: true, wantAttempt: 1},
		{name: "gives up after max retries", statuses: []int{503, 503, 503}, wantErr: true, wantAttempt: 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var calls atomic.Int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				n := calls.Add(1)
				code := tt.statuses[int(n)-1]
				w.WriteHeader(code)
				if code == http.StatusCreated {
					_, _ = w.Write([]byte(`{"name":"t"}`))
				}
			}))
			defer srv.Close()

			c := NewPrimindTasksClient(srv.URL, "default", "http://scheduler", 3)
			resp, err := c.EnqueueRecompute(context.Background(), &RecomputeTask{ProjectID: 1})

			if tt.wantErr {
				assert.Error(t, err)
			} else {
				require.NoError(t, err)
				assert.Equal(t, tt.wantQueued, resp.AlreadyQueued)
			}
			assert.Equal(t, tt.wantAttempt, calls.Load())
		})
	}
}
