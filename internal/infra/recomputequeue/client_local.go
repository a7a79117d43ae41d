//go:build !gcloud

package recomputequeue

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-project-scheduling/internal/observability/tracing"
)

// PrimindTasksClient talks to the Cloud Tasks compatible emulator used in
// local development.
type PrimindTasksClient struct {
	baseURL   string
	queueName string
	// callbackBaseURL is where the emulator reaches this service.
	callbackBaseURL string
	httpClient      *http.Client
	maxRetries      int
}

func NewPrimindTasksClient(baseURL, queueName, callbackBaseURL string, maxRetries int) *PrimindTasksClient {
	if maxRetries <= 0 {
		maxRetries = 3
	}
	return &PrimindTasksClient{
		baseURL:         baseURL,
		queueName:       queueName,
		callbackBaseURL: callbackBaseURL,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
		maxRetries: maxRetries,
	}
}

func (c *PrimindTasksClient) queueURL() string {
	if c.queueName != "" && c.queueName != "default" {
		return fmt.Sprintf("%s/tasks/%s", c.baseURL, c.queueName)
	}
	return fmt.Sprintf("%s/tasks", c.baseURL)
}

func (c *PrimindTasksClient) EnqueueRecompute(ctx context.Context, task *RecomputeTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recompute task: %w", err)
	}

	primindReq := PrimindTaskRequest{
		Task: PrimindTask{
			Name: task.TaskID(),
			HTTPRequest: PrimindHTTPRequest{
				URL:  task.CallbackURL(c.callbackBaseURL),
				Body: base64.StdEncoding.EncodeToString(payload),
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
			},
		},
	}
	if !task.ScheduleAt.IsZero() {
		primindReq.Task.ScheduleTime = task.ScheduleAt.Format(time.RFC3339)
	}

	reqBody, err := json.Marshal(primindReq)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal primind request: %w", err)
	}

	var resp *TaskResponse
	err = retry(ctx, c.maxRetries, "recompute enqueue", func() (bool, error) {
		r, permanent, reqErr := c.doRequest(ctx, reqBody, task.ProjectID)
		resp = r
		return permanent, reqErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue recompute after %d attempts: %w", c.maxRetries, err)
	}
	return resp, nil
}

func (c *PrimindTasksClient) doRequest(ctx context.Context, reqBody []byte, projectID domain.ProjectID) (*TaskResponse, bool, error) {
	url := c.queueURL()

	ctx, span := tracing.StartExternalAPISpan(ctx, "enqueue_recompute", url)
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(reqBody))
	if err != nil {
		return nil, true, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	tracing.InjectToHTTPRequest(ctx, req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		slog.WarnContext(ctx, "failed to send request to Primind Tasks",
			slog.Int64("project_id", int64(projectID)),
			slog.String("error", err.Error()),
		)
		return nil, false, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusConflict:
		slog.InfoContext(ctx, "recompute already queued",
			slog.Int64("project_id", int64(projectID)),
		)
		return &TaskResponse{AlreadyQueued: true}, true, nil
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, true, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	case resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated:
		slog.WarnContext(ctx, "unexpected status code from Primind Tasks",
			slog.Int64("project_id", int64(projectID)),
			slog.Int("status_code", resp.StatusCode),
		)
		return nil, false, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	var primindResp PrimindTaskResponse
	if err := json.NewDecoder(resp.Body).Decode(&primindResp); err != nil {
		return nil, false, fmt.Errorf("failed to decode response: %w", err)
	}

	scheduleTime, _ := time.Parse(time.RFC3339, primindResp.ScheduleTime)
	createTime, _ := time.Parse(time.RFC3339, primindResp.CreateTime)

	slog.InfoContext(ctx, "recompute task registered to Primind Tasks",
		slog.String("task_name", primindResp.Name),
		slog.Int64("project_id", int64(projectID)),
	)

	return &TaskResponse{
		Name:         primindResp.Name,
		ScheduleTime: scheduleTime,
		CreateTime:   createTime,
	}, false, nil
}

func (c *PrimindTasksClient) Close() error {
	c.httpClient.CloseIdleConnections()
	return nil
}
