//go:build gcloud

package recomputequeue

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	cloudtasks "cloud.google.com/go/cloudtasks/apiv2"
	taskspb "cloud.google.com/go/cloudtasks/apiv2/cloudtaskspb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/timestamppb"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
)

type CloudTasksClient struct {
	client          *cloudtasks.Client
	projectID       string
	locationID      string
	queueID         string
	callbackBaseURL string
	maxRetries      int
}

type CloudTasksConfig struct {
	ProjectID       string
	LocationID      string
	QueueID         string
	CallbackBaseURL string
	Endpoint        string
	MaxRetries      int
}

func NewCloudTasksClient(ctx context.Context, cfg CloudTasksConfig) (*CloudTasksClient, error) {
	var opts []option.ClientOption
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithEndpoint(cfg.Endpoint))
	}

	client, err := cloudtasks.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloud tasks client: %w", err)
	}

	maxRetries := cfg.MaxRetries
	if maxRetries <= 0 {
		maxRetries = 3
	}

	return &CloudTasksClient{
		client:          client,
		projectID:       cfg.ProjectID,
		locationID:      cfg.LocationID,
		queueID:         cfg.QueueID,
		callbackBaseURL: cfg.CallbackBaseURL,
		maxRetries:      maxRetries,
	}, nil
}

func (c *CloudTasksClient) queuePath() string {
	return fmt.Sprintf("projects/%s/locations/%s/queues/%s", c.projectID, c.locationID, c.queueID)
}

func (c *CloudTasksClient) EnqueueRecompute(ctx context.Context, task *RecomputeTask) (*TaskResponse, error) {
	payload, err := json.Marshal(task)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal recompute task: %w", err)
	}

	cloudTask := &taskspb.Task{
		Name: c.queuePath() + "/tasks/" + task.TaskID(),
		MessageType: &taskspb.Task_HttpRequest{
			HttpRequest: &taskspb.HttpRequest{
				HttpMethod: taskspb.HttpMethod_POST,
				Url:        task.CallbackURL(c.callbackBaseURL),
				Headers: map[string]string{
					"Content-Type": "application/json",
				},
				Body: payload,
			},
		},
	}
	if !task.ScheduleAt.IsZero() {
		cloudTask.ScheduleTime = timestamppb.New(task.ScheduleAt)
	}

	req := &taskspb.CreateTaskRequest{
		Parent: c.queuePath(),
		Task:   cloudTask,
	}

	var resp *TaskResponse
	err = retry(ctx, c.maxRetries, "recompute enqueue", func() (bool, error) {
		r, permanent, createErr := c.createTask(ctx, req, task.ProjectID)
		resp = r
		return permanent, createErr
	})
	if err != nil {
		return nil, fmt.Errorf("failed to enqueue recompute after %d attempts: %w", c.maxRetries, err)
	}
	return resp, nil
}

func (c *CloudTasksClient) createTask(ctx context.Context, req *taskspb.CreateTaskRequest, projectID domain.ProjectID) (*TaskResponse, bool, error) {
	createdTask, err := c.client.CreateTask(ctx, req)
	if err != nil {
		switch status.Code(err) {
		case codes.AlreadyExists:
			slog.InfoContext(ctx, "recompute already queued",
				slog.Int64("project_id", int64(projectID)),
			)
			return &TaskResponse{Name: req.Task.Name, AlreadyQueued: true}, true, nil
		case codes.InvalidArgument, codes.PermissionDenied, codes.NotFound:
			return nil, true, fmt.Errorf("failed to create cloud task: %w", err)
		}

		slog.WarnContext(ctx, "failed to create cloud task",
			slog.Int64("project_id", int64(projectID)),
			slog.String("error", err.Error()),
		)
		return nil, false, fmt.Errorf("failed to create cloud task: %w", err)
	}

	slog.InfoContext(ctx, "recompute task registered to Cloud Tasks",
		slog.String("task_name", createdTask.Name),
		slog.Int64("project_id", int64(projectID)),
	)

	resp := &TaskResponse{Name: createdTask.Name}
	if createdTask.ScheduleTime != nil {
		resp.ScheduleTime = createdTask.ScheduleTime.AsTime()
	}
	if createdTask.CreateTime != nil {
		resp.CreateTime = createdTask.CreateTime.AsTime()
	}
	return resp, false, nil
}

func (c *CloudTasksClient) Close() error {
	return c.client.Close()
}
