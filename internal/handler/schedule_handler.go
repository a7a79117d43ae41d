package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-project-scheduling/internal/domain"
	"github.com/KasumiMercury/primind-project-scheduling/internal/graphio"
	"github.com/KasumiMercury/primind-project-scheduling/internal/infra/recomputequeue"
	"github.com/KasumiMercury/primind-project-scheduling/internal/service/schedule"
)

//go:generate mockgen -source=schedule_handler.go -destination=schedule_handler_mock.go -package=handler

type ScheduleService interface {
	Recalculate(ctx context.Context, projectID domain.ProjectID) (*schedule.RecalculateResult, error)
	GetSchedule(ctx context.Context, projectID domain.ProjectID) (*domain.ComputedSchedule, error)
	Enqueue(ctx context.Context, projectID domain.ProjectID, reason string) (*schedule.EnqueueResult, error)
	DryRun(ctx context.Context, graph *domain.ProjectGraph, projectStart time.Time) (*domain.ComputedSchedule, error)
}

type ScheduleHandler struct {
	service ScheduleService
}

func NewScheduleHandler(service ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// Register mounts the schedule routes on r.
func (h *ScheduleHandler) Register(r gin.IRouter) {
	projects := r.Group("/api/v1/projects/:projectID/schedule")
	projects.GET("", h.HandleGetSchedule)
	projects.POST("/recalculate", h.HandleRecalculate)
	projects.POST("/enqueue", h.HandleEnqueue)

	r.POST("/api/v1/schedule/validate", h.HandleValidate)
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

type cycleErrorResponse struct {
	Error          string              `json:"error"`
	Message        string              `json:"message"`
	Cycles         []graphio.CycleView `json:"cycles"`
	OffendingEdges []graphio.EdgeView  `json:"offending_edges"`
}

type enqueueRequest struct {
	Reason string `json:"reason"`
}

type enqueueResponse struct {
	TaskName      string `json:"task_name"`
	AlreadyQueued bool   `json:"already_queued"`
}

func (h *ScheduleHandler) HandleRecalculate(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	result, err := h.service.Recalculate(ctx, projectID)
	if err != nil && !(errors.Is(err, domain.ErrWriteBackFailed) && result != nil) {
		respondServiceError(c, err)
		return
	}

	view := graphio.NewScheduleView(result.Schedule).WithWrites(result.WrittenCount, result.WriteErrors)
	if err != nil {
		slog.WarnContext(ctx, "schedule recalculated with write failures",
			slog.Int64("project_id", int64(projectID)),
			slog.Int("write_failures", len(result.WriteErrors)),
		)
	}

	c.JSON(http.StatusOK, view)
}

func (h *ScheduleHandler) HandleGetSchedule(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	cached, err := h.service.GetSchedule(ctx, projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, graphio.NewScheduleView(cached))
}

func (h *ScheduleHandler) HandleEnqueue(c *gin.Context) {
	ctx := c.Request.Context()

	projectID, ok := projectIDParam(c)
	if !ok {
		return
	}

	var req enqueueRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "validation_error", err.Error())
			return
		}
	}
	if req.Reason == "" {
		req.Reason = "api"
	}

	result, err := h.service.Enqueue(ctx, projectID, req.Reason)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, enqueueResponse{
		TaskName:      result.TaskName,
		AlreadyQueued: result.AlreadyQueued,
	})
}

func (h *ScheduleHandler) HandleValidate(c *gin.Context) {
	ctx := c.Request.Context()

	var doc graphio.GraphDocument
	if err := c.ShouldBindJSON(&doc); err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	graph, err := doc.ToDomain()
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}
	start, err := doc.StartDate()
	if err != nil {
		respondError(c, http.StatusBadRequest, "validation_error", err.Error())
		return
	}

	computed, err := h.service.DryRun(ctx, graph, start)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, graphio.NewScheduleView(computed))
}

func projectIDParam(c *gin.Context) (domain.ProjectID, bool) {
	raw := c.Param("projectID")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "invalid_project_id", "project id must be a positive integer")
		return 0, false
	}
	return domain.ProjectID(id), true
}

func respondServiceError(c *gin.Context, err error) {
	ctx := c.Request.Context()

	var cycleErr *domain.CycleDetectedError
	switch {
	case errors.As(err, &cycleErr):
		edges := cycleErr.OffendingEdges()
		views := make([]graphio.EdgeView, 0, len(edges))
		for _, e := range edges {
			views = append(views, graphio.NewEdgeView(e))
		}
		c.JSON(http.StatusUnprocessableEntity, cycleErrorResponse{
			Error:          "cyclic_graph",
			Message:        cycleErr.Error(),
			Cycles:         graphio.NewCycleViews(cycleErr),
			OffendingEdges: views,
		})
	case errors.Is(err, domain.ErrProjectBusy):
		respondError(c, http.StatusConflict, "project_busy", "a schedule recalculation is already running for this project")
	case errors.Is(err, domain.ErrScheduleNotFound):
		respondError(c, http.StatusNotFound, "not_found", "no computed schedule for this project")
	case errors.Is(err, recomputequeue.ErrQueueDisabled):
		respondError(c, http.StatusServiceUnavailable, "queue_disabled", "deferred recalculation is not configured")
	default:
		slog.ErrorContext(ctx, "schedule request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		respondError(c, http.StatusInternalServerError, "processing_error", "failed to process schedule request")
	}
}

func respondError(c *gin.Context, status int, errType, message string) {
	c.JSON(status, errorResponse{
		Error:   errType,
		Message: message,
	})
}
