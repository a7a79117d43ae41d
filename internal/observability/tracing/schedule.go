package tracing

import (
	"context"
	"net/http"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/trace"
)

const scheduleTracerName = "github.com/KasumiMercury/primind-project-scheduling/internal/service/schedule"

func ScheduleTracer() trace.Tracer {
	return otel.Tracer(scheduleTracerName)
}

func StartRecalculateSpan(ctx context.Context, projectID int64, runID string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.recalculate",
		trace.WithAttributes(
			attribute.Int64("project.id", projectID),
			attribute.String("schedule.run_id", runID),
		),
	)
}

// StartPassSpan covers one stage of a recalculation: validate,
// forward_pass, backward_pass or write_back.
func StartPassSpan(ctx context.Context, pass string, taskCount, edgeCount int) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule."+pass,
		trace.WithAttributes(
			attribute.Int("graph.task_count", taskCount),
			attribute.Int("graph.edge_count", edgeCount),
		),
	)
}

func EndPassSpan(span trace.Span, err error) {
	setStatus(span, err)
	span.End()
}

func StartExternalAPISpan(ctx context.Context, operation, url string) (context.Context, trace.Span) {
	return ScheduleTracer().Start(ctx, "schedule.external_api."+operation,
		trace.WithAttributes(
			attribute.String("url", url),
		),
		trace.WithSpanKind(trace.SpanKindClient),
	)
}

func RecordRecalculateResult(span trace.Span, taskCount, criticalCount, writeFailures int, projectFinish time.Time, err error) {
	span.SetAttributes(
		attribute.Int("schedule.task_count", taskCount),
		attribute.Int("schedule.critical_count", criticalCount),
		attribute.Int("schedule.write_failures", writeFailures),
	)
	if !projectFinish.IsZero() {
		span.SetAttributes(attribute.String("schedule.project_finish", projectFinish.Format(time.DateOnly)))
	}
	setStatus(span, err)
}

func RecordCycleResult(span trace.Span, cycleCount int) {
	span.SetAttributes(attribute.Int("graph.cycle_count", cycleCount))
}

// InjectToHTTPRequest propagates the current trace to an outgoing request.
func InjectToHTTPRequest(ctx context.Context, req *http.Request) {
	otel.GetTextMapPropagator().Inject(ctx, propagation.HeaderCarrier(req.Header))
}

func setStatus(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetStatus(codes.Ok, "")
	}
}
