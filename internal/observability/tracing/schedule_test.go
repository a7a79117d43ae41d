package tracing

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func setupRecorder(t *testing.T) *tracetest.SpanRecorder {
	t.Helper()

	recorder := tracetest.NewSpanRecorder()
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(recorder))
	prev := otel.GetTracerProvider()
	otel.SetTracerProvider(tp)
	t.Cleanup(func() {
		otel.SetTracerProvider(prev)
		_ = tp.Shutdown(context.Background())
	})

	return recorder
}

func TestPassSpanStatus(t *testing.T) {
	recorder := setupRecorder(t)

	_, ok := StartPassSpan(context.Background(), "forward_pass", 4, 3)
	EndPassSpan(ok, nil)

	_, failed := StartPassSpan(context.Background(), "backward_pass", 4, 3)
	EndPassSpan(failed, errors.New("walk failed"))

	spans := recorder.Ended()
	if len(spans) != 2 {
		t.Fatalf("ended spans = %d, want 2", len(spans))
	}
	if spans[0].Name() != "schedule.forward_pass" || spans[0].Status().Code != codes.Ok {
		t.Errorf("span 0 = %s/%v", spans[0].Name(), spans[0].Status().Code)
	}
	if spans[1].Name() != "schedule.backward_pass" || spans[1].Status().Code != codes.Error {
		t.Errorf("span 1 = %s/%v", spans[1].Name(), spans[1].Status().Code)
	}
}

func TestRecordRecalculateResult(t *testing.T) {
	recorder := setupRecorder(t)

	_, span := StartRecalculateSpan(context.Background(), 42, "run-1")
	RecordRecalculateResult(span, 5, 2, 0, time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC), nil)
	span.End()

	spans := recorder.Ended()
	if len(spans) != 1 {
		t.Fatalf("ended spans = %d, want 1", len(spans))
	}

	attrs := map[string]string{}
	for _, kv := range spans[0].Attributes() {
		attrs[string(kv.Key)] = kv.Value.Emit()
	}
	want := map[string]string{
		"project.id":              "42",
		"schedule.run_id":         "run-1",
		"schedule.critical_count": "2",
		"schedule.project_finish": "2024-01-09",
	}
	for k, v := range want {
		if attrs[k] != v {
			t.Errorf("%s = %q, want %q", k, attrs[k], v)
		}
	}
}

func TestInjectToHTTPRequest(t *testing.T) {
	setupRecorder(t)
	prev := otel.GetTextMapPropagator()
	otel.SetTextMapPropagator(propagation.TraceContext{})
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })

	ctx, span := StartRecalculateSpan(context.Background(), 1, "run")
	defer span.End()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, "http://example.invalid", nil)
	if err != nil {
		t.Fatal(err)
	}
	InjectToHTTPRequest(ctx, req)

	if req.Header.Get("traceparent") == "" {
		t.Error("traceparent header not set")
	}
}
