package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
)

func TestNewLogger_ContextFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		Service:       ServiceInfo{Name: "scheduling", Version: "v1.2.3"},
		Environment:   EnvDev,
		DefaultModule: Module("project-scheduling"),
		Level:         slog.LevelInfo,
		Writer:        &buf,
	})

	ctx := WithRequestID(context.Background(), "req-1")
	ctx = WithModule(ctx, Module("cpm"))
	logger.InfoContext(ctx, "schedule computed", slog.Int("tasks", 3))

	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json log line: %v", err)
	}

	want := map[string]any{
		"message":    "schedule computed",
		"severity":   "INFO",
		"request_id": "req-1",
		"module":     "cpm",
		"env":        "dev",
		"tasks":      float64(3),
	}
	for k, v := range want {
		if got[k] != v {
			t.Errorf("%s = %v, want %v", k, got[k], v)
		}
	}

	service, ok := got["service"].(map[string]any)
	if !ok || service["name"] != "scheduling" || service["version"] != "v1.2.3" {
		t.Errorf("service = %v", got["service"])
	}
}

func TestNewLogger_DefaultModuleAndLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(Config{
		DefaultModule: Module("project-scheduling"),
		Level:         slog.LevelWarn,
		Writer:        &buf,
	})

	logger.InfoContext(context.Background(), "dropped")
	if buf.Len() != 0 {
		t.Fatalf("info record written at warn level: %s", buf.String())
	}

	logger.WarnContext(context.Background(), "kept")
	var got map[string]any
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("invalid json log line: %v", err)
	}
	if got["module"] != "project-scheduling" {
		t.Errorf("module = %v, want project-scheduling", got["module"])
	}
	if _, ok := got["request_id"]; ok {
		t.Errorf("request_id should be absent without one in context")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"warning", slog.LevelWarn},
		{" error ", slog.LevelError},
		{"", slog.LevelInfo},
		{"verbose", slog.LevelInfo},
	}

	for _, tt := range tests {
		if got := ParseLevel(tt.in); got != tt.want {
			t.Errorf("ParseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestValidateAndExtractRequestID(t *testing.T) {
	if got := ValidateAndExtractRequestID("abc-123"); got != "abc-123" {
		t.Errorf("valid id replaced: %q", got)
	}

	for _, bad := range []string{"", "has space", "line\nbreak"} {
		got := ValidateAndExtractRequestID(bad)
		if got == bad || got == "" {
			t.Errorf("ValidateAndExtractRequestID(%q) = %q, want generated id", bad, got)
		}
	}
}
