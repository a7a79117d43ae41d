package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"connectrpc.com/connect"
	"connectrpc.com/grpchealth"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	return db
}

func closeDB(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql handle: %v", err)
	}
	if err := sqlDB.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}
}

func TestCheck(t *testing.T) {
	healthyDB := openDB(t)
	t.Cleanup(func() { closeDB(t, healthyDB) })

	closedDB := openDB(t)
	closeDB(t, closedDB)

	tests := []struct {
		name       string
		db         *gorm.DB
		wantStatus Status
		wantChecks int
	}{
		{name: "no dependencies", wantStatus: StatusHealthy, wantChecks: 0},
		{name: "database up", db: healthyDB, wantStatus: StatusHealthy, wantChecks: 1},
		{name: "database closed", db: closedDB, wantStatus: StatusUnhealthy, wantChecks: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := NewChecker(tt.db, nil, "v1.2.3")

			status := c.Check(context.Background())

			if status.Status != tt.wantStatus {
				t.Errorf("status = %s, want %s", status.Status, tt.wantStatus)
			}
			if len(status.Checks) != tt.wantChecks {
				t.Errorf("checks = %v, want %d entries", status.Checks, tt.wantChecks)
			}
			if status.Version != "v1.2.3" {
				t.Errorf("version = %q", status.Version)
			}
		})
	}
}

func TestReadyHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)

	closedDB := openDB(t)
	closeDB(t, closedDB)

	r := gin.New()
	NewChecker(closedDB, nil, "dev").Register(r)

	tests := []struct {
		path       string
		wantStatus int
	}{
		{path: "/health/live", wantStatus: http.StatusOK},
		{path: "/health/ready", wantStatus: http.StatusServiceUnavailable},
		{path: "/health", wantStatus: http.StatusServiceUnavailable},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))

			if w.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			var body map[string]any
			if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid JSON: %v", err)
			}
		})
	}
}

func TestGRPCChecker(t *testing.T) {
	db := openDB(t)
	t.Cleanup(func() { closeDB(t, db) })

	closedDB := openDB(t)
	closeDB(t, closedDB)

	tests := []struct {
		name       string
		db         *gorm.DB
		service    string
		wantStatus grpchealth.Status
		wantCode   connect.Code
	}{
		{name: "server serving", db: db, wantStatus: grpchealth.StatusServing},
		{name: "named service serving", db: db, service: ServiceName, wantStatus: grpchealth.StatusServing},
		{name: "dependency down", db: closedDB, wantStatus: grpchealth.StatusNotServing},
		{name: "unknown service", db: db, service: "other.Service", wantCode: connect.CodeNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			checker := NewChecker(tt.db, nil, "dev").GRPCChecker()

			resp, err := checker.Check(context.Background(), &grpchealth.CheckRequest{Service: tt.service})

			if tt.wantCode != 0 {
				var connectErr *connect.Error
				if !errors.As(err, &connectErr) || connectErr.Code() != tt.wantCode {
					t.Fatalf("error = %v, want code %v", err, tt.wantCode)
				}
				return
			}
			if err != nil {
				t.Fatalf("Check: %v", err)
			}
			if resp.Status != tt.wantStatus {
				t.Errorf("status = %v, want %v", resp.Status, tt.wantStatus)
			}
		})
	}
}
