package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/KasumiMercury/primind-project-scheduling/internal/observability/logging"
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(Gin(GinConfig{
		SkipPaths:  []string{"/health"},
		Module:     logging.Module("project-scheduling"),
		TracerName: "test",
	}))
	r.Use(PanicRecoveryGin())

	r.GET("/health", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/echo", func(c *gin.Context) {
		c.String(http.StatusOK, logging.RequestIDFromContext(c.Request.Context()))
	})
	r.GET("/panic", func(c *gin.Context) { panic("boom") })

	return r
}

func TestGin_RequestID(t *testing.T) {
	r := newRouter()

	t.Run("propagates caller id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/echo", nil)
		req.Header.Set(logging.RequestIDHeader, "abc-123")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Body.String() != "abc-123" {
			t.Errorf("request id in context = %q, want abc-123", w.Body.String())
		}
		if got := w.Header().Get(logging.RequestIDHeader); got != "abc-123" {
			t.Errorf("response header = %q, want abc-123", got)
		}
	})

	t.Run("generates id when missing", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/echo", nil))

		if w.Body.String() == "" {
			t.Error("expected generated request id")
		}
		if w.Body.String() != w.Header().Get(logging.RequestIDHeader) {
			t.Error("response header and context id differ")
		}
	})

	t.Run("skipped path has no id", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))

		if got := w.Header().Get(logging.RequestIDHeader); got != "" {
			t.Errorf("skipped path got request id %q", got)
		}
	})
}

func TestPanicRecoveryGin(t *testing.T) {
	r := newRouter()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", w.Code)
	}
}
