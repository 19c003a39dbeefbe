// internal/interfaces/http/middleware/middleware_test.go
package middleware

import (
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/baankanom/bakery-backend/internal/config"
)

// closeNotifyRecorder adds the http.CloseNotifier implementation that
// gin's Context.Stream requires but httptest.ResponseRecorder lacks.
type closeNotifyRecorder struct {
	*httptest.ResponseRecorder
	closed chan bool
}

func newCloseNotifyRecorder() *closeNotifyRecorder {
	return &closeNotifyRecorder{httptest.NewRecorder(), make(chan bool, 1)}
}

func (r *closeNotifyRecorder) CloseNotify() <-chan bool {
	return r.closed
}

func newTestRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.POST("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	return r
}

func TestSecurityHeaders(t *testing.T) {
	r := newTestRouter(SecurityHeaders())

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/ping", nil)
	r.ServeHTTP(w, req)

	expected := map[string]string{
		"X-Frame-Options":        "DENY",
		"X-Content-Type-Options": "nosniff",
		"Referrer-Policy":        "strict-origin-when-cross-origin",
		"Server":                 "Bakery API",
	}
	for header, want := range expected {
		if got := w.Header().Get(header); got != want {
			t.Errorf("header %s = %q, want %q", header, got, want)
		}
	}
}

func TestRequestID(t *testing.T) {
	r := newTestRouter(RequestID())

	t.Run("generates an ID when none supplied", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		r.ServeHTTP(w, req)

		if w.Header().Get("X-Request-ID") == "" {
			t.Error("expected a generated X-Request-ID header")
		}
	})

	t.Run("honors an upstream ID", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("X-Request-ID", "upstream-id-123")
		r.ServeHTTP(w, req)

		if got := w.Header().Get("X-Request-ID"); got != "upstream-id-123" {
			t.Errorf("X-Request-ID = %q, want upstream-id-123", got)
		}
	})
}

func TestRequestSizeLimit(t *testing.T) {
	r := newTestRouter(RequestSizeLimit(16))

	t.Run("allows small bodies", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("POST", "/ping", strings.NewReader("ok"))
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
		}
	})

	t.Run("rejects oversized bodies", func(t *testing.T) {
		w := httptest.NewRecorder()
		body := strings.Repeat("x", 64)
		req := httptest.NewRequest("POST", "/ping", strings.NewReader(body))
		r.ServeHTTP(w, req)

		if w.Code != http.StatusRequestEntityTooLarge {
			t.Errorf("status = %d, want %d", w.Code, http.StatusRequestEntityTooLarge)
		}
	})
}

func TestTimeout(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("slow request gets 408", func(t *testing.T) {
		r := gin.New()
		timed := r.Group("", Timeout(30*time.Millisecond))
		timed.GET("/slow", func(c *gin.Context) {
			<-c.Request.Context().Done()
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/slow", nil)
		r.ServeHTTP(w, req)

		if w.Code != http.StatusRequestTimeout {
			t.Errorf("status = %d, want %d", w.Code, http.StatusRequestTimeout)
		}
	})

	t.Run("stream mounted outside the timed group outlives the timeout", func(t *testing.T) {
		r := gin.New()
		timed := r.Group("", Timeout(30*time.Millisecond))
		timed.GET("/other", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "ok"})
		})
		r.GET("/stream", func(c *gin.Context) {
			c.Writer.Header().Set("Content-Type", "text/event-stream")
			events := 0
			c.Stream(func(w io.Writer) bool {
				events++
				fmt.Fprintf(w, "event: count\ndata: {\"count\":%d}\n\n", events)
				if events == 2 {
					return false
				}
				time.Sleep(80 * time.Millisecond)
				return true
			})
		})

		w := newCloseNotifyRecorder()
		req := httptest.NewRequest("GET", "/stream", nil)
		r.ServeHTTP(w, req)

		body := w.Body.String()
		if !strings.Contains(body, `data: {"count":2}`) {
			t.Errorf("stream body missing second event: %q", body)
		}
		if strings.Contains(body, "Request timeout") {
			t.Errorf("timeout error leaked into the event stream: %q", body)
		}
	})
}

func TestCORS(t *testing.T) {
	cfg := &config.Config{}
	cfg.Security.CORSAllowedOrigins = []string{"https://baankanom.dev"}
	cfg.Security.CORSAllowedMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	cfg.Security.CORSAllowedHeaders = []string{"Content-Type", "Authorization"}

	r := newTestRouter(CORS(cfg))

	t.Run("allowed origin is echoed back", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "https://baankanom.dev")
		r.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://baankanom.dev" {
			t.Errorf("Access-Control-Allow-Origin = %q, want https://baankanom.dev", got)
		}
	})

	t.Run("unknown origin is not echoed", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("GET", "/ping", nil)
		req.Header.Set("Origin", "https://evil.example.com")
		r.ServeHTTP(w, req)

		if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
			t.Errorf("Access-Control-Allow-Origin = %q, want empty", got)
		}
	})

	t.Run("preflight short-circuits with 204", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest("OPTIONS", "/ping", nil)
		req.Header.Set("Origin", "https://baankanom.dev")
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNoContent {
			t.Errorf("status = %d, want %d", w.Code, http.StatusNoContent)
		}
	})
}
