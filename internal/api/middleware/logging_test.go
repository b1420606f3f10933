package middleware_test

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shresthasriv/ecom-nexora/internal/api/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLogging(t *testing.T) {
	t.Run("Generates correlation id and injects logger", func(t *testing.T) {
		// Arrange
		var gotLogger bool
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, gotLogger = r.Context().Value(middleware.LoggerKey).(*slog.Logger)
			w.WriteHeader(http.StatusCreated)
		})
		req := httptest.NewRequest(http.MethodPost, "/api/cart", nil)
		rr := httptest.NewRecorder()

		// Act
		middleware.Logging(next).ServeHTTP(rr, req)

		// Assert
		assert.True(t, gotLogger)
		assert.Equal(t, http.StatusCreated, rr.Code)
		assert.NotEmpty(t, rr.Header().Get("X-Request-ID"))
	})

	t.Run("Keeps the caller's request id", func(t *testing.T) {
		// Arrange
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		req := httptest.NewRequest(http.MethodGet, "/api/cart", nil)
		req.Header.Set("X-Request-ID", "req-123")
		rr := httptest.NewRecorder()

		// Act
		middleware.Logging(next).ServeHTTP(rr, req)

		// Assert
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, "req-123", rr.Header().Get("X-Request-ID"))
	})
}

func TestLoggerFromContextFallsBack(t *testing.T) {
	assert.NotNil(t, middleware.LoggerFromContext(context.Background()))
}

func captureDefaultLogger(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { slog.SetDefault(previous) })

	return &buf
}

func TestLoggingLevels(t *testing.T) {
	t.Run("Server errors are logged at error level with size", func(t *testing.T) {
		// Arrange
		buf := captureDefaultLogger(t)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("upstream"))
		})
		req := httptest.NewRequest(http.MethodGet, "/api/products", nil)

		// Act
		middleware.Logging(next).ServeHTTP(httptest.NewRecorder(), req)

		// Assert
		out := buf.String()
		assert.Contains(t, out, `"level":"ERROR"`)
		assert.Contains(t, out, `"http_status":502`)
		assert.Contains(t, out, `"response_bytes":8`)
	})

	t.Run("Healthy probes are not logged", func(t *testing.T) {
		// Arrange
		buf := captureDefaultLogger(t)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)

		// Act
		middleware.Logging(next).ServeHTTP(httptest.NewRecorder(), req)

		// Assert
		assert.Empty(t, buf.String())
	})

	t.Run("Failing probes are logged", func(t *testing.T) {
		// Arrange
		buf := captureDefaultLogger(t)
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		req := httptest.NewRequest(http.MethodGet, "/health", nil)

		// Act
		middleware.Logging(next).ServeHTTP(httptest.NewRecorder(), req)

		// Assert
		assert.Contains(t, buf.String(), `"http_status":503`)
	})
}
