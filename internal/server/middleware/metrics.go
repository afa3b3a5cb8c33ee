package middleware

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/wordser/wordser/internal/observability"
)

// HTTP metric names
const (
	RequestsTotalName       = "http_requests_total"
	RequestDurationName     = "http_request_duration_ms"
	RequestSizeName         = "http_request_size_bytes"
	ResponseSizeName        = "http_response_size_bytes"
	HTTPErrorsTotalName     = "http_errors_total"
	unknownEndpointCategory = "/unknown"
)

// statusRecorder captures the status code and body size written by a handler.
type statusRecorder struct {
	http.ResponseWriter
	statusCode   int
	bytesWritten int64
}

func (rw *statusRecorder) WriteHeader(code int) {
	rw.statusCode = code
	rw.ResponseWriter.WriteHeader(code)
}

func (rw *statusRecorder) Write(b []byte) (int, error) {
	n, err := rw.ResponseWriter.Write(b)
	rw.bytesWritten += int64(n)
	return n, err
}

// getEndpointPattern returns the chi route pattern, or a coarse category for
// requests that never matched a route. Raw paths carry user terms and must
// not become label values.
func getEndpointPattern(r *http.Request) string {
	if pattern := chi.RouteContext(r.Context()).RoutePattern(); pattern != "" {
		return pattern
	}

	path := r.URL.Path
	switch {
	case path == "/health" || strings.HasPrefix(path, "/health/"):
		return "/health/*"
	case strings.HasPrefix(path, "/api/v1/"):
		return "/api/v1/*"
	case path == "/version", path == "/metrics", path == "/echo", path == "/":
		return path
	default:
		return unknownEndpointCategory
	}
}

// RequestMetrics emits request counters, latency and size gauges for every
// request, then logs a one-line summary.
func RequestMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if observability.TelemetrySystem == nil {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, statusCode: http.StatusOK}

		var requestSize int64
		if r.ContentLength > 0 {
			requestSize = r.ContentLength
		} else if cl := r.Header.Get("Content-Length"); cl != "" {
			if size, err := strconv.ParseInt(cl, 10, 64); err == nil {
				requestSize = size
			}
		}

		next.ServeHTTP(rec, r)

		duration := time.Since(start)
		endpoint := getEndpointPattern(r)
		status := strconv.Itoa(rec.statusCode)
		sys := observability.TelemetrySystem

		labels := map[string]string{"method": r.Method, "endpoint": endpoint, "status": status}
		sizeLabels := map[string]string{"method": r.Method, "endpoint": endpoint}

		_ = sys.Counter(RequestsTotalName, 1, labels)
		_ = sys.Histogram(RequestDurationName, duration, labels)
		_ = sys.Gauge(RequestSizeName, float64(requestSize), sizeLabels)
		_ = sys.Gauge(ResponseSizeName, float64(rec.bytesWritten), sizeLabels)

		if class := errorClass(rec.statusCode); class != "" {
			_ = sys.Counter(HTTPErrorsTotalName, 1, map[string]string{
				"method":     r.Method,
				"endpoint":   endpoint,
				"status":     status,
				"error_type": class,
			})
		}

		// The path is omitted: lookup terms arrive in the query string and
		// summary text can be arbitrarily long.
		if logger := observability.ServerLogger; logger != nil {
			logger.Info("HTTP request completed",
				zap.String("method", r.Method),
				zap.String("endpoint", endpoint),
				zap.Int("status", rec.statusCode),
				zap.Duration("duration", duration),
				zap.Int64("request_size", requestSize),
				zap.Int64("response_size", rec.bytesWritten),
				zap.String("requestID", GetRequestID(r.Context())),
			)
		}
	})
}

func errorClass(status int) string {
	switch {
	case status >= 500:
		return "server_error"
	case status >= 400:
		return "client_error"
	default:
		return ""
	}
}
