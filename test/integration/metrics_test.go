package integration

import (
	"errors"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wordser/wordser/internal/config"
	"github.com/wordser/wordser/internal/core/engine"
	"github.com/wordser/wordser/internal/core/inference"
	"github.com/wordser/wordser/internal/core/provider"
	"github.com/wordser/wordser/internal/observability"
	"github.com/wordser/wordser/internal/server"
	"github.com/wordser/wordser/internal/server/handlers"
)

// cleanupMetrics tears down global telemetry state so each test starts clean.
// Lingering exporters can block later binds in sandboxes.
func cleanupMetrics(t *testing.T) {
	t.Helper()
	t.Cleanup(func() {
		_ = observability.ShutdownMetrics()
	})
}

// isPermissionError normalizes OS-specific permission errors so tests can
// skip when loopback sockets are blocked.
func isPermissionError(err error) bool {
	if err == nil {
		return false
	}

	if errors.Is(err, os.ErrPermission) || errors.Is(err, syscall.EACCES) {
		return true
	}

	msg := strings.ToLower(err.Error())
	for _, fragment := range []string{"permission denied", "operation not permitted", "not permitted"} {
		if strings.Contains(msg, fragment) {
			return true
		}
	}

	return false
}

func initMetricsOrSkip(t *testing.T) {
	t.Helper()

	if err := observability.InitMetrics("test", 0); err != nil {
		if isPermissionError(err) {
			t.Skipf("skipping metrics tests due to sandbox permissions: %v", err)
		}
		require.NoError(t, err)
	}

	cleanupMetrics(t)
}

func listenOrSkip(t *testing.T) net.Listener {
	t.Helper()
	listener, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		if isPermissionError(err) {
			t.Skipf("skipping server setup: %v", err)
		}
		require.NoError(t, err)
	}
	return listener
}

// newThesaurusUpstream fakes the Merriam-Webster endpoint. Words starting
// with "x" return an unusable payload and "boom" returns 502.
func newThesaurusUpstream(t *testing.T) string {
	t.Helper()
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		word := strings.TrimPrefix(r.URL.Path, "/")
		w.Header().Set("Content-Type", "application/json")
		switch {
		case word == "boom":
			w.WriteHeader(http.StatusBadGateway)
		case strings.HasPrefix(word, "x"):
			_, _ = w.Write([]byte(`["xylophone","xenon"]`))
		default:
			time.Sleep(5 * time.Millisecond)
			_, _ = w.Write([]byte(`[{"meta":{"syns":[["glad","cheerful"],["content"]]}}]`))
		}
	})

	ts := &httptest.Server{
		Listener: listenOrSkip(t),
		Config:   &http.Server{Handler: handler},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts.URL
}

// newTestServer runs the full stack on IPv4 loopback.
func newTestServer(t *testing.T) (*httptest.Server, *http.Client) {
	t.Helper()

	thesaurus, err := provider.NewThesaurusClient(provider.ThesaurusConfig{
		BaseURL: newThesaurusUpstream(t),
		APIKey:  "integration-key",
		Timeout: 2 * time.Second,
	})
	require.NoError(t, err)

	model, err := inference.Load(inference.Options{})
	require.NoError(t, err)

	svc := &engine.Service{Thesaurus: thesaurus, Analyzer: model, Logger: observability.ServerLogger}
	srv := server.New(config.ServerConfig{Host: "127.0.0.1"}, svc)

	ts := &httptest.Server{
		Listener: listenOrSkip(t),
		Config:   &http.Server{Handler: srv.Handler()},
	}
	ts.Start()
	t.Cleanup(ts.Close)
	return ts, ts.Client()
}

func TestMetricsEndpoint_Integration(t *testing.T) {
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", "info", "structured")

	initMetricsOrSkip(t)

	handlers.InitHealthManager("test")

	ts, client := newTestServer(t)

	paths := []string{
		"/api/v1/synonyms?word=happy",
		"/api/v1/synonyms?word=xyz",
		"/api/v1/synonyms?word=boom",
		"/api/v1/sentiment?txt=what+a+wonderful+day",
		"/api/v1/extract?txt=gophers+love+channels+and+gophers+love+tests",
		"/health",
	}

	const numRequests = 60
	const numWorkers = 10

	requestChan := make(chan int, numRequests)
	for i := 0; i < numRequests; i++ {
		requestChan <- i
	}
	close(requestChan)

	start := time.Now()

	var wg sync.WaitGroup
	wg.Add(numWorkers)
	for i := 0; i < numWorkers; i++ {
		go func() {
			defer wg.Done()
			for reqNum := range requestChan {
				resp, err := client.Get(ts.URL + paths[reqNum%len(paths)])
				if err == nil {
					_, _ = io.Copy(io.Discard, resp.Body)
					_ = resp.Body.Close()
				}
			}
		}()
	}
	wg.Wait()

	elapsed := time.Since(start)

	resp, err := client.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, readErr)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	metricsContent := string(body)
	assert.Contains(t, metricsContent, "test_http_requests_total")
	assert.Contains(t, metricsContent, "test_http_request_duration_ms")
	assert.Contains(t, metricsContent, "test_lookups_total")
	assert.Contains(t, metricsContent, "test_lookup_failures_total")
	assert.NotContains(t, metricsContent, "integration-key")
	assert.True(t, elapsed < 5*time.Second, "load should complete in reasonable time")
	t.Logf("Load test completed: %d requests in %v (%.2f req/s)", numRequests, elapsed, float64(numRequests)/elapsed.Seconds())
}

func TestMetricsEndpoint_PrometheusFormat(t *testing.T) {
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", "info", "structured")

	initMetricsOrSkip(t)

	handlers.InitHealthManager("test")

	ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/api/v1/synonyms?word=happy")
	require.NoError(t, err)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"synonymns":["glad","cheerful","content"]}`, string(body))

	resp, err = client.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	contentType := resp.Header.Get("Content-Type")
	assert.True(t,
		contentType == "text/plain; version=0.0.4" ||
			contentType == "text/plain; version=0.0.4; charset=utf-8",
		"Expected Prometheus content type, got: %s", contentType)

	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, resp.Body.Close())
	require.NoError(t, readErr)

	metricLines := 0
	labelled := false
	for _, line := range strings.Split(strings.TrimSpace(string(body)), "\n") {
		if strings.HasPrefix(line, "#") || strings.TrimSpace(line) == "" {
			continue
		}
		metricLines++
		if strings.Contains(line, "{") && len(strings.Fields(line)) >= 2 {
			labelled = true
		}
	}
	assert.True(t, labelled, "should have labelled Prometheus metric lines")
	assert.Greater(t, metricLines, 0)
}

func TestMetricsEndpoint_WithTelemetryDisabled(t *testing.T) {
	observability.InitCLILogger("test", false)
	observability.InitServerLogger("test", "info", "structured")

	originalExporter := observability.PrometheusExporter
	originalTelemetry := observability.TelemetrySystem
	observability.PrometheusExporter = nil
	observability.TelemetrySystem = nil
	t.Cleanup(func() {
		observability.PrometheusExporter = originalExporter
		observability.TelemetrySystem = originalTelemetry
	})

	t.Setenv("WORDSER_METRICS_ENABLED", "false")

	handlers.InitHealthManager("test")

	ts, client := newTestServer(t)

	resp, err := client.Get(ts.URL + "/api/v1/sentiment?txt=great")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusOK, resp.StatusCode, "lookups work without telemetry")

	resp, err = client.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	require.NoError(t, resp.Body.Close())
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}
