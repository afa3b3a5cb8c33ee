package observability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePort(t *testing.T) {
	port, err := resolvePort("[::]:9191")
	require.NoError(t, err)
	assert.Equal(t, 9191, port)

	_, err = resolvePort("no-port")
	assert.Error(t, err)
}

func TestShutdownMetricsWithoutExporter(t *testing.T) {
	PrometheusExporter = nil
	TelemetrySystem = nil

	assert.NoError(t, ShutdownMetrics())
	assert.Nil(t, TelemetrySystem)
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLogLevel(" Debug "))
	assert.Equal(t, "WARN", parseLogLevel("warning"))
	assert.Equal(t, "INFO", parseLogLevel("verbose"))
}
