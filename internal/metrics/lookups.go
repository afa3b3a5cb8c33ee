package metrics

import (
	"time"

	"github.com/wordser/wordser/internal/observability"
)

// Lookup and lifecycle metric names, Prometheus style.
const (
	LookupsTotalName        = "lookups_total"
	LookupDurationName      = "lookup_duration_ms"
	LookupFailuresTotalName = "lookup_failures_total"

	HealthCheckTotalName    = "health_check_total"
	HealthCheckDurationName = "health_check_duration_ms"

	ServerStartTimeName = "server_start_time_seconds"
)

// RecordLookup records one completed lookup and how long it took.
func RecordLookup(kind string, success bool, duration time.Duration) {
	if observability.TelemetrySystem == nil {
		return
	}

	status := "success"
	if !success {
		status = "failure"
	}

	_ = observability.TelemetrySystem.Counter(
		LookupsTotalName,
		1,
		map[string]string{
			"kind":   kind,
			"status": status,
		},
	)
	_ = observability.TelemetrySystem.Histogram(
		LookupDurationName,
		duration,
		map[string]string{
			"kind": kind,
		},
	)
}

// RecordLookupFailure records why a lookup failed. Reasons are a closed set
// (see engine.FailureReason) so cardinality stays bounded.
func RecordLookupFailure(kind string, reason string) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			LookupFailuresTotalName,
			1,
			map[string]string{
				"kind":   kind,
				"reason": reason,
			},
		)
	}
}

// RecordHealthCheck records a health check execution
func RecordHealthCheck(checkName string, healthy bool, duration time.Duration) {
	status := "healthy"
	if !healthy {
		status = "unhealthy"
	}

	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Counter(
			HealthCheckTotalName,
			1,
			map[string]string{
				"check":  checkName,
				"status": status,
			},
		)

		_ = observability.TelemetrySystem.Histogram(
			HealthCheckDurationName,
			duration,
			map[string]string{
				"check": checkName,
			},
		)
	}
}

// SetServerStartTime records the server start time (Unix timestamp)
func SetServerStartTime(timestamp int64) {
	if observability.TelemetrySystem != nil {
		_ = observability.TelemetrySystem.Gauge(
			ServerStartTimeName,
			float64(timestamp),
			nil,
		)
	}
}
