package handlers

import (
	"context"
	"errors"

	"github.com/wordser/wordser/internal/observability"
)

// ThesaurusChecker reports whether the thesaurus provider is configured. It
// does not call the upstream: health probes would otherwise spend quota.
func ThesaurusChecker(endpoint func() string) HealthChecker {
	return CheckFunc(func(context.Context) error {
		if endpoint == nil || endpoint() == "" {
			return errors.New("thesaurus provider not configured")
		}
		return nil
	})
}

// ModelChecker reports whether the inference model is loaded.
func ModelChecker(source func() string) HealthChecker {
	return CheckFunc(func(context.Context) error {
		if source == nil || source() == "" {
			return errors.New("inference model not loaded")
		}
		return nil
	})
}

// TelemetryChecker fails when metrics were requested but no telemetry
// system is running.
func TelemetryChecker(enabled bool) HealthChecker {
	return CheckFunc(func(context.Context) error {
		if enabled && observability.TelemetrySystem == nil {
			return errors.New("telemetry system not initialized")
		}
		return nil
	})
}
