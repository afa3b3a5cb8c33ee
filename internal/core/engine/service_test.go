package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/fulmenhq/gofulmen/telemetry"
	telemetrytesting "github.com/fulmenhq/gofulmen/telemetry/testing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/wordser/wordser/internal/core"
	"github.com/wordser/wordser/internal/core/normalize"
	"github.com/wordser/wordser/internal/metrics"
	"github.com/wordser/wordser/internal/observability"
)

type stubThesaurus struct {
	payload string
	err     error
	calls   int
	words   []string
}

func (s *stubThesaurus) Fetch(ctx context.Context, word string) (core.RawPayload, error) {
	s.calls++
	s.words = append(s.words, word)
	if s.err != nil {
		return nil, s.err
	}
	return core.RawPayload(s.payload), nil
}

type stubAnalyzer struct {
	summary   string
	sentiment core.Sentiment
	keywords  []core.Keyword
	err       error
}

func (s stubAnalyzer) Summarize(ctx context.Context, text string) (string, error) {
	return s.summary, s.err
}

func (s stubAnalyzer) Sentiment(ctx context.Context, text string) (core.Sentiment, error) {
	return s.sentiment, s.err
}

func (s stubAnalyzer) Keywords(ctx context.Context, text string) ([]core.Keyword, error) {
	return s.keywords, s.err
}

func observedLogger() (*zap.Logger, *observer.ObservedLogs) {
	zcore, logs := observer.New(zapcore.DebugLevel)
	return zap.New(zcore), logs
}

func TestServiceSynonyms(t *testing.T) {
	thesaurus := &stubThesaurus{payload: `[{"meta":{"syns":[["happy","glad"],["content"]]}}]`}
	logger, logs := observedLogger()
	svc := &Service{Thesaurus: thesaurus, Logger: logger}

	got, err := svc.Synonyms(context.Background(), core.LookupRequest{Term: "happy"})
	require.NoError(t, err)
	assert.Equal(t, []string{"happy", "glad", "content"}, got.Synonyms)
	assert.Equal(t, []string{"happy"}, thesaurus.words)

	assert.Equal(t, 1, logs.FilterMessage("Lookup received").Len())
	assert.Equal(t, 1, logs.FilterMessage("Thesaurus response received").Len())
	assert.Equal(t, 1, logs.FilterMessage("Lookup completed").Len())
}

func TestServiceSynonymsShapeFailure(t *testing.T) {
	thesaurus := &stubThesaurus{payload: `[{"meta":{}}]`}
	logger, logs := observedLogger()
	svc := &Service{Thesaurus: thesaurus, Logger: logger}

	got, err := svc.Synonyms(context.Background(), core.LookupRequest{Term: "happy"})
	require.Error(t, err)
	assert.Empty(t, got.Synonyms)

	var shapeErr *normalize.ShapeError
	require.ErrorAs(t, err, &shapeErr)
	assert.Equal(t, normalize.ReasonMissingSynonymsField, shapeErr.Reason)

	failures := logs.FilterMessage("Lookup failed").All()
	require.Len(t, failures, 1)
	assert.Equal(t, "missing_synonyms_field", failures[0].ContextMap()["reason"])
}

func TestServiceSynonymsTransportFailureCallsOnce(t *testing.T) {
	thesaurus := &stubThesaurus{err: fmt.Errorf("%w: connection refused", core.ErrProviderUnavailable)}
	svc := &Service{Thesaurus: thesaurus}

	_, err := svc.Synonyms(context.Background(), core.LookupRequest{Term: "happy"})
	require.ErrorIs(t, err, core.ErrProviderUnavailable)
	assert.Equal(t, 1, thesaurus.calls)
}

func TestServiceRejectsBlankTerm(t *testing.T) {
	thesaurus := &stubThesaurus{payload: `[]`}
	svc := &Service{Thesaurus: thesaurus, Analyzer: stubAnalyzer{}}

	_, err := svc.Synonyms(context.Background(), core.LookupRequest{Term: " "})
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
	assert.Zero(t, thesaurus.calls)

	_, err = svc.Summarize(context.Background(), core.LookupRequest{})
	assert.ErrorIs(t, err, core.ErrInvalidRequest)
}

func TestServiceAnalyzerPipelines(t *testing.T) {
	analyzer := stubAnalyzer{
		summary:   "Short.",
		sentiment: core.Sentiment{Polarity: core.PolarityNegative, Score: 0.75},
		keywords:  []core.Keyword{{Text: "gopher", Score: 1}},
	}
	svc := &Service{Analyzer: analyzer}
	req := core.LookupRequest{Term: "some text"}

	summary, err := svc.Summarize(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, "Short.", summary.Summary)

	sentiment, err := svc.Sentiment(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, analyzer.sentiment, sentiment)

	keywords, err := svc.Keywords(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, analyzer.keywords, keywords.Keywords)
}

func TestServiceAnalyzerFailure(t *testing.T) {
	svc := &Service{Analyzer: stubAnalyzer{err: fmt.Errorf("%w: no sentences", core.ErrPredictionFailed)}}
	req := core.LookupRequest{Term: "..."}

	_, err := svc.Summarize(context.Background(), req)
	assert.ErrorIs(t, err, core.ErrPredictionFailed)

	sentiment, err := svc.Sentiment(context.Background(), req)
	assert.ErrorIs(t, err, core.ErrPredictionFailed)
	assert.False(t, sentiment.Complete())
}

func TestServiceIncompleteResultIsFailure(t *testing.T) {
	svc := &Service{Analyzer: stubAnalyzer{}}

	_, err := svc.Keywords(context.Background(), core.LookupRequest{Term: "text"})
	require.Error(t, err)
	assert.Equal(t, "internal", FailureReason(err))
}

func TestServiceMissingCollaborators(t *testing.T) {
	svc := &Service{}
	req := core.LookupRequest{Term: "happy"}

	_, err := svc.Synonyms(context.Background(), req)
	assert.Error(t, err)
	_, err = svc.Sentiment(context.Background(), req)
	assert.Error(t, err)
}

func TestServiceEmitsLookupMetrics(t *testing.T) {
	collector := telemetrytesting.NewFakeCollector()
	sys, err := telemetry.NewSystem(&telemetry.Config{Enabled: true, Emitter: collector})
	require.NoError(t, err)

	original := observability.TelemetrySystem
	observability.TelemetrySystem = sys
	t.Cleanup(func() { observability.TelemetrySystem = original })

	svc := &Service{Thesaurus: &stubThesaurus{payload: `[]`}}
	_, err = svc.Synonyms(context.Background(), core.LookupRequest{Term: "happy"})
	require.Error(t, err)

	assert.Greater(t, collector.CountMetricsByName(metrics.LookupsTotalName), 0)
	assert.Greater(t, collector.CountMetricsByName(metrics.LookupFailuresTotalName), 0)
}

func TestFailureReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{err: nil, want: ""},
		{err: &normalize.ShapeError{Reason: normalize.ReasonUnexpectedShape}, want: "unexpected_shape"},
		{err: core.ErrInvalidRequest, want: "invalid_request"},
		{err: fmt.Errorf("%w: 502", core.ErrProviderUnavailable), want: "provider_unavailable"},
		{err: fmt.Errorf("%w: empty", core.ErrPredictionFailed), want: "prediction_failed"},
		{err: context.DeadlineExceeded, want: "cancelled"},
		{err: errors.New("boom"), want: "internal"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FailureReason(tt.err))
	}
}
