package engine

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/wordser/wordser/internal/core"
	"github.com/wordser/wordser/internal/core/normalize"
	"github.com/wordser/wordser/internal/metrics"
)

const maxLoggedPayload = 2048

// Thesaurus fetches raw thesaurus entries for a word.
type Thesaurus interface {
	Fetch(ctx context.Context, word string) (core.RawPayload, error)
}

// Analyzer runs in-process text inference.
type Analyzer interface {
	Summarize(ctx context.Context, text string) (string, error)
	Sentiment(ctx context.Context, text string) (core.Sentiment, error)
	Keywords(ctx context.Context, text string) ([]core.Keyword, error)
}

// Logger is the subset of the structured logger the service needs.
type Logger interface {
	Debug(msg string, fields ...zap.Field)
	Info(msg string, fields ...zap.Field)
	Warn(msg string, fields ...zap.Field)
}

// Service wires providers to normalizers for each lookup kind. It holds no
// per-request state and is safe for concurrent use.
type Service struct {
	Thesaurus Thesaurus
	Analyzer  Analyzer
	Logger    Logger
}

// Synonyms fetches and flattens the synonyms for req.Term.
func (s *Service) Synonyms(ctx context.Context, req core.LookupRequest) (core.Synonyms, error) {
	return run(s, ctx, core.KindSynonyms, req, func(ctx context.Context) (core.Synonyms, error) {
		if s.Thesaurus == nil {
			return core.Synonyms{}, errors.New("thesaurus provider is not configured")
		}

		raw, err := s.Thesaurus.Fetch(ctx, req.Term)
		if err != nil {
			return core.Synonyms{}, err
		}
		s.logger().Debug("Thesaurus response received",
			zap.String("kind", string(core.KindSynonyms)),
			zap.Int("bytes", len(raw)),
			zap.ByteString("payload", truncate(raw)))

		syns, err := normalize.Synonyms(raw)
		if err != nil {
			return core.Synonyms{}, err
		}
		return core.Synonyms{Synonyms: syns}, nil
	})
}

// Summarize produces a summary of req.Term.
func (s *Service) Summarize(ctx context.Context, req core.LookupRequest) (core.Summary, error) {
	return run(s, ctx, core.KindSummary, req, func(ctx context.Context) (core.Summary, error) {
		analyzer, err := s.analyzer()
		if err != nil {
			return core.Summary{}, err
		}
		summary, err := analyzer.Summarize(ctx, req.Term)
		if err != nil {
			return core.Summary{}, err
		}
		return core.Summary{Summary: summary}, nil
	})
}

// Sentiment scores the polarity of req.Term.
func (s *Service) Sentiment(ctx context.Context, req core.LookupRequest) (core.Sentiment, error) {
	return run(s, ctx, core.KindSentiment, req, func(ctx context.Context) (core.Sentiment, error) {
		analyzer, err := s.analyzer()
		if err != nil {
			return core.Sentiment{}, err
		}
		return analyzer.Sentiment(ctx, req.Term)
	})
}

// Keywords extracts the ranked keywords of req.Term.
func (s *Service) Keywords(ctx context.Context, req core.LookupRequest) (core.Keywords, error) {
	return run(s, ctx, core.KindKeywords, req, func(ctx context.Context) (core.Keywords, error) {
		analyzer, err := s.analyzer()
		if err != nil {
			return core.Keywords{}, err
		}
		keywords, err := analyzer.Keywords(ctx, req.Term)
		if err != nil {
			return core.Keywords{}, err
		}
		return core.Keywords{Keywords: keywords}, nil
	})
}

func (s *Service) analyzer() (Analyzer, error) {
	if s.Analyzer == nil {
		return nil, errors.New("inference model is not loaded")
	}
	return s.Analyzer, nil
}

func (s *Service) logger() Logger {
	if s == nil || s.Logger == nil {
		return zap.NewNop()
	}
	return s.Logger
}

// run wraps one pipeline with request validation, stage logging and metrics.
// An incomplete value with a nil error is reported as a failure.
func run[T core.Result](s *Service, ctx context.Context, kind core.Kind, req core.LookupRequest, pipeline func(context.Context) (T, error)) (T, error) {
	var zero T
	if ctx == nil {
		ctx = context.Background()
	}
	log := s.logger()

	if _, err := core.NewLookupRequest(req.Term); err != nil {
		log.Warn("Lookup rejected", zap.String("kind", string(kind)), zap.Error(err))
		metrics.RecordLookupFailure(string(kind), FailureReason(err))
		return zero, err
	}

	log.Info("Lookup received",
		zap.String("kind", string(kind)),
		zap.Int("term_length", len(req.Term)))

	start := time.Now()
	value, err := pipeline(ctx)
	if err == nil && !value.Complete() {
		err = errors.New("pipeline returned an incomplete result")
	}
	duration := time.Since(start)

	if err != nil {
		reason := FailureReason(err)
		log.Warn("Lookup failed",
			zap.String("kind", string(kind)),
			zap.String("reason", reason),
			zap.Duration("duration", duration),
			zap.Error(err))
		metrics.RecordLookup(string(kind), false, duration)
		metrics.RecordLookupFailure(string(kind), reason)
		return zero, err
	}

	log.Info("Lookup completed",
		zap.String("kind", string(kind)),
		zap.Duration("duration", duration),
		zap.Any("result", value))
	metrics.RecordLookup(string(kind), true, duration)
	return value, nil
}

// FailureReason maps a pipeline error to a low-cardinality label.
func FailureReason(err error) string {
	var shapeErr *normalize.ShapeError
	switch {
	case err == nil:
		return ""
	case errors.As(err, &shapeErr):
		return string(shapeErr.Reason)
	case errors.Is(err, core.ErrInvalidRequest):
		return "invalid_request"
	case errors.Is(err, core.ErrProviderUnavailable):
		return "provider_unavailable"
	case errors.Is(err, core.ErrPredictionFailed):
		return "prediction_failed"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "cancelled"
	default:
		return "internal"
	}
}

func truncate(raw []byte) []byte {
	if len(raw) <= maxLoggedPayload {
		return raw
	}
	return raw[:maxLoggedPayload]
}
