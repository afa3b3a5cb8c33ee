package server

import (
	"github.com/go-chi/chi/v5"

	"github.com/wordser/wordser/internal/core"
	"github.com/wordser/wordser/internal/server/handlers"
)

func (s *Server) registerRoutes() {
	s.router.Get("/", handlers.GreetingHandler)
	s.router.Post("/echo", handlers.EchoHandler)

	if s.lookups != nil {
		s.router.Route("/api/v1", func(r chi.Router) {
			r.Get("/synonyms", handlers.Lookup("word", s.lookups.Synonyms, core.EmptySynonyms))
			r.Get("/summary", handlers.Lookup("txt", s.lookups.Summarize, core.EmptySummary))
			r.Get("/sentiment", handlers.Lookup("txt", s.lookups.Sentiment, core.EmptySentiment))
			r.Get("/extract", handlers.Lookup("txt", s.lookups.Keywords, core.EmptyKeywords))
		})
	}

	s.router.Get("/health", handlers.HealthHandler)
	s.router.Get("/health/live", handlers.LivenessHandler)
	s.router.Get("/health/ready", handlers.ReadinessHandler)
	s.router.Get("/health/startup", handlers.StartupHandler)

	s.router.Get("/version", handlers.VersionHandler)
	s.router.Get("/metrics", MetricsHandler)
}
