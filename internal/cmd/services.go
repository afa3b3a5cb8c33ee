package cmd

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wordser/wordser/internal/config"
	"github.com/wordser/wordser/internal/core/engine"
	"github.com/wordser/wordser/internal/core/inference"
	"github.com/wordser/wordser/internal/core/provider"
)

// components are the long-lived pieces behind the lookup pipelines.
type components struct {
	service   *engine.Service
	model     *inference.Model
	thesaurus *provider.ThesaurusClient
}

// buildComponents loads the inference model and, when requireThesaurus is
// set or a key is configured, the thesaurus client.
func buildComponents(cfg *config.Config, logger engine.Logger, requireThesaurus bool) (*components, error) {
	model, err := inference.Load(inference.Options{
		LexiconPath:      cfg.Inference.LexiconPath,
		SummarySentences: cfg.Inference.SummarySentences,
		MaxKeywords:      cfg.Inference.MaxKeywords,
	})
	if err != nil {
		return nil, fmt.Errorf("load inference model: %w", err)
	}
	logger.Info("Inference model loaded", zap.String("source", model.Source()))

	c := &components{model: model}
	if requireThesaurus || cfg.Thesaurus.APIKey != "" {
		if err := cfg.RequireThesaurus(); err != nil {
			return nil, err
		}
		thesaurus, err := provider.NewThesaurusClient(provider.ThesaurusConfig{
			BaseURL: cfg.Thesaurus.BaseURL,
			APIKey:  cfg.Thesaurus.APIKey,
			Timeout: cfg.Thesaurus.Timeout,
		})
		if err != nil {
			return nil, fmt.Errorf("configure thesaurus provider: %w", err)
		}
		c.thesaurus = thesaurus
	}

	c.service = &engine.Service{Analyzer: model, Logger: logger}
	if c.thesaurus != nil {
		c.service.Thesaurus = c.thesaurus
	}
	return c, nil
}

func (c *components) thesaurusEndpoint() string {
	if c == nil || c.thesaurus == nil {
		return ""
	}
	return c.thesaurus.Endpoint()
}

func (c *components) modelSource() string {
	if c == nil || c.model == nil {
		return ""
	}
	return c.model.Source()
}
