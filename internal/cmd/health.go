package cmd

import (
	"fmt"
	"strings"
	"time"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/go-resty/resty/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	errwrap "github.com/wordser/wordser/internal/errors"
	"github.com/wordser/wordser/internal/observability"
)

var healthURL string

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Run self-health check",
	Long: `Run a self-health check: configuration decodes, the inference model loads
and a thesaurus credential is present.

With --url, probe the readiness endpoint of a running server instead.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if healthURL != "" {
			return probeServer(cmd, healthURL)
		}
		runSelfCheck()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(healthCmd)
	healthCmd.Flags().StringVar(&healthURL, "url", "", "base URL of a running server to probe (e.g. http://localhost:8080)")
}

func runSelfCheck() {
	logger := observability.CLILogger
	logger.Info("Running health check...")

	if versionInfo.Version == "" {
		ExitWithCode(logger, foundry.ExitConfigInvalid, "Version information missing", errwrap.NewConfigInvalidError("Version information missing"))
	}
	logger.Info("✅ Version information available", zap.String("version", versionInfo.Version))

	cfg, err := loadConfig()
	if err != nil {
		ExitWithCode(logger, foundry.ExitConfigInvalid, "Configuration invalid", err)
	}
	logger.Info("✅ Configuration loaded")

	parts, err := buildComponents(cfg, logger, false)
	if err != nil {
		ExitWithCode(logger, foundry.ExitConfigInvalid, "Inference model failed to load", err)
	}
	logger.Info("✅ Inference model loaded", zap.String("source", parts.modelSource()))

	if err := cfg.RequireThesaurus(); err != nil {
		ExitWithCode(logger, foundry.ExitConfigInvalid, "Thesaurus credential missing", err)
	}
	logger.Info("✅ Thesaurus credential configured", zap.String("endpoint", cfg.Thesaurus.BaseURL))

	logger.Info("✅ All health checks passed")
}

// probeServer asks a running server for readiness.
func probeServer(cmd *cobra.Command, baseURL string) error {
	resp, err := resty.New().
		SetTimeout(5*time.Second).
		SetBaseURL(strings.TrimRight(baseURL, "/")).
		R().
		SetContext(cmd.Context()).
		SetHeader("Accept", "application/json").
		Get("/health/ready")
	if err != nil {
		return fmt.Errorf("probe %s: %w", baseURL, err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimSpace(resp.String()))
	if !resp.IsSuccess() {
		return fmt.Errorf("server not ready: %s", resp.Status())
	}
	return nil
}
