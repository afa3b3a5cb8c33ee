package cmd

import (
	"context"
	"time"

	"github.com/fulmenhq/gofulmen/foundry"
	"github.com/fulmenhq/gofulmen/signals"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	errwrap "github.com/wordser/wordser/internal/errors"
	"github.com/wordser/wordser/internal/metrics"
	"github.com/wordser/wordser/internal/observability"
	"github.com/wordser/wordser/internal/server"
	"github.com/wordser/wordser/internal/server/handlers"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the HTTP API with graceful shutdown support.

A thesaurus API key is required (WORDSER_THESAURUS_API_KEY or
THESAURUS_API_KEY); the server refuses to start without one.

Signal Handling:
  • Ctrl+C (SIGINT) or SIGTERM: Graceful shutdown, draining in-flight requests
  • Ctrl+C twice within 2s: Force quit
  • SIGHUP: Re-read the config file (restart to apply changes)`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("host", "0.0.0.0", "server host")
	serveCmd.Flags().IntP("port", "p", 8080, "server port")

	_ = viper.BindPFlag("server.host", serveCmd.Flags().Lookup("host"))
	_ = viper.BindPFlag("server.port", serveCmd.Flags().Lookup("port"))
}

func runServe(cmd *cobra.Command, _ []string) error {
	identity := GetAppIdentity()
	cliLogger := observability.CLILogger

	cfg, err := loadConfig()
	if err != nil {
		ExitWithCode(cliLogger, foundry.ExitConfigInvalid, "Invalid configuration", err)
	}
	if err := cfg.RequireThesaurus(); err != nil {
		ExitWithCode(cliLogger, foundry.ExitConfigInvalid, "Missing thesaurus credential", err)
	}

	observability.InitServerLogger(identity.BinaryName, cfg.Logging.Level, cfg.Logging.Profile, identity.TelemetryNamespace)
	logger := observability.ServerLogger

	parts, err := buildComponents(cfg, logger, true)
	if err != nil {
		ExitWithCode(logger, foundry.ExitConfigInvalid, "Failed to initialize lookup pipelines", err)
	}

	if cfg.Metrics.Enabled {
		if err := observability.InitMetrics(identity.TelemetryNamespace, cfg.Metrics.Port); err != nil {
			logger.Error("Failed to initialize metrics", zap.Error(err))
			return errwrap.WrapInternal(cmd.Context(), err, "metrics initialization failed")
		}
		defer func() { _ = observability.ShutdownMetrics() }()
	}

	logger.Info("Initializing server",
		zap.String("service", identity.BinaryName),
		zap.String("namespace", identity.TelemetryNamespace),
		zap.String("version", versionInfo.Version),
		zap.String("host", cfg.Server.Host),
		zap.Int("port", cfg.Server.Port),
		zap.Bool("metrics_enabled", cfg.Metrics.Enabled),
		zap.Int("metrics_port", observability.GetMetricsPort()),
		zap.String("thesaurus_endpoint", parts.thesaurusEndpoint()),
		zap.Duration("thesaurus_timeout", cfg.Thesaurus.Timeout))

	if cfg.Health.Enabled {
		hm := handlers.InitHealthManager(versionInfo.Version)
		hm.RegisterChecker("thesaurus", handlers.ThesaurusChecker(parts.thesaurusEndpoint))
		hm.RegisterChecker("inference", handlers.ModelChecker(parts.modelSource))
		hm.RegisterChecker("telemetry", handlers.TelemetryChecker(cfg.Metrics.Enabled))
	}
	handlers.SetAppIdentity(identity)

	srv := server.New(cfg.Server, parts.service)
	shutdownTimeout := cfg.Server.ShutdownTimeout
	if shutdownTimeout <= 0 {
		shutdownTimeout = 10 * time.Second
	}

	// Shutdown handlers run LIFO: the server drains first, then logs flush.
	signals.OnShutdown(func(ctx context.Context) error {
		if err := logger.Sync(); err != nil {
			// stderr may already be closed
			logger.Warn("Logger sync returned error (may be benign)", zap.Error(err))
		}
		return nil
	})
	signals.OnShutdown(func(ctx context.Context) error {
		shutdownCtx, cancel := context.WithTimeout(ctx, shutdownTimeout)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return errwrap.WrapInternal(ctx, err, "server shutdown failed")
		}
		logger.Info("HTTP server stopped gracefully")
		return nil
	})

	signals.OnReload(func(ctx context.Context) error {
		if err := viper.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); ok {
				logger.Info("No config file found - using defaults and environment variables")
				return nil
			}
			logger.Error("Failed to reload config file",
				zap.String("file", viper.ConfigFileUsed()),
				zap.Error(err))
			return errwrap.WrapConfigInvalid(ctx, err, "config reload failed")
		}
		logger.Info("Config file re-read; restart to apply changes",
			zap.String("file", viper.ConfigFileUsed()))
		return nil
	})

	if err := signals.EnableDoubleTap(signals.DoubleTapConfig{
		Window:  2 * time.Second,
		Message: "Press Ctrl+C again within 2 seconds to force quit",
	}); err != nil {
		logger.Warn("Failed to enable double-tap force quit", zap.Error(err))
	}

	errChan := make(chan error, 1)
	go func() {
		metrics.SetServerStartTime(time.Now().Unix())
		if err := srv.Start(); err != nil {
			errChan <- err
		}
	}()

	go func() {
		if err := signals.Listen(cmd.Context()); err != nil {
			logger.Error("Signal handler error", zap.Error(err))
			errChan <- err
		}
	}()

	if err := <-errChan; err != nil {
		return errwrap.WrapInternal(cmd.Context(), err, "server error")
	}
	return nil
}
