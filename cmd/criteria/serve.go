package main

import (
	"context"
	"fmt"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/helixml/criteria/infrastructure/api"
	v1 "github.com/helixml/criteria/infrastructure/api/v1"
	"github.com/helixml/criteria/internal/config"
	"github.com/helixml/criteria/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  CRITERIA_HOST               Server host to bind to (default: 0.0.0.0)
  CRITERIA_PORT               Server port to listen on (default: 8080)
  CRITERIA_DB_URL             Database URL used to render SQL (default: sqlite:///:memory:)
  CRITERIA_LOG_LEVEL          Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  CRITERIA_LOG_FORMAT         Log format: pretty, json (default: pretty)
  CRITERIA_OPTION_POLICY      Passthrough options: permissive, strict, lenient (default: permissive)
  CRITERIA_ALLOWED_OPTIONS    Comma-separated extra option names accepted by strict and lenient
  CRITERIA_DEFAULT_LIMIT      Row count for "limit: default" (default: 20)
  CRITERIA_TYPES_FILE         YAML or JSON file listing known document types
  CRITERIA_SHUTDOWN_TIMEOUT   Graceful shutdown timeout (default: 10s)`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = applyServeOverrides(cfg, host, port)

	logger := log.Configure(cfg)
	logger.Info("starting criteria",
		slog.String("version", version),
		slog.String("option_policy", cfg.OptionPolicy()),
		slog.Int("default_limit", cfg.DefaultLimit()),
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer a.Close()

	server := api.NewServer(cfg.Addr(), logger)
	router := server.Router()
	router.Get("/health", api.Health)
	router.Mount("/api/v1/criteria", v1.NewCriteriaRouter(a.decoder, a.db, logger).Routes())

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout())
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
	}()

	if err := server.Start(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// applyServeOverrides applies command line flag overrides to the config.
func applyServeOverrides(cfg config.AppConfig, host string, port int) config.AppConfig {
	var opts []config.AppConfigOption

	if host != "" {
		opts = append(opts, config.WithHost(host))
	}
	if port != 0 {
		opts = append(opts, config.WithPort(port))
	}

	return cfg.Apply(opts...)
}
