package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/teemow/meetbridge/internal/config"
	"github.com/teemow/meetbridge/internal/instrumentation"
	"github.com/teemow/meetbridge/internal/llm"
	"github.com/teemow/meetbridge/internal/logging"
	"github.com/teemow/meetbridge/internal/server"
)

// MetricsConfig holds the metrics server flags.
type MetricsConfig struct {
	Enabled bool
	Addr    string
}

func newServeCmd() *cobra.Command {
	var (
		configFile      string
		listenAddr      string
		baseURL         string
		composerBaseURL string
		model           string
		debugMode       bool
		metricsConfig   MetricsConfig
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the scheduling web service",
		Long: `Start the web service that receives email-derived meeting contexts,
derives candidate meeting times, renders the selection page, and redirects
into the external calendar composer.

Configuration:
  Settings come from an optional YAML config file, overridden by
  MEETBRIDGE_* environment variables, overridden by flags. A .env file in
  the working directory is loaded if present.

  The text-generation service credential is required:
    OPENAI_API_KEY env var

  The public base URL should be set for deployed instances so the
  selection-page URLs returned to webhook callers resolve:
    --base-url https://your-domain.com OR MEETBRIDGE_BASE_URL env var`,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Load .env before reading any environment variables;
			// a missing file is fine
			_ = godotenv.Load()

			cfg, err := config.Load(configFile)
			if err != nil {
				return err
			}

			// Flags override file and environment
			if cmd.Flags().Changed("listen") {
				cfg.Listen = listenAddr
			}
			if cmd.Flags().Changed("base-url") {
				cfg.BaseURL = baseURL
			}
			if cmd.Flags().Changed("composer-base-url") {
				cfg.ComposerBaseURL = composerBaseURL
			}
			if cmd.Flags().Changed("model") {
				cfg.Model = model
			}

			if err := cfg.Validate(); err != nil {
				return fmt.Errorf("invalid configuration: %w", err)
			}

			return runServe(cfg, debugMode, metricsConfig)
		},
	}

	cmd.Flags().StringVarP(&configFile, "config", "c", "meetbridge.yaml", "Path to the YAML config file")
	cmd.Flags().StringVar(&listenAddr, "listen", config.DefaultListen, "HTTP listen address")
	cmd.Flags().StringVar(&baseURL, "base-url", config.DefaultBaseURL, "Public base URL used in selection-page links")
	cmd.Flags().StringVar(&composerBaseURL, "composer-base-url", config.DefaultComposerBaseURL, "External calendar composer base URL")
	cmd.Flags().StringVar(&model, "model", config.DefaultModel, "Chat model for candidate extraction and subject suggestion")
	cmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	cmd.Flags().BoolVar(&metricsConfig.Enabled, "metrics-enabled", false, "Enable the dedicated Prometheus metrics server")
	cmd.Flags().StringVar(&metricsConfig.Addr, "metrics-addr", server.DefaultMetricsAddr, "Metrics server listen address")

	return cmd
}

func runServe(cfg *config.Config, debugMode bool, metricsConfig MetricsConfig) error {
	// Setup graceful shutdown
	shutdownCtx, cancel := signal.NotifyContext(context.Background(),
		os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	logger.Info("configuration loaded",
		"listen", cfg.Listen,
		"base_url", cfg.BaseURL,
		"composer_base_url", cfg.ComposerBaseURL,
		"model", cfg.Model,
		"api_key", logging.SanitizeToken(cfg.OpenAIAPIKey),
	)

	// Load metrics config from environment if not set via flags
	if !metricsConfig.Enabled && os.Getenv("METRICS_ENABLED") == "true" {
		metricsConfig.Enabled = true
	}
	if addr := os.Getenv("METRICS_ADDR"); addr != "" && metricsConfig.Addr == server.DefaultMetricsAddr {
		metricsConfig.Addr = addr
	}

	// Initialize instrumentation provider
	instrConfig := instrumentation.DefaultConfig()
	instrConfig.ServiceVersion = version

	provider, err := instrumentation.NewProvider(shutdownCtx, instrConfig)
	if err != nil {
		return fmt.Errorf("failed to create instrumentation provider: %w", err)
	}
	defer func() {
		if err := provider.Shutdown(context.Background()); err != nil {
			logger.Error("error during instrumentation shutdown", logging.Err(err))
		}
	}()

	// Start metrics server if enabled
	var metricsServer *server.MetricsServer
	if metricsConfig.Enabled && provider.Enabled() {
		metricsServer, err = server.NewMetricsServer(server.MetricsServerConfig{
			Addr:                    metricsConfig.Addr,
			Enabled:                 true,
			InstrumentationProvider: provider,
		})
		if err != nil {
			return fmt.Errorf("failed to create metrics server: %w", err)
		}

		// Use ready channel to confirm metrics server started successfully
		metricsReady := make(chan struct{})
		metricsErr := make(chan error, 1)
		go func() {
			if err := metricsServer.StartWithReadySignal(metricsReady); err != nil && err != http.ErrServerClosed {
				metricsErr <- err
			}
			close(metricsErr)
		}()

		select {
		case <-metricsReady:
			logger.Info("metrics server started", "addr", metricsServer.Addr())
		case err := <-metricsErr:
			return fmt.Errorf("metrics server failed to start: %w", err)
		case <-time.After(5 * time.Second):
			return fmt.Errorf("metrics server startup timed out")
		}
	}

	// Wire the handler dependencies
	completer := llm.NewClient(cfg.OpenAIAPIKey,
		llm.WithModel(cfg.Model),
		llm.WithTimeout(cfg.LLMTimeout()),
	)
	serverContext := server.NewServerContext(shutdownCtx, cfg, completer, logger)
	serverContext.SetMetrics(provider.Metrics())
	defer func() {
		if err := serverContext.Shutdown(); err != nil {
			logger.Error("error during server context shutdown", logging.Err(err))
		}
	}()

	health := server.NewHealthChecker(serverContext)
	health.SetReady(false)

	webServer := server.NewWebServer(cfg.Listen, server.NewRouter(serverContext, health))

	webReady := make(chan struct{})
	webErr := make(chan error, 1)
	go func() {
		if err := webServer.StartWithReadySignal(webReady); err != nil && err != http.ErrServerClosed {
			webErr <- err
		}
		close(webErr)
	}()

	select {
	case <-webReady:
		health.SetReady(true)
		logger.Info("web server started", "addr", webServer.Addr())
	case err := <-webErr:
		return fmt.Errorf("web server failed to start: %w", err)
	case <-time.After(5 * time.Second):
		return fmt.Errorf("web server startup timed out")
	}

	// Block until a shutdown signal arrives
	<-shutdownCtx.Done()
	logger.Info("shutdown signal received")
	health.SetReady(false)

	stopCtx, stopCancel := context.WithTimeout(context.Background(), server.DefaultShutdownTimeout)
	defer stopCancel()

	// Shutdown metrics server first
	if metricsServer != nil {
		if err := metricsServer.Shutdown(stopCtx); err != nil {
			logger.Error("error shutting down metrics server", logging.Err(err))
		}
	}

	if err := webServer.Shutdown(stopCtx); err != nil {
		return fmt.Errorf("error shutting down web server: %w", err)
	}

	return nil
}
