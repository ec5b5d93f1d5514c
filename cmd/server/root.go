package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/benvon/bookmark-manager/api"
	"github.com/benvon/bookmark-manager/internal/app"
	"github.com/benvon/bookmark-manager/internal/config"
	"github.com/benvon/bookmark-manager/internal/handlers"
	"github.com/benvon/bookmark-manager/internal/logger"
	"github.com/benvon/bookmark-manager/internal/telemetry"
	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

type serveFlags struct {
	host  string
	port  string
	debug bool
}

func newRootCmd() *cobra.Command {
	var flags serveFlags

	rootCmd := &cobra.Command{
		Use:           "bookmark-manager",
		Short:         "Bookmark Manager API server",
		Long:          "Serves the Bookmark Manager HTTP API. Settings come from the environment; flags override them.",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve(cmd, flags)
		},
	}

	rootCmd.Flags().StringVar(&flags.host, "host", "", "Bind host (overrides SERVER_HOST)")
	rootCmd.Flags().StringVar(&flags.port, "port", "", "Bind port (overrides SERVER_PORT)")
	rootCmd.Flags().BoolVar(&flags.debug, "debug", false, "Enable debug logging (overrides SERVER_DEBUG_MODE)")

	rootCmd.AddCommand(newOpenAPICmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

func serve(cmd *cobra.Command, flags serveFlags) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	if cmd.Flags().Changed("host") {
		cfg.ServerHost = flags.host
	}
	if cmd.Flags().Changed("port") {
		cfg.ServerPort = flags.port
	}
	if cmd.Flags().Changed("debug") {
		cfg.ServerDebugMode = flags.debug
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	zapLogger, err := logger.New(cfg.Environment, cfg.ServerDebugMode)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		// stderr/stdout sync errors are expected on some platforms
		_ = logger.Sync(zapLogger)
	}()

	md := config.DefaultMetadata()

	zapLogger.Info("starting_server",
		zap.String("environment", cfg.Environment),
		zap.String("addr", cfg.Addr()),
		zap.Bool("debug_mode", cfg.ServerDebugMode),
		zap.Bool("metrics_enabled", cfg.MetricsEnabled),
		zap.Bool("otel_enabled", cfg.OTELEnabled),
	)

	var tracerProvider trace.TracerProvider
	if cfg.OTELEnabled {
		if cfg.OTELEndpoint == "" {
			zapLogger.Warn("otel_enabled_but_endpoint_not_configured")
		} else {
			tp, err := telemetry.InitTracer(cmd.Context(), telemetry.TracerOptions{
				ServiceName:    config.ServiceName,
				ServiceVersion: md.Version,
				Environment:    cfg.Environment,
				Endpoint:       cfg.OTELEndpoint,
				Insecure:       cfg.OTELInsecure,
			})
			if err != nil {
				zapLogger.Warn("failed_to_initialize_otel_tracer", zap.Error(err))
			} else {
				tracerProvider = tp
				zapLogger.Info("otel_tracer_initialized", zap.String("endpoint", cfg.OTELEndpoint))
				defer func() {
					shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
					defer cancel()
					if err := telemetry.Shutdown(shutdownCtx, tp); err != nil {
						zapLogger.Error("failed_to_shutdown_otel_tracer", zap.Error(err))
					}
				}()
			}
		}
	}

	a, err := app.New(app.Options{
		Config:         cfg,
		Metadata:       md,
		Logger:         zapLogger,
		TracerProvider: tracerProvider,
	})
	if err != nil {
		zapLogger.Error("failed_to_build_application", zap.Error(err))
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := a.Run(ctx); err != nil {
		zapLogger.Error("server_failed", zap.Error(err))
		return err
	}
	return nil
}

func newOpenAPICmd() *cobra.Command {
	return &cobra.Command{
		Use:   "openapi",
		Short: "Print the OpenAPI document as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			h, err := handlers.NewOpenAPIHandler(api.OpenAPISpec, config.DefaultMetadata())
			if err != nil {
				return err
			}

			var out bytes.Buffer
			if err := json.Indent(&out, h.JSON(), "", "  "); err != nil {
				return fmt.Errorf("failed to format OpenAPI document: %w", err)
			}
			out.WriteByte('\n')

			_, err = cmd.OutOrStdout().Write(out.Bytes())
			return err
		},
	}
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the API version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			md := config.DefaultMetadata()
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", md.Title, md.Version)
		},
	}
}
