// Package app composes the HTTP surface of the service: routes, middleware and
// the server lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/benvon/bookmark-manager/api"
	"github.com/benvon/bookmark-manager/internal/config"
	"github.com/benvon/bookmark-manager/internal/handlers"
	"github.com/benvon/bookmark-manager/internal/middleware"
	"github.com/benvon/bookmark-manager/internal/telemetry"
	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// Options configures New
type Options struct {
	Config   *config.Config
	Metadata config.Metadata
	Logger   *zap.Logger
	// TracerProvider enables route tracing when non-nil
	TracerProvider trace.TracerProvider
	// Environment backs the health endpoint; nil reads ENVIRONMENT per request
	Environment func() string
}

// App is the assembled HTTP application
type App struct {
	cfg     *config.Config
	md      config.Metadata
	logger  *zap.Logger
	handler http.Handler
	openAPI *handlers.OpenAPIHandler
}

// New builds the router and wraps it in the middleware chain
func New(opts Options) (*App, error) {
	if opts.Config == nil {
		return nil, errors.New("app: config is required")
	}
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	openAPI, err := handlers.NewOpenAPIHandler(api.OpenAPISpec, opts.Metadata)
	if err != nil {
		return nil, fmt.Errorf("failed to load OpenAPI document: %w", err)
	}

	a := &App{
		cfg:     opts.Config,
		md:      opts.Metadata,
		logger:  logger,
		openAPI: openAPI,
	}
	a.handler = a.wrap(a.buildRouter(opts))

	return a, nil
}

func (a *App) buildRouter(opts Options) *mux.Router {
	r := mux.NewRouter()
	r.NotFoundHandler = http.HandlerFunc(handlers.NotFound)
	r.MethodNotAllowedHandler = http.HandlerFunc(handlers.MethodNotAllowed)

	// Router middleware runs only for matched routes, so route templates are known
	if a.cfg.MetricsEnabled {
		metrics := middleware.NewMetrics()
		r.Use(metrics.Middleware)
		r.Handle(a.cfg.MetricsPath, metrics.Handler()).Methods("GET")
		a.logger.Info("metrics_enabled", zap.String("path", a.cfg.MetricsPath))
	}
	if opts.TracerProvider != nil {
		r.Use(telemetry.RouterMiddleware(config.ServiceName, opts.TracerProvider))
		a.logger.Info("otel_middleware_enabled")
	}

	health := handlers.NewHealthChecker(config.ServiceName, a.md.Version, opts.Environment)

	r.HandleFunc("/", handlers.Root).Methods("GET")
	r.HandleFunc("/health", health.HealthCheck).Methods("GET")
	a.openAPI.RegisterRoutes(r)
	handlers.RegisterDocsRoutes(r, handlers.NewDocsHandler(a.md.Title, handlers.OpenAPIJSONPath))

	return r
}

// wrap applies the global middleware. The first wrapper listed here runs last.
func (a *App) wrap(next http.Handler) http.Handler {
	h := middleware.CORS(a.cfg.CORS, a.logger, a.cfg.ServerDebugMode)(next)
	h = middleware.SecurityHeaders(a.cfg.EnableHSTS, handlers.DocsPath)(h)
	h = middleware.ErrorHandler(a.logger)(h)
	h = middleware.Logging(a.logger)(h)
	return h
}

// Handler returns the fully wrapped HTTP handler
func (a *App) Handler() http.Handler {
	return a.handler
}

// OpenAPIDocument returns the rendered OpenAPI JSON document
func (a *App) OpenAPIDocument() []byte {
	return a.openAPI.JSON()
}

// Run binds the configured address and serves until ctx is cancelled.
// A bind failure is returned immediately.
func (a *App) Run(ctx context.Context) error {
	ln, err := net.Listen("tcp", a.cfg.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.cfg.Addr(), err)
	}
	return a.Serve(ctx, ln)
}

// Serve serves on ln until ctx is cancelled, then shuts down gracefully
func (a *App) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:        a.handler,
		ReadTimeout:    15 * time.Second,
		WriteTimeout:   15 * time.Second,
		IdleTimeout:    60 * time.Second,
		MaxHeaderBytes: 1 << 20, // 1MB max header size
		ErrorLog:       zap.NewStdLog(a.logger.Named("http")),
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("server_starting",
			zap.String("addr", ln.Addr().String()),
			zap.String("title", a.md.Title),
			zap.String("version", a.md.Version),
		)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	a.logger.Info("server_shutting_down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	a.logger.Info("server_exited")
	return nil
}
