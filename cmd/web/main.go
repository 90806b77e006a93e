package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/wolfman30/tennis-booking/internal/api/router"
	"github.com/wolfman30/tennis-booking/internal/app/bootstrap"
	"github.com/wolfman30/tennis-booking/internal/coaching"
	appconfig "github.com/wolfman30/tennis-booking/internal/config"
	"github.com/wolfman30/tennis-booking/internal/frontend"
	"github.com/wolfman30/tennis-booking/internal/http/handlers"
	httpmiddleware "github.com/wolfman30/tennis-booking/internal/http/middleware"
	"github.com/wolfman30/tennis-booking/internal/observability/metrics"
	"github.com/wolfman30/tennis-booking/internal/session"
	"github.com/wolfman30/tennis-booking/internal/view"
	"github.com/wolfman30/tennis-booking/pkg/logging"
)

func main() {
	// Optional .env for local runs
	_ = godotenv.Load()

	// Load configuration
	cfg := appconfig.Load()

	// Initialize logger
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting tennis-booking web server",
		"env", cfg.Env,
		"port", cfg.Port,
		"backend", cfg.BackendBaseURL,
	)

	otel.SetTextMapPropagator(propagation.TraceContext{})

	handler, cleanup, err := buildHandler(context.Background(), cfg, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15*time.Second + cfg.BackendTimeout,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		return
	}
	logger.Info("server stopped")
}

// setupMetrics registers the booking metrics and Go runtime collectors on a
// dedicated registry.
func setupMetrics() (http.Handler, *metrics.BookingMetrics) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	m := metrics.NewBookingMetrics(reg)
	return promhttp.HandlerFor(reg, promhttp.HandlerOpts{}), m
}

// buildHandler wires the full HTTP stack. cleanup releases the Redis
// client and rate limiter.
func buildHandler(ctx context.Context, cfg *appconfig.Config, logger *logging.Logger) (http.Handler, func(), error) {
	metricsHandler, m := setupMetrics()

	signer, err := bootstrap.BuildSessionSigner(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	renderer, err := view.NewRenderer()
	if err != nil {
		return nil, nil, fmt.Errorf("init renderer: %w", err)
	}
	redisClient := bootstrap.BuildRedisClient(ctx, cfg, logger, true)
	store, err := bootstrap.BuildSessionStore(cfg, redisClient, logger)
	if err != nil {
		if redisClient != nil {
			_ = redisClient.Close()
		}
		return nil, nil, err
	}

	client := coaching.NewClient(cfg.BackendBaseURL, cfg.BackendTimeout, m, logger.Component("coaching"))
	controller := frontend.NewController(client, m, logger.Component("frontend"))
	limiter := httpmiddleware.NewRateLimiter(cfg.BookRateLimit, cfg.BookRateBurst)

	h := router.New(&router.Config{
		Logger: logger,
		Pages:  handlers.NewBookingPageHandler(controller, store, renderer, logger),
		Session: session.Middleware(signer, session.CookieOptions{
			Name:   cfg.SessionCookie,
			Secure: cfg.IsProduction(),
		}, logger),
		SubmitLimiter:      limiter,
		MetricsHandler:     metricsHandler,
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	})

	cleanup := func() {
		limiter.Close()
		if redisClient != nil {
			_ = redisClient.Close()
		}
	}
	return h, cleanup, nil
}
