package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/draftea/offer-system/offers-service/application"
	"github.com/draftea/offer-system/offers-service/config"
	"github.com/draftea/offer-system/offers-service/handlers"
	"github.com/draftea/offer-system/shared/logging"
	"github.com/draftea/offer-system/shared/telemetry"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"
)

// commandTopics matches offer.assignment.requested and offer.cancellation.requested
const commandTopics = "#.requested"

func main() {
	// Load configuration
	cfg, err := config.ReadConfig(os.Args[1:])
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := logging.New(cfg.LogLevel, cfg.ServiceName)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("service stopped with error", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	logger.Info("starting service",
		slog.String("env", cfg.Env),
		slog.Int("port", cfg.Port),
	)

	deps, err := config.BuildDependencies(ctx, cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := deps.Close(); err != nil {
			logger.Error("error closing dependencies", slog.String("error", err.Error()))
		}
	}()

	if deps.Telemetry != nil {
		ctx = telemetry.WithTelemetry(ctx, deps.Telemetry)
	}

	server := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           setupRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := deps.EventSubscriber.Subscribe(gctx, commandTopics, deps.OfferCommandHandlers); err != nil {
			return err
		}
		logger.Info("command subscriber started", slog.String("pattern", commandTopics))
		<-gctx.Done()
		return nil
	})

	if cfg.Reconciler.Enabled {
		g.Go(func() error {
			return deps.ReconcileAssignments.Run(gctx, cfg.Reconciler.Interval, application.ReconcileAssignmentsCommand{
				OlderThan: cfg.Reconciler.OlderThan,
				Limit:     cfg.Reconciler.BatchSize,
			})
		})
	}

	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()

		return server.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}

	logger.Info("service stopped")
	return nil
}

func setupRouter(deps *config.Dependencies) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(60 * time.Second))

	// Telemetry middleware (inject telemetry into context)
	if deps.Telemetry != nil {
		r.Use(telemetry.Middleware(deps.Telemetry))
	}

	// Metrics endpoint for Prometheus
	r.Handle("/metrics", handlers.NewMetricsHandler())

	deps.OfferHandlers.RegisterRoutes(r)

	return r
}
