package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/queuepulse/backend/internal/api"
	"github.com/queuepulse/backend/internal/auth"
	"github.com/queuepulse/backend/internal/config"
	"github.com/queuepulse/backend/internal/feed"
	"github.com/queuepulse/backend/internal/ingestion"
	"github.com/queuepulse/backend/internal/metrics"
	"github.com/queuepulse/backend/internal/stats"
	"github.com/queuepulse/backend/internal/storage"
	"github.com/queuepulse/backend/internal/ticker"
	"github.com/queuepulse/backend/internal/websocket"
	"github.com/queuepulse/backend/pkg/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	// Configure logger
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	// Set log level
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("level", cfg.LogLevel).Msg("invalid log level, using info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	log.Info().
		Str("port", cfg.Port).
		Str("feed_url", cfg.FeedURL).
		Str("day_boundary_tz", cfg.DayBoundaryTZ).
		Strs("windows", cfg.WindowLabels).
		Msg("starting queuepulse backend server")

	// Create context for services
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Optional JWT auth for dashboard routes
	if cfg.AuthMode == "jwt" {
		if err := auth.InitJWKS(cfg.JWKSURL); err != nil {
			log.Fatal().Err(err).Msg("failed to initialize JWKS")
		}
	}

	// Create the aggregation engine
	windows := make([]stats.Window, len(cfg.Windows))
	for i, d := range cfg.Windows {
		windows[i] = stats.Window{Label: cfg.WindowLabels[i], Duration: d}
	}
	agg := stats.NewAggregator(stats.Options{
		SLThreshold:    cfg.SLThreshold,
		Retention:      cfg.RetentionHorizon,
		PruneThreshold: cfg.PruneThreshold,
		Windows:        windows,
		Location:       cfg.Location,
	}, log.Logger)

	// Create the optional outcome archive
	store, err := storage.NewStore(ctx, log.Logger)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize outcome archive")
	}

	// Create the event processor and upstream feed client
	processor := ingestion.NewDefaultProcessor(agg, log.Logger)
	if _, isNoop := store.(*storage.NoopStore); !isNoop {
		processor.SetArchive(store)
	}

	if cfg.FeedURL != "" {
		feedClient := feed.NewClient(cfg.FeedURL, cfg.FeedPingInterval, processor, log.Logger)
		go feedClient.Run(ctx)
	} else {
		log.Warn().Msg("FEED_URL not set, no events will be ingested")
	}

	// Create WebSocket hub for dashboard push
	hub := websocket.NewHub(log.Logger)
	go hub.Run()

	wsHandler := websocket.NewHandler(hub, cfg, log.Logger)

	// Broadcast snapshots to dashboard clients
	tickerService := ticker.NewTicker(hub, agg, cfg.BroadcastInterval, log.Logger)
	go tickerService.Start(ctx)

	// HTTP handlers
	statsHandler := api.NewStatsHandler(agg, log.Logger)
	archiveHandler := api.NewArchiveHandler(store, log.Logger)
	adminHandler := api.NewAdminHandler(store, log.Logger)

	// Create router
	r := chi.NewRouter()

	// Add middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log.Logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.CORS(cfg.AllowedOrigins))

	// Public routes
	r.Get("/health", healthHandler)
	r.Get("/metrics", metrics.Get().Handler())
	r.Get("/stats", statsHandler.HandleStats)
	r.Get("/stats/history", statsHandler.HandleHistory)
	r.Get("/api/calls", archiveHandler.GetCalls)

	// Dashboard socket and admin operations, optionally behind JWT auth
	r.Group(func(r chi.Router) {
		r.Use(auth.Middleware)
		r.Get("/ws", wsHandler.ServeHTTP)
		r.Post("/api/admin/wipe-archive", adminHandler.WipeArchive)
	})

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Info().Msgf("server listening on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("failed to start server")
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server...")

	// Stop feed client, ticker and hub consumers
	cancel()

	// Create shutdown context with timeout
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	// Attempt graceful shutdown
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("server forced to shutdown")
	}

	log.Info().Msg("server stopped")
}

// healthHandler handles health check requests
func healthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	fmt.Fprintf(w, `{"status":"ok","service":"queuepulse-backend"}`)
}
