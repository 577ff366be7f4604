package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/vyvo/airports/backend/pkg/airports"
	"github.com/vyvo/airports/backend/pkg/audit"
	"github.com/vyvo/airports/backend/pkg/config"
	"github.com/vyvo/airports/backend/pkg/events"
	"github.com/vyvo/airports/backend/pkg/telemetry"
)

func main() {
	cfg, err := config.LoadRegistry()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: parseLevel(cfg.LogLevel)}))

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracer := telemetry.InitTracer(ctx, "airports", cfg.TelemetryStdout)
	defer func() {
		if err := shutdownTracer(context.Background()); err != nil {
			log.Printf("tracer shutdown error: %v", err)
		}
	}()

	store := airports.NewSeededStore(cfg.SeedLegacyKeys)
	if cfg.SeedLegacyKeys {
		logger.Info("seed records keyed by legacy keys", "keys", "a,b,c")
	}

	srv := newServer(store, logger)
	if cfg.RequestTimeout > 0 {
		srv.requestTimeout = cfg.RequestTimeout
	}

	if strings.TrimSpace(cfg.RedisURL) != "" {
		publisher, err := events.NewPublisher(cfg.RedisURL, cfg.EventsChannel)
		if err != nil {
			log.Fatalf("events publisher init failed: %v", err)
		}
		srv.publisher = publisher
		defer func() {
			if err := publisher.Close(); err != nil {
				log.Printf("events publisher close error: %v", err)
			}
		}()
		logger.Info("publishing registry events", "channel", cfg.EventsChannel)
	}

	if strings.TrimSpace(cfg.DatabaseURL) != "" {
		journal, err := audit.NewPostgresJournal(ctx, cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("audit journal init failed: %v", err)
		}
		srv.journal = journal
		defer func() {
			if err := journal.Close(); err != nil {
				log.Printf("audit journal close error: %v", err)
			}
		}()
		logger.Info("audit journal enabled")
	}

	httpSrv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: srv.routes(),
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			log.Printf("airports shutdown error: %v", err)
		}
	}()

	logger.Info("airports listening", "addr", cfg.ListenAddr, "records", store.Len())
	if err := httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("airports listen failed: %v", err)
	}

	<-ctx.Done()
	logger.Info("airports stopped")
}

func parseLevel(level string) slog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
