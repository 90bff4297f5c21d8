package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"facturation/internal/amqp"
	"facturation/internal/config"
	gsheet "facturation/internal/sheets/google"
	"facturation/internal/storage"
	"facturation/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	logger.Info("Starting facturation-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", "error", err)
		os.Exit(1)
	}

	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the worker")
		os.Exit(1)
	}
	if cfg.GoogleSpreadsheetID == "" {
		logger.Error("GOOGLE_SPREADSHEET_ID is required for the worker")
		os.Exit(1)
	}

	// The worker reads documents straight from the SQLite store.
	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		logger.Error("Failed to initialize SQLite repository", "error", err, "path", cfg.SQLiteDBPath)
		os.Exit(1)
	}
	defer repo.Close()

	sheetsClient, err := gsheet.NewFromEnv(context.Background())
	if err != nil {
		logger.Error("Failed to initialize Google Sheets client", "error", err)
		os.Exit(1)
	}
	logger.Info("Google Sheets client initialized", "spreadsheet_id", cfg.GoogleSpreadsheetID)

	mirrorWorker := worker.NewMirrorWorker(repo, sheetsClient)

	// Setup graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())
		cancel()
	}()

	// Consume until shutdown. A broken connection is re-dialed after
	// MirrorInterval instead of killing the worker.
	for {
		err := consume(ctx, cfg, mirrorWorker)
		if errors.Is(err, context.Canceled) {
			break
		}
		logger.Error("Message consumption failed, reconnecting",
			"error", err, "retry_in", cfg.MirrorInterval)

		select {
		case <-ctx.Done():
		case <-time.After(cfg.MirrorInterval):
			continue
		}
		break
	}

	logger.Info("Worker stopped gracefully")
}

func consume(ctx context.Context, cfg *config.Config, mirrorWorker *worker.MirrorWorker) error {
	amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		return err
	}
	defer amqpClient.Close()

	return amqpClient.ConsumeDocumentEvents(ctx, func(msg *amqp.DocumentEventMessage) error {
		return mirrorWorker.HandleEvent(ctx, msg)
	})
}
