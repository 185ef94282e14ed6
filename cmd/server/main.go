package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/debt-ledger/internal/config"
	"github.com/segyhp/debt-ledger/internal/handler"
	"github.com/segyhp/debt-ledger/internal/logging"
	"github.com/segyhp/debt-ledger/internal/repository"
	"github.com/segyhp/debt-ledger/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format)
	slog.SetDefault(logger)

	// Initialize storage
	ctx := context.Background()
	store, closeStore, err := repository.Open(ctx, cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("backend", cfg.Storage.Backend), slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			logger.Error("Failed to close storage", slog.Any("error", err))
		}
	}()

	// Initialize services
	ledgerService := service.NewLedgerService(store, cfg.Location(), logger)
	exportService := service.NewExportService(ledgerService)

	if cfg.Business.SeedSampleData {
		seeded, err := ledgerService.Seed(ctx, service.SampleDebtors())
		if err != nil {
			logger.Error("Failed to seed sample ledger", slog.Any("error", err))
			os.Exit(1)
		}
		if seeded > 0 {
			logger.Info("Seeded sample ledger", slog.Int("debtors", seeded))
		}
	}

	debtorHandler := handler.NewDebtorHandler(ledgerService, exportService)
	healthHandler := handler.NewHealthHandler(store, cfg.GetHealthTimeout())

	// Setup routes
	router := handler.NewRouter(debtorHandler, healthHandler, handler.RouterOptions{
		Logger:    logger,
		JWTSecret: cfg.Auth.JWTSecret,
		Issuer:    cfg.Auth.Issuer,
	})

	// Start server
	server := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
		Handler:      router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting",
			slog.String("addr", server.Addr),
			slog.String("storage", cfg.Storage.Backend),
			slog.Bool("auth", cfg.AuthEnabled()),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("Server failed to start", slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	// Graceful shutdown
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Server forced to shutdown", slog.Any("error", err))
		return
	}

	logger.Info("Server exited")
}
