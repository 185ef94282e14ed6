package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/segyhp/debt-ledger/internal/config"
	"github.com/segyhp/debt-ledger/internal/logging"
	"github.com/segyhp/debt-ledger/internal/repository"
	"github.com/segyhp/debt-ledger/internal/service"

	"github.com/robfig/cron/v3"
)

const sweepTimeout = 2 * time.Minute

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}

	logger := logging.New(os.Stdout, cfg.Logging.Level, cfg.Logging.Format).With(slog.String("component", "scheduler"))
	slog.SetDefault(logger)
	logger.Info("Starting ledger scheduler...")

	store, closeStore, err := repository.Open(context.Background(), cfg)
	if err != nil {
		logger.Error("Failed to initialize storage", slog.String("backend", cfg.Storage.Backend), slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			logger.Error("Failed to close storage", slog.Any("error", err))
		}
	}()

	ledgerService := service.NewLedgerService(store, cfg.Location(), logger)

	// Initialize cron scheduler in the ledger's zone so midnight is local midnight
	c := cron.New(cron.WithSeconds(), cron.WithLocation(cfg.Location()))

	// Schedule tasks
	if err := setupCronJobs(c, cfg, ledgerService, logger); err != nil {
		logger.Error("Error scheduling jobs", slog.Any("error", err))
		os.Exit(1)
	}

	// Start the scheduler
	c.Start()
	logger.Info("Scheduler started successfully", slog.String("overdue_cron", cfg.Scheduler.OverdueCron))

	// Wait for interrupt signal to gracefully shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down scheduler...")
	<-c.Stop().Done()
	logger.Info("Scheduler stopped")
}

func setupCronJobs(c *cron.Cron, cfg *config.Config, ledger *service.LedgerService, logger *slog.Logger) error {
	// Daily job moving past-due pending debtors to atrasado
	_, err := c.AddFunc(cfg.Scheduler.OverdueCron, func() {
		runOverdueSweep(ledger, logger)
	})
	return err
}

func runOverdueSweep(ledger *service.LedgerService, logger *slog.Logger) {
	ctx, cancel := context.WithTimeout(context.Background(), sweepTimeout)
	defer cancel()

	today := ledger.Today()
	logger.Info("Running overdue sweep", slog.String("today", today.String()))

	swept, err := ledger.SweepOverdue(ctx, today)
	if err != nil {
		logger.Error("Overdue sweep failed", slog.Int("swept", swept), slog.Any("error", err))
		return
	}
	logger.Info("Overdue sweep completed", slog.Int("swept", swept))
}
