package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/cashflow/card-gateway/internal/adapter/secondary/database"
	"github.com/cashflow/card-gateway/internal/adapter/secondary/messaging"
	"github.com/cashflow/card-gateway/internal/config"
	"github.com/cashflow/card-gateway/internal/constant/model/db"
	"github.com/cashflow/card-gateway/internal/platform/logger"
)

// The worker projects payment.processed events into Postgres for reporting.
func main() {
	if err := run(); err != nil {
		slog.Error("payment worker stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cfg.Messaging.RabbitMQURL == "" {
		return errors.New("RABBITMQ_URL is required for the worker")
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize secondary adapter: Database
	dbConn, err := db.NewDB(ctx, cfg.Store.DatabaseURL)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	paymentRepo := database.NewGormPaymentRepository(dbConn.DB)

	msgClient, err := messaging.NewRabbitMQClient(cfg.Messaging.RabbitMQURL, log)
	if err != nil {
		return err
	}
	defer msgClient.Close()

	log.Info("payment worker started")
	err = msgClient.ConsumePaymentMessages(ctx, func(ctx context.Context, msg messaging.PaymentMessage) error {
		log.DebugContext(ctx, "projecting payment", slog.String("payment_id", msg.ID.String()))
		return paymentRepo.Add(ctx, msg.ToCore())
	})
	log.Info("shutting down worker")
	return err
}
