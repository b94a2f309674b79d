package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"golang.org/x/sync/errgroup"

	httpadapter "github.com/cashflow/card-gateway/internal/adapter/primary/http"
	"github.com/cashflow/card-gateway/internal/adapter/secondary/bank"
	"github.com/cashflow/card-gateway/internal/adapter/secondary/cache"
	"github.com/cashflow/card-gateway/internal/adapter/secondary/database"
	"github.com/cashflow/card-gateway/internal/adapter/secondary/memory"
	"github.com/cashflow/card-gateway/internal/adapter/secondary/messaging"
	"github.com/cashflow/card-gateway/internal/config"
	"github.com/cashflow/card-gateway/internal/constant/model/db"
	"github.com/cashflow/card-gateway/internal/core/service"
	"github.com/cashflow/card-gateway/internal/core/validation"
	"github.com/cashflow/card-gateway/internal/platform/logger"
	"github.com/cashflow/card-gateway/internal/platform/metrics"
	"github.com/cashflow/card-gateway/internal/port/output"
)

func main() {
	if err := run(); err != nil {
		slog.Error("api server stopped", slog.Any("error", err))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(reg)

	// Initialize secondary adapters (implement output ports)
	paymentRepo, closeStore, err := newPaymentRepository(ctx, cfg.Store)
	if err != nil {
		return err
	}
	defer closeStore()

	events, err := newPaymentEvents(cfg.Messaging, log)
	if err != nil {
		return err
	}
	defer events.Close()

	bankClient := bank.NewClient(bank.Config{
		BaseURL: cfg.Bank.BaseURL,
		Timeout: cfg.Bank.Timeout,
		Metrics: m,
		Logger:  log,
	})

	// Initialize core service (implements input port)
	processor := service.NewPaymentProcessor(paymentRepo, bankClient,
		service.WithEvents(events),
		service.WithMetrics(m),
		service.WithLogger(log),
	)
	paymentService := service.NewPaymentService(validation.New(), processor, paymentRepo, m)

	// Initialize primary adapter: HTTP (uses input port)
	e := httpadapter.NewRouter(httpadapter.RouterConfig{
		Handler:  httpadapter.NewPaymentHandler(paymentService),
		Logger:   log,
		Metrics:  m,
		Gatherer: reg,
	})

	addr := ":" + cfg.Server.Port
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info("starting API server",
			slog.String("addr", addr),
			slog.String("store", cfg.Store.Backend),
			slog.String("bank", cfg.Bank.BaseURL),
		)
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("failed to start server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down API server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		return e.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

func newPaymentRepository(ctx context.Context, cfg config.StoreConfig) (output.PaymentRepository, func(), error) {
	switch cfg.Backend {
	case config.StorePostgres:
		dbConn, err := db.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return database.NewGormPaymentRepository(dbConn.DB), func() { dbConn.Close() }, nil
	case config.StoreRedis:
		client, err := cache.NewClient(ctx, cfg.RedisAddr, cfg.RedisDB)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to connect to redis: %w", err)
		}
		return cache.NewRedisPaymentRepository(client), func() { client.Close() }, nil
	default:
		return memory.NewPaymentRepository(), func() {}, nil
	}
}

func newPaymentEvents(cfg config.MessagingConfig, log *slog.Logger) (output.PaymentEvents, error) {
	if cfg.RabbitMQURL == "" {
		log.Info("RABBITMQ_URL not set, payment events disabled")
		return messaging.NoopPublisher{}, nil
	}
	client, err := messaging.NewRabbitMQClient(cfg.RabbitMQURL, log)
	if err != nil {
		return nil, err
	}
	return client, nil
}
