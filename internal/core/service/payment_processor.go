package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/cashflow/card-gateway/internal/core"
	"github.com/cashflow/card-gateway/internal/platform/metrics"
	"github.com/cashflow/card-gateway/internal/port/output"
)

// PaymentProcessor submits validated payments to the acquiring bank and
// records the outcome
type PaymentProcessor struct {
	paymentRepo output.PaymentRepository
	bank        output.AcquiringBank
	events      output.PaymentEvents
	metrics     *metrics.Metrics
	logger      *slog.Logger
	now         func() time.Time
	newID       func() uuid.UUID
}

// ProcessorOption configures a PaymentProcessor
type ProcessorOption func(*PaymentProcessor)

// WithEvents publishes a payment.processed event for every stored payment
func WithEvents(events output.PaymentEvents) ProcessorOption {
	return func(p *PaymentProcessor) {
		p.events = events
	}
}

// WithMetrics records processed payments
func WithMetrics(m *metrics.Metrics) ProcessorOption {
	return func(p *PaymentProcessor) {
		p.metrics = m
	}
}

// WithLogger sets the processor logger
func WithLogger(logger *slog.Logger) ProcessorOption {
	return func(p *PaymentProcessor) {
		p.logger = logger
	}
}

// NewPaymentProcessor creates a new payment processor
func NewPaymentProcessor(
	paymentRepo output.PaymentRepository,
	bank output.AcquiringBank,
	opts ...ProcessorOption,
) *PaymentProcessor {
	p := &PaymentProcessor{
		paymentRepo: paymentRepo,
		bank:        bank,
		logger:      slog.Default(),
		now:         time.Now,
		newID:       uuid.New,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Process sends a validated payment to the bank and stores the outcome.
// Both authorized and declined payments are stored; a failed bank call
// is returned unchanged and nothing is stored.
func (p *PaymentProcessor) Process(ctx context.Context, req core.PaymentRequest) (*core.Payment, error) {
	p.logger.DebugContext(ctx, "processing payment", slog.Any("request", req))

	bankResp, err := p.bank.SubmitPayment(ctx, core.NewBankRequest(req))
	if err != nil {
		return nil, err
	}

	status := core.PaymentStatusDeclined
	if bankResp != nil && bankResp.Authorized {
		status = core.PaymentStatusAuthorized
	}

	payment := &core.Payment{
		ID:                 p.newID(),
		Status:             status,
		CardNumberLastFour: core.LastFour(req.CardNumber),
		ExpiryMonth:        *req.ExpiryMonth,
		ExpiryYear:         *req.ExpiryYear,
		Currency:           core.Currency(req.Currency),
		Amount:             *req.Amount,
		CreatedAt:          p.now().UTC(),
	}

	if err := p.paymentRepo.Add(ctx, payment); err != nil {
		return nil, fmt.Errorf("failed to store payment: %w", err)
	}
	p.metrics.IncPaymentProcessed(string(status))

	p.logger.InfoContext(ctx, "payment processed",
		slog.String("payment_id", payment.ID.String()),
		slog.String("status", string(status)),
		slog.String("card_number_last_four", payment.CardNumberLastFour),
	)

	// A stored payment is returned even if publishing fails
	if p.events != nil {
		if err := p.events.PublishPaymentProcessed(ctx, payment); err != nil {
			p.logger.WarnContext(ctx, "failed to publish payment event",
				slog.String("payment_id", payment.ID.String()),
				slog.Any("error", err),
			)
		}
	}

	return payment, nil
}
