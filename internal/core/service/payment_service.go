package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/cashflow/card-gateway/internal/core"
	"github.com/cashflow/card-gateway/internal/platform/metrics"
	"github.com/cashflow/card-gateway/internal/port/input"
	"github.com/cashflow/card-gateway/internal/port/output"
)

// Validator checks an inbound payment request
type Validator interface {
	Validate(req core.PaymentRequest) error
}

// PaymentServiceImpl implements the PaymentService input port
type PaymentServiceImpl struct {
	validator   Validator
	processor   *PaymentProcessor
	paymentRepo output.PaymentRepository
	metrics     *metrics.Metrics
}

// NewPaymentService creates a new payment service
func NewPaymentService(
	validator Validator,
	processor *PaymentProcessor,
	paymentRepo output.PaymentRepository,
	m *metrics.Metrics,
) input.PaymentService {
	return &PaymentServiceImpl{
		validator:   validator,
		processor:   processor,
		paymentRepo: paymentRepo,
		metrics:     m,
	}
}

// ProcessPayment validates the request and, if it is acceptable, processes it.
// Invalid requests never reach the bank.
func (s *PaymentServiceImpl) ProcessPayment(ctx context.Context, req core.PaymentRequest) (*input.PaymentResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		s.metrics.IncPaymentRejected()
		return nil, err
	}

	payment, err := s.processor.Process(ctx, req)
	if err != nil {
		return nil, err
	}

	return input.NewPaymentResponse(payment), nil
}

// GetPayment retrieves a payment by ID
func (s *PaymentServiceImpl) GetPayment(ctx context.Context, id uuid.UUID) (*input.PaymentResponse, error) {
	payment, err := s.paymentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}

	return input.NewPaymentResponse(payment), nil
}
