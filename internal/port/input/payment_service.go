package input

import (
	"context"

	"github.com/google/uuid"

	"github.com/cashflow/card-gateway/internal/core"
)

// PaymentService is an input port (primary port) for payment operations
// Primary adapters (HTTP handlers) will use this
type PaymentService interface {
	// ProcessPayment validates a card payment and submits it to the acquiring bank
	ProcessPayment(ctx context.Context, req core.PaymentRequest) (*PaymentResponse, error)

	// GetPayment retrieves a previously processed payment by ID
	GetPayment(ctx context.Context, id uuid.UUID) (*PaymentResponse, error)
}

// PaymentResponse represents the masked result of a processed payment
type PaymentResponse struct {
	ID                 uuid.UUID
	Status             core.PaymentStatus
	CardNumberLastFour string
	ExpiryMonth        int
	ExpiryYear         int
	Currency           core.Currency
	Amount             int
}

// NewPaymentResponse converts a payment record into the port response
func NewPaymentResponse(p *core.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:                 p.ID,
		Status:             p.Status,
		CardNumberLastFour: p.CardNumberLastFour,
		ExpiryMonth:        p.ExpiryMonth,
		ExpiryYear:         p.ExpiryYear,
		Currency:           p.Currency,
		Amount:             p.Amount,
	}
}
