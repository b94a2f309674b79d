package output

//go:generate mockgen -source=payment_repository.go -destination=mocks/payment_repository_mock.go -package=mocks PaymentRepository

import (
	"context"

	"github.com/google/uuid"

	"github.com/cashflow/card-gateway/internal/core"
)

// PaymentRepository is an output port (secondary port) for payment data access
// Secondary adapters (memory, database, cache implementations) will implement this
type PaymentRepository interface {
	// Add stores a new payment record. Records are immutable once added.
	Add(ctx context.Context, payment *core.Payment) error

	// GetByID retrieves a payment by its ID, or core.ErrPaymentNotFound
	GetByID(ctx context.Context, id uuid.UUID) (*core.Payment, error)
}
