package memory

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/cashflow/card-gateway/internal/core"
	"github.com/cashflow/card-gateway/internal/port/output"
)

// ErrDuplicateID is returned when a payment ID is added twice
var ErrDuplicateID = errors.New("payment id already exists")

// PaymentRepository keeps payment records in process memory
type PaymentRepository struct {
	mu       sync.RWMutex
	payments map[uuid.UUID]core.Payment
}

// NewPaymentRepository creates an empty in-memory payment repository
func NewPaymentRepository() output.PaymentRepository {
	return &PaymentRepository{
		payments: make(map[uuid.UUID]core.Payment),
	}
}

// Add stores a copy of the payment so later mutations by the caller are not visible
func (r *PaymentRepository) Add(_ context.Context, payment *core.Payment) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.payments[payment.ID]; ok {
		return fmt.Errorf("add payment %s: %w", payment.ID, ErrDuplicateID)
	}
	r.payments[payment.ID] = *payment
	return nil
}

// GetByID returns a copy of the stored payment
func (r *PaymentRepository) GetByID(_ context.Context, id uuid.UUID) (*core.Payment, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	payment, ok := r.payments[id]
	if !ok {
		return nil, core.ErrPaymentNotFound
	}
	return &payment, nil
}
