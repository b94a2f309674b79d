package output

//go:generate mockgen -source=payment_messaging.go -destination=mocks/payment_messaging_mock.go -package=mocks PaymentEvents

import (
	"context"

	"github.com/cashflow/card-gateway/internal/core"
)

// PaymentEvents is an output port (secondary port) for payment notifications
// Secondary adapters (RabbitMQ implementations) will implement this
type PaymentEvents interface {
	// PublishPaymentProcessed announces a payment record that was just stored
	PublishPaymentProcessed(ctx context.Context, payment *core.Payment) error
	// Close closes the messaging connection
	Close() error
}
