package messaging

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cashflow/card-gateway/internal/core"
)

// PaymentMessage is the payment.processed event body. It carries the stored
// record only, never the full card number or CVV.
type PaymentMessage struct {
	ID                 uuid.UUID `json:"id"`
	Status             string    `json:"status"`
	CardNumberLastFour string    `json:"card_number_last_four"`
	ExpiryMonth        int       `json:"expiry_month"`
	ExpiryYear         int       `json:"expiry_year"`
	Currency           string    `json:"currency"`
	Amount             int       `json:"amount"`
	CreatedAt          time.Time `json:"created_at"`
	PublishedAt        time.Time `json:"published_at"`
}

// NewPaymentMessage builds the event for a stored payment
func NewPaymentMessage(p *core.Payment, publishedAt time.Time) PaymentMessage {
	return PaymentMessage{
		ID:                 p.ID,
		Status:             string(p.Status),
		CardNumberLastFour: p.CardNumberLastFour,
		ExpiryMonth:        p.ExpiryMonth,
		ExpiryYear:         p.ExpiryYear,
		Currency:           string(p.Currency),
		Amount:             p.Amount,
		CreatedAt:          p.CreatedAt,
		PublishedAt:        publishedAt,
	}
}

// DecodePaymentMessage parses an event body and checks the fields the
// reporting projection relies on.
func DecodePaymentMessage(body []byte) (PaymentMessage, error) {
	var msg PaymentMessage
	if err := json.Unmarshal(body, &msg); err != nil {
		return PaymentMessage{}, fmt.Errorf("failed to unmarshal message: %w", err)
	}
	if msg.ID == uuid.Nil {
		return PaymentMessage{}, errors.New("message has no payment id")
	}
	switch core.PaymentStatus(msg.Status) {
	case core.PaymentStatusAuthorized, core.PaymentStatusDeclined:
	default:
		return PaymentMessage{}, fmt.Errorf("message has unknown status %q", msg.Status)
	}
	return msg, nil
}

// ToCore converts the event back into a payment record
func (m PaymentMessage) ToCore() *core.Payment {
	return &core.Payment{
		ID:                 m.ID,
		Status:             core.PaymentStatus(m.Status),
		CardNumberLastFour: m.CardNumberLastFour,
		ExpiryMonth:        m.ExpiryMonth,
		ExpiryYear:         m.ExpiryYear,
		Currency:           core.Currency(m.Currency),
		Amount:             m.Amount,
		CreatedAt:          m.CreatedAt,
	}
}
