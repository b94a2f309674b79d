package core

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PaymentStatus represents the outcome of a completed bank round-trip
type PaymentStatus string

const (
	PaymentStatusAuthorized PaymentStatus = "Authorized"
	PaymentStatusDeclined   PaymentStatus = "Declined"
)

// Currency represents supported currencies
type Currency string

const (
	CurrencyGBP Currency = "GBP"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

// SupportedCurrencies lists the currencies accepted for card payments
func SupportedCurrencies() []Currency {
	return []Currency{CurrencyGBP, CurrencyUSD, CurrencyEUR}
}

// PaymentRequest is an inbound, untrusted card payment.
// Numeric fields are pointers so that a missing value can be told apart from zero.
type PaymentRequest struct {
	CardNumber  string
	ExpiryMonth *int
	ExpiryYear  *int
	Currency    string
	Amount      *int
	CVV         string
}

// LogValue keeps the card number masked and the CVV out of log lines.
func (r PaymentRequest) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.String("card_number", MaskCardNumber(r.CardNumber)),
		slog.String("currency", r.Currency),
	}
	if r.ExpiryMonth != nil {
		attrs = append(attrs, slog.Int("expiry_month", *r.ExpiryMonth))
	}
	if r.ExpiryYear != nil {
		attrs = append(attrs, slog.Int("expiry_year", *r.ExpiryYear))
	}
	if r.Amount != nil {
		attrs = append(attrs, slog.Int("amount", *r.Amount))
	}
	return slog.GroupValue(attrs...)
}

// Payment represents a payment record created for every completed bank round-trip
type Payment struct {
	ID                 uuid.UUID
	Status             PaymentStatus
	CardNumberLastFour string
	ExpiryMonth        int
	ExpiryYear         int
	Currency           Currency
	Amount             int
	CreatedAt          time.Time
}

// IsAuthorized checks if the bank approved the payment
func (p *Payment) IsAuthorized() bool {
	return p.Status == PaymentStatusAuthorized
}

// LastFour returns the last four characters of a card number.
// Shorter inputs are returned unchanged.
func LastFour(cardNumber string) string {
	if len(cardNumber) < 4 {
		return cardNumber
	}
	return cardNumber[len(cardNumber)-4:]
}

// MaskCardNumber replaces everything but the last four characters with '*'
func MaskCardNumber(cardNumber string) string {
	if len(cardNumber) <= 4 {
		return cardNumber
	}
	return strings.Repeat("*", len(cardNumber)-4) + LastFour(cardNumber)
}

// FormatExpiry renders an expiry as MM/YYYY with a zero-padded month
func FormatExpiry(month, year int) string {
	return fmt.Sprintf("%02d/%d", month, year)
}
