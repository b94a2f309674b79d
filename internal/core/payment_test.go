package core

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLastFour(t *testing.T) {
	assert.Equal(t, "8877", LastFour("2222405343248877"))
	assert.Equal(t, "1234", LastFour("1234"))
	assert.Equal(t, "123", LastFour("123"))
	assert.Equal(t, "", LastFour(""))
}

func TestMaskCardNumber(t *testing.T) {
	assert.Equal(t, "************8877", MaskCardNumber("2222405343248877"))
	assert.Equal(t, "12", MaskCardNumber("12"))
}

func TestNewBankRequest_FormatsExpiry(t *testing.T) {
	month, year, amount := 4, 2030, 100
	req := PaymentRequest{
		CardNumber:  "2222405343248877",
		ExpiryMonth: &month,
		ExpiryYear:  &year,
		Currency:    "GBP",
		Amount:      &amount,
		CVV:         "123",
	}

	assert.Equal(t, BankRequest{
		CardNumber: "2222405343248877",
		ExpiryDate: "04/2030",
		Currency:   "GBP",
		Amount:     100,
		CVV:        "123",
	}, NewBankRequest(req))
	assert.Equal(t, "12/2031", FormatExpiry(12, 2031))
}

func TestPaymentRequest_LogValueHidesSensitiveFields(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, nil))
	amount := 100

	log.Info("processing", slog.Any("request", PaymentRequest{
		CardNumber: "2222405343248877",
		Currency:   "GBP",
		Amount:     &amount,
		CVV:        "987",
	}))

	out := buf.String()
	assert.NotContains(t, out, "2222405343248877")
	assert.NotContains(t, out, "987")
	assert.Contains(t, out, "************8877")
	assert.Contains(t, out, "request.amount=100")
}

func TestErrors(t *testing.T) {
	err := fmt.Errorf("submit: %w", &UnexpectedBankError{StatusCode: 500, Body: "boom"})
	assert.True(t, errors.Is(err, ErrUnexpectedBankResponse))
	assert.False(t, errors.Is(err, ErrBankUnavailable))
	assert.EqualError(t, err, "submit: acquiring bank responded with status 500")

	vErr := &ValidationError{Violations: []Violation{
		{Field: "cvv", Message: "CVV is required"},
		{Field: "payment", Message: "Expiry date must be in the future"},
	}}
	assert.Equal(t, []string{"cvv: CVV is required", "payment: Expiry date must be in the future"}, vErr.Messages())
}
