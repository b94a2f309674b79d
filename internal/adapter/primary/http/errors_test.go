package http

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"github.com/cashflow/card-gateway/internal/core"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", &core.ValidationError{Violations: []core.Violation{{Field: "cvv", Message: "CVV is required"}}}, http.StatusBadRequest, CodeValidationError},
		{"wrapped validation", fmt.Errorf("process: %w", &core.ValidationError{}), http.StatusBadRequest, CodeValidationError},
		{"malformed body", fmt.Errorf("%w: %w", errMalformedBody, errors.New("unexpected EOF")), http.StatusBadRequest, CodeValidationError},
		{"bank unavailable", fmt.Errorf("could not reach acquiring bank: %w: %w", core.ErrBankUnavailable, errors.New("refused")), http.StatusServiceUnavailable, CodeBankUnavailable},
		{"unexpected bank status", &core.UnexpectedBankError{StatusCode: 500}, http.StatusBadGateway, CodeBankError},
		{"not found", fmt.Errorf("failed to get payment: %w", core.ErrPaymentNotFound), http.StatusNotFound, CodePaymentNotFound},
		{"invalid id", errInvalidID, http.StatusNotFound, CodePaymentNotFound},
		{"echo method not allowed", echo.ErrMethodNotAllowed, http.StatusMethodNotAllowed, "METHOD_NOT_ALLOWED"},
		{"store failure", fmt.Errorf("failed to store payment: %w", errors.New("disk full")), http.StatusInternalServerError, CodeInternalError},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			m := mapError(tc.err)
			assert.Equal(t, tc.status, m.status)
			assert.Equal(t, tc.code, m.body.Code)
		})
	}
}

func TestMapError_ValidationListsEveryViolation(t *testing.T) {
	m := mapError(&core.ValidationError{Violations: []core.Violation{
		{Field: "card_number", Message: "Card number is required"},
		{Field: "payment", Message: "Expiry date must be in the future"},
	}})

	assert.Equal(t, "Rejected", m.body.Message)
	assert.Equal(t, []string{
		"card_number: Card number is required",
		"payment: Expiry date must be in the future",
	}, m.body.Errors)
}

func TestMapError_InternalErrorsDoNotLeakDetail(t *testing.T) {
	m := mapError(errors.New("pq: password authentication failed"))
	assert.Equal(t, "Internal server error", m.body.Message)
	assert.Empty(t, m.body.Errors)
}
