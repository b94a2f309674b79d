package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/cashflow/card-gateway/internal/core"
	"github.com/cashflow/card-gateway/internal/port/input"
)

// PaymentHandler is a primary adapter (HTTP handler)
type PaymentHandler struct {
	paymentService input.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService input.PaymentService) *PaymentHandler {
	return &PaymentHandler{
		paymentService: paymentService,
	}
}

// ProcessPaymentRequest represents the HTTP request to process a card payment.
// Numeric fields are pointers so an absent field can be told apart from zero.
type ProcessPaymentRequest struct {
	CardNumber  string `json:"card_number"`
	ExpiryMonth *int   `json:"expiry_month"`
	ExpiryYear  *int   `json:"expiry_year"`
	Currency    string `json:"currency"`
	Amount      *int   `json:"amount"`
	CVV         string `json:"cvv"`
}

// PaymentResponse represents the HTTP response for a payment
type PaymentResponse struct {
	ID                 string `json:"id"`
	Status             string `json:"status"`
	CardNumberLastFour string `json:"card_number_last_four"`
	ExpiryMonth        int    `json:"expiry_month"`
	ExpiryYear         int    `json:"expiry_year"`
	Currency           string `json:"currency"`
	Amount             int    `json:"amount"`
}

func toHTTPResponse(r *input.PaymentResponse) PaymentResponse {
	return PaymentResponse{
		ID:                 r.ID.String(),
		Status:             string(r.Status),
		CardNumberLastFour: r.CardNumberLastFour,
		ExpiryMonth:        r.ExpiryMonth,
		ExpiryYear:         r.ExpiryYear,
		Currency:           string(r.Currency),
		Amount:             r.Amount,
	}
}

// ProcessPayment handles payment submission
func (h *PaymentHandler) ProcessPayment(c echo.Context) error {
	var req ProcessPaymentRequest
	if err := c.Bind(&req); err != nil {
		return fmt.Errorf("%w: %w", errMalformedBody, err)
	}

	response, err := h.paymentService.ProcessPayment(c.Request().Context(), core.PaymentRequest{
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		Currency:    req.Currency,
		Amount:      req.Amount,
		CVV:         req.CVV,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toHTTPResponse(response))
}

// GetPayment handles payment retrieval by ID
func (h *PaymentHandler) GetPayment(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return errInvalidID
	}

	response, err := h.paymentService.GetPayment(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toHTTPResponse(response))
}
