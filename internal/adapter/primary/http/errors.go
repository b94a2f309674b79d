package http

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/cashflow/card-gateway/internal/core"
)

// Machine-readable error codes returned to clients
const (
	CodeValidationError = "VALIDATION_ERROR"
	CodeBankUnavailable = "BANK_UNAVAILABLE"
	CodeBankError       = "BANK_ERROR"
	CodePaymentNotFound = "PAYMENT_NOT_FOUND"
	CodeInternalError   = "INTERNAL_ERROR"
)

var (
	errMalformedBody = errors.New("malformed JSON body")
	errInvalidID     = errors.New("invalid payment id")
)

// ErrorResponse is the body of every error reply
type ErrorResponse struct {
	Code    string   `json:"code"`
	Message string   `json:"message"`
	Errors  []string `json:"errors,omitempty"`
}

type errorMapping struct {
	status int
	body   ErrorResponse
}

// mapError is the single translation from error kind to HTTP reply.
func mapError(err error) errorMapping {
	var vErr *core.ValidationError
	var httpErr *echo.HTTPError

	switch {
	case errors.As(err, &vErr):
		return errorMapping{http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidationError,
			Message: "Rejected",
			Errors:  vErr.Messages(),
		}}
	case errors.Is(err, errMalformedBody):
		return errorMapping{http.StatusBadRequest, ErrorResponse{
			Code:    CodeValidationError,
			Message: "Rejected",
			Errors:  []string{"request: " + errMalformedBody.Error()},
		}}
	case errors.Is(err, core.ErrBankUnavailable):
		return errorMapping{http.StatusServiceUnavailable, ErrorResponse{
			Code:    CodeBankUnavailable,
			Message: "Acquiring bank unavailable",
		}}
	case errors.Is(err, core.ErrUnexpectedBankResponse):
		return errorMapping{http.StatusBadGateway, ErrorResponse{
			Code:    CodeBankError,
			Message: "Acquiring bank returned an unexpected response",
		}}
	case errors.Is(err, core.ErrPaymentNotFound), errors.Is(err, errInvalidID):
		return errorMapping{http.StatusNotFound, ErrorResponse{
			Code:    CodePaymentNotFound,
			Message: "Payment not found",
		}}
	case errors.As(err, &httpErr):
		return errorMapping{httpErr.Code, ErrorResponse{
			Code:    codeForStatus(httpErr.Code),
			Message: http.StatusText(httpErr.Code),
		}}
	default:
		return errorMapping{http.StatusInternalServerError, ErrorResponse{
			Code:    CodeInternalError,
			Message: "Internal server error",
		}}
	}
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusNotFound:
		return "NOT_FOUND"
	case http.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case http.StatusUnsupportedMediaType:
		return "UNSUPPORTED_MEDIA_TYPE"
	}
	if status >= http.StatusInternalServerError {
		return CodeInternalError
	}
	return "BAD_REQUEST"
}

// NewErrorHandler renders every handler error as an ErrorResponse
func NewErrorHandler(logger *slog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		m := mapError(err)
		ctx := c.Request().Context()
		switch {
		case m.status >= http.StatusInternalServerError:
			logger.ErrorContext(ctx, m.body.Message, slog.Any("error", err), slog.String("path", c.Path()))
		case m.body.Code == CodePaymentNotFound:
			logger.WarnContext(ctx, m.body.Message, slog.String("id", c.Param("id")))
		}

		var writeErr error
		if c.Request().Method == http.MethodHead {
			writeErr = c.NoContent(m.status)
		} else {
			writeErr = c.JSON(m.status, m.body)
		}
		if writeErr != nil {
			logger.ErrorContext(ctx, "failed to write error response", slog.Any("error", writeErr))
		}
	}
}
