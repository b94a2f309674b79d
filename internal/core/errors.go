package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrBankUnavailable is returned when the acquiring bank cannot be reached
	// or reports an outage.
	ErrBankUnavailable = errors.New("acquiring bank unavailable")

	// ErrUnexpectedBankResponse is the sentinel every UnexpectedBankError unwraps to.
	ErrUnexpectedBankResponse = errors.New("unexpected acquiring bank response")

	// ErrPaymentNotFound is returned when no payment exists for an identifier.
	ErrPaymentNotFound = errors.New("payment not found")
)

// UnexpectedBankError carries a non-success bank status that is neither
// a decline nor an outage.
type UnexpectedBankError struct {
	StatusCode int
	Body       string
}

func (e *UnexpectedBankError) Error() string {
	return fmt.Sprintf("acquiring bank responded with status %d", e.StatusCode)
}

func (e *UnexpectedBankError) Unwrap() error {
	return ErrUnexpectedBankResponse
}

// Violation is a single failed validation rule
type Violation struct {
	Field   string
	Message string
}

func (v Violation) String() string {
	return v.Field + ": " + v.Message
}

// ValidationError lists every rule a payment request broke
type ValidationError struct {
	Violations []Violation
}

func (e *ValidationError) Error() string {
	return "invalid payment request: " + strings.Join(e.Messages(), "; ")
}

// Messages renders the violations as "<field>: <message>" strings
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Violations))
	for _, v := range e.Violations {
		msgs = append(msgs, v.String())
	}
	return msgs
}
