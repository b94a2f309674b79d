package output

//go:generate mockgen -source=acquiring_bank.go -destination=mocks/acquiring_bank_mock.go -package=mocks AcquiringBank

import (
	"context"

	"github.com/cashflow/card-gateway/internal/core"
)

// AcquiringBank is an output port (secondary port) for the bank that authorizes card payments
type AcquiringBank interface {
	// SubmitPayment sends a payment for authorization.
	// It fails with core.ErrBankUnavailable or a *core.UnexpectedBankError.
	SubmitPayment(ctx context.Context, req core.BankRequest) (*core.BankResponse, error)
}
