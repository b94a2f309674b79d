package core

// BankRequest is the normalized payment sent to the acquiring bank
type BankRequest struct {
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	Currency   string `json:"currency"`
	Amount     int    `json:"amount"`
	CVV        string `json:"cvv"`
}

// BankResponse is the acquiring bank's authorization decision
type BankResponse struct {
	Authorized        bool   `json:"authorized"`
	AuthorizationCode string `json:"authorization_code"`
}

// NewBankRequest builds the bank-facing request from a validated payment request.
// It must only be called after validation, since it dereferences the numeric fields.
func NewBankRequest(req PaymentRequest) BankRequest {
	return BankRequest{
		CardNumber: req.CardNumber,
		ExpiryDate: FormatExpiry(*req.ExpiryMonth, *req.ExpiryYear),
		Currency:   req.Currency,
		Amount:     *req.Amount,
		CVV:        req.CVV,
	}
}
