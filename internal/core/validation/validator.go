// Package validation checks inbound card payment requests before they are
// allowed anywhere near the acquiring bank.
package validation

import (
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/cashflow/card-gateway/internal/core"
)

const (
	expiryScope = "payment"
	expiryTag   = "expiry"
)

// paymentFields mirrors core.PaymentRequest with the presence and range rules attached.
// Length and character rules of the string fields live in valueRules so that every
// failing rule of a field is reported, not just the first.
type paymentFields struct {
	CardNumber  string `json:"card_number" validate:"notblank"`
	ExpiryMonth *int   `json:"expiry_month" validate:"required,min=1,max=12"`
	ExpiryYear  *int   `json:"expiry_year" validate:"required,min=2000"`
	Currency    string `json:"currency" validate:"notblank"`
	Amount      *int   `json:"amount" validate:"required,gt=0"`
	CVV         string `json:"cvv" validate:"notblank"`
}

type valueRule struct {
	tag string
	key string
}

type fieldRules struct {
	field string
	value func(paymentFields) string
	rules []valueRule
}

// valueRules run independently against non-blank string fields.
var valueRules = []fieldRules{
	{
		field: "card_number",
		value: func(f paymentFields) string { return f.CardNumber },
		rules: []valueRule{{tag: "min=14,max=19", key: "size"}, {tag: "digits", key: "digits"}},
	},
	{
		field: "currency",
		value: func(f paymentFields) string { return f.Currency },
		rules: []valueRule{{tag: "len=3", key: "len"}, {tag: "oneof=GBP USD EUR", key: "oneof"}},
	},
	{
		field: "cvv",
		value: func(f paymentFields) string { return f.CVV },
		rules: []valueRule{{tag: "min=3,max=4", key: "size"}, {tag: "digits", key: "digits"}},
	},
}

// fieldOrder is the order violations are reported in; the expiry rule comes last.
var fieldOrder = []string{"card_number", "expiry_month", "expiry_year", "currency", "amount", "cvv"}

var messages = map[string]map[string]string{
	"card_number": {
		"notblank": "Card number is required",
		"size":     "Card number must be between 14 and 19 digits",
		"digits":   "Card number must contain only numeric characters",
	},
	"expiry_month": {
		"required": "Expiry month is required",
		"min":      "Expiry month must be between 1 and 12",
		"max":      "Expiry month must be between 1 and 12",
	},
	"expiry_year": {
		"required": "Expiry year is required",
		"min":      "Expiry year must be 2000 or later",
	},
	"currency": {
		"notblank": "Currency is required",
		"len":      "Currency must be 3 characters",
		"oneof":    "Currency must be one of: GBP, USD, EUR",
	},
	"amount": {
		"required": "Amount is required",
		"gt":       "Amount must be a positive integer",
	},
	"cvv": {
		"notblank": "CVV is required",
		"size":     "CVV must be 3 or 4 characters",
		"digits":   "CVV must contain only numeric characters",
	},
	expiryScope: {
		expiryTag: "Expiry date must be in the future",
	},
}

// Validator applies the field rules and the cross-field expiry rule.
type Validator struct {
	validate *validator.Validate
	now      func() time.Time
}

// Option configures a Validator
type Option func(*Validator)

// WithClock overrides the wall clock used for the expiry check
func WithClock(now func() time.Time) Option {
	return func(v *Validator) {
		v.now = now
	}
}

// New creates a payment request validator
func New(opts ...Option) *Validator {
	v := &Validator{now: time.Now}
	for _, opt := range opts {
		opt(v)
	}

	validate := validator.New()
	validate.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	_ = validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
	_ = validate.RegisterValidation("digits", func(fl validator.FieldLevel) bool {
		return isDigits(fl.Field().String())
	})
	validate.RegisterStructValidation(v.validateExpiry, paymentFields{})

	v.validate = validate
	return v
}

// Validate returns nil for an acceptable request, otherwise a *core.ValidationError
// holding every violation found. All rules run; none short-circuits another field.
func (v *Validator) Validate(req core.PaymentRequest) error {
	fields := paymentFields{
		CardNumber:  req.CardNumber,
		ExpiryMonth: req.ExpiryMonth,
		ExpiryYear:  req.ExpiryYear,
		Currency:    req.Currency,
		Amount:      req.Amount,
		CVV:         req.CVV,
	}

	byField := make(map[string][]core.Violation, len(fieldOrder))
	var crossField []core.Violation

	if err := v.validate.Struct(fields); err != nil {
		var fieldErrs validator.ValidationErrors
		if !errors.As(err, &fieldErrs) {
			return &core.ValidationError{Violations: []core.Violation{{Field: "request", Message: "Invalid payment request"}}}
		}
		for _, fe := range fieldErrs {
			violation := core.Violation{Field: fe.Field(), Message: message(fe.Field(), fe.Tag())}
			if fe.Field() == expiryScope {
				crossField = append(crossField, violation)
				continue
			}
			byField[fe.Field()] = append(byField[fe.Field()], violation)
		}
	}

	// blank values already carry their "required" violation
	for _, fr := range valueRules {
		value := fr.value(fields)
		if strings.TrimSpace(value) == "" {
			continue
		}
		for _, rule := range fr.rules {
			if err := v.validate.Var(value, rule.tag); err != nil {
				byField[fr.field] = append(byField[fr.field], core.Violation{
					Field:   fr.field,
					Message: message(fr.field, rule.key),
				})
			}
		}
	}

	var violations []core.Violation
	for _, field := range fieldOrder {
		violations = append(violations, byField[field]...)
	}
	violations = append(violations, crossField...)

	if len(violations) == 0 {
		return nil
	}
	return &core.ValidationError{Violations: violations}
}

// validateExpiry rejects cards whose expiry month is before the current month.
// Missing or out-of-range month/year are reported by their own field rules.
func (v *Validator) validateExpiry(sl validator.StructLevel) {
	fields := sl.Current().Interface().(paymentFields)
	if fields.ExpiryMonth == nil || fields.ExpiryYear == nil {
		return
	}
	month, year := *fields.ExpiryMonth, *fields.ExpiryYear
	if month < 1 || month > 12 || year < 2000 {
		return
	}
	if notBeforeCurrentMonth(month, year, v.now()) {
		return
	}
	sl.ReportError(fields.ExpiryMonth, expiryScope, expiryScope, expiryTag, "")
}

func notBeforeCurrentMonth(month, year int, now time.Time) bool {
	now = now.UTC()
	if year != now.Year() {
		return year > now.Year()
	}
	return month >= int(now.Month())
}

func message(field, tag string) string {
	if msg, ok := messages[field][tag]; ok {
		return msg
	}
	return "is invalid"
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
