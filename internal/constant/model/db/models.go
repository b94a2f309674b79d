package db

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrMissingID is returned when a payment row is created without an ID
var ErrMissingID = errors.New("payment id is required")

// PaymentStatus is the stored outcome of a processed payment
type PaymentStatus string

const (
	PaymentStatusAuthorized PaymentStatus = "Authorized"
	PaymentStatusDeclined   PaymentStatus = "Declined"
)

// Payment represents a processed payment row. Only the last four card digits are kept.
type Payment struct {
	ID                 uuid.UUID     `gorm:"type:uuid;primary_key" json:"id"`
	Status             PaymentStatus `gorm:"type:varchar(20);not null" json:"status"`
	CardNumberLastFour string        `gorm:"type:varchar(4);not null" json:"card_number_last_four"`
	ExpiryMonth        int           `gorm:"not null" json:"expiry_month"`
	ExpiryYear         int           `gorm:"not null" json:"expiry_year"`
	Currency           string        `gorm:"type:varchar(3);not null" json:"currency"`
	Amount             int           `gorm:"not null" json:"amount"`
	CreatedAt          time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// TableName specifies the table name for GORM
func (Payment) TableName() string {
	return "payments"
}

// BeforeCreate is a GORM hook that runs before creating a record.
// IDs are assigned by the gateway, never by the database.
func (p *Payment) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		return ErrMissingID
	}
	return nil
}
