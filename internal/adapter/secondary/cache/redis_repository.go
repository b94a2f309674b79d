package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/cashflow/card-gateway/internal/core"
	"github.com/cashflow/card-gateway/internal/port/output"
)

const paymentKeyPrefix = "payment:"

// ErrDuplicateID is returned when a payment ID already has a stored record
var ErrDuplicateID = errors.New("payment id already exists")

// NewClient connects to Redis and verifies the connection.
func NewClient(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close() //nolint:errcheck
		return nil, fmt.Errorf("failed to ping redis: %w", err)
	}
	return client, nil
}

// paymentRecord is the JSON value stored per payment
type paymentRecord struct {
	ID                 uuid.UUID `json:"id"`
	Status             string    `json:"status"`
	CardNumberLastFour string    `json:"card_number_last_four"`
	ExpiryMonth        int       `json:"expiry_month"`
	ExpiryYear         int       `json:"expiry_year"`
	Currency           string    `json:"currency"`
	Amount             int       `json:"amount"`
	CreatedAt          time.Time `json:"created_at"`
}

// RedisPaymentRepository stores payments as JSON values without expiry.
type RedisPaymentRepository struct {
	client redis.Cmdable
}

// NewRedisPaymentRepository creates a Redis-backed payment repository
func NewRedisPaymentRepository(client redis.Cmdable) output.PaymentRepository {
	return &RedisPaymentRepository{client: client}
}

// Add writes the payment only if its key is not already present.
func (r *RedisPaymentRepository) Add(ctx context.Context, payment *core.Payment) error {
	payload, err := encode(payment)
	if err != nil {
		return err
	}

	ok, err := r.client.SetNX(ctx, paymentKey(payment.ID), payload, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to save payment: %w", err)
	}
	if !ok {
		return fmt.Errorf("save payment %s: %w", payment.ID, ErrDuplicateID)
	}
	return nil
}

// GetByID loads a payment by ID
func (r *RedisPaymentRepository) GetByID(ctx context.Context, id uuid.UUID) (*core.Payment, error) {
	data, err := r.client.Get(ctx, paymentKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, core.ErrPaymentNotFound
		}
		return nil, fmt.Errorf("failed to get payment: %w", err)
	}
	return decode(data)
}

func paymentKey(id uuid.UUID) string {
	return paymentKeyPrefix + id.String()
}

func encode(p *core.Payment) ([]byte, error) {
	payload, err := json.Marshal(paymentRecord{
		ID:                 p.ID,
		Status:             string(p.Status),
		CardNumberLastFour: p.CardNumberLastFour,
		ExpiryMonth:        p.ExpiryMonth,
		ExpiryYear:         p.ExpiryYear,
		Currency:           string(p.Currency),
		Amount:             p.Amount,
		CreatedAt:          p.CreatedAt,
	})
	if err != nil {
		return nil, fmt.Errorf("encode payment: %w", err)
	}
	return payload, nil
}

func decode(data []byte) (*core.Payment, error) {
	var rec paymentRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("decode payment: %w", err)
	}
	return &core.Payment{
		ID:                 rec.ID,
		Status:             core.PaymentStatus(rec.Status),
		CardNumberLastFour: rec.CardNumberLastFour,
		ExpiryMonth:        rec.ExpiryMonth,
		ExpiryYear:         rec.ExpiryYear,
		Currency:           core.Currency(rec.Currency),
		Amount:             rec.Amount,
		CreatedAt:          rec.CreatedAt,
	}, nil
}
