package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cashflow/card-gateway/internal/core"
	"github.com/cashflow/card-gateway/internal/platform/logger"
)

type recordingAcker struct {
	acked   int
	nacked  int
	requeue bool
}

func (a *recordingAcker) Ack(uint64, bool) error { a.acked++; return nil }

func (a *recordingAcker) Nack(_ uint64, _ bool, requeue bool) error {
	a.nacked++
	a.requeue = requeue
	return nil
}

func (a *recordingAcker) Reject(uint64, bool) error { return nil }

func samplePayment() *core.Payment {
	return &core.Payment{
		ID:                 uuid.MustParse("6f1c1f4e-9d4b-4a8e-8d9e-3f1b2a7c5e01"),
		Status:             core.PaymentStatusAuthorized,
		CardNumberLastFour: "8877",
		ExpiryMonth:        4,
		ExpiryYear:         2030,
		Currency:           core.CurrencyGBP,
		Amount:             100,
		CreatedAt:          time.Date(2026, time.October, 15, 9, 30, 0, 0, time.UTC),
	}
}

func encodedMessage(t *testing.T) []byte {
	t.Helper()
	body, err := json.Marshal(NewPaymentMessage(samplePayment(), time.Date(2026, time.October, 15, 9, 30, 1, 0, time.UTC)))
	require.NoError(t, err)
	return body
}

func TestPaymentMessage_RoundTrip(t *testing.T) {
	msg, err := DecodePaymentMessage(encodedMessage(t))
	require.NoError(t, err)
	assert.Equal(t, samplePayment(), msg.ToCore())
}

func TestPaymentMessage_CarriesOnlyMaskedFields(t *testing.T) {
	var fields map[string]any
	require.NoError(t, json.Unmarshal(encodedMessage(t), &fields))

	assert.Equal(t, "8877", fields["card_number_last_four"])
	assert.NotContains(t, fields, "card_number")
	assert.NotContains(t, fields, "cvv")
}

func TestDecodePaymentMessage_Rejects(t *testing.T) {
	tests := map[string]string{
		"not json":       `{"id":`,
		"missing id":     `{"status":"Authorized"}`,
		"unknown status": `{"id":"6f1c1f4e-9d4b-4a8e-8d9e-3f1b2a7c5e01","status":"Pending"}`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := DecodePaymentMessage([]byte(body))
			assert.Error(t, err)
		})
	}
}

func TestHandleDelivery(t *testing.T) {
	client := &RabbitMQClient{logger: logger.Discard()}
	ctx := context.Background()

	t.Run("handled message is acked", func(t *testing.T) {
		acker := &recordingAcker{}
		var got PaymentMessage
		client.handleDelivery(ctx, amqp.Delivery{Acknowledger: acker, Body: encodedMessage(t)},
			func(_ context.Context, msg PaymentMessage) error {
				got = msg
				return nil
			})

		assert.Equal(t, 1, acker.acked)
		assert.Zero(t, acker.nacked)
		assert.Equal(t, samplePayment().ID, got.ID)
	})

	t.Run("malformed message is dropped", func(t *testing.T) {
		acker := &recordingAcker{}
		called := false
		client.handleDelivery(ctx, amqp.Delivery{Acknowledger: acker, Body: []byte("garbage")},
			func(context.Context, PaymentMessage) error {
				called = true
				return nil
			})

		assert.False(t, called)
		assert.Equal(t, 1, acker.acked)
		assert.Zero(t, acker.nacked)
	})

	t.Run("first handler failure is requeued", func(t *testing.T) {
		acker := &recordingAcker{}
		client.handleDelivery(ctx, amqp.Delivery{Acknowledger: acker, Body: encodedMessage(t)},
			func(context.Context, PaymentMessage) error {
				return errors.New("database down")
			})

		assert.Zero(t, acker.acked)
		assert.Equal(t, 1, acker.nacked)
		assert.True(t, acker.requeue)
	})

	t.Run("failure on redelivery is dead-lettered", func(t *testing.T) {
		acker := &recordingAcker{}
		client.handleDelivery(ctx, amqp.Delivery{Acknowledger: acker, Body: encodedMessage(t), Redelivered: true},
			func(context.Context, PaymentMessage) error {
				return errors.New("database down")
			})

		assert.Zero(t, acker.acked)
		assert.Equal(t, 1, acker.nacked)
		assert.False(t, acker.requeue)
	})
}

func TestHandleDelivery_RetryDelay(t *testing.T) {
	failing := func(context.Context, PaymentMessage) error { return errors.New("database down") }

	t.Run("requeue waits for the retry delay", func(t *testing.T) {
		client := &RabbitMQClient{logger: logger.Discard(), retryDelay: 50 * time.Millisecond}
		acker := &recordingAcker{}

		start := time.Now()
		client.handleDelivery(context.Background(), amqp.Delivery{Acknowledger: acker, Body: encodedMessage(t)}, failing)

		assert.GreaterOrEqual(t, time.Since(start), 50*time.Millisecond)
		assert.True(t, acker.requeue)
	})

	t.Run("dead-lettering does not wait", func(t *testing.T) {
		client := &RabbitMQClient{logger: logger.Discard(), retryDelay: time.Minute}
		acker := &recordingAcker{}

		start := time.Now()
		client.handleDelivery(context.Background(),
			amqp.Delivery{Acknowledger: acker, Body: encodedMessage(t), Redelivered: true}, failing)

		assert.Less(t, time.Since(start), time.Second)
		assert.Equal(t, 1, acker.nacked)
	})

	t.Run("cancelled context cuts the wait short", func(t *testing.T) {
		client := &RabbitMQClient{logger: logger.Discard(), retryDelay: time.Minute}
		acker := &recordingAcker{}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		start := time.Now()
		client.handleDelivery(ctx, amqp.Delivery{Acknowledger: acker, Body: encodedMessage(t)}, failing)

		assert.Less(t, time.Since(start), time.Second)
		assert.True(t, acker.requeue)
	})
}

func TestNoopPublisher(t *testing.T) {
	var p NoopPublisher
	assert.NoError(t, p.PublishPaymentProcessed(context.Background(), samplePayment()))
	assert.NoError(t, p.Close())
}
