package messaging

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/cashflow/card-gateway/internal/core"
	"github.com/cashflow/card-gateway/internal/port/output"
)

const (
	ExchangeName  = "payments"
	QueueName     = "payment_reporting"
	RoutingKey    = "payment.processed"
	PrefetchCount = 1 // Process one message at a time per worker

	DeadLetterExchange = "payments.dlx"
	DeadLetterQueue    = "payment_reporting.dead"
	DefaultRetryDelay  = 2 * time.Second
)

// ErrConsumerClosed is returned when the broker closes the delivery channel
var ErrConsumerClosed = errors.New("delivery channel closed")

// MessageHandler processes one decoded payment event
type MessageHandler func(ctx context.Context, msg PaymentMessage) error

// RabbitMQClient is a secondary adapter that implements the PaymentEvents output port
type RabbitMQClient struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	logger  *slog.Logger
	mu      sync.Mutex

	// retryDelay is waited before a failed message is requeued
	retryDelay time.Duration
}

var _ output.PaymentEvents = (*RabbitMQClient)(nil)

// NewRabbitMQClient connects to the broker and declares the payments topology
func NewRabbitMQClient(amqpURL string, logger *slog.Logger) (*RabbitMQClient, error) {
	if logger == nil {
		logger = slog.Default()
	}

	conn, err := amqp.Dial(amqpURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := declareTopology(channel); err != nil {
		channel.Close()
		conn.Close()
		return nil, err
	}

	return &RabbitMQClient{
		conn:       conn,
		channel:    channel,
		logger:     logger,
		retryDelay: DefaultRetryDelay,
	}, nil
}

func declareTopology(channel *amqp.Channel) error {
	for _, exchange := range []string{ExchangeName, DeadLetterExchange} {
		err := channel.ExchangeDeclare(
			exchange,
			"direct",
			true,  // durable
			false, // auto-deleted
			false, // internal
			false, // no-wait
			nil,
		)
		if err != nil {
			return fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
		}
	}

	_, err := channel.QueueDeclare(
		QueueName,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		amqp.Table{
			"x-dead-letter-exchange":    DeadLetterExchange,
			"x-dead-letter-routing-key": RoutingKey,
		},
	)
	if err != nil {
		return fmt.Errorf("failed to declare queue: %w", err)
	}

	if _, err := channel.QueueDeclare(DeadLetterQueue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare dead letter queue: %w", err)
	}

	if err := channel.QueueBind(QueueName, RoutingKey, ExchangeName, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue: %w", err)
	}
	if err := channel.QueueBind(DeadLetterQueue, RoutingKey, DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind dead letter queue: %w", err)
	}
	return nil
}

// PublishPaymentProcessed publishes the masked payment record
func (c *RabbitMQClient) PublishPaymentProcessed(ctx context.Context, payment *core.Payment) error {
	body, err := json.Marshal(NewPaymentMessage(payment, time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("failed to marshal message: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	err = c.channel.PublishWithContext(
		ctx,
		ExchangeName,
		RoutingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			MessageId:    payment.ID.String(),
			Body:         body,
			Timestamp:    time.Now(),
		},
	)
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.logger.DebugContext(ctx, "published payment event", slog.String("payment_id", payment.ID.String()))
	return nil
}

// ConsumePaymentMessages delivers events to handler until ctx is cancelled or
// the broker closes the channel.
func (c *RabbitMQClient) ConsumePaymentMessages(ctx context.Context, handler MessageHandler) error {
	if err := c.channel.Qos(PrefetchCount, 0, false); err != nil {
		return fmt.Errorf("failed to set QoS: %w", err)
	}

	msgs, err := c.channel.ConsumeWithContext(
		ctx,
		QueueName,
		"",    // consumer tag
		false, // auto-ack
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	c.logger.Info("started consuming payment events", slog.String("queue", QueueName))

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return ErrConsumerClosed
			}
			c.handleDelivery(ctx, msg, handler)
		}
	}
}

// handleDelivery acks undecodable messages so they are not redelivered forever.
// A message whose handler fails is requeued once after retryDelay; if it fails
// again on redelivery it is dead-lettered to DeadLetterQueue.
func (c *RabbitMQClient) handleDelivery(ctx context.Context, msg amqp.Delivery, handler MessageHandler) {
	paymentMsg, err := DecodePaymentMessage(msg.Body)
	if err != nil {
		c.logger.ErrorContext(ctx, "dropping malformed payment event", slog.Any("error", err))
		if ackErr := msg.Ack(false); ackErr != nil {
			c.logger.ErrorContext(ctx, "failed to ack message", slog.Any("error", ackErr))
		}
		return
	}

	if err := handler(ctx, paymentMsg); err != nil {
		c.logger.ErrorContext(ctx, "failed to handle payment event",
			slog.String("payment_id", paymentMsg.ID.String()),
			slog.Bool("redelivered", msg.Redelivered),
			slog.Any("error", err),
		)
		requeue := !msg.Redelivered
		if requeue {
			c.waitBeforeRetry(ctx)
		}
		if nackErr := msg.Nack(false, requeue); nackErr != nil {
			c.logger.ErrorContext(ctx, "failed to nack message", slog.Any("error", nackErr))
		}
		return
	}

	if err := msg.Ack(false); err != nil {
		c.logger.ErrorContext(ctx, "failed to ack message", slog.Any("error", err))
	}
}

func (c *RabbitMQClient) waitBeforeRetry(ctx context.Context) {
	if c.retryDelay <= 0 {
		return
	}
	timer := time.NewTimer(c.retryDelay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// Close closes the RabbitMQ connection
func (c *RabbitMQClient) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

// NoopPublisher discards events. Used when no broker is configured.
type NoopPublisher struct{}

var _ output.PaymentEvents = NoopPublisher{}

func (NoopPublisher) PublishPaymentProcessed(context.Context, *core.Payment) error { return nil }

func (NoopPublisher) Close() error { return nil }
