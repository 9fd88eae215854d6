package mq

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// QueuePaymentCompleted carries one event per transaction that reached
// COMPLETED, from the outbox publisher to the orders worker.
const QueuePaymentCompleted = "payment.completed"

type Config struct {
	URL string `mapstructure:"url"`
}

// Broker owns the AMQP connection. Publishers and consumers each get their
// own channel; channels are not safe for concurrent use, the connection is.
type Broker struct {
	conn   *amqp.Connection
	logger *zap.Logger
}

func Connect(cfg Config, logger *zap.Logger) (*Broker, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Error("Failed to connect to RabbitMQ", zap.Error(err))
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	logger.Info("Connected to RabbitMQ")

	return &Broker{conn: conn, logger: logger}, nil
}

func (b *Broker) channel() (*amqp.Channel, error) {
	if b.conn == nil || b.conn.IsClosed() {
		return nil, fmt.Errorf("connection is closed")
	}

	ch, err := b.conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	return ch, nil
}

// DeclareTopology declares every queue this system uses. Both workers call
// it on startup so neither depends on the other having run first.
func (b *Broker) DeclareTopology() error {
	ch, err := b.channel()
	if err != nil {
		return fmt.Errorf("failed to open channel for topology: %w", err)
	}
	defer ch.Close()

	if _, err := ch.QueueDeclare(QueuePaymentCompleted, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", QueuePaymentCompleted, err)
	}

	b.logger.Info("Queue declared", zap.String("queue", QueuePaymentCompleted))

	return nil
}

func (b *Broker) Publisher() (Publisher, error) {
	ch, err := b.channel()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel for publisher: %w", err)
	}

	return &publisher{ch: ch}, nil
}

func (b *Broker) Consumer() (Consumer, error) {
	ch, err := b.channel()
	if err != nil {
		return nil, fmt.Errorf("failed to get channel for consumer: %w", err)
	}

	return &consumer{ch: ch}, nil
}

func (b *Broker) Close() error {
	if b.conn != nil && !b.conn.IsClosed() {
		return b.conn.Close()
	}

	return nil
}
