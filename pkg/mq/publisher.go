package mq

import (
	"context"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher delivers persistent JSON messages straight to a queue through
// the default exchange. Routing by exchange is not something this system
// does; every message is addressed to exactly one queue.
type Publisher interface {
	Publish(ctx context.Context, queue string, body []byte) error
}

type publisher struct {
	ch *amqp.Channel
}

func (p *publisher) Publish(ctx context.Context, queue string, body []byte) error {
	msg := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	}

	return p.ch.PublishWithContext(ctx, "", queue, false, false, msg)
}
