package mq

import (
	"context"
	"errors"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

type Handle func(ctx context.Context, body []byte) error

// Consumer feeds deliveries to a handler one at a time. Payment events are
// applied individually; there is no batch path, so prefetch stays at 1.
type Consumer interface {
	Consume(ctx context.Context, queue string, handler Handle) error
}

type consumer struct {
	ch *amqp.Channel
}

func (c *consumer) Consume(ctx context.Context, queue string, handler Handle) error {
	if err := c.ch.Qos(1, 0, false); err != nil {
		return err
	}

	deliveries, err := c.ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			_ = c.ch.Cancel("", false)
			time.Sleep(50 * time.Millisecond)
			return ctx.Err()

		case d, ok := <-deliveries:
			if !ok {
				return nil
			}

			if err := handler(ctx, d.Body); err == nil {
				_ = d.Ack(false)
			} else {
				_ = d.Nack(false, shouldRequeue(err))
			}
		}
	}
}

// TempError marks a handler failure as worth redelivering, a database being
// briefly unavailable rather than a payload that can never be applied.
type TempError struct {
	Err error
}

func (e TempError) Error() string {
	return e.Err.Error()
}

func (e TempError) Unwrap() error {
	return e.Err
}

func (e TempError) Temporary() bool {
	return true
}

func Temporary(err error) error {
	return TempError{Err: err}
}

func shouldRequeue(err error) bool {
	var te TempError
	return errors.As(err, &te) && te.Temporary()
}
