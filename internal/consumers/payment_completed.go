package consumers

import (
	"context"
	"encoding/json"

	"github.com/captainblair/vertex/internal/service"
	"github.com/captainblair/vertex/pkg/mq"
	"go.uber.org/zap"
)

type PaymentCompletedConsumer interface {
	Consume(ctx context.Context) error
}

type paymentCompletedConsumer struct {
	service  service.OrderService
	consumer mq.Consumer
	logger   *zap.Logger
}

func NewPaymentCompletedConsumer(service service.OrderService, consumer mq.Consumer,
	logger *zap.Logger) PaymentCompletedConsumer {
	return &paymentCompletedConsumer{service: service, consumer: consumer, logger: logger}
}

func (p *paymentCompletedConsumer) Consume(ctx context.Context) error {
	return p.consumer.Consume(ctx, mq.QueuePaymentCompleted, p.handleMessage)
}

func (p *paymentCompletedConsumer) handleMessage(ctx context.Context, body []byte) error {
	p.logger.Info("received payment completed event", zap.ByteString("body", body))

	var event service.PaymentCompletedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		p.logger.Warn("invalid payment completed event", zap.Error(err))
		return err
	}

	if err := p.service.MarkOrderPaid(ctx, event.CheckoutRequestID); err != nil {
		return mq.Temporary(err)
	}

	return nil
}
