package publishers

import (
	"context"
	"encoding/json"

	"github.com/captainblair/vertex/internal/service"
	"github.com/captainblair/vertex/pkg/mq"
	"go.uber.org/zap"
)

type PaymentCompletedPublisher interface {
	Publish(ctx context.Context) error
}

type paymentCompletedPublisher struct {
	service   service.PaymentEventsService
	publisher mq.Publisher
	logger    *zap.Logger
}

func NewPaymentCompletedPublisher(service service.PaymentEventsService, publisher mq.Publisher,
	logger *zap.Logger) PaymentCompletedPublisher {
	return &paymentCompletedPublisher{service: service, publisher: publisher, logger: logger}
}

func (p *paymentCompletedPublisher) Publish(ctx context.Context) error {
	events, err := p.service.FindEventsToPublish(ctx, 100)
	if err != nil {
		return err
	}

	if len(events) == 0 {
		return nil
	}

	p.logger.Info("Publishing payment completed events", zap.Int("count", len(events)))

	successCount := 0
	for _, event := range events {
		body, _ := json.Marshal(event)
		if err := p.publisher.Publish(ctx, mq.QueuePaymentCompleted, body); err != nil {
			p.logger.Error("Failed to publish payment completed event",
				zap.Error(err),
				zap.String("checkoutRequestID", event.CheckoutRequestID))
			continue
		}

		if err := p.service.MarkEventPublished(ctx, event.CheckoutRequestID); err != nil {
			continue
		}

		successCount++
	}

	if successCount > 0 {
		p.logger.Info("Successfully published payment completed events",
			zap.Int("published", successCount),
			zap.Int("total", len(events)))
	}

	return nil
}
