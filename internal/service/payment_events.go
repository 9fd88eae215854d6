package service

import (
	"context"

	"github.com/captainblair/vertex/internal/repository"
	"go.uber.org/zap"
)

// PaymentEventsService feeds the outbox publisher: completed transactions
// that have not yet been announced on the payment.completed queue.
type PaymentEventsService interface {
	FindEventsToPublish(ctx context.Context, limit int) ([]PaymentCompletedEvent, error)
	MarkEventPublished(ctx context.Context, checkoutRequestID string) error
}

type paymentEvents struct {
	txRepo repository.TransactionRepository
	logger *zap.Logger
}

func NewPaymentEventsService(txRepo repository.TransactionRepository, logger *zap.Logger) PaymentEventsService {
	return &paymentEvents{txRepo: txRepo, logger: logger}
}

func (p *paymentEvents) FindEventsToPublish(ctx context.Context, limit int) ([]PaymentCompletedEvent, error) {
	p.logger.Debug("Finding completed payments to publish", zap.Int("batchSize", limit))

	txs, err := p.txRepo.FindUnpublishedCompleted(ctx, limit)
	if err != nil {
		p.logger.Error("Failed to find unpublished completed payments", zap.Error(err))
		return nil, err
	}

	if len(txs) == 0 {
		return nil, nil
	}

	events := make([]PaymentCompletedEvent, 0, len(txs))
	for _, tx := range txs {
		event := PaymentCompletedEvent{
			CheckoutRequestID: tx.CheckoutRequestID,
			Amount:            tx.Amount,
			PhoneNumber:       tx.PhoneNumber,
		}
		if tx.ReceiptNumber != nil {
			event.ReceiptNumber = *tx.ReceiptNumber
		}

		events = append(events, event)
	}

	return events, nil
}

func (p *paymentEvents) MarkEventPublished(ctx context.Context, checkoutRequestID string) error {
	if err := p.txRepo.MarkPublished(ctx, checkoutRequestID); err != nil {
		p.logger.Error("Failed to mark payment event as published",
			zap.Error(err),
			zap.String("checkoutRequestID", checkoutRequestID))
		return err
	}

	return nil
}
