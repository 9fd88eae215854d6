package service

import (
	"context"
	"errors"

	"github.com/captainblair/vertex/internal/model"
	"github.com/captainblair/vertex/internal/repository"
	"github.com/captainblair/vertex/pkg/daraja"
	"go.uber.org/zap"
)

type ReconcilerService interface {
	ReconcileCallback(ctx context.Context, envelope daraja.CallbackEnvelope) error
}

type reconciler struct {
	txRepo repository.TransactionRepository
	logger *zap.Logger
}

func NewReconcilerService(txRepo repository.TransactionRepository, logger *zap.Logger) ReconcilerService {
	return &reconciler{txRepo: txRepo, logger: logger}
}

// ReconcileCallback applies a processor webhook to the matching pending
// transaction. A callback for an unknown checkout request id is a logged
// no-op, never an error: the handler above always acks regardless, and
// redelivery of the same terminal callback is a safe last-write-wins.
func (r *reconciler) ReconcileCallback(ctx context.Context, envelope daraja.CallbackEnvelope) error {
	cb := envelope.Body.StkCallback
	if cb == nil {
		r.logger.Warn("Callback without stkCallback body, ignoring")
		return nil
	}

	status := model.TxStatusFailed
	if cb.ResultCode == 0 {
		status = model.TxStatusCompleted
	}

	r.logger.Info("STK push callback received",
		zap.String("checkoutRequestID", cb.CheckoutRequestID),
		zap.Int("resultCode", cb.ResultCode),
		zap.String("status", status))

	if _, err := r.txRepo.GetByCheckoutRequestID(ctx, cb.CheckoutRequestID); err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			r.logger.Warn("Callback for unknown checkout request id",
				zap.String("checkoutRequestID", cb.CheckoutRequestID))
			return nil
		}

		r.logger.Error("Failed to look up transaction for callback",
			zap.Error(err),
			zap.String("checkoutRequestID", cb.CheckoutRequestID))
		return err
	}

	update := model.Transaction{
		Status:            status,
		ResultDescription: &cb.ResultDesc,
	}

	if receipt := cb.ReceiptNumber(); receipt != "" && status == model.TxStatusCompleted {
		update.ReceiptNumber = &receipt
	}

	if err := r.txRepo.UpdateByCheckoutRequestID(ctx, cb.CheckoutRequestID, &update); err != nil {
		r.logger.Error("Failed to update transaction from callback",
			zap.Error(err),
			zap.String("checkoutRequestID", cb.CheckoutRequestID))
		return err
	}

	return nil
}
