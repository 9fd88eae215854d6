package service

import (
	"context"
	"errors"

	"github.com/captainblair/vertex/internal/constants"
	"github.com/captainblair/vertex/internal/model"
	"github.com/captainblair/vertex/internal/repository"
	"go.uber.org/zap"
)

// Public status vocabulary. Internal state names never leak to callers.
const (
	StatusPending = "PENDING"
	StatusSuccess = "SUCCESS"
	StatusFailed  = "FAILED"
	StatusUnknown = "UNKNOWN"
)

type StatusService interface {
	QueryStatus(ctx context.Context, checkoutRequestID string) (string, error)
}

type status struct {
	txRepo repository.TransactionRepository
	logger *zap.Logger
}

func NewStatusService(txRepo repository.TransactionRepository, logger *zap.Logger) StatusService {
	return &status{txRepo: txRepo, logger: logger}
}

func (s *status) QueryStatus(ctx context.Context, checkoutRequestID string) (string, error) {
	tx, err := s.txRepo.GetByCheckoutRequestID(ctx, checkoutRequestID)
	if err != nil {
		if errors.Is(err, repository.ErrTransactionNotFound) {
			return StatusUnknown, nil
		}

		s.logger.Error("Failed to look up transaction status",
			zap.Error(err),
			zap.String("checkoutRequestID", checkoutRequestID))
		return "", NewServiceError(constants.ErrCodeDatabase, err)
	}

	switch tx.Status {
	case model.TxStatusRequested:
		return StatusPending, nil
	case model.TxStatusCompleted:
		return StatusSuccess, nil
	case model.TxStatusFailed:
		return StatusFailed, nil
	default:
		s.logger.Error("Transaction in unknown state",
			zap.String("status", tx.Status),
			zap.String("checkoutRequestID", checkoutRequestID))
		return StatusUnknown, nil
	}
}
