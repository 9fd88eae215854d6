package service

import (
	"context"
	"errors"

	"github.com/captainblair/vertex/internal/constants"
	"github.com/captainblair/vertex/internal/model"
	"github.com/captainblair/vertex/internal/repository"
	"github.com/captainblair/vertex/pkg/daraja"
	"go.uber.org/zap"
)

const (
	defaultAccountReference = "Vertex"
	defaultTransactionDesc  = "Payment for Order"
)

type PaymentService interface {
	InitiatePush(ctx context.Context, cmd InitiatePushCommand) (daraja.PushResponse, error)
}

type payment struct {
	gateway   daraja.Client
	txRepo    repository.TransactionRepository
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

func NewPaymentService(gateway daraja.Client, txRepo repository.TransactionRepository,
	orderRepo repository.OrderRepository, logger *zap.Logger) PaymentService {
	return &payment{gateway: gateway, txRepo: txRepo, orderRepo: orderRepo, logger: logger}
}

// InitiatePush submits an STK push and records a REQUESTED transaction when
// the processor accepts it. The raw processor response is returned to the
// caller either way; a non-success response code only means nothing gets
// persisted.
func (p *payment) InitiatePush(ctx context.Context, cmd InitiatePushCommand) (daraja.PushResponse, error) {
	request := daraja.PushRequest{
		PhoneNumber:      cmd.PhoneNumber,
		Amount:           cmd.Amount,
		AccountReference: cmd.AccountReference,
		TransactionDesc:  cmd.TransactionDesc,
	}

	if request.AccountReference == "" {
		request.AccountReference = defaultAccountReference
	}
	if request.TransactionDesc == "" {
		request.TransactionDesc = defaultTransactionDesc
	}

	response, err := p.gateway.STKPush(ctx, request)
	if err != nil {
		if errors.Is(err, daraja.ErrAuthenticationFailed) {
			p.logger.Error("Token exchange failed, aborting push",
				zap.Error(err),
				zap.String("phoneNumber", cmd.PhoneNumber))
			return daraja.PushResponse{}, NewServiceError(constants.ErrCodeAuthFailed, err)
		}

		p.logger.Error("STK push failed",
			zap.Error(err),
			zap.String("phoneNumber", cmd.PhoneNumber),
			zap.Int64("amount", cmd.Amount))
		return daraja.PushResponse{}, NewServiceError(constants.ErrCodePushFailed, err)
	}

	if response.ResponseCode != daraja.ResponseCodeSuccess {
		p.logger.Warn("Push not accepted by processor, no transaction recorded",
			zap.String("responseCode", response.ResponseCode),
			zap.String("responseDescription", response.ResponseDescription),
			zap.String("phoneNumber", cmd.PhoneNumber))
		return response, nil
	}

	tx := model.Transaction{
		MerchantRequestID: response.MerchantRequestID,
		CheckoutRequestID: response.CheckoutRequestID,
		Status:            model.TxStatusRequested,
		Amount:            cmd.Amount,
		PhoneNumber:       cmd.PhoneNumber,
	}

	if err := p.txRepo.Create(ctx, &tx); err != nil {
		if errors.Is(err, repository.ErrTransactionDuplicate) {
			p.logger.Warn("Duplicate checkout request id from processor",
				zap.String("checkoutRequestID", response.CheckoutRequestID))
			return daraja.PushResponse{}, NewServiceError(constants.ErrCodeTransactionDuplicate, err)
		}

		p.logger.Error("Failed to record pending transaction",
			zap.Error(err),
			zap.String("checkoutRequestID", response.CheckoutRequestID))
		return daraja.PushResponse{}, NewServiceError(constants.ErrCodeDatabase, err)
	}

	p.logger.Info("Push accepted, transaction recorded",
		zap.String("checkoutRequestID", response.CheckoutRequestID),
		zap.String("merchantRequestID", response.MerchantRequestID),
		zap.Int64("amount", cmd.Amount))

	// The push already went out; a failed order link must not undo the
	// transaction record, so it is logged and swallowed.
	if cmd.OrderID != "" {
		if err := p.orderRepo.AttachCheckoutRequest(ctx, cmd.OrderID, response.CheckoutRequestID); err != nil {
			p.logger.Warn("Failed to link order to checkout request",
				zap.Error(err),
				zap.String("orderID", cmd.OrderID),
				zap.String("checkoutRequestID", response.CheckoutRequestID))
		}
	}

	return response, nil
}
