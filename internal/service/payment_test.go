package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/captainblair/vertex/internal/constants"
	"github.com/captainblair/vertex/internal/mocks"
	"github.com/captainblair/vertex/internal/model"
	"github.com/captainblair/vertex/internal/repository"
	"github.com/captainblair/vertex/internal/service"
	"github.com/captainblair/vertex/pkg/daraja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestPayment_InitiatePush(t *testing.T) {
	logger := zap.NewNop()

	cmd := service.InitiatePushCommand{
		PhoneNumber: "254712345678",
		Amount:      500,
	}

	accepted := daraja.PushResponse{
		MerchantRequestID:   "MRID-1",
		CheckoutRequestID:   "CRID-1",
		ResponseCode:        "0",
		ResponseDescription: "Success. Request accepted for processing",
	}

	t.Run("accepted push records exactly one REQUESTED transaction", func(t *testing.T) {
		gateway := &mocks.DarajaClient{}
		txRepo := &mocks.TransactionRepository{}
		orderRepo := &mocks.OrderRepository{}
		svc := service.NewPaymentService(gateway, txRepo, orderRepo, logger)

		gateway.On("STKPush", context.Background(), mock.MatchedBy(func(req daraja.PushRequest) bool {
			return req.PhoneNumber == cmd.PhoneNumber &&
				req.Amount == cmd.Amount &&
				req.AccountReference == "Vertex" &&
				req.TransactionDesc == "Payment for Order"
		})).Return(accepted, nil)

		txRepo.On("Create", context.Background(), mock.MatchedBy(func(tx *model.Transaction) bool {
			return tx.CheckoutRequestID == "CRID-1" &&
				tx.MerchantRequestID == "MRID-1" &&
				tx.Status == model.TxStatusRequested &&
				tx.Amount == 500 &&
				tx.PhoneNumber == "254712345678"
		})).Return(nil)

		resp, err := svc.InitiatePush(context.Background(), cmd)
		require.NoError(t, err)
		assert.Equal(t, accepted, resp)

		txRepo.AssertNumberOfCalls(t, "Create", 1)
		orderRepo.AssertNotCalled(t, "AttachCheckoutRequest")
		gateway.AssertExpectations(t)
		txRepo.AssertExpectations(t)
	})

	t.Run("rejected push creates no transaction and no error", func(t *testing.T) {
		gateway := &mocks.DarajaClient{}
		txRepo := &mocks.TransactionRepository{}
		orderRepo := &mocks.OrderRepository{}
		svc := service.NewPaymentService(gateway, txRepo, orderRepo, logger)

		rejected := daraja.PushResponse{
			ResponseCode:        "1032",
			ResponseDescription: "Request cancelled by user",
		}

		gateway.On("STKPush", context.Background(), mock.Anything).Return(rejected, nil)

		resp, err := svc.InitiatePush(context.Background(), cmd)
		require.NoError(t, err)
		assert.Equal(t, rejected, resp)

		txRepo.AssertNotCalled(t, "Create")
	})

	t.Run("authentication failure aborts the attempt", func(t *testing.T) {
		gateway := &mocks.DarajaClient{}
		txRepo := &mocks.TransactionRepository{}
		orderRepo := &mocks.OrderRepository{}
		svc := service.NewPaymentService(gateway, txRepo, orderRepo, logger)

		gateway.On("STKPush", context.Background(), mock.Anything).
			Return(daraja.PushResponse{}, daraja.ErrAuthenticationFailed)

		_, err := svc.InitiatePush(context.Background(), cmd)
		require.Error(t, err)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeAuthFailed, serviceErr.Code)

		txRepo.AssertNotCalled(t, "Create")
	})

	t.Run("processor rejection maps to push failure with diagnostics", func(t *testing.T) {
		gateway := &mocks.DarajaClient{}
		txRepo := &mocks.TransactionRepository{}
		orderRepo := &mocks.OrderRepository{}
		svc := service.NewPaymentService(gateway, txRepo, orderRepo, logger)

		pushErr := &daraja.PushError{StatusCode: 500, Details: []byte(`{"errorCode": "500.001.1001"}`)}
		gateway.On("STKPush", context.Background(), mock.Anything).Return(daraja.PushResponse{}, pushErr)

		_, err := svc.InitiatePush(context.Background(), cmd)
		require.Error(t, err)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodePushFailed, serviceErr.Code)

		var cause *daraja.PushError
		assert.True(t, errors.As(serviceErr.Cause, &cause))
		txRepo.AssertNotCalled(t, "Create")
	})

	t.Run("order linked when order id supplied", func(t *testing.T) {
		gateway := &mocks.DarajaClient{}
		txRepo := &mocks.TransactionRepository{}
		orderRepo := &mocks.OrderRepository{}
		svc := service.NewPaymentService(gateway, txRepo, orderRepo, logger)

		gateway.On("STKPush", context.Background(), mock.Anything).Return(accepted, nil)
		txRepo.On("Create", context.Background(), mock.Anything).Return(nil)
		orderRepo.On("AttachCheckoutRequest", context.Background(), "order-1", "CRID-1").Return(nil)

		withOrder := cmd
		withOrder.OrderID = "order-1"

		_, err := svc.InitiatePush(context.Background(), withOrder)
		require.NoError(t, err)
		orderRepo.AssertExpectations(t)
	})

	t.Run("failed order link does not undo the transaction", func(t *testing.T) {
		gateway := &mocks.DarajaClient{}
		txRepo := &mocks.TransactionRepository{}
		orderRepo := &mocks.OrderRepository{}
		svc := service.NewPaymentService(gateway, txRepo, orderRepo, logger)

		gateway.On("STKPush", context.Background(), mock.Anything).Return(accepted, nil)
		txRepo.On("Create", context.Background(), mock.Anything).Return(nil)
		orderRepo.On("AttachCheckoutRequest", context.Background(), "order-missing", "CRID-1").
			Return(repository.ErrOrderNotFound)

		withOrder := cmd
		withOrder.OrderID = "order-missing"

		resp, err := svc.InitiatePush(context.Background(), withOrder)
		require.NoError(t, err)
		assert.Equal(t, accepted, resp)
	})

	t.Run("duplicate correlation id surfaces conflict", func(t *testing.T) {
		gateway := &mocks.DarajaClient{}
		txRepo := &mocks.TransactionRepository{}
		orderRepo := &mocks.OrderRepository{}
		svc := service.NewPaymentService(gateway, txRepo, orderRepo, logger)

		gateway.On("STKPush", context.Background(), mock.Anything).Return(accepted, nil)
		txRepo.On("Create", context.Background(), mock.Anything).Return(repository.ErrTransactionDuplicate)

		_, err := svc.InitiatePush(context.Background(), cmd)
		require.Error(t, err)

		var serviceErr service.Error
		require.True(t, errors.As(err, &serviceErr))
		assert.Equal(t, constants.ErrCodeTransactionDuplicate, serviceErr.Code)
	})
}
