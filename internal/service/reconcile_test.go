package service_test

import (
	"context"
	"testing"

	"github.com/captainblair/vertex/internal/model"
	"github.com/captainblair/vertex/internal/repository"
	"github.com/captainblair/vertex/internal/service"
	"github.com/captainblair/vertex/pkg/daraja"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func seedRequested(t *testing.T, repo *repository.MemoryTransactionRepository, checkoutRequestID string) {
	t.Helper()
	require.NoError(t, repo.Create(context.Background(), &model.Transaction{
		MerchantRequestID: "MRID-1",
		CheckoutRequestID: checkoutRequestID,
		Status:            model.TxStatusRequested,
		Amount:            500,
		PhoneNumber:       "254712345678",
	}))
}

func successCallback(checkoutRequestID, receipt string) daraja.CallbackEnvelope {
	return daraja.CallbackEnvelope{
		Body: daraja.CallbackBody{
			StkCallback: &daraja.StkCallback{
				MerchantRequestID: "MRID-1",
				CheckoutRequestID: checkoutRequestID,
				ResultCode:        0,
				ResultDesc:        "The service request is processed successfully.",
				CallbackMetadata: &daraja.CallbackMetadata{
					Item: []daraja.MetadataItem{
						{Name: "Amount", Value: float64(500)},
						{Name: "MpesaReceiptNumber", Value: receipt},
						{Name: "PhoneNumber", Value: float64(254712345678)},
					},
				},
			},
		},
	}
}

func failureCallback(checkoutRequestID string) daraja.CallbackEnvelope {
	return daraja.CallbackEnvelope{
		Body: daraja.CallbackBody{
			StkCallback: &daraja.StkCallback{
				CheckoutRequestID: checkoutRequestID,
				ResultCode:        1,
				ResultDesc:        "The balance is insufficient for the transaction",
			},
		},
	}
}

func TestReconciler_ReconcileCallback(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("success callback completes transaction with receipt", func(t *testing.T) {
		repo := repository.NewMemoryTransactionRepository()
		seedRequested(t, repo, "CRID-1")
		svc := service.NewReconcilerService(repo, logger)

		require.NoError(t, svc.ReconcileCallback(ctx, successCallback("CRID-1", "QAR7X8Y9Z0")))

		tx, err := repo.GetByCheckoutRequestID(ctx, "CRID-1")
		require.NoError(t, err)
		assert.Equal(t, model.TxStatusCompleted, tx.Status)
		require.NotNil(t, tx.ReceiptNumber)
		assert.Equal(t, "QAR7X8Y9Z0", *tx.ReceiptNumber)
		require.NotNil(t, tx.ResultDescription)
		assert.Equal(t, "The service request is processed successfully.", *tx.ResultDescription)
	})

	t.Run("redelivered callback leaves the same final state", func(t *testing.T) {
		repo := repository.NewMemoryTransactionRepository()
		seedRequested(t, repo, "CRID-1")
		svc := service.NewReconcilerService(repo, logger)

		require.NoError(t, svc.ReconcileCallback(ctx, successCallback("CRID-1", "QAR7X8Y9Z0")))
		require.NoError(t, svc.ReconcileCallback(ctx, successCallback("CRID-1", "QAR7X8Y9Z0")))

		tx, err := repo.GetByCheckoutRequestID(ctx, "CRID-1")
		require.NoError(t, err)
		assert.Equal(t, model.TxStatusCompleted, tx.Status)
		assert.Equal(t, "QAR7X8Y9Z0", *tx.ReceiptNumber)
	})

	t.Run("failure callback fails transaction without receipt", func(t *testing.T) {
		repo := repository.NewMemoryTransactionRepository()
		seedRequested(t, repo, "CRID-1")
		svc := service.NewReconcilerService(repo, logger)

		require.NoError(t, svc.ReconcileCallback(ctx, failureCallback("CRID-1")))

		tx, err := repo.GetByCheckoutRequestID(ctx, "CRID-1")
		require.NoError(t, err)
		assert.Equal(t, model.TxStatusFailed, tx.Status)
		assert.Nil(t, tx.ReceiptNumber)
	})

	t.Run("unknown checkout request id is a no-op", func(t *testing.T) {
		repo := repository.NewMemoryTransactionRepository()
		svc := service.NewReconcilerService(repo, logger)

		assert.NoError(t, svc.ReconcileCallback(ctx, successCallback("CRID-unknown", "QAR7X8Y9Z0")))
	})

	t.Run("envelope without stkCallback body is ignored", func(t *testing.T) {
		repo := repository.NewMemoryTransactionRepository()
		seedRequested(t, repo, "CRID-1")
		svc := service.NewReconcilerService(repo, logger)

		assert.NoError(t, svc.ReconcileCallback(ctx, daraja.CallbackEnvelope{}))

		tx, err := repo.GetByCheckoutRequestID(ctx, "CRID-1")
		require.NoError(t, err)
		assert.Equal(t, model.TxStatusRequested, tx.Status)
	})
}

func TestPaymentRoundTrip(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()

	t.Run("push then success callback yields SUCCESS", func(t *testing.T) {
		repo := repository.NewMemoryTransactionRepository()
		seedRequested(t, repo, "CRID-1")

		reconciler := service.NewReconcilerService(repo, logger)
		statusSvc := service.NewStatusService(repo, logger)

		require.NoError(t, reconciler.ReconcileCallback(ctx, successCallback("CRID-1", "QAR7X8Y9Z0")))

		status, err := statusSvc.QueryStatus(ctx, "CRID-1")
		require.NoError(t, err)
		assert.Equal(t, service.StatusSuccess, status)
	})

	t.Run("push then failure callback yields FAILED", func(t *testing.T) {
		repo := repository.NewMemoryTransactionRepository()
		seedRequested(t, repo, "CRID-1")

		reconciler := service.NewReconcilerService(repo, logger)
		statusSvc := service.NewStatusService(repo, logger)

		require.NoError(t, reconciler.ReconcileCallback(ctx, failureCallback("CRID-1")))

		status, err := statusSvc.QueryStatus(ctx, "CRID-1")
		require.NoError(t, err)
		assert.Equal(t, service.StatusFailed, status)
	})
}
