package mocks

import (
	"context"

	"github.com/captainblair/vertex/internal/model"
	"github.com/stretchr/testify/mock"
)

type TransactionRepository struct {
	mock.Mock
}

func (m *TransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *TransactionRepository) UpdateByCheckoutRequestID(ctx context.Context, checkoutRequestID string, fields *model.Transaction) error {
	args := m.Called(ctx, checkoutRequestID, fields)
	return args.Error(0)
}

func (m *TransactionRepository) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*model.Transaction, error) {
	args := m.Called(ctx, checkoutRequestID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Transaction), args.Error(1)
}

func (m *TransactionRepository) FindUnpublishedCompleted(ctx context.Context, limit int) ([]model.Transaction, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Transaction), args.Error(1)
}

func (m *TransactionRepository) MarkPublished(ctx context.Context, checkoutRequestID string) error {
	args := m.Called(ctx, checkoutRequestID)
	return args.Error(0)
}
