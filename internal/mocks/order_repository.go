package mocks

import (
	"context"

	"github.com/captainblair/vertex/internal/model"
	"github.com/stretchr/testify/mock"
)

type OrderRepository struct {
	mock.Mock
}

func (m *OrderRepository) Create(ctx context.Context, order *model.Order) error {
	args := m.Called(ctx, order)
	return args.Error(0)
}

func (m *OrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *OrderRepository) AttachCheckoutRequest(ctx context.Context, orderID, checkoutRequestID string) error {
	args := m.Called(ctx, orderID, checkoutRequestID)
	return args.Error(0)
}

func (m *OrderRepository) MarkPaidByCheckoutRequestID(ctx context.Context, checkoutRequestID string) error {
	args := m.Called(ctx, checkoutRequestID)
	return args.Error(0)
}
