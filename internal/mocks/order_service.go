package mocks

import (
	"context"

	"github.com/captainblair/vertex/internal/model"
	"github.com/captainblair/vertex/internal/service"
	"github.com/stretchr/testify/mock"
)

type OrderService struct {
	mock.Mock
}

func (m *OrderService) CreateOrder(ctx context.Context, cmd service.CreateOrderCommand) (service.CreateOrderResponse, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(service.CreateOrderResponse), args.Error(1)
}

func (m *OrderService) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Order), args.Error(1)
}

func (m *OrderService) MarkOrderPaid(ctx context.Context, checkoutRequestID string) error {
	args := m.Called(ctx, checkoutRequestID)
	return args.Error(0)
}
