package service

import (
	"context"
	"errors"

	"github.com/captainblair/vertex/internal/constants"
	"github.com/captainblair/vertex/internal/model"
	"github.com/captainblair/vertex/internal/repository"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderService interface {
	CreateOrder(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResponse, error)
	GetOrder(ctx context.Context, orderID string) (*model.Order, error)
	MarkOrderPaid(ctx context.Context, checkoutRequestID string) error
}

type order struct {
	orderRepo repository.OrderRepository
	logger    *zap.Logger
}

func NewOrderService(orderRepo repository.OrderRepository, logger *zap.Logger) OrderService {
	return &order{orderRepo: orderRepo, logger: logger}
}

func (o *order) CreateOrder(ctx context.Context, cmd CreateOrderCommand) (CreateOrderResponse, error) {
	record := model.Order{
		ID:          uuid.NewString(),
		PhoneNumber: cmd.PhoneNumber,
		TotalAmount: cmd.Amount,
		Status:      model.OrderStatusPending,
	}

	if err := o.orderRepo.Create(ctx, &record); err != nil {
		o.logger.Error("Failed to create order",
			zap.Error(err),
			zap.String("phoneNumber", cmd.PhoneNumber))
		return CreateOrderResponse{}, NewServiceError(constants.ErrCodeDatabase, err)
	}

	o.logger.Info("Order created",
		zap.String("orderID", record.ID),
		zap.Int64("totalAmount", cmd.Amount))

	return CreateOrderResponse{OrderID: record.ID}, nil
}

func (o *order) GetOrder(ctx context.Context, orderID string) (*model.Order, error) {
	record, err := o.orderRepo.GetByID(ctx, orderID)
	if err != nil {
		if errors.Is(err, repository.ErrOrderNotFound) {
			return nil, NewServiceError(constants.ErrCodeOrderNotFound, err)
		}

		return nil, NewServiceError(constants.ErrCodeDatabase, err)
	}

	return record, nil
}

// MarkOrderPaid is invoked by the orders worker on payment.completed events.
// A payment without a linked order is normal (direct pushes have none), so
// no-match is not an error.
func (o *order) MarkOrderPaid(ctx context.Context, checkoutRequestID string) error {
	err := o.orderRepo.MarkPaidByCheckoutRequestID(ctx, checkoutRequestID)
	if err == nil {
		o.logger.Info("Order marked paid",
			zap.String("checkoutRequestID", checkoutRequestID))
		return nil
	}

	if errors.Is(err, repository.ErrNoRowsAffected) {
		o.logger.Info("No pending order for completed payment",
			zap.String("checkoutRequestID", checkoutRequestID))
		return nil
	}

	o.logger.Error("Failed to mark order paid",
		zap.Error(err),
		zap.String("checkoutRequestID", checkoutRequestID))

	return ErrDatabase
}
