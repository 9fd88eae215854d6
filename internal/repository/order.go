package repository

import (
	"context"
	"errors"

	"github.com/captainblair/vertex/internal/model"
	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("ORDER_NOT_FOUND")

type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) error
	GetByID(ctx context.Context, id string) (*model.Order, error)
	AttachCheckoutRequest(ctx context.Context, orderID, checkoutRequestID string) error
	MarkPaidByCheckoutRequestID(ctx context.Context, checkoutRequestID string) error
}

type Order struct {
	db *gorm.DB
}

func NewOrderRepository(db *gorm.DB) OrderRepository {
	return &Order{db: db}
}

func (r *Order) Create(ctx context.Context, order *model.Order) error {
	return r.db.WithContext(ctx).Create(order).Error
}

func (r *Order) GetByID(ctx context.Context, id string) (*model.Order, error) {
	var order model.Order

	err := r.db.WithContext(ctx).Where("id = ?", id).First(&order).Error
	if err == nil {
		return &order, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrOrderNotFound
	}

	return nil, err
}

func (r *Order) AttachCheckoutRequest(ctx context.Context, orderID, checkoutRequestID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("id = ?", orderID).
		Update("checkout_request_id", checkoutRequestID)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrOrderNotFound
	}

	return nil
}

func (r *Order) MarkPaidByCheckoutRequestID(ctx context.Context, checkoutRequestID string) error {
	result := r.db.WithContext(ctx).
		Model(&model.Order{}).
		Where("checkout_request_id = ? AND status = ?", checkoutRequestID, model.OrderStatusPending).
		Update("status", model.OrderStatusPaid)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNoRowsAffected
	}

	return nil
}
