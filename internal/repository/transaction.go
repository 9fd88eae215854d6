package repository

import (
	"context"
	"errors"
	"time"

	"github.com/captainblair/vertex/internal/model"
	"github.com/go-sql-driver/mysql"
	"gorm.io/gorm"
)

var ErrTransactionNotFound = errors.New("TRANSACTION_NOT_FOUND")
var ErrTransactionDuplicate = errors.New("TRANSACTION_DUPLICATE")
var ErrNoRowsAffected = errors.New("NO_ROWS_AFFECTED")

// TransactionRepository is the record-store contract the payment core relies
// on: insert by correlation id, partial update by correlation id, lookup by
// correlation id. Nothing else.
type TransactionRepository interface {
	Create(ctx context.Context, tx *model.Transaction) error
	UpdateByCheckoutRequestID(ctx context.Context, checkoutRequestID string, fields *model.Transaction) error
	GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*model.Transaction, error)
	FindUnpublishedCompleted(ctx context.Context, limit int) ([]model.Transaction, error)
	MarkPublished(ctx context.Context, checkoutRequestID string) error
}

type Transaction struct {
	db *gorm.DB
}

func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &Transaction{db: db}
}

func (r *Transaction) Create(ctx context.Context, tx *model.Transaction) error {
	err := r.db.WithContext(ctx).Create(tx).Error
	if err == nil {
		return nil
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == 1062 {
		return ErrTransactionDuplicate
	}

	return err
}

func (r *Transaction) UpdateByCheckoutRequestID(ctx context.Context, checkoutRequestID string, fields *model.Transaction) error {
	return r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("checkout_request_id = ?", checkoutRequestID).
		Updates(fields).Error
}

func (r *Transaction) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*model.Transaction, error) {
	var tx model.Transaction

	err := r.db.WithContext(ctx).Where("checkout_request_id = ?", checkoutRequestID).First(&tx).Error
	if err == nil {
		return &tx, nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrTransactionNotFound
	}

	return nil, err
}

func (r *Transaction) FindUnpublishedCompleted(ctx context.Context, limit int) ([]model.Transaction, error) {
	var txs []model.Transaction

	err := r.db.WithContext(ctx).
		Where("status = ? AND published = ?", model.TxStatusCompleted, false).
		Order("created_at ASC").
		Limit(limit).
		Find(&txs).Error
	if err != nil {
		return nil, err
	}

	return txs, nil
}

func (r *Transaction) MarkPublished(ctx context.Context, checkoutRequestID string) error {
	publishedAt := time.Now()
	return r.db.WithContext(ctx).
		Model(&model.Transaction{}).
		Where("checkout_request_id = ?", checkoutRequestID).
		Updates(&model.Transaction{Published: true, PublishedAt: &publishedAt}).Error
}
