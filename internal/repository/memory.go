package repository

import (
	"context"
	"sync"
	"time"

	"github.com/captainblair/vertex/internal/model"
)

// MemoryTransactionRepository keeps transactions in a mutex-guarded map keyed
// by checkout request id. Used in sandbox mode and in tests; production wires
// the MySQL repository instead.
type MemoryTransactionRepository struct {
	mu     sync.Mutex
	nextID int64
	txs    map[string]model.Transaction
}

var _ TransactionRepository = (*MemoryTransactionRepository)(nil)

func NewMemoryTransactionRepository() *MemoryTransactionRepository {
	return &MemoryTransactionRepository{txs: make(map[string]model.Transaction)}
}

func (m *MemoryTransactionRepository) Create(ctx context.Context, tx *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.txs[tx.CheckoutRequestID]; exists {
		return ErrTransactionDuplicate
	}

	m.nextID++
	tx.ID = m.nextID
	tx.CreatedAt = time.Now()
	tx.UpdatedAt = tx.CreatedAt
	m.txs[tx.CheckoutRequestID] = *tx

	return nil
}

func (m *MemoryTransactionRepository) UpdateByCheckoutRequestID(ctx context.Context, checkoutRequestID string, fields *model.Transaction) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, exists := m.txs[checkoutRequestID]
	if !exists {
		return nil
	}

	if fields.Status != "" {
		tx.Status = fields.Status
	}
	if fields.ReceiptNumber != nil {
		tx.ReceiptNumber = fields.ReceiptNumber
	}
	if fields.ResultDescription != nil {
		tx.ResultDescription = fields.ResultDescription
	}
	if fields.Published {
		tx.Published = true
		tx.PublishedAt = fields.PublishedAt
	}
	tx.UpdatedAt = time.Now()

	m.txs[checkoutRequestID] = tx

	return nil
}

func (m *MemoryTransactionRepository) GetByCheckoutRequestID(ctx context.Context, checkoutRequestID string) (*model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	tx, exists := m.txs[checkoutRequestID]
	if !exists {
		return nil, ErrTransactionNotFound
	}

	copied := tx
	return &copied, nil
}

func (m *MemoryTransactionRepository) FindUnpublishedCompleted(ctx context.Context, limit int) ([]model.Transaction, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var result []model.Transaction
	for _, tx := range m.txs {
		if tx.Status == model.TxStatusCompleted && !tx.Published {
			result = append(result, tx)
			if len(result) == limit {
				break
			}
		}
	}

	return result, nil
}

func (m *MemoryTransactionRepository) MarkPublished(ctx context.Context, checkoutRequestID string) error {
	publishedAt := time.Now()
	return m.UpdateByCheckoutRequestID(ctx, checkoutRequestID, &model.Transaction{
		Published:   true,
		PublishedAt: &publishedAt,
	})
}

// MemoryOrderRepository is the in-memory counterpart of the MySQL order
// repository, for sandbox mode and tests.
type MemoryOrderRepository struct {
	mu     sync.Mutex
	orders map[string]model.Order
}

var _ OrderRepository = (*MemoryOrderRepository)(nil)

func NewMemoryOrderRepository() *MemoryOrderRepository {
	return &MemoryOrderRepository{orders: make(map[string]model.Order)}
}

func (m *MemoryOrderRepository) Create(ctx context.Context, order *model.Order) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order.CreatedAt = time.Now()
	order.UpdatedAt = order.CreatedAt
	m.orders[order.ID] = *order

	return nil
}

func (m *MemoryOrderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, exists := m.orders[id]
	if !exists {
		return nil, ErrOrderNotFound
	}

	copied := order
	return &copied, nil
}

func (m *MemoryOrderRepository) AttachCheckoutRequest(ctx context.Context, orderID, checkoutRequestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	order, exists := m.orders[orderID]
	if !exists {
		return ErrOrderNotFound
	}

	order.CheckoutRequestID = &checkoutRequestID
	order.UpdatedAt = time.Now()
	m.orders[orderID] = order

	return nil
}

func (m *MemoryOrderRepository) MarkPaidByCheckoutRequestID(ctx context.Context, checkoutRequestID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for id, order := range m.orders {
		if order.CheckoutRequestID == nil || *order.CheckoutRequestID != checkoutRequestID {
			continue
		}
		if order.Status != model.OrderStatusPending {
			continue
		}

		order.Status = model.OrderStatusPaid
		order.UpdatedAt = time.Now()
		m.orders[id] = order
		return nil
	}

	return ErrNoRowsAffected
}
