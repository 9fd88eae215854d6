package service

type InitiatePushCommand struct {
	PhoneNumber      string
	Amount           int64
	AccountReference string
	TransactionDesc  string
	OrderID          string
}

type CreateOrderCommand struct {
	PhoneNumber string
	Amount      int64
}

type CreateOrderResponse struct {
	OrderID string `json:"order_id"`
}

// PaymentCompletedEvent is published to the payment.completed queue once for
// every transaction that reached COMPLETED, and consumed by the orders worker.
type PaymentCompletedEvent struct {
	CheckoutRequestID string `json:"checkout_request_id"`
	ReceiptNumber     string `json:"receipt_number,omitempty"`
	Amount            int64  `json:"amount"`
	PhoneNumber       string `json:"phone_number"`
}
