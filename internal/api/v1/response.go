package v1

type CallbackAckResponse struct {
	Result string `json:"result"`
}

type StatusResponse struct {
	CheckoutRequestID string `json:"checkout_request_id"`
	Status            string `json:"status"`
}

type OrderResponse struct {
	OrderID           string  `json:"order_id"`
	PhoneNumber       string  `json:"phone_number"`
	TotalAmount       int64   `json:"total_amount"`
	Status            string  `json:"status"`
	CheckoutRequestID *string `json:"checkout_request_id,omitempty"`
	CreatedAt         string  `json:"created_at"`
}
