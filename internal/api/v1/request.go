package v1

type StkPushRequest struct {
	PhoneNumber      string `json:"phoneNumber" validate:"required,msisdn"`
	Amount           int64  `json:"amount" validate:"required,min=1"`
	AccountReference string `json:"accountReference" validate:"omitempty,max=12"`
	TransactionDesc  string `json:"transactionDesc" validate:"omitempty,max=13"`
	OrderID          string `json:"orderId" validate:"omitempty,uuid4"`
}

type CreateOrderRequest struct {
	PhoneNumber string `json:"phoneNumber" validate:"required,msisdn"`
	Amount      int64  `json:"amount" validate:"required,min=1"`
}
