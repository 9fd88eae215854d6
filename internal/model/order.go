package model

import "time"

const (
	OrderStatusPending = "PENDING"
	OrderStatusPaid    = "PAID"
)

type Order struct {
	ID                string    `gorm:"type:varchar(36);primaryKey;<-:create"`
	PhoneNumber       string    `gorm:"type:varchar(32);not null;<-:create"`
	TotalAmount       int64     `gorm:"not null;<-:create"`
	Status            string    `gorm:"type:enum('PENDING','PAID');not null"`
	CheckoutRequestID *string   `gorm:"type:varchar(255);index;null"`
	CreatedAt         time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time `gorm:"type:timestamp;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}
