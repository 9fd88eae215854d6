package model

import "time"

const (
	TxStatusRequested = "REQUESTED"
	TxStatusCompleted = "COMPLETED"
	TxStatusFailed    = "FAILED"
)

// Transaction is one push attempt acknowledged by the processor. It is
// created in REQUESTED state when the processor accepts a push and mutated
// exactly once, by the callback reconciler, into a terminal state.
type Transaction struct {
	ID                int64      `gorm:"primaryKey;autoIncrement;<-:create"`
	MerchantRequestID string     `gorm:"type:varchar(255);not null;<-:create"`
	CheckoutRequestID string     `gorm:"type:varchar(255);uniqueIndex;not null;<-:create"`
	Status            string     `gorm:"type:enum('REQUESTED','COMPLETED','FAILED');not null"`
	Amount            int64      `gorm:"not null;<-:create"`
	PhoneNumber       string     `gorm:"type:varchar(32);not null;<-:create"`
	ReceiptNumber     *string    `gorm:"type:varchar(64);null"`
	ResultDescription *string    `gorm:"type:text;null"`
	Published         bool       `gorm:"default:false;not null"`
	PublishedAt       *time.Time `gorm:"type:timestamp;null"`
	CreatedAt         time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP"`
	UpdatedAt         time.Time  `gorm:"type:timestamp;default:CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP"`
}
