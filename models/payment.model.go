package models

import (
	"time"

	"gorm.io/gorm"
)

// Payment is an append-only ledger entry, one per successful checkout.
// It is the audit trail behind "my enrolled classes" and must never be
// updated or deleted once written.
type Payment struct {
	gorm.Model
	OwnerEmail     string    `json:"owner_email" gorm:"index;not null"`
	CartItemID     uint      `json:"cart_item_id" gorm:"not null"`
	ClassID        uint      `json:"class_id" gorm:"index;not null"`
	Amount         float64   `json:"amount" gorm:"not null"`
	TransactionRef string    `json:"transaction_ref" gorm:"index;not null"` // Gateway confirmation token
	ReceiptID      string    `json:"receipt_id" gorm:"not null"`            // Server-side receipt identifier
	Date           time.Time `json:"date" gorm:"index;not null"`
}
