package models

import (
	"time"
)

// PaymentStatus represents the state of a payment
type PaymentStatus string

const (
	PaymentPending   PaymentStatus = "Pending"
	PaymentCompleted PaymentStatus = "Completed"
	PaymentFailed    PaymentStatus = "Failed"
	PaymentRefunded  PaymentStatus = "Refunded"
)

// ValidPaymentStatus reports whether s is a known payment state.
func ValidPaymentStatus(s PaymentStatus) bool {
	switch s {
	case PaymentPending, PaymentCompleted, PaymentFailed, PaymentRefunded:
		return true
	}
	return false
}

// Payment records money received against a user subscription.
type Payment struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserSubscriptionID uint             `gorm:"index" json:"user_subscription_id"`
	UserSubscription   UserSubscription `gorm:"foreignKey:UserSubscriptionID" json:"user_subscription,omitempty"`

	Amount      float64       `gorm:"type:decimal(15,2)" json:"amount"`
	PaymentDate time.Time     `json:"payment_date"`
	Status      PaymentStatus `gorm:"type:varchar(20);default:'Pending'" json:"status"`

	// Assigned a generated UUID when the caller does not supply one.
	TransactionID *string `gorm:"type:varchar(64)" json:"transaction_id,omitempty"`

	SoftDelete `gorm:"embedded"`
}
