package models

import (
	"time"
)

// SubscriptionType represents the billing period of a plan
type SubscriptionType string

const (
	SubscriptionMonthly   SubscriptionType = "Monthly"
	SubscriptionSemestral SubscriptionType = "Semestral"
	SubscriptionYearly    SubscriptionType = "Yearly"
)

// ValidSubscriptionType reports whether t is a known plan type.
func ValidSubscriptionType(t SubscriptionType) bool {
	switch t {
	case SubscriptionMonthly, SubscriptionSemestral, SubscriptionYearly:
		return true
	}
	return false
}

// Subscription is a purchasable membership plan.
type Subscription struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Type       SubscriptionType `gorm:"type:varchar(20)" json:"type"`
	TotalPrice float64          `gorm:"type:decimal(15,2)" json:"total_price"`

	SoftDelete `gorm:"embedded"`
}
