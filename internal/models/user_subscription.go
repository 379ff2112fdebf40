package models

import (
	"time"
)

// UserSubscription assigns a plan to a user for a period. At most one
// active, non-deleted row may exist per (user, subscription) pair;
// the check lives in the handler, not the schema.
type UserSubscription struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID         uint         `gorm:"index" json:"user_id"`
	User           User         `gorm:"foreignKey:UserID" json:"user,omitempty"`
	SubscriptionID uint         `gorm:"index" json:"subscription_id"`
	Subscription   Subscription `gorm:"foreignKey:SubscriptionID" json:"subscription,omitempty"`

	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	IsActive  bool      `gorm:"default:true" json:"is_active"`

	SoftDelete `gorm:"embedded"`
}
