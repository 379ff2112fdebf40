package models

import (
	"time"
)

// Instructor links a user to the members it trains. Deleting an
// instructor soft-deletes the underlying user, never this row.
type Instructor struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID uint  `gorm:"uniqueIndex" json:"user_id"`
	User   User  `gorm:"foreignKey:UserID" json:"user,omitempty"`
	GymID  *uint `gorm:"index" json:"gym_id,omitempty"`

	// Relationships
	Members []Member `gorm:"foreignKey:InstructorID" json:"members,omitempty"`
}
