package models

import (
	"time"
)

// Member links a user to its optional instructor and group classes.
// Deleting a member soft-deletes the underlying user, never this row.
type Member struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	UserID       uint        `gorm:"uniqueIndex" json:"user_id"`
	User         User        `gorm:"foreignKey:UserID" json:"user,omitempty"`
	InstructorID *uint       `gorm:"index" json:"instructor_id,omitempty"`
	Instructor   *Instructor `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	GymID        *uint       `gorm:"index" json:"gym_id,omitempty"`

	IsActive bool `gorm:"default:true" json:"is_active"`

	// Relationships
	GroupClasses []GroupClass `gorm:"many2many:group_class_members;" json:"group_classes,omitempty"`
}
