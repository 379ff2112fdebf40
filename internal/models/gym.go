package models

import (
	"time"
)

// Gym groups instructors, members and group classes under one location.
type Gym struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name string `gorm:"type:varchar(255)" json:"name"`

	// Relationships
	Instructors  []Instructor `gorm:"foreignKey:GymID" json:"instructors,omitempty"`
	Members      []Member     `gorm:"foreignKey:GymID" json:"members,omitempty"`
	GroupClasses []GroupClass `gorm:"foreignKey:GymID" json:"group_classes,omitempty"`
}
