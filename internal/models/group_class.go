package models

import (
	"time"
)

// GroupClassType represents the kind of class on the schedule
type GroupClassType string

const (
	ClassYoga             GroupClassType = "Yoga"
	ClassPilates          GroupClassType = "Pilates"
	ClassSpinning         GroupClassType = "Spinning"
	ClassZumba            GroupClassType = "Zumba"
	ClassCrossfit         GroupClassType = "Crossfit"
	ClassHIIT             GroupClassType = "HIIT"
	ClassStrengthTraining GroupClassType = "StrengthTraining"
	ClassCardio           GroupClassType = "Cardio"
	ClassJumping          GroupClassType = "Jumping"
	ClassABS              GroupClassType = "ABS"
)

// GroupClassTypes lists every valid class type for input validation.
var GroupClassTypes = []GroupClassType{
	ClassYoga, ClassPilates, ClassSpinning, ClassZumba, ClassCrossfit,
	ClassHIIT, ClassStrengthTraining, ClassCardio, ClassJumping, ClassABS,
}

// GroupClass represents a scheduled class members can enroll in.
// CurrentEnrollment is maintained only by the enroll/unenroll
// operations, in the same transaction as the roster change.
type GroupClass struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Type              GroupClassType `gorm:"type:varchar(30)" json:"type"`
	Name              string         `gorm:"type:varchar(255)" json:"name"`
	Description       string         `gorm:"type:text" json:"description"`
	StartTime         time.Time      `json:"start_time"`
	MaxCapacity       int            `json:"max_capacity"`
	CurrentEnrollment int            `gorm:"default:0" json:"current_enrollment"`

	InstructorID *uint       `gorm:"index" json:"instructor_id,omitempty"`
	Instructor   *Instructor `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	GymID        *uint       `gorm:"index" json:"gym_id,omitempty"`

	SoftDelete `gorm:"embedded"`

	// Relationships
	Members []Member `gorm:"many2many:group_class_members;" json:"members,omitempty"`
}

// ValidGroupClassType reports whether t is a known class type.
func ValidGroupClassType(t GroupClassType) bool {
	for _, known := range GroupClassTypes {
		if t == known {
			return true
		}
	}
	return false
}
