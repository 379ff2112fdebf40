package models

import (
	"time"
)

// SessionStatus represents the lifecycle of a personal-training session
type SessionStatus string

const (
	SessionScheduled SessionStatus = "Scheduled"
	SessionCompleted SessionStatus = "Completed"
	SessionCancelled SessionStatus = "Cancelled"
	SessionNoShow    SessionStatus = "NoShow"
)

// ValidSessionStatus reports whether s is a known session state.
func ValidSessionStatus(s SessionStatus) bool {
	switch s {
	case SessionScheduled, SessionCompleted, SessionCancelled, SessionNoShow:
		return true
	}
	return false
}

// PtSession is a personal-training appointment between an instructor
// and a member. No overlap check is performed against the instructor's
// existing schedule.
type PtSession struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	InstructorID uint       `gorm:"index" json:"instructor_id"`
	Instructor   Instructor `gorm:"foreignKey:InstructorID" json:"instructor,omitempty"`
	MemberID     uint       `gorm:"index" json:"member_id"`
	Member       Member     `gorm:"foreignKey:MemberID" json:"member,omitempty"`

	Price       float64       `gorm:"type:decimal(15,2)" json:"price"`
	SessionTime time.Time     `json:"session_time"`
	Notes       string        `gorm:"type:text" json:"notes"`
	Status      SessionStatus `gorm:"type:varchar(20);default:'Scheduled'" json:"status"`

	SoftDelete `gorm:"embedded"`
}
