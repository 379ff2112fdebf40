package models

import (
	"time"
)

// UserRole is the coarse authorization role stored on a user
type UserRole string

const (
	RoleAdmin      UserRole = "Admin"
	RoleInstructor UserRole = "Instructor"
	RoleMember     UserRole = "Member"
)

// ValidUserRole reports whether r is a known role.
func ValidUserRole(r UserRole) bool {
	switch r {
	case RoleAdmin, RoleInstructor, RoleMember:
		return true
	}
	return false
}

// User represents an account in the system. Instructor and Member rows
// reference a User rather than subtyping it.
type User struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Name         string   `gorm:"type:varchar(255)" json:"name"`
	Email        string   `gorm:"type:varchar(255);index" json:"email"`
	Phone        string   `gorm:"type:varchar(50)" json:"phone"`
	PasswordHash string   `gorm:"type:varchar(255)" json:"-"`
	Role         UserRole `gorm:"type:varchar(20);default:'Member'" json:"role"`
	IsAdmin      bool     `gorm:"default:false" json:"is_admin"`

	// Email uniqueness is enforced at the application layer among
	// non-deleted users only, so the column carries a plain index.
	SoftDelete `gorm:"embedded"`
}
