package models

import (
	"time"

	"gorm.io/gorm"
)

// SoftDelete marks a row inactive instead of removing it. Both fields
// are only ever written together through MarkDeleted.
type SoftDelete struct {
	IsDeleted bool       `gorm:"default:false;index" json:"is_deleted"`
	DeletedAt *time.Time `json:"deleted_at,omitempty"`
}

// MarkDeleted flags the row as deleted at the given instant.
func (s *SoftDelete) MarkDeleted(now time.Time) {
	s.IsDeleted = true
	s.DeletedAt = &now
}

// Active filters out soft-deleted rows. Applied on every read path.
func Active(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ?", false)
}

// OwnerActive filters rows of the given table whose owning user has
// been soft-deleted. Instructor and Member visibility cascades through
// the user row rather than a flag of their own.
func OwnerActive(table string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.
			Select(table+".*").
			Joins("JOIN users ON users.id = "+table+".user_id").
			Where("users.is_deleted = ?", false)
	}
}
