package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is the account record. Ban state is managed by admins and consulted
// before any mutating forum action.
type User struct {
	ID         uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email      string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password   string         `gorm:"not null" json:"-"`
	Role       string         `gorm:"size:20;default:'user'" json:"role"`
	Banned     bool           `gorm:"default:false" json:"banned"`
	BanReason  *string        `gorm:"size:500" json:"ban_reason,omitempty"`
	BanExpires *time.Time     `json:"ban_expires,omitempty"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// BanActive reports whether the ban window covers the given instant.
// A ban without an expiry is permanent.
func (u *User) BanActive(now time.Time) bool {
	if !u.Banned {
		return false
	}
	return u.BanExpires == nil || u.BanExpires.After(now)
}
