package models

import (
	"time"

	"github.com/google/uuid"
)

// Profile is the public face of a user. One per user; user_name is unique
// across all profiles. A profile with is_public = false is only visible to
// its owner.
type Profile struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	UserName  string    `gorm:"size:30;not null;uniqueIndex" json:"user_name"`
	Bio       string    `gorm:"size:200" json:"bio"`
	AvatarURL string    `gorm:"size:500" json:"avatar_url,omitempty"`
	CapaURL   string    `gorm:"size:500" json:"capa_url,omitempty"`
	IsPublic  bool      `gorm:"default:false" json:"is_public"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	User      User      `gorm:"foreignKey:UserID" json:"-"`
}
