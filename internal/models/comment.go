package models

import (
	"time"

	"github.com/google/uuid"
)

// Comment belongs to a topic. It can be removed by its author or by the
// author of the parent topic.
type Comment struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Content   string    `gorm:"type:text;not null" json:"content"`
	UserID    uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	TopicID   uuid.UUID `gorm:"type:uuid;not null;index" json:"topic_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CommentWithAuthor is a Comment joined with the author's profile.
type CommentWithAuthor struct {
	Comment
	Author *Profile `json:"author,omitempty"`
}
