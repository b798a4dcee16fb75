package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// Topic is a forum discussion subject tagged with 1-5 technologies.
type Topic struct {
	ID           uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"topicId"`
	Title        string         `gorm:"size:100;not null" json:"title"`
	Description  string         `gorm:"type:text;not null" json:"description"`
	Technologies pq.StringArray `gorm:"type:text[]" json:"technologies"`
	UserID       uuid.UUID      `gorm:"type:uuid;not null;index" json:"user_id"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
	User         User           `gorm:"foreignKey:UserID" json:"-"`
}

// TopicWithCount is a Topic annotated with a comment count derived at read
// time; the count is never stored.
type TopicWithCount struct {
	Topic
	CommentCount int64 `json:"comment_count"`
}

// TopicDetail is a Topic joined with its author profile and comments.
type TopicDetail struct {
	Topic
	Author   *Profile            `json:"author,omitempty"`
	Comments []CommentWithAuthor `json:"comments"`
}
