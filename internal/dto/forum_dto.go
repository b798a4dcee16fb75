package dto

import "github.com/google/uuid"

type CreateTopicRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Technologies []string `json:"technologies"`
}

// UpdateTopicRequest carries a partial patch; nil fields are left unchanged.
type UpdateTopicRequest struct {
	Title        *string   `json:"title"`
	Description  *string   `json:"description"`
	Technologies *[]string `json:"technologies"`
}

type CreateCommentRequest struct {
	TopicID uuid.UUID `json:"topic_id"`
	Content string    `json:"content"`
}

type UpdateCommentRequest struct {
	Content string `json:"content"`
}

// UpdateProfileRequest carries a partial upsert; nil fields carry forward
// from the existing profile.
type UpdateProfileRequest struct {
	UserName  *string `json:"user_name"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	CapaURL   *string `json:"capa_url"`
	IsPublic  *bool   `json:"is_public"`
}

type UpdateVisibilityRequest struct {
	IsPublic *bool `json:"is_public"`
}

type BanUserRequest struct {
	Reason       string `json:"reason"`
	ExpiresHours *int   `json:"expires_hours"` // nil means permanent
}

type MessageResponse struct {
	Message string `json:"message"`
}
