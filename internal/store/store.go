// Package store defines the persistence gateway contract. Services receive a
// Store through construction so tests can substitute the in-memory
// implementation for the PostgreSQL one.
package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/models"
)

// ErrNotFound is the absent-record sentinel shared by all implementations.
var ErrNotFound = errors.New("record not found")

type Store interface {
	// Users
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	SetUserBan(ctx context.Context, id uuid.UUID, banned bool, reason *string, expires *time.Time) error
	ListBannedUsers(ctx context.Context) ([]models.User, error)
	DeleteUserCascade(ctx context.Context, id uuid.UUID) error

	// Refresh tokens
	CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error
	GetRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error)
	RevokeRefreshToken(ctx context.Context, id uuid.UUID) error
	RevokeRefreshTokenByHash(ctx context.Context, hash string) error

	// Profiles
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	GetProfileByUserName(ctx context.Context, userName string) (*models.Profile, error)
	GetPublicProfileByUserName(ctx context.Context, userName string) (*models.Profile, error)
	SaveProfile(ctx context.Context, profile *models.Profile) error
	SetProfileVisibility(ctx context.Context, userID uuid.UUID, isPublic bool) error

	// Topics. ListTopics with an empty query returns everything; a non-empty
	// query applies the search composer semantics. Both are ordered by
	// created_at DESC and carry a derived comment count.
	CreateTopic(ctx context.Context, topic *models.Topic) error
	GetTopicByID(ctx context.Context, id uuid.UUID) (*models.Topic, error)
	GetTopicDetail(ctx context.Context, id uuid.UUID) (*models.TopicDetail, error)
	ListTopics(ctx context.Context, query string) ([]models.TopicWithCount, error)
	ListTopicsByAuthor(ctx context.Context, userID uuid.UUID) ([]models.Topic, error)
	UpdateTopic(ctx context.Context, topic *models.Topic) error
	DeleteTopic(ctx context.Context, id uuid.UUID) error

	// Comments
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error)
	ListCommentsByTopic(ctx context.Context, topicID uuid.UUID) ([]models.CommentWithAuthor, error)
	ListCommentsByAuthor(ctx context.Context, userID uuid.UUID) ([]models.Comment, error)
	UpdateComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id uuid.UUID) error
}
