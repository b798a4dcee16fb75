package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/apperror"
	"github.com/lucasferraz/forumtech-backend/internal/authz"
	"github.com/lucasferraz/forumtech-backend/internal/dto"
	"github.com/lucasferraz/forumtech-backend/internal/models"
	"github.com/lucasferraz/forumtech-backend/internal/store"
)

type CommentService struct {
	store      store.Store
	moderation *ModerationService
}

func NewCommentService(st store.Store, moderation *ModerationService) *CommentService {
	return &CommentService{store: st, moderation: moderation}
}

// Create persists a comment under an existing topic. The author must have a
// completed profile; the result is joined with it.
func (s *CommentService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateCommentRequest) (*models.CommentWithAuthor, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.InvalidInput("content", "content must not be empty")
	}
	if err := s.moderation.CheckContent("content", req.Content); err != nil {
		return nil, err
	}

	topicExists := true
	if _, err := s.store.GetTopicByID(ctx, req.TopicID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		topicExists = false
	}

	profile, err := s.store.GetProfileByUserID(ctx, userID)
	hasProfile := err == nil
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	actor := authz.Actor{ID: userID, HasProfile: hasProfile}
	if decision := authz.CanCreateComment(actor, topicExists); !decision.Allowed {
		return nil, decision.Reason
	}

	comment := &models.Comment{
		ID:      uuid.New(),
		Content: req.Content,
		UserID:  userID,
		TopicID: req.TopicID,
	}
	if err := s.store.CreateComment(ctx, comment); err != nil {
		return nil, apperror.Internal(err)
	}

	return &models.CommentWithAuthor{Comment: *comment, Author: profile}, nil
}

func (s *CommentService) FindByTopic(ctx context.Context, topicID uuid.UUID) ([]models.CommentWithAuthor, error) {
	comments, err := s.store.ListCommentsByTopic(ctx, topicID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return comments, nil
}

func (s *CommentService) FindAllByUser(ctx context.Context, userID uuid.UUID) ([]models.Comment, error) {
	comments, err := s.store.ListCommentsByAuthor(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return comments, nil
}

func (s *CommentService) Update(ctx context.Context, commentID, userID uuid.UUID, req *dto.UpdateCommentRequest) (*models.Comment, error) {
	if strings.TrimSpace(req.Content) == "" {
		return nil, apperror.InvalidInput("content", "content must not be empty")
	}
	if err := s.moderation.CheckContent("content", req.Content); err != nil {
		return nil, err
	}

	comment, err := s.store.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("comment")
		}
		return nil, apperror.Internal(err)
	}

	if decision := authz.CanUpdateComment(userID, comment); !decision.Allowed {
		return nil, decision.Reason
	}

	comment.Content = req.Content
	if err := s.store.UpdateComment(ctx, comment); err != nil {
		return nil, apperror.Internal(err)
	}
	return s.store.GetCommentByID(ctx, commentID)
}

// Remove deletes a comment. Allowed for the comment author and for the
// author of the parent topic.
func (s *CommentService) Remove(ctx context.Context, commentID, userID uuid.UUID) error {
	comment, err := s.store.GetCommentByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("comment")
		}
		return apperror.Internal(err)
	}

	// The parent may have been deleted concurrently; ownership then falls
	// back to the comment author alone.
	var parent *models.Topic
	if topic, err := s.store.GetTopicByID(ctx, comment.TopicID); err == nil {
		parent = topic
	}

	if decision := authz.CanDeleteComment(userID, comment, parent); !decision.Allowed {
		return decision.Reason
	}

	if err := s.store.DeleteComment(ctx, commentID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}
