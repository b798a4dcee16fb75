package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/apperror"
	"github.com/lucasferraz/forumtech-backend/internal/authz"
	"github.com/lucasferraz/forumtech-backend/internal/dto"
	"github.com/lucasferraz/forumtech-backend/internal/models"
	"github.com/lucasferraz/forumtech-backend/internal/search"
	"github.com/lucasferraz/forumtech-backend/internal/store"
)

// TopicService orchestrates topic lifecycle: existence, ownership and ban
// checks happen here, persistence in the store.
type TopicService struct {
	store      store.Store
	moderation *ModerationService
}

func NewTopicService(st store.Store, moderation *ModerationService) *TopicService {
	return &TopicService{store: st, moderation: moderation}
}

func (s *TopicService) Create(ctx context.Context, userID uuid.UUID, req *dto.CreateTopicRequest) (*models.Topic, error) {
	if err := validateTopicFields(req.Title, req.Description, req.Technologies); err != nil {
		return nil, err
	}
	if err := s.moderation.CheckContent("title", req.Title); err != nil {
		return nil, err
	}
	if err := s.moderation.CheckContent("description", req.Description); err != nil {
		return nil, err
	}

	actor, err := s.resolveActor(ctx, userID)
	if err != nil {
		return nil, err
	}
	if decision := authz.CanCreateTopic(actor, time.Now()); !decision.Allowed {
		return nil, decision.Reason
	}

	topic := &models.Topic{
		ID:           uuid.New(),
		Title:        req.Title,
		Description:  req.Description,
		Technologies: req.Technologies,
		UserID:       userID,
	}
	if err := s.store.CreateTopic(ctx, topic); err != nil {
		return nil, apperror.Internal(err)
	}
	return topic, nil
}

func (s *TopicService) FindAll(ctx context.Context) ([]models.TopicWithCount, error) {
	topics, err := s.store.ListTopics(ctx, "")
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return topics, nil
}

// Search filters topics by free text. An empty or whitespace-only query is
// equivalent to FindAll.
func (s *TopicService) Search(ctx context.Context, query string) ([]models.TopicWithCount, error) {
	topics, err := s.store.ListTopics(ctx, search.Sanitize(query))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return topics, nil
}

func (s *TopicService) FindOne(ctx context.Context, topicID uuid.UUID) (*models.TopicDetail, error) {
	detail, err := s.store.GetTopicDetail(ctx, topicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("topic")
		}
		return nil, apperror.Internal(err)
	}
	return detail, nil
}

func (s *TopicService) FindByUser(ctx context.Context, userID uuid.UUID) ([]models.Topic, error) {
	topics, err := s.store.ListTopicsByAuthor(ctx, userID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return topics, nil
}

// FindByUserName lists topics by the owner of a public profile. Private
// profiles and banned owners look exactly like absent ones.
func (s *TopicService) FindByUserName(ctx context.Context, userName string) ([]models.Topic, error) {
	userName = strings.TrimSpace(userName)
	if userName == "" {
		return nil, apperror.NotFoundMsg("invalid user name")
	}

	profile, err := s.store.GetPublicProfileByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFoundMsg("no public profile found for this user")
		}
		return nil, apperror.Internal(err)
	}

	owner, err := s.store.GetUserByID(ctx, profile.UserID)
	if err != nil {
		return nil, apperror.NotFoundMsg("no public profile found for this user")
	}
	if owner.Banned {
		return nil, apperror.NotFoundMsg("no public profile found for this user")
	}

	return s.FindByUser(ctx, profile.UserID)
}

func (s *TopicService) Update(ctx context.Context, topicID, userID uuid.UUID, req *dto.UpdateTopicRequest) (*models.Topic, error) {
	topic, err := s.store.GetTopicByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("topic")
		}
		return nil, apperror.Internal(err)
	}

	if decision := authz.CanModifyTopic(userID, topic); !decision.Allowed {
		return nil, decision.Reason
	}

	if req.Title != nil {
		topic.Title = *req.Title
	}
	if req.Description != nil {
		topic.Description = *req.Description
	}
	if req.Technologies != nil {
		topic.Technologies = *req.Technologies
	}
	if err := validateTopicFields(topic.Title, topic.Description, topic.Technologies); err != nil {
		return nil, err
	}
	if err := s.moderation.CheckContent("title", topic.Title); err != nil {
		return nil, err
	}
	if err := s.moderation.CheckContent("description", topic.Description); err != nil {
		return nil, err
	}

	if err := s.store.UpdateTopic(ctx, topic); err != nil {
		return nil, apperror.Internal(err)
	}
	return s.store.GetTopicByID(ctx, topicID)
}

func (s *TopicService) Remove(ctx context.Context, topicID, userID uuid.UUID) error {
	topic, err := s.store.GetTopicByID(ctx, topicID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("topic")
		}
		return apperror.Internal(err)
	}

	if decision := authz.CanModifyTopic(userID, topic); !decision.Allowed {
		return decision.Reason
	}

	if err := s.store.DeleteTopic(ctx, topicID); err != nil {
		return apperror.Internal(err)
	}
	return nil
}

// resolveActor loads the caller's user record and profile presence in one
// pass for the authorization resolver.
func (s *TopicService) resolveActor(ctx context.Context, userID uuid.UUID) (authz.Actor, error) {
	user, err := s.store.GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return authz.Actor{}, apperror.NotFound("user")
		}
		return authz.Actor{}, apperror.Internal(err)
	}

	hasProfile := true
	if _, err := s.store.GetProfileByUserID(ctx, userID); err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			return authz.Actor{}, apperror.Internal(err)
		}
		hasProfile = false
	}

	return authz.ActorFromUser(user, hasProfile), nil
}

func validateTopicFields(title, description string, technologies []string) error {
	if strings.TrimSpace(title) == "" {
		return apperror.InvalidInput("title", "title must not be empty")
	}
	if len(title) > 100 {
		return apperror.InvalidInput("title", "title must be at most 100 characters")
	}
	if strings.TrimSpace(description) == "" {
		return apperror.InvalidInput("description", "description must not be empty")
	}
	if len(technologies) < 1 {
		return apperror.InvalidInput("technologies", "at least one technology is required")
	}
	if len(technologies) > 5 {
		return apperror.InvalidInput("technologies", "at most 5 technologies per topic")
	}
	for _, tag := range technologies {
		if strings.TrimSpace(tag) == "" {
			return apperror.InvalidInput("technologies", "technologies must not be empty strings")
		}
	}
	return nil
}
