// Package inmemory implements the store.Store gateway with mutex-guarded
// maps. It backs the service tests; search semantics are shared with the
// PostgreSQL implementation through the search package.
package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/models"
	"github.com/lucasferraz/forumtech-backend/internal/search"
	"github.com/lucasferraz/forumtech-backend/internal/store"
)

type Store struct {
	mu            sync.RWMutex
	users         map[uuid.UUID]*models.User
	profiles      map[uuid.UUID]*models.Profile // keyed by user id
	topics        map[uuid.UUID]*models.Topic
	comments      map[uuid.UUID]*models.Comment
	refreshTokens map[uuid.UUID]*models.RefreshToken
}

var _ store.Store = (*Store)(nil)

func New() *Store {
	return &Store{
		users:         make(map[uuid.UUID]*models.User),
		profiles:      make(map[uuid.UUID]*models.Profile),
		topics:        make(map[uuid.UUID]*models.Topic),
		comments:      make(map[uuid.UUID]*models.Comment),
		refreshTokens: make(map[uuid.UUID]*models.RefreshToken),
	}
}

// === Users ===

func (s *Store) CreateUser(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	user.CreatedAt = time.Now().UTC()
	user.UpdatedAt = user.CreatedAt
	clone := *user
	s.users[user.ID] = &clone
	return nil
}

func (s *Store) GetUserByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	user, ok := s.users[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *user
	return &clone, nil
}

func (s *Store) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, user := range s.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) SetUserBan(_ context.Context, id uuid.UUID, banned bool, reason *string, expires *time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user, ok := s.users[id]
	if !ok {
		return store.ErrNotFound
	}
	user.Banned = banned
	user.BanReason = reason
	user.BanExpires = expires
	user.UpdatedAt = time.Now().UTC()
	return nil
}

func (s *Store) ListBannedUsers(_ context.Context) ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var banned []models.User
	for _, user := range s.users {
		if user.Banned {
			banned = append(banned, *user)
		}
	}
	sort.Slice(banned, func(i, j int) bool {
		return banned[i].UpdatedAt.After(banned[j].UpdatedAt)
	})
	return banned, nil
}

func (s *Store) DeleteUserCascade(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[id]; !ok {
		return store.ErrNotFound
	}

	for tokenID, token := range s.refreshTokens {
		if token.UserID == id {
			delete(s.refreshTokens, tokenID)
		}
	}
	ownTopics := make(map[uuid.UUID]bool)
	for topicID, topic := range s.topics {
		if topic.UserID == id {
			ownTopics[topicID] = true
			delete(s.topics, topicID)
		}
	}
	for commentID, comment := range s.comments {
		if comment.UserID == id || ownTopics[comment.TopicID] {
			delete(s.comments, commentID)
		}
	}
	delete(s.profiles, id)
	delete(s.users, id)
	return nil
}

// === Refresh tokens ===

func (s *Store) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token.ID == uuid.Nil {
		token.ID = uuid.New()
	}
	token.CreatedAt = time.Now().UTC()
	clone := *token
	s.refreshTokens[token.ID] = &clone
	return nil
}

func (s *Store) GetRefreshTokenByHash(_ context.Context, hash string) (*models.RefreshToken, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, token := range s.refreshTokens {
		if token.TokenHash == hash && !token.Revoked {
			clone := *token
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) RevokeRefreshToken(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if token, ok := s.refreshTokens[id]; ok {
		token.Revoked = true
	}
	return nil
}

func (s *Store) RevokeRefreshTokenByHash(_ context.Context, hash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, token := range s.refreshTokens {
		if token.TokenHash == hash {
			token.Revoked = true
		}
	}
	return nil
}

// === Profiles ===

func (s *Store) GetProfileByUserID(_ context.Context, userID uuid.UUID) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *profile
	return &clone, nil
}

func (s *Store) GetProfileByUserName(_ context.Context, userName string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, profile := range s.profiles {
		if profile.UserName == userName {
			clone := *profile
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) GetPublicProfileByUserName(_ context.Context, userName string) (*models.Profile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, profile := range s.profiles {
		if profile.UserName == userName && profile.IsPublic {
			clone := *profile
			return &clone, nil
		}
	}
	return nil, store.ErrNotFound
}

func (s *Store) SaveProfile(_ context.Context, profile *models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	if existing, ok := s.profiles[profile.UserID]; ok {
		profile.ID = existing.ID
		profile.CreatedAt = existing.CreatedAt
	} else {
		if profile.ID == uuid.Nil {
			profile.ID = uuid.New()
		}
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	clone := *profile
	s.profiles[profile.UserID] = &clone
	return nil
}

func (s *Store) SetProfileVisibility(_ context.Context, userID uuid.UUID, isPublic bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	profile, ok := s.profiles[userID]
	if !ok {
		return store.ErrNotFound
	}
	profile.IsPublic = isPublic
	profile.UpdatedAt = time.Now().UTC()
	return nil
}

// === Topics ===

func (s *Store) CreateTopic(_ context.Context, topic *models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if topic.ID == uuid.Nil {
		topic.ID = uuid.New()
	}
	topic.CreatedAt = time.Now().UTC()
	topic.UpdatedAt = topic.CreatedAt
	clone := *topic
	s.topics[topic.ID] = &clone
	return nil
}

func (s *Store) GetTopicByID(_ context.Context, id uuid.UUID) (*models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topic, ok := s.topics[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *topic
	return &clone, nil
}

func (s *Store) GetTopicDetail(ctx context.Context, id uuid.UUID) (*models.TopicDetail, error) {
	topic, err := s.GetTopicByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.TopicDetail{Topic: *topic}
	if author, err := s.GetProfileByUserID(ctx, topic.UserID); err == nil {
		detail.Author = author
	}
	comments, err := s.ListCommentsByTopic(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Comments = comments
	return detail, nil
}

func (s *Store) ListTopics(_ context.Context, query string) ([]models.TopicWithCount, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]models.TopicWithCount, 0, len(s.topics))
	for _, topic := range s.topics {
		if query != "" && !search.MatchesTopic(topic.Title, topic.Description, topic.Technologies, query) {
			continue
		}
		count := int64(0)
		for _, comment := range s.comments {
			if comment.TopicID == topic.ID {
				count++
			}
		}
		result = append(result, models.TopicWithCount{Topic: *topic, CommentCount: count})
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) ListTopicsByAuthor(_ context.Context, userID uuid.UUID) ([]models.Topic, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var topics []models.Topic
	for _, topic := range s.topics {
		if topic.UserID == userID {
			topics = append(topics, *topic)
		}
	}
	sort.Slice(topics, func(i, j int) bool {
		return topics[i].CreatedAt.After(topics[j].CreatedAt)
	})
	return topics, nil
}

func (s *Store) UpdateTopic(_ context.Context, topic *models.Topic) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.topics[topic.ID]
	if !ok {
		return store.ErrNotFound
	}
	topic.CreatedAt = existing.CreatedAt
	topic.UpdatedAt = time.Now().UTC()
	clone := *topic
	s.topics[topic.ID] = &clone
	return nil
}

func (s *Store) DeleteTopic(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.topics[id]; !ok {
		return store.ErrNotFound
	}
	for commentID, comment := range s.comments {
		if comment.TopicID == id {
			delete(s.comments, commentID)
		}
	}
	delete(s.topics, id)
	return nil
}

// === Comments ===

func (s *Store) CreateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if comment.ID == uuid.Nil {
		comment.ID = uuid.New()
	}
	comment.CreatedAt = time.Now().UTC()
	comment.UpdatedAt = comment.CreatedAt
	clone := *comment
	s.comments[comment.ID] = &clone
	return nil
}

func (s *Store) GetCommentByID(_ context.Context, id uuid.UUID) (*models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	comment, ok := s.comments[id]
	if !ok {
		return nil, store.ErrNotFound
	}
	clone := *comment
	return &clone, nil
}

func (s *Store) ListCommentsByTopic(_ context.Context, topicID uuid.UUID) ([]models.CommentWithAuthor, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []models.CommentWithAuthor
	for _, comment := range s.comments {
		if comment.TopicID != topicID {
			continue
		}
		entry := models.CommentWithAuthor{Comment: *comment}
		if profile, ok := s.profiles[comment.UserID]; ok {
			clone := *profile
			entry.Author = &clone
		}
		result = append(result, entry)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

func (s *Store) ListCommentsByAuthor(_ context.Context, userID uuid.UUID) ([]models.Comment, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var comments []models.Comment
	for _, comment := range s.comments {
		if comment.UserID == userID {
			comments = append(comments, *comment)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		return comments[i].CreatedAt.After(comments[j].CreatedAt)
	})
	return comments, nil
}

func (s *Store) UpdateComment(_ context.Context, comment *models.Comment) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existing, ok := s.comments[comment.ID]
	if !ok {
		return store.ErrNotFound
	}
	comment.CreatedAt = existing.CreatedAt
	comment.UpdatedAt = time.Now().UTC()
	clone := *comment
	s.comments[comment.ID] = &clone
	return nil
}

func (s *Store) DeleteComment(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.comments[id]; !ok {
		return store.ErrNotFound
	}
	delete(s.comments, id)
	return nil
}
