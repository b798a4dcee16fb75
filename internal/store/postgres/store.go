// Package postgres implements the store.Store gateway on PostgreSQL via GORM.
package postgres

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/lucasferraz/forumtech-backend/internal/config"
	"github.com/lucasferraz/forumtech-backend/internal/models"
	"github.com/lucasferraz/forumtech-backend/internal/search"
	"github.com/lucasferraz/forumtech-backend/internal/store"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

type Store struct {
	db *gorm.DB
}

var _ store.Store = (*Store)(nil)

// Connect opens the database, tunes the pool and runs migrations.
func Connect(cfg *config.Config) (*Store, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(25)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(5 * time.Minute)

	if err := db.AutoMigrate(
		&models.User{},
		&models.RefreshToken{},
		&models.Profile{},
		&models.Topic{},
		&models.Comment{},
		&models.SystemLog{},
	); err != nil {
		return nil, fmt.Errorf("migration failed: %w", err)
	}

	slog.Info("database connected")
	return &Store{db: db}, nil
}

// DB exposes the underlying handle for infrastructure that needs raw access
// (persistent log handler, health ping, shutdown).
func (s *Store) DB() *gorm.DB {
	return s.db
}

func (s *Store) Ping() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func translate(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return store.ErrNotFound
	}
	return err
}

// === Users ===

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "email = ?", email).Error; err != nil {
		return nil, translate(err)
	}
	return &user, nil
}

func (s *Store) SetUserBan(ctx context.Context, id uuid.UUID, banned bool, reason *string, expires *time.Time) error {
	result := s.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"banned":      banned,
			"ban_reason":  reason,
			"ban_expires": expires,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (s *Store) ListBannedUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User
	err := s.db.WithContext(ctx).
		Where("banned = true").
		Order("updated_at DESC").
		Find(&users).Error
	return users, err
}

func (s *Store) DeleteUserCascade(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		tx.Where("user_id = ?", id).Delete(&models.RefreshToken{})
		tx.Where("topic_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&models.Topic{}).Select("id").Where("user_id = ?", id),
		).Delete(&models.Comment{})
		tx.Where("user_id = ?", id).Delete(&models.Comment{})
		tx.Where("user_id = ?", id).Delete(&models.Topic{})
		tx.Where("user_id = ?", id).Delete(&models.Profile{})
		return tx.Delete(&models.User{}, "id = ?", id).Error
	})
}

// === Refresh tokens ===

func (s *Store) CreateRefreshToken(ctx context.Context, token *models.RefreshToken) error {
	return s.db.WithContext(ctx).Create(token).Error
}

func (s *Store) GetRefreshTokenByHash(ctx context.Context, hash string) (*models.RefreshToken, error) {
	var token models.RefreshToken
	if err := s.db.WithContext(ctx).First(&token, "token_hash = ? AND revoked = false", hash).Error; err != nil {
		return nil, translate(err)
	}
	return &token, nil
}

func (s *Store) RevokeRefreshToken(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("id = ?", id).Update("revoked", true).Error
}

func (s *Store) RevokeRefreshTokenByHash(ctx context.Context, hash string) error {
	return s.db.WithContext(ctx).Model(&models.RefreshToken{}).
		Where("token_hash = ?", hash).Update("revoked", true).Error
}

// === Profiles ===

func (s *Store) GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "user_id = ?", userID).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (s *Store) GetProfileByUserName(ctx context.Context, userName string) (*models.Profile, error) {
	var profile models.Profile
	if err := s.db.WithContext(ctx).First(&profile, "user_name = ?", userName).Error; err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (s *Store) GetPublicProfileByUserName(ctx context.Context, userName string) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).
		Where("user_name = ? AND is_public = true", userName).
		First(&profile).Error
	if err != nil {
		return nil, translate(err)
	}
	return &profile, nil
}

func (s *Store) SaveProfile(ctx context.Context, profile *models.Profile) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"user_name", "bio", "avatar_url", "capa_url", "is_public", "updated_at",
		}),
	}).Create(profile).Error
}

func (s *Store) SetProfileVisibility(ctx context.Context, userID uuid.UUID, isPublic bool) error {
	result := s.db.WithContext(ctx).Model(&models.Profile{}).
		Where("user_id = ?", userID).Update("is_public", isPublic)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return store.ErrNotFound
	}
	return nil
}

// === Topics ===

func (s *Store) CreateTopic(ctx context.Context, topic *models.Topic) error {
	return s.db.WithContext(ctx).Create(topic).Error
}

func (s *Store) GetTopicByID(ctx context.Context, id uuid.UUID) (*models.Topic, error) {
	var topic models.Topic
	if err := s.db.WithContext(ctx).First(&topic, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &topic, nil
}

func (s *Store) GetTopicDetail(ctx context.Context, id uuid.UUID) (*models.TopicDetail, error) {
	topic, err := s.GetTopicByID(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.TopicDetail{Topic: *topic}

	var author models.Profile
	if err := s.db.WithContext(ctx).First(&author, "user_id = ?", topic.UserID).Error; err == nil {
		detail.Author = &author
	}

	comments, err := s.ListCommentsByTopic(ctx, id)
	if err != nil {
		return nil, err
	}
	detail.Comments = comments
	return detail, nil
}

func (s *Store) ListTopics(ctx context.Context, query string) ([]models.TopicWithCount, error) {
	q := s.db.WithContext(ctx).Model(&models.Topic{})

	if query != "" {
		like := "%" + query + "%"
		q = q.Where(
			"title ILIKE ? OR description ILIKE ? OR technologies && ?",
			like, like, pq.Array(search.CasingVariants(query)),
		)
	}

	var topics []models.Topic
	if err := q.Order("created_at DESC").Find(&topics).Error; err != nil {
		return nil, err
	}

	counts, err := s.commentCounts(ctx, topics)
	if err != nil {
		return nil, err
	}

	result := make([]models.TopicWithCount, len(topics))
	for i, t := range topics {
		result[i] = models.TopicWithCount{Topic: t, CommentCount: counts[t.ID]}
	}
	return result, nil
}

func (s *Store) commentCounts(ctx context.Context, topics []models.Topic) (map[uuid.UUID]int64, error) {
	counts := make(map[uuid.UUID]int64, len(topics))
	if len(topics) == 0 {
		return counts, nil
	}

	ids := make([]uuid.UUID, len(topics))
	for i, t := range topics {
		ids[i] = t.ID
	}

	var rows []struct {
		TopicID uuid.UUID
		Count   int64
	}
	err := s.db.WithContext(ctx).Model(&models.Comment{}).
		Select("topic_id, count(*) as count").
		Where("topic_id IN ?", ids).
		Group("topic_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.TopicID] = r.Count
	}
	return counts, nil
}

func (s *Store) ListTopicsByAuthor(ctx context.Context, userID uuid.UUID) ([]models.Topic, error) {
	var topics []models.Topic
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&topics).Error
	return topics, err
}

func (s *Store) UpdateTopic(ctx context.Context, topic *models.Topic) error {
	return s.db.WithContext(ctx).Save(topic).Error
}

func (s *Store) DeleteTopic(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("topic_id = ?", id).Delete(&models.Comment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Topic{}, "id = ?", id).Error
	})
}

// === Comments ===

func (s *Store) CreateComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Create(comment).Error
}

func (s *Store) GetCommentByID(ctx context.Context, id uuid.UUID) (*models.Comment, error) {
	var comment models.Comment
	if err := s.db.WithContext(ctx).First(&comment, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &comment, nil
}

func (s *Store) ListCommentsByTopic(ctx context.Context, topicID uuid.UUID) ([]models.CommentWithAuthor, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("topic_id = ?", topicID).
		Order("created_at DESC").
		Find(&comments).Error
	if err != nil {
		return nil, err
	}

	authorIDs := make([]uuid.UUID, 0, len(comments))
	for _, c := range comments {
		authorIDs = append(authorIDs, c.UserID)
	}

	profiles := make(map[uuid.UUID]*models.Profile)
	if len(authorIDs) > 0 {
		var list []models.Profile
		if err := s.db.WithContext(ctx).Where("user_id IN ?", authorIDs).Find(&list).Error; err != nil {
			return nil, err
		}
		for i := range list {
			profiles[list[i].UserID] = &list[i]
		}
	}

	result := make([]models.CommentWithAuthor, len(comments))
	for i, c := range comments {
		result[i] = models.CommentWithAuthor{Comment: c, Author: profiles[c.UserID]}
	}
	return result, nil
}

func (s *Store) ListCommentsByAuthor(ctx context.Context, userID uuid.UUID) ([]models.Comment, error) {
	var comments []models.Comment
	err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&comments).Error
	return comments, err
}

func (s *Store) UpdateComment(ctx context.Context, comment *models.Comment) error {
	return s.db.WithContext(ctx).Save(comment).Error
}

func (s *Store) DeleteComment(ctx context.Context, id uuid.UUID) error {
	return s.db.WithContext(ctx).Delete(&models.Comment{}, "id = ?", id).Error
}
