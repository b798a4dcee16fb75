package services

import (
	"context"
	"errors"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/apperror"
	"github.com/lucasferraz/forumtech-backend/internal/models"
	"github.com/lucasferraz/forumtech-backend/internal/store"
)

var bannedWords = []string{
	"fuck", "fucking", "shit", "bullshit", "asshole", "bastard", "bitch", "cunt",
	"nigger", "nigga", "faggot", "retard",
	"porn", "nudes",
	"spam", "scam", "scammer", "phishing", "malware",
}

// ModerationService filters user-generated text and manages ban state.
type ModerationService struct {
	store             store.Store
	bannedWordRegexps []*regexp.Regexp
	urlPattern        *regexp.Regexp
}

func NewModerationService(st store.Store) *ModerationService {
	ms := &ModerationService{store: st}
	for _, word := range bannedWords {
		ms.bannedWordRegexps = append(ms.bannedWordRegexps, regexp.MustCompile(`(?i)\b`+regexp.QuoteMeta(word)+`\b`))
	}
	ms.urlPattern = regexp.MustCompile(`(?i)(https?://\S+|www\.\S+\.\S+)`)
	return ms
}

// CheckContent rejects text containing profanity or links. Returns an
// InvalidInput error suitable for surfacing directly.
func (ms *ModerationService) CheckContent(field, text string) error {
	for _, re := range ms.bannedWordRegexps {
		if re.MatchString(text) {
			return apperror.InvalidInput(field, "content contains inappropriate language")
		}
	}
	if ms.urlPattern.MatchString(text) {
		return apperror.InvalidInput(field, "web links are not allowed")
	}
	return nil
}

// BanUser sets a user's ban window. A nil duration is a permanent ban.
func (ms *ModerationService) BanUser(ctx context.Context, userID uuid.UUID, reason string, duration *time.Duration) (*models.User, error) {
	if _, err := ms.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.Internal(err)
	}

	var reasonPtr *string
	if reason != "" {
		reasonPtr = &reason
	}
	var expires *time.Time
	if duration != nil {
		t := time.Now().Add(*duration)
		expires = &t
	}

	if err := ms.store.SetUserBan(ctx, userID, true, reasonPtr, expires); err != nil {
		return nil, apperror.Internal(err)
	}
	return ms.store.GetUserByID(ctx, userID)
}

func (ms *ModerationService) UnbanUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	if _, err := ms.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.Internal(err)
	}

	if err := ms.store.SetUserBan(ctx, userID, false, nil, nil); err != nil {
		return nil, apperror.Internal(err)
	}
	return ms.store.GetUserByID(ctx, userID)
}

func (ms *ModerationService) ListBanned(ctx context.Context) ([]models.User, error) {
	return ms.store.ListBannedUsers(ctx)
}
