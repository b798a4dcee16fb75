package services

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/apperror"
	"github.com/lucasferraz/forumtech-backend/internal/authz"
	"github.com/lucasferraz/forumtech-backend/internal/dto"
	"github.com/lucasferraz/forumtech-backend/internal/models"
	"github.com/lucasferraz/forumtech-backend/internal/store"
	"github.com/lucasferraz/forumtech-backend/internal/upload"
)

type ProfileService struct {
	store   store.Store
	uploads upload.Uploader
}

func NewProfileService(st store.Store, uploads upload.Uploader) *ProfileService {
	return &ProfileService{store: st, uploads: uploads}
}

func (s *ProfileService) FindMyProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.Internal(err)
	}

	profile, err := s.store.GetProfileByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("profile")
		}
		return nil, apperror.Internal(err)
	}
	return profile, nil
}

// GetByUserName returns a profile by its unique user name. Only public
// profiles are visible; a private profile is indistinguishable from an
// absent one. actorID may be uuid.Nil for anonymous callers.
func (s *ProfileService) GetByUserName(ctx context.Context, actorID uuid.UUID, userName string) (*models.Profile, error) {
	profile, err := s.store.GetPublicProfileByUserName(ctx, userName)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("profile")
		}
		return nil, apperror.Internal(err)
	}

	// The query above already restricts to public profiles; keep the
	// resolver check as a guard against query drift.
	if decision := authz.CanViewProfile(actorID, profile); !decision.Allowed {
		slog.Info("profile view denied", "action", "profile_view", "cause", decision.Cause, "user_name", userName)
		return nil, decision.Reason
	}
	return profile, nil
}

// Upsert creates or updates the caller's profile. Nil fields carry forward
// from the existing record. A first upsert must supply a user name;
// attaching media before that is rejected. Replacing an image triggers a
// best-effort delete of the old asset.
func (s *ProfileService) Upsert(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*models.Profile, error) {
	if err := validateProfileFields(req); err != nil {
		return nil, err
	}

	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, apperror.NotFound("user")
		}
		return nil, apperror.Internal(err)
	}

	existing, err := s.store.GetProfileByUserID(ctx, userID)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return nil, apperror.Internal(err)
	}

	if req.UserName != nil {
		taken, err := s.store.GetProfileByUserName(ctx, *req.UserName)
		if err != nil && !errors.Is(err, store.ErrNotFound) {
			return nil, apperror.Internal(err)
		}
		if err == nil && taken.UserID != userID {
			// Reported as NotFound for parity with the existing API
			// contract; the real cause goes to telemetry only.
			slog.Info("profile upsert denied", "action", "profile_upsert", "cause", authz.CauseUsernameTaken, "user_id", userID.String())
			return nil, apperror.NotFoundMsg("user name already in use")
		}
	}

	if existing == nil && req.UserName == nil {
		return nil, apperror.InvalidInput("user_name", "complete your profile (user name) before attaching images")
	}

	if existing != nil {
		if req.AvatarURL != nil && existing.AvatarURL != "" {
			s.cleanupAsset(ctx, userID, existing.AvatarURL)
		}
		if req.CapaURL != nil && existing.CapaURL != "" {
			s.cleanupAsset(ctx, userID, existing.CapaURL)
		}
	}

	profile := &models.Profile{UserID: userID}
	if existing != nil {
		*profile = *existing
	}
	if req.UserName != nil {
		profile.UserName = *req.UserName
	}
	if req.Bio != nil {
		profile.Bio = *req.Bio
	}
	if req.AvatarURL != nil {
		profile.AvatarURL = *req.AvatarURL
	}
	if req.CapaURL != nil {
		profile.CapaURL = *req.CapaURL
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}

	if err := s.store.SaveProfile(ctx, profile); err != nil {
		return nil, apperror.Internal(err)
	}
	return s.store.GetProfileByUserID(ctx, userID)
}

func (s *ProfileService) UpdateVisibility(ctx context.Context, userID uuid.UUID, isPublic bool) error {
	if _, err := s.store.GetUserByID(ctx, userID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("user")
		}
		return apperror.Internal(err)
	}

	if err := s.store.SetProfileVisibility(ctx, userID, isPublic); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return apperror.NotFound("profile")
		}
		return apperror.Internal(err)
	}
	return nil
}

// cleanupAsset deletes a replaced image. Failures are logged and swallowed:
// the profile write must not depend on storage housekeeping.
func (s *ProfileService) cleanupAsset(ctx context.Context, userID uuid.UUID, ref string) {
	if err := s.uploads.Delete(ctx, ref); err != nil {
		slog.Error("failed to delete replaced asset",
			"action", "asset_cleanup",
			"user_id", userID.String(),
			"error", err.Error(),
		)
	}
}

func validateProfileFields(req *dto.UpdateProfileRequest) error {
	if req.UserName != nil {
		name := strings.TrimSpace(*req.UserName)
		if len(name) < 1 || len(name) > 30 {
			return apperror.InvalidInput("user_name", "user name must be 1-30 characters")
		}
		*req.UserName = name
	}
	if req.Bio != nil && len(*req.Bio) > 200 {
		return apperror.InvalidInput("bio", "bio must be at most 200 characters")
	}
	return nil
}
