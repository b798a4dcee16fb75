// Package authz decides who may do what. Every rule is a pure function from
// actor and resource to a Decision; services ask before touching the store.
package authz

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/apperror"
	"github.com/lucasferraz/forumtech-backend/internal/models"
)

// Internal denial causes. Masked denials surface as NotFound to the caller
// but keep the real cause for telemetry.
const (
	CausePrivateProfile = "private_profile"
	CauseUsernameTaken  = "username_taken"
)

// Actor is the authenticated user performing an action, flattened to the
// attributes authorization cares about.
type Actor struct {
	ID         uuid.UUID
	Banned     bool
	BanReason  *string
	BanExpires *time.Time
	HasProfile bool
}

// ActorFromUser builds an Actor from a user record and profile presence.
func ActorFromUser(user *models.User, hasProfile bool) Actor {
	return Actor{
		ID:         user.ID,
		Banned:     user.Banned,
		BanReason:  user.BanReason,
		BanExpires: user.BanExpires,
		HasProfile: hasProfile,
	}
}

// Decision is the outcome of an authorization check. When denied, Reason
// carries the error the caller should surface and Cause the internal reason
// when the public shape deliberately hides it.
type Decision struct {
	Allowed bool
	Reason  *apperror.AppError
	Cause   string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason *apperror.AppError) Decision {
	return Decision{Reason: reason}
}

func denyMasked(reason *apperror.AppError, cause string) Decision {
	return Decision{Reason: reason, Cause: cause}
}

// banActive reports whether the actor's ban window covers now.
func (a Actor) banActive(now time.Time) bool {
	if !a.Banned {
		return false
	}
	return a.BanExpires == nil || a.BanExpires.After(now)
}

func (a Actor) banMessage() string {
	reason := "No reason provided"
	if a.BanReason != nil && *a.BanReason != "" {
		reason = *a.BanReason
	}
	if a.BanExpires == nil {
		return fmt.Sprintf("user is permanently banned. Reason: %s", reason)
	}
	return fmt.Sprintf("user is banned until %s. Reason: %s", a.BanExpires.UTC().Format(time.RFC3339), reason)
}

// CanCreateTopic requires an un-banned actor with a completed profile.
func CanCreateTopic(actor Actor, now time.Time) Decision {
	if actor.banActive(now) {
		return deny(apperror.Unauthorized(actor.banMessage()))
	}
	if !actor.HasProfile {
		return deny(apperror.NotFoundMsg("user has no profile"))
	}
	return allow()
}

// CanCreateComment requires an existing parent topic and a completed profile.
func CanCreateComment(actor Actor, topicExists bool) Decision {
	if !topicExists {
		return deny(apperror.NotFound("topic"))
	}
	if !actor.HasProfile {
		return deny(apperror.NotFound("profile"))
	}
	return allow()
}

// CanModifyTopic gates topic update and delete: author only.
func CanModifyTopic(actorID uuid.UUID, topic *models.Topic) Decision {
	if topic.UserID == actorID {
		return allow()
	}
	return deny(apperror.Forbidden("you do not have permission to modify this topic"))
}

// CanUpdateComment gates comment edits: author only.
func CanUpdateComment(actorID uuid.UUID, comment *models.Comment) Decision {
	if comment.UserID == actorID {
		return allow()
	}
	return deny(apperror.Forbidden("you do not have permission to update this comment"))
}

// CanDeleteComment allows the comment author or the parent topic's author.
func CanDeleteComment(actorID uuid.UUID, comment *models.Comment, parent *models.Topic) Decision {
	if comment.UserID == actorID {
		return allow()
	}
	if parent != nil && parent.UserID == actorID {
		return allow()
	}
	return deny(apperror.Forbidden("you do not have permission to remove this comment"))
}

// CanViewProfile allows the owner unconditionally and anyone else only when
// the profile is public. The private case is masked: callers see the same
// NotFound as a truly absent profile.
func CanViewProfile(actorID uuid.UUID, profile *models.Profile) Decision {
	if profile.UserID == actorID {
		return allow()
	}
	if profile.IsPublic {
		return allow()
	}
	return denyMasked(apperror.NotFound("profile"), CausePrivateProfile)
}
