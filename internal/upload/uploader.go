// Package upload stores and deletes binary image assets.
package upload

import (
	"context"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/apperror"
)

// Uploader is the asset storage contract. Store returns a public URL for the
// stored asset. Delete is idempotent: a reference that does not resolve to a
// stored asset is a no-op, not an error.
type Uploader interface {
	Store(ctx context.Context, data []byte, contentType string, ownerID uuid.UUID) (string, error)
	Delete(ctx context.Context, ref string) error
}

// Disabled is the Uploader used when storage is not configured. Uploads fail;
// deletes are no-ops so profile updates keep working.
type Disabled struct{}

func (Disabled) Store(context.Context, []byte, string, uuid.UUID) (string, error) {
	return "", apperror.InvalidInput("file", "image uploads are not configured on this server")
}

func (Disabled) Delete(context.Context, string) error {
	return nil
}
