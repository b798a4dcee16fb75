package upload

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/apperror"
	storage "github.com/supabase-community/storage-go"
)

// SupabaseUploader stores assets in a Supabase storage bucket and serves them
// through the bucket's public URL.
type SupabaseUploader struct {
	client *storage.Client
	bucket string
}

var _ Uploader = (*SupabaseUploader)(nil)

func NewSupabaseUploader(projectURL, serviceKey, bucket string) *SupabaseUploader {
	endpoint := strings.TrimSuffix(projectURL, "/") + "/storage/v1"
	return &SupabaseUploader{
		client: storage.NewClient(endpoint, serviceKey, nil),
		bucket: bucket,
	}
}

func (u *SupabaseUploader) Store(_ context.Context, data []byte, contentType string, ownerID uuid.UUID) (string, error) {
	path := fmt.Sprintf("%s/%d-%s%s", ownerID, time.Now().UnixMilli(), uuid.NewString(), extensionFor(contentType))

	cacheControl := "3600"
	upsert := false
	_, err := u.client.UploadFile(u.bucket, path, bytes.NewReader(data), storage.FileOptions{
		ContentType:  &contentType,
		CacheControl: &cacheControl,
		Upsert:       &upsert,
	})
	if err != nil {
		return "", apperror.Internal(fmt.Errorf("failed to upload file: %w", err))
	}

	return u.client.GetPublicUrl(u.bucket, path).SignedURL, nil
}

// Delete removes the asset behind a public or signed URL (or a raw storage
// path). Unresolvable references are ignored.
func (u *SupabaseUploader) Delete(_ context.Context, ref string) error {
	path := u.storagePath(ref)
	if path == "" {
		return nil
	}
	if _, err := u.client.RemoveFile(u.bucket, []string{path}); err != nil {
		return apperror.Internal(fmt.Errorf("failed to delete file %q: %w", path, err))
	}
	return nil
}

// storagePath extracts the in-bucket path from a URL previously returned by
// Store. Non-URL references are assumed to already be storage paths.
func (u *SupabaseUploader) storagePath(ref string) string {
	if ref == "" {
		return ""
	}
	if !strings.HasPrefix(ref, "http") {
		return ref
	}

	parsed, err := url.Parse(ref)
	if err != nil {
		return ""
	}

	publicPrefix := "/storage/v1/object/public/" + u.bucket + "/"
	signedPrefix := "/storage/v1/object/sign/" + u.bucket + "/"

	if idx := strings.Index(parsed.Path, publicPrefix); idx >= 0 {
		return parsed.Path[idx+len(publicPrefix):]
	}
	if idx := strings.Index(parsed.Path, signedPrefix); idx >= 0 {
		return parsed.Path[idx+len(signedPrefix):]
	}
	return ""
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/jpeg", "image/jpg":
		return ".jpg"
	case "image/png":
		return ".png"
	case "image/gif":
		return ".gif"
	case "image/webp":
		return ".webp"
	default:
		return ""
	}
}
