package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/apperror"
	"github.com/lucasferraz/forumtech-backend/internal/store/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckContent(t *testing.T) {
	ms := NewModerationService(inmemory.New())

	tests := []struct {
		name    string
		text    string
		wantErr string
	}{
		{"clean text", "a perfectly normal topic about Go", ""},
		{"profanity", "this is bullshit honestly", "content contains inappropriate language"},
		{"profanity case-insensitive", "SPAM everywhere", "content contains inappropriate language"},
		{"substring is not a word match", "scunthorpe-style classics", ""},
		{"http link", "read http://evil.example/page", "web links are not allowed"},
		{"https link", "read https://evil.example", "web links are not allowed"},
		{"www link", "read www.evil.example now", "web links are not allowed"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ms.CheckContent("content", tt.text)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, apperror.ErrInvalidInput)
			assert.Equal(t, tt.wantErr, err.Error())
		})
	}
}

func TestBanLifecycle(t *testing.T) {
	ctx := context.Background()
	st := inmemory.New()
	ms := NewModerationService(st)
	user := createUser(t, st, "target@example.com")

	t.Run("temporary ban sets window", func(t *testing.T) {
		d := 48 * time.Hour
		banned, err := ms.BanUser(ctx, user.ID, "spam", &d)
		require.NoError(t, err)
		assert.True(t, banned.Banned)
		require.NotNil(t, banned.BanReason)
		assert.Equal(t, "spam", *banned.BanReason)
		require.NotNil(t, banned.BanExpires)
		assert.WithinDuration(t, time.Now().Add(d), *banned.BanExpires, time.Minute)
	})

	t.Run("permanent ban has no expiry", func(t *testing.T) {
		banned, err := ms.BanUser(ctx, user.ID, "", nil)
		require.NoError(t, err)
		assert.True(t, banned.Banned)
		assert.Nil(t, banned.BanReason)
		assert.Nil(t, banned.BanExpires)
	})

	t.Run("listed while banned", func(t *testing.T) {
		listed, err := ms.ListBanned(ctx)
		require.NoError(t, err)
		require.Len(t, listed, 1)
		assert.Equal(t, user.ID, listed[0].ID)
	})

	t.Run("unban clears everything", func(t *testing.T) {
		cleared, err := ms.UnbanUser(ctx, user.ID)
		require.NoError(t, err)
		assert.False(t, cleared.Banned)
		assert.Nil(t, cleared.BanReason)
		assert.Nil(t, cleared.BanExpires)

		listed, err := ms.ListBanned(ctx)
		require.NoError(t, err)
		assert.Empty(t, listed)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := ms.BanUser(ctx, uuid.New(), "x", nil)
		assert.ErrorIs(t, err, apperror.ErrNotFound)
	})
}
