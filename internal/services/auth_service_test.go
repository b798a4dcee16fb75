package services

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/lucasferraz/forumtech-backend/internal/apperror"
	"github.com/lucasferraz/forumtech-backend/internal/config"
	"github.com/lucasferraz/forumtech-backend/internal/dto"
	"github.com/lucasferraz/forumtech-backend/internal/store/inmemory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthService(st *inmemory.Store) *AuthService {
	cfg := config.Load()
	cfg.JWTSecret = "test-secret"
	return NewAuthService(st, cfg)
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	st := inmemory.New()
	svc := newAuthService(st)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dev@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "dev@example.com", resp.User.Email)
	assert.Equal(t, "user", resp.User.Role)

	// the signed access token carries the user id
	token, err := jwt.Parse(resp.AccessToken, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	require.NoError(t, err)
	claims := token.Claims.(jwt.MapClaims)
	assert.Equal(t, resp.User.ID.String(), claims["sub"])

	t.Run("duplicate email conflicts", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dev@example.com", Password: "longenough"})
		assert.ErrorIs(t, err, apperror.ErrConflict)
	})

	t.Run("short password rejected", func(t *testing.T) {
		_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "other@example.com", Password: "short"})
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := inmemory.New()
	svc := newAuthService(st)

	_, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dev@example.com", Password: "longenough"})
	require.NoError(t, err)

	resp, err := svc.Login(ctx, &dto.LoginRequest{Email: "dev@example.com", Password: "longenough"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)

	t.Run("wrong password", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "dev@example.com", Password: "wrongpass"})
		require.Error(t, err)
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
		assert.Equal(t, "invalid email or password", err.Error())
	})

	t.Run("unknown email reads the same", func(t *testing.T) {
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "longenough"})
		require.Error(t, err)
		assert.Equal(t, "invalid email or password", err.Error())
	})
}

func TestRefreshRotation(t *testing.T) {
	ctx := context.Background()
	st := inmemory.New()
	svc := newAuthService(st)

	registered, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dev@example.com", Password: "longenough"})
	require.NoError(t, err)

	refreshed, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	require.NoError(t, err)
	assert.NotEqual(t, registered.RefreshToken, refreshed.RefreshToken)

	// the spent token cannot be replayed
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: registered.RefreshToken})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)

	// the rotated one still works
	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: refreshed.RefreshToken})
	assert.NoError(t, err)

	t.Run("garbage token", func(t *testing.T) {
		_, err := svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: "not-a-token"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}

func TestLogout(t *testing.T) {
	ctx := context.Background()
	st := inmemory.New()
	svc := newAuthService(st)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dev@example.com", Password: "longenough"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, &dto.LogoutRequest{RefreshToken: resp.RefreshToken}))

	_, err = svc.Refresh(ctx, &dto.RefreshRequest{RefreshToken: resp.RefreshToken})
	assert.ErrorIs(t, err, apperror.ErrUnauthorized)
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()
	st := inmemory.New()
	svc := newAuthService(st)

	resp, err := svc.Register(ctx, &dto.RegisterRequest{Email: "dev@example.com", Password: "longenough"})
	require.NoError(t, err)
	userID := resp.User.ID

	t.Run("password required", func(t *testing.T) {
		err := svc.DeleteAccount(ctx, userID, "")
		assert.ErrorIs(t, err, apperror.ErrInvalidInput)
	})

	t.Run("wrong password", func(t *testing.T) {
		err := svc.DeleteAccount(ctx, userID, "wrongpass")
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})

	t.Run("correct password deletes", func(t *testing.T) {
		require.NoError(t, svc.DeleteAccount(ctx, userID, "longenough"))
		_, err := svc.Login(ctx, &dto.LoginRequest{Email: "dev@example.com", Password: "longenough"})
		assert.ErrorIs(t, err, apperror.ErrUnauthorized)
	})
}
