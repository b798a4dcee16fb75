package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

func TestStatusMapping(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"not found", NotFound("topic"), fiber.StatusNotFound},
		{"not found verbatim", NotFoundMsg("user name already in use"), fiber.StatusNotFound},
		{"forbidden", Forbidden("no permission"), fiber.StatusForbidden},
		{"unauthorized", Unauthorized("banned"), fiber.StatusUnauthorized},
		{"invalid input", InvalidInput("title", "title is required"), fiber.StatusBadRequest},
		{"conflict", Conflict("email already registered"), fiber.StatusConflict},
		{"internal", Internal(errors.New("boom")), fiber.StatusInternalServerError},
		{"unknown error", errors.New("something else"), fiber.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Status(tt.err))
		})
	}
}

func TestUnwrap(t *testing.T) {
	err := NotFound("profile")
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.False(t, errors.Is(err, ErrForbidden))

	wrapped := fmt.Errorf("loading profile: %w", err)
	assert.True(t, errors.Is(wrapped, ErrNotFound))
	assert.Equal(t, fiber.StatusNotFound, Status(wrapped))
}

func TestMessages(t *testing.T) {
	assert.Equal(t, "topic not found", NotFound("topic").Error())
	assert.Equal(t, "user has no profile", NotFoundMsg("user has no profile").Error())

	in := InvalidInput("bio", "bio must be at most 200 characters")
	assert.Equal(t, "bio", in.Field)
	assert.Equal(t, "bio must be at most 200 characters", in.Message)
}
