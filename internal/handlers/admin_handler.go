package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/dto"
	"github.com/lucasferraz/forumtech-backend/internal/services"
)

type AdminHandler struct {
	moderation *services.ModerationService
}

func NewAdminHandler(moderation *services.ModerationService) *AdminHandler {
	return &AdminHandler{moderation: moderation}
}

func (h *AdminHandler) BanUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	var req dto.BanUserRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	var duration *time.Duration
	if req.ExpiresHours != nil {
		if *req.ExpiresHours <= 0 {
			return badRequest(c, "expiresHours must be positive")
		}
		d := time.Duration(*req.ExpiresHours) * time.Hour
		duration = &d
	}

	user, err := h.moderation.BanUser(c.Context(), userID, req.Reason, duration)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *AdminHandler) UnbanUser(c *fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid user ID")
	}

	user, err := h.moderation.UnbanUser(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(user)
}

func (h *AdminHandler) ListBanned(c *fiber.Ctx) error {
	users, err := h.moderation.ListBanned(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(users)
}
