package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/lucasferraz/forumtech-backend/internal/apperror"
	"github.com/lucasferraz/forumtech-backend/internal/dto"
)

// fail maps a service error to its HTTP response. 5xx details stay out of
// the body.
func fail(c *fiber.Ctx, err error) error {
	status := apperror.Status(err)
	message := err.Error()
	if status >= fiber.StatusInternalServerError {
		slog.Error("request failed", "method", c.Method(), "path", c.Path(), "error", err.Error())
		message = "Internal server error"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func badRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: true, Message: message})
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: true, Message: "Unauthorized"})
}
