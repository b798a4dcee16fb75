package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/authctx"
	"github.com/lucasferraz/forumtech-backend/internal/dto"
	"github.com/lucasferraz/forumtech-backend/internal/services"
)

type CommentHandler struct {
	service *services.CommentService
}

func NewCommentHandler(service *services.CommentService) *CommentHandler {
	return &CommentHandler{service: service}
}

func (h *CommentHandler) Create(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.service.Create(c.Context(), userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(comment)
}

func (h *CommentHandler) FindByTopic(c *fiber.Ctx) error {
	topicID, err := uuid.Parse(c.Params("topicId"))
	if err != nil {
		return badRequest(c, "Invalid topic ID")
	}

	comments, err := h.service.FindByTopic(c.Context(), topicID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comments)
}

func (h *CommentHandler) FindMine(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	comments, err := h.service.FindAllByUser(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comments)
}

func (h *CommentHandler) Update(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	var req dto.UpdateCommentRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	comment, err := h.service.Update(c.Context(), commentID, userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(comment)
}

func (h *CommentHandler) Remove(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	commentID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "Invalid comment ID")
	}

	if err := h.service.Remove(c.Context(), commentID, userID); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Comment removed successfully"})
}
