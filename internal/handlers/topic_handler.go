package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/lucasferraz/forumtech-backend/internal/authctx"
	"github.com/lucasferraz/forumtech-backend/internal/dto"
	"github.com/lucasferraz/forumtech-backend/internal/services"
)

type TopicHandler struct {
	service *services.TopicService
}

func NewTopicHandler(service *services.TopicService) *TopicHandler {
	return &TopicHandler{service: service}
}

func (h *TopicHandler) Create(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.CreateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	topic, err := h.service.Create(c.Context(), userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(topic)
}

func (h *TopicHandler) FindAll(c *fiber.Ctx) error {
	topics, err := h.service.FindAll(c.Context())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(topics)
}

func (h *TopicHandler) Search(c *fiber.Ctx) error {
	topics, err := h.service.Search(c.Context(), c.Query("q"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(topics)
}

func (h *TopicHandler) FindOne(c *fiber.Ctx) error {
	topicID, err := uuid.Parse(c.Params("topicId"))
	if err != nil {
		return badRequest(c, "Invalid topic ID")
	}

	detail, err := h.service.FindOne(c.Context(), topicID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(detail)
}

func (h *TopicHandler) FindMine(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	topics, err := h.service.FindByUser(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(topics)
}

func (h *TopicHandler) FindByUserName(c *fiber.Ctx) error {
	topics, err := h.service.FindByUserName(c.Context(), c.Params("userName"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(topics)
}

func (h *TopicHandler) Update(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	topicID, err := uuid.Parse(c.Params("topicId"))
	if err != nil {
		return badRequest(c, "Invalid topic ID")
	}

	var req dto.UpdateTopicRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	topic, err := h.service.Update(c.Context(), topicID, userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(topic)
}

func (h *TopicHandler) Remove(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	topicID, err := uuid.Parse(c.Params("topicId"))
	if err != nil {
		return badRequest(c, "Invalid topic ID")
	}

	if err := h.service.Remove(c.Context(), topicID, userID); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Topic removed successfully"})
}
