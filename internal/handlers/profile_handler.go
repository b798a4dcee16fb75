package handlers

import (
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/lucasferraz/forumtech-backend/internal/authctx"
	"github.com/lucasferraz/forumtech-backend/internal/dto"
	"github.com/lucasferraz/forumtech-backend/internal/services"
	"github.com/lucasferraz/forumtech-backend/internal/upload"
)

const maxImageSize = 5 * 1024 * 1024

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/jpg":  true,
	"image/png":  true,
	"image/gif":  true,
	"image/webp": true,
}

type ProfileHandler struct {
	service *services.ProfileService
	uploads upload.Uploader
}

func NewProfileHandler(service *services.ProfileService, uploads upload.Uploader) *ProfileHandler {
	return &ProfileHandler{service: service, uploads: uploads}
}

func (h *ProfileHandler) FindMyProfile(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	profile, err := h.service.FindMyProfile(c.Context(), userID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) GetByUserName(c *fiber.Ctx) error {
	actorID := authctx.OptionalUserID(c)

	profile, err := h.service.GetByUserName(c.Context(), actorID, c.Params("userName"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) Upsert(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}

	profile, err := h.service.Upsert(c.Context(), userID, &req)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(profile)
}

func (h *ProfileHandler) UpdateVisibility(c *fiber.Ctx) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.UpdateVisibilityRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "Invalid request body")
	}
	if req.IsPublic == nil {
		return badRequest(c, "isPublic is required")
	}

	if err := h.service.UpdateVisibility(c.Context(), userID, *req.IsPublic); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "Profile visibility updated"})
}

func (h *ProfileHandler) UploadAvatar(c *fiber.Ctx) error {
	return h.uploadImage(c, func(url string) *dto.UpdateProfileRequest {
		return &dto.UpdateProfileRequest{AvatarURL: &url}
	})
}

func (h *ProfileHandler) UploadCapa(c *fiber.Ctx) error {
	return h.uploadImage(c, func(url string) *dto.UpdateProfileRequest {
		return &dto.UpdateProfileRequest{CapaURL: &url}
	})
}

func (h *ProfileHandler) uploadImage(c *fiber.Ctx, patch func(url string) *dto.UpdateProfileRequest) error {
	userID, err := authctx.UserID(c)
	if err != nil {
		return unauthorized(c)
	}

	file, err := c.FormFile("file")
	if err != nil {
		return badRequest(c, "A file is required")
	}
	if file.Size > maxImageSize {
		return badRequest(c, "File exceeds the 5MB limit")
	}

	contentType := strings.ToLower(file.Header.Get("Content-Type"))
	if !allowedImageTypes[contentType] {
		return badRequest(c, "Only jpg, jpeg, png, gif and webp images are allowed")
	}

	src, err := file.Open()
	if err != nil {
		return badRequest(c, "Unable to read uploaded file")
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, maxImageSize+1))
	if err != nil {
		return badRequest(c, "Unable to read uploaded file")
	}
	if len(data) > maxImageSize {
		return badRequest(c, "File exceeds the 5MB limit")
	}

	url, err := h.uploads.Store(c.Context(), data, contentType, userID)
	if err != nil {
		return fail(c, err)
	}

	profile, err := h.service.Upsert(c.Context(), userID, patch(url))
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Image uploaded successfully",
		"url":     url,
		"profile": profile,
	})
}
