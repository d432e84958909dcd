package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/playtube/playtube-go/internal/middleware"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/service"
)

type CommentHandler struct {
	svc *service.CommentService
}

func NewCommentHandler(svc *service.CommentService) *CommentHandler {
	return &CommentHandler{svc: svc}
}

// Add handles POST /api/v1/comments/video/:videoId.
func (h *CommentHandler) Add(c fiber.Ctx) error {
	videoID, err := middleware.ParseUUID(c, "videoId")
	if err != nil {
		return middleware.Error(c, err)
	}

	var req model.CommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.Error(c, errInvalidBody)
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	comment, err := h.svc.Add(c.Context(), middleware.ActorID(c), videoID, req.Content)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusCreated, "comment added", comment)
}

// List handles GET /api/v1/comments/video/:videoId.
func (h *CommentHandler) List(c fiber.Ctx) error {
	videoID, err := middleware.ParseUUID(c, "videoId")
	if err != nil {
		return middleware.Error(c, err)
	}

	page, limit := pageParams(c)
	res, err := h.svc.List(c.Context(), videoID, middleware.ActorID(c), page, limit)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "comments", res)
}

// Update handles PATCH /api/v1/comments/:commentId.
func (h *CommentHandler) Update(c fiber.Ctx) error {
	commentID, err := middleware.ParseUUID(c, "commentId")
	if err != nil {
		return middleware.Error(c, err)
	}

	var req model.CommentRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.Error(c, errInvalidBody)
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	comment, err := h.svc.Update(c.Context(), middleware.ActorID(c), commentID, req.Content)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "comment updated", comment)
}

// Delete handles DELETE /api/v1/comments/:commentId.
func (h *CommentHandler) Delete(c fiber.Ctx) error {
	commentID, err := middleware.ParseUUID(c, "commentId")
	if err != nil {
		return middleware.Error(c, err)
	}

	if err := h.svc.Delete(c.Context(), middleware.ActorID(c), commentID); err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "comment deleted", nil)
}
