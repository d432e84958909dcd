package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/middleware"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/service"
)

type VideoHandler struct {
	svc *service.VideoService
}

func NewVideoHandler(svc *service.VideoService) *VideoHandler {
	return &VideoHandler{svc: svc}
}

// Publish handles POST /api/v1/videos (multipart).
func (h *VideoHandler) Publish(c fiber.Ctx) error {
	duration, _ := strconv.ParseFloat(c.FormValue("duration"), 64)
	req := service.PublishRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
		Duration:    duration,
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	videoFile, closeVideo, err := formUpload(c, "videoFile")
	if err != nil {
		return middleware.Error(c, err)
	}
	defer closeVideo()

	thumbnail, closeThumb, err := formUpload(c, "thumbnail")
	if err != nil {
		return middleware.Error(c, err)
	}
	defer closeThumb()

	v, err := h.svc.Publish(c.Context(), middleware.ActorID(c), req, videoFile, thumbnail)
	if err != nil {
		return middleware.Error(c, err)
	}
	if Metrics.UploadsTotal != nil {
		Metrics.UploadsTotal.WithLabelValues("video").Inc()
		Metrics.UploadsTotal.WithLabelValues("image").Inc()
	}
	return middleware.OK(c, fiber.StatusCreated, "video published", v)
}

// Feed handles GET /api/v1/videos.
func (h *VideoHandler) Feed(c fiber.Ctx) error {
	page, limit := pageParams(c)
	q := model.FeedQuery{
		Search:   fiber.Query(c, "query", ""),
		SortBy:   fiber.Query(c, "sortBy", ""),
		SortType: fiber.Query(c, "sortType", ""),
		Page:     page,
		Limit:    limit,
	}
	if raw := fiber.Query(c, "userId", ""); raw != "" {
		ownerID, err := uuid.Parse(raw)
		if err != nil {
			return middleware.Error(c, errInvalidUserID)
		}
		q.OwnerID = ownerID
	}

	res, err := h.svc.Feed(c.Context(), q, middleware.ActorID(c))
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "video feed", res)
}

// Detail handles GET /api/v1/videos/:videoId.
func (h *VideoHandler) Detail(c fiber.Ctx) error {
	id, err := middleware.ParseUUID(c, "videoId")
	if err != nil {
		return middleware.Error(c, err)
	}

	d, err := h.svc.Detail(c.Context(), id, middleware.ActorID(c))
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "video detail", d)
}

// Update handles PATCH /api/v1/videos/:videoId (multipart, thumbnail
// optional).
func (h *VideoHandler) Update(c fiber.Ctx) error {
	id, err := middleware.ParseUUID(c, "videoId")
	if err != nil {
		return middleware.Error(c, err)
	}

	req := model.UpdateVideoRequest{
		Title:       c.FormValue("title"),
		Description: c.FormValue("description"),
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	thumbnail, closeThumb, err := formUpload(c, "thumbnail")
	if err != nil {
		return middleware.Error(c, err)
	}
	defer closeThumb()

	v, err := h.svc.Update(c.Context(), middleware.ActorID(c), id, req, thumbnail)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "video updated", v)
}

// Delete handles DELETE /api/v1/videos/:videoId.
func (h *VideoHandler) Delete(c fiber.Ctx) error {
	id, err := middleware.ParseUUID(c, "videoId")
	if err != nil {
		return middleware.Error(c, err)
	}

	if err := h.svc.Delete(c.Context(), middleware.ActorID(c), id); err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "video deleted", nil)
}

// TogglePublish handles PATCH /api/v1/videos/:videoId/toggle-publish.
func (h *VideoHandler) TogglePublish(c fiber.Ctx) error {
	id, err := middleware.ParseUUID(c, "videoId")
	if err != nil {
		return middleware.Error(c, err)
	}

	v, err := h.svc.TogglePublish(c.Context(), middleware.ActorID(c), id)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "publish status toggled", v)
}
