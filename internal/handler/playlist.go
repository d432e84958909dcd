package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/playtube/playtube-go/internal/middleware"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/service"
)

type PlaylistHandler struct {
	svc *service.PlaylistService
}

func NewPlaylistHandler(svc *service.PlaylistService) *PlaylistHandler {
	return &PlaylistHandler{svc: svc}
}

// Create handles POST /api/v1/playlists.
func (h *PlaylistHandler) Create(c fiber.Ctx) error {
	var req model.CreatePlaylistRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.Error(c, errInvalidBody)
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	p, err := h.svc.Create(c.Context(), middleware.ActorID(c), req)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusCreated, "playlist created", p)
}

// ByOwner handles GET /api/v1/playlists/user/:userId.
func (h *PlaylistHandler) ByOwner(c fiber.Ctx) error {
	ownerID, err := middleware.ParseUUID(c, "userId")
	if err != nil {
		return middleware.Error(c, err)
	}

	items, err := h.svc.ByOwner(c.Context(), ownerID)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "playlists", items)
}

// Detail handles GET /api/v1/playlists/:playlistId.
func (h *PlaylistHandler) Detail(c fiber.Ctx) error {
	playlistID, err := middleware.ParseUUID(c, "playlistId")
	if err != nil {
		return middleware.Error(c, err)
	}

	d, err := h.svc.Detail(c.Context(), playlistID)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "playlist detail", d)
}

// AddVideo handles PATCH /api/v1/playlists/:playlistId/videos/:videoId.
func (h *PlaylistHandler) AddVideo(c fiber.Ctx) error {
	playlistID, err := middleware.ParseUUID(c, "playlistId")
	if err != nil {
		return middleware.Error(c, err)
	}
	videoID, err := middleware.ParseUUID(c, "videoId")
	if err != nil {
		return middleware.Error(c, err)
	}

	if err := h.svc.AddVideo(c.Context(), middleware.ActorID(c), playlistID, videoID); err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "video added to playlist", nil)
}

// RemoveVideo handles DELETE /api/v1/playlists/:playlistId/videos/:videoId.
func (h *PlaylistHandler) RemoveVideo(c fiber.Ctx) error {
	playlistID, err := middleware.ParseUUID(c, "playlistId")
	if err != nil {
		return middleware.Error(c, err)
	}
	videoID, err := middleware.ParseUUID(c, "videoId")
	if err != nil {
		return middleware.Error(c, err)
	}

	if err := h.svc.RemoveVideo(c.Context(), middleware.ActorID(c), playlistID, videoID); err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "video removed from playlist", nil)
}

// Update handles PATCH /api/v1/playlists/:playlistId.
func (h *PlaylistHandler) Update(c fiber.Ctx) error {
	playlistID, err := middleware.ParseUUID(c, "playlistId")
	if err != nil {
		return middleware.Error(c, err)
	}

	var req model.UpdatePlaylistRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.Error(c, errInvalidBody)
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	p, err := h.svc.Update(c.Context(), middleware.ActorID(c), playlistID, req)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "playlist updated", p)
}

// Delete handles DELETE /api/v1/playlists/:playlistId.
func (h *PlaylistHandler) Delete(c fiber.Ctx) error {
	playlistID, err := middleware.ParseUUID(c, "playlistId")
	if err != nil {
		return middleware.Error(c, err)
	}

	if err := h.svc.Delete(c.Context(), middleware.ActorID(c), playlistID); err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "playlist deleted", nil)
}
