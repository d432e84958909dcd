package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/playtube/playtube-go/internal/middleware"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/service"
)

// ReactionHandler serves the like and dislike toggle routes for all target
// types.
type ReactionHandler struct {
	svc *service.ReactionService
}

func NewReactionHandler(svc *service.ReactionService) *ReactionHandler {
	return &ReactionHandler{svc: svc}
}

// ToggleVideoLike handles POST /api/v1/likes/video/:videoId.
func (h *ReactionHandler) ToggleVideoLike(c fiber.Ctx) error {
	return h.toggle(c, "videoId", model.TargetVideo, model.ReactionLike)
}

// ToggleCommentLike handles POST /api/v1/likes/comment/:commentId.
func (h *ReactionHandler) ToggleCommentLike(c fiber.Ctx) error {
	return h.toggle(c, "commentId", model.TargetComment, model.ReactionLike)
}

// ToggleTweetLike handles POST /api/v1/likes/tweet/:tweetId.
func (h *ReactionHandler) ToggleTweetLike(c fiber.Ctx) error {
	return h.toggle(c, "tweetId", model.TargetTweet, model.ReactionLike)
}

// ToggleVideoDislike handles POST /api/v1/dislikes/video/:videoId.
func (h *ReactionHandler) ToggleVideoDislike(c fiber.Ctx) error {
	return h.toggle(c, "videoId", model.TargetVideo, model.ReactionDislike)
}

// ToggleCommentDislike handles POST /api/v1/dislikes/comment/:commentId.
func (h *ReactionHandler) ToggleCommentDislike(c fiber.Ctx) error {
	return h.toggle(c, "commentId", model.TargetComment, model.ReactionDislike)
}

// ToggleTweetDislike handles POST /api/v1/dislikes/tweet/:tweetId.
func (h *ReactionHandler) ToggleTweetDislike(c fiber.Ctx) error {
	return h.toggle(c, "tweetId", model.TargetTweet, model.ReactionDislike)
}

// LikedVideos handles GET /api/v1/likes/videos.
func (h *ReactionHandler) LikedVideos(c fiber.Ctx) error {
	page, limit := pageParams(c)
	res, err := h.svc.LikedVideos(c.Context(), middleware.ActorID(c), page, limit)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "liked videos", res)
}

func (h *ReactionHandler) toggle(c fiber.Ctx, param string, targetType model.TargetType, kind model.ReactionKind) error {
	targetID, err := middleware.ParseUUID(c, param)
	if err != nil {
		return middleware.Error(c, err)
	}

	res, err := h.svc.Toggle(c.Context(), middleware.ActorID(c), targetType, targetID, kind)
	if err != nil {
		return middleware.Error(c, err)
	}
	if Metrics.ReactionsTotal != nil {
		Metrics.ReactionsTotal.WithLabelValues(string(targetType), string(kind)).Inc()
	}
	message := "reaction removed"
	if res.Active {
		message = "reaction recorded"
	}
	return middleware.OK(c, fiber.StatusOK, message, res)
}
