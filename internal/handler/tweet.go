package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/playtube/playtube-go/internal/middleware"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/service"
)

type TweetHandler struct {
	svc *service.TweetService
}

func NewTweetHandler(svc *service.TweetService) *TweetHandler {
	return &TweetHandler{svc: svc}
}

// Create handles POST /api/v1/tweets.
func (h *TweetHandler) Create(c fiber.Ctx) error {
	var req model.TweetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.Error(c, errInvalidBody)
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	t, err := h.svc.Create(c.Context(), middleware.ActorID(c), req.Content)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusCreated, "tweet posted", t)
}

// ByOwner handles GET /api/v1/tweets/user/:userId.
func (h *TweetHandler) ByOwner(c fiber.Ctx) error {
	ownerID, err := middleware.ParseUUID(c, "userId")
	if err != nil {
		return middleware.Error(c, err)
	}

	page, limit := pageParams(c)
	res, err := h.svc.ByOwner(c.Context(), ownerID, middleware.ActorID(c), page, limit)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "tweets", res)
}

// Update handles PATCH /api/v1/tweets/:tweetId.
func (h *TweetHandler) Update(c fiber.Ctx) error {
	tweetID, err := middleware.ParseUUID(c, "tweetId")
	if err != nil {
		return middleware.Error(c, err)
	}

	var req model.TweetRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.Error(c, errInvalidBody)
	}
	if err := middleware.ValidateStruct(req); err != nil {
		return middleware.Error(c, err)
	}

	t, err := h.svc.Update(c.Context(), middleware.ActorID(c), tweetID, req.Content)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "tweet updated", t)
}

// Delete handles DELETE /api/v1/tweets/:tweetId.
func (h *TweetHandler) Delete(c fiber.Ctx) error {
	tweetID, err := middleware.ParseUUID(c, "tweetId")
	if err != nil {
		return middleware.Error(c, err)
	}

	if err := h.svc.Delete(c.Context(), middleware.ActorID(c), tweetID); err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "tweet deleted", nil)
}
