package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/playtube/playtube-go/internal/middleware"
	"github.com/playtube/playtube-go/internal/service"
)

type SubscriptionHandler struct {
	svc *service.SubscriptionService
}

func NewSubscriptionHandler(svc *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{svc: svc}
}

// Toggle handles POST /api/v1/subscriptions/channel/:channelId.
func (h *SubscriptionHandler) Toggle(c fiber.Ctx) error {
	channelID, err := middleware.ParseUUID(c, "channelId")
	if err != nil {
		return middleware.Error(c, err)
	}

	res, err := h.svc.Toggle(c.Context(), middleware.ActorID(c), channelID)
	if err != nil {
		return middleware.Error(c, err)
	}
	message := "unsubscribed"
	if res.Active {
		message = "subscribed"
	}
	return middleware.OK(c, fiber.StatusOK, message, res)
}

// Subscribers handles GET /api/v1/subscriptions/channel/:channelId/subscribers.
func (h *SubscriptionHandler) Subscribers(c fiber.Ctx) error {
	channelID, err := middleware.ParseUUID(c, "channelId")
	if err != nil {
		return middleware.Error(c, err)
	}

	page, limit := pageParams(c)
	res, err := h.svc.Subscribers(c.Context(), channelID, middleware.ActorID(c), page, limit)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "channel subscribers", res)
}

// SubscribedChannels handles GET /api/v1/subscriptions/user/:subscriberId/channels.
func (h *SubscriptionHandler) SubscribedChannels(c fiber.Ctx) error {
	subscriberID, err := middleware.ParseUUID(c, "subscriberId")
	if err != nil {
		return middleware.Error(c, err)
	}

	page, limit := pageParams(c)
	res, err := h.svc.SubscribedChannels(c.Context(), subscriberID, page, limit)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "subscribed channels", res)
}
