package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/playtube/playtube-go/internal/middleware"
	"github.com/playtube/playtube-go/internal/service"
)

type DashboardHandler struct {
	svc *service.DashboardService
}

func NewDashboardHandler(svc *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{svc: svc}
}

// Stats handles GET /api/v1/dashboard/stats.
func (h *DashboardHandler) Stats(c fiber.Ctx) error {
	stats, err := h.svc.Stats(c.Context(), middleware.ActorID(c))
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "channel stats", stats)
}

// Videos handles GET /api/v1/dashboard/videos.
func (h *DashboardHandler) Videos(c fiber.Ctx) error {
	page, limit := pageParams(c)
	res, err := h.svc.Videos(c.Context(), middleware.ActorID(c), page, limit)
	if err != nil {
		return middleware.Error(c, err)
	}
	return middleware.OK(c, fiber.StatusOK, "channel videos", res)
}
