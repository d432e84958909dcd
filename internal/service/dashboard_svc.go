package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/repository"
	"github.com/playtube/playtube-go/pkg/pagination"
)

// DashboardService serves the owner's private channel dashboard. All of its
// reads are scoped to the authenticated actor; there is no public surface.
type DashboardService struct {
	dashboard *repository.DashboardRepo
}

func NewDashboardService(dashboard *repository.DashboardRepo) *DashboardService {
	return &DashboardService{dashboard: dashboard}
}

// Stats returns the channel's aggregate numbers.
func (s *DashboardService) Stats(ctx context.Context, actorID uuid.UUID) (*model.ChannelStats, error) {
	return s.dashboard.Stats(ctx, actorID)
}

// Videos lists the actor's own videos, unpublished included.
func (s *DashboardService) Videos(ctx context.Context, actorID uuid.UUID, page, limit int) (pagination.Page[model.DashboardVideo], error) {
	params := pagination.Normalize(page, limit)
	items, total, err := s.dashboard.Videos(ctx, actorID, params)
	if err != nil {
		return pagination.Page[model.DashboardVideo]{}, err
	}
	return pagination.NewPage(items, params, total), nil
}
