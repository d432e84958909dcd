package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

type DashboardRepo struct {
	pool *pgxpool.Pool
}

func NewDashboardRepo(pool *pgxpool.Pool) *DashboardRepo {
	return &DashboardRepo{pool: pool}
}

// Stats aggregates the channel dashboard numbers for an owner in one query.
func (r *DashboardRepo) Stats(ctx context.Context, ownerID uuid.UUID) (*model.ChannelStats, error) {
	var s model.ChannelStats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COALESCE((SELECT sum(views) FROM videos WHERE owner_id = $1), 0),
			(SELECT count(*) FROM subscriptions WHERE channel_id = $1),
			(SELECT count(*) FROM videos WHERE owner_id = $1),
			(SELECT count(*) FROM reactions r
				JOIN videos v ON v.id = r.target_id
				WHERE r.target_type = 'video' AND r.kind = 'like' AND v.owner_id = $1)`,
		ownerID).Scan(&s.TotalViews, &s.TotalSubscribers, &s.TotalVideos, &s.TotalLikes)
	if err != nil {
		return nil, apperr.Dependency("database query failed", err)
	}
	return &s, nil
}

// Videos lists the owner's videos, unpublished included, with like counts.
func (r *DashboardRepo) Videos(ctx context.Context, ownerID uuid.UUID, params pagination.Params) ([]model.DashboardVideo, int, error) {
	p := NewPipeline("videos v").
		Project("v.id", "v.title", "v.description", "v.thumbnail_url",
			"v.video_url", "v.views", "v.is_published", "v.created_at").
		Filter("v.owner_id = ?", ownerID).
		Derive(`(SELECT count(*) FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'like')`, "like_count").
		SortDefault("v.created_at DESC").
		Paginate(params.Limit, params.Offset())

	countSQL, countArgs := p.CountSQL()
	var total int
	if err := r.pool.QueryRow(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, 0, apperr.Dependency("database query failed", err)
	}

	sql, args := p.SQL()
	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, apperr.Dependency("database query failed", err)
	}
	defer rows.Close()

	var items []model.DashboardVideo
	for rows.Next() {
		var it model.DashboardVideo
		err := rows.Scan(
			&it.ID, &it.Title, &it.Description, &it.ThumbnailURL,
			&it.VideoURL, &it.Views, &it.IsPublished, &it.CreatedAt,
			&it.LikeCount,
		)
		if err != nil {
			return nil, 0, apperr.Dependency("database scan failed", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Dependency("database query failed", err)
	}
	return items, total, nil
}
