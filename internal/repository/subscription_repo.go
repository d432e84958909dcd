package repository

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

type SubscriptionRepo struct {
	pool *pgxpool.Pool
}

func NewSubscriptionRepo(pool *pgxpool.Pool) *SubscriptionRepo {
	return &SubscriptionRepo{pool: pool}
}

// Toggle subscribes or unsubscribes the subscriber to a channel. The
// (subscriber, channel) unique key makes the insert race-safe: a concurrent
// duplicate insert fails the constraint and is treated as already-subscribed.
func (r *SubscriptionRepo) Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	var deleted uuid.UUID
	err := r.pool.QueryRow(ctx, `
		DELETE FROM subscriptions
		WHERE subscriber_id = $1 AND channel_id = $2
		RETURNING id`,
		subscriberID, channelID).Scan(&deleted)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, apperr.Dependency("toggle delete failed", err)
	}

	_, err = r.pool.Exec(ctx, `
		INSERT INTO subscriptions (subscriber_id, channel_id)
		VALUES ($1, $2)
		ON CONFLICT (subscriber_id, channel_id) DO NOTHING`,
		subscriberID, channelID)
	if err != nil {
		return false, apperr.Dependency("toggle insert failed", err)
	}
	return true, nil
}

// Subscribers lists a channel's subscribers with each subscriber's own
// subscriber count and whether the requesting actor subscribes to them.
func (r *SubscriptionRepo) Subscribers(ctx context.Context, channelID, actorID uuid.UUID, params pagination.Params) ([]model.SubscriberListItem, int, error) {
	p := NewPipeline("subscriptions sub").
		Join("JOIN users u ON u.id = sub.subscriber_id").
		Project("u.id", "u.user_name", "u.full_name", "u.avatar_url").
		Filter("sub.channel_id = ?", channelID).
		Derive("(SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id)", "subscribers_count").
		Derive("EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?)",
			"is_subscribed", actorID).
		Project("sub.created_at").
		SortDefault("sub.created_at DESC").
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

	var items []model.SubscriberListItem
	for rows.Next() {
		var it model.SubscriberListItem
		err := rows.Scan(
			&it.Subscriber.ID, &it.Subscriber.UserName, &it.Subscriber.FullName, &it.Subscriber.Avatar,
			&it.SubscribersCount, &it.IsSubscribed, &it.SubscribedAt,
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

// SubscribedChannels lists the channels a user subscribes to, each with its
// latest published video when one exists.
func (r *SubscriptionRepo) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, params pagination.Params) ([]model.SubscribedChannelItem, int, error) {
	p := NewPipeline("subscriptions sub").
		Join("JOIN users u ON u.id = sub.channel_id").
		Join(`LEFT JOIN LATERAL (
			SELECT v.id, v.title, v.description, v.thumbnail_url, v.duration,
				v.views, v.is_published, v.created_at
			FROM videos v
			WHERE v.owner_id = u.id AND v.is_published = true
			ORDER BY v.created_at DESC
			LIMIT 1
		) lv ON true`).
		Project("u.id", "u.user_name", "u.full_name", "u.avatar_url",
			"lv.id", "lv.title", "lv.description", "lv.thumbnail_url",
			"lv.duration", "lv.views", "lv.is_published", "lv.created_at").
		Filter("sub.subscriber_id = ?", subscriberID).
		SortDefault("sub.created_at DESC").
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

	var items []model.SubscribedChannelItem
	for rows.Next() {
		var it model.SubscribedChannelItem
		var (
			vID          *uuid.UUID
			vTitle       *string
			vDescription *string
			vThumbnail   *string
			vDuration    *float64
			vViews       *int
			vPublished   *bool
			vCreatedAt   *time.Time
		)
		err := rows.Scan(
			&it.Channel.ID, &it.Channel.UserName, &it.Channel.FullName, &it.Channel.Avatar,
			&vID, &vTitle, &vDescription, &vThumbnail,
			&vDuration, &vViews, &vPublished, &vCreatedAt,
		)
		if err != nil {
			return nil, 0, apperr.Dependency("database scan failed", err)
		}
		if vID != nil {
			it.LatestVideo = &model.VideoListItem{
				ID:           *vID,
				Title:        *vTitle,
				Description:  *vDescription,
				ThumbnailURL: *vThumbnail,
				Duration:     *vDuration,
				Views:        *vViews,
				IsPublished:  *vPublished,
				CreatedAt:    *vCreatedAt,
				Owner:        it.Channel,
			}
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Dependency("database query failed", err)
	}
	return items, total, nil
}
