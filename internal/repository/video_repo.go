package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

type VideoRepo struct {
	pool *pgxpool.Pool
}

func NewVideoRepo(pool *pgxpool.Pool) *VideoRepo {
	return &VideoRepo{pool: pool}
}

// feedSortFields maps API sort names to columns for the public feed.
var feedSortFields = map[string]string{
	"createdAt": "v.created_at",
	"views":     "v.views",
	"duration":  "v.duration",
	"title":     "v.title",
}

const videoColumns = `id, owner_id, title, description, video_url, video_key,
	thumbnail_url, thumbnail_key, duration, views, is_published, created_at, updated_at`

func scanVideo(row interface{ Scan(...any) error }) (*model.Video, error) {
	var v model.Video
	err := row.Scan(
		&v.ID, &v.OwnerID, &v.Title, &v.Description, &v.VideoURL, &v.VideoKey,
		&v.ThumbnailURL, &v.ThumbnailKey, &v.Duration, &v.Views, &v.IsPublished,
		&v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

func (r *VideoRepo) Create(ctx context.Context, v *model.Video) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO videos (owner_id, title, description, video_url, video_key,
			thumbnail_url, thumbnail_key, duration, is_published)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, true)
		RETURNING id, views, is_published, created_at, updated_at`,
		v.OwnerID, v.Title, v.Description, v.VideoURL, v.VideoKey,
		v.ThumbnailURL, v.ThumbnailKey, v.Duration,
	).Scan(&v.ID, &v.Views, &v.IsPublished, &v.CreatedAt, &v.UpdatedAt)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	return nil
}

func (r *VideoRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	v, err := scanVideo(r.pool.QueryRow(ctx,
		`SELECT `+videoColumns+` FROM videos WHERE id = $1`, id))
	if err != nil {
		return nil, mapFindErr(err, "Video not found")
	}
	return v, nil
}

// Feed returns the public video listing. Unpublished videos are visible only
// when the feed is scoped to an owner who is also the requesting actor.
func (r *VideoRepo) Feed(ctx context.Context, q model.FeedQuery, actorID uuid.UUID) ([]model.VideoListItem, int, error) {
	params := pagination.Normalize(q.Page, q.Limit)

	p := NewPipeline("videos v").
		Join("JOIN users u ON u.id = v.owner_id").
		Project("v.id", "v.title", "v.description", "v.thumbnail_url",
			"v.duration", "v.views", "v.is_published", "v.created_at",
			"u.id", "u.user_name", "u.full_name", "u.avatar_url")

	if q.OwnerID != uuid.Nil && q.OwnerID == actorID {
		p.Filter("v.owner_id = ?", q.OwnerID)
	} else if q.OwnerID != uuid.Nil {
		p.Filter("v.owner_id = ?", q.OwnerID)
		p.Filter("v.is_published = true")
	} else {
		p.Filter("v.is_published = true")
	}

	p.Search("to_tsvector('english', v.title || ' ' || v.description)", q.Search).
		Derive(`(SELECT count(*) FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'like')`, "likes").
		Derive(`EXISTS(SELECT 1 FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'like' AND r.actor_id = ?)`,
			"is_liked", actorID).
		SortDefault("v.created_at DESC").
		Sort(q.SortBy, q.SortType, feedSortFields).
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

	items, err := scanVideoListItems(rows)
	if err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

func scanVideoListItems(rows pgx.Rows) ([]model.VideoListItem, error) {
	var items []model.VideoListItem
	for rows.Next() {
		var it model.VideoListItem
		err := rows.Scan(
			&it.ID, &it.Title, &it.Description, &it.ThumbnailURL,
			&it.Duration, &it.Views, &it.IsPublished, &it.CreatedAt,
			&it.Owner.ID, &it.Owner.UserName, &it.Owner.FullName, &it.Owner.Avatar,
			&it.Likes, &it.IsLiked,
		)
		if err != nil {
			return nil, apperr.Dependency("database scan failed", err)
		}
		items = append(items, it)
	}
	if err := rows.Err(); err != nil {
		return nil, apperr.Dependency("database query failed", err)
	}
	return items, nil
}

// Detail builds the single-video view with the full derived field set.
func (r *VideoRepo) Detail(ctx context.Context, id, actorID uuid.UUID) (*model.VideoDetail, error) {
	sql, args := NewPipeline("videos v").
		Join("JOIN users u ON u.id = v.owner_id").
		Project("v.id", "v.title", "v.description", "v.video_url", "v.thumbnail_url",
			"v.duration", "v.views", "v.is_published", "v.created_at",
			"u.id", "u.user_name", "u.full_name", "u.avatar_url").
		Filter("v.id = ?", id).
		Derive(`(SELECT count(*) FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'like')`, "likes").
		Derive(`(SELECT count(*) FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'dislike')`, "dislikes").
		Derive(`EXISTS(SELECT 1 FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'like' AND r.actor_id = ?)`,
			"is_liked", actorID).
		Derive(`EXISTS(SELECT 1 FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'dislike' AND r.actor_id = ?)`,
			"is_disliked", actorID).
		Derive("(SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id)", "subscribers_count").
		Derive("EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?)",
			"is_subscribed", actorID).
		SortDefault("v.created_at DESC").
		SQL()

	var d model.VideoDetail
	err := r.pool.QueryRow(ctx, sql, args...).Scan(
		&d.ID, &d.Title, &d.Description, &d.VideoURL, &d.ThumbnailURL,
		&d.Duration, &d.Views, &d.IsPublished, &d.CreatedAt,
		&d.Owner.ID, &d.Owner.UserName, &d.Owner.FullName, &d.Owner.Avatar,
		&d.Likes, &d.Dislikes, &d.IsLiked, &d.IsDisliked,
		&d.Owner.SubscribersCount, &d.Owner.IsSubscribed,
	)
	if err != nil {
		return nil, mapFindErr(err, "Video not found")
	}
	return &d, nil
}

// UpdatePartial sets only the supplied fields and returns the updated row.
func (r *VideoRepo) UpdatePartial(ctx context.Context, id uuid.UUID, title, description string) (*model.Video, error) {
	v, err := scanVideo(r.pool.QueryRow(ctx, `
		UPDATE videos SET
			title = COALESCE(NULLIF($2, ''), title),
			description = COALESCE(NULLIF($3, ''), description),
			updated_at = now()
		WHERE id = $1
		RETURNING `+videoColumns,
		id, title, description))
	if err != nil {
		return nil, mapFindErr(err, "Video not found")
	}
	return v, nil
}

// UpdateThumbnail swaps the thumbnail reference, returning the old key for
// remote cleanup.
func (r *VideoRepo) UpdateThumbnail(ctx context.Context, id uuid.UUID, url, key string) (oldKey string, err error) {
	err = r.pool.QueryRow(ctx, `
		UPDATE videos v SET thumbnail_url = $2, thumbnail_key = $3, updated_at = now()
		FROM (SELECT thumbnail_key FROM videos WHERE id = $1) old
		WHERE v.id = $1
		RETURNING old.thumbnail_key`,
		id, url, key).Scan(&oldKey)
	if err != nil {
		return "", mapFindErr(err, "Video not found")
	}
	return oldKey, nil
}

func (r *VideoRepo) TogglePublish(ctx context.Context, id uuid.UUID) (*model.Video, error) {
	v, err := scanVideo(r.pool.QueryRow(ctx, `
		UPDATE videos SET is_published = NOT is_published, updated_at = now()
		WHERE id = $1
		RETURNING `+videoColumns, id))
	if err != nil {
		return nil, mapFindErr(err, "Video not found")
	}
	return v, nil
}

// IncrementViews bumps the view counter. Monotonic: a single atomic UPDATE.
func (r *VideoRepo) IncrementViews(ctx context.Context, id uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE videos SET views = views + 1 WHERE id = $1`, id)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	return nil
}

// DeleteCascade removes a video and every dependent row in a fixed order
// inside one transaction: reactions on its comments, the comments, reactions
// on the video, playlist memberships, watch history, then the video itself.
// Remote media cleanup is the caller's concern, after commit.
func (r *VideoRepo) DeleteCascade(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Dependency("begin transaction failed", err)
	}
	defer tx.Rollback(ctx)

	steps := []struct {
		sql string
	}{
		{`DELETE FROM reactions WHERE target_type = 'comment'
			AND target_id IN (SELECT id FROM comments WHERE video_id = $1)`},
		{`DELETE FROM comments WHERE video_id = $1`},
		{`DELETE FROM reactions WHERE target_type = 'video' AND target_id = $1`},
		{`DELETE FROM playlist_videos WHERE video_id = $1`},
		{`DELETE FROM watch_history WHERE video_id = $1`},
	}
	for _, s := range steps {
		if _, err := tx.Exec(ctx, s.sql, id); err != nil {
			return apperr.Dependency("cascade delete failed", err)
		}
	}

	tag, err := tx.Exec(ctx, `DELETE FROM videos WHERE id = $1`, id)
	if err != nil {
		return apperr.Dependency("cascade delete failed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Video not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Dependency("commit failed", err)
	}
	return nil
}
