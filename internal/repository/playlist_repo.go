package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
)

type PlaylistRepo struct {
	pool *pgxpool.Pool
}

func NewPlaylistRepo(pool *pgxpool.Pool) *PlaylistRepo {
	return &PlaylistRepo{pool: pool}
}

const playlistColumns = `id, owner_id, name, description, created_at, updated_at`

func scanPlaylist(row interface{ Scan(...any) error }) (*model.Playlist, error) {
	var p model.Playlist
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PlaylistRepo) Create(ctx context.Context, p *model.Playlist) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO playlists (owner_id, name, description)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		p.OwnerID, p.Name, p.Description,
	).Scan(&p.ID, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	return nil
}

func (r *PlaylistRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error) {
	p, err := scanPlaylist(r.pool.QueryRow(ctx,
		`SELECT `+playlistColumns+` FROM playlists WHERE id = $1`, id))
	if err != nil {
		return nil, mapFindErr(err, "Playlist not found")
	}
	return p, nil
}

// ByOwner lists a user's playlists with membership cardinality and the view
// sum over member videos.
func (r *PlaylistRepo) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.PlaylistSummary, error) {
	sql, args := NewPipeline("playlists p").
		Project("p.id", "p.name", "p.description", "p.created_at").
		Filter("p.owner_id = ?", ownerID).
		Derive("(SELECT count(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id)", "total_videos").
		Derive(`COALESCE((SELECT sum(v.views) FROM playlist_videos pv
			JOIN videos v ON v.id = pv.video_id
			WHERE pv.playlist_id = p.id), 0)`, "total_views").
		SortDefault("p.created_at DESC").
		SQL()

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.Dependency("database query failed", err)
	}
	defer rows.Close()

	var items []model.PlaylistSummary
	for rows.Next() {
		var it model.PlaylistSummary
		err := rows.Scan(&it.ID, &it.Name, &it.Description, &it.CreatedAt,
			&it.TotalVideos, &it.TotalViews)
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

// Detail builds the playlist view: header, owner public fields, member
// videos in display order with their owners, and the aggregate counters.
func (r *PlaylistRepo) Detail(ctx context.Context, id uuid.UUID) (*model.PlaylistDetail, error) {
	sql, args := NewPipeline("playlists p").
		Join("JOIN users u ON u.id = p.owner_id").
		Project("p.id", "p.name", "p.description", "p.created_at",
			"u.id", "u.user_name", "u.full_name", "u.avatar_url").
		Filter("p.id = ?", id).
		Derive("(SELECT count(*) FROM playlist_videos pv WHERE pv.playlist_id = p.id)", "total_videos").
		Derive(`COALESCE((SELECT sum(v.views) FROM playlist_videos pv
			JOIN videos v ON v.id = pv.video_id
			WHERE pv.playlist_id = p.id), 0)`, "total_views").
		SortDefault("p.created_at DESC").
		SQL()

	var d model.PlaylistDetail
	err := r.pool.QueryRow(ctx, sql, args...).Scan(
		&d.ID, &d.Name, &d.Description, &d.CreatedAt,
		&d.Owner.ID, &d.Owner.UserName, &d.Owner.FullName, &d.Owner.Avatar,
		&d.TotalVideos, &d.TotalViews,
	)
	if err != nil {
		return nil, mapFindErr(err, "Playlist not found")
	}

	videos, err := r.memberVideos(ctx, id)
	if err != nil {
		return nil, err
	}
	d.Videos = videos
	return &d, nil
}

func (r *PlaylistRepo) memberVideos(ctx context.Context, playlistID uuid.UUID) ([]model.VideoListItem, error) {
	sql, args := NewPipeline("playlist_videos pv").
		Join("JOIN videos v ON v.id = pv.video_id").
		Join("JOIN users u ON u.id = v.owner_id").
		Project("v.id", "v.title", "v.description", "v.thumbnail_url",
			"v.duration", "v.views", "v.is_published", "v.created_at",
			"u.id", "u.user_name", "u.full_name", "u.avatar_url").
		Filter("pv.playlist_id = ?", playlistID).
		Derive(`(SELECT count(*) FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'like')`, "likes").
		Derive("false", "is_liked").
		SortDefault("pv.position ASC, pv.added_at ASC").
		SQL()

	rows, err := r.pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperr.Dependency("database query failed", err)
	}
	defer rows.Close()

	return scanVideoListItems(rows)
}

// AddVideo inserts a membership with set semantics: adding an existing
// member is a no-op.
func (r *PlaylistRepo) AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO playlist_videos (playlist_id, video_id, position)
		VALUES ($1, $2, COALESCE(
			(SELECT max(position) + 1 FROM playlist_videos WHERE playlist_id = $1), 0))
		ON CONFLICT (playlist_id, video_id) DO NOTHING`,
		playlistID, videoID)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	return nil
}

func (r *PlaylistRepo) RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM playlist_videos WHERE playlist_id = $1 AND video_id = $2`,
		playlistID, videoID)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	return nil
}

func (r *PlaylistRepo) UpdatePartial(ctx context.Context, id uuid.UUID, name, description string) (*model.Playlist, error) {
	p, err := scanPlaylist(r.pool.QueryRow(ctx, `
		UPDATE playlists SET
			name = COALESCE(NULLIF($2, ''), name),
			description = COALESCE(NULLIF($3, ''), description),
			updated_at = now()
		WHERE id = $1
		RETURNING `+playlistColumns, id, name, description))
	if err != nil {
		return nil, mapFindErr(err, "Playlist not found")
	}
	return p, nil
}

func (r *PlaylistRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM playlists WHERE id = $1`, id)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Playlist not found")
	}
	return nil
}
