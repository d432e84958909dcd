package repository

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

type ReactionRepo struct {
	pool *pgxpool.Pool
}

func NewReactionRepo(pool *pgxpool.Pool) *ReactionRepo {
	return &ReactionRepo{pool: pool}
}

// Toggle flips the actor's reaction of the given kind on a target. An
// existing same-kind reaction is deleted; otherwise the reaction is upserted,
// which atomically replaces an opposing reaction thanks to the
// (actor, target_type, target_id) unique key. Returns whether the reaction
// is active after the call.
func (r *ReactionRepo) Toggle(ctx context.Context, actorID uuid.UUID, targetType model.TargetType, targetID uuid.UUID, kind model.ReactionKind) (bool, error) {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return false, apperr.Dependency("begin transaction failed", err)
	}
	defer tx.Rollback(ctx)

	var deleted uuid.UUID
	err = tx.QueryRow(ctx, `
		DELETE FROM reactions
		WHERE actor_id = $1 AND target_type = $2 AND target_id = $3 AND kind = $4
		RETURNING id`,
		actorID, targetType, targetID, kind).Scan(&deleted)
	switch {
	case err == nil:
		if err := tx.Commit(ctx); err != nil {
			return false, apperr.Dependency("commit failed", err)
		}
		return false, nil
	case !errors.Is(err, pgx.ErrNoRows):
		return false, apperr.Dependency("toggle delete failed", err)
	}

	_, err = tx.Exec(ctx, `
		INSERT INTO reactions (actor_id, target_type, target_id, kind)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (actor_id, target_type, target_id)
		DO UPDATE SET kind = EXCLUDED.kind, created_at = now()`,
		actorID, targetType, targetID, kind)
	if err != nil {
		return false, apperr.Dependency("toggle insert failed", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return false, apperr.Dependency("commit failed", err)
	}
	return true, nil
}

// LikedVideos returns the actor's liked videos, most recently liked first.
func (r *ReactionRepo) LikedVideos(ctx context.Context, actorID uuid.UUID, params pagination.Params) ([]model.VideoListItem, int, error) {
	p := NewPipeline("reactions lr").
		Join("JOIN videos v ON v.id = lr.target_id").
		Join("JOIN users u ON u.id = v.owner_id").
		Project("v.id", "v.title", "v.description", "v.thumbnail_url",
			"v.duration", "v.views", "v.is_published", "v.created_at",
			"u.id", "u.user_name", "u.full_name", "u.avatar_url").
		Filter("lr.actor_id = ?", actorID).
		Filter("lr.target_type = 'video'").
		Filter("lr.kind = 'like'").
		Derive(`(SELECT count(*) FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'like')`, "likes").
		Derive("true", "is_liked").
		SortDefault("lr.created_at DESC").
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
