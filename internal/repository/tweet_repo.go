package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

type TweetRepo struct {
	pool *pgxpool.Pool
}

func NewTweetRepo(pool *pgxpool.Pool) *TweetRepo {
	return &TweetRepo{pool: pool}
}

const tweetColumns = `id, owner_id, content, created_at, updated_at`

func scanTweet(row interface{ Scan(...any) error }) (*model.Tweet, error) {
	var t model.Tweet
	err := row.Scan(&t.ID, &t.OwnerID, &t.Content, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *TweetRepo) Create(ctx context.Context, t *model.Tweet) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tweets (owner_id, content)
		VALUES ($1, $2)
		RETURNING id, created_at, updated_at`,
		t.OwnerID, t.Content,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	return nil
}

func (r *TweetRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error) {
	t, err := scanTweet(r.pool.QueryRow(ctx,
		`SELECT `+tweetColumns+` FROM tweets WHERE id = $1`, id))
	if err != nil {
		return nil, mapFindErr(err, "Tweet not found")
	}
	return t, nil
}

// ByOwner lists a user's tweets with like counts and the actor's like state.
func (r *TweetRepo) ByOwner(ctx context.Context, ownerID, actorID uuid.UUID, params pagination.Params) ([]model.TweetListItem, int, error) {
	p := NewPipeline("tweets t").
		Join("JOIN users u ON u.id = t.owner_id").
		Project("t.id", "t.content", "t.created_at",
			"u.id", "u.user_name", "u.full_name", "u.avatar_url").
		Filter("t.owner_id = ?", ownerID).
		Derive(`(SELECT count(*) FROM reactions r
			WHERE r.target_type = 'tweet' AND r.target_id = t.id AND r.kind = 'like')`, "likes").
		Derive(`EXISTS(SELECT 1 FROM reactions r
			WHERE r.target_type = 'tweet' AND r.target_id = t.id AND r.kind = 'like' AND r.actor_id = ?)`,
			"is_liked", actorID).
		SortDefault("t.created_at DESC").
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

	var items []model.TweetListItem
	for rows.Next() {
		var it model.TweetListItem
		err := rows.Scan(
			&it.ID, &it.Content, &it.CreatedAt,
			&it.Owner.ID, &it.Owner.UserName, &it.Owner.FullName, &it.Owner.Avatar,
			&it.Likes, &it.IsLiked,
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

func (r *TweetRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Tweet, error) {
	t, err := scanTweet(r.pool.QueryRow(ctx, `
		UPDATE tweets SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+tweetColumns, id, content))
	if err != nil {
		return nil, mapFindErr(err, "Tweet not found")
	}
	return t, nil
}

// Delete removes a tweet and its reactions in one transaction.
func (r *TweetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Dependency("begin transaction failed", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM reactions WHERE target_type = 'tweet' AND target_id = $1`, id); err != nil {
		return apperr.Dependency("cascade delete failed", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM tweets WHERE id = $1`, id)
	if err != nil {
		return apperr.Dependency("cascade delete failed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Tweet not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Dependency("commit failed", err)
	}
	return nil
}
