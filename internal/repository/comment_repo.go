package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

type CommentRepo struct {
	pool *pgxpool.Pool
}

func NewCommentRepo(pool *pgxpool.Pool) *CommentRepo {
	return &CommentRepo{pool: pool}
}

const commentColumns = `id, video_id, owner_id, content, created_at, updated_at`

func scanComment(row interface{ Scan(...any) error }) (*model.Comment, error) {
	var c model.Comment
	err := row.Scan(&c.ID, &c.VideoID, &c.OwnerID, &c.Content, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *CommentRepo) Create(ctx context.Context, c *model.Comment) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO comments (video_id, owner_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at, updated_at`,
		c.VideoID, c.OwnerID, c.Content,
	).Scan(&c.ID, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	return nil
}

func (r *CommentRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error) {
	c, err := scanComment(r.pool.QueryRow(ctx,
		`SELECT `+commentColumns+` FROM comments WHERE id = $1`, id))
	if err != nil {
		return nil, mapFindErr(err, "Comment not found")
	}
	return c, nil
}

// ListByVideo returns a video's comments with owner public fields, like
// counts and the actor's like state, newest first.
func (r *CommentRepo) ListByVideo(ctx context.Context, videoID, actorID uuid.UUID, params pagination.Params) ([]model.CommentListItem, int, error) {
	p := NewPipeline("comments c").
		Join("JOIN users u ON u.id = c.owner_id").
		Project("c.id", "c.content", "c.created_at",
			"u.id", "u.user_name", "u.full_name", "u.avatar_url").
		Filter("c.video_id = ?", videoID).
		Derive(`(SELECT count(*) FROM reactions r
			WHERE r.target_type = 'comment' AND r.target_id = c.id AND r.kind = 'like')`, "likes").
		Derive(`EXISTS(SELECT 1 FROM reactions r
			WHERE r.target_type = 'comment' AND r.target_id = c.id AND r.kind = 'like' AND r.actor_id = ?)`,
			"is_liked", actorID).
		SortDefault("c.created_at DESC").
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

	var items []model.CommentListItem
	for rows.Next() {
		var it model.CommentListItem
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

func (r *CommentRepo) UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error) {
	c, err := scanComment(r.pool.QueryRow(ctx, `
		UPDATE comments SET content = $2, updated_at = now()
		WHERE id = $1
		RETURNING `+commentColumns, id, content))
	if err != nil {
		return nil, mapFindErr(err, "Comment not found")
	}
	return c, nil
}

// Delete removes a comment and its reactions in one transaction.
func (r *CommentRepo) Delete(ctx context.Context, id uuid.UUID) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return apperr.Dependency("begin transaction failed", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`DELETE FROM reactions WHERE target_type = 'comment' AND target_id = $1`, id); err != nil {
		return apperr.Dependency("cascade delete failed", err)
	}

	tag, err := tx.Exec(ctx, `DELETE FROM comments WHERE id = $1`, id)
	if err != nil {
		return apperr.Dependency("cascade delete failed", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Comment not found")
	}

	if err := tx.Commit(ctx); err != nil {
		return apperr.Dependency("commit failed", err)
	}
	return nil
}
