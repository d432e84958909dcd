package repository

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, user_name, email, full_name, password_hash,
	avatar_url, avatar_key, cover_url, cover_key, refresh_token, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*model.User, error) {
	var u model.User
	err := row.Scan(
		&u.ID, &u.UserName, &u.Email, &u.FullName, &u.PasswordHash,
		&u.AvatarURL, &u.AvatarKey, &u.CoverURL, &u.CoverKey,
		&u.RefreshToken, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *UserRepo) Create(ctx context.Context, u *model.User) error {
	err := r.pool.QueryRow(ctx, `
		INSERT INTO users (user_name, email, full_name, password_hash,
			avatar_url, avatar_key, cover_url, cover_key)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at, updated_at`,
		u.UserName, u.Email, u.FullName, u.PasswordHash,
		u.AvatarURL, u.AvatarKey, u.CoverURL, u.CoverKey,
	).Scan(&u.ID, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return mapWriteErr(err, "User with this username or email already exists")
	}
	return nil
}

func (r *UserRepo) FindByID(ctx context.Context, id uuid.UUID) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, mapFindErr(err, "User not found")
	}
	return u, nil
}

// FindByLogin matches either user name or email, whichever is supplied.
func (r *UserRepo) FindByLogin(ctx context.Context, userName, email string) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_name = $1 OR email = $2`,
		userName, email))
	if err != nil {
		return nil, mapFindErr(err, "User not found")
	}
	return u, nil
}

// Exists reports whether a user name or email is already taken. The DB
// unique constraints still back this check against races.
func (r *UserRepo) Exists(ctx context.Context, userName, email string) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE user_name = $1 OR email = $2)`,
		userName, email).Scan(&exists)
	if err != nil {
		return false, apperr.Dependency("database query failed", err)
	}
	return exists, nil
}

func (r *UserRepo) UpdateRefreshToken(ctx context.Context, id uuid.UUID, token *string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET refresh_token = $2, updated_at = now() WHERE id = $1`,
		id, token)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	return nil
}

func (r *UserRepo) UpdatePassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`,
		id, passwordHash)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	return nil
}

// UpdateDetails sets only the supplied fields.
func (r *UserRepo) UpdateDetails(ctx context.Context, id uuid.UUID, fullName, email string) (*model.User, error) {
	u, err := scanUser(r.pool.QueryRow(ctx, `
		UPDATE users SET
			full_name = COALESCE(NULLIF($2, ''), full_name),
			email = COALESCE(NULLIF($3, ''), email),
			updated_at = now()
		WHERE id = $1
		RETURNING `+userColumns,
		id, fullName, email))
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperr.Conflict("Email already in use")
		}
		return nil, mapFindErr(err, "User not found")
	}
	return u, nil
}

// UpdateAvatar swaps the avatar reference and returns the previous key so
// the caller can remove the old remote object after the write.
func (r *UserRepo) UpdateAvatar(ctx context.Context, id uuid.UUID, url, key string) (oldKey string, err error) {
	err = r.pool.QueryRow(ctx, `
		UPDATE users u SET avatar_url = $2, avatar_key = $3, updated_at = now()
		FROM (SELECT avatar_key FROM users WHERE id = $1) old
		WHERE u.id = $1
		RETURNING old.avatar_key`,
		id, url, key).Scan(&oldKey)
	if err != nil {
		return "", mapFindErr(err, "User not found")
	}
	return oldKey, nil
}

func (r *UserRepo) UpdateCover(ctx context.Context, id uuid.UUID, url, key string) (oldKey string, err error) {
	err = r.pool.QueryRow(ctx, `
		UPDATE users u SET cover_url = $2, cover_key = $3, updated_at = now()
		FROM (SELECT cover_key FROM users WHERE id = $1) old
		WHERE u.id = $1
		RETURNING old.cover_key`,
		id, url, key).Scan(&oldKey)
	if err != nil {
		return "", mapFindErr(err, "User not found")
	}
	return oldKey, nil
}

// ChannelProfile builds the channel page view for a user name, including the
// requesting actor's subscription state. An anonymous actor (uuid.Nil) never
// matches a subscription row, so isSubscribed is false.
func (r *UserRepo) ChannelProfile(ctx context.Context, userName string, actorID uuid.UUID) (*model.ChannelProfile, error) {
	sql, args := NewPipeline("users u").
		Project("u.id", "u.user_name", "u.full_name", "u.avatar_url", "u.cover_url").
		Filter("u.user_name = ?", userName).
		Derive("(SELECT count(*) FROM subscriptions s WHERE s.channel_id = u.id)", "subscribers_count").
		Derive("(SELECT count(*) FROM subscriptions s WHERE s.subscriber_id = u.id)", "channels_subscribed_to").
		Derive("EXISTS(SELECT 1 FROM subscriptions s WHERE s.channel_id = u.id AND s.subscriber_id = ?)",
			"is_subscribed", actorID).
		SortDefault("u.created_at DESC").
		SQL()

	var p model.ChannelProfile
	err := r.pool.QueryRow(ctx, sql, args...).Scan(
		&p.ID, &p.UserName, &p.FullName, &p.Avatar, &p.CoverImg,
		&p.SubscribersCount, &p.ChannelsSubscribedTo, &p.IsSubscribed,
	)
	if err != nil {
		return nil, mapFindErr(err, "Channel not found")
	}
	return &p, nil
}

// TouchWatchHistory records that a user watched a video. Re-watching moves
// the entry to the top of the history.
func (r *UserRepo) TouchWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO watch_history (user_id, video_id) VALUES ($1, $2)
		ON CONFLICT (user_id, video_id) DO UPDATE SET watched_at = now()`,
		userID, videoID)
	if err != nil {
		return apperr.Dependency("database write failed", err)
	}
	return nil
}

// WatchHistory returns the user's watch history, most recent first.
func (r *UserRepo) WatchHistory(ctx context.Context, userID uuid.UUID, params pagination.Params) ([]model.WatchHistoryEntry, int, error) {
	p := NewPipeline("watch_history wh").
		Join("JOIN videos v ON v.id = wh.video_id").
		Join("JOIN users u ON u.id = v.owner_id").
		Project("v.id", "v.title", "v.description", "v.thumbnail_url",
			"v.duration", "v.views", "v.is_published", "v.created_at",
			"u.id", "u.user_name", "u.full_name", "u.avatar_url").
		Filter("wh.user_id = ?", userID).
		Derive(`(SELECT count(*) FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'like')`, "likes").
		Derive(`EXISTS(SELECT 1 FROM reactions r
			WHERE r.target_type = 'video' AND r.target_id = v.id AND r.kind = 'like' AND r.actor_id = ?)`,
			"is_liked", userID).
		Project("wh.watched_at").
		SortDefault("wh.watched_at DESC").
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

	var entries []model.WatchHistoryEntry
	for rows.Next() {
		var e model.WatchHistoryEntry
		v := &e.Video
		err := rows.Scan(
			&v.ID, &v.Title, &v.Description, &v.ThumbnailURL,
			&v.Duration, &v.Views, &v.IsPublished, &v.CreatedAt,
			&v.Owner.ID, &v.Owner.UserName, &v.Owner.FullName, &v.Owner.Avatar,
			&v.Likes, &v.IsLiked, &e.WatchedAt,
		)
		if err != nil {
			return nil, 0, apperr.Dependency("database scan failed", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, apperr.Dependency("database query failed", err)
	}
	return entries, total, nil
}
