package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

// reactionStore is the persistence surface ReactionService depends on.
type reactionStore interface {
	Toggle(ctx context.Context, actorID uuid.UUID, targetType model.TargetType, targetID uuid.UUID, kind model.ReactionKind) (bool, error)
	LikedVideos(ctx context.Context, actorID uuid.UUID, params pagination.Params) ([]model.VideoListItem, int, error)
}

// Single-method lookups shared by the services that only need an existence
// check on another entity.
type videoLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Video, error)
}

type commentLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
}

type tweetLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
}

type userLookup interface {
	FindByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type ReactionService struct {
	reactions reactionStore
	videos    videoLookup
	comments  commentLookup
	tweets    tweetLookup
	cache     *CacheService
}

func NewReactionService(reactions reactionStore, videos videoLookup,
	comments commentLookup, tweets tweetLookup, cache *CacheService) *ReactionService {
	return &ReactionService{
		reactions: reactions,
		videos:    videos,
		comments:  comments,
		tweets:    tweets,
		cache:     cache,
	}
}

// Toggle flips the actor's reaction on a target. Repeating the same kind
// removes it; switching kinds replaces it, so a like and a dislike never
// coexist for one actor and target.
func (s *ReactionService) Toggle(ctx context.Context, actorID uuid.UUID, targetType model.TargetType, targetID uuid.UUID, kind model.ReactionKind) (*model.ToggleResult, error) {
	if err := s.targetExists(ctx, targetType, targetID); err != nil {
		return nil, err
	}

	active, err := s.reactions.Toggle(ctx, actorID, targetType, targetID, kind)
	if err != nil {
		return nil, err
	}

	if targetType == model.TargetVideo {
		if err := s.cache.InvalidateVideo(ctx, targetID.String()); err != nil {
			log.Warn().Err(err).Str("video", targetID.String()).Msg("video cache invalidation failed")
		}
	}
	return &model.ToggleResult{Active: active}, nil
}

// LikedVideos lists the videos the actor has liked, most recently liked
// first.
func (s *ReactionService) LikedVideos(ctx context.Context, actorID uuid.UUID, page, limit int) (pagination.Page[model.VideoListItem], error) {
	params := pagination.Normalize(page, limit)
	items, total, err := s.reactions.LikedVideos(ctx, actorID, params)
	if err != nil {
		return pagination.Page[model.VideoListItem]{}, err
	}
	return pagination.NewPage(items, params, total), nil
}

func (s *ReactionService) targetExists(ctx context.Context, targetType model.TargetType, targetID uuid.UUID) error {
	switch targetType {
	case model.TargetVideo:
		_, err := s.videos.FindByID(ctx, targetID)
		return err
	case model.TargetComment:
		_, err := s.comments.FindByID(ctx, targetID)
		return err
	case model.TargetTweet:
		_, err := s.tweets.FindByID(ctx, targetID)
		return err
	default:
		return apperr.Validationf("unknown reaction target %q", targetType)
	}
}
