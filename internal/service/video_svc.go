package service

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/internal/storage"
	"github.com/playtube/playtube-go/pkg/pagination"
)

// PublishRequest carries the text fields of a video upload. The media files
// travel separately as multipart parts.
type PublishRequest struct {
	Title       string  `json:"title" validate:"required,min=1,max=80"`
	Description string  `json:"description" validate:"required,min=1"`
	Duration    float64 `json:"duration" validate:"gte=0"`
}

// videoStore is the persistence surface VideoService depends on.
type videoStore interface {
	Create(ctx context.Context, v *model.Video) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Video, error)
	Feed(ctx context.Context, q model.FeedQuery, actorID uuid.UUID) ([]model.VideoListItem, int, error)
	Detail(ctx context.Context, id, actorID uuid.UUID) (*model.VideoDetail, error)
	UpdatePartial(ctx context.Context, id uuid.UUID, title, description string) (*model.Video, error)
	UpdateThumbnail(ctx context.Context, id uuid.UUID, url, key string) (string, error)
	TogglePublish(ctx context.Context, id uuid.UUID) (*model.Video, error)
	IncrementViews(ctx context.Context, id uuid.UUID) error
	DeleteCascade(ctx context.Context, id uuid.UUID) error
}

// watchHistoryStore records which videos a viewer has watched.
type watchHistoryStore interface {
	TouchWatchHistory(ctx context.Context, userID, videoID uuid.UUID) error
}

type VideoService struct {
	videos videoStore
	users  watchHistoryStore
	media  storage.MediaStore
	cache  *CacheService
}

func NewVideoService(videos videoStore, users watchHistoryStore, media storage.MediaStore, cache *CacheService) *VideoService {
	return &VideoService{videos: videos, users: users, media: media, cache: cache}
}

// Publish uploads the video file and thumbnail to the media host and creates
// the video row, published by default.
func (s *VideoService) Publish(ctx context.Context, ownerID uuid.UUID, req PublishRequest, videoFile, thumbnail *Upload) (*model.Video, error) {
	if videoFile == nil {
		return nil, apperr.Validation("video file is required")
	}
	if thumbnail == nil {
		return nil, apperr.Validation("thumbnail image is required")
	}
	if !strings.HasPrefix(videoFile.ContentType, "video/") {
		return nil, apperr.Validationf("expected a video upload, got %q", videoFile.ContentType)
	}
	if !strings.HasPrefix(thumbnail.ContentType, "image/") {
		return nil, apperr.Validationf("expected an image upload, got %q", thumbnail.ContentType)
	}

	videoAsset, err := s.media.Store(ctx, videoFile.Name, videoFile.ContentType, videoFile.Body)
	if err != nil {
		return nil, err
	}
	thumbAsset, err := s.media.Store(ctx, thumbnail.Name, thumbnail.ContentType, thumbnail.Body)
	if err != nil {
		return nil, err
	}

	v := &model.Video{
		OwnerID:      ownerID,
		Title:        req.Title,
		Description:  req.Description,
		VideoURL:     videoAsset.URL,
		VideoKey:     videoAsset.Key,
		ThumbnailURL: thumbAsset.URL,
		ThumbnailKey: thumbAsset.Key,
		Duration:     req.Duration,
		IsPublished:  true,
	}
	if err := s.videos.Create(ctx, v); err != nil {
		return nil, err
	}
	return v, nil
}

// Feed returns the paginated video feed. Owners browsing their own uploads
// see unpublished videos too; everyone else sees published only.
func (s *VideoService) Feed(ctx context.Context, q model.FeedQuery, actorID uuid.UUID) (pagination.Page[model.VideoListItem], error) {
	params := pagination.Normalize(q.Page, q.Limit)
	q.Page, q.Limit = params.Page, params.Limit

	items, total, err := s.videos.Feed(ctx, q, actorID)
	if err != nil {
		return pagination.Page[model.VideoListItem]{}, err
	}
	return pagination.NewPage(items, params, total), nil
}

// Detail returns the single-video view, bumps the view counter and records
// the watch in the viewer's history. Unpublished videos are visible to their
// owner only; the counter and history writes happen after that gate, and a
// failed bump never fails the view. Anonymous lookups are served cache-aside
// because their derived fields are viewer independent.
func (s *VideoService) Detail(ctx context.Context, id, actorID uuid.UUID) (*model.VideoDetail, error) {
	if actorID == uuid.Nil {
		if cached, err := s.cache.GetVideo(ctx, id.String()); err == nil && cached != nil {
			var d model.VideoDetail
			if err := json.Unmarshal(cached, &d); err == nil {
				s.bumpViews(ctx, id)
				return &d, nil
			}
		}
	}

	d, err := s.videos.Detail(ctx, id, actorID)
	if err != nil {
		return nil, err
	}
	if !d.IsPublished && d.Owner.ID != actorID {
		return nil, apperr.NotFound("Video not found")
	}

	if s.bumpViews(ctx, id) {
		d.Views++
	}
	if actorID != uuid.Nil {
		if err := s.users.TouchWatchHistory(ctx, actorID, id); err != nil {
			log.Warn().Err(err).Str("video", id.String()).Msg("watch history update failed")
		}
	}

	if actorID == uuid.Nil {
		if err := s.cache.SetVideo(ctx, id.String(), d); err != nil {
			log.Warn().Err(err).Str("video", id.String()).Msg("video cache write failed")
		}
	}
	return d, nil
}

func (s *VideoService) bumpViews(ctx context.Context, id uuid.UUID) bool {
	if err := s.videos.IncrementViews(ctx, id); err != nil {
		log.Warn().Err(err).Str("video", id.String()).Msg("view counter bump failed")
		return false
	}
	return true
}

// Update applies a partial edit of title and description, with an optional
// replacement thumbnail. Only the owner may edit.
func (s *VideoService) Update(ctx context.Context, actorID, id uuid.UUID, req model.UpdateVideoRequest, thumbnail *Upload) (*model.Video, error) {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return nil, err
	}
	if req.Title == "" && req.Description == "" && thumbnail == nil {
		return nil, apperr.Validation("nothing to update")
	}

	v, err := s.videos.UpdatePartial(ctx, id, req.Title, req.Description)
	if err != nil {
		return nil, err
	}

	if thumbnail != nil {
		if !strings.HasPrefix(thumbnail.ContentType, "image/") {
			return nil, apperr.Validationf("expected an image upload, got %q", thumbnail.ContentType)
		}
		asset, err := s.media.Store(ctx, thumbnail.Name, thumbnail.ContentType, thumbnail.Body)
		if err != nil {
			return nil, err
		}
		oldKey, err := s.videos.UpdateThumbnail(ctx, id, asset.URL, asset.Key)
		if err != nil {
			return nil, err
		}
		if err := s.media.Remove(ctx, oldKey); err != nil {
			log.Warn().Err(err).Str("key", oldKey).Msg("orphaned media object left behind")
		}
		v.ThumbnailURL = asset.URL
		v.ThumbnailKey = asset.Key
	}

	s.invalidate(ctx, id)
	return v, nil
}

// Delete removes the video, its dependents and its media objects. Only the
// owner may delete.
func (s *VideoService) Delete(ctx context.Context, actorID, id uuid.UUID) error {
	v, err := s.owned(ctx, actorID, id)
	if err != nil {
		return err
	}

	if err := s.videos.DeleteCascade(ctx, id); err != nil {
		return err
	}

	if err := s.media.Remove(ctx, v.VideoKey); err != nil {
		log.Warn().Err(err).Str("key", v.VideoKey).Msg("orphaned media object left behind")
	}
	if err := s.media.Remove(ctx, v.ThumbnailKey); err != nil {
		log.Warn().Err(err).Str("key", v.ThumbnailKey).Msg("orphaned media object left behind")
	}

	s.invalidate(ctx, id)
	return nil
}

// TogglePublish flips the publish flag. Only the owner may toggle.
func (s *VideoService) TogglePublish(ctx context.Context, actorID, id uuid.UUID) (*model.Video, error) {
	if _, err := s.owned(ctx, actorID, id); err != nil {
		return nil, err
	}
	v, err := s.videos.TogglePublish(ctx, id)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, id)
	return v, nil
}

func (s *VideoService) owned(ctx context.Context, actorID, id uuid.UUID) (*model.Video, error) {
	v, err := s.videos.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(v.OwnerID, actorID, "video"); err != nil {
		return nil, err
	}
	return v, nil
}

func (s *VideoService) invalidate(ctx context.Context, id uuid.UUID) {
	if err := s.cache.InvalidateVideo(ctx, id.String()); err != nil {
		log.Warn().Err(err).Str("video", id.String()).Msg("video cache invalidation failed")
	}
}
