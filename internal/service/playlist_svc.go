package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
)

// playlistStore is the persistence surface PlaylistService depends on.
type playlistStore interface {
	Create(ctx context.Context, p *model.Playlist) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Playlist, error)
	ByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.PlaylistSummary, error)
	Detail(ctx context.Context, id uuid.UUID) (*model.PlaylistDetail, error)
	AddVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	RemoveVideo(ctx context.Context, playlistID, videoID uuid.UUID) error
	UpdatePartial(ctx context.Context, id uuid.UUID, name, description string) (*model.Playlist, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type PlaylistService struct {
	playlists playlistStore
	videos    videoLookup
	users     userLookup
}

func NewPlaylistService(playlists playlistStore, videos videoLookup, users userLookup) *PlaylistService {
	return &PlaylistService{playlists: playlists, videos: videos, users: users}
}

// Create makes an empty playlist owned by the actor.
func (s *PlaylistService) Create(ctx context.Context, actorID uuid.UUID, req model.CreatePlaylistRequest) (*model.Playlist, error) {
	p := &model.Playlist{
		OwnerID:     actorID,
		Name:        req.Name,
		Description: req.Description,
	}
	if err := s.playlists.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ByOwner lists a user's playlists with aggregate counts.
func (s *PlaylistService) ByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.PlaylistSummary, error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return nil, err
	}
	return s.playlists.ByOwner(ctx, ownerID)
}

// Detail returns a playlist with its member videos in playlist order.
func (s *PlaylistService) Detail(ctx context.Context, id uuid.UUID) (*model.PlaylistDetail, error) {
	return s.playlists.Detail(ctx, id)
}

// AddVideo appends an existing video to the actor's playlist. Re-adding a
// member is a no-op.
func (s *PlaylistService) AddVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) error {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return err
	}
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return err
	}
	return s.playlists.AddVideo(ctx, playlistID, videoID)
}

// RemoveVideo removes a video from the actor's playlist.
func (s *PlaylistService) RemoveVideo(ctx context.Context, actorID, playlistID, videoID uuid.UUID) error {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return err
	}
	return s.playlists.RemoveVideo(ctx, playlistID, videoID)
}

// Update applies a partial edit of name and description. Only the owner may
// edit.
func (s *PlaylistService) Update(ctx context.Context, actorID, playlistID uuid.UUID, req model.UpdatePlaylistRequest) (*model.Playlist, error) {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return nil, err
	}
	if req.Name == "" && req.Description == "" {
		return nil, apperr.Validation("at least one of name or description is required")
	}
	return s.playlists.UpdatePartial(ctx, playlistID, req.Name, req.Description)
}

// Delete removes the playlist and its memberships. Only the owner may delete.
func (s *PlaylistService) Delete(ctx context.Context, actorID, playlistID uuid.UUID) error {
	if _, err := s.owned(ctx, actorID, playlistID); err != nil {
		return err
	}
	return s.playlists.Delete(ctx, playlistID)
}

func (s *PlaylistService) owned(ctx context.Context, actorID, playlistID uuid.UUID) (*model.Playlist, error) {
	p, err := s.playlists.FindByID(ctx, playlistID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(p.OwnerID, actorID, "playlist"); err != nil {
		return nil, err
	}
	return p, nil
}
