package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
)

// stubPlaylistStore serves one playlist and records membership writes.
type stubPlaylistStore struct {
	playlist *model.Playlist
	findErr  error
	added    bool
	removed  bool
}

func (s *stubPlaylistStore) Create(_ context.Context, _ *model.Playlist) error { return nil }

func (s *stubPlaylistStore) FindByID(_ context.Context, _ uuid.UUID) (*model.Playlist, error) {
	return s.playlist, s.findErr
}

func (s *stubPlaylistStore) ByOwner(_ context.Context, _ uuid.UUID) ([]model.PlaylistSummary, error) {
	return nil, nil
}

func (s *stubPlaylistStore) Detail(_ context.Context, _ uuid.UUID) (*model.PlaylistDetail, error) {
	return nil, nil
}

func (s *stubPlaylistStore) AddVideo(_ context.Context, _, _ uuid.UUID) error {
	s.added = true
	return nil
}

func (s *stubPlaylistStore) RemoveVideo(_ context.Context, _, _ uuid.UUID) error {
	s.removed = true
	return nil
}

func (s *stubPlaylistStore) UpdatePartial(_ context.Context, _ uuid.UUID, _, _ string) (*model.Playlist, error) {
	return s.playlist, nil
}

func (s *stubPlaylistStore) Delete(_ context.Context, _ uuid.UUID) error { return nil }

func TestPlaylistAddVideoByNonOwner(t *testing.T) {
	owner, intruder := uuid.New(), uuid.New()
	store := &stubPlaylistStore{playlist: &model.Playlist{ID: uuid.New(), OwnerID: owner}}
	svc := NewPlaylistService(store,
		&stubVideoLookup{video: &model.Video{}},
		&stubUserLookup{user: &model.User{}})

	err := svc.AddVideo(context.Background(), intruder, store.playlist.ID, uuid.New())

	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	assert.False(t, store.added, "a rejected add must not reach the store")
}

func TestPlaylistAddMissingVideo(t *testing.T) {
	owner := uuid.New()
	store := &stubPlaylistStore{playlist: &model.Playlist{ID: uuid.New(), OwnerID: owner}}
	svc := NewPlaylistService(store,
		&stubVideoLookup{err: apperr.NotFound("Video not found")},
		&stubUserLookup{user: &model.User{}})

	err := svc.AddVideo(context.Background(), owner, store.playlist.ID, uuid.New())

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.False(t, store.added)
}

func TestPlaylistUpdateNeedsAField(t *testing.T) {
	owner := uuid.New()
	store := &stubPlaylistStore{playlist: &model.Playlist{ID: uuid.New(), OwnerID: owner}}
	svc := NewPlaylistService(store,
		&stubVideoLookup{video: &model.Video{}},
		&stubUserLookup{user: &model.User{}})

	_, err := svc.Update(context.Background(), owner, store.playlist.ID, model.UpdatePlaylistRequest{})

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
