package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

type reactionKey struct {
	actor      uuid.UUID
	targetType model.TargetType
	targetID   uuid.UUID
}

// fakeReactionStore keeps reactions in a map keyed the way the unique
// constraint is: at most one row per (actor, target), either kind.
type fakeReactionStore struct {
	rows map[reactionKey]model.ReactionKind
}

func newFakeReactionStore() *fakeReactionStore {
	return &fakeReactionStore{rows: make(map[reactionKey]model.ReactionKind)}
}

func (f *fakeReactionStore) Toggle(_ context.Context, actorID uuid.UUID, targetType model.TargetType, targetID uuid.UUID, kind model.ReactionKind) (bool, error) {
	k := reactionKey{actor: actorID, targetType: targetType, targetID: targetID}
	if f.rows[k] == kind {
		delete(f.rows, k)
		return false, nil
	}
	f.rows[k] = kind
	return true, nil
}

func (f *fakeReactionStore) LikedVideos(_ context.Context, _ uuid.UUID, _ pagination.Params) ([]model.VideoListItem, int, error) {
	return nil, 0, nil
}

type stubVideoLookup struct {
	video *model.Video
	err   error
}

func (s *stubVideoLookup) FindByID(_ context.Context, _ uuid.UUID) (*model.Video, error) {
	return s.video, s.err
}

type stubCommentLookup struct {
	comment *model.Comment
	err     error
}

func (s *stubCommentLookup) FindByID(_ context.Context, _ uuid.UUID) (*model.Comment, error) {
	return s.comment, s.err
}

type stubTweetLookup struct {
	tweet *model.Tweet
	err   error
}

func (s *stubTweetLookup) FindByID(_ context.Context, _ uuid.UUID) (*model.Tweet, error) {
	return s.tweet, s.err
}

func newTestReactionService(store *fakeReactionStore) *ReactionService {
	return NewReactionService(store,
		&stubVideoLookup{video: &model.Video{ID: uuid.New()}},
		&stubCommentLookup{comment: &model.Comment{ID: uuid.New()}},
		&stubTweetLookup{tweet: &model.Tweet{ID: uuid.New()}},
		NewCacheService(""))
}

func TestReactionToggleRoundTrip(t *testing.T) {
	store := newFakeReactionStore()
	svc := newTestReactionService(store)
	actor, video := uuid.New(), uuid.New()

	first, err := svc.Toggle(context.Background(), actor, model.TargetVideo, video, model.ReactionLike)
	assert.NoError(t, err)
	assert.True(t, first.Active)

	second, err := svc.Toggle(context.Background(), actor, model.TargetVideo, video, model.ReactionLike)
	assert.NoError(t, err)
	assert.False(t, second.Active)
	assert.Empty(t, store.rows, "repeating a toggle must leave no reaction behind")
}

func TestReactionDislikeReplacesLike(t *testing.T) {
	store := newFakeReactionStore()
	svc := newTestReactionService(store)
	actor, video := uuid.New(), uuid.New()

	_, err := svc.Toggle(context.Background(), actor, model.TargetVideo, video, model.ReactionLike)
	assert.NoError(t, err)

	res, err := svc.Toggle(context.Background(), actor, model.TargetVideo, video, model.ReactionDislike)
	assert.NoError(t, err)
	assert.True(t, res.Active)

	assert.Len(t, store.rows, 1, "a like and a dislike must never coexist")
	key := reactionKey{actor: actor, targetType: model.TargetVideo, targetID: video}
	assert.Equal(t, model.ReactionDislike, store.rows[key])
}

func TestReactionToggleMissingTarget(t *testing.T) {
	store := newFakeReactionStore()
	svc := NewReactionService(store,
		&stubVideoLookup{err: apperr.NotFound("Video not found")},
		&stubCommentLookup{comment: &model.Comment{ID: uuid.New()}},
		&stubTweetLookup{tweet: &model.Tweet{ID: uuid.New()}},
		NewCacheService(""))

	_, err := svc.Toggle(context.Background(), uuid.New(), model.TargetVideo, uuid.New(), model.ReactionLike)
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, store.rows, "a reaction on a missing target must not be written")
}

func TestReactionToggleUnknownTargetType(t *testing.T) {
	svc := newTestReactionService(newFakeReactionStore())

	_, err := svc.Toggle(context.Background(), uuid.New(), model.TargetType("channel"), uuid.New(), model.ReactionLike)
	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
}
