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

// stubTweetStore serves one tweet and records writes.
type stubTweetStore struct {
	tweet   *model.Tweet
	findErr error
	updated bool
	deleted bool
}

func (s *stubTweetStore) Create(_ context.Context, _ *model.Tweet) error { return nil }

func (s *stubTweetStore) FindByID(_ context.Context, _ uuid.UUID) (*model.Tweet, error) {
	return s.tweet, s.findErr
}

func (s *stubTweetStore) ByOwner(_ context.Context, _, _ uuid.UUID, _ pagination.Params) ([]model.TweetListItem, int, error) {
	return nil, 0, nil
}

func (s *stubTweetStore) UpdateContent(_ context.Context, _ uuid.UUID, content string) (*model.Tweet, error) {
	s.updated = true
	s.tweet.Content = content
	return s.tweet, nil
}

func (s *stubTweetStore) Delete(_ context.Context, _ uuid.UUID) error {
	s.deleted = true
	return nil
}

func TestTweetUpdateByNonOwner(t *testing.T) {
	author, intruder := uuid.New(), uuid.New()
	store := &stubTweetStore{tweet: &model.Tweet{ID: uuid.New(), OwnerID: author, Content: "first"}}
	svc := NewTweetService(store, &stubUserLookup{user: &model.User{}})

	_, err := svc.Update(context.Background(), intruder, store.tweet.ID, "mine now")

	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	assert.False(t, store.updated, "a rejected edit must not reach the store")
}

func TestTweetDeleteByOwner(t *testing.T) {
	author := uuid.New()
	store := &stubTweetStore{tweet: &model.Tweet{ID: uuid.New(), OwnerID: author}}
	svc := NewTweetService(store, &stubUserLookup{user: &model.User{}})

	err := svc.Delete(context.Background(), author, store.tweet.ID)

	assert.NoError(t, err)
	assert.True(t, store.deleted)
}
