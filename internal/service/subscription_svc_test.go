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

type subscriptionKey struct {
	subscriber uuid.UUID
	channel    uuid.UUID
}

// fakeSubscriptionStore keeps subscriptions in a map keyed the way the
// unique constraint is: at most one row per (subscriber, channel).
type fakeSubscriptionStore struct {
	rows map[subscriptionKey]bool
}

func newFakeSubscriptionStore() *fakeSubscriptionStore {
	return &fakeSubscriptionStore{rows: make(map[subscriptionKey]bool)}
}

func (f *fakeSubscriptionStore) Toggle(_ context.Context, subscriberID, channelID uuid.UUID) (bool, error) {
	k := subscriptionKey{subscriber: subscriberID, channel: channelID}
	if f.rows[k] {
		delete(f.rows, k)
		return false, nil
	}
	f.rows[k] = true
	return true, nil
}

func (f *fakeSubscriptionStore) Subscribers(_ context.Context, _, _ uuid.UUID, _ pagination.Params) ([]model.SubscriberListItem, int, error) {
	return nil, 0, nil
}

func (f *fakeSubscriptionStore) SubscribedChannels(_ context.Context, _ uuid.UUID, _ pagination.Params) ([]model.SubscribedChannelItem, int, error) {
	return nil, 0, nil
}

type stubUserLookup struct {
	user *model.User
	err  error
}

func (s *stubUserLookup) FindByID(_ context.Context, _ uuid.UUID) (*model.User, error) {
	return s.user, s.err
}

func TestSubscriptionToggleRoundTrip(t *testing.T) {
	store := newFakeSubscriptionStore()
	svc := NewSubscriptionService(store,
		&stubUserLookup{user: &model.User{ID: uuid.New(), UserName: "maya"}},
		NewCacheService(""))
	subscriber, channel := uuid.New(), uuid.New()

	first, err := svc.Toggle(context.Background(), subscriber, channel)
	assert.NoError(t, err)
	assert.True(t, first.Active)

	second, err := svc.Toggle(context.Background(), subscriber, channel)
	assert.NoError(t, err)
	assert.False(t, second.Active)
	assert.Empty(t, store.rows, "repeating a toggle must leave no subscription behind")
}

func TestSubscriptionToggleSelfRejected(t *testing.T) {
	store := newFakeSubscriptionStore()
	svc := NewSubscriptionService(store,
		&stubUserLookup{user: &model.User{ID: uuid.New()}},
		NewCacheService(""))
	actor := uuid.New()

	_, err := svc.Toggle(context.Background(), actor, actor)

	assert.Equal(t, apperr.KindValidation, apperr.KindOf(err))
	assert.Empty(t, store.rows)
}

func TestSubscriptionToggleMissingChannel(t *testing.T) {
	store := newFakeSubscriptionStore()
	svc := NewSubscriptionService(store,
		&stubUserLookup{err: apperr.NotFound("User not found")},
		NewCacheService(""))

	_, err := svc.Toggle(context.Background(), uuid.New(), uuid.New())

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.Empty(t, store.rows)
}
