package service

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/playtube/playtube-go/internal/apperr"
	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

// subscriptionStore is the persistence surface SubscriptionService depends
// on.
type subscriptionStore interface {
	Toggle(ctx context.Context, subscriberID, channelID uuid.UUID) (bool, error)
	Subscribers(ctx context.Context, channelID, actorID uuid.UUID, params pagination.Params) ([]model.SubscriberListItem, int, error)
	SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, params pagination.Params) ([]model.SubscribedChannelItem, int, error)
}

type SubscriptionService struct {
	subs  subscriptionStore
	users userLookup
	cache *CacheService
}

func NewSubscriptionService(subs subscriptionStore, users userLookup, cache *CacheService) *SubscriptionService {
	return &SubscriptionService{subs: subs, users: users, cache: cache}
}

// Toggle subscribes the actor to a channel or removes an existing
// subscription. Subscribing to yourself is rejected.
func (s *SubscriptionService) Toggle(ctx context.Context, actorID, channelID uuid.UUID) (*model.ToggleResult, error) {
	if actorID == channelID {
		return nil, apperr.Validation("cannot subscribe to your own channel")
	}

	channel, err := s.users.FindByID(ctx, channelID)
	if err != nil {
		return nil, err
	}

	active, err := s.subs.Toggle(ctx, actorID, channelID)
	if err != nil {
		return nil, err
	}

	if err := s.cache.InvalidateChannel(ctx, channel.UserName); err != nil {
		log.Warn().Err(err).Str("userName", channel.UserName).Msg("channel cache invalidation failed")
	}
	return &model.ToggleResult{Active: active}, nil
}

// Subscribers lists the users subscribed to a channel.
func (s *SubscriptionService) Subscribers(ctx context.Context, channelID, actorID uuid.UUID, page, limit int) (pagination.Page[model.SubscriberListItem], error) {
	if _, err := s.users.FindByID(ctx, channelID); err != nil {
		return pagination.Page[model.SubscriberListItem]{}, err
	}

	params := pagination.Normalize(page, limit)
	items, total, err := s.subs.Subscribers(ctx, channelID, actorID, params)
	if err != nil {
		return pagination.Page[model.SubscriberListItem]{}, err
	}
	return pagination.NewPage(items, params, total), nil
}

// SubscribedChannels lists the channels a user subscribes to, each with its
// latest published video.
func (s *SubscriptionService) SubscribedChannels(ctx context.Context, subscriberID uuid.UUID, page, limit int) (pagination.Page[model.SubscribedChannelItem], error) {
	if _, err := s.users.FindByID(ctx, subscriberID); err != nil {
		return pagination.Page[model.SubscribedChannelItem]{}, err
	}

	params := pagination.Normalize(page, limit)
	items, total, err := s.subs.SubscribedChannels(ctx, subscriberID, params)
	if err != nil {
		return pagination.Page[model.SubscribedChannelItem]{}, err
	}
	return pagination.NewPage(items, params, total), nil
}
