package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

// tweetStore is the persistence surface TweetService depends on.
type tweetStore interface {
	Create(ctx context.Context, t *model.Tweet) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Tweet, error)
	ByOwner(ctx context.Context, ownerID, actorID uuid.UUID, params pagination.Params) ([]model.TweetListItem, int, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Tweet, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type TweetService struct {
	tweets tweetStore
	users  userLookup
}

func NewTweetService(tweets tweetStore, users userLookup) *TweetService {
	return &TweetService{tweets: tweets, users: users}
}

// Create posts a tweet for the actor.
func (s *TweetService) Create(ctx context.Context, actorID uuid.UUID, content string) (*model.Tweet, error) {
	t := &model.Tweet{
		OwnerID: actorID,
		Content: content,
	}
	if err := s.tweets.Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// ByOwner lists a user's tweets, newest first, with the actor's like state.
func (s *TweetService) ByOwner(ctx context.Context, ownerID, actorID uuid.UUID, page, limit int) (pagination.Page[model.TweetListItem], error) {
	if _, err := s.users.FindByID(ctx, ownerID); err != nil {
		return pagination.Page[model.TweetListItem]{}, err
	}

	params := pagination.Normalize(page, limit)
	items, total, err := s.tweets.ByOwner(ctx, ownerID, actorID, params)
	if err != nil {
		return pagination.Page[model.TweetListItem]{}, err
	}
	return pagination.NewPage(items, params, total), nil
}

// Update edits a tweet's content. Only the author may edit.
func (s *TweetService) Update(ctx context.Context, actorID, tweetID uuid.UUID, content string) (*model.Tweet, error) {
	if _, err := s.owned(ctx, actorID, tweetID); err != nil {
		return nil, err
	}
	return s.tweets.UpdateContent(ctx, tweetID, content)
}

// Delete removes a tweet and its reactions. Only the author may delete.
func (s *TweetService) Delete(ctx context.Context, actorID, tweetID uuid.UUID) error {
	if _, err := s.owned(ctx, actorID, tweetID); err != nil {
		return err
	}
	return s.tweets.Delete(ctx, tweetID)
}

func (s *TweetService) owned(ctx context.Context, actorID, tweetID uuid.UUID) (*model.Tweet, error) {
	t, err := s.tweets.FindByID(ctx, tweetID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(t.OwnerID, actorID, "tweet"); err != nil {
		return nil, err
	}
	return t, nil
}
