package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/playtube/playtube-go/internal/model"
	"github.com/playtube/playtube-go/pkg/pagination"
)

// commentStore is the persistence surface CommentService depends on.
type commentStore interface {
	Create(ctx context.Context, c *model.Comment) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Comment, error)
	ListByVideo(ctx context.Context, videoID, actorID uuid.UUID, params pagination.Params) ([]model.CommentListItem, int, error)
	UpdateContent(ctx context.Context, id uuid.UUID, content string) (*model.Comment, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type CommentService struct {
	comments commentStore
	videos   videoLookup
}

func NewCommentService(comments commentStore, videos videoLookup) *CommentService {
	return &CommentService{comments: comments, videos: videos}
}

// Add creates a comment on an existing video.
func (s *CommentService) Add(ctx context.Context, actorID, videoID uuid.UUID, content string) (*model.Comment, error) {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return nil, err
	}

	c := &model.Comment{
		VideoID: videoID,
		OwnerID: actorID,
		Content: content,
	}
	if err := s.comments.Create(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// List returns a video's comments, newest first, with the actor's like state.
func (s *CommentService) List(ctx context.Context, videoID, actorID uuid.UUID, page, limit int) (pagination.Page[model.CommentListItem], error) {
	if _, err := s.videos.FindByID(ctx, videoID); err != nil {
		return pagination.Page[model.CommentListItem]{}, err
	}

	params := pagination.Normalize(page, limit)
	items, total, err := s.comments.ListByVideo(ctx, videoID, actorID, params)
	if err != nil {
		return pagination.Page[model.CommentListItem]{}, err
	}
	return pagination.NewPage(items, params, total), nil
}

// Update edits a comment's content. Only the author may edit.
func (s *CommentService) Update(ctx context.Context, actorID, commentID uuid.UUID, content string) (*model.Comment, error) {
	if _, err := s.owned(ctx, actorID, commentID); err != nil {
		return nil, err
	}
	return s.comments.UpdateContent(ctx, commentID, content)
}

// Delete removes a comment and its reactions. Only the author may delete.
func (s *CommentService) Delete(ctx context.Context, actorID, commentID uuid.UUID) error {
	if _, err := s.owned(ctx, actorID, commentID); err != nil {
		return err
	}
	return s.comments.Delete(ctx, commentID)
}

func (s *CommentService) owned(ctx context.Context, actorID, commentID uuid.UUID) (*model.Comment, error) {
	c, err := s.comments.FindByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(c.OwnerID, actorID, "comment"); err != nil {
		return nil, err
	}
	return c, nil
}
