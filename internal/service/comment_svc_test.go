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

// stubCommentStore serves one comment and records which writes happened.
type stubCommentStore struct {
	comment *model.Comment
	findErr error
	created bool
	updated bool
	deleted bool
}

func (s *stubCommentStore) Create(_ context.Context, _ *model.Comment) error {
	s.created = true
	return nil
}

func (s *stubCommentStore) FindByID(_ context.Context, _ uuid.UUID) (*model.Comment, error) {
	return s.comment, s.findErr
}

func (s *stubCommentStore) ListByVideo(_ context.Context, _, _ uuid.UUID, _ pagination.Params) ([]model.CommentListItem, int, error) {
	return nil, 0, nil
}

func (s *stubCommentStore) UpdateContent(_ context.Context, _ uuid.UUID, content string) (*model.Comment, error) {
	s.updated = true
	s.comment.Content = content
	return s.comment, nil
}

func (s *stubCommentStore) Delete(_ context.Context, _ uuid.UUID) error {
	s.deleted = true
	return nil
}

func TestCommentUpdateByNonOwner(t *testing.T) {
	author, intruder := uuid.New(), uuid.New()
	store := &stubCommentStore{comment: &model.Comment{ID: uuid.New(), OwnerID: author, Content: "first"}}
	svc := NewCommentService(store, &stubVideoLookup{video: &model.Video{}})

	_, err := svc.Update(context.Background(), intruder, store.comment.ID, "mine now")

	assert.Equal(t, apperr.KindAuthorization, apperr.KindOf(err))
	assert.False(t, store.updated, "a rejected edit must not reach the store")
}

func TestCommentDeleteByOwner(t *testing.T) {
	author := uuid.New()
	store := &stubCommentStore{comment: &model.Comment{ID: uuid.New(), OwnerID: author}}
	svc := NewCommentService(store, &stubVideoLookup{video: &model.Video{}})

	err := svc.Delete(context.Background(), author, store.comment.ID)

	assert.NoError(t, err)
	assert.True(t, store.deleted)
}

func TestCommentAddToMissingVideo(t *testing.T) {
	store := &stubCommentStore{}
	svc := NewCommentService(store, &stubVideoLookup{err: apperr.NotFound("Video not found")})

	_, err := svc.Add(context.Background(), uuid.New(), uuid.New(), "hello")

	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(err))
	assert.False(t, store.created, "a comment on a missing video must not be written")
}
