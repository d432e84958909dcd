package model

import (
	"time"

	"github.com/google/uuid"
)

type Comment struct {
	ID        uuid.UUID `json:"id"`
	VideoID   uuid.UUID `json:"video"`
	OwnerID   uuid.UUID `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// CommentListItem is one row of a video's comment listing.
type CommentListItem struct {
	ID        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	Owner     PublicUser `json:"owner"`
	Likes     int        `json:"likes"`
	IsLiked   bool       `json:"isLiked"`
}

type CommentRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
