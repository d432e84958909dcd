package model

import (
	"time"

	"github.com/google/uuid"
)

type Tweet struct {
	ID        uuid.UUID `json:"id"`
	OwnerID   uuid.UUID `json:"owner"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TweetListItem is one row of a user's tweet listing.
type TweetListItem struct {
	ID        uuid.UUID  `json:"id"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"createdAt"`
	Owner     PublicUser `json:"owner"`
	Likes     int        `json:"likes"`
	IsLiked   bool       `json:"isLiked"`
}

type TweetRequest struct {
	Content string `json:"content" validate:"required,min=1"`
}
