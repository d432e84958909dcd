package model

import (
	"time"

	"github.com/google/uuid"
)

// Video is the full video row.
type Video struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	VideoURL     string    `json:"videoFile"`
	VideoKey     string    `json:"-"`
	ThumbnailURL string    `json:"thumbnail"`
	ThumbnailKey string    `json:"-"`
	Duration     float64   `json:"duration"`
	Views        int       `json:"views"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// VideoListItem is one row of a paginated feed view: the video joined with
// its owner's public fields and the requesting actor's relationship to it.
type VideoListItem struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	ThumbnailURL string     `json:"thumbnail"`
	Duration     float64    `json:"duration"`
	Views        int        `json:"views"`
	IsPublished  bool       `json:"isPublished"`
	CreatedAt    time.Time  `json:"createdAt"`
	Owner        PublicUser `json:"owner"`
	Likes        int        `json:"likes"`
	IsLiked      bool       `json:"isLiked"`
}

// VideoDetail is the single-video view with full derived fields.
type VideoDetail struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	VideoURL     string     `json:"videoFile"`
	ThumbnailURL string     `json:"thumbnail"`
	Duration     float64    `json:"duration"`
	Views        int        `json:"views"`
	IsPublished  bool       `json:"isPublished"`
	CreatedAt    time.Time  `json:"createdAt"`
	Owner        ChannelCard `json:"owner"`
	Likes        int        `json:"likes"`
	Dislikes     int        `json:"dislikes"`
	IsLiked      bool       `json:"isLiked"`
	IsDisliked   bool       `json:"isDisliked"`
}

// ChannelCard is the owner block of a video detail: public fields plus the
// viewer's subscription state.
type ChannelCard struct {
	ID               uuid.UUID `json:"id"`
	UserName         string    `json:"userName"`
	FullName         string    `json:"fullName"`
	Avatar           string    `json:"avatar"`
	SubscribersCount int       `json:"subscribersCount"`
	IsSubscribed     bool      `json:"isSubscribed"`
}

// FeedQuery carries the caller-supplied parameters of the public video feed.
type FeedQuery struct {
	Search   string
	OwnerID  uuid.UUID // uuid.Nil means no owner filter
	SortBy   string
	SortType string
	Page     int
	Limit    int
}

type UpdateVideoRequest struct {
	Title       string `json:"title" validate:"omitempty,min=1,max=80"`
	Description string `json:"description" validate:"omitempty,min=1"`
}
