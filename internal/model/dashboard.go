package model

import (
	"time"

	"github.com/google/uuid"
)

// ChannelStats aggregates the dashboard numbers for a channel owner.
type ChannelStats struct {
	TotalViews       int `json:"totalViews"`
	TotalSubscribers int `json:"totalSubscribers"`
	TotalVideos      int `json:"totalVideos"`
	TotalLikes       int `json:"totalLikes"`
}

// DashboardVideo is one row of the owner's own video listing, publish state
// included.
type DashboardVideo struct {
	ID           uuid.UUID `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description"`
	ThumbnailURL string    `json:"thumbnail"`
	VideoURL     string    `json:"videoFile"`
	Views        int       `json:"views"`
	LikeCount    int       `json:"likeCount"`
	IsPublished  bool      `json:"isPublished"`
	CreatedAt    time.Time `json:"createdAt"`
}
