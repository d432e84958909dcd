package model

import (
	"time"

	"github.com/google/uuid"
)

type Playlist struct {
	ID          uuid.UUID `json:"id"`
	OwnerID     uuid.UUID `json:"owner"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

// PlaylistSummary is one row of a user's playlist listing.
type PlaylistSummary struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	TotalVideos int       `json:"totalVideos"`
	TotalViews  int       `json:"totalViews"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PlaylistDetail is the full playlist view with member videos in display
// order.
type PlaylistDetail struct {
	ID          uuid.UUID       `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Owner       PublicUser      `json:"owner"`
	Videos      []VideoListItem `json:"videos"`
	TotalVideos int             `json:"totalVideos"`
	TotalViews  int             `json:"totalViews"`
	CreatedAt   time.Time       `json:"createdAt"`
}

type CreatePlaylistRequest struct {
	Name        string `json:"name" validate:"required,min=1"`
	Description string `json:"description"`
}

type UpdatePlaylistRequest struct {
	Name        string `json:"name" validate:"omitempty,min=1"`
	Description string `json:"description"`
}
