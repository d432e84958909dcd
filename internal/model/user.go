package model

import (
	"time"

	"github.com/google/uuid"
)

// User is the full user row. PasswordHash and RefreshToken are never
// serialized.
type User struct {
	ID           uuid.UUID `json:"id"`
	UserName     string    `json:"userName"`
	Email        string    `json:"email"`
	FullName     string    `json:"fullName"`
	PasswordHash string    `json:"-"`
	AvatarURL    string    `json:"avatar"`
	AvatarKey    string    `json:"-"`
	CoverURL     string    `json:"coverImg,omitempty"`
	CoverKey     string    `json:"-"`
	RefreshToken *string   `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// PublicUser is the minimal owner/channel projection joined into read views.
// Full user rows never leak through a join.
type PublicUser struct {
	ID       uuid.UUID `json:"id"`
	UserName string    `json:"userName"`
	FullName string    `json:"fullName"`
	Avatar   string    `json:"avatar"`
}

// ChannelProfile is the denormalized channel page for a user.
type ChannelProfile struct {
	ID                   uuid.UUID `json:"id"`
	UserName             string    `json:"userName"`
	FullName             string    `json:"fullName"`
	Avatar               string    `json:"avatar"`
	CoverImg             string    `json:"coverImg,omitempty"`
	SubscribersCount     int       `json:"subscribersCount"`
	ChannelsSubscribedTo int       `json:"channelsSubscribedTo"`
	IsSubscribed         bool      `json:"isSubscribed"`
}

// WatchHistoryEntry is one row of a user's watch history view.
type WatchHistoryEntry struct {
	Video     VideoListItem `json:"video"`
	WatchedAt time.Time     `json:"watchedAt"`
}

type LoginRequest struct {
	UserName string `json:"userName"`
	Email    string `json:"email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	User         *User  `json:"user"`
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"oldPassword" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=6"`
}

type UpdateDetailsRequest struct {
	FullName string `json:"fullName" validate:"omitempty,min=1"`
	Email    string `json:"email" validate:"omitempty,email"`
}
