package model

import "time"

// SubscriberListItem is one row of a channel's subscriber listing: the
// subscriber's public fields plus their own channel standing.
type SubscriberListItem struct {
	Subscriber       PublicUser `json:"subscriber"`
	SubscribersCount int        `json:"subscribersCount"`
	IsSubscribed     bool       `json:"isSubscribed"`
	SubscribedAt     time.Time  `json:"subscribedAt"`
}

// SubscribedChannelItem is one row of the channels a user subscribes to,
// with the channel's most recent published video if any.
type SubscribedChannelItem struct {
	Channel     PublicUser     `json:"channel"`
	LatestVideo *VideoListItem `json:"latestVideo,omitempty"`
}
