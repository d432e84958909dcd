package model

// TargetType is the closed set of entities a reaction can attach to.
type TargetType string

const (
	TargetVideo   TargetType = "video"
	TargetComment TargetType = "comment"
	TargetTweet   TargetType = "tweet"
)

// ReactionKind distinguishes likes from dislikes. A (actor, target) pair
// holds at most one reaction of either kind; the store enforces this with a
// unique constraint.
type ReactionKind string

const (
	ReactionLike    ReactionKind = "like"
	ReactionDislike ReactionKind = "dislike"
)

// ToggleResult reports the state after a toggle operation.
type ToggleResult struct {
	Active bool `json:"active"`
}
