package models

import "time"

// ReactionKind is the flavor of a reaction. Presence of the row is what
// "liked" means; the kind only colors it.
type ReactionKind string

const (
	ReactionLike  ReactionKind = "like"
	ReactionLove  ReactionKind = "love"
	ReactionLaugh ReactionKind = "laugh"
	ReactionWow   ReactionKind = "wow"
)

// Reaction represents a single per-(post,user) reaction. The unique index is
// the concurrency boundary for the toggle: a losing concurrent insert fails
// on it rather than producing a second row.
type Reaction struct {
	ID        uint         `json:"id" gorm:"primaryKey"`
	PostID    uint         `json:"post_id" gorm:"not null;index;uniqueIndex:idx_post_user_reaction"`
	UserID    uint         `json:"user_id" gorm:"not null;index;uniqueIndex:idx_post_user_reaction"`
	Kind      ReactionKind `json:"kind" gorm:"type:varchar(10);default:'like'"`
	CreatedAt time.Time    `json:"created_at"`
}

// ToggleReactionRequest defines the request body for toggling a reaction
type ToggleReactionRequest struct {
	ReactionType string `json:"reactionType,omitempty" validate:"omitempty,oneof=like love laugh wow"`
}
