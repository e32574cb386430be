package models

import "time"

// PostType classifies what a post carries.
type PostType string

const (
	PostTypeStatus  PostType = "status"
	PostTypeCheckin PostType = "checkin"
	PostTypeMedia   PostType = "media"
	PostTypeShared  PostType = "shared"
)

// PostVisibility is the access tier controlling which viewers may see a post.
type PostVisibility string

const (
	VisibilityPublic  PostVisibility = "public"
	VisibilityFriends PostVisibility = "friends"
	VisibilityPrivate PostVisibility = "private"
)

// Post represents a post on the community feed. Posts live in PostgreSQL so
// that reactions, comments and their notification fanout commit in one
// transaction with the rows they reference.
type Post struct {
	ID            uint           `json:"id" gorm:"primaryKey"`
	AuthorID      uint           `json:"author_id" gorm:"not null;index"`
	Content       string         `json:"content,omitempty" gorm:"type:text"`
	Type          PostType       `json:"post_type" gorm:"type:varchar(20);default:'status'"`
	Visibility    PostVisibility `json:"visibility" gorm:"type:varchar(20);default:'public';index"`
	CheckInRef    *string        `json:"check_in_id,omitempty"` // reference into the external check-in store
	SharedPostRef *uint          `json:"shared_post_id,omitempty"`
	CreatedAt     time.Time      `json:"created_at" gorm:"index"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// HasSubstance reports whether the post carries anything at all: content,
// a check-in reference or a shared post reference.
func (p *Post) HasSubstance() bool {
	return p.Content != "" || p.CheckInRef != nil || p.SharedPostRef != nil
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content      string           `json:"content,omitempty" validate:"omitempty,max=2000"`
	PostType     string           `json:"postType,omitempty" validate:"omitempty,oneof=status checkin media shared"`
	Visibility   string           `json:"visibility,omitempty" validate:"omitempty,oneof=public friends private"`
	CheckInID    *string          `json:"checkInId,omitempty"`
	SharedPostID *uint            `json:"sharedPostId,omitempty"`
	Media        []MediaItemInput `json:"media,omitempty" validate:"omitempty,dive"`
}
