package models

import "time"

// Comment represents a comment on a post. Replies reference their parent
// comment through ParentCommentID; the stored rows are flat and the nested
// tree is materialized on read.
type Comment struct {
	ID              uint      `json:"id" gorm:"primaryKey"`
	PostID          uint      `json:"post_id" gorm:"not null;index"`
	AuthorID        uint      `json:"author_id" gorm:"not null;index"`
	Content         string    `json:"content" gorm:"not null"`
	ParentCommentID *uint     `json:"parent_comment_id,omitempty" gorm:"index"`
	CreatedAt       time.Time `json:"created_at" gorm:"index"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// CreateCommentRequest defines the request body for creating a new comment
type CreateCommentRequest struct {
	Content         string `json:"content" validate:"required,min=1,max=500"`
	ParentCommentID *uint  `json:"parentCommentId,omitempty"`
}

// UpdateCommentRequest defines the request body for updating an existing comment
type UpdateCommentRequest struct {
	Content string `json:"content" validate:"required,min=1,max=500"`
}
