package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// MediaAttachment is the per-post media document stored in MongoDB. Items
// keep their insertion order, which is the display order.
type MediaAttachment struct {
	ID        primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	PostID    uint               `json:"post_id" bson:"post_id"`
	Items     []MediaItem        `json:"items" bson:"items"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// MediaItem represents a single attached media object
type MediaItem struct {
	ID              string `json:"id" bson:"id"`
	Type            string `json:"type" bson:"type"` // "image" or "video"
	URL             string `json:"url" bson:"url"`
	ThumbnailURL    string `json:"thumbnail_url,omitempty" bson:"thumbnail_url,omitempty"`
	Width           int    `json:"width,omitempty" bson:"width,omitempty"`
	Height          int    `json:"height,omitempty" bson:"height,omitempty"`
	DurationSeconds int    `json:"duration,omitempty" bson:"duration,omitempty"`
}

// MediaItemInput defines one media object in a create-post request
type MediaItemInput struct {
	Type            string `json:"type" validate:"required,oneof=image video"`
	URL             string `json:"url" validate:"required,url"`
	ThumbnailURL    string `json:"thumbnailUrl,omitempty" validate:"omitempty,url"`
	Width           int    `json:"width,omitempty" validate:"omitempty,min=0"`
	Height          int    `json:"height,omitempty" validate:"omitempty,min=0"`
	DurationSeconds int    `json:"duration,omitempty" validate:"omitempty,min=0"`
}

// CheckInSummary is the denormalized view of a park check-in resolved from
// the external check-in store.
type CheckInSummary struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	ParkID      string    `json:"park_id" bson:"park_id"`
	ParkName    string    `json:"park_name" bson:"park_name"`
	CheckedInAt time.Time `json:"checked_in_at" bson:"checked_in_at"`
}
