package models

import (
	"time"

	"gorm.io/gorm"
)

// FriendshipStatus represents the lifecycle state of a friendship edge.
type FriendshipStatus string

const (
	FriendshipPending  FriendshipStatus = "pending"
	FriendshipAccepted FriendshipStatus = "accepted"
	// FriendshipDeclined exists for historic rows only: declines delete the
	// row so either side can re-request later.
	FriendshipDeclined FriendshipStatus = "declined"
)

// Friendship is an undirected edge between two users. The pair is stored
// canonically (UserAID < UserBID) so lookups and the uniqueness constraint
// are single-direction; RequestedByID disambiguates direction while pending.
type Friendship struct {
	ID            uint             `json:"id" gorm:"primaryKey"`
	UserAID       uint             `json:"user_a_id" gorm:"not null;index;uniqueIndex:idx_friendship_pair"`
	UserBID       uint             `json:"user_b_id" gorm:"not null;index;uniqueIndex:idx_friendship_pair"`
	RequestedByID uint             `json:"requested_by_id" gorm:"not null"`
	Status        FriendshipStatus `json:"status" gorm:"type:varchar(20);default:'pending'"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// BeforeCreate enforces the canonical pair ordering.
func (f *Friendship) BeforeCreate(_ *gorm.DB) error {
	f.UserAID, f.UserBID = CanonicalPair(f.UserAID, f.UserBID)
	return nil
}

// CanonicalPair returns the two user IDs with the smaller one first.
func CanonicalPair(a, b uint) (uint, uint) {
	if a > b {
		return b, a
	}
	return a, b
}

// Involves reports whether userID is one of the edge's two sides.
func (f *Friendship) Involves(userID uint) bool {
	return f.UserAID == userID || f.UserBID == userID
}

// AddresseeID returns the side that did not send the request.
func (f *Friendship) AddresseeID() uint {
	if f.RequestedByID == f.UserAID {
		return f.UserBID
	}
	return f.UserAID
}

// OtherSide returns the user on the opposite side of the edge from userID.
func (f *Friendship) OtherSide(userID uint) uint {
	if f.UserAID == userID {
		return f.UserBID
	}
	return f.UserAID
}

// SendFriendRequestInput defines the request body for sending a friend request
type SendFriendRequestInput struct {
	UserID uint `json:"userId" validate:"required"`
}
