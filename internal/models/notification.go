package models

import "time"

// NotificationType discriminates what a notification is about and which
// references it carries.
type NotificationType string

const (
	NotificationLike          NotificationType = "like"
	NotificationComment       NotificationType = "comment"
	NotificationMention       NotificationType = "mention"
	NotificationFriendCheckin NotificationType = "friend_checkin"
	NotificationFriendPost    NotificationType = "friend_post"
)

// Notification represents a user notification. Type is the discriminant;
// the per-type constructors below populate exactly the refs that type needs
// and enforce recipient != actor by returning nil instead of a row.
type Notification struct {
	ID          uint             `json:"id" gorm:"primaryKey"`
	Type        NotificationType `json:"type" gorm:"size:30;index"`
	ActorID     uint             `json:"actor_id" gorm:"not null;index"`
	RecipientID uint             `json:"recipient_id" gorm:"not null;index"`
	PostRef     *uint            `json:"post_id,omitempty"`
	CommentRef  *uint            `json:"comment_id,omitempty"`
	IsRead      bool             `json:"is_read" gorm:"default:false;index"`
	CreatedAt   time.Time        `json:"created_at" gorm:"index"`
}

// NewLikeNotification notifies a post author that someone reacted to their
// post. Returns nil when the actor is the author (self-action suppression).
func NewLikeNotification(recipientID, actorID, postID uint) *Notification {
	if recipientID == actorID {
		return nil
	}
	return &Notification{
		Type:        NotificationLike,
		ActorID:     actorID,
		RecipientID: recipientID,
		PostRef:     &postID,
	}
}

// NewCommentNotification notifies a post or parent-comment author about a
// new comment. Returns nil on self-action.
func NewCommentNotification(recipientID, actorID, postID, commentID uint) *Notification {
	if recipientID == actorID {
		return nil
	}
	return &Notification{
		Type:        NotificationComment,
		ActorID:     actorID,
		RecipientID: recipientID,
		PostRef:     &postID,
		CommentRef:  &commentID,
	}
}

// NewMentionNotification notifies a user they were mentioned. Returns nil on
// self-mention.
func NewMentionNotification(recipientID, actorID, postID uint, commentID *uint) *Notification {
	if recipientID == actorID {
		return nil
	}
	return &Notification{
		Type:        NotificationMention,
		ActorID:     actorID,
		RecipientID: recipientID,
		PostRef:     &postID,
		CommentRef:  commentID,
	}
}

// NewFriendPostNotification notifies a friend that the actor posted.
func NewFriendPostNotification(recipientID, actorID, postID uint) *Notification {
	if recipientID == actorID {
		return nil
	}
	return &Notification{
		Type:        NotificationFriendPost,
		ActorID:     actorID,
		RecipientID: recipientID,
		PostRef:     &postID,
	}
}

// NewFriendCheckinNotification notifies a friend that the actor checked in
// at a park. The post ref is set when the check-in surfaced as a post.
func NewFriendCheckinNotification(recipientID, actorID uint, postID *uint) *Notification {
	if recipientID == actorID {
		return nil
	}
	return &Notification{
		Type:        NotificationFriendCheckin,
		ActorID:     actorID,
		RecipientID: recipientID,
		PostRef:     postID,
	}
}

// LikePayload is the reference set a like notification carries.
type LikePayload struct {
	PostID uint `json:"post_id"`
}

// CommentPayload is the reference set a comment or mention notification carries.
type CommentPayload struct {
	PostID    uint  `json:"post_id"`
	CommentID *uint `json:"comment_id,omitempty"`
}

// FriendActivityPayload is the reference set friend_post / friend_checkin carry.
type FriendActivityPayload struct {
	PostID *uint `json:"post_id,omitempty"`
}

// Payload decodes the notification's references through the type
// discriminant rather than leaving callers to probe optional fields.
func (n *Notification) Payload() interface{} {
	switch n.Type {
	case NotificationLike:
		if n.PostRef != nil {
			return LikePayload{PostID: *n.PostRef}
		}
		return LikePayload{}
	case NotificationComment, NotificationMention:
		p := CommentPayload{CommentID: n.CommentRef}
		if n.PostRef != nil {
			p.PostID = *n.PostRef
		}
		return p
	case NotificationFriendPost, NotificationFriendCheckin:
		return FriendActivityPayload{PostID: n.PostRef}
	default:
		return nil
	}
}
