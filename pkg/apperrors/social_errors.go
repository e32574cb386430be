package apperrors

var (
	// Friendship graph
	ErrSelfFriendRequest     = SelfAction("cannot send a friend request to yourself")
	ErrFriendshipExists      = Conflict("a friendship or pending request already exists between these users")
	ErrFriendRequestNotFound = NotFound("friend request not found")
	ErrFriendshipNotFound    = NotFound("friendship not found")

	// Posts, comments, reactions
	ErrPostNotFound    = NotFound("post not found")
	ErrCommentNotFound = NotFound("comment not found")
	ErrEmptyPost       = Validation("a post must carry content, a check-in or a shared post", []FieldError{
		{Field: "content", Reason: "one of content, checkInId or sharedPostId is required"},
		{Field: "checkInId", Reason: "one of content, checkInId or sharedPostId is required"},
		{Field: "sharedPostId", Reason: "one of content, checkInId or sharedPostId is required"},
	})

	// Notifications
	ErrNotificationNotFound = NotFound("notification not found")

	// Users
	ErrUserNotFound = NotFound("user not found")
)
