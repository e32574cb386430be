package services

import (
	"context"
	"testing"
	"time"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/pkg/apperrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreatePostDefaults(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")

	post, media, err := f.postService.Create(context.Background(), alice.ID, &models.CreatePostRequest{
		Content: "first walk of the day",
	})
	require.NoError(t, err)

	assert.Equal(t, models.PostTypeStatus, post.Type)
	assert.Equal(t, models.VisibilityPublic, post.Visibility)
	assert.Empty(t, media)
}

func TestCreateEmptyPost(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")

	_, _, err := f.postService.Create(context.Background(), alice.ID, &models.CreatePostRequest{})
	assert.ErrorIs(t, err, apperrors.ErrEmptyPost)
}

func TestCreatePostFansOutToFriends(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	carol := f.createUser(t, "carol")
	pending := f.createUser(t, "pending")
	f.makeFriends(t, alice.ID, bob.ID)
	f.makeFriends(t, alice.ID, carol.ID)
	_, err := f.friendshipService.SendRequest(pending.ID, alice.ID)
	require.NoError(t, err)

	post, _, err := f.postService.Create(context.Background(), alice.ID, &models.CreatePostRequest{
		Content: "park day",
	})
	require.NoError(t, err)

	for _, friend := range []uint{bob.ID, carol.ID} {
		var notifications []models.Notification
		require.NoError(t, f.db.Where("recipient_id = ?", friend).Find(&notifications).Error)
		require.Len(t, notifications, 1)
		assert.Equal(t, models.NotificationFriendPost, notifications[0].Type)
		require.NotNil(t, notifications[0].PostRef)
		assert.Equal(t, post.ID, *notifications[0].PostRef)
	}
	// A pending request is not a friendship yet.
	assert.Equal(t, int64(0), f.notificationCount(t, pending.ID))
}

func TestCreatePrivatePostSkipsFanout(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	f.makeFriends(t, alice.ID, bob.ID)

	_, _, err := f.postService.Create(context.Background(), alice.ID, &models.CreatePostRequest{
		Content:    "note to self",
		Visibility: string(models.VisibilityPrivate),
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), f.notificationCount(t, bob.ID))
}

func TestCreateSharedPost(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	original := f.createPost(t, alice.ID, models.VisibilityPublic, "original", time.Now())

	post, _, err := f.postService.Create(context.Background(), bob.ID, &models.CreatePostRequest{
		PostType:     string(models.PostTypeShared),
		SharedPostID: &original.ID,
	})
	require.NoError(t, err)
	require.NotNil(t, post.SharedPostRef)
	assert.Equal(t, original.ID, *post.SharedPostRef)

	missing := uint(999)
	_, _, err = f.postService.Create(context.Background(), bob.ID, &models.CreatePostRequest{
		PostType:     string(models.PostTypeShared),
		SharedPostID: &missing,
	})
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestCreatePostAttachesMedia(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")

	post, media, err := f.postService.Create(context.Background(), alice.ID, &models.CreatePostRequest{
		Content:  "look at this",
		PostType: string(models.PostTypeMedia),
		Media: []models.MediaItemInput{
			{Type: "image", URL: "https://cdn.example.com/1.jpg"},
			{Type: "video", URL: "https://cdn.example.com/2.mp4"},
		},
	})
	require.NoError(t, err)

	require.Len(t, media, 2)
	assert.Equal(t, "https://cdn.example.com/1.jpg", media[0].URL)

	stored, err := f.media.GetByPostID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Len(t, stored, 2)
}

func TestDeletePostCascades(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	post := f.createPost(t, alice.ID, models.VisibilityPublic, "doomed", time.Now())

	_, err := f.commentService.Create(post.ID, bob.ID, &models.CreateCommentRequest{Content: "bye"})
	require.NoError(t, err)
	_, err = f.reactionService.Toggle(post.ID, bob.ID, models.ReactionLike)
	require.NoError(t, err)
	_, err = f.media.AttachMedia(context.Background(), post.ID, []models.MediaItemInput{
		{Type: "image", URL: "https://cdn.example.com/doomed.jpg"},
	})
	require.NoError(t, err)

	require.NoError(t, f.postService.Delete(context.Background(), post.ID, alice.ID))

	var comments, reactions, notifications int64
	require.NoError(t, f.db.Model(&models.Comment{}).Where("post_id = ?", post.ID).Count(&comments).Error)
	require.NoError(t, f.db.Model(&models.Reaction{}).Where("post_id = ?", post.ID).Count(&reactions).Error)
	require.NoError(t, f.db.Model(&models.Notification{}).Where("post_ref = ?", post.ID).Count(&notifications).Error)
	assert.Zero(t, comments)
	assert.Zero(t, reactions)
	assert.Zero(t, notifications)

	media, err := f.media.GetByPostID(context.Background(), post.ID)
	require.NoError(t, err)
	assert.Empty(t, media)

	_, err = f.posts.GetByID(post.ID)
	assert.Error(t, err)
}

func TestDeletePostOwnerOnly(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	post := f.createPost(t, alice.ID, models.VisibilityPublic, "mine", time.Now())

	err := f.postService.Delete(context.Background(), post.ID, bob.ID)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}

func TestGetPostAppliesVisibility(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	stranger := f.createUser(t, "stranger")
	f.makeFriends(t, alice.ID, bob.ID)
	post := f.createPost(t, alice.ID, models.VisibilityFriends, "friends only", time.Now())

	got, err := f.postService.Get(post.ID, bob.ID, f.visibility)
	require.NoError(t, err)
	assert.Equal(t, post.ID, got.ID)

	// Posts the viewer may not see render as not-found, not forbidden.
	_, err = f.postService.Get(post.ID, stranger.ID, f.visibility)
	assert.ErrorIs(t, err, apperrors.ErrPostNotFound)
}
