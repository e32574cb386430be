package services

import (
	"context"
	"testing"
	"time"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetFeedScopesToSelfAndFriends(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	stranger := f.createUser(t, "stranger")
	f.makeFriends(t, alice.ID, bob.ID)

	base := time.Now().Add(-time.Hour)
	own := f.createPost(t, alice.ID, models.VisibilityPrivate, "own private", base)
	friendPublic := f.createPost(t, bob.ID, models.VisibilityPublic, "friend public", base.Add(time.Minute))
	friendOnly := f.createPost(t, bob.ID, models.VisibilityFriends, "friend only", base.Add(2*time.Minute))
	f.createPost(t, bob.ID, models.VisibilityPrivate, "friend private", base.Add(3*time.Minute))
	f.createPost(t, stranger.ID, models.VisibilityPublic, "stranger public", base.Add(4*time.Minute))

	page, err := f.feed.GetFeed(context.Background(), alice.ID, 20, 0)
	require.NoError(t, err)

	require.Len(t, page.Posts, 3)
	// Newest first.
	assert.Equal(t, friendOnly.ID, page.Posts[0].Post.ID)
	assert.Equal(t, friendPublic.ID, page.Posts[1].Post.ID)
	assert.Equal(t, own.ID, page.Posts[2].Post.ID)
	assert.False(t, page.HasMore)
}

func TestGetFeedWithNoFriends(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")

	f.createPost(t, alice.ID, models.VisibilityPublic, "mine", time.Now())
	f.createPost(t, bob.ID, models.VisibilityPublic, "not connected", time.Now())

	page, err := f.feed.GetFeed(context.Background(), alice.ID, 20, 0)
	require.NoError(t, err)

	require.Len(t, page.Posts, 1)
	assert.Equal(t, alice.ID, page.Posts[0].Post.AuthorID)
}

func TestGetFeedPagination(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")

	base := time.Now().Add(-time.Hour)
	for i := 0; i < 5; i++ {
		f.createPost(t, alice.ID, models.VisibilityPublic, "post", base.Add(time.Duration(i)*time.Minute))
	}

	page, err := f.feed.GetFeed(context.Background(), alice.ID, 2, 0)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
	assert.True(t, page.HasMore)
	assert.Equal(t, 2, page.Limit)

	page, err = f.feed.GetFeed(context.Background(), alice.ID, 2, 4)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.False(t, page.HasMore)
}

func TestGetFeedClampsPageParams(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")

	page, err := f.feed.GetFeed(context.Background(), alice.ID, -5, -10)
	require.NoError(t, err)
	assert.Equal(t, defaultFeedLimit, page.Limit)
	assert.Equal(t, 0, page.Offset)

	page, err = f.feed.GetFeed(context.Background(), alice.ID, maxFeedLimit+1, 0)
	require.NoError(t, err)
	assert.Equal(t, defaultFeedLimit, page.Limit)
}

func TestGetFeedEnrichment(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	f.makeFriends(t, alice.ID, bob.ID)
	post := f.createPost(t, bob.ID, models.VisibilityPublic, "enriched", time.Now())

	_, err := f.reactionService.Toggle(post.ID, alice.ID, models.ReactionLove)
	require.NoError(t, err)
	_, err = f.commentService.Create(post.ID, alice.ID, &models.CreateCommentRequest{Content: "woof"})
	require.NoError(t, err)
	_, err = f.media.AttachMedia(context.Background(), post.ID, []models.MediaItemInput{
		{Type: "image", URL: "https://cdn.example.com/dog.jpg"},
	})
	require.NoError(t, err)

	page, err := f.feed.GetFeed(context.Background(), alice.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)

	fp := page.Posts[0]
	assert.Equal(t, "bob", fp.Author.Name)
	assert.Equal(t, int64(1), fp.LikeCount)
	assert.Equal(t, int64(1), fp.CommentCount)
	require.NotNil(t, fp.ViewerReaction)
	assert.Equal(t, models.ReactionLove, *fp.ViewerReaction)
	require.Len(t, fp.Media, 1)
	assert.Equal(t, "https://cdn.example.com/dog.jpg", fp.Media[0].URL)
}

func TestGetFeedResolvesCheckIns(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")

	checkInID := "65a1b2c3d4e5f60718293a4b"
	f.checkins.summaries[checkInID] = &models.CheckInSummary{
		ID:       checkInID,
		ParkID:   "park-7",
		ParkName: "Riverside Dog Run",
	}
	post := &models.Post{
		AuthorID:   alice.ID,
		Type:       models.PostTypeCheckin,
		Visibility: models.VisibilityPublic,
		CheckInRef: &checkInID,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, f.db.Create(post).Error)

	page, err := f.feed.GetFeed(context.Background(), alice.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	require.NotNil(t, page.Posts[0].CheckIn)
	assert.Equal(t, "Riverside Dog Run", page.Posts[0].CheckIn.ParkName)
}

func TestGetFeedDegradesOnUnresolvedCheckIn(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")

	ghost := "000000000000000000000000"
	post := &models.Post{
		AuthorID:   alice.ID,
		Type:       models.PostTypeCheckin,
		Visibility: models.VisibilityPublic,
		CheckInRef: &ghost,
		CreatedAt:  time.Now(),
	}
	require.NoError(t, f.db.Create(post).Error)

	// An unresolvable check-in degrades the post, it does not fail the feed.
	page, err := f.feed.GetFeed(context.Background(), alice.ID, 20, 0)
	require.NoError(t, err)
	require.Len(t, page.Posts, 1)
	assert.Nil(t, page.Posts[0].CheckIn)
}

func TestGetUserPostsAsStranger(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	stranger := f.createUser(t, "stranger")
	f.createPost(t, alice.ID, models.VisibilityPublic, "hello", time.Now())

	// A stranger gets an empty page, not an error.
	page, err := f.feed.GetUserPosts(context.Background(), alice.ID, stranger.ID, 20, 0)
	require.NoError(t, err)
	assert.Empty(t, page.Posts)
	assert.False(t, page.HasMore)
}

func TestGetUserPostsAsFriend(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")
	bob := f.createUser(t, "bob")
	f.makeFriends(t, alice.ID, bob.ID)

	base := time.Now().Add(-time.Hour)
	f.createPost(t, alice.ID, models.VisibilityPublic, "public", base)
	f.createPost(t, alice.ID, models.VisibilityFriends, "friends", base.Add(time.Minute))
	f.createPost(t, alice.ID, models.VisibilityPrivate, "private", base.Add(2*time.Minute))

	page, err := f.feed.GetUserPosts(context.Background(), alice.ID, bob.ID, 20, 0)
	require.NoError(t, err)
	// Friends see everything except private.
	require.Len(t, page.Posts, 2)
	for _, p := range page.Posts {
		assert.NotEqual(t, models.VisibilityPrivate, p.Post.Visibility)
	}
}

func TestGetUserPostsAsSelfIncludesPrivate(t *testing.T) {
	f := newSocialFixture(t)
	alice := f.createUser(t, "alice")

	f.createPost(t, alice.ID, models.VisibilityPublic, "public", time.Now())
	f.createPost(t, alice.ID, models.VisibilityPrivate, "private", time.Now())

	page, err := f.feed.GetUserPosts(context.Background(), alice.ID, alice.ID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, page.Posts, 2)
}
