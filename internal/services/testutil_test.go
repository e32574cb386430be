package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/repositories"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// newTestDB opens an isolated in-memory SQLite database migrated with the
// full model set. Each test gets its own database keyed by the test name.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Friendship{},
		&models.Post{},
		&models.Comment{},
		&models.Reaction{},
		&models.Notification{},
	))
	return db
}

// socialFixture bundles the repositories and services under test over one
// shared database.
type socialFixture struct {
	db *gorm.DB

	users         repositories.UserRepository
	friendships   repositories.FriendshipRepository
	posts         repositories.PostRepository
	comments      repositories.CommentRepository
	reactions     repositories.ReactionRepository
	notifications repositories.NotificationRepository
	media         *fakeMediaRepository
	checkins      *fakeCheckInResolver

	visibility        *VisibilityResolver
	friendshipService *FriendshipService
	postService       *PostService
	reactionService   *ReactionService
	commentService    *CommentService
	feed              *FeedAssembler
}

func newSocialFixture(t *testing.T) *socialFixture {
	t.Helper()

	db := newTestDB(t)
	f := &socialFixture{
		db:            db,
		users:         repositories.NewPostgresUserRepository(db),
		friendships:   repositories.NewPostgresFriendshipRepository(db),
		posts:         repositories.NewPostgresPostRepository(db),
		comments:      repositories.NewPostgresCommentRepository(db),
		reactions:     repositories.NewPostgresReactionRepository(db),
		notifications: repositories.NewPostgresNotificationRepository(db),
		media:         newFakeMediaRepository(),
		checkins:      &fakeCheckInResolver{summaries: map[string]*models.CheckInSummary{}},
	}
	f.visibility = NewVisibilityResolver(f.friendships)
	f.friendshipService = NewFriendshipService(f.friendships, f.users)
	f.postService = NewPostService(db, f.posts, f.comments, f.reactions, f.notifications, f.friendships, f.media)
	f.reactionService = NewReactionService(db, f.posts, f.reactions, f.notifications)
	f.commentService = NewCommentService(db, f.posts, f.comments, f.notifications, f.users, DefaultReplyDepthCap)
	f.feed = NewFeedAssembler(f.friendships, f.posts, f.comments, f.reactions, f.users, f.media, f.checkins, f.visibility)
	return f
}

func (f *socialFixture) createUser(t *testing.T, name string) *models.User {
	t.Helper()
	user := &models.User{Name: name, Email: name + "@example.com", FirebaseUID: name + "-uid"}
	require.NoError(t, f.db.Create(user).Error)
	return user
}

// makeFriends inserts an accepted edge directly, bypassing the request flow.
func (f *socialFixture) makeFriends(t *testing.T, a, b uint) {
	t.Helper()
	edge := &models.Friendship{
		UserAID:       a,
		UserBID:       b,
		RequestedByID: a,
		Status:        models.FriendshipAccepted,
	}
	require.NoError(t, f.db.Create(edge).Error)
}

// createPost inserts a post with an explicit creation time so feed ordering
// is deterministic.
func (f *socialFixture) createPost(t *testing.T, authorID uint, visibility models.PostVisibility, content string, createdAt time.Time) *models.Post {
	t.Helper()
	post := &models.Post{
		AuthorID:   authorID,
		Content:    content,
		Type:       models.PostTypeStatus,
		Visibility: visibility,
		CreatedAt:  createdAt,
	}
	require.NoError(t, f.db.Create(post).Error)
	return post
}

func (f *socialFixture) notificationCount(t *testing.T, recipientID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, f.db.Model(&models.Notification{}).
		Where("recipient_id = ?", recipientID).Count(&count).Error)
	return count
}

// fakeMediaRepository is an in-memory stand-in for the MongoDB media store.
type fakeMediaRepository struct {
	attachments map[uint][]models.MediaItem
	nextID      int
}

func newFakeMediaRepository() *fakeMediaRepository {
	return &fakeMediaRepository{attachments: map[uint][]models.MediaItem{}}
}

func (f *fakeMediaRepository) AttachMedia(_ context.Context, postID uint, items []models.MediaItemInput) ([]models.MediaItem, error) {
	stored := make([]models.MediaItem, len(items))
	for i, in := range items {
		f.nextID++
		stored[i] = models.MediaItem{
			ID:   fmt.Sprintf("media-%d", f.nextID),
			Type: in.Type,
			URL:  in.URL,
		}
	}
	f.attachments[postID] = stored
	return stored, nil
}

func (f *fakeMediaRepository) GetByPostID(_ context.Context, postID uint) ([]models.MediaItem, error) {
	return f.attachments[postID], nil
}

func (f *fakeMediaRepository) GetByPostIDs(_ context.Context, postIDs []uint) (map[uint][]models.MediaItem, error) {
	result := make(map[uint][]models.MediaItem, len(postIDs))
	for _, id := range postIDs {
		if items, ok := f.attachments[id]; ok {
			result[id] = items
		}
	}
	return result, nil
}

func (f *fakeMediaRepository) DeleteByPostID(_ context.Context, postID uint) error {
	delete(f.attachments, postID)
	return nil
}

// fakeCheckInResolver is an in-memory stand-in for the check-in collection.
type fakeCheckInResolver struct {
	summaries map[string]*models.CheckInSummary
}

func (f *fakeCheckInResolver) GetCheckInSummary(_ context.Context, checkInID string) (*models.CheckInSummary, error) {
	if s, ok := f.summaries[checkInID]; ok {
		return s, nil
	}
	return nil, errors.New("check-in not found")
}
