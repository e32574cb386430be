package services

import (
	"context"
	"errors"
	"log"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/repositories"
	"github.com/pawgrounds/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// PostService owns post creation and owner-only deletion. Creation fans out
// friend_post notifications to accepted friends in the same transaction;
// deletion takes the post's comments, reactions and notifications with it.
type PostService struct {
	db            *gorm.DB
	posts         repositories.PostRepository
	comments      repositories.CommentRepository
	reactions     repositories.ReactionRepository
	notifications repositories.NotificationRepository
	friendships   repositories.FriendshipRepository
	media         repositories.MediaRepository
}

// NewPostService creates a new PostService
func NewPostService(db *gorm.DB, posts repositories.PostRepository, comments repositories.CommentRepository, reactions repositories.ReactionRepository, notifications repositories.NotificationRepository, friendships repositories.FriendshipRepository, media repositories.MediaRepository) *PostService {
	return &PostService{
		db:            db,
		posts:         posts,
		comments:      comments,
		reactions:     reactions,
		notifications: notifications,
		friendships:   friendships,
		media:         media,
	}
}

// Create validates and stores a new post. A post must carry content, a
// check-in reference or a shared-post reference. Non-private posts notify
// the author's accepted friends inside the creation transaction; media is
// attached to the document store after the row commits.
func (s *PostService) Create(ctx context.Context, authorID uint, req *models.CreatePostRequest) (*models.Post, []models.MediaItem, error) {
	post := &models.Post{
		AuthorID:      authorID,
		Content:       req.Content,
		Type:          models.PostTypeStatus,
		Visibility:    models.VisibilityPublic,
		CheckInRef:    req.CheckInID,
		SharedPostRef: req.SharedPostID,
	}
	if req.PostType != "" {
		post.Type = models.PostType(req.PostType)
	}
	if req.Visibility != "" {
		post.Visibility = models.PostVisibility(req.Visibility)
	}
	if !post.HasSubstance() {
		return nil, nil, apperrors.ErrEmptyPost
	}

	if post.SharedPostRef != nil {
		if _, err := s.posts.GetByID(*post.SharedPostRef); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, nil, apperrors.ErrPostNotFound
			}
			return nil, nil, apperrors.Internal("failed to look up shared post", err)
		}
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		notifications := s.notifications.WithTx(tx)
		friendships := s.friendships.WithTx(tx)

		if err := posts.Create(post); err != nil {
			return apperrors.Internal("failed to create post", err)
		}

		if post.Visibility == models.VisibilityPrivate {
			return nil
		}
		friendIDs, err := friendships.GetFriendIDs(authorID)
		if err != nil {
			return apperrors.Internal("failed to load friend ids", err)
		}
		for _, friendID := range friendIDs {
			if n := models.NewFriendPostNotification(friendID, authorID, post.ID); n != nil {
				if err := notifications.Create(n); err != nil {
					return apperrors.Internal("failed to create friend post notification", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, nil, err
	}

	var media []models.MediaItem
	if len(req.Media) > 0 {
		media, err = s.media.AttachMedia(ctx, post.ID, req.Media)
		if err != nil {
			// The post row is committed; media lives in another store and
			// cannot share its transaction. Surface the attach failure.
			return nil, nil, apperrors.Internal("failed to attach media", err)
		}
	}
	return post, media, nil
}

// Delete removes a post and its dependents. Only the author may delete;
// anyone else gets not-found.
func (s *PostService) Delete(ctx context.Context, postID, actorID uint) error {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrPostNotFound
		}
		return apperrors.Internal("failed to look up post", err)
	}
	if post.AuthorID != actorID {
		return apperrors.ErrPostNotFound
	}

	err = s.db.Transaction(func(tx *gorm.DB) error {
		if err := s.comments.WithTx(tx).DeleteByPostID(postID); err != nil {
			return apperrors.Internal("failed to delete post comments", err)
		}
		if err := s.reactions.WithTx(tx).DeleteByPostID(postID); err != nil {
			return apperrors.Internal("failed to delete post reactions", err)
		}
		if err := s.notifications.WithTx(tx).DeleteByPostRef(postID); err != nil {
			return apperrors.Internal("failed to delete post notifications", err)
		}
		if err := s.posts.WithTx(tx).Delete(postID); err != nil {
			return apperrors.Internal("failed to delete post", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if err := s.media.DeleteByPostID(ctx, postID); err != nil {
		// Orphaned media documents are harmless; log and move on.
		log.Printf("failed to delete media for post %d: %v", postID, err)
	}
	return nil
}

// Get returns a post by ID as seen by the viewer, applying the visibility
// rule. Posts the viewer may not see render as not-found.
func (s *PostService) Get(postID, viewerID uint, visibility *VisibilityResolver) (*models.Post, error) {
	post, err := s.posts.GetByID(postID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.Internal("failed to look up post", err)
	}
	ok, err := visibility.CanView(viewerID, post)
	if err != nil {
		return nil, apperrors.Internal("failed to check visibility", err)
	}
	if !ok {
		return nil, apperrors.ErrPostNotFound
	}
	return post, nil
}
