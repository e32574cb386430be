package services

import (
	"errors"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/repositories"
	"github.com/pawgrounds/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// ToggleResult is the outcome of flipping a reaction.
type ToggleResult struct {
	Action    string           `json:"action"` // "liked" or "unliked"
	Reaction  *models.Reaction `json:"reaction,omitempty"`
	LikeCount int64            `json:"like_count"`
}

// ReactionService atomically flips a user's reaction to a post. The insert
// or delete and the like notification commit in one transaction; on any
// failure everything rolls back together.
type ReactionService struct {
	db            *gorm.DB
	posts         repositories.PostRepository
	reactions     repositories.ReactionRepository
	notifications repositories.NotificationRepository
}

// NewReactionService creates a new ReactionService
func NewReactionService(db *gorm.DB, posts repositories.PostRepository, reactions repositories.ReactionRepository, notifications repositories.NotificationRepository) *ReactionService {
	return &ReactionService{db: db, posts: posts, reactions: reactions, notifications: notifications}
}

// errToggleRaced aborts the transaction of a toggle whose insert lost a
// concurrent race; the caller folds it into a successful "liked" outcome.
var errToggleRaced = errors.New("reaction insert lost a concurrent toggle")

// Toggle flips the (postID, userID) reaction. Present: delete it. Absent:
// insert it with the given kind and notify the post author. Two concurrent
// toggles are not serialized here; the unique (post, user) index decides,
// and the loser's intent is treated as already fulfilled (best-effort
// idempotence, not linearizable).
func (s *ReactionService) Toggle(postID, userID uint, kind models.ReactionKind) (*ToggleResult, error) {
	if kind == "" {
		kind = models.ReactionLike
	}

	result := &ToggleResult{}
	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		reactions := s.reactions.WithTx(tx)
		notifications := s.notifications.WithTx(tx)

		post, err := posts.GetByID(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPostNotFound
			}
			return apperrors.Internal("failed to look up post", err)
		}

		existing, err := reactions.Get(postID, userID)
		if err != nil {
			return apperrors.Internal("failed to look up reaction", err)
		}

		if existing != nil {
			if err := reactions.Delete(postID, userID); err != nil {
				return apperrors.Internal("failed to remove reaction", err)
			}
			result.Action = "unliked"
			return nil
		}

		reaction := &models.Reaction{PostID: postID, UserID: userID, Kind: kind}
		if err := reactions.Create(reaction); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				// The winner inserted the row and its notification; roll this
				// transaction back and report the toggle as done.
				result.Action = "liked"
				return errToggleRaced
			}
			return apperrors.Internal("failed to create reaction", err)
		}
		result.Action = "liked"
		result.Reaction = reaction

		if n := models.NewLikeNotification(post.AuthorID, userID, postID); n != nil {
			if err := notifications.Create(n); err != nil {
				return apperrors.Internal("failed to create like notification", err)
			}
		}
		return nil
	})
	if err != nil && !errors.Is(err, errToggleRaced) {
		return nil, err
	}

	count, err := s.reactions.CountByPostID(postID)
	if err != nil {
		return nil, apperrors.Internal("failed to count reactions", err)
	}
	result.LikeCount = count
	return result, nil
}
