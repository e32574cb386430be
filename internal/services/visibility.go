package services

import (
	"errors"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/repositories"
	"gorm.io/gorm"
)

// VisibilityResolver decides whether a viewer may see a post, given the
// post's visibility tier and the friendship graph.
type VisibilityResolver struct {
	friendships repositories.FriendshipRepository
}

// NewVisibilityResolver creates a new VisibilityResolver
func NewVisibilityResolver(friendships repositories.FriendshipRepository) *VisibilityResolver {
	return &VisibilityResolver{friendships: friendships}
}

// CanView reports whether viewerID may see the post: authors see their own
// posts regardless of tier, public posts are visible to everyone, friends
// posts require an accepted edge, and private posts are owner-only.
func (v *VisibilityResolver) CanView(viewerID uint, post *models.Post) (bool, error) {
	if post.AuthorID == viewerID {
		return true, nil
	}
	switch post.Visibility {
	case models.VisibilityPublic:
		return true, nil
	case models.VisibilityFriends:
		return v.areFriends(viewerID, post.AuthorID)
	default:
		return false, nil
	}
}

// CanViewUserPosts gates the per-user post listing: only the user themselves
// and their accepted friends get anything back.
func (v *VisibilityResolver) CanViewUserPosts(viewerID, targetID uint) (bool, error) {
	if viewerID == targetID {
		return true, nil
	}
	return v.areFriends(viewerID, targetID)
}

func (v *VisibilityResolver) areFriends(a, b uint) (bool, error) {
	edge, err := v.friendships.GetByPair(a, b)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return edge.Status == models.FriendshipAccepted, nil
}
