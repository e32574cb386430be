package services

import (
	"context"
	"log"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/repositories"
	"github.com/pawgrounds/backend/pkg/apperrors"
)

const (
	defaultFeedLimit = 20
	maxFeedLimit     = 50
)

// FeedPost is a post enriched with everything the feed renders.
type FeedPost struct {
	models.Post
	Author         models.UserCompact     `json:"author"`
	LikeCount      int64                  `json:"like_count"`
	CommentCount   int64                  `json:"comment_count"`
	ViewerReaction *models.ReactionKind   `json:"viewer_reaction,omitempty"`
	Media          []models.MediaItem     `json:"media,omitempty"`
	CheckIn        *models.CheckInSummary `json:"check_in,omitempty"`
}

// FeedPage is one page of feed posts. HasMore is signaled by a full page;
// the last exactly-full page costs one empty follow-up fetch.
type FeedPage struct {
	Posts   []FeedPost `json:"posts"`
	Limit   int        `json:"limit"`
	Offset  int        `json:"offset"`
	HasMore bool       `json:"has_more"`
}

// FeedAssembler composes the paginated, visibility-filtered, enriched post
// listing for a viewer.
type FeedAssembler struct {
	friendships repositories.FriendshipRepository
	posts       repositories.PostRepository
	comments    repositories.CommentRepository
	reactions   repositories.ReactionRepository
	users       repositories.UserRepository
	media       repositories.MediaRepository
	checkins    repositories.CheckInResolver
	visibility  *VisibilityResolver
}

// NewFeedAssembler creates a new FeedAssembler
func NewFeedAssembler(
	friendships repositories.FriendshipRepository,
	posts repositories.PostRepository,
	comments repositories.CommentRepository,
	reactions repositories.ReactionRepository,
	users repositories.UserRepository,
	media repositories.MediaRepository,
	checkins repositories.CheckInResolver,
	visibility *VisibilityResolver,
) *FeedAssembler {
	return &FeedAssembler{
		friendships: friendships,
		posts:       posts,
		comments:    comments,
		reactions:   reactions,
		users:       users,
		media:       media,
		checkins:    checkins,
		visibility:  visibility,
	}
}

// GetFeed returns the viewer's feed page: their own posts plus non-private
// posts of accepted friends, newest first.
func (f *FeedAssembler) GetFeed(ctx context.Context, viewerID uint, limit, offset int) (*FeedPage, error) {
	limit, offset = clampPage(limit, offset)

	friendIDs, err := f.friendships.GetFriendIDs(viewerID)
	if err != nil {
		return nil, apperrors.Internal("failed to load friend ids", err)
	}

	posts, err := f.posts.GetFeedPosts(viewerID, friendIDs, limit, offset)
	if err != nil {
		return nil, apperrors.Internal("failed to load feed posts", err)
	}

	enriched, err := f.enrich(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:   enriched,
		Limit:   limit,
		Offset:  offset,
		HasMore: len(posts) == limit,
	}, nil
}

// GetUserPosts returns one user's posts as seen by the viewer. A viewer who
// is neither the user nor an accepted friend gets an empty page, not an
// error.
func (f *FeedAssembler) GetUserPosts(ctx context.Context, targetID, viewerID uint, limit, offset int) (*FeedPage, error) {
	limit, offset = clampPage(limit, offset)

	ok, err := f.visibility.CanViewUserPosts(viewerID, targetID)
	if err != nil {
		return nil, apperrors.Internal("failed to check visibility", err)
	}
	if !ok {
		return &FeedPage{Posts: []FeedPost{}, Limit: limit, Offset: offset, HasMore: false}, nil
	}

	posts, err := f.posts.GetUserPosts(targetID, targetID == viewerID, limit, offset)
	if err != nil {
		return nil, apperrors.Internal("failed to load user posts", err)
	}

	enriched, err := f.enrich(ctx, viewerID, posts)
	if err != nil {
		return nil, err
	}

	return &FeedPage{
		Posts:   enriched,
		Limit:   limit,
		Offset:  offset,
		HasMore: len(posts) == limit,
	}, nil
}

func (f *FeedAssembler) enrich(ctx context.Context, viewerID uint, posts []models.Post) ([]FeedPost, error) {
	enriched := make([]FeedPost, len(posts))
	if len(posts) == 0 {
		return enriched, nil
	}

	postIDs := make([]uint, len(posts))
	authorIDs := make([]uint, 0, len(posts))
	seenAuthor := make(map[uint]bool, len(posts))
	for i, p := range posts {
		postIDs[i] = p.ID
		if !seenAuthor[p.AuthorID] {
			seenAuthor[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
	}

	authors, err := f.users.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to load post authors", err)
	}
	authorMap := make(map[uint]models.UserCompact, len(authors))
	for i := range authors {
		authorMap[authors[i].ID] = authors[i].ToCompact()
	}

	viewerReactions, err := f.reactions.GetUserReactions(viewerID, postIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to load viewer reactions", err)
	}

	mediaMap, err := f.media.GetByPostIDs(ctx, postIDs)
	if err != nil {
		return nil, apperrors.Internal("failed to load post media", err)
	}

	for i, p := range posts {
		fp := FeedPost{
			Post:   p,
			Author: authorMap[p.AuthorID],
			Media:  mediaMap[p.ID],
		}

		fp.LikeCount, err = f.reactions.CountByPostID(p.ID)
		if err != nil {
			return nil, apperrors.Internal("failed to count reactions", err)
		}
		fp.CommentCount, err = f.comments.CountByPostID(p.ID)
		if err != nil {
			return nil, apperrors.Internal("failed to count comments", err)
		}
		if kind, ok := viewerReactions[p.ID]; ok {
			k := kind
			fp.ViewerReaction = &k
		}

		if p.CheckInRef != nil {
			summary, err := f.checkins.GetCheckInSummary(ctx, *p.CheckInRef)
			if err != nil {
				// The check-in store is an external collaborator; a missing
				// summary degrades the post, it does not fail the feed.
				log.Printf("check-in %s unresolved for post %d: %v", *p.CheckInRef, p.ID, err)
			} else {
				fp.CheckIn = summary
			}
		}

		enriched[i] = fp
	}
	return enriched, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit < 1 || limit > maxFeedLimit {
		limit = defaultFeedLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
