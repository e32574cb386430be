package services

import (
	"errors"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/repositories"
	"github.com/pawgrounds/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// CommentThread is a post's rendered comment tree plus the stored total,
// which counts every row including ones below the render cutoff.
type CommentThread struct {
	Comments []*CommentNode `json:"comments"`
	Total    int64          `json:"total"`
}

// CommentService owns comment creation (with its notification fanout, in
// one transaction), the thread view, and owner-only edit/delete with
// descendant cascade.
type CommentService struct {
	db            *gorm.DB
	posts         repositories.PostRepository
	comments      repositories.CommentRepository
	notifications repositories.NotificationRepository
	users         repositories.UserRepository
	depthCap      int
}

// NewCommentService creates a new CommentService
func NewCommentService(db *gorm.DB, posts repositories.PostRepository, comments repositories.CommentRepository, notifications repositories.NotificationRepository, users repositories.UserRepository, depthCap int) *CommentService {
	if depthCap <= 0 {
		depthCap = DefaultReplyDepthCap
	}
	return &CommentService{
		db:            db,
		posts:         posts,
		comments:      comments,
		notifications: notifications,
		users:         users,
		depthCap:      depthCap,
	}
}

// Create adds a comment to a post and fans out its notifications inside the
// same transaction: one to the post author, and for a reply one to the
// parent comment's author when that is a third person. Visibility is not
// re-checked against the commenter; the feed is the only discovery path.
func (s *CommentService) Create(postID, authorID uint, req *models.CreateCommentRequest) (*models.Comment, error) {
	var created *models.Comment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		posts := s.posts.WithTx(tx)
		comments := s.comments.WithTx(tx)
		notifications := s.notifications.WithTx(tx)

		post, err := posts.GetByID(postID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrPostNotFound
			}
			return apperrors.Internal("failed to look up post", err)
		}

		var parent *models.Comment
		if req.ParentCommentID != nil {
			parent, err = comments.GetByID(*req.ParentCommentID)
			if err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return apperrors.ErrCommentNotFound
				}
				return apperrors.Internal("failed to look up parent comment", err)
			}
			if parent.PostID != postID {
				return apperrors.ErrCommentNotFound
			}
		}

		comment := &models.Comment{
			PostID:          postID,
			AuthorID:        authorID,
			Content:         req.Content,
			ParentCommentID: req.ParentCommentID,
		}
		if err := comments.Create(comment); err != nil {
			return apperrors.Internal("failed to create comment", err)
		}
		created = comment

		if n := models.NewCommentNotification(post.AuthorID, authorID, postID, comment.ID); n != nil {
			if err := notifications.Create(n); err != nil {
				return apperrors.Internal("failed to create comment notification", err)
			}
		}
		if parent != nil && parent.AuthorID != authorID && parent.AuthorID != post.AuthorID {
			if n := models.NewCommentNotification(parent.AuthorID, authorID, postID, comment.ID); n != nil {
				if err := notifications.Create(n); err != nil {
					return apperrors.Internal("failed to create reply notification", err)
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update edits a comment's content. Only the owner may edit; anyone else
// gets not-found.
func (s *CommentService) Update(commentID, actorID uint, req *models.UpdateCommentRequest) (*models.Comment, error) {
	comment, err := s.ownedComment(commentID, actorID)
	if err != nil {
		return nil, err
	}
	comment.Content = req.Content
	if err := s.comments.Update(comment); err != nil {
		return nil, apperrors.Internal("failed to update comment", err)
	}
	return comment, nil
}

// Delete removes a comment and every descendant reply in one transaction.
// Only the owner may delete; anyone else gets not-found.
func (s *CommentService) Delete(commentID, actorID uint) error {
	comment, err := s.ownedComment(commentID, actorID)
	if err != nil {
		return err
	}

	return s.db.Transaction(func(tx *gorm.DB) error {
		comments := s.comments.WithTx(tx)

		rows, err := comments.GetByPostID(comment.PostID)
		if err != nil {
			return apperrors.Internal("failed to load post comments", err)
		}

		// Collect the subtree rooted at the comment through the parent index.
		children := make(map[uint][]uint, len(rows))
		for _, c := range rows {
			if c.ParentCommentID != nil {
				children[*c.ParentCommentID] = append(children[*c.ParentCommentID], c.ID)
			}
		}
		doomed := []uint{comment.ID}
		for i := 0; i < len(doomed); i++ {
			doomed = append(doomed, children[doomed[i]]...)
		}

		if err := comments.DeleteByIDs(doomed); err != nil {
			return apperrors.Internal("failed to delete comments", err)
		}
		return nil
	})
}

// Thread returns the post's rendered comment tree, authors attached, with
// limit/offset applied to the root comments.
func (s *CommentService) Thread(postID uint, limit, offset int) (*CommentThread, error) {
	if _, err := s.posts.GetByID(postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrPostNotFound
		}
		return nil, apperrors.Internal("failed to look up post", err)
	}

	rows, err := s.comments.GetByPostID(postID)
	if err != nil {
		return nil, apperrors.Internal("failed to load comments", err)
	}

	roots := BuildCommentTree(rows, s.depthCap)
	if offset < 0 {
		offset = 0
	}
	if offset > len(roots) {
		offset = len(roots)
	}
	roots = roots[offset:]
	if limit > 0 && limit < len(roots) {
		roots = roots[:limit]
	}

	if err := s.attachAuthors(roots, rows); err != nil {
		return nil, err
	}

	return &CommentThread{Comments: roots, Total: int64(len(rows))}, nil
}

func (s *CommentService) attachAuthors(roots []*CommentNode, rows []models.Comment) error {
	idSet := make(map[uint]bool, len(rows))
	ids := make([]uint, 0, len(rows))
	for _, c := range rows {
		if !idSet[c.AuthorID] {
			idSet[c.AuthorID] = true
			ids = append(ids, c.AuthorID)
		}
	}
	users, err := s.users.GetUsersByIDs(ids)
	if err != nil {
		return apperrors.Internal("failed to load comment authors", err)
	}
	byID := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		byID[users[i].ID] = users[i].ToCompact()
	}

	stack := append([]*CommentNode{}, roots...)
	for len(stack) > 0 {
		node := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		node.Author = byID[node.AuthorID]
		stack = append(stack, node.Replies...)
	}
	return nil
}

func (s *CommentService) ownedComment(commentID, actorID uint) (*models.Comment, error) {
	comment, err := s.comments.GetByID(commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrCommentNotFound
		}
		return nil, apperrors.Internal("failed to look up comment", err)
	}
	if comment.AuthorID != actorID {
		return nil, apperrors.ErrCommentNotFound
	}
	return comment, nil
}
