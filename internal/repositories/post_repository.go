package repositories

import (
	"github.com/pawgrounds/backend/internal/models"
	"gorm.io/gorm"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	WithTx(tx *gorm.DB) PostRepository
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetFeedPosts(viewerID uint, friendIDs []uint, limit, offset int) ([]models.Post, error)
	GetUserPosts(authorID uint, includePrivate bool, limit, offset int) ([]models.Post, error)
	Delete(id uint) error
}

// PostgresPostRepository implements PostRepository for PostgreSQL
type PostgresPostRepository struct {
	db *gorm.DB
}

// NewPostgresPostRepository creates a new PostgresPostRepository
func NewPostgresPostRepository(db *gorm.DB) *PostgresPostRepository {
	return &PostgresPostRepository{db: db}
}

// WithTx returns the repository bound to the given transaction
func (r *PostgresPostRepository) WithTx(tx *gorm.DB) PostRepository {
	return &PostgresPostRepository{db: tx}
}

// Create inserts a new post
func (r *PostgresPostRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post by ID
func (r *PostgresPostRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	if err := r.db.First(&post, id).Error; err != nil {
		return nil, err
	}
	return &post, nil
}

// GetFeedPosts returns the viewer's feed candidates, newest first: every
// post of their own plus the non-private posts of their accepted friends.
func (r *PostgresPostRepository) GetFeedPosts(viewerID uint, friendIDs []uint, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.Model(&models.Post{})
	if len(friendIDs) > 0 {
		q = q.Where("author_id = ? OR (author_id IN ? AND visibility IN ?)",
			viewerID, friendIDs, []models.PostVisibility{models.VisibilityPublic, models.VisibilityFriends})
	} else {
		q = q.Where("author_id = ?", viewerID)
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// GetUserPosts returns one author's posts, newest first. Private posts are
// included only when the viewer is the author.
func (r *PostgresPostRepository) GetUserPosts(authorID uint, includePrivate bool, limit, offset int) ([]models.Post, error) {
	var posts []models.Post
	q := r.db.Where("author_id = ?", authorID)
	if !includePrivate {
		q = q.Where("visibility IN ?", []models.PostVisibility{models.VisibilityPublic, models.VisibilityFriends})
	}
	err := q.Order("created_at DESC").Limit(limit).Offset(offset).Find(&posts).Error
	return posts, err
}

// Delete removes a post by ID
func (r *PostgresPostRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}
