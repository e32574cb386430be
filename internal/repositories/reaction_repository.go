package repositories

import (
	"errors"

	"github.com/pawgrounds/backend/internal/models"
	"gorm.io/gorm"
)

// ReactionRepository defines the interface for reaction data operations
type ReactionRepository interface {
	WithTx(tx *gorm.DB) ReactionRepository
	Create(reaction *models.Reaction) error
	Get(postID, userID uint) (*models.Reaction, error)
	Delete(postID, userID uint) error
	CountByPostID(postID uint) (int64, error)
	GetUserReactions(userID uint, postIDs []uint) (map[uint]models.ReactionKind, error)
	DeleteByPostID(postID uint) error
}

// PostgresReactionRepository implements ReactionRepository for PostgreSQL
type PostgresReactionRepository struct {
	db *gorm.DB
}

// NewPostgresReactionRepository creates a new PostgresReactionRepository
func NewPostgresReactionRepository(db *gorm.DB) *PostgresReactionRepository {
	return &PostgresReactionRepository{db: db}
}

// WithTx returns the repository bound to the given transaction
func (r *PostgresReactionRepository) WithTx(tx *gorm.DB) ReactionRepository {
	return &PostgresReactionRepository{db: tx}
}

// Create inserts a new reaction. Fails with gorm.ErrDuplicatedKey when a
// reaction for the same (post, user) already exists.
func (r *PostgresReactionRepository) Create(reaction *models.Reaction) error {
	return r.db.Create(reaction).Error
}

// Get retrieves the reaction of a user on a post, or nil when absent
func (r *PostgresReactionRepository) Get(postID, userID uint) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.Where("post_id = ? AND user_id = ?", postID, userID).First(&reaction).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &reaction, nil
}

// Delete removes the reaction of a user on a post
func (r *PostgresReactionRepository) Delete(postID, userID uint) error {
	return r.db.Where("post_id = ? AND user_id = ?", postID, userID).Delete(&models.Reaction{}).Error
}

// CountByPostID retrieves the number of reactions on a post
func (r *PostgresReactionRepository) CountByPostID(postID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Reaction{}).Where("post_id = ?", postID).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// GetUserReactions returns the user's reactions on the given posts, keyed by
// post ID. Posts the user has not reacted to are simply absent.
func (r *PostgresReactionRepository) GetUserReactions(userID uint, postIDs []uint) (map[uint]models.ReactionKind, error) {
	result := make(map[uint]models.ReactionKind, len(postIDs))
	if len(postIDs) == 0 {
		return result, nil
	}
	var reactions []models.Reaction
	if err := r.db.Where("user_id = ? AND post_id IN ?", userID, postIDs).Find(&reactions).Error; err != nil {
		return nil, err
	}
	for _, rx := range reactions {
		result[rx.PostID] = rx.Kind
	}
	return result, nil
}

// DeleteByPostID removes every reaction on a post
func (r *PostgresReactionRepository) DeleteByPostID(postID uint) error {
	return r.db.Where("post_id = ?", postID).Delete(&models.Reaction{}).Error
}
