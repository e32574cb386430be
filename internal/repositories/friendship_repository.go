package repositories

import (
	"github.com/pawgrounds/backend/internal/models"
	"gorm.io/gorm"
)

// FriendshipRepository defines the interface for friendship edge operations
type FriendshipRepository interface {
	WithTx(tx *gorm.DB) FriendshipRepository
	Create(f *models.Friendship) error
	GetByID(id uint) (*models.Friendship, error)
	GetByPair(userA, userB uint) (*models.Friendship, error)
	UpdateStatus(id uint, status models.FriendshipStatus) error
	Delete(id uint) error
	GetFriendIDs(userID uint) ([]uint, error)
	GetFriends(userID uint) ([]models.User, error)
	GetIncomingPending(userID uint) ([]models.Friendship, error)
	GetOutgoingPending(userID uint) ([]models.Friendship, error)
}

// PostgresFriendshipRepository implements FriendshipRepository for PostgreSQL
type PostgresFriendshipRepository struct {
	db *gorm.DB
}

// NewPostgresFriendshipRepository creates a new PostgresFriendshipRepository
func NewPostgresFriendshipRepository(db *gorm.DB) *PostgresFriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// WithTx returns the repository bound to the given transaction
func (r *PostgresFriendshipRepository) WithTx(tx *gorm.DB) FriendshipRepository {
	return &PostgresFriendshipRepository{db: tx}
}

// Create inserts a new friendship edge
func (r *PostgresFriendshipRepository) Create(f *models.Friendship) error {
	return r.db.Create(f).Error
}

// GetByID retrieves a friendship edge by ID
func (r *PostgresFriendshipRepository) GetByID(id uint) (*models.Friendship, error) {
	var f models.Friendship
	if err := r.db.First(&f, id).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// GetByPair retrieves the edge between two users regardless of which side
// requested it. Rows are stored canonically so a single lookup suffices.
func (r *PostgresFriendshipRepository) GetByPair(userA, userB uint) (*models.Friendship, error) {
	a, b := models.CanonicalPair(userA, userB)
	var f models.Friendship
	if err := r.db.Where("user_a_id = ? AND user_b_id = ?", a, b).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// UpdateStatus updates the status of a friendship edge
func (r *PostgresFriendshipRepository) UpdateStatus(id uint, status models.FriendshipStatus) error {
	return r.db.Model(&models.Friendship{}).Where("id = ?", id).Update("status", status).Error
}

// Delete removes a friendship edge
func (r *PostgresFriendshipRepository) Delete(id uint) error {
	return r.db.Delete(&models.Friendship{}, id).Error
}

// GetFriendIDs retrieves the IDs of all accepted friends of a user
func (r *PostgresFriendshipRepository) GetFriendIDs(userID uint) ([]uint, error) {
	var edges []models.Friendship
	err := r.db.Where("(user_a_id = ? OR user_b_id = ?) AND status = ?",
		userID, userID, models.FriendshipAccepted).Find(&edges).Error
	if err != nil {
		return nil, err
	}
	ids := make([]uint, 0, len(edges))
	for _, e := range edges {
		ids = append(ids, e.OtherSide(userID))
	}
	return ids, nil
}

// GetFriends retrieves all accepted friends of a user
func (r *PostgresFriendshipRepository) GetFriends(userID uint) ([]models.User, error) {
	ids, err := r.GetFriendIDs(userID)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return []models.User{}, nil
	}
	var friends []models.User
	if err := r.db.Where("id IN ?", ids).Find(&friends).Error; err != nil {
		return nil, err
	}
	return friends, nil
}

// GetIncomingPending retrieves pending requests addressed to the user
func (r *PostgresFriendshipRepository) GetIncomingPending(userID uint) ([]models.Friendship, error) {
	var edges []models.Friendship
	err := r.db.Where("(user_a_id = ? OR user_b_id = ?) AND status = ? AND requested_by_id <> ?",
		userID, userID, models.FriendshipPending, userID).
		Order("created_at DESC").Find(&edges).Error
	return edges, err
}

// GetOutgoingPending retrieves pending requests the user has sent
func (r *PostgresFriendshipRepository) GetOutgoingPending(userID uint) ([]models.Friendship, error) {
	var edges []models.Friendship
	err := r.db.Where("status = ? AND requested_by_id = ?",
		models.FriendshipPending, userID).
		Order("created_at DESC").Find(&edges).Error
	return edges, err
}
