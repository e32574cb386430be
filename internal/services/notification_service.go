package services

import (
	"time"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/repositories"
	"github.com/pawgrounds/backend/pkg/apperrors"
)

// NotificationPage is one page of a recipient's notifications.
type NotificationPage struct {
	Notifications []models.Notification `json:"notifications"`
	Total         int64                 `json:"total"`
	Limit         int                   `json:"limit"`
	Offset        int                   `json:"offset"`
}

// NotificationService covers the read side of notifications plus the
// generic entry point external collaborators (check-in service, mention
// parsing) use to fan out. The like/comment fanout lives inside the
// reaction and comment transactions, not here.
type NotificationService struct {
	notifications repositories.NotificationRepository
	retention     time.Duration
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notifications repositories.NotificationRepository, retention time.Duration) *NotificationService {
	return &NotificationService{notifications: notifications, retention: retention}
}

// Notify persists a notification built by one of the models constructors.
// A nil notification (self-action suppressed) is a silent no-op.
func (s *NotificationService) Notify(n *models.Notification) error {
	if n == nil {
		return nil
	}
	if err := s.notifications.Create(n); err != nil {
		return apperrors.Internal("failed to create notification", err)
	}
	return nil
}

// GetForUser returns one page of the recipient's notifications, newest first.
func (s *NotificationService) GetForUser(recipientID uint, limit, offset int) (*NotificationPage, error) {
	limit, offset = clampPage(limit, offset)
	notifications, total, err := s.notifications.GetByRecipientID(recipientID, limit, offset)
	if err != nil {
		return nil, apperrors.Internal("failed to load notifications", err)
	}
	return &NotificationPage{
		Notifications: notifications,
		Total:         total,
		Limit:         limit,
		Offset:        offset,
	}, nil
}

// GetUnreadCount returns how many unread notifications the recipient has.
func (s *NotificationService) GetUnreadCount(recipientID uint) (int64, error) {
	count, err := s.notifications.GetUnreadCount(recipientID)
	if err != nil {
		return 0, apperrors.Internal("failed to count unread notifications", err)
	}
	return count, nil
}

// MarkAsRead marks one notification read, scoped to its recipient. Marking
// an already-read notification again is harmless; a notification that is
// not the recipient's renders as not-found.
func (s *NotificationService) MarkAsRead(notificationID, recipientID uint) error {
	affected, err := s.notifications.MarkAsRead(notificationID, recipientID)
	if err != nil {
		return apperrors.Internal("failed to mark notification read", err)
	}
	if affected == 0 {
		return apperrors.ErrNotificationNotFound
	}
	return nil
}

// MarkAllAsRead marks every unread notification of the recipient read.
func (s *NotificationService) MarkAllAsRead(recipientID uint) error {
	if err := s.notifications.MarkAllAsRead(recipientID); err != nil {
		return apperrors.Internal("failed to mark notifications read", err)
	}
	return nil
}

// PruneExpired deletes notifications older than the retention age. It is
// idempotent and may run on any schedule without coordination.
func (s *NotificationService) PruneExpired() (int64, error) {
	cutoff := time.Now().Add(-s.retention)
	deleted, err := s.notifications.DeleteOlderThan(cutoff)
	if err != nil {
		return 0, apperrors.Internal("failed to prune notifications", err)
	}
	return deleted, nil
}
