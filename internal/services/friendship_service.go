package services

import (
	"errors"

	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/repositories"
	"github.com/pawgrounds/backend/pkg/apperrors"
	"gorm.io/gorm"
)

// FriendshipService owns the friendship edge state machine:
//
//	none --SendRequest--> pending --Accept--> accepted --Remove--> none
//	pending --Decline/Cancel--> none (row deleted, re-request allowed)
type FriendshipService struct {
	friendships repositories.FriendshipRepository
	users       repositories.UserRepository
}

// NewFriendshipService creates a new FriendshipService
func NewFriendshipService(friendships repositories.FriendshipRepository, users repositories.UserRepository) *FriendshipService {
	return &FriendshipService{friendships: friendships, users: users}
}

// SendRequest creates a pending edge from requester to addressee.
func (s *FriendshipService) SendRequest(requesterID, addresseeID uint) (*models.Friendship, error) {
	if requesterID == addresseeID {
		return nil, apperrors.ErrSelfFriendRequest
	}

	if _, err := s.users.GetUserByID(addresseeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.Internal("failed to look up addressee", err)
	}

	// Any existing edge between the pair blocks a new request, whatever its
	// state. The unique pair index backs this up against races.
	_, err := s.friendships.GetByPair(requesterID, addresseeID)
	if err == nil {
		return nil, apperrors.ErrFriendshipExists
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperrors.Internal("failed to look up friendship", err)
	}

	edge := &models.Friendship{
		UserAID:       requesterID,
		UserBID:       addresseeID,
		RequestedByID: requesterID,
		Status:        models.FriendshipPending,
	}
	if err := s.friendships.Create(edge); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrFriendshipExists
		}
		return nil, apperrors.Internal("failed to create friend request", err)
	}
	return edge, nil
}

// Accept transitions a pending edge to accepted. Only the addressee may
// accept; anyone else gets not-found.
func (s *FriendshipService) Accept(edgeID, actorID uint) (*models.Friendship, error) {
	edge, err := s.pendingForAddressee(edgeID, actorID)
	if err != nil {
		return nil, err
	}
	if err := s.friendships.UpdateStatus(edge.ID, models.FriendshipAccepted); err != nil {
		return nil, apperrors.Internal("failed to accept friend request", err)
	}
	edge.Status = models.FriendshipAccepted
	return edge, nil
}

// Decline removes a pending edge. Only the addressee may decline; the row
// is deleted so either side can request again later.
func (s *FriendshipService) Decline(edgeID, actorID uint) error {
	edge, err := s.pendingForAddressee(edgeID, actorID)
	if err != nil {
		return err
	}
	if err := s.friendships.Delete(edge.ID); err != nil {
		return apperrors.Internal("failed to decline friend request", err)
	}
	return nil
}

// Cancel removes a pending edge. Only the original requester may cancel.
func (s *FriendshipService) Cancel(edgeID, actorID uint) error {
	edge, err := s.friendships.GetByID(edgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrFriendRequestNotFound
		}
		return apperrors.Internal("failed to look up friend request", err)
	}
	if edge.Status != models.FriendshipPending || edge.RequestedByID != actorID {
		return apperrors.ErrFriendRequestNotFound
	}
	if err := s.friendships.Delete(edge.ID); err != nil {
		return apperrors.Internal("failed to cancel friend request", err)
	}
	return nil
}

// Remove deletes an accepted edge between two users, whichever side asks.
func (s *FriendshipService) Remove(userID, friendID uint) error {
	edge, err := s.friendships.GetByPair(userID, friendID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrFriendshipNotFound
		}
		return apperrors.Internal("failed to look up friendship", err)
	}
	if edge.Status != models.FriendshipAccepted {
		return apperrors.ErrFriendshipNotFound
	}
	if err := s.friendships.Delete(edge.ID); err != nil {
		return apperrors.Internal("failed to remove friend", err)
	}
	return nil
}

// Status returns the edge between two users, or nil when none exists.
func (s *FriendshipService) Status(userA, userB uint) (*models.Friendship, error) {
	edge, err := s.friendships.GetByPair(userA, userB)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, apperrors.Internal("failed to look up friendship", err)
	}
	return edge, nil
}

// Friends lists the user's accepted friends.
func (s *FriendshipService) Friends(userID uint) ([]models.User, error) {
	friends, err := s.friendships.GetFriends(userID)
	if err != nil {
		return nil, apperrors.Internal("failed to list friends", err)
	}
	return friends, nil
}

// PendingRequests lists the user's pending edges, split into requests they
// received and requests they sent.
func (s *FriendshipService) PendingRequests(userID uint) (incoming, outgoing []models.Friendship, err error) {
	incoming, err = s.friendships.GetIncomingPending(userID)
	if err != nil {
		return nil, nil, apperrors.Internal("failed to list incoming requests", err)
	}
	outgoing, err = s.friendships.GetOutgoingPending(userID)
	if err != nil {
		return nil, nil, apperrors.Internal("failed to list outgoing requests", err)
	}
	return incoming, outgoing, nil
}

func (s *FriendshipService) pendingForAddressee(edgeID, actorID uint) (*models.Friendship, error) {
	edge, err := s.friendships.GetByID(edgeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrFriendRequestNotFound
		}
		return nil, apperrors.Internal("failed to look up friend request", err)
	}
	if edge.Status != models.FriendshipPending || edge.AddresseeID() != actorID {
		return nil, apperrors.ErrFriendRequestNotFound
	}
	return edge, nil
}
