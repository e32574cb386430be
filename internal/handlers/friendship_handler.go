package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/services"
)

// FriendshipHandler handles HTTP requests related to friendships
type FriendshipHandler struct {
	friendships *services.FriendshipService
}

// NewFriendshipHandler creates a new FriendshipHandler
func NewFriendshipHandler(friendships *services.FriendshipService) *FriendshipHandler {
	return &FriendshipHandler{friendships: friendships}
}

// RegisterFriendshipRoutes registers friendship-related routes
func (h *FriendshipHandler) RegisterFriendshipRoutes(g *echo.Group) {
	g.POST("/friends/request", h.SendFriendRequest)
	g.GET("/friends", h.GetFriends)
	g.GET("/friends/requests", h.GetPendingRequests)
	g.PUT("/friends/:id/accept", h.AcceptFriendRequest)
	g.PUT("/friends/:id/decline", h.DeclineFriendRequest)
	g.DELETE("/friends/:id/cancel", h.CancelFriendRequest)
	g.DELETE("/friends/:friendId", h.RemoveFriend) // Unfriend
}

// SendFriendRequest handles sending a friend request
func (h *FriendshipHandler) SendFriendRequest(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.SendFriendRequestInput
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	edge, err := h.friendships.SendRequest(userID, req.UserID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, edge)
}

// GetFriends retrieves the list of friends for the authenticated user
func (h *FriendshipHandler) GetFriends(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	friends, err := h.friendships.Friends(userID)
	if err != nil {
		return err
	}

	compact := make([]models.UserCompact, len(friends))
	for i := range friends {
		compact[i] = friends[i].ToCompact()
	}
	return c.JSON(http.StatusOK, compact)
}

// GetPendingRequests retrieves pending friend requests for the
// authenticated user, received and sent
func (h *FriendshipHandler) GetPendingRequests(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	incoming, outgoing, err := h.friendships.PendingRequests(userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{
		"incoming": incoming,
		"outgoing": outgoing,
	})
}

// AcceptFriendRequest handles accepting a pending friend request
func (h *FriendshipHandler) AcceptFriendRequest(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	edgeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	edge, err := h.friendships.Accept(edgeID, userID)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, edge)
}

// DeclineFriendRequest handles declining a pending friend request
func (h *FriendshipHandler) DeclineFriendRequest(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	edgeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.friendships.Decline(edgeID, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "declined"})
}

// CancelFriendRequest handles cancelling a friend request the
// authenticated user sent
func (h *FriendshipHandler) CancelFriendRequest(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	edgeID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.friendships.Cancel(edgeID, userID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "cancelled"})
}

// RemoveFriend handles unfriending an accepted friend
func (h *FriendshipHandler) RemoveFriend(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	friendID, err := pathID(c, "friendId")
	if err != nil {
		return err
	}

	if err := h.friendships.Remove(userID, friendID); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, echo.Map{"status": "removed"})
}
