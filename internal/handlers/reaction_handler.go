package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/services"
)

// ReactionHandler handles HTTP requests related to reactions
type ReactionHandler struct {
	reactions *services.ReactionService
}

// NewReactionHandler creates a new ReactionHandler
func NewReactionHandler(reactions *services.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactions: reactions}
}

// RegisterReactionRoutes registers reaction-related routes
func (h *ReactionHandler) RegisterReactionRoutes(g *echo.Group) {
	g.POST("/posts/:id/like", h.ToggleReaction)
}

// ToggleReaction flips the authenticated user's reaction on a post
func (h *ReactionHandler) ToggleReaction(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	var req models.ToggleReactionRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.reactions.Toggle(postID, userID, models.ReactionKind(req.ReactionType))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, result)
}
