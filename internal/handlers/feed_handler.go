package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pawgrounds/backend/internal/services"
)

// FeedHandler handles feed-related HTTP requests
type FeedHandler struct {
	feed *services.FeedAssembler
}

// NewFeedHandler creates a new FeedHandler
func NewFeedHandler(feed *services.FeedAssembler) *FeedHandler {
	return &FeedHandler{feed: feed}
}

// RegisterFeedRoutes registers feed-related routes
func (h *FeedHandler) RegisterFeedRoutes(g *echo.Group) {
	g.GET("/posts/feed", h.GetFeed)
}

// GetFeed returns enriched feed posts for the current user
func (h *FeedHandler) GetFeed(c echo.Context) error {
	viewerID, err := requireUserID(c)
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	page, err := h.feed.GetFeed(c.Request().Context(), viewerID, limit, offset)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{
		"posts": page.Posts,
		"pagination": echo.Map{
			"limit":    page.Limit,
			"offset":   page.Offset,
			"has_more": page.HasMore,
		},
	})
}
