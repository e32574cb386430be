package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pawgrounds/backend/internal/models"
	"github.com/pawgrounds/backend/internal/services"
)

// PostHandler handles HTTP requests related to posts
type PostHandler struct {
	posts      *services.PostService
	feed       *services.FeedAssembler
	visibility *services.VisibilityResolver
}

// NewPostHandler creates a new PostHandler
func NewPostHandler(posts *services.PostService, feed *services.FeedAssembler, visibility *services.VisibilityResolver) *PostHandler {
	return &PostHandler{posts: posts, feed: feed, visibility: visibility}
}

// RegisterPostRoutes registers post-related routes
func (h *PostHandler) RegisterPostRoutes(g *echo.Group) {
	g.POST("/posts", h.CreatePost)
	g.GET("/posts/:id", h.GetPost)
	g.DELETE("/posts/:id", h.DeletePost)
	g.GET("/users/:id/posts", h.GetUserPosts)
}

// CreatePost creates a new post
func (h *PostHandler) CreatePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}

	var req models.CreatePostRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	post, media, err := h.posts.Create(c.Request().Context(), userID, &req)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, echo.Map{
		"post":  post,
		"media": media,
	})
}

// GetPost retrieves a single post, subject to visibility
func (h *PostHandler) GetPost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	post, err := h.posts.Get(postID, userID, h.visibility)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, post)
}

// DeletePost deletes a post owned by the authenticated user
func (h *PostHandler) DeletePost(c echo.Context) error {
	userID, err := requireUserID(c)
	if err != nil {
		return err
	}
	postID, err := pathID(c, "id")
	if err != nil {
		return err
	}

	if err := h.posts.Delete(c.Request().Context(), postID, userID); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetUserPosts retrieves a user's posts as seen by the authenticated viewer
func (h *PostHandler) GetUserPosts(c echo.Context) error {
	viewerID, err := requireUserID(c)
	if err != nil {
		return err
	}
	targetID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	limit, offset := pageParams(c)

	page, err := h.feed.GetUserPosts(c.Request().Context(), targetID, viewerID, limit, offset)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}
