package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/social-network/backend/internal/activity"
	"github.com/emilythestrangee/social-network/backend/internal/models"
)

type ActivityHandler struct {
	service *activity.Service
}

func NewActivityHandler(service *activity.Service) *ActivityHandler {
	return &ActivityHandler{service: service}
}

// GetUserActivity returns one page of the user's activity timeline.
// An optional type=post|like|follow query switches to the single-source
// filtered path with its own pagination semantics.
func (h *ActivityHandler) GetUserActivity(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	typeFilter := c.Query("type")
	if typeFilter != "" && !activity.ValidType(typeFilter) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Type must be one of post, like, follow"})
		return
	}

	page, err := h.service.UserActivity(c.Request.Context(), id, activity.Filters{
		Type:   activity.Type(typeFilter),
		Limit:  limit,
		Offset: offset,
	})
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("Error getting activity of user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error getting user activity"})
		return
	}

	c.JSON(http.StatusOK, page)
}

// GetUserFeed returns one page of posts authored by users the given
// user follows.
func (h *ActivityHandler) GetUserFeed(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	h.respondFeed(c, id, limit, offset)
}

// GetFeed is the query-string variant: GET /feed?userId=&limit=&offset=
func (h *ActivityHandler) GetFeed(c *gin.Context) {
	userID, err := strconv.Atoi(c.Query("userId"))
	if err != nil || userID <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid userId format"})
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	h.respondFeed(c, userID, limit, offset)
}

func (h *ActivityHandler) respondFeed(c *gin.Context, userID, limit, offset int) {
	page, err := h.service.Feed(c.Request.Context(), userID, limit, offset)
	if err != nil {
		if errors.Is(err, models.ErrUserNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		log.Printf("Error getting feed of user %d: %v", userID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error getting feed"})
		return
	}

	c.JSON(http.StatusOK, page)
}
