package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

type LikeHandler struct {
	db *gorm.DB
}

func NewLikeHandler(db *gorm.DB) *LikeHandler {
	return &LikeHandler{db: db}
}

// GetLikes returns all likes with their user and post
func (h *LikeHandler) GetLikes(c *gin.Context) {
	var likes []models.Like
	if err := h.db.Preload("User").Preload("Post").Find(&likes).Error; err != nil {
		log.Printf("Error fetching likes: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching likes"})
		return
	}
	if likes == nil {
		likes = []models.Like{}
	}
	c.JSON(http.StatusOK, likes)
}

// GetLike returns a single like by ID
func (h *LikeHandler) GetLike(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var like models.Like
	if err := h.db.Preload("User").Preload("Post").First(&like, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Like not found"})
		return
	}
	c.JSON(http.StatusOK, like)
}

// CreateLike likes a post. The (user, post) pair is unique; liking twice
// is a conflict, not an upsert.
func (h *LikeHandler) CreateLike(c *gin.Context) {
	var input models.CreateLikeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, input.UserID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var post models.Post
	if err := h.db.First(&post, input.PostID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	var existing models.Like
	err := h.db.Where("user_id = ? AND post_id = ?", input.UserID, input.PostID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": models.ErrAlreadyLiked.Error()})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking like: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating like"})
		return
	}

	like := models.Like{UserID: user.ID, PostID: post.ID}
	if err := h.db.Create(&like).Error; err != nil {
		log.Printf("Error creating like: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating like"})
		return
	}

	h.db.Preload("User").Preload("Post").First(&like, like.ID)
	c.JSON(http.StatusCreated, like)
}

// DeleteLike removes a like by ID
func (h *LikeHandler) DeleteLike(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	result := h.db.Delete(&models.Like{}, id)
	if result.Error != nil {
		log.Printf("Error deleting like %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting like"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Like not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// UnlikePost removes a like by its (user, post) pair
func (h *LikeHandler) UnlikePost(c *gin.Context) {
	var input models.CreateLikeRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var like models.Like
	err := h.db.Where("user_id = ? AND post_id = ?", input.UserID, input.PostID).
		First(&like).Error
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Like not found"})
		return
	}

	if err := h.db.Delete(&like).Error; err != nil {
		log.Printf("Error unliking post %d: %v", input.PostID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error unliking post"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetLikesByUser returns a user's likes with the liked posts resolved
func (h *LikeHandler) GetLikesByUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var likes []models.Like
	if err := h.db.Preload("Post").Preload("Post.Author").Preload("Post.Hashtags").
		Where("user_id = ?", id).Find(&likes).Error; err != nil {
		log.Printf("Error fetching likes of user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching likes by user"})
		return
	}
	if likes == nil {
		likes = []models.Like{}
	}
	c.JSON(http.StatusOK, likes)
}

// GetLikesByPost returns a post's likes with the liking users resolved
func (h *LikeHandler) GetLikesByPost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var post models.Post
	if err := h.db.First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	var likes []models.Like
	if err := h.db.Preload("User").Where("post_id = ?", id).Find(&likes).Error; err != nil {
		log.Printf("Error fetching likes of post %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching likes by post"})
		return
	}
	if likes == nil {
		likes = []models.Like{}
	}
	c.JSON(http.StatusOK, likes)
}
