package handlers

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// GetUsers returns all users
func (h *UserHandler) GetUsers(c *gin.Context) {
	var users []models.User
	if err := h.db.Find(&users).Error; err != nil {
		log.Printf("Error fetching users: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching users"})
		return
	}
	if users == nil {
		users = []models.User{}
	}
	c.JSON(http.StatusOK, users)
}

// GetUser returns a single user by ID
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *UserHandler) CreateUser(c *gin.Context) {
	var input models.CreateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var existing models.User
	if err := h.db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": models.ErrDuplicateEmail.Error()})
		return
	}

	user := models.User{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}
	if err := h.db.Create(&user).Error; err != nil {
		log.Printf("Error creating user: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (h *UserHandler) UpdateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.UpdateUserRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	if input.FirstName != "" {
		user.FirstName = input.FirstName
	}
	if input.LastName != "" {
		user.LastName = input.LastName
	}
	if input.Email != "" && input.Email != user.Email {
		var existing models.User
		if err := h.db.Where("email = ?", input.Email).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"message": models.ErrDuplicateEmail.Error()})
			return
		}
		user.Email = input.Email
	}

	if err := h.db.Save(&user).Error; err != nil {
		log.Printf("Error updating user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating user"})
		return
	}
	c.JSON(http.StatusOK, user)
}

// DeleteUser deletes a user; posts, likes and follow edges cascade.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	result := h.db.Delete(&models.User{}, id)
	if result.Error != nil {
		log.Printf("Error deleting user %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

// FollowUser creates a follow edge from followerId to followingId
func (h *UserHandler) FollowUser(c *gin.Context) {
	var input models.FollowRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	if input.FollowerID == input.FollowingID {
		c.JSON(http.StatusBadRequest, gin.H{"message": models.ErrSelfFollow.Error()})
		return
	}

	var endpoints []models.User
	h.db.Where("id IN ?", []int{input.FollowerID, input.FollowingID}).Find(&endpoints)
	if len(endpoints) != 2 {
		c.JSON(http.StatusNotFound, gin.H{"message": "One or both users not found"})
		return
	}

	var existing models.Follow
	err := h.db.Where("follower_id = ? AND following_id = ?", input.FollowerID, input.FollowingID).
		First(&existing).Error
	if err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": models.ErrAlreadyFollowing.Error()})
		return
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Error checking follow edge: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error following user"})
		return
	}

	follow := models.Follow{
		FollowerID:  input.FollowerID,
		FollowingID: input.FollowingID,
	}
	if err := h.db.Create(&follow).Error; err != nil {
		log.Printf("Error creating follow edge: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error following user"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Successfully followed user"})
}

// UnfollowUser removes the follow edge from followerId to followingId
func (h *UserHandler) UnfollowUser(c *gin.Context) {
	var input models.FollowRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	result := h.db.Where("follower_id = ? AND following_id = ?", input.FollowerID, input.FollowingID).
		Delete(&models.Follow{})
	if result.Error != nil {
		log.Printf("Error removing follow edge: %v", result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error unfollowing user"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": models.ErrFollowNotFound.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Successfully unfollowed user"})
}

// GetFollowers returns a paginated list of the user's followers, newest
// accounts first
func (h *UserHandler) GetFollowers(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var count int64
	h.db.Model(&models.Follow{}).Where("following_id = ?", id).Count(&count)

	var followers []models.User
	if err := h.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.follower_id = users.id").
		Where("follows.following_id = ?", id).
		Order("users.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&followers).Error; err != nil {
		log.Printf("Error fetching followers of user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error getting user followers"})
		return
	}
	if followers == nil {
		followers = []models.User{}
	}

	c.JSON(http.StatusOK, gin.H{
		"followers": followers,
		"count":     count,
		"limit":     limit,
		"offset":    offset,
	})
}

// GetFollowing returns a paginated list of users the user follows
func (h *UserHandler) GetFollowing(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
		return
	}

	var count int64
	h.db.Model(&models.Follow{}).Where("follower_id = ?", id).Count(&count)

	var following []models.User
	if err := h.db.Model(&models.User{}).
		Joins("JOIN follows ON follows.following_id = users.id").
		Where("follows.follower_id = ?", id).
		Order("users.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&following).Error; err != nil {
		log.Printf("Error fetching following of user %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error getting followed users"})
		return
	}
	if following == nil {
		following = []models.User{}
	}

	c.JSON(http.StatusOK, gin.H{
		"following": following,
		"count":     count,
		"limit":     limit,
		"offset":    offset,
	})
}
