package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

type HashtagHandler struct {
	db *gorm.DB
}

func NewHashtagHandler(db *gorm.DB) *HashtagHandler {
	return &HashtagHandler{db: db}
}

// GetHashtags returns all hashtags with their post counts
func (h *HashtagHandler) GetHashtags(c *gin.Context) {
	var hashtags []models.Hashtag
	if err := h.db.Preload("Posts").Find(&hashtags).Error; err != nil {
		log.Printf("Error fetching hashtags: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching hashtags"})
		return
	}

	for i := range hashtags {
		hashtags[i].PostCount = len(hashtags[i].Posts)
		hashtags[i].Posts = nil
	}
	if hashtags == nil {
		hashtags = []models.Hashtag{}
	}
	c.JSON(http.StatusOK, hashtags)
}

// GetHashtag returns a single hashtag by ID with its post count
func (h *HashtagHandler) GetHashtag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var hashtag models.Hashtag
	if err := h.db.Preload("Posts").First(&hashtag, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Hashtag not found"})
		return
	}

	hashtag.PostCount = len(hashtag.Posts)
	hashtag.Posts = nil
	c.JSON(http.StatusOK, hashtag)
}

// CreateHashtag creates a hashtag; tags are case-normalized to lowercase
func (h *HashtagHandler) CreateHashtag(c *gin.Context) {
	var input models.HashtagRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !hashtagPattern.MatchString(input.Tag) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Hashtag must only contain alphanumeric characters and underscores"})
		return
	}

	tag := strings.ToLower(input.Tag)

	var existing models.Hashtag
	if err := h.db.Where("tag = ?", tag).First(&existing).Error; err == nil {
		c.JSON(http.StatusConflict, gin.H{"message": models.ErrDuplicateHashtag.Error(), "hashtag": existing})
		return
	}

	hashtag := models.Hashtag{Tag: tag}
	if err := h.db.Create(&hashtag).Error; err != nil {
		log.Printf("Error creating hashtag: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating hashtag"})
		return
	}
	c.JSON(http.StatusCreated, hashtag)
}

// UpdateHashtag renames a hashtag, keeping the lowercase invariant
func (h *HashtagHandler) UpdateHashtag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.HashtagRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !hashtagPattern.MatchString(input.Tag) {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Hashtag must only contain alphanumeric characters and underscores"})
		return
	}

	tag := strings.ToLower(input.Tag)

	var hashtag models.Hashtag
	if err := h.db.First(&hashtag, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Hashtag not found"})
		return
	}

	if hashtag.Tag != tag {
		var existing models.Hashtag
		if err := h.db.Where("tag = ?", tag).First(&existing).Error; err == nil {
			c.JSON(http.StatusConflict, gin.H{"message": models.ErrDuplicateHashtag.Error(), "hashtag": existing})
			return
		}
	}

	hashtag.Tag = tag
	if err := h.db.Save(&hashtag).Error; err != nil {
		log.Printf("Error updating hashtag %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating hashtag"})
		return
	}
	c.JSON(http.StatusOK, hashtag)
}

// DeleteHashtag deletes a hashtag
func (h *HashtagHandler) DeleteHashtag(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var hashtag models.Hashtag
	if err := h.db.First(&hashtag, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Hashtag not found"})
		return
	}

	// Drop the join rows; the posts themselves stay.
	if err := h.db.Model(&hashtag).Association("Posts").Clear(); err != nil {
		log.Printf("Error detaching posts from hashtag %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting hashtag"})
		return
	}

	if err := h.db.Delete(&hashtag).Error; err != nil {
		log.Printf("Error deleting hashtag %d: %v", id, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting hashtag"})
		return
	}
	c.Status(http.StatusNoContent)
}

// GetHashtagPosts returns a paginated page of posts carrying a hashtag.
// The path segment accepts a numeric id or a tag name; an unknown tag
// yields an empty page, not a 404.
func (h *HashtagHandler) GetHashtagPosts(c *gin.Context) {
	limit, offset, ok := pagination(c)
	if !ok {
		return
	}

	raw := c.Param("id")
	var hashtag models.Hashtag
	var err error
	if id, convErr := strconv.Atoi(raw); convErr == nil && id > 0 {
		err = h.db.First(&hashtag, id).Error
	} else {
		err = h.db.Where("tag = ?", strings.ToLower(raw)).First(&hashtag).Error
	}
	if err != nil {
		c.JSON(http.StatusOK, gin.H{"posts": []models.Post{}, "count": 0, "limit": limit, "offset": offset})
		return
	}

	var count int64
	h.db.Model(&models.Post{}).
		Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
		Where("post_hashtags.hashtag_id = ?", hashtag.ID).
		Count(&count)

	var posts []models.Post
	if err := h.db.Preload("Author").Preload("Hashtags").
		Joins("JOIN post_hashtags ON post_hashtags.post_id = posts.id").
		Where("post_hashtags.hashtag_id = ?", hashtag.ID).
		Order("posts.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error; err != nil {
		log.Printf("Error fetching posts for hashtag %q: %v", hashtag.Tag, err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching posts by hashtag"})
		return
	}

	attachLikeCounts(h.db, posts)
	if posts == nil {
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":  posts,
		"count":  count,
		"limit":  limit,
		"offset": offset,
	})
}
