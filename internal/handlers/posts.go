package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

type PostHandler struct {
	db *gorm.DB
}

func NewPostHandler(db *gorm.DB) *PostHandler {
	return &PostHandler{db: db}
}

// GetPosts returns all posts with author, hashtags and like count, newest first
func (h *PostHandler) GetPosts(c *gin.Context) {
	var posts []models.Post
	if err := h.db.Preload("Author").Preload("Hashtags").
		Order("created_at desc").Find(&posts).Error; err != nil {
		log.Printf("Error fetching posts: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error fetching posts"})
		return
	}

	attachLikeCounts(h.db, posts)

	// If no posts, return empty array not null
	if posts == nil {
		posts = []models.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost returns a single post by ID
func (h *PostHandler) GetPost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var post models.Post
	if err := h.db.Preload("Author").Preload("Hashtags").First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	posts := []models.Post{post}
	attachLikeCounts(h.db, posts)

	c.JSON(http.StatusOK, posts[0])
}

// findOrCreateHashtags resolves each tag to a hashtag row, creating
// missing ones. Tags arrive already lowercased.
func (h *PostHandler) findOrCreateHashtags(tags []string) ([]models.Hashtag, error) {
	hashtags := make([]models.Hashtag, 0, len(tags))
	for _, tag := range tags {
		var hashtag models.Hashtag
		err := h.db.Where("tag = ?", tag).First(&hashtag).Error
		if err != nil {
			hashtag = models.Hashtag{Tag: tag}
			if err := h.db.Create(&hashtag).Error; err != nil {
				return nil, err
			}
		}
		hashtags = append(hashtags, hashtag)
	}
	return hashtags, nil
}

// CreatePost creates a new post, attaching (and creating as needed) its hashtags
func (h *PostHandler) CreatePost(c *gin.Context) {
	var input models.CreatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	tags, ok := normalizeTags(input.Hashtags)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Hashtags must only contain alphanumeric characters and underscores"})
		return
	}

	var author models.User
	if err := h.db.First(&author, input.AuthorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Author not found"})
		return
	}

	post := models.Post{
		Content:  input.Content,
		AuthorID: author.ID,
	}

	if len(tags) > 0 {
		hashtags, err := h.findOrCreateHashtags(tags)
		if err != nil {
			log.Printf("Error resolving hashtags: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating post"})
			return
		}
		post.Hashtags = hashtags
	}

	if err := h.db.Create(&post).Error; err != nil {
		log.Printf("Error creating post: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error creating post"})
		return
	}

	// Reload with author and hashtags
	h.db.Preload("Author").Preload("Hashtags").First(&post, post.ID)

	c.JSON(http.StatusCreated, post)
}

// UpdatePost updates a post's content and/or hashtags
func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var input models.UpdatePostRequest
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if input.Content == nil && input.Hashtags == nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "At least one field must be provided for update"})
		return
	}

	var post models.Post
	if err := h.db.Preload("Hashtags").First(&post, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}

	if input.Content != nil {
		if err := h.db.Model(&post).Update("content", *input.Content).Error; err != nil {
			log.Printf("Error updating post %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating post"})
			return
		}
	}

	if len(input.Hashtags) > 0 {
		tags, ok := normalizeTags(input.Hashtags)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Hashtags must only contain alphanumeric characters and underscores"})
			return
		}
		hashtags, err := h.findOrCreateHashtags(tags)
		if err != nil {
			log.Printf("Error resolving hashtags: %v", err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating post"})
			return
		}
		if err := h.db.Model(&post).Association("Hashtags").Replace(hashtags); err != nil {
			log.Printf("Error replacing hashtags on post %d: %v", id, err)
			c.JSON(http.StatusInternalServerError, gin.H{"message": "Error updating post"})
			return
		}
	}

	h.db.Preload("Author").Preload("Hashtags").First(&post, post.ID)
	posts := []models.Post{post}
	attachLikeCounts(h.db, posts)

	c.JSON(http.StatusOK, posts[0])
}

// DeletePost deletes a post
func (h *PostHandler) DeletePost(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	result := h.db.Delete(&models.Post{}, id)
	if result.Error != nil {
		log.Printf("Error deleting post %d: %v", id, result.Error)
		c.JSON(http.StatusInternalServerError, gin.H{"message": "Error deleting post"})
		return
	}
	if result.RowsAffected == 0 {
		c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
		return
	}
	c.Status(http.StatusNoContent)
}
