package handlers

import (
	"net/http"
	"regexp"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/emilythestrangee/social-network/backend/internal/activity"
	"github.com/emilythestrangee/social-network/backend/internal/models"
)

var hashtagPattern = regexp.MustCompile(`^[a-zA-Z0-9_]+$`)

// paramID parses a positive-integer path parameter, responding 400 on
// malformed input so storage never sees it.
func paramID(c *gin.Context, name string) (int, bool) {
	id, err := strconv.Atoi(c.Param(name))
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"message": "Invalid " + name + " format"})
		return 0, false
	}
	return id, true
}

// pagination parses limit/offset query parameters with the API's
// defaults (limit 10, max 100; offset 0).
func pagination(c *gin.Context) (limit, offset int, ok bool) {
	limit = activity.DefaultLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 || n > activity.MaxLimit {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Limit must be an integer between 1 and 100"})
			return 0, 0, false
		}
		limit = n
	}
	if raw := c.Query("offset"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"message": "Offset must be a non-negative number"})
			return 0, 0, false
		}
		offset = n
	}
	return limit, offset, true
}

// attachLikeCounts projects like counts into posts with one grouped query.
func attachLikeCounts(db *gorm.DB, posts []models.Post) {
	if len(posts) == 0 {
		return
	}

	ids := make([]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	var rows []struct {
		PostID int
		N      int
	}
	db.Model(&models.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows)

	counts := make(map[int]int, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.N
	}
	for i := range posts {
		posts[i].LikeCount = counts[posts[i].ID]
	}
}

// normalizeTags lowercases tags and rejects anything outside the
// alphanumeric/underscore charset.
func normalizeTags(tags []string) ([]string, bool) {
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		if !hashtagPattern.MatchString(tag) {
			return nil, false
		}
		normalized = append(normalized, strings.ToLower(tag))
	}
	return normalized, true
}
