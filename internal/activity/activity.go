// Package activity builds the per-user activity timeline and the
// following-based feed by merging independent event sources (posts
// authored, posts liked, follow edges in both directions) into one
// reverse-chronological, paginated view.
package activity

import (
	"time"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

// Type discriminates the activity union.
type Type string

const (
	TypePost   Type = "post"
	TypeLike   Type = "like"
	TypeFollow Type = "follow"
)

// ValidType reports whether s names a filterable activity type.
func ValidType(s string) bool {
	switch Type(s) {
	case TypePost, TypeLike, TypeFollow:
		return true
	}
	return false
}

// Subtype distinguishes the two directions of a follow activity.
type Subtype string

const (
	SubtypeFollowing Subtype = "following"
	SubtypeFollower  Subtype = "follower"
)

// Content is the payload of one activity. It is a sealed union: exactly
// one implementation exists per activity kind, so normalization and
// merging stay exhaustive at compile time.
type Content interface {
	activityContent()
}

// PostContent is the payload of a post or like activity: the post itself
// (for likes, the liked post).
type PostContent struct {
	models.Post
}

func (PostContent) activityContent() {}

// FollowContent is the payload of a follow activity.
type FollowContent struct {
	User   models.User `json:"user"`
	Action string      `json:"action"`
}

func (FollowContent) activityContent() {}

// Activity is one normalized timeline entry. It is derived per request
// and never persisted.
type Activity struct {
	Type      Type      `json:"type"`
	Subtype   Subtype   `json:"subtype,omitempty"`
	Content   Content   `json:"content"`
	CreatedAt time.Time `json:"createdAt"`
}

// Page is a paginated activity view. Count is the size of the full
// result set, independent of the pagination window.
type Page struct {
	Activities []Activity `json:"activities"`
	Count      int        `json:"count"`
	Limit      int        `json:"limit"`
	Offset     int        `json:"offset"`
}

// FeedPage is a paginated feed view over posts authored by followed
// users. Count covers the full following-authored set.
type FeedPage struct {
	Posts  []models.Post `json:"posts"`
	Count  int           `json:"count"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// Filters narrows and paginates an activity query. A zero Type selects
// the unfiltered merged timeline.
type Filters struct {
	Type   Type
	Limit  int
	Offset int
}

const (
	DefaultLimit = 10
	MaxLimit     = 100
)

// normalizePage clamps limit and offset to their allowed ranges.
func normalizePage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}
