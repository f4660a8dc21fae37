package models

import "errors"

// Sentinel errors returned by storage-facing code. Handlers map these to
// HTTP statuses: not-found → 404, conflict → 409, invalid → 400.
var (
	ErrUserNotFound    = errors.New("user not found")
	ErrPostNotFound    = errors.New("post not found")
	ErrLikeNotFound    = errors.New("like not found")
	ErrHashtagNotFound = errors.New("hashtag not found")
	ErrFollowNotFound  = errors.New("not following this user")

	ErrAlreadyLiked     = errors.New("user has already liked this post")
	ErrAlreadyFollowing = errors.New("already following this user")
	ErrDuplicateHashtag = errors.New("hashtag already exists")
	ErrDuplicateEmail   = errors.New("email already in use")

	ErrSelfFollow = errors.New("users cannot follow themselves")
	ErrInvalidID  = errors.New("invalid id format")
)
