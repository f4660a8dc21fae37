package activity

import (
	"context"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

// Direction selects one end of the follow edge set.
type Direction int

const (
	// Outgoing returns the users a given user follows.
	Outgoing Direction = iota
	// Incoming returns the users following a given user.
	Incoming
)

// Store is the storage collaborator of the activity engine. All methods
// return an empty slice (not an error) when the user exists but has no
// matching records; user existence is checked once, upstream, via
// FindUser. None of the methods have side effects.
type Store interface {
	// FindUser returns the user or models.ErrUserNotFound.
	FindUser(ctx context.Context, id int) (*models.User, error)

	// PostsByAuthor returns all posts authored by userID, author resolved.
	PostsByAuthor(ctx context.Context, userID int) ([]models.Post, error)

	// LikesByUser returns all likes placed by userID, each resolved with
	// its target post and that post's author.
	LikesByUser(ctx context.Context, userID int) ([]models.Like, error)

	// FollowEdges returns the users on the far end of userID's follow
	// edges in the given direction.
	FollowEdges(ctx context.Context, userID int, dir Direction) ([]models.User, error)

	// PostsByAuthorPage is the source-paginated variant backing the
	// type=post filter. The count covers the full set.
	PostsByAuthorPage(ctx context.Context, userID, limit, offset int) ([]models.Post, int64, error)

	// LikesByUserPage is the source-paginated variant backing the
	// type=like filter, ordered by the liked post's creation time
	// descending at the query level.
	LikesByUserPage(ctx context.Context, userID, limit, offset int) ([]models.Like, int64, error)

	// PostsByAuthors returns one page of posts authored by any of the
	// given users, newest first, with author, hashtags and like count
	// projected in, plus the total matching count.
	PostsByAuthors(ctx context.Context, authorIDs []int, limit, offset int) ([]models.Post, int64, error)
}
