package activity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

// ErrUnknownType is returned for a type filter outside {post, like, follow}.
var ErrUnknownType = errors.New("unknown activity type")

// Service is the activity/feed engine. It owns no state beyond its
// storage collaborator and builds every view per request.
type Service struct {
	store Store
	now   func() time.Time
}

func NewService(store Store) *Service {
	return &Service{store: store, now: time.Now}
}

// UserActivity returns one page of the user's activity timeline.
//
// Without a type filter, the four sources are fetched concurrently,
// normalized, merged into one globally ordered sequence and paginated
// in memory; Count is the full merged size. With a type filter the
// query short-circuits to that single source with its own pagination
// semantics (see filteredPage) — the two paths are deliberately kept
// separate because their observable count/ordering behavior differs.
func (s *Service) UserActivity(ctx context.Context, userID int, f Filters) (*Page, error) {
	limit, offset := normalizePage(f.Limit, f.Offset)

	if _, err := s.store.FindUser(ctx, userID); err != nil {
		return nil, err
	}

	if f.Type != "" {
		return s.filteredPage(ctx, userID, f.Type, limit, offset)
	}

	var (
		posts     []models.Post
		likes     []models.Like
		following []models.User
		followers []models.User
	)

	// Independent reads; joining before the merge is all correctness needs.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		posts, err = s.store.PostsByAuthor(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		likes, err = s.store.LikesByUser(gctx, userID)
		return err
	})
	g.Go(func() (err error) {
		following, err = s.store.FollowEdges(gctx, userID, Outgoing)
		return err
	})
	g.Go(func() (err error) {
		followers, err = s.store.FollowEdges(gctx, userID, Incoming)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("fetching activity sources: %w", err)
	}

	activities := normalize(posts, likes, following, followers, s.now)
	page, total := mergeTimeline(activities, limit, offset)

	return &Page{Activities: page, Count: total, Limit: limit, Offset: offset}, nil
}

// filteredPage resolves a single activity source with pagination applied
// at the source level. For type=follow the count is followingCount +
// followersCount and the page is ordered only within the follow subset,
// not against the global timeline. This is not a special case of the
// unfiltered merge and must not be unified with it.
func (s *Service) filteredPage(ctx context.Context, userID int, t Type, limit, offset int) (*Page, error) {
	switch t {
	case TypePost:
		posts, count, err := s.store.PostsByAuthorPage(ctx, userID, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("fetching posts page: %w", err)
		}
		activities := make([]Activity, 0, len(posts))
		for _, p := range posts {
			activities = append(activities, fromPost(p))
		}
		return &Page{Activities: activities, Count: int(count), Limit: limit, Offset: offset}, nil

	case TypeLike:
		likes, count, err := s.store.LikesByUserPage(ctx, userID, limit, offset)
		if err != nil {
			return nil, fmt.Errorf("fetching likes page: %w", err)
		}
		activities := make([]Activity, 0, len(likes))
		for _, l := range likes {
			activities = append(activities, fromLike(l, s.now))
		}
		return &Page{Activities: activities, Count: int(count), Limit: limit, Offset: offset}, nil

	case TypeFollow:
		following, err := s.store.FollowEdges(ctx, userID, Outgoing)
		if err != nil {
			return nil, fmt.Errorf("fetching following: %w", err)
		}
		followers, err := s.store.FollowEdges(ctx, userID, Incoming)
		if err != nil {
			return nil, fmt.Errorf("fetching followers: %w", err)
		}
		activities := normalize(nil, nil, following, followers, s.now)
		page, total := mergeTimeline(activities, limit, offset)
		return &Page{Activities: page, Count: total, Limit: limit, Offset: offset}, nil

	default:
		return nil, ErrUnknownType
	}
}

// Feed returns one page of posts authored by users the given user
// follows, newest first, with author, hashtags and like count projected
// in. Count covers the full following-authored set regardless of the
// pagination window. A user following nobody gets an empty page without
// any further queries.
func (s *Service) Feed(ctx context.Context, userID, limit, offset int) (*FeedPage, error) {
	limit, offset = normalizePage(limit, offset)

	if _, err := s.store.FindUser(ctx, userID); err != nil {
		return nil, err
	}

	following, err := s.store.FollowEdges(ctx, userID, Outgoing)
	if err != nil {
		return nil, fmt.Errorf("fetching following: %w", err)
	}
	if len(following) == 0 {
		return &FeedPage{Posts: []models.Post{}, Count: 0, Limit: limit, Offset: offset}, nil
	}

	authorIDs := make([]int, len(following))
	for i, u := range following {
		authorIDs[i] = u.ID
	}

	posts, count, err := s.store.PostsByAuthors(ctx, authorIDs, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("fetching feed posts: %w", err)
	}
	if posts == nil {
		posts = []models.Post{}
	}

	return &FeedPage{Posts: posts, Count: int(count), Limit: limit, Offset: offset}, nil
}
