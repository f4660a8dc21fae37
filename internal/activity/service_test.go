package activity

import (
	"context"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

// fakeStore is an in-memory Store for service tests.
type fakeStore struct {
	users   map[int]models.User
	posts   []models.Post
	likes   []models.Like
	follows []models.Follow
}

func newFakeStore() *fakeStore {
	return &fakeStore{users: make(map[int]models.User)}
}

func (f *fakeStore) addUser(id int, name string, createdAt time.Time) {
	f.users[id] = models.User{ID: id, FirstName: name, CreatedAt: createdAt}
}

func (f *fakeStore) addPost(id, authorID int, createdAt time.Time) {
	f.posts = append(f.posts, models.Post{
		ID: id, AuthorID: authorID, Author: f.users[authorID], CreatedAt: createdAt,
	})
}

func (f *fakeStore) addLike(id, userID, postID int) {
	for _, p := range f.posts {
		if p.ID == postID {
			f.likes = append(f.likes, models.Like{ID: id, UserID: userID, PostID: postID, Post: p})
			return
		}
	}
	f.likes = append(f.likes, models.Like{ID: id, UserID: userID, PostID: postID})
}

func (f *fakeStore) addFollow(followerID, followingID int) {
	f.follows = append(f.follows, models.Follow{FollowerID: followerID, FollowingID: followingID})
}

func (f *fakeStore) FindUser(_ context.Context, id int) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, models.ErrUserNotFound
	}
	return &u, nil
}

func (f *fakeStore) PostsByAuthor(_ context.Context, userID int) ([]models.Post, error) {
	var out []models.Post
	for _, p := range f.posts {
		if p.AuthorID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeStore) LikesByUser(_ context.Context, userID int) ([]models.Like, error) {
	var out []models.Like
	for _, l := range f.likes {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	return out, nil
}

func (f *fakeStore) FollowEdges(_ context.Context, userID int, dir Direction) ([]models.User, error) {
	var out []models.User
	for _, e := range f.follows {
		if dir == Outgoing && e.FollowerID == userID {
			out = append(out, f.users[e.FollowingID])
		}
		if dir == Incoming && e.FollowingID == userID {
			out = append(out, f.users[e.FollowerID])
		}
	}
	return out, nil
}

func (f *fakeStore) PostsByAuthorPage(ctx context.Context, userID, limit, offset int) ([]models.Post, int64, error) {
	all, _ := f.PostsByAuthor(ctx, userID)
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return pageOf(all, limit, offset), int64(len(all)), nil
}

func (f *fakeStore) LikesByUserPage(ctx context.Context, userID, limit, offset int) ([]models.Like, int64, error) {
	all, _ := f.LikesByUser(ctx, userID)
	sort.SliceStable(all, func(i, j int) bool { return all[i].Post.CreatedAt.After(all[j].Post.CreatedAt) })
	return pageOf(all, limit, offset), int64(len(all)), nil
}

func (f *fakeStore) PostsByAuthors(_ context.Context, authorIDs []int, limit, offset int) ([]models.Post, int64, error) {
	ids := make(map[int]bool, len(authorIDs))
	for _, id := range authorIDs {
		ids[id] = true
	}
	var all []models.Post
	for _, p := range f.posts {
		if ids[p.AuthorID] {
			all = append(all, p)
		}
	}
	sort.SliceStable(all, func(i, j int) bool { return all[i].CreatedAt.After(all[j].CreatedAt) })
	return pageOf(all, limit, offset), int64(len(all)), nil
}

func pageOf[T any](all []T, limit, offset int) []T {
	if offset >= len(all) {
		return []T{}
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end]
}

var _ Store = (*fakeStore)(nil)

func TestUserActivityUnknownUser(t *testing.T) {
	svc := NewService(newFakeStore())

	_, err := svc.UserActivity(context.Background(), 99, Filters{})
	assert.ErrorIs(t, err, models.ErrUserNotFound)

	_, err = svc.Feed(context.Background(), 99, 10, 0)
	assert.ErrorIs(t, err, models.ErrUserNotFound)
}

func TestUserActivityEmptyHistory(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ada", ts(0))
	svc := NewService(store)

	page, err := svc.UserActivity(context.Background(), 1, Filters{})
	require.NoError(t, err)

	assert.NotNil(t, page.Activities)
	assert.Empty(t, page.Activities)
	assert.Zero(t, page.Count)
	assert.Equal(t, DefaultLimit, page.Limit)
	assert.Zero(t, page.Offset)
}

func TestUserActivityMergesAllSources(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ada", ts(0))
	store.addUser(2, "Grace", ts(5))
	store.addUser(3, "Edsger", ts(15))
	store.addPost(10, 1, ts(40))           // post by Ada
	store.addPost(11, 2, ts(30))           // post by Grace
	store.addLike(20, 1, 11)               // Ada likes Grace's post (-> ts 30)
	store.addFollow(1, 2)                  // Ada follows Grace (-> ts 5)
	store.addFollow(3, 1)                  // Edsger follows Ada (-> ts 15)
	svc := NewService(store)

	page, err := svc.UserActivity(context.Background(), 1, Filters{Limit: 10})
	require.NoError(t, err)

	require.Equal(t, 4, page.Count)
	require.Len(t, page.Activities, 4)

	// Descending: post(40), like(30), follower Edsger(15), following Grace(5).
	assert.Equal(t, TypePost, page.Activities[0].Type)
	assert.Equal(t, ts(40), page.Activities[0].CreatedAt)
	assert.Equal(t, TypeLike, page.Activities[1].Type)
	assert.Equal(t, ts(30), page.Activities[1].CreatedAt)
	assert.Equal(t, SubtypeFollower, page.Activities[2].Subtype)
	assert.Equal(t, SubtypeFollowing, page.Activities[3].Subtype)
}

func TestUserActivityLikeUsesPostCreationTime(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ada", ts(0))
	store.addUser(2, "Grace", ts(0))
	store.addPost(10, 2, ts(77))
	store.addLike(20, 1, 10)
	svc := NewService(store)

	page, err := svc.UserActivity(context.Background(), 1, Filters{})
	require.NoError(t, err)

	var like *Activity
	for i := range page.Activities {
		if page.Activities[i].Type == TypeLike {
			like = &page.Activities[i]
		}
	}
	require.NotNil(t, like)
	assert.Equal(t, ts(77), like.CreatedAt)
}

func TestUserActivityPaginationInvariant(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ada", ts(0))
	for i := 0; i < 12; i++ {
		store.addPost(100+i, 1, ts(100+i))
	}
	svc := NewService(store)

	full, err := svc.UserActivity(context.Background(), 1, Filters{Limit: 100})
	require.NoError(t, err)
	require.Equal(t, 12, full.Count)

	for offset := 0; offset <= 12; offset += 5 {
		page, err := svc.UserActivity(context.Background(), 1, Filters{Limit: 5, Offset: offset})
		require.NoError(t, err)
		assert.Equal(t, 12, page.Count, "offset %d", offset)

		want := pageOf(full.Activities, 5, offset)
		assert.Equal(t, want, page.Activities, "offset %d", offset)
	}
}

func TestUserActivityOffsetBeyondCount(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ada", ts(0))
	store.addPost(10, 1, ts(1))
	svc := NewService(store)

	page, err := svc.UserActivity(context.Background(), 1, Filters{Limit: 10, Offset: 40})
	require.NoError(t, err)

	assert.Empty(t, page.Activities)
	assert.Equal(t, 1, page.Count)
}

func TestUserActivityTypeFilterPost(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ada", ts(0))
	store.addUser(2, "Grace", ts(500)) // would dominate the merged order
	store.addFollow(1, 2)
	for i := 0; i < 3; i++ {
		store.addPost(10+i, 1, ts(10+i))
	}
	svc := NewService(store)

	page, err := svc.UserActivity(context.Background(), 1, Filters{Type: TypePost, Limit: 2})
	require.NoError(t, err)

	assert.Equal(t, 3, page.Count)
	require.Len(t, page.Activities, 2)
	for _, a := range page.Activities {
		assert.Equal(t, TypePost, a.Type)
	}
	assert.Equal(t, ts(12), page.Activities[0].CreatedAt)
}

func TestUserActivityTypeFilterFollowCountsBothDirections(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ada", ts(0))
	store.addUser(2, "B", ts(10))
	store.addUser(3, "C", ts(20))
	store.addUser(4, "D", ts(30))
	store.addUser(5, "E", ts(40))
	store.addUser(6, "F", ts(50))
	store.addFollow(1, 2) // following: 2
	store.addFollow(1, 3)
	store.addFollow(4, 1) // followers: 3
	store.addFollow(5, 1)
	store.addFollow(6, 1)
	// Noise the filter must ignore.
	store.addPost(10, 1, ts(1000))
	svc := NewService(store)

	page, err := svc.UserActivity(context.Background(), 1, Filters{Type: TypeFollow, Limit: 3})
	require.NoError(t, err)

	assert.Equal(t, 5, page.Count)
	require.Len(t, page.Activities, 3)
	for _, a := range page.Activities {
		assert.Equal(t, TypeFollow, a.Type)
	}
	// Sorted within the follow subset only, newest account first.
	assert.Equal(t, ts(50), page.Activities[0].CreatedAt)
	assert.Equal(t, ts(40), page.Activities[1].CreatedAt)
	assert.Equal(t, ts(30), page.Activities[2].CreatedAt)
}

func TestUserActivityUnknownTypeFilter(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "Ada", ts(0))
	svc := NewService(store)

	_, err := svc.UserActivity(context.Background(), 1, Filters{Type: "repost"})
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestFeedOrdersFollowedPostsNewestFirst(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "A", ts(0))
	store.addUser(2, "B", ts(0))
	store.addUser(3, "C", ts(0))
	store.addFollow(1, 2)
	store.addFollow(1, 3)
	store.addPost(10, 2, ts(100)) // B posts at t1
	store.addPost(11, 3, ts(200)) // C posts at t2 > t1
	svc := NewService(store)

	page, err := svc.Feed(context.Background(), 1, 10, 0)
	require.NoError(t, err)

	assert.Equal(t, 2, page.Count)
	require.Len(t, page.Posts, 2)
	assert.Equal(t, 11, page.Posts[0].ID)
	assert.Equal(t, 10, page.Posts[1].ID)
}

func TestFeedEmptyWhenFollowingNobody(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "A", ts(0))
	store.addUser(2, "B", ts(0))
	store.addPost(10, 2, ts(100)) // not followed, must not appear
	svc := NewService(store)

	page, err := svc.Feed(context.Background(), 1, 10, 0)
	require.NoError(t, err)

	assert.NotNil(t, page.Posts)
	assert.Empty(t, page.Posts)
	assert.Zero(t, page.Count)
}

func TestFeedExcludesOwnAndUnfollowedPosts(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "A", ts(0))
	store.addUser(2, "B", ts(0))
	store.addUser(3, "C", ts(0))
	store.addFollow(1, 2)
	store.addPost(10, 1, ts(10)) // own post
	store.addPost(11, 2, ts(20)) // followed
	store.addPost(12, 3, ts(30)) // unfollowed
	svc := NewService(store)

	page, err := svc.Feed(context.Background(), 1, 10, 0)
	require.NoError(t, err)

	require.Len(t, page.Posts, 1)
	assert.Equal(t, 11, page.Posts[0].ID)
}

func TestFeedIsIdempotent(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "A", ts(0))
	store.addUser(2, "B", ts(0))
	store.addFollow(1, 2)
	for i := 0; i < 5; i++ {
		store.addPost(10+i, 2, ts(10+i))
	}
	svc := NewService(store)

	first, err := svc.Feed(context.Background(), 1, 3, 1)
	require.NoError(t, err)
	second, err := svc.Feed(context.Background(), 1, 3, 1)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestFeedCountIndependentOfWindow(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "A", ts(0))
	store.addUser(2, "B", ts(0))
	store.addFollow(1, 2)
	for i := 0; i < 8; i++ {
		store.addPost(10+i, 2, ts(10+i))
	}
	svc := NewService(store)

	for _, offset := range []int{0, 4, 8, 20} {
		page, err := svc.Feed(context.Background(), 1, 3, offset)
		require.NoError(t, err)
		assert.Equal(t, 8, page.Count, "offset %d", offset)
	}
}

func TestLimitClamping(t *testing.T) {
	store := newFakeStore()
	store.addUser(1, "A", ts(0))
	svc := NewService(store)

	page, err := svc.UserActivity(context.Background(), 1, Filters{Limit: 100000, Offset: -3})
	require.NoError(t, err)
	assert.Equal(t, MaxLimit, page.Limit)
	assert.Zero(t, page.Offset)
}
