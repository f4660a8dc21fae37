package activity

import (
	"log"
	"time"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

// Timestamp resolution policy, per activity kind:
//
//   - post:   the post's own creation time
//   - like:   the liked post's creation time (the like edge carries none)
//   - follow: the related user's account-creation time, for both
//     directions; NOT the follow edge's creation time
//
// The follow rule mirrors the behavior this service replaced and changing
// it would reorder existing timelines. The edge's own timestamp is kept
// in the follows table, so only this file would change.

func fromPost(p models.Post) Activity {
	return Activity{
		Type:      TypePost,
		Content:   PostContent{p},
		CreatedAt: p.CreatedAt,
	}
}

func fromLike(l models.Like, now func() time.Time) Activity {
	createdAt := l.Post.CreatedAt
	if createdAt.IsZero() {
		// The liked post should always resolve with a timestamp; a zero
		// value here means a dangling or partially loaded reference.
		log.Printf("⚠️  like %d: post %d has no creation time, falling back to now", l.ID, l.PostID)
		createdAt = now()
	}
	return Activity{
		Type:      TypeLike,
		Content:   PostContent{l.Post},
		CreatedAt: createdAt,
	}
}

func fromFollowing(followed models.User) Activity {
	return Activity{
		Type:      TypeFollow,
		Subtype:   SubtypeFollowing,
		Content:   FollowContent{User: followed, Action: "followed"},
		CreatedAt: followed.CreatedAt,
	}
}

func fromFollower(follower models.User) Activity {
	return Activity{
		Type:      TypeFollow,
		Subtype:   SubtypeFollower,
		Content:   FollowContent{User: follower, Action: "followed by"},
		CreatedAt: follower.CreatedAt,
	}
}

// normalize converts the raw source records into one activity sequence.
// Source order (posts, likes, following, followers) is significant: it is
// the tie-break for equal timestamps in the stable merge sort.
func normalize(posts []models.Post, likes []models.Like, following, followers []models.User, now func() time.Time) []Activity {
	activities := make([]Activity, 0, len(posts)+len(likes)+len(following)+len(followers))
	for _, p := range posts {
		activities = append(activities, fromPost(p))
	}
	for _, l := range likes {
		activities = append(activities, fromLike(l, now))
	}
	for _, u := range following {
		activities = append(activities, fromFollowing(u))
	}
	for _, u := range followers {
		activities = append(activities, fromFollower(u))
	}
	return activities
}
