package activity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

func ts(sec int) time.Time {
	return time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC).Add(time.Duration(sec) * time.Second)
}

func postAt(id int, at time.Time) Activity {
	return fromPost(models.Post{ID: id, CreatedAt: at})
}

func TestMergeTimelineOrdersNewestFirst(t *testing.T) {
	activities := []Activity{
		postAt(1, ts(10)),
		postAt(2, ts(30)),
		postAt(3, ts(20)),
	}

	page, total := mergeTimeline(activities, 10, 0)

	assert.Equal(t, 3, total)
	for i := 1; i < len(page); i++ {
		assert.False(t, page[i].CreatedAt.After(page[i-1].CreatedAt),
			"activity %d is newer than activity %d", i, i-1)
	}
	assert.Equal(t, 2, page[0].Content.(PostContent).ID)
	assert.Equal(t, 3, page[1].Content.(PostContent).ID)
	assert.Equal(t, 1, page[2].Content.(PostContent).ID)
}

func TestMergeTimelineTiesKeepSourceOrder(t *testing.T) {
	// Same timestamp everywhere: the stable sort must preserve the
	// insertion order posts, likes, following, followers.
	at := ts(0)
	activities := normalize(
		[]models.Post{{ID: 1, CreatedAt: at}},
		[]models.Like{{ID: 2, Post: models.Post{ID: 9, CreatedAt: at}}},
		[]models.User{{ID: 3, CreatedAt: at}},
		[]models.User{{ID: 4, CreatedAt: at}},
		time.Now,
	)

	page, total := mergeTimeline(activities, 10, 0)

	assert.Equal(t, 4, total)
	assert.Equal(t, TypePost, page[0].Type)
	assert.Equal(t, TypeLike, page[1].Type)
	assert.Equal(t, SubtypeFollowing, page[2].Subtype)
	assert.Equal(t, SubtypeFollower, page[3].Subtype)
}

func TestMergeTimelinePaginationWindow(t *testing.T) {
	var activities []Activity
	for i := 0; i < 25; i++ {
		activities = append(activities, postAt(i, ts(i)))
	}

	page, total := mergeTimeline(activities, 10, 5)

	assert.Equal(t, 25, total)
	assert.Len(t, page, 10)
	// Newest is id 24; offset 5 starts at id 19.
	assert.Equal(t, 19, page[0].Content.(PostContent).ID)
	assert.Equal(t, 10, page[9].Content.(PostContent).ID)
}

func TestMergeTimelineCountIndependentOfWindow(t *testing.T) {
	var activities []Activity
	for i := 0; i < 7; i++ {
		activities = append(activities, postAt(i, ts(i)))
	}

	for _, offset := range []int{0, 3, 6, 7, 100} {
		got := make([]Activity, len(activities))
		copy(got, activities)
		_, total := mergeTimeline(got, 2, offset)
		assert.Equal(t, 7, total, "offset %d", offset)
	}
}

func TestMergeTimelineOffsetBeyondTotal(t *testing.T) {
	activities := []Activity{postAt(1, ts(0)), postAt(2, ts(1))}

	page, total := mergeTimeline(activities, 10, 50)

	assert.Equal(t, 2, total)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}

func TestMergeTimelineEmptyInput(t *testing.T) {
	page, total := mergeTimeline(nil, 10, 0)

	assert.Zero(t, total)
	assert.NotNil(t, page)
	assert.Empty(t, page)
}
