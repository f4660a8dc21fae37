package activity

import "sort"

// mergeTimeline sorts activities newest first and returns the
// [offset, offset+limit) window plus the full pre-slice count. The sort
// is stable so equal timestamps keep their source-insertion order.
func mergeTimeline(activities []Activity, limit, offset int) ([]Activity, int) {
	total := len(activities)

	sort.SliceStable(activities, func(i, j int) bool {
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})

	if offset >= total {
		return []Activity{}, total
	}
	end := offset + limit
	if end > total {
		end = total
	}
	return activities[offset:end], total
}
