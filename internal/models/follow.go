package models

import "time"

// Follow is the canonical follow edge. A user's "following" and
// "followers" lists are both derived from this one table at query time.
type Follow struct {
	ID          int       `gorm:"primaryKey" json:"id"`
	FollowerID  int       `gorm:"not null;uniqueIndex:idx_follows_pair" json:"followerId"`
	FollowingID int       `gorm:"not null;uniqueIndex:idx_follows_pair" json:"followingId"`
	Follower    User      `gorm:"foreignKey:FollowerID;constraint:OnDelete:CASCADE" json:"follower"`
	Following   User      `gorm:"foreignKey:FollowingID;constraint:OnDelete:CASCADE" json:"following"`
	CreatedAt   time.Time `json:"createdAt"`
}
