package models

// Like is a unique (user, post) edge. It deliberately carries no
// timestamp column: a like surfaces in the activity timeline at the
// liked post's creation time.
type Like struct {
	ID     int  `gorm:"primaryKey" json:"id"`
	UserID int  `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"userId"`
	PostID int  `gorm:"not null;uniqueIndex:idx_likes_user_post" json:"postId"`
	User   User `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"user"`
	Post   Post `gorm:"foreignKey:PostID;constraint:OnDelete:CASCADE" json:"post"`
}

type CreateLikeRequest struct {
	UserID int `json:"userId" binding:"required,gt=0"`
	PostID int `json:"postId" binding:"required,gt=0"`
}
