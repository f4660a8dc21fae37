package models

import "time"

type Post struct {
	ID       int    `gorm:"primaryKey" json:"id"`
	Content  string `gorm:"type:text;not null" json:"content"`
	AuthorID int    `gorm:"not null" json:"authorId"`
	Author   User   `gorm:"foreignKey:AuthorID;constraint:OnDelete:CASCADE" json:"author"`

	Hashtags []Hashtag `gorm:"many2many:post_hashtags;constraint:OnDelete:CASCADE" json:"hashtags"`

	// Query-time projection, never stored.
	LikeCount int `gorm:"-" json:"likeCount"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreatePostRequest struct {
	Content  string   `json:"content" binding:"required,min=1,max=5000"`
	AuthorID int      `json:"authorId" binding:"required,gt=0"`
	Hashtags []string `json:"hashtags" binding:"omitempty,dive,min=1,max=255"`
}

type UpdatePostRequest struct {
	Content  *string  `json:"content" binding:"omitempty,min=1,max=5000"`
	Hashtags []string `json:"hashtags" binding:"omitempty,dive,min=1,max=255"`
}
