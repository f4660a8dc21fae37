package models

// Hashtag tags are stored lowercase; uniqueness is on the normalized form.
type Hashtag struct {
	ID    int    `gorm:"primaryKey" json:"id"`
	Tag   string `gorm:"unique;not null;size:255" json:"tag"`
	Posts []Post `gorm:"many2many:post_hashtags" json:"-"`

	// Query-time projection, never stored.
	PostCount int `gorm:"-" json:"postCount,omitempty"`
}

type HashtagRequest struct {
	Tag string `json:"tag" binding:"required,min=1,max=255"`
}
