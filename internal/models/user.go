package models

import "time"

type User struct {
	ID        int       `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"not null" json:"firstName"`
	LastName  string    `json:"lastName,omitempty"`
	Email     string    `gorm:"unique;not null" json:"email"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type CreateUserRequest struct {
	FirstName string `json:"firstName" binding:"required,max=255"`
	LastName  string `json:"lastName" binding:"max=255"`
	Email     string `json:"email" binding:"required,email,max=255"`
}

type UpdateUserRequest struct {
	FirstName string `json:"firstName" binding:"omitempty,max=255"`
	LastName  string `json:"lastName" binding:"omitempty,max=255"`
	Email     string `json:"email" binding:"omitempty,email,max=255"`
}

type FollowRequest struct {
	FollowerID  int `json:"followerId" binding:"required,gt=0"`
	FollowingID int `json:"followingId" binding:"required,gt=0"`
}
