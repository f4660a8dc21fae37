package handlers

import (
	"github.com/emilythestrangee/social-network/backend/internal/activity"
	"github.com/emilythestrangee/social-network/backend/internal/database"
)

// Handler combines all handler types
type Handler struct {
	User     *UserHandler
	Post     *PostHandler
	Like     *LikeHandler
	Hashtag  *HashtagHandler
	Activity *ActivityHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *database.Database) *Handler {
	// Get the GORM DB instance from the service
	dbService := database.New()
	gormDB := dbService.GetDB()

	return &Handler{
		User:     NewUserHandler(gormDB),
		Post:     NewPostHandler(gormDB),
		Like:     NewLikeHandler(gormDB),
		Hashtag:  NewHashtagHandler(gormDB),
		Activity: NewActivityHandler(activity.NewService(activity.NewGormStore(gormDB))),
	}
}
