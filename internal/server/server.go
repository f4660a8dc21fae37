package server

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/emilythestrangee/social-network/backend/internal/database"
	"github.com/emilythestrangee/social-network/backend/internal/handlers"
)

type Server struct {
	db      *database.Database
	handler *handlers.Handler
}

// NewServer creates and configures a new server
func NewServer() *http.Server {
	// Initialize database
	db, err := database.NewDatabase()
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	if err := db.Initialize(); err != nil {
		log.Fatalf("Failed to create tables: %v", err)
	}

	// Create unified handler
	handler := handlers.NewHandler(db)

	// Create server instance
	newServer := &Server{
		db:      db,
		handler: handler,
	}

	// Configure Gin router
	router := newServer.RegisterRoutes()

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080" // local dev fallback
	}

	// Create HTTP server
	server := &http.Server{
		Addr:         "0.0.0.0:" + port,
		Handler:      router,
		IdleTimeout:  time.Minute,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
	}

	log.Printf("🚀 Server starting on port %s\n", port)
	fmt.Println("📝 Press Ctrl+C to stop the server")

	return server
}

// RegisterRoutes sets up all application routes
func (s *Server) RegisterRoutes() *gin.Engine {
	r := gin.Default()

	// CORS configuration
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS", "PATCH"},
		AllowHeaders:     []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * 3600,
	}))

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, database.New().Health())
	})

	// API routes
	api := r.Group("/api")
	{
		// User routes
		api.GET("/users", s.handler.User.GetUsers)
		api.POST("/users", s.handler.User.CreateUser)
		api.POST("/users/follow", s.handler.User.FollowUser)
		api.POST("/users/unfollow", s.handler.User.UnfollowUser)
		api.GET("/users/:id", s.handler.User.GetUser)
		api.PUT("/users/:id", s.handler.User.UpdateUser)
		api.DELETE("/users/:id", s.handler.User.DeleteUser)
		api.GET("/users/:id/followers", s.handler.User.GetFollowers)
		api.GET("/users/:id/following", s.handler.User.GetFollowing)
		api.GET("/users/:id/likes", s.handler.Like.GetLikesByUser)

		// Derived read views
		api.GET("/users/:id/activity", s.handler.Activity.GetUserActivity)
		api.GET("/users/:id/feed", s.handler.Activity.GetUserFeed)
		api.GET("/feed", s.handler.Activity.GetFeed)

		// Post routes
		api.GET("/posts", s.handler.Post.GetPosts)
		api.POST("/posts", s.handler.Post.CreatePost)
		api.GET("/posts/:id", s.handler.Post.GetPost)
		api.PUT("/posts/:id", s.handler.Post.UpdatePost)
		api.DELETE("/posts/:id", s.handler.Post.DeletePost)
		api.GET("/posts/:id/likes", s.handler.Like.GetLikesByPost)

		// Like routes
		api.GET("/likes", s.handler.Like.GetLikes)
		api.POST("/likes", s.handler.Like.CreateLike)
		api.POST("/likes/unlike", s.handler.Like.UnlikePost)
		api.GET("/likes/:id", s.handler.Like.GetLike)
		api.DELETE("/likes/:id", s.handler.Like.DeleteLike)

		// Hashtag routes
		api.GET("/hashtags", s.handler.Hashtag.GetHashtags)
		api.POST("/hashtags", s.handler.Hashtag.CreateHashtag)
		api.GET("/hashtags/:id", s.handler.Hashtag.GetHashtag)
		api.PUT("/hashtags/:id", s.handler.Hashtag.UpdateHashtag)
		api.DELETE("/hashtags/:id", s.handler.Hashtag.DeleteHashtag)
		api.GET("/hashtags/:id/posts", s.handler.Hashtag.GetHashtagPosts)
	}

	return r
}
