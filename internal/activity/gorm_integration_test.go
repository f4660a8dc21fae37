package activity

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	pgdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

// startPostgres spins up a disposable Postgres and returns a migrated
// GORM handle. Requires a local Docker daemon; skipped with -short.
func startPostgres(t *testing.T) *gorm.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping container test in short mode")
	}

	ctx := context.Background()
	ctr, err := tcpostgres.Run(ctx, "postgres:16-alpine",
		tcpostgres.WithDatabase("social_test"),
		tcpostgres.WithUsername("test"),
		tcpostgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	testcontainers.CleanupContainer(t, ctr)
	require.NoError(t, err)

	dsn, err := ctr.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(pgdriver.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Post{},
		&models.Like{},
		&models.Hashtag{},
		&models.Follow{},
	))
	return db
}

func TestGormStoreAgainstPostgres(t *testing.T) {
	db := startPostgres(t)
	store := NewGormStore(db)
	ctx := context.Background()

	ada := models.User{FirstName: "Ada", Email: "ada@example.com", CreatedAt: ts(0)}
	grace := models.User{FirstName: "Grace", Email: "grace@example.com", CreatedAt: ts(10)}
	edsger := models.User{FirstName: "Edsger", Email: "edsger@example.com", CreatedAt: ts(20)}
	require.NoError(t, db.Create(&ada).Error)
	require.NoError(t, db.Create(&grace).Error)
	require.NoError(t, db.Create(&edsger).Error)

	older := models.Post{Content: "older", AuthorID: grace.ID, CreatedAt: ts(100)}
	newer := models.Post{Content: "newer", AuthorID: grace.ID, CreatedAt: ts(200)}
	byEdsger := models.Post{Content: "third", AuthorID: edsger.ID, CreatedAt: ts(150)}
	require.NoError(t, db.Create(&older).Error)
	require.NoError(t, db.Create(&newer).Error)
	require.NoError(t, db.Create(&byEdsger).Error)

	require.NoError(t, db.Create(&models.Like{UserID: ada.ID, PostID: older.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: ada.ID, PostID: newer.ID}).Error)
	require.NoError(t, db.Create(&models.Like{UserID: edsger.ID, PostID: newer.ID}).Error)

	require.NoError(t, db.Create(&models.Follow{FollowerID: ada.ID, FollowingID: grace.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: ada.ID, FollowingID: edsger.ID}).Error)
	require.NoError(t, db.Create(&models.Follow{FollowerID: grace.ID, FollowingID: ada.ID}).Error)

	t.Run("FindUser", func(t *testing.T) {
		got, err := store.FindUser(ctx, ada.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ada", got.FirstName)

		_, err = store.FindUser(ctx, 999999)
		assert.ErrorIs(t, err, models.ErrUserNotFound)
	})

	t.Run("FollowEdges", func(t *testing.T) {
		following, err := store.FollowEdges(ctx, ada.ID, Outgoing)
		require.NoError(t, err)
		assert.Len(t, following, 2)

		followers, err := store.FollowEdges(ctx, ada.ID, Incoming)
		require.NoError(t, err)
		require.Len(t, followers, 1)
		assert.Equal(t, grace.ID, followers[0].ID)

		none, err := store.FollowEdges(ctx, edsger.ID, Outgoing)
		require.NoError(t, err)
		assert.Empty(t, none)
	})

	t.Run("LikesByUserPageOrdersByPostTime", func(t *testing.T) {
		likes, count, err := store.LikesByUserPage(ctx, ada.ID, 10, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 2, count)
		require.Len(t, likes, 2)
		assert.Equal(t, newer.ID, likes[0].PostID)
		assert.Equal(t, older.ID, likes[1].PostID)
		assert.Equal(t, "Grace", likes[0].Post.Author.FirstName)
	})

	t.Run("PostsByAuthorsProjections", func(t *testing.T) {
		posts, count, err := store.PostsByAuthors(ctx, []int{grace.ID, edsger.ID}, 2, 0)
		require.NoError(t, err)
		assert.EqualValues(t, 3, count)
		require.Len(t, posts, 2)
		assert.Equal(t, newer.ID, posts[0].ID)
		assert.Equal(t, byEdsger.ID, posts[1].ID)
		assert.Equal(t, 2, posts[0].LikeCount)
		assert.Equal(t, 0, posts[1].LikeCount)
		assert.Equal(t, grace.ID, posts[0].Author.ID)
	})

	t.Run("PostsByAuthorsEmptyIDs", func(t *testing.T) {
		posts, count, err := store.PostsByAuthors(ctx, nil, 10, 0)
		require.NoError(t, err)
		assert.Zero(t, count)
		assert.Empty(t, posts)
	})

	t.Run("DuplicateLikeRejectedByConstraint", func(t *testing.T) {
		err := db.Create(&models.Like{UserID: ada.ID, PostID: older.ID}).Error
		assert.Error(t, err)
	})
}
