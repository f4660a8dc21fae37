package activity

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/emilythestrangee/social-network/backend/internal/models"
)

// GormStore implements Store on top of GORM.
type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

var _ Store = (*GormStore)(nil)

func (s *GormStore) FindUser(ctx context.Context, id int) (*models.User, error) {
	var user models.User
	if err := s.db.WithContext(ctx).First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.ErrUserNotFound
		}
		return nil, err
	}
	return &user, nil
}

func (s *GormStore) PostsByAuthor(ctx context.Context, userID int) ([]models.Post, error) {
	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

func (s *GormStore) LikesByUser(ctx context.Context, userID int) ([]models.Like, error) {
	var likes []models.Like
	err := s.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.Author").
		Where("user_id = ?", userID).
		Find(&likes).Error
	return likes, err
}

func (s *GormStore) FollowEdges(ctx context.Context, userID int, dir Direction) ([]models.User, error) {
	var users []models.User
	q := s.db.WithContext(ctx).Model(&models.User{})
	if dir == Outgoing {
		q = q.Joins("JOIN follows ON follows.following_id = users.id").
			Where("follows.follower_id = ?", userID)
	} else {
		q = q.Joins("JOIN follows ON follows.follower_id = users.id").
			Where("follows.following_id = ?", userID)
	}
	err := q.Find(&users).Error
	return users, err
}

func (s *GormStore) PostsByAuthorPage(ctx context.Context, userID, limit, offset int) ([]models.Post, int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Where("author_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	return posts, count, err
}

func (s *GormStore) LikesByUserPage(ctx context.Context, userID, limit, offset int) ([]models.Like, int64, error) {
	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Like{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	// A like's timeline position is the liked post's creation time, so
	// the page is ordered by the joined post, not the like row.
	var likes []models.Like
	err := s.db.WithContext(ctx).
		Preload("Post").
		Preload("Post.Author").
		Joins("JOIN posts ON posts.id = likes.post_id").
		Where("likes.user_id = ?", userID).
		Order("posts.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&likes).Error
	return likes, count, err
}

func (s *GormStore) PostsByAuthors(ctx context.Context, authorIDs []int, limit, offset int) ([]models.Post, int64, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, 0, nil
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&models.Post{}).
		Where("author_id IN ?", authorIDs).
		Count(&count).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := s.db.WithContext(ctx).
		Preload("Author").
		Preload("Hashtags").
		Where("author_id IN ?", authorIDs).
		Order("created_at DESC").
		Limit(limit).Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}

	if err := s.fillLikeCounts(ctx, posts); err != nil {
		return nil, 0, err
	}
	return posts, count, nil
}

// fillLikeCounts projects like counts into posts with one grouped query.
func (s *GormStore) fillLikeCounts(ctx context.Context, posts []models.Post) error {
	if len(posts) == 0 {
		return nil
	}

	ids := make([]int, len(posts))
	for i, p := range posts {
		ids[i] = p.ID
	}

	var rows []struct {
		PostID int
		N      int
	}
	err := s.db.WithContext(ctx).Model(&models.Like{}).
		Select("post_id, COUNT(*) AS n").
		Where("post_id IN ?", ids).
		Group("post_id").
		Scan(&rows).Error
	if err != nil {
		return err
	}

	counts := make(map[int]int, len(rows))
	for _, r := range rows {
		counts[r.PostID] = r.N
	}
	for i := range posts {
		posts[i].LikeCount = counts[posts[i].ID]
	}
	return nil
}
