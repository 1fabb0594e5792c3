package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// FavoriteRepository defines the interface for favorite data operations
type FavoriteRepository interface {
	Toggle(ctx context.Context, userID, postID uint) (bool, error)
	IsFavorited(ctx context.Context, userID, postID uint) (bool, error)
	ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, int64, error)
}

// favoriteRepository implements FavoriteRepository
type favoriteRepository struct {
	db *gorm.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *gorm.DB) FavoriteRepository {
	return &favoriteRepository{db: db}
}

// Toggle flips the favorite state for (userID, postID) and reports the new
// state. Delete-first keeps the toggle race-safe: a concurrent duplicate
// insert lands on the composite primary key and is absorbed by ON CONFLICT
// DO NOTHING.
func (r *favoriteRepository) Toggle(ctx context.Context, userID, postID uint) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Delete(&models.Favorite{})
	if result.Error != nil {
		return false, result.Error
	}
	if result.RowsAffected > 0 {
		return false, nil
	}

	fav := models.Favorite{UserID: userID, PostID: postID}
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&fav).Error
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *favoriteRepository) IsFavorited(ctx context.Context, userID, postID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ? AND post_id = ?", userID, postID).
		Count(&count).Error
	return count > 0, err
}

// ListByUser returns the user's favorited posts, most recently favorited
// first.
func (r *favoriteRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, int64, error) {
	var total int64
	err := r.db.WithContext(ctx).
		Model(&models.Favorite{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	if err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err = r.db.WithContext(ctx).
		Model(&models.Post{}).
		Joins("JOIN favorites ON favorites.post_id = posts.id").
		Where("favorites.user_id = ?", userID).
		Order("favorites.created_at DESC").
		Preload("Author").
		Limit(limit).
		Offset(offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}
