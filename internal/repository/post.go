package repository

import (
	"context"

	"inkwell/internal/models"

	"gorm.io/gorm"
)

// ListPostsParams carries the filters for listing posts. Zero values mean
// "no filter" except PublishedOnly, which callers set explicitly.
type ListPostsParams struct {
	Search        string // matched against title OR content, substring
	Category      string // exact match
	AuthorID      uint   // 0 means any author
	PublishedOnly bool
	Limit         int
	Offset        int
}

// PostRepository defines the interface for post data operations
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, params ListPostsParams) ([]models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	DeleteMany(ctx context.Context, ids []uint) (int64, error)
	IncrementViewCount(ctx context.Context, id uint) error
	Exists(ctx context.Context, id uint) (bool, error)
}

// postRepository implements PostRepository
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Create(post).Error
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).
		Preload("Author").
		First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// applyFilters builds the shared WHERE clause for List so the count and the
// page query always agree.
func (r *postRepository) applyFilters(db *gorm.DB, params ListPostsParams) *gorm.DB {
	if params.Search != "" {
		like := "%" + params.Search + "%"
		db = db.Where("title LIKE ? OR content LIKE ?", like, like)
	}
	if params.Category != "" {
		db = db.Where("category = ?", params.Category)
	}
	if params.AuthorID != 0 {
		db = db.Where("author_id = ?", params.AuthorID)
	}
	if params.PublishedOnly {
		db = db.Where("is_published = ?", true)
	}
	return db
}

func (r *postRepository) List(ctx context.Context, params ListPostsParams) ([]models.Post, int64, error) {
	var total int64
	countQuery := r.applyFilters(r.db.WithContext(ctx).Model(&models.Post{}), params)
	if err := countQuery.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var posts []models.Post
	err := r.applyFilters(r.db.WithContext(ctx), params).
		Preload("Author").
		Order("created_at DESC").
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, err
	}
	return posts, total, nil
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	return r.db.WithContext(ctx).Save(post).Error
}

func (r *postRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.Post{}, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&models.Post{})
	return result.RowsAffected, result.Error
}

// IncrementViewCount bumps the view counter in a single UPDATE so concurrent
// reads never lose increments.
func (r *postRepository) IncrementViewCount(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view_count", gorm.Expr("view_count + ?", 1))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *postRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
