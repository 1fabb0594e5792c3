package service

import (
	"context"

	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
)

// FavoriteService implements per-user post favorites.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	postRepo     repository.PostRepository
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(favoriteRepo repository.FavoriteRepository, postRepo repository.PostRepository) *FavoriteService {
	return &FavoriteService{favoriteRepo: favoriteRepo, postRepo: postRepo}
}

// ToggleFavorite flips the actor's favorite state for a post and reports the
// new state.
func (s *FavoriteService) ToggleFavorite(ctx context.Context, actor Actor, postID uint) (bool, error) {
	if actor.Anonymous() {
		return false, models.NewUnauthorizedError("Authentication required")
	}

	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if !exists {
		return false, models.NewNotFoundError("Post", postID)
	}

	favorited, err := s.favoriteRepo.Toggle(ctx, actor.UserID, postID)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	observability.RecordFavoriteToggle(favorited)
	return favorited, nil
}

// IsFavorited reports whether the actor has favorited the post.
func (s *FavoriteService) IsFavorited(ctx context.Context, actor Actor, postID uint) (bool, error) {
	if actor.Anonymous() {
		return false, models.NewUnauthorizedError("Authentication required")
	}
	favorited, err := s.favoriteRepo.IsFavorited(ctx, actor.UserID, postID)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	return favorited, nil
}

// ListFavorites returns a page of the actor's favorited posts, most recently
// favorited first, plus the total count.
func (s *FavoriteService) ListFavorites(ctx context.Context, actor Actor, page, pageSize int) ([]models.Post, int64, error) {
	if actor.Anonymous() {
		return nil, 0, models.NewUnauthorizedError("Authentication required")
	}
	limit, offset := repository.NormalizePagination(page, pageSize)
	posts, total, err := s.favoriteRepo.ListByUser(ctx, actor.UserID, limit, offset)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}
