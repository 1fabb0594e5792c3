package service

import (
	"context"
	"errors"

	"inkwell/internal/middleware"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"
)

// PostService implements post authoring, browsing, and view counting.
type PostService struct {
	postRepo repository.PostRepository
}

// CreatePostInput carries a new post.
type CreatePostInput struct {
	Actor       Actor
	Title       string
	Content     string
	Category    string
	IsPublished bool
	CoverURL    *string
}

// UpdatePostInput carries a partial post update. Nil fields are left unchanged.
type UpdatePostInput struct {
	Actor       Actor
	PostID      uint
	Title       *string
	Content     *string
	Category    *string
	IsPublished *bool
	CoverURL    *string
}

// ListPostsInput carries browse filters. Drafts are only visible to their
// author or an admin.
type ListPostsInput struct {
	Actor         Actor
	Search        string
	Category      string
	AuthorID      uint
	PublishedOnly bool
	Page          int
	PageSize      int
}

// NewPostService creates a new post service.
func NewPostService(postRepo repository.PostRepository) *PostService {
	return &PostService{postRepo: postRepo}
}

// CreatePost validates and stores a new post owned by the actor.
func (s *PostService) CreatePost(ctx context.Context, in CreatePostInput) (*models.Post, error) {
	if in.Actor.Anonymous() {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := validation.ValidatePostTitle(in.Title); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if in.Content == "" {
		return nil, models.NewValidationError("content is required")
	}
	if err := validation.ValidatePostCategory(in.Category); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	post := &models.Post{
		Title:       in.Title,
		Content:     in.Content,
		Category:    in.Category,
		AuthorID:    in.Actor.UserID,
		IsPublished: in.IsPublished,
		CoverURL:    in.CoverURL,
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.GetPostRecord(ctx, post.ID)
}

// GetPostRecord fetches a post without visibility checks or view counting.
// Intended for internal callers that already hold a reference.
func (s *PostService) GetPostRecord(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// GetPost fetches a post for display. Drafts are hidden from everyone except
// their author and admins; hidden drafts read as not found so their existence
// does not leak. Each successful fetch counts a view.
func (s *PostService) GetPost(ctx context.Context, actor Actor, id uint) (*models.Post, error) {
	span, ctx := observability.NewSpan(ctx, "PostService.GetPost")
	defer span.End()
	span.AddAttributes(attribute.Int("post.id", int(id)))

	post, err := s.GetPostRecord(ctx, id)
	if err != nil {
		return nil, err
	}

	if !post.IsPublished && post.AuthorID != actor.UserID && !actor.IsAdmin() {
		return nil, models.NewNotFoundError("Post", id)
	}

	// A failed increment never breaks the read path. It is logged and
	// counted so an operator can notice drift.
	if err := s.postRepo.IncrementViewCount(ctx, id); err != nil {
		observability.ViewCountErrorsTotal.Inc()
		middleware.Logger.WarnContext(ctx, "view count increment failed",
			"post_id", id, "error", err.Error())
	} else {
		observability.PostViewsTotal.Inc()
		post.ViewCount++
	}

	return post, nil
}

// ListPosts returns a filtered page of posts plus the total match count.
func (s *PostService) ListPosts(ctx context.Context, in ListPostsInput) ([]models.Post, int64, error) {
	limit, offset := repository.NormalizePagination(in.Page, in.PageSize)

	publishedOnly := in.PublishedOnly
	// Only an admin, or an author browsing their own posts, may see drafts.
	if !in.Actor.IsAdmin() && in.AuthorID != in.Actor.UserID {
		publishedOnly = true
	}
	if in.Actor.Anonymous() {
		publishedOnly = true
	}

	posts, total, err := s.postRepo.List(ctx, repository.ListPostsParams{
		Search:        in.Search,
		Category:      in.Category,
		AuthorID:      in.AuthorID,
		PublishedOnly: publishedOnly,
		Limit:         limit,
		Offset:        offset,
	})
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// UpdatePost applies a partial update. Only the author or an admin may edit.
func (s *PostService) UpdatePost(ctx context.Context, in UpdatePostInput) (*models.Post, error) {
	post, err := s.GetPostRecord(ctx, in.PostID)
	if err != nil {
		return nil, err
	}

	if post.AuthorID != in.Actor.UserID && !in.Actor.IsAdmin() {
		return nil, models.NewForbiddenError("You can only update your own posts")
	}

	if in.Title != nil {
		if err := validation.ValidatePostTitle(*in.Title); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Title = *in.Title
	}
	if in.Content != nil {
		if *in.Content == "" {
			return nil, models.NewValidationError("content must not be empty")
		}
		post.Content = *in.Content
	}
	if in.Category != nil {
		if err := validation.ValidatePostCategory(*in.Category); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		post.Category = *in.Category
	}
	if in.IsPublished != nil {
		post.IsPublished = *in.IsPublished
	}
	if in.CoverURL != nil {
		post.CoverURL = in.CoverURL
	}

	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, models.NewInternalError(err)
	}
	return post, nil
}

// DeletePost removes a post. Only the author or an admin may delete.
func (s *PostService) DeletePost(ctx context.Context, actor Actor, postID uint) error {
	post, err := s.GetPostRecord(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != actor.UserID && !actor.IsAdmin() {
		return models.NewForbiddenError("You can only delete your own posts")
	}
	if err := s.postRepo.Delete(ctx, postID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("Post", postID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// DeletePosts removes a batch of posts and returns how many existed.
// Admin only; the route guard enforces the role, this re-checks it.
func (s *PostService) DeletePosts(ctx context.Context, actor Actor, ids []uint) (int64, error) {
	if !actor.IsAdmin() {
		return 0, models.NewForbiddenError("Admin role required")
	}
	if len(ids) == 0 {
		return 0, models.NewValidationError("ids must not be empty")
	}
	deleted, err := s.postRepo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return deleted, nil
}
