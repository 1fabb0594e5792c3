package service

import (
	"context"
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

// CommentService implements threaded comments on posts.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
}

// CreateCommentInput carries a new comment. ParentID nil means a top-level
// comment; otherwise the parent must exist on the same post.
type CreateCommentInput struct {
	Actor    Actor
	PostID   uint
	ParentID *uint
	Content  string
}

// UpdateCommentInput carries a comment edit.
type UpdateCommentInput struct {
	Actor     Actor
	CommentID uint
	Content   string
}

// NewCommentService creates a new comment service.
func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo}
}

func (s *CommentService) getComment(ctx context.Context, id uint) (*models.Comment, error) {
	comment, err := s.commentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Comment", id)
		}
		return nil, models.NewInternalError(err)
	}
	return comment, nil
}

// GetComment returns a single comment by ID.
func (s *CommentService) GetComment(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getComment(ctx, id)
}

// CreateComment validates and stores a comment, optionally as a reply.
func (s *CommentService) CreateComment(ctx context.Context, in CreateCommentInput) (*models.Comment, error) {
	if in.Actor.Anonymous() {
		return nil, models.NewUnauthorizedError("Authentication required")
	}
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	exists, err := s.postRepo.Exists(ctx, in.PostID)
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	if !exists {
		return nil, models.NewNotFoundError("Post", in.PostID)
	}

	if in.ParentID != nil {
		parent, err := s.getComment(ctx, *in.ParentID)
		if err != nil {
			return nil, err
		}
		// A reply must stay within its post's thread.
		if parent.PostID != in.PostID {
			return nil, models.NewValidationError("parent comment belongs to a different post")
		}
	}

	comment := &models.Comment{
		Content:  in.Content,
		PostID:   in.PostID,
		UserID:   in.Actor.UserID,
		ParentID: in.ParentID,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.getComment(ctx, comment.ID)
}

// ListComments returns a page of a post's comments plus the total count.
func (s *CommentService) ListComments(ctx context.Context, postID uint, page, pageSize int) ([]models.Comment, int64, error) {
	exists, err := s.postRepo.Exists(ctx, postID)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	if !exists {
		return nil, 0, models.NewNotFoundError("Post", postID)
	}

	limit, offset := repository.NormalizePagination(page, pageSize)
	comments, total, err := s.commentRepo.ListByPost(ctx, postID, limit, offset)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return comments, total, nil
}

// UpdateComment edits a comment's content. Only the author or an admin may
// edit.
func (s *CommentService) UpdateComment(ctx context.Context, in UpdateCommentInput) (*models.Comment, error) {
	comment, err := s.getComment(ctx, in.CommentID)
	if err != nil {
		return nil, err
	}

	if comment.UserID != in.Actor.UserID && !in.Actor.IsAdmin() {
		return nil, models.NewForbiddenError("You can only update your own comments")
	}
	if err := validation.ValidateCommentContent(in.Content); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	comment.Content = in.Content
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, models.NewInternalError(err)
	}
	return s.getComment(ctx, comment.ID)
}

// DeleteComment removes a comment and its whole reply subtree. The comment's
// author, the post's author, and admins may delete. Returns how many comments
// were removed.
func (s *CommentService) DeleteComment(ctx context.Context, actor Actor, commentID uint) (int64, error) {
	comment, err := s.getComment(ctx, commentID)
	if err != nil {
		return 0, err
	}

	if comment.UserID != actor.UserID && !actor.IsAdmin() {
		// The post's author moderates their own post's thread.
		post, err := s.postRepo.GetByID(ctx, comment.PostID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, models.NewForbiddenError("You can only delete your own comments")
			}
			return 0, models.NewInternalError(err)
		}
		if post.AuthorID != actor.UserID {
			return 0, models.NewForbiddenError("You can only delete your own comments")
		}
	}

	deleted, err := s.commentRepo.DeleteSubtree(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, models.NewNotFoundError("Comment", commentID)
		}
		return 0, models.NewInternalError(err)
	}
	return deleted, nil
}
