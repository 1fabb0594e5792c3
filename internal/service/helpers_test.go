package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/stretchr/testify/require"
)

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	require.Error(t, err)
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %T: %v", err, err)
	require.Equal(t, code, appErr.Code)
}

func assertValidationError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeValidation)
}

func assertForbiddenError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeForbidden)
}

func assertNotFoundError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeNotFound)
}

func assertUnauthorizedError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeUnauthorized)
}

func assertConflictError(t *testing.T, err error) {
	t.Helper()
	assertAppError(t, err, models.CodeConflict)
}

func testTokens() *auth.TokenManager {
	return auth.NewTokenManager("service-test-secret", time.Hour)
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn           func(context.Context, *models.User) error
	getByIDFn          func(context.Context, uint) (*models.User, error)
	getByUsernameFn    func(context.Context, string) (*models.User, error)
	getByEmailFn       func(context.Context, string) (*models.User, error)
	existsByUsernameFn func(context.Context, string) (bool, error)
	existsByEmailFn    func(context.Context, string) (bool, error)
	updateFn           func(context.Context, *models.User) error
	deleteFn           func(context.Context, uint) error
	deleteManyFn       func(context.Context, []uint) (int64, error)
	listFn             func(context.Context, int, int) ([]models.User, int64, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByUsername(ctx context.Context, username string) (*models.User, error) {
	return s.getByUsernameFn(ctx, username)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return s.existsByUsernameFn(ctx, username)
}
func (s *userRepoStub) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return s.existsByEmailFn(ctx, email)
}
func (s *userRepoStub) Update(ctx context.Context, user *models.User) error {
	return s.updateFn(ctx, user)
}
func (s *userRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *userRepoStub) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	return s.deleteManyFn(ctx, ids)
}
func (s *userRepoStub) List(ctx context.Context, limit, offset int) ([]models.User, int64, error) {
	return s.listFn(ctx, limit, offset)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn: func(_ context.Context, u *models.User) error {
			u.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.User, error) {
			return &models.User{ID: id, Username: "stub", Role: models.RoleUser}, nil
		},
		getByUsernameFn: func(_ context.Context, username string) (*models.User, error) {
			return &models.User{ID: 1, Username: username, Role: models.RoleUser}, nil
		},
		getByEmailFn: func(_ context.Context, email string) (*models.User, error) {
			return &models.User{ID: 1, Email: email, Role: models.RoleUser}, nil
		},
		existsByUsernameFn: func(_ context.Context, _ string) (bool, error) { return false, nil },
		existsByEmailFn:    func(_ context.Context, _ string) (bool, error) { return false, nil },
		updateFn:           func(_ context.Context, _ *models.User) error { return nil },
		deleteFn:           func(_ context.Context, _ uint) error { return nil },
		deleteManyFn:       func(_ context.Context, ids []uint) (int64, error) { return int64(len(ids)), nil },
		listFn:             func(_ context.Context, _, _ int) ([]models.User, int64, error) { return nil, 0, nil },
	}
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn             func(context.Context, *models.Post) error
	getByIDFn            func(context.Context, uint) (*models.Post, error)
	listFn               func(context.Context, repository.ListPostsParams) ([]models.Post, int64, error)
	updateFn             func(context.Context, *models.Post) error
	deleteFn             func(context.Context, uint) error
	deleteManyFn         func(context.Context, []uint) (int64, error)
	incrementViewCountFn func(context.Context, uint) error
	existsFn             func(context.Context, uint) (bool, error)
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, params repository.ListPostsParams) ([]models.Post, int64, error) {
	return s.listFn(ctx, params)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) DeleteMany(ctx context.Context, ids []uint) (int64, error) {
	return s.deleteManyFn(ctx, ids)
}
func (s *postRepoStub) IncrementViewCount(ctx context.Context, id uint) error {
	return s.incrementViewCountFn(ctx, id)
}
func (s *postRepoStub) Exists(ctx context.Context, id uint) (bool, error) {
	return s.existsFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn: func(_ context.Context, p *models.Post) error {
			p.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Post, error) {
			return &models.Post{ID: id, Title: "stub", AuthorID: 1, IsPublished: true}, nil
		},
		listFn: func(_ context.Context, _ repository.ListPostsParams) ([]models.Post, int64, error) {
			return nil, 0, nil
		},
		updateFn:             func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:             func(_ context.Context, _ uint) error { return nil },
		deleteManyFn:         func(_ context.Context, ids []uint) (int64, error) { return int64(len(ids)), nil },
		incrementViewCountFn: func(_ context.Context, _ uint) error { return nil },
		existsFn:             func(_ context.Context, _ uint) (bool, error) { return true, nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	createFn        func(context.Context, *models.Comment) error
	getByIDFn       func(context.Context, uint) (*models.Comment, error)
	listByPostFn    func(context.Context, uint, int, int) ([]models.Comment, int64, error)
	updateFn        func(context.Context, *models.Comment) error
	deleteSubtreeFn func(context.Context, uint) (int64, error)
}

func (s *commentRepoStub) Create(ctx context.Context, comment *models.Comment) error {
	return s.createFn(ctx, comment)
}
func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint, limit, offset int) ([]models.Comment, int64, error) {
	return s.listByPostFn(ctx, postID, limit, offset)
}
func (s *commentRepoStub) Update(ctx context.Context, comment *models.Comment) error {
	return s.updateFn(ctx, comment)
}
func (s *commentRepoStub) DeleteSubtree(ctx context.Context, id uint) (int64, error) {
	return s.deleteSubtreeFn(ctx, id)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		createFn: func(_ context.Context, c *models.Comment) error {
			c.ID = 1
			return nil
		},
		getByIDFn: func(_ context.Context, id uint) (*models.Comment, error) {
			return &models.Comment{ID: id, PostID: 1, UserID: 1}, nil
		},
		listByPostFn: func(_ context.Context, _ uint, _, _ int) ([]models.Comment, int64, error) {
			return nil, 0, nil
		},
		updateFn:        func(_ context.Context, _ *models.Comment) error { return nil },
		deleteSubtreeFn: func(_ context.Context, _ uint) (int64, error) { return 1, nil },
	}
}

// favoriteRepoStub is a stub for repository.FavoriteRepository.
type favoriteRepoStub struct {
	toggleFn      func(context.Context, uint, uint) (bool, error)
	isFavoritedFn func(context.Context, uint, uint) (bool, error)
	listByUserFn  func(context.Context, uint, int, int) ([]models.Post, int64, error)
}

func (s *favoriteRepoStub) Toggle(ctx context.Context, userID, postID uint) (bool, error) {
	return s.toggleFn(ctx, userID, postID)
}
func (s *favoriteRepoStub) IsFavorited(ctx context.Context, userID, postID uint) (bool, error) {
	return s.isFavoritedFn(ctx, userID, postID)
}
func (s *favoriteRepoStub) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]models.Post, int64, error) {
	return s.listByUserFn(ctx, userID, limit, offset)
}

func noopFavoriteRepo() *favoriteRepoStub {
	return &favoriteRepoStub{
		toggleFn:      func(_ context.Context, _, _ uint) (bool, error) { return true, nil },
		isFavoritedFn: func(_ context.Context, _, _ uint) (bool, error) { return false, nil },
		listByUserFn: func(_ context.Context, _ uint, _, _ int) ([]models.Post, int64, error) {
			return nil, 0, nil
		},
	}
}
