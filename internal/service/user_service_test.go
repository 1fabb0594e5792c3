package service

import (
	"context"
	"testing"

	"inkwell/internal/auth"
	"inkwell/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// Low cost keeps bcrypt fast in tests.
const testBcryptCost = 4

func TestUserService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo(), testTokens(), testBcryptCost)
	ctx := context.Background()

	t.Run("short username", func(t *testing.T) {
		t.Parallel()
		_, _, err := svc.Register(ctx, RegisterInput{Username: "ab", Email: "a@b.com", Password: "secret1"})
		assertValidationError(t, err)
	})

	t.Run("bad email", func(t *testing.T) {
		t.Parallel()
		_, _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "not-an-email", Password: "secret1"})
		assertValidationError(t, err)
	})

	t.Run("short password", func(t *testing.T) {
		t.Parallel()
		_, _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.com", Password: "12345"})
		assertValidationError(t, err)
	})
}

func TestUserService_Register_Conflicts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("username taken", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.existsByUsernameFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
		svc := NewUserService(repo, testTokens(), testBcryptCost)
		_, _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.com", Password: "secret1"})
		assertConflictError(t, err)
	})

	t.Run("email taken", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.existsByEmailFn = func(_ context.Context, _ string) (bool, error) { return true, nil }
		svc := NewUserService(repo, testTokens(), testBcryptCost)
		_, _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.com", Password: "secret1"})
		assertConflictError(t, err)
	})

	t.Run("race lost at insert maps to conflict", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.createFn = func(_ context.Context, _ *models.User) error {
			return &pgError{`duplicate key value violates unique constraint "idx_users_username"`}
		}
		svc := NewUserService(repo, testTokens(), testBcryptCost)
		_, _, err := svc.Register(ctx, RegisterInput{Username: "alice", Email: "a@b.com", Password: "secret1"})
		assertConflictError(t, err)
	})
}

type pgError struct{ msg string }

func (e *pgError) Error() string { return e.msg }

func TestUserService_Register_Success(t *testing.T) {
	t.Parallel()

	repo := noopUserRepo()
	repo.createFn = func(_ context.Context, u *models.User) error {
		u.ID = 7
		return nil
	}
	tokens := testTokens()
	svc := NewUserService(repo, tokens, testBcryptCost)

	user, token, err := svc.Register(context.Background(), RegisterInput{
		Username: "alice",
		Email:    "alice@example.com",
		Password: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, uint(7), user.ID)
	assert.Equal(t, models.RoleUser, user.Role)
	assert.NotEqual(t, "secret1", user.Password, "password must be stored hashed")

	claims, err := tokens.Verify(token)
	require.NoError(t, err)
	id, err := claims.UserID()
	require.NoError(t, err)
	assert.Equal(t, uint(7), id)
	assert.Equal(t, "alice", claims.Username)
}

func TestUserService_Login(t *testing.T) {
	t.Parallel()

	hash, err := auth.HashPassword("correct-horse", testBcryptCost)
	require.NoError(t, err)

	stored := &models.User{ID: 3, Username: "alice", Email: "alice@example.com", Password: hash, Role: models.RoleUser}

	newRepo := func() *userRepoStub {
		repo := noopUserRepo()
		repo.getByUsernameFn = func(_ context.Context, username string) (*models.User, error) {
			if username == "alice" {
				return stored, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		repo.getByEmailFn = func(_ context.Context, email string) (*models.User, error) {
			if email == "alice@example.com" {
				return stored, nil
			}
			return nil, gorm.ErrRecordNotFound
		}
		return repo
	}

	ctx := context.Background()

	t.Run("by username", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo(), testTokens(), testBcryptCost)
		user, token, err := svc.Login(ctx, LoginInput{Identity: "alice", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("by email", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo(), testTokens(), testBcryptCost)
		user, _, err := svc.Login(ctx, LoginInput{Identity: "alice@example.com", Password: "correct-horse"})
		require.NoError(t, err)
		assert.Equal(t, uint(3), user.ID)
	})

	t.Run("wrong password and unknown user are indistinguishable", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(newRepo(), testTokens(), testBcryptCost)

		_, _, errWrongPass := svc.Login(ctx, LoginInput{Identity: "alice", Password: "nope"})
		assertUnauthorizedError(t, errWrongPass)

		_, _, errUnknown := svc.Login(ctx, LoginInput{Identity: "ghost", Password: "nope"})
		assertUnauthorizedError(t, errUnknown)

		var e1, e2 *models.AppError
		require.ErrorAs(t, errWrongPass, &e1)
		require.ErrorAs(t, errUnknown, &e2)
		assert.Equal(t, e1.Message, e2.Message)
	})
}

func TestUserService_UpdateProfile_Authorization(t *testing.T) {
	t.Parallel()

	newName := "newname"
	ctx := context.Background()

	t.Run("stranger cannot update", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), testTokens(), testBcryptCost)
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			Actor:    Actor{UserID: 2, Role: models.RoleUser},
			UserID:   1,
			Username: &newName,
		})
		assertForbiddenError(t, err)
	})

	t.Run("owner can update", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), testTokens(), testBcryptCost)
		user, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			Actor:    Actor{UserID: 1, Role: models.RoleUser},
			UserID:   1,
			Username: &newName,
		})
		require.NoError(t, err)
		assert.Equal(t, newName, user.Username)
	})

	t.Run("admin can update anyone", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), testTokens(), testBcryptCost)
		user, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			Actor:    Actor{UserID: 99, Role: models.RoleAdmin},
			UserID:   1,
			Username: &newName,
		})
		require.NoError(t, err)
		assert.Equal(t, newName, user.Username)
	})

	t.Run("password change is hashed", func(t *testing.T) {
		t.Parallel()
		var saved *models.User
		repo := noopUserRepo()
		repo.updateFn = func(_ context.Context, u *models.User) error {
			saved = u
			return nil
		}
		svc := NewUserService(repo, testTokens(), testBcryptCost)
		newPass := "fresh-password"
		_, err := svc.UpdateProfile(ctx, UpdateProfileInput{
			Actor:    Actor{UserID: 1, Role: models.RoleUser},
			UserID:   1,
			Password: &newPass,
		})
		require.NoError(t, err)
		require.NotNil(t, saved)
		ok, err := auth.CheckPassword(newPass, saved.Password)
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestUserService_AdminCreateUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	name := "moderator"
	email := "mod@example.com"
	pass := "secret1"

	t.Run("missing fields", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), testTokens(), testBcryptCost)
		_, err := svc.AdminCreateUser(ctx, AdminUpsertUserInput{Username: &name})
		assertValidationError(t, err)
	})

	t.Run("unknown role", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), testTokens(), testBcryptCost)
		bad := models.Role("superuser")
		_, err := svc.AdminCreateUser(ctx, AdminUpsertUserInput{
			Username: &name, Email: &email, Password: &pass, Role: &bad,
		})
		assertValidationError(t, err)
	})

	t.Run("explicit admin role", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), testTokens(), testBcryptCost)
		admin := models.RoleAdmin
		user, err := svc.AdminCreateUser(ctx, AdminUpsertUserInput{
			Username: &name, Email: &email, Password: &pass, Role: &admin,
		})
		require.NoError(t, err)
		assert.Equal(t, models.RoleAdmin, user.Role)
	})
}

func TestUserService_AdminUpdateUser_RoleChange(t *testing.T) {
	t.Parallel()

	var saved *models.User
	repo := noopUserRepo()
	repo.updateFn = func(_ context.Context, u *models.User) error {
		saved = u
		return nil
	}
	svc := NewUserService(repo, testTokens(), testBcryptCost)

	admin := models.RoleAdmin
	user, err := svc.AdminUpdateUser(context.Background(), 5, AdminUpsertUserInput{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, user.Role)
	require.NotNil(t, saved)
	assert.Equal(t, models.RoleAdmin, saved.Role)
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("self delete allowed", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), testTokens(), testBcryptCost)
		assert.NoError(t, svc.DeleteUser(ctx, Actor{UserID: 1, Role: models.RoleUser}, 1))
	})

	t.Run("stranger forbidden", func(t *testing.T) {
		t.Parallel()
		svc := NewUserService(noopUserRepo(), testTokens(), testBcryptCost)
		err := svc.DeleteUser(ctx, Actor{UserID: 2, Role: models.RoleUser}, 1)
		assertForbiddenError(t, err)
	})

	t.Run("missing user maps to not found", func(t *testing.T) {
		t.Parallel()
		repo := noopUserRepo()
		repo.deleteFn = func(_ context.Context, _ uint) error { return gorm.ErrRecordNotFound }
		svc := NewUserService(repo, testTokens(), testBcryptCost)
		err := svc.DeleteUser(ctx, Actor{UserID: 99, Role: models.RoleAdmin}, 1)
		assertNotFoundError(t, err)
	})
}

func TestUserService_DeleteUsers_EmptyIDs(t *testing.T) {
	t.Parallel()

	svc := NewUserService(noopUserRepo(), testTokens(), testBcryptCost)
	_, err := svc.DeleteUsers(context.Background(), nil)
	assertValidationError(t, err)
}
