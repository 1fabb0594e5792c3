package service

import (
	"context"
	"errors"
	"strings"

	"inkwell/internal/auth"
	"inkwell/internal/models"
	"inkwell/internal/observability"
	"inkwell/internal/repository"
	"inkwell/internal/validation"

	"gorm.io/gorm"
)

// UserService implements account registration, login, and profile management.
type UserService struct {
	userRepo   repository.UserRepository
	tokens     *auth.TokenManager
	bcryptCost int
}

// RegisterInput carries a self-registration request.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// LoginInput carries a login request. Identity is a username or, when it
// contains '@', an email address.
type LoginInput struct {
	Identity string
	Password string
}

// UpdateProfileInput carries a partial profile update. Nil fields are left
// unchanged.
type UpdateProfileInput struct {
	Actor    Actor
	UserID   uint
	Username *string
	Email    *string
	Password *string
}

// AdminUpsertUserInput carries an admin-side create or update. For updates,
// nil fields are left unchanged.
type AdminUpsertUserInput struct {
	Username *string
	Email    *string
	Password *string
	Role     *models.Role
}

// NewUserService creates a new user service.
func NewUserService(userRepo repository.UserRepository, tokens *auth.TokenManager, bcryptCost int) *UserService {
	return &UserService{userRepo: userRepo, tokens: tokens, bcryptCost: bcryptCost}
}

// Register creates a new account with the default user role and returns the
// created user plus a session token.
func (s *UserService) Register(ctx context.Context, in RegisterInput) (*models.User, string, error) {
	if err := validation.ValidateUsername(in.Username); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(in.Email); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(in.Password); err != nil {
		return nil, "", models.NewValidationError(err.Error())
	}

	// Advisory pre-checks give friendly messages; the unique indexes remain
	// the source of truth under concurrent registration.
	if taken, err := s.userRepo.ExistsByUsername(ctx, in.Username); err != nil {
		return nil, "", models.NewInternalError(err)
	} else if taken {
		return nil, "", models.NewConflictError("Username already taken")
	}
	if taken, err := s.userRepo.ExistsByEmail(ctx, in.Email); err != nil {
		return nil, "", models.NewInternalError(err)
	} else if taken {
		return nil, "", models.NewConflictError("Email already registered")
	}

	hash, err := auth.HashPassword(in.Password, s.bcryptCost)
	if err != nil {
		return nil, "", err
	}

	user := &models.User{
		Username: in.Username,
		Email:    in.Email,
		Password: hash,
		Role:     models.RoleUser,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isUniqueConstraintError(err) {
			return nil, "", models.NewConflictError("Username or email already taken")
		}
		return nil, "", models.NewInternalError(err)
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// Login verifies credentials and returns the user plus a session token.
// Unknown identity and wrong password produce the same error so the response
// does not leak which accounts exist.
func (s *UserService) Login(ctx context.Context, in LoginInput) (*models.User, string, error) {
	span, ctx := observability.NewSpan(ctx, "UserService.Login")
	defer span.End()

	invalid := models.NewUnauthorizedError("Invalid username or password")

	var user *models.User
	var err error
	if strings.Contains(in.Identity, "@") {
		user, err = s.userRepo.GetByEmail(ctx, in.Identity)
	} else {
		user, err = s.userRepo.GetByUsername(ctx, in.Identity)
	}
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			observability.RecordAuthFailure("unknown_identity")
			return nil, "", invalid
		}
		span.SetError(err)
		return nil, "", models.NewInternalError(err)
	}

	ok, err := auth.CheckPassword(in.Password, user.Password)
	if err != nil {
		return nil, "", err
	}
	if !ok {
		observability.RecordAuthFailure("wrong_password")
		return nil, "", invalid
	}

	token, err := s.tokens.Issue(user.ID, user.Username, user.Role)
	if err != nil {
		return nil, "", models.NewInternalError(err)
	}
	return user, token, nil
}

// GetUser returns a single user by ID.
func (s *UserService) GetUser(ctx context.Context, id uint) (*models.User, error) {
	user, err := s.userRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("User", id)
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// UpdateProfile applies a partial update. Only the account owner or an admin
// may update a profile; only an admin may touch another user's account.
func (s *UserService) UpdateProfile(ctx context.Context, in UpdateProfileInput) (*models.User, error) {
	if in.Actor.UserID != in.UserID && !in.Actor.IsAdmin() {
		return nil, models.NewForbiddenError("You can only update your own profile")
	}

	user, err := s.GetUser(ctx, in.UserID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.NewConflictError("Username or email already taken")
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// AdminCreateUser creates an account with an explicit role.
func (s *UserService) AdminCreateUser(ctx context.Context, in AdminUpsertUserInput) (*models.User, error) {
	if in.Username == nil || in.Email == nil || in.Password == nil {
		return nil, models.NewValidationError("username, email, and password are required")
	}
	if err := validation.ValidateUsername(*in.Username); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(*in.Email); err != nil {
		return nil, models.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(*in.Password); err != nil {
		return nil, models.NewValidationError(err.Error())
	}

	role := models.RoleUser
	if in.Role != nil {
		if err := validation.ValidateRole(*in.Role); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		role = *in.Role
	}

	hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Username: *in.Username,
		Email:    *in.Email,
		Password: hash,
		Role:     role,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.NewConflictError("Username or email already taken")
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// AdminUpdateUser applies a partial update to any account, including its role.
func (s *UserService) AdminUpdateUser(ctx context.Context, userID uint, in AdminUpsertUserInput) (*models.User, error) {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	if in.Username != nil {
		if err := validation.ValidateUsername(*in.Username); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Username = *in.Username
	}
	if in.Email != nil {
		if err := validation.ValidateEmail(*in.Email); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Email = *in.Email
	}
	if in.Password != nil {
		if err := validation.ValidatePassword(*in.Password); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		hash, err := auth.HashPassword(*in.Password, s.bcryptCost)
		if err != nil {
			return nil, err
		}
		user.Password = hash
	}
	if in.Role != nil {
		if err := validation.ValidateRole(*in.Role); err != nil {
			return nil, models.NewValidationError(err.Error())
		}
		user.Role = *in.Role
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if isUniqueConstraintError(err) {
			return nil, models.NewConflictError("Username or email already taken")
		}
		return nil, models.NewInternalError(err)
	}
	return user, nil
}

// DeleteUser removes an account. Users may delete themselves; admins may
// delete anyone.
func (s *UserService) DeleteUser(ctx context.Context, actor Actor, userID uint) error {
	if actor.UserID != userID && !actor.IsAdmin() {
		return models.NewForbiddenError("You can only delete your own account")
	}
	if err := s.userRepo.Delete(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return models.NewNotFoundError("User", userID)
		}
		return models.NewInternalError(err)
	}
	return nil
}

// DeleteUsers removes a batch of accounts and returns how many existed.
func (s *UserService) DeleteUsers(ctx context.Context, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, models.NewValidationError("ids must not be empty")
	}
	deleted, err := s.userRepo.DeleteMany(ctx, ids)
	if err != nil {
		return 0, models.NewInternalError(err)
	}
	return deleted, nil
}

// ListUsers returns a page of users plus the total count.
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	limit, offset := repository.NormalizePagination(page, pageSize)
	users, total, err := s.userRepo.List(ctx, limit, offset)
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return users, total, nil
}
