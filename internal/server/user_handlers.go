package server

import (
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetMyProfile handles GET /api/users/me
func (s *Server) GetMyProfile(c *fiber.Ctx) error {
	actor := s.actor(c)
	user, err := s.userService.GetUser(c.UserContext(), actor.UserID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"user_info": userInfo(user),
	})
}

// GetUser handles GET /api/admin/users/:id
func (s *Server) GetUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	user, err := s.userService.GetUser(c.UserContext(), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"user_info": userInfo(user),
	})
}

// UpdateMyProfile handles PUT /api/users/me
func (s *Server) UpdateMyProfile(c *fiber.Ctx) error {
	var req struct {
		Username *string `json:"username"`
		Email    *string `json:"email"`
		Password *string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	actor := s.actor(c)
	user, err := s.userService.UpdateProfile(c.UserContext(), service.UpdateProfileInput{
		Actor:    actor,
		UserID:   actor.UserID,
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"user_info": userInfo(user),
	})
}

// ListUsers handles GET /api/admin/users
func (s *Server) ListUsers(c *fiber.Ctx) error {
	p := parsePagination(c)
	users, total, err := s.userService.ListUsers(c.UserContext(), p.Page, p.PageSize)
	if err != nil {
		return models.RespondWithError(c, err)
	}

	infos := make([]fiber.Map, 0, len(users))
	for i := range users {
		infos = append(infos, userInfo(&users[i]))
	}

	return c.JSON(fiber.Map{
		"success":      true,
		"users":        infos,
		"total_users":  total,
		"total_pages":  repository.TotalPages(total, p.PageSize),
		"current_page": p.Page,
	})
}

// AdminCreateUser handles POST /api/admin/users
func (s *Server) AdminCreateUser(c *fiber.Ctx) error {
	var req struct {
		Username *string      `json:"username"`
		Email    *string      `json:"email"`
		Password *string      `json:"password"`
		Role     *models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.AdminCreateUser(c.UserContext(), service.AdminUpsertUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":   true,
		"user_info": userInfo(user),
	})
}

// AdminUpdateUser handles PUT /api/admin/users/:id
func (s *Server) AdminUpdateUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Username *string      `json:"username"`
		Email    *string      `json:"email"`
		Password *string      `json:"password"`
		Role     *models.Role `json:"role"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	user, err := s.userService.AdminUpdateUser(c.UserContext(), id, service.AdminUpsertUserInput{
		Username: req.Username,
		Email:    req.Email,
		Password: req.Password,
		Role:     req.Role,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"user_info": userInfo(user),
	})
}

// AdminDeleteUser handles DELETE /api/admin/users/:id
func (s *Server) AdminDeleteUser(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.userService.DeleteUser(c.UserContext(), s.actor(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeleteUsers handles DELETE /api/admin/users/batch
func (s *Server) DeleteUsers(c *fiber.Ctx) error {
	var req struct {
		IDs []uint `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	deleted, err := s.userService.DeleteUsers(c.UserContext(), req.IDs)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"deleted_count": deleted,
	})
}
