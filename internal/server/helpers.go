package server

import (
	"errors"

	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil (not this error) to avoid
// Fiber's ErrorHandler overwriting the response.
var errResponseWritten = errors.New("response already written")

// Pagination holds parsed 1-indexed page query parameters.
type Pagination struct {
	Page     int
	PageSize int
}

// parsePagination extracts page and page_size query parameters.
func parsePagination(c *fiber.Ctx) Pagination {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	pageSize := c.QueryInt("page_size", repository.DefaultPageSize)
	if pageSize < 1 {
		pageSize = repository.DefaultPageSize
	}
	if pageSize > repository.MaxPageSize {
		pageSize = repository.MaxPageSize
	}
	return Pagination{Page: page, PageSize: pageSize}
}

// parseID extracts a route parameter by name as a positive uint.
// On failure it writes a 400 JSON response and returns errResponseWritten.
// Callers should check: if err != nil { return nil }
func (s *Server) parseID(c *fiber.Ctx, param string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c,
			models.NewValidationError("Invalid "+param))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// actor builds the service identity from locals set by the auth middleware.
// Anonymous requests yield a zero-value Actor.
func (s *Server) actor(c *fiber.Ctx) service.Actor {
	userID, _ := c.Locals("userID").(uint)
	role, _ := c.Locals("role").(models.Role)
	return service.Actor{UserID: userID, Role: role}
}

// userInfo is the public shape of a user in responses.
func userInfo(u *models.User) fiber.Map {
	return fiber.Map{
		"id":         u.ID,
		"username":   u.Username,
		"email":      u.Email,
		"role":       u.Role,
		"created_at": u.CreatedAt,
	}
}
