package server

import (
	"inkwell/internal/models"
	"inkwell/internal/repository"

	"github.com/gofiber/fiber/v2"
)

// ToggleFavorite handles POST /api/posts/:id/favorite
func (s *Server) ToggleFavorite(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	favorited, err := s.favoriteService.ToggleFavorite(c.UserContext(), s.actor(c), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"favorited": favorited,
	})
}

// GetFavoriteStatus handles GET /api/posts/:id/favorite
func (s *Server) GetFavoriteStatus(c *fiber.Ctx) error {
	postID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	favorited, err := s.favoriteService.IsFavorited(c.UserContext(), s.actor(c), postID)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":   true,
		"favorited": favorited,
	})
}

// ListFavorites handles GET /api/favorites
func (s *Server) ListFavorites(c *fiber.Ctx) error {
	p := parsePagination(c)
	posts, total, err := s.favoriteService.ListFavorites(c.UserContext(), s.actor(c), p.Page, p.PageSize)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":      true,
		"posts":        posts,
		"total_posts":  total,
		"total_pages":  repository.TotalPages(total, p.PageSize),
		"current_page": p.Page,
	})
}
