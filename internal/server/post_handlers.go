package server

import (
	"inkwell/internal/models"
	"inkwell/internal/repository"
	"inkwell/internal/service"

	"github.com/gofiber/fiber/v2"
)

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	var req struct {
		Title       string  `json:"title"`
		Content     string  `json:"content"`
		Category    string  `json:"category"`
		IsPublished bool    `json:"is_published"`
		CoverURL    *string `json:"cover_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.CreatePost(c.UserContext(), service.CreatePostInput{
		Actor:       s.actor(c),
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		IsPublished: req.IsPublished,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.GetPost(c.UserContext(), s.actor(c), id)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// ListPosts handles GET /api/posts
func (s *Server) ListPosts(c *fiber.Ctx) error {
	p := parsePagination(c)

	in := service.ListPostsInput{
		Actor:         s.actor(c),
		Search:        c.Query("search"),
		Category:      c.Query("category"),
		AuthorID:      uint(c.QueryInt("author_id", 0)),
		PublishedOnly: c.QueryBool("published_only", true),
		Page:          p.Page,
		PageSize:      p.PageSize,
	}

	posts, total, err := s.postService.ListPosts(c.UserContext(), in)
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

// UpdatePost handles PUT /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Title       *string `json:"title"`
		Content     *string `json:"content"`
		Category    *string `json:"category"`
		IsPublished *bool   `json:"is_published"`
		CoverURL    *string `json:"cover_url"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.UpdatePost(c.UserContext(), service.UpdatePostInput{
		Actor:       s.actor(c),
		PostID:      id,
		Title:       req.Title,
		Content:     req.Content,
		Category:    req.Category,
		IsPublished: req.IsPublished,
		CoverURL:    req.CoverURL,
	})
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success": true,
		"post":    post,
	})
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	if err := s.postService.DeletePost(c.UserContext(), s.actor(c), id); err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{"success": true})
}

// DeletePosts handles DELETE /api/admin/posts/batch
func (s *Server) DeletePosts(c *fiber.Ctx) error {
	var req struct {
		IDs []uint `json:"ids"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c,
			models.NewValidationError("Invalid request body"))
	}

	deleted, err := s.postService.DeletePosts(c.UserContext(), s.actor(c), req.IDs)
	if err != nil {
		return models.RespondWithError(c, err)
	}
	return c.JSON(fiber.Map{
		"success":       true,
		"deleted_count": deleted,
	})
}
