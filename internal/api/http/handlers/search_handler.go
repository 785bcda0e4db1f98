package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookshelf-service/internal/service"
	apperrors "github.com/spec-kit/bookshelf-service/pkg/util"
)

// SearchHandler proxies external volume search.
type SearchHandler struct {
	service *service.SearchService
}

// NewSearchHandler constructs handler.
func NewSearchHandler(searchService *service.SearchService) *SearchHandler {
	return &SearchHandler{service: searchService}
}

// ExternalSearch GET /books/external-search.
func (h *SearchHandler) ExternalSearch(c *fiber.Ctx) error {
	if _, err := requirePrincipal(c); err != nil {
		return err
	}
	title := strings.TrimSpace(c.Query("title"))
	author := strings.TrimSpace(c.Query("author"))
	if title == "" && author == "" {
		return apperrors.NewValidationError("title or author query parameter required", nil)
	}

	results, err := h.service.ExternalSearch(c.Context(), title, author)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": results})
}
