package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookshelf-service/internal/api/dto"
	"github.com/spec-kit/bookshelf-service/internal/auth"
	"github.com/spec-kit/bookshelf-service/internal/service"
	apperrors "github.com/spec-kit/bookshelf-service/pkg/util"
)

// BooksHandler manages the authenticated user's shelf.
type BooksHandler struct {
	service *service.BookService
}

// NewBooksHandler constructs handler.
func NewBooksHandler(bookService *service.BookService) *BooksHandler {
	return &BooksHandler{service: bookService}
}

// ListBooks GET /books.
func (h *BooksHandler) ListBooks(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	books, err := h.service.ListBooks(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookResponses(books)})
}

// GetBook GET /books/:id.
func (h *BooksHandler) GetBook(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	book, err := h.service.GetBook(c.Context(), principal.User.ID, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookResponse(book)})
}

// CreateBook POST /books.
func (h *BooksHandler) CreateBook(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	req, err := parseBookRequest(c)
	if err != nil {
		return err
	}
	book, err := h.service.CreateBook(c.Context(), principal.User.ID, req.ToBookInput())
	if err != nil {
		return err
	}
	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": dto.NewBookResponse(book)})
}

// UpdateBook PUT /books/:id.
func (h *BooksHandler) UpdateBook(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	req, err := parseBookRequest(c)
	if err != nil {
		return err
	}
	book, err := h.service.UpdateBook(c.Context(), principal.User.ID, c.Params("id"), req.ToBookInput())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookResponse(book)})
}

// DeleteBook DELETE /books/:id.
func (h *BooksHandler) DeleteBook(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	if err := h.service.DeleteBook(c.Context(), principal.User.ID, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// SearchBooks GET /books/search.
func (h *BooksHandler) SearchBooks(c *fiber.Ctx) error {
	principal, err := requirePrincipal(c)
	if err != nil {
		return err
	}
	title := strings.TrimSpace(c.Query("title"))
	if title == "" {
		return apperrors.NewValidationError("title query parameter required", nil)
	}
	books, err := h.service.SearchByTitle(c.Context(), principal.User.ID, title)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.NewBookResponses(books)})
}

func requirePrincipal(c *fiber.Ctx) (*auth.Principal, error) {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return nil, apperrors.NewUnauthorized("authentication required")
	}
	return principal, nil
}

func parseBookRequest(c *fiber.Ctx) (dto.BookRequest, error) {
	var req dto.BookRequest
	if err := c.BodyParser(&req); err != nil {
		return req, apperrors.NewValidationError("invalid payload", nil)
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Author) == "" {
		return req, apperrors.NewValidationError("title and author required", nil)
	}
	return req, nil
}
