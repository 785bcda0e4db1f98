package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/bookshelf-service/internal/api/http/handlers"
	"github.com/spec-kit/bookshelf-service/internal/auth"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health         *handlers.HealthHandler
	Auth           *handlers.AuthHandler
	Books          *handlers.BooksHandler
	Search         *handlers.SearchHandler
	AuthMiddleware *auth.Middleware
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth")
	authGroup.Post("/register", cfg.Auth.Register)
	authGroup.Post("/login", cfg.Auth.Login)
	authGroup.Post("/refresh", cfg.Auth.Refresh)

	books := app.Group("/books", cfg.AuthMiddleware.Handle)
	books.Get("/", cfg.Books.ListBooks)
	books.Post("/", cfg.Books.CreateBook)
	books.Get("/search", cfg.Books.SearchBooks)
	books.Get("/external-search", cfg.Search.ExternalSearch)
	books.Get("/:id", cfg.Books.GetBook)
	books.Put("/:id", cfg.Books.UpdateBook)
	books.Delete("/:id", cfg.Books.DeleteBook)
}
