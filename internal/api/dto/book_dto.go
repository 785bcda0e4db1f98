package dto

import (
	"time"

	"github.com/spec-kit/bookshelf-service/internal/domain"
	"github.com/spec-kit/bookshelf-service/internal/service"
)

// BookRequest payload. Owner and ID fields are not accepted from callers.
type BookRequest struct {
	Title    string `json:"title"`
	Author   string `json:"author"`
	Year     *int   `json:"year"`
	Synopsis string `json:"synopsis"`
	Pages    *int   `json:"pages"`
	Read     bool   `json:"read"`
	Loaned   bool   `json:"loaned"`
	LoanedTo string `json:"loaned_to"`
	Cover    []byte `json:"cover"`
}

// BookResponse payload. The back cover stays server-side.
type BookResponse struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Author    string    `json:"author"`
	Year      *int      `json:"year,omitempty"`
	Synopsis  string    `json:"synopsis,omitempty"`
	Pages     *int      `json:"pages,omitempty"`
	Read      bool      `json:"read"`
	Loaned    bool      `json:"loaned"`
	LoanedTo  string    `json:"loaned_to,omitempty"`
	Cover     []byte    `json:"cover,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ToBookInput maps the request onto service input, field by field.
func (r BookRequest) ToBookInput() service.BookInput {
	return service.BookInput{
		Title:    r.Title,
		Author:   r.Author,
		Year:     r.Year,
		Synopsis: r.Synopsis,
		Pages:    r.Pages,
		Read:     r.Read,
		Loaned:   r.Loaned,
		LoanedTo: r.LoanedTo,
		Cover:    r.Cover,
	}
}

// NewBookResponse maps a domain book onto the wire shape, field by field.
func NewBookResponse(book *domain.Book) BookResponse {
	return BookResponse{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Year:      book.Year,
		Synopsis:  book.Synopsis,
		Pages:     book.Pages,
		Read:      book.Read,
		Loaned:    book.Loaned,
		LoanedTo:  book.LoanedTo,
		Cover:     book.Cover,
		CreatedAt: book.CreatedAt,
		UpdatedAt: book.UpdatedAt,
	}
}

// NewBookResponses maps a slice of domain books.
func NewBookResponses(books []domain.Book) []BookResponse {
	items := make([]BookResponse, 0, len(books))
	for i := range books {
		items = append(items, NewBookResponse(&books[i]))
	}
	return items
}
