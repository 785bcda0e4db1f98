package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bookshelf-service/internal/domain"
	"github.com/spec-kit/bookshelf-service/internal/events"
	"github.com/spec-kit/bookshelf-service/internal/repository"
	apperrors "github.com/spec-kit/bookshelf-service/pkg/util"
)

// BookInput carries caller-supplied book fields. Identifier and owner are
// intentionally absent; both are controlled by the service.
type BookInput struct {
	Title     string
	Author    string
	Year      *int
	Synopsis  string
	Pages     *int
	Read      bool
	Loaned    bool
	LoanedTo  string
	Cover     []byte
	BackCover []byte
}

// BookService implements owner-scoped catalog operations. Every call takes
// the acting owner's ID explicitly; a book that does not exist and a book
// owned by someone else are reported identically.
type BookService struct {
	books      repository.BookRepository
	dispatcher events.Dispatcher
}

// NewBookService builds the service.
func NewBookService(books repository.BookRepository, dispatcher events.Dispatcher) *BookService {
	return &BookService{books: books, dispatcher: dispatcher}
}

// ListBooks returns the owner's shelf.
func (s *BookService) ListBooks(ctx context.Context, ownerID string) ([]domain.Book, error) {
	return s.books.ListByOwner(ctx, ownerID)
}

// GetBook fetches a single book owned by ownerID.
func (s *BookService) GetBook(ctx context.Context, ownerID, id string) (*domain.Book, error) {
	book, err := s.books.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, mapBookError(err)
	}
	return book, nil
}

// CreateBook persists a new book stamped with the acting owner.
func (s *BookService) CreateBook(ctx context.Context, ownerID string, input BookInput) (*domain.Book, error) {
	book := newBookFromInput(ownerID, input)
	if err := s.books.Create(ctx, book); err != nil {
		return nil, err
	}
	s.publishBook(ctx, events.EventBookCreated, ownerID, book)
	return book, nil
}

// UpdateBook replaces the mutable fields of an owned book. Owner and ID are
// never taken from the input.
func (s *BookService) UpdateBook(ctx context.Context, ownerID, id string, input BookInput) (*domain.Book, error) {
	book := newBookFromInput(ownerID, input)
	book.ID = id
	if err := s.books.UpdateByIDAndOwner(ctx, book); err != nil {
		return nil, mapBookError(err)
	}
	updated, err := s.books.GetByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, mapBookError(err)
	}
	s.publishBook(ctx, events.EventBookUpdated, ownerID, updated)
	return updated, nil
}

// DeleteBook removes an owned book.
func (s *BookService) DeleteBook(ctx context.Context, ownerID, id string) error {
	if err := s.books.DeleteByIDAndOwner(ctx, id, ownerID); err != nil {
		return mapBookError(err)
	}
	s.publishBook(ctx, events.EventBookDeleted, ownerID, &domain.Book{ID: id})
	return nil
}

// SearchByTitle searches the owner's shelf by title substring.
func (s *BookService) SearchByTitle(ctx context.Context, ownerID, title string) ([]domain.Book, error) {
	return s.books.SearchByTitleAndOwner(ctx, title, ownerID)
}

// newBookFromInput maps caller fields onto a fresh domain value, one field
// at a time.
func newBookFromInput(ownerID string, input BookInput) *domain.Book {
	return &domain.Book{
		OwnerID:   ownerID,
		Title:     input.Title,
		Author:    input.Author,
		Year:      input.Year,
		Synopsis:  input.Synopsis,
		Pages:     input.Pages,
		Read:      input.Read,
		Loaned:    input.Loaned,
		LoanedTo:  input.LoanedTo,
		Cover:     input.Cover,
		BackCover: input.BackCover,
	}
}

func mapBookError(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return apperrors.NewNotFound("book", nil)
	}
	return err
}

func (s *BookService) publishBook(ctx context.Context, eventType events.EventType, actorID string, book *domain.Book) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		ActorID:   actorID,
		Timestamp: time.Now(),
		Payload:   events.BookChangedPayload{BookID: book.ID, Title: book.Title},
	})
}
