package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/bookshelf-service/internal/domain"
	"github.com/spec-kit/bookshelf-service/internal/repository"
)

// In-memory repository fakes shared by the service tests.

type fakeUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[string]*domain.User{}}
}

func (f *fakeUserRepo) Create(_ context.Context, user *domain.User) error {
	if _, exists := f.users[user.Username]; exists {
		return repository.ErrUsernameTaken
	}
	f.seq++
	user.ID = fmt.Sprintf("user-%d", f.seq)
	user.CreatedAt = time.Now()
	user.UpdatedAt = user.CreatedAt
	stored := *user
	f.users[user.Username] = &stored
	return nil
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	for _, user := range f.users {
		if user.ID == id {
			copied := *user
			return &copied, nil
		}
	}
	return nil, pgx.ErrNoRows
}

func (f *fakeUserRepo) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	user, ok := f.users[username]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	copied := *user
	return &copied, nil
}

func (f *fakeUserRepo) delete(username string) {
	delete(f.users, username)
}

type fakeBookRepo struct {
	books map[string]*domain.Book
	seq   int
}

func newFakeBookRepo() *fakeBookRepo {
	return &fakeBookRepo{books: map[string]*domain.Book{}}
}

func (f *fakeBookRepo) Create(_ context.Context, book *domain.Book) error {
	f.seq++
	book.ID = fmt.Sprintf("book-%d", f.seq)
	book.CreatedAt = time.Now()
	book.UpdatedAt = book.CreatedAt
	stored := *book
	f.books[book.ID] = &stored
	return nil
}

func (f *fakeBookRepo) GetByIDAndOwner(_ context.Context, id, ownerID string) (*domain.Book, error) {
	book, ok := f.books[id]
	if !ok || book.OwnerID != ownerID {
		return nil, pgx.ErrNoRows
	}
	copied := *book
	return &copied, nil
}

func (f *fakeBookRepo) UpdateByIDAndOwner(_ context.Context, book *domain.Book) error {
	existing, ok := f.books[book.ID]
	if !ok || existing.OwnerID != book.OwnerID {
		return pgx.ErrNoRows
	}
	updated := *book
	updated.CreatedAt = existing.CreatedAt
	updated.UpdatedAt = time.Now()
	f.books[book.ID] = &updated
	return nil
}

func (f *fakeBookRepo) DeleteByIDAndOwner(_ context.Context, id, ownerID string) error {
	book, ok := f.books[id]
	if !ok || book.OwnerID != ownerID {
		return pgx.ErrNoRows
	}
	delete(f.books, id)
	return nil
}

func (f *fakeBookRepo) ListByOwner(_ context.Context, ownerID string) ([]domain.Book, error) {
	books := []domain.Book{}
	for _, book := range f.books {
		if book.OwnerID == ownerID {
			books = append(books, *book)
		}
	}
	return books, nil
}

func (f *fakeBookRepo) SearchByTitleAndOwner(_ context.Context, title, ownerID string) ([]domain.Book, error) {
	books := []domain.Book{}
	for _, book := range f.books {
		if book.OwnerID == ownerID && strings.Contains(strings.ToLower(book.Title), strings.ToLower(title)) {
			books = append(books, *book)
		}
	}
	return books, nil
}
