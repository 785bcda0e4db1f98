package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/bookshelf-service/internal/domain"
)

func newTestBookService() (*BookService, *fakeBookRepo) {
	books := newFakeBookRepo()
	return NewBookService(books, nil), books
}

func createBook(t *testing.T, svc *BookService, ownerID, title string) *domain.Book {
	t.Helper()
	book, err := svc.CreateBook(context.Background(), ownerID, BookInput{Title: title, Author: "Some Author"})
	require.NoError(t, err)
	return book
}

func TestCreateBookStampsOwner(t *testing.T) {
	svc, repo := newTestBookService()

	book := createBook(t, svc, "alice", "Dune")
	assert.Equal(t, "alice", book.OwnerID)
	assert.NotEmpty(t, book.ID)

	stored := repo.books[book.ID]
	require.NotNil(t, stored)
	assert.Equal(t, "alice", stored.OwnerID)
}

func TestGetBookTenantIsolation(t *testing.T) {
	svc, _ := newTestBookService()
	ctx := context.Background()

	aliceBook := createBook(t, svc, "alice", "Dune")

	// The owner sees the book.
	got, err := svc.GetBook(ctx, "alice", aliceBook.ID)
	require.NoError(t, err)
	assert.Equal(t, aliceBook.ID, got.ID)

	// Another principal gets the same answer as for a nonexistent id.
	_, foreignErr := svc.GetBook(ctx, "bob", aliceBook.ID)
	_, missingErr := svc.GetBook(ctx, "bob", "no-such-id")
	require.Error(t, foreignErr)
	require.Error(t, missingErr)
	assert.Equal(t, missingErr.Error(), foreignErr.Error())
	assert.Equal(t, "NOT_FOUND", domainErrorCode(t, foreignErr))
}

func TestUpdateBookScopedToOwner(t *testing.T) {
	svc, _ := newTestBookService()
	ctx := context.Background()

	book := createBook(t, svc, "alice", "Dune")

	updated, err := svc.UpdateBook(ctx, "alice", book.ID, BookInput{Title: "Dune Messiah", Author: "Frank Herbert", Read: true})
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", updated.Title)
	assert.True(t, updated.Read)
	assert.Equal(t, "alice", updated.OwnerID)

	_, err = svc.UpdateBook(ctx, "bob", book.ID, BookInput{Title: "Hijacked", Author: "Mallory"})
	assert.Equal(t, "NOT_FOUND", domainErrorCode(t, err))

	// Unchanged by the foreign attempt.
	current, err := svc.GetBook(ctx, "alice", book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune Messiah", current.Title)
}

func TestDeleteBookScopedToOwner(t *testing.T) {
	svc, _ := newTestBookService()
	ctx := context.Background()

	book := createBook(t, svc, "alice", "Dune")

	err := svc.DeleteBook(ctx, "bob", book.ID)
	assert.Equal(t, "NOT_FOUND", domainErrorCode(t, err))

	require.NoError(t, svc.DeleteBook(ctx, "alice", book.ID))

	err = svc.DeleteBook(ctx, "alice", book.ID)
	assert.Equal(t, "NOT_FOUND", domainErrorCode(t, err))
}

func TestListBooksOnlyOwnerRecords(t *testing.T) {
	svc, _ := newTestBookService()
	ctx := context.Background()

	createBook(t, svc, "alice", "Dune")
	createBook(t, svc, "alice", "Hyperion")
	createBook(t, svc, "bob", "Neuromancer")

	aliceBooks, err := svc.ListBooks(ctx, "alice")
	require.NoError(t, err)
	assert.Len(t, aliceBooks, 2)
	for _, book := range aliceBooks {
		assert.Equal(t, "alice", book.OwnerID)
	}

	bobBooks, err := svc.ListBooks(ctx, "bob")
	require.NoError(t, err)
	assert.Len(t, bobBooks, 1)
}

func TestSearchByTitleScopedToOwner(t *testing.T) {
	svc, _ := newTestBookService()
	ctx := context.Background()

	createBook(t, svc, "alice", "The Left Hand of Darkness")
	createBook(t, svc, "bob", "The Left Hand of Darkness")

	results, err := svc.SearchByTitle(ctx, "alice", "left hand")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "alice", results[0].OwnerID)
}
