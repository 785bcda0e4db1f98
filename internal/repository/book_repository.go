package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/bookshelf-service/internal/domain"
)

// BookRepository encapsulates book persistence. Every read and mutation of
// an existing row matches on id AND owner in a single statement, so
// ownership is confirmed by the same query that touches the record.
type BookRepository interface {
	Create(ctx context.Context, book *domain.Book) error
	GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Book, error)
	UpdateByIDAndOwner(ctx context.Context, book *domain.Book) error
	DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error
	ListByOwner(ctx context.Context, ownerID string) ([]domain.Book, error)
	SearchByTitleAndOwner(ctx context.Context, title, ownerID string) ([]domain.Book, error)
}

type bookRepository struct {
	pool *pgxpool.Pool
}

// NewBookRepository instantiates repository.
func NewBookRepository(pool *pgxpool.Pool) BookRepository {
	return &bookRepository{pool: pool}
}

const bookColumns = `id, owner_id, title, author, year, synopsis, pages, read, loaned, loaned_to, cover, back_cover, created_at, updated_at`

func (r *bookRepository) Create(ctx context.Context, book *domain.Book) error {
	const query = `
        INSERT INTO books (owner_id, title, author, year, synopsis, pages, read, loaned, loaned_to, cover, back_cover)
        VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
        RETURNING id, created_at, updated_at`
	return r.pool.QueryRow(ctx, query,
		book.OwnerID,
		book.Title,
		book.Author,
		book.Year,
		book.Synopsis,
		book.Pages,
		book.Read,
		book.Loaned,
		book.LoanedTo,
		book.Cover,
		book.BackCover,
	).Scan(&book.ID, &book.CreatedAt, &book.UpdatedAt)
}

func (r *bookRepository) GetByIDAndOwner(ctx context.Context, id, ownerID string) (*domain.Book, error) {
	const query = `
        SELECT ` + bookColumns + `
        FROM books WHERE id=$1 AND owner_id=$2`

	var book domain.Book
	if err := r.pool.QueryRow(ctx, query, id, ownerID).Scan(bookFields(&book)...); err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *bookRepository) UpdateByIDAndOwner(ctx context.Context, book *domain.Book) error {
	const query = `
        UPDATE books SET title=$1, author=$2, year=$3, synopsis=$4, pages=$5,
            read=$6, loaned=$7, loaned_to=$8, cover=$9, back_cover=$10, updated_at=NOW()
        WHERE id=$11 AND owner_id=$12`
	cmd, err := r.pool.Exec(ctx, query,
		book.Title,
		book.Author,
		book.Year,
		book.Synopsis,
		book.Pages,
		book.Read,
		book.Loaned,
		book.LoanedTo,
		book.Cover,
		book.BackCover,
		book.ID,
		book.OwnerID,
	)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookRepository) DeleteByIDAndOwner(ctx context.Context, id, ownerID string) error {
	const query = `DELETE FROM books WHERE id=$1 AND owner_id=$2`
	cmd, err := r.pool.Exec(ctx, query, id, ownerID)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *bookRepository) ListByOwner(ctx context.Context, ownerID string) ([]domain.Book, error) {
	const query = `
        SELECT ` + bookColumns + `
        FROM books WHERE owner_id=$1 ORDER BY created_at`
	return r.fetchMany(ctx, query, ownerID)
}

func (r *bookRepository) SearchByTitleAndOwner(ctx context.Context, title, ownerID string) ([]domain.Book, error) {
	const query = `
        SELECT ` + bookColumns + `
        FROM books WHERE owner_id=$1 AND title ILIKE '%' || $2 || '%' ORDER BY created_at`
	return r.fetchMany(ctx, query, ownerID, title)
}

func (r *bookRepository) fetchMany(ctx context.Context, query string, args ...any) ([]domain.Book, error) {
	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	books := []domain.Book{}
	for rows.Next() {
		var book domain.Book
		if err := rows.Scan(bookFields(&book)...); err != nil {
			return nil, err
		}
		books = append(books, book)
	}
	return books, rows.Err()
}

func bookFields(book *domain.Book) []any {
	return []any{
		&book.ID,
		&book.OwnerID,
		&book.Title,
		&book.Author,
		&book.Year,
		&book.Synopsis,
		&book.Pages,
		&book.Read,
		&book.Loaned,
		&book.LoanedTo,
		&book.Cover,
		&book.BackCover,
		&book.CreatedAt,
		&book.UpdatedAt,
	}
}
