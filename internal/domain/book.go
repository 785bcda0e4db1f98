package domain

import "time"

// Book is a catalog entry on a user's shelf. OwnerID is stamped from the
// authenticated principal at creation time and never changes afterward.
type Book struct {
	ID        string
	OwnerID   string
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
	CreatedAt time.Time
	UpdatedAt time.Time
}
