package domain

import "time"

// User is the domain model for a registered account. The username is the
// stable identity carried inside tokens; it is unique and never changes.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
