package domain

import "time"

// User is an account holder. Email doubles as the token subject; Nickname is
// an optional display string.
type User struct {
	ID           string
	Email        string
	PasswordHash string
	Nickname     string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
