package domain

import (
	"errors"
	"time"
)

// User owns tracked words and authenticates with email and password.
type User struct {
	ID           int64
	Name         string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// ErrNotFound is returned by repositories when a requested row does
// not exist.
var ErrNotFound = errors.New("not found")
