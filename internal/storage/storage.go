// Package storage implements the PostgreSQL repositories shared by the bot
// and the two backend services.
package storage

import "errors"

var (
	// ErrNotFound is returned when the requested row does not exist.
	ErrNotFound = errors.New("storage: not found")
	// ErrExists is returned when a unique key is already taken.
	ErrExists = errors.New("storage: already exists")
)
