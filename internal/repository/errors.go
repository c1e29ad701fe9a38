package repository

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound is wrapped by every Get* method when no row matches.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is wrapped when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("already exists")
)

// wrapWriteErr annotates a failed write and maps SQLite uniqueness
// violations onto ErrDuplicate.
func wrapWriteErr(what string, err error) error {
	if strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return fmt.Errorf("%s: %w: %v", what, ErrDuplicate, err)
	}
	return fmt.Errorf("%s: %w", what, err)
}
