package store

import (
	"errors"

	"github.com/vullk4n/gestao-de-emails/internal/db"
)

// Every store operation fails with one of these, wrapped with context.
// Callers test with errors.Is.
var (
	// ErrInvalidInput is returned for a malformed or missing required field.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound is returned when the referenced record does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicateName is returned when a category name is already taken.
	ErrDuplicateName = errors.New("category name already exists")

	// ErrDuplicateAddress is returned when a user address is already registered.
	ErrDuplicateAddress = errors.New("user address already registered")

	// ErrUnknownCategory is returned when a category reference dangles.
	ErrUnknownCategory = errors.New("unknown category")

	// ErrUnknownEmail is returned when an email reference dangles.
	ErrUnknownEmail = errors.New("unknown email")

	// ErrCategoryInUse is returned when deleting a category emails still reference.
	ErrCategoryInUse = errors.New("category in use")

	// ErrBusy is returned when another writer holds the store past the
	// busy timeout. The store never retries.
	ErrBusy = db.ErrBusy

	// ErrStorageUnavailable is returned when the backing file cannot be
	// opened or created.
	ErrStorageUnavailable = errors.New("storage unavailable")
)

// isNoRows reports whether err means the query matched nothing.
func isNoRows(err error) bool {
	return errors.Is(db.WrapError(err), db.ErrRecordNotFound)
}
