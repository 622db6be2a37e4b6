package repository

import (
	"errors"

	"github.com/Salguod-ohlamar/deposito-teixeira/internal/db"
)

var ErrNotFound = errors.New("not found")

// IsDuplicate reports whether err is a unique constraint violation.
func IsDuplicate(err error) bool {
	return db.IsUniqueViolation(err)
}
