package sqlite

import (
	"errors"
	"fmt"

	sqlite "modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"

	"inkwell/internal/domain"
)

// sqliteCode extracts the primary result code from a driver error.
func sqliteCode(err error) int {
	var se *sqlite.Error
	if errors.As(err, &se) {
		return se.Code() & 0xff
	}
	return -1
}

// isQuotaError checks if error means the storage is full.
func isQuotaError(err error) bool {
	return sqliteCode(err) == sqlite3.SQLITE_FULL
}

// isAbortError checks if error is a transient abort worth one retry.
func isAbortError(err error) bool {
	switch sqliteCode(err) {
	case sqlite3.SQLITE_BUSY, sqlite3.SQLITE_LOCKED, sqlite3.SQLITE_INTERRUPT:
		return true
	}
	return false
}

// mapError translates a driver error into the domain taxonomy, keeping the
// original diagnostic attached.
func mapError(op string, err error) error {
	switch {
	case isQuotaError(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrQuotaExceeded, err)
	case isAbortError(err):
		return fmt.Errorf("%s: %w: %v", op, domain.ErrAborted, err)
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}
