package domain

import "errors"

// Sentinel errors for the core subsystems - use with errors.Is()
var (
	// ErrNotFound indicates an update/get target does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates invalid input.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates authentication failure.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrStoreUnavailable indicates the host has no usable persistent
	// storage. Fatal for all store operations.
	ErrStoreUnavailable = errors.New("local store unavailable")

	// ErrQuotaExceeded indicates a write was rejected because storage is
	// full. Recoverable by freeing space; never retried automatically.
	ErrQuotaExceeded = errors.New("storage quota exceeded")

	// ErrAborted indicates a transient abort that persisted through the
	// store's single internal retry.
	ErrAborted = errors.New("operation aborted")

	// ErrSizeLimit indicates an uploaded file exceeds a size ceiling,
	// either raw or after UTF-8 normalization.
	ErrSizeLimit = errors.New("size limit exceeded")
)
