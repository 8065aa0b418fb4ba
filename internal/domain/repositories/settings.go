package repositories

import (
	"context"
	"encoding/json"

	"inkwell/internal/domain/models"
)

// SettingsRepository is the key→value preference store.
type SettingsRepository interface {
	// Get returns the raw value for a key, ErrNotFound if absent.
	Get(ctx context.Context, key string) (json.RawMessage, error)

	// Set upserts a key's value.
	Set(ctx context.Context, key string, value json.RawMessage) error

	// Delete removes a key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
}

// CacheRepository is the url-keyed response cache.
type CacheRepository interface {
	Get(ctx context.Context, url string) (*models.CacheEntry, error)

	Put(ctx context.Context, entry *models.CacheEntry) error

	// Prune removes entries whose expiry is at or before now (epoch millis).
	Prune(ctx context.Context, now int64) error
}
