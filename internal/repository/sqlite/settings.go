package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"inkwell/internal/domain"
	"inkwell/internal/domain/repositories"
)

// SettingsRepository implements the key→value preference store.
type SettingsRepository struct {
	store *Store
}

// NewSettingsRepository creates a new settings repository.
func NewSettingsRepository(store *Store) repositories.SettingsRepository {
	return &SettingsRepository{store: store}
}

// Get returns the raw value for a key.
func (r *SettingsRepository) Get(ctx context.Context, key string) (json.RawMessage, error) {
	query := fmt.Sprintf(`SELECT value FROM %s WHERE key = ?`, r.store.tables.Settings)

	var value string
	err := r.store.db.QueryRowContext(ctx, query, key).Scan(&value)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("setting %s: %w", key, domain.ErrNotFound)
		}
		return nil, mapError("get setting", err)
	}

	return json.RawMessage(value), nil
}

// Set upserts a key's value.
func (r *SettingsRepository) Set(ctx context.Context, key string, value json.RawMessage) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, r.store.tables.Settings)

	return r.store.withRetry("set setting", func() error {
		_, err := r.store.db.ExecContext(ctx, query, key, string(value))
		return err
	})
}

// Delete removes a key. Deleting a missing key is not an error.
func (r *SettingsRepository) Delete(ctx context.Context, key string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE key = ?`, r.store.tables.Settings)

	return r.store.withRetry("delete setting", func() error {
		_, err := r.store.db.ExecContext(ctx, query, key)
		return err
	})
}
