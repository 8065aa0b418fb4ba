package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// CacheRepository implements the url-keyed response cache.
type CacheRepository struct {
	store *Store
}

// NewCacheRepository creates a new cache repository.
func NewCacheRepository(store *Store) repositories.CacheRepository {
	return &CacheRepository{store: store}
}

// Get retrieves a cache entry by url.
func (r *CacheRepository) Get(ctx context.Context, url string) (*models.CacheEntry, error) {
	query := fmt.Sprintf(`SELECT url, data, expires FROM %s WHERE url = ?`, r.store.tables.Cache)

	var (
		entry models.CacheEntry
		data  string
	)
	err := r.store.db.QueryRowContext(ctx, query, url).Scan(&entry.URL, &data, &entry.Expires)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("cache %s: %w", url, domain.ErrNotFound)
		}
		return nil, mapError("get cache entry", err)
	}

	entry.Data = []byte(data)
	return &entry, nil
}

// Put upserts a cache entry.
func (r *CacheRepository) Put(ctx context.Context, entry *models.CacheEntry) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (url, data, expires) VALUES (?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET data = excluded.data, expires = excluded.expires
	`, r.store.tables.Cache)

	return r.store.withRetry("put cache entry", func() error {
		_, err := r.store.db.ExecContext(ctx, query, entry.URL, string(entry.Data), entry.Expires)
		return err
	})
}

// Prune removes entries whose expiry is at or before now.
func (r *CacheRepository) Prune(ctx context.Context, now int64) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE expires > 0 AND expires <= ?`, r.store.tables.Cache)

	return r.store.withRetry("prune cache", func() error {
		_, err := r.store.db.ExecContext(ctx, query, now)
		return err
	})
}
