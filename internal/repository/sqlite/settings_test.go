package sqlite

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

func TestSettingsSetGetDelete(t *testing.T) {
	repo := NewSettingsRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Set(ctx, "systemPrompt", json.RawMessage(`"be concise"`)))

	value, err := repo.Get(ctx, "systemPrompt")
	require.NoError(t, err)
	assert.JSONEq(t, `"be concise"`, string(value))

	// Upsert replaces in place.
	require.NoError(t, repo.Set(ctx, "systemPrompt", json.RawMessage(`{"text":"be kind"}`)))
	value, err = repo.Get(ctx, "systemPrompt")
	require.NoError(t, err)
	assert.JSONEq(t, `{"text":"be kind"}`, string(value))

	require.NoError(t, repo.Delete(ctx, "systemPrompt"))
	require.NoError(t, repo.Delete(ctx, "systemPrompt"))

	_, err = repo.Get(ctx, "systemPrompt")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestSettingsGetMissing(t *testing.T) {
	repo := NewSettingsRepository(newTestStore(t))

	_, err := repo.Get(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestCachePutGetPrune(t *testing.T) {
	repo := NewCacheRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Put(ctx, &models.CacheEntry{
		URL:     "https://example.com/a",
		Data:    []byte(`{"cached":true}`),
		Expires: 100,
	}))
	require.NoError(t, repo.Put(ctx, &models.CacheEntry{
		URL:     "https://example.com/b",
		Data:    []byte(`{"cached":true}`),
		Expires: 200,
	}))
	require.NoError(t, repo.Put(ctx, &models.CacheEntry{
		URL:  "https://example.com/forever",
		Data: []byte(`{}`),
	}))

	entry, err := repo.Get(ctx, "https://example.com/a")
	require.NoError(t, err)
	assert.Equal(t, int64(100), entry.Expires)
	assert.JSONEq(t, `{"cached":true}`, string(entry.Data))

	// Prune drops entries expired at or before now; zero expiry never
	// expires.
	require.NoError(t, repo.Prune(ctx, 150))

	_, err = repo.Get(ctx, "https://example.com/a")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	_, err = repo.Get(ctx, "https://example.com/b")
	assert.NoError(t, err)

	_, err = repo.Get(ctx, "https://example.com/forever")
	assert.NoError(t, err)
}
