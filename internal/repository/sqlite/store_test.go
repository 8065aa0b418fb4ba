package sqlite

import (
	"context"
	"io"
	"log/slog"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store, err := Open(":memory:", NewTableNames("test_"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return store
}

func TestOpenCreatesSchema(t *testing.T) {
	store := newTestStore(t)

	var version int
	err := store.db.QueryRowContext(context.Background(), "PRAGMA user_version").Scan(&version)
	require.NoError(t, err)
	assert.Equal(t, schemaVersion, version)

	// Every collection must exist after a fresh open.
	for _, table := range []string{
		store.tables.Documents,
		store.tables.Settings,
		store.tables.Cache,
		store.tables.SystemPrompts,
		store.tables.SettingItems,
		store.tables.CharacterItems,
		store.tables.KnowledgeItems,
	} {
		var name string
		err := store.db.QueryRow(
			`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table,
		).Scan(&name)
		assert.NoError(t, err, "table %s missing", table)
	}
}

func TestOpenIsIdempotent(t *testing.T) {
	// Reopening an existing database must not disturb its data.
	path := filepath.Join(t.TempDir(), "store.db")
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	tables := NewTableNames("test_")

	store, err := Open(path, tables, logger)
	require.NoError(t, err)

	_, err = store.db.Exec(
		`INSERT INTO test_settings (key, value) VALUES (?, ?)`, "k", `"v"`,
	)
	require.NoError(t, err)
	require.NoError(t, store.Close())

	store, err = Open(path, tables, logger)
	require.NoError(t, err)
	defer store.Close()

	var value string
	err = store.db.QueryRow(`SELECT value FROM test_settings WHERE key = ?`, "k").Scan(&value)
	require.NoError(t, err)
	assert.Equal(t, `"v"`, value)
}

func TestTableNamesPrefix(t *testing.T) {
	tables := NewTableNames("prod_")

	assert.Equal(t, "prod_documents", tables.Documents)
	assert.Equal(t, "prod_settings", tables.Settings)
	assert.Equal(t, "prod_cache", tables.Cache)
	assert.Equal(t, "prod_system_prompts", tables.SystemPrompts)
	assert.Equal(t, "prod_setting_items", tables.SettingItems)
	assert.Equal(t, "prod_character_items", tables.CharacterItems)
	assert.Equal(t, "prod_knowledge_items", tables.KnowledgeItems)
}
