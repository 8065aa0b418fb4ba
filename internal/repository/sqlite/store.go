package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	_ "modernc.org/sqlite"

	"inkwell/internal/domain"
)

// TableNames holds dynamically prefixed table names.
type TableNames struct {
	Documents      string
	Settings       string
	Cache          string
	SystemPrompts  string
	SettingItems   string
	CharacterItems string
	KnowledgeItems string
}

// NewTableNames creates table names with the given prefix.
func NewTableNames(prefix string) *TableNames {
	return &TableNames{
		Documents:      fmt.Sprintf("%sdocuments", prefix),
		Settings:       fmt.Sprintf("%ssettings", prefix),
		Cache:          fmt.Sprintf("%scache", prefix),
		SystemPrompts:  fmt.Sprintf("%ssystem_prompts", prefix),
		SettingItems:   fmt.Sprintf("%ssetting_items", prefix),
		CharacterItems: fmt.Sprintf("%scharacter_items", prefix),
		KnowledgeItems: fmt.Sprintf("%sknowledge_items", prefix),
	}
}

// Store is the structured local store: a single embedded SQLite database
// holding the seven record collections. Callers construct one explicitly and
// pass it to the repositories; there is no process-wide singleton.
type Store struct {
	db     *sql.DB
	tables *TableNames
	logger *slog.Logger
}

// Open opens (creating if necessary) the database at path and applies any
// pending schema migrations. Migration is purely additive: each version bump
// only creates collections and indexes that are not yet present.
//
// A host without usable persistent storage surfaces as ErrStoreUnavailable.
func Open(path string, tables *TableNames, logger *slog.Logger) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	// The store models a single window's worth of logic: one connection,
	// writes serialized. This also keeps :memory: databases coherent.
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys=ON",
		"PRAGMA busy_timeout=5000",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("%w: %s: %v", domain.ErrStoreUnavailable, pragma, err)
		}
	}

	s := &Store{db: db, tables: tables, logger: logger}
	if err := s.migrate(context.Background()); err != nil {
		db.Close()
		return nil, err
	}

	return s, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Tables exposes the prefixed table names for repositories.
func (s *Store) Tables() *TableNames {
	return s.tables
}

// withRetry runs a write operation, retrying exactly once when the store
// reports a transient abort, then maps driver errors onto the domain
// taxonomy. Any other error propagates with its original diagnostic.
func (s *Store) withRetry(op string, fn func() error) error {
	err := fn()
	if err != nil && isAbortError(err) {
		s.logger.Warn("store operation aborted, retrying once", "op", op)
		err = fn()
	}
	if err != nil {
		return mapError(op, err)
	}
	return nil
}
