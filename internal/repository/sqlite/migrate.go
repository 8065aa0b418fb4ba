package sqlite

import (
	"context"
	"fmt"
)

// schemaVersion is the current schema version. Bumps are additive only:
// a step may create missing tables and indexes, never drop or rewrite
// existing data.
const schemaVersion = 3

func (s *Store) migrate(ctx context.Context) error {
	var version int
	if err := s.db.QueryRowContext(ctx, "PRAGMA user_version").Scan(&version); err != nil {
		return fmt.Errorf("read schema version: %w", err)
	}

	for v := version + 1; v <= schemaVersion; v++ {
		tx, err := s.db.BeginTx(ctx, nil)
		if err != nil {
			return fmt.Errorf("begin migration %d: %w", v, err)
		}

		for _, stmt := range s.schemaStep(v) {
			if _, err := tx.ExecContext(ctx, stmt); err != nil {
				tx.Rollback()
				return fmt.Errorf("migration %d: %w", v, err)
			}
		}

		if _, err := tx.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", v)); err != nil {
			tx.Rollback()
			return fmt.Errorf("set schema version %d: %w", v, err)
		}

		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %d: %w", v, err)
		}

		s.logger.Info("schema migrated", "version", v)
	}

	return nil
}

// schemaStep returns the DDL for one version bump. Everything is
// IF NOT EXISTS so a collection created by an earlier release is left alone.
func (s *Store) schemaStep(version int) []string {
	t := s.tables
	switch version {
	case 1:
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				name TEXT NOT NULL,
				content TEXT NOT NULL DEFAULT '',
				size INTEGER NOT NULL DEFAULT 0,
				original_size INTEGER NOT NULL DEFAULT 0,
				upload_time TEXT NOT NULL DEFAULT '',
				status TEXT NOT NULL DEFAULT 'draft',
				tags TEXT,
				chapters TEXT,
				current_chapter_id TEXT,
				created_at INTEGER NOT NULL,
				updated_at INTEGER NOT NULL
			)`, t.Documents),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_name ON %s (name)`, t.Documents, t.Documents),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_upload_time ON %s (upload_time)`, t.Documents, t.Documents),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_updated_at ON %s (updated_at)`, t.Documents, t.Documents),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_status ON %s (status)`, t.Documents, t.Documents),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				key TEXT PRIMARY KEY,
				value TEXT NOT NULL
			)`, t.Settings),
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				url TEXT PRIMARY KEY,
				data TEXT NOT NULL,
				expires INTEGER NOT NULL DEFAULT 0
			)`, t.Cache),
		}
	case 2:
		return []string{
			fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
				id TEXT PRIMARY KEY,
				title TEXT NOT NULL,
				content TEXT NOT NULL DEFAULT '',
				description TEXT NOT NULL DEFAULT '',
				category TEXT NOT NULL DEFAULT '',
				created_at INTEGER NOT NULL,
				updated_at INTEGER NOT NULL
			)`, t.SystemPrompts),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_title ON %s (title)`, t.SystemPrompts, t.SystemPrompts),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_category ON %s (category)`, t.SystemPrompts, t.SystemPrompts),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_created_at ON %s (created_at)`, t.SystemPrompts, t.SystemPrompts),
			fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_updated_at ON %s (updated_at)`, t.SystemPrompts, t.SystemPrompts),
		}
	case 3:
		var stmts []string
		for _, table := range []string{t.SettingItems, t.CharacterItems, t.KnowledgeItems} {
			stmts = append(stmts,
				fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
					id TEXT PRIMARY KEY,
					document_id TEXT NOT NULL,
					title TEXT NOT NULL DEFAULT '',
					content TEXT NOT NULL DEFAULT '',
					name TEXT,
					created_at INTEGER NOT NULL,
					updated_at INTEGER NOT NULL
				)`, table),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_document_id ON %s (document_id)`, table, table),
				fmt.Sprintf(`CREATE INDEX IF NOT EXISTS idx_%s_updated_at ON %s (updated_at)`, table, table),
			)
		}
		return stmts
	default:
		return nil
	}
}
