package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// WorkItemRepository serves all three work-item collections; the type tag
// selects the table. The legacy `name` column only exists for records
// written under the old shape: reads backfill the display title from it,
// updates persist the normalized title and clear it.
type WorkItemRepository struct {
	store *Store
}

// NewWorkItemRepository creates a new work-item repository.
func NewWorkItemRepository(store *Store) repositories.WorkItemRepository {
	return &WorkItemRepository{store: store}
}

func (r *WorkItemRepository) table(typ models.WorkItemType) string {
	switch typ {
	case models.WorkItemCharacter:
		return r.store.tables.CharacterItems
	case models.WorkItemKnowledge:
		return r.store.tables.KnowledgeItems
	default:
		return r.store.tables.SettingItems
	}
}

// Create persists a new work item.
func (r *WorkItemRepository) Create(ctx context.Context, item *models.WorkItem) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, document_id, title, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, r.table(item.Type))

	return r.store.withRetry("create work item", func() error {
		_, err := r.store.db.ExecContext(ctx, query,
			item.ID,
			item.DocumentID,
			item.Title,
			item.Content,
			item.CreatedAt,
			item.UpdatedAt,
		)
		return err
	})
}

// GetByID retrieves one work item.
func (r *WorkItemRepository) GetByID(ctx context.Context, typ models.WorkItemType, id string) (*models.WorkItem, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, title, content, name, created_at, updated_at
		FROM %s
		WHERE id = ?
	`, r.table(typ))

	item, err := scanWorkItem(r.store.db.QueryRowContext(ctx, query, id), typ)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("%s item %s: %w", typ, id, domain.ErrNotFound)
		}
		return nil, mapError(fmt.Sprintf("get %s item", typ), err)
	}

	return item, nil
}

// GetByDocumentID lists a document's items of one type in insertion order.
func (r *WorkItemRepository) GetByDocumentID(ctx context.Context, typ models.WorkItemType, documentID string) ([]models.WorkItem, error) {
	query := fmt.Sprintf(`
		SELECT id, document_id, title, content, name, created_at, updated_at
		FROM %s
		WHERE document_id = ?
		ORDER BY created_at ASC, id ASC
	`, r.table(typ))

	rows, err := r.store.db.QueryContext(ctx, query, documentID)
	if err != nil {
		return nil, mapError(fmt.Sprintf("list %s items", typ), err)
	}
	defer rows.Close()

	var items []models.WorkItem
	for rows.Next() {
		item, err := scanWorkItem(rows, typ)
		if err != nil {
			return nil, mapError(fmt.Sprintf("scan %s item", typ), err)
		}
		items = append(items, *item)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError(fmt.Sprintf("iterate %s items", typ), err)
	}

	return items, nil
}

// Update rewrites an existing work item with its normalized title; the
// legacy name column is cleared so the backfill becomes durable.
func (r *WorkItemRepository) Update(ctx context.Context, item *models.WorkItem) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET document_id = ?, title = ?, content = ?, name = NULL, updated_at = ?
		WHERE id = ?
	`, r.table(item.Type))

	return r.store.withRetry("update work item", func() error {
		result, err := r.store.db.ExecContext(ctx, query,
			item.DocumentID,
			item.Title,
			item.Content,
			item.UpdatedAt,
			item.ID,
		)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%s item %s: %w", item.Type, item.ID, domain.ErrNotFound)
		}
		return nil
	})
}

// Delete removes an item. Deleting a missing id is not an error.
func (r *WorkItemRepository) Delete(ctx context.Context, typ models.WorkItemType, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.table(typ))

	return r.store.withRetry("delete work item", func() error {
		_, err := r.store.db.ExecContext(ctx, query, id)
		return err
	})
}

// DeleteByDocumentID removes all items of one type for a document.
func (r *WorkItemRepository) DeleteByDocumentID(ctx context.Context, typ models.WorkItemType, documentID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE document_id = ?`, r.table(typ))

	return r.store.withRetry("delete document work items", func() error {
		_, err := r.store.db.ExecContext(ctx, query, documentID)
		return err
	})
}

func scanWorkItem(row rowScanner, typ models.WorkItemType) (*models.WorkItem, error) {
	var (
		item       models.WorkItem
		legacyName sql.NullString
	)

	err := row.Scan(
		&item.ID,
		&item.DocumentID,
		&item.Title,
		&item.Content,
		&legacyName,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	item.Type = typ

	// Old-shape records carried the display title in `name`. Backfill on
	// the read path; the normalized title is stored back on the next update.
	if item.Title == "" {
		if legacyName.Valid && legacyName.String != "" {
			item.Title = legacyName.String
		} else {
			item.Title = typ.DefaultTitle()
		}
	}

	return &item, nil
}
