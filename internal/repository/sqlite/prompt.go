package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// PromptRepository implements repositories.PromptRepository.
type PromptRepository struct {
	store *Store
}

// NewPromptRepository creates a new system prompt repository.
func NewPromptRepository(store *Store) repositories.PromptRepository {
	return &PromptRepository{store: store}
}

// Create persists a new system prompt.
func (r *PromptRepository) Create(ctx context.Context, prompt *models.SystemPrompt) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (id, title, content, description, category, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, r.store.tables.SystemPrompts)

	return r.store.withRetry("create prompt", func() error {
		_, err := r.store.db.ExecContext(ctx, query,
			prompt.ID,
			prompt.Title,
			prompt.Content,
			prompt.Description,
			prompt.Category,
			prompt.CreatedAt,
			prompt.UpdatedAt,
		)
		return err
	})
}

// GetByID retrieves a prompt by ID.
func (r *PromptRepository) GetByID(ctx context.Context, id string) (*models.SystemPrompt, error) {
	query := fmt.Sprintf(`
		SELECT id, title, content, description, category, created_at, updated_at
		FROM %s
		WHERE id = ?
	`, r.store.tables.SystemPrompts)

	var prompt models.SystemPrompt
	err := r.store.db.QueryRowContext(ctx, query, id).Scan(
		&prompt.ID,
		&prompt.Title,
		&prompt.Content,
		&prompt.Description,
		&prompt.Category,
		&prompt.CreatedAt,
		&prompt.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("prompt %s: %w", id, domain.ErrNotFound)
		}
		return nil, mapError("get prompt", err)
	}

	return &prompt, nil
}

// GetAll lists prompts sorted by updatedAt descending.
func (r *PromptRepository) GetAll(ctx context.Context) ([]models.SystemPrompt, error) {
	query := fmt.Sprintf(`
		SELECT id, title, content, description, category, created_at, updated_at
		FROM %s
		ORDER BY updated_at DESC, created_at DESC, id ASC
	`, r.store.tables.SystemPrompts)

	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list prompts", err)
	}
	defer rows.Close()

	var prompts []models.SystemPrompt
	for rows.Next() {
		var prompt models.SystemPrompt
		err := rows.Scan(
			&prompt.ID,
			&prompt.Title,
			&prompt.Content,
			&prompt.Description,
			&prompt.Category,
			&prompt.CreatedAt,
			&prompt.UpdatedAt,
		)
		if err != nil {
			return nil, mapError("scan prompt", err)
		}
		prompts = append(prompts, prompt)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("iterate prompts", err)
	}

	return prompts, nil
}

// Update rewrites an existing prompt.
func (r *PromptRepository) Update(ctx context.Context, prompt *models.SystemPrompt) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET title = ?, content = ?, description = ?, category = ?, updated_at = ?
		WHERE id = ?
	`, r.store.tables.SystemPrompts)

	return r.store.withRetry("update prompt", func() error {
		result, err := r.store.db.ExecContext(ctx, query,
			prompt.Title,
			prompt.Content,
			prompt.Description,
			prompt.Category,
			prompt.UpdatedAt,
			prompt.ID,
		)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("prompt %s: %w", prompt.ID, domain.ErrNotFound)
		}
		return nil
	})
}

// Delete removes a prompt. Deleting a missing id is not an error.
func (r *PromptRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.store.tables.SystemPrompts)

	return r.store.withRetry("delete prompt", func() error {
		_, err := r.store.db.ExecContext(ctx, query, id)
		return err
	})
}
