package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// PromptRepository defines data access operations for system prompts.
type PromptRepository interface {
	Create(ctx context.Context, prompt *models.SystemPrompt) error

	GetByID(ctx context.Context, id string) (*models.SystemPrompt, error)

	// GetAll lists prompts sorted by updatedAt descending.
	GetAll(ctx context.Context) ([]models.SystemPrompt, error)

	Update(ctx context.Context, prompt *models.SystemPrompt) error

	// Delete removes a prompt. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error
}
