package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// DocumentRepository defines data access operations for documents.
type DocumentRepository interface {
	// Create persists a new document.
	Create(ctx context.Context, doc *models.Document) error

	// GetByID retrieves a document by ID.
	GetByID(ctx context.Context, id string) (*models.Document, error)

	// GetAll lists every document, stable across repeated calls with no
	// intervening writes.
	GetAll(ctx context.Context) ([]models.Document, error)

	// Update rewrites an existing document atomically.
	Update(ctx context.Context, doc *models.Document) error

	// Delete removes a document. Deleting a missing id is not an error.
	Delete(ctx context.Context, id string) error

	// DeleteAll empties the documents collection.
	DeleteAll(ctx context.Context) error
}
