package repositories

import (
	"context"

	"inkwell/internal/domain/models"
)

// WorkItemRepository defines data access for the three work-item
// collections. One implementation serves all variants; the type tag
// selects the collection.
type WorkItemRepository interface {
	Create(ctx context.Context, item *models.WorkItem) error

	GetByID(ctx context.Context, typ models.WorkItemType, id string) (*models.WorkItem, error)

	// GetByDocumentID lists a document's items of one type. The read path
	// backfills display titles from legacy fields.
	GetByDocumentID(ctx context.Context, typ models.WorkItemType, documentID string) ([]models.WorkItem, error)

	Update(ctx context.Context, item *models.WorkItem) error

	// Delete removes an item. Deleting a missing id is not an error.
	Delete(ctx context.Context, typ models.WorkItemType, id string) error

	// DeleteByDocumentID removes all items of one type for a document.
	DeleteByDocumentID(ctx context.Context, typ models.WorkItemType, documentID string) error
}
