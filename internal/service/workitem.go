package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// CreateWorkItemRequest carries the caller-supplied fields of a new work
// item. The collection comes from the route, not the body.
type CreateWorkItemRequest struct {
	DocumentID string `json:"documentId"`
	Title      string `json:"title"`
	Content    string `json:"content"`
}

// UpdateWorkItemRequest is a partial update; nil fields keep their current
// value.
type UpdateWorkItemRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

// WorkItemService manages the three work-item collections through one code
// path, discriminated by models.WorkItemType.
type WorkItemService struct {
	repo   repositories.WorkItemRepository
	docs   repositories.DocumentRepository
	logger *slog.Logger
	now    func() int64
}

func NewWorkItemService(repo repositories.WorkItemRepository, docs repositories.DocumentRepository, logger *slog.Logger) *WorkItemService {
	return &WorkItemService{
		repo:   repo,
		docs:   docs,
		logger: logger,
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

// Create validates and persists a new work item. The referenced document
// must exist; a dangling DocumentID is a validation failure, not a lookup
// failure.
func (s *WorkItemService) Create(ctx context.Context, typ models.WorkItemType, req *CreateWorkItemRequest) (*models.WorkItem, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown work item type %q", domain.ErrValidation, typ)
	}
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	if _, err := s.docs.GetByID(ctx, req.DocumentID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, fmt.Errorf("%w: document %s does not exist", domain.ErrValidation, req.DocumentID)
		}
		return nil, err
	}

	title := strings.TrimSpace(req.Title)
	if title == "" {
		title = typ.DefaultTitle()
	}

	now := s.now()
	item := &models.WorkItem{
		ID:         uuid.NewString(),
		DocumentID: req.DocumentID,
		Title:      title,
		Content:    req.Content,
		Type:       typ,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return nil, err
	}

	s.logger.Info("work item created",
		"type", typ,
		"id", item.ID,
		"document_id", item.DocumentID,
	)

	return item, nil
}

// Get retrieves one work item.
func (s *WorkItemService) Get(ctx context.Context, typ models.WorkItemType, id string) (*models.WorkItem, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown work item type %q", domain.ErrValidation, typ)
	}
	return s.repo.GetByID(ctx, typ, id)
}

// ListByDocument lists a document's items of one type.
func (s *WorkItemService) ListByDocument(ctx context.Context, typ models.WorkItemType, documentID string) ([]models.WorkItem, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown work item type %q", domain.ErrValidation, typ)
	}
	return s.repo.GetByDocumentID(ctx, typ, documentID)
}

// Update merges a partial update and persists the result. A blank title is
// normalized to the collection's default so records never lose their
// display title.
func (s *WorkItemService) Update(ctx context.Context, typ models.WorkItemType, id string, req *UpdateWorkItemRequest) (*models.WorkItem, error) {
	if !typ.Valid() {
		return nil, fmt.Errorf("%w: unknown work item type %q", domain.ErrValidation, typ)
	}

	item, err := s.repo.GetByID(ctx, typ, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if len(title) > config.MaxTitleLength {
			return nil, fmt.Errorf("%w: title exceeds %d characters", domain.ErrValidation, config.MaxTitleLength)
		}
		if title == "" {
			title = typ.DefaultTitle()
		}
		item.Title = title
	}
	if req.Content != nil {
		item.Content = *req.Content
	}

	item.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}

// Delete removes a work item. Idempotent.
func (s *WorkItemService) Delete(ctx context.Context, typ models.WorkItemType, id string) error {
	if !typ.Valid() {
		return fmt.Errorf("%w: unknown work item type %q", domain.ErrValidation, typ)
	}
	return s.repo.Delete(ctx, typ, id)
}

// DeleteByDocument removes every item of every type for a document. This is
// the explicit cleanup path; deleting a document never calls it implicitly.
func (s *WorkItemService) DeleteByDocument(ctx context.Context, documentID string) error {
	for _, typ := range []models.WorkItemType{models.WorkItemSetting, models.WorkItemCharacter, models.WorkItemKnowledge} {
		if err := s.repo.DeleteByDocumentID(ctx, typ, documentID); err != nil {
			return err
		}
	}

	s.logger.Info("work items cleared", "document_id", documentID)
	return nil
}

func (s *WorkItemService) validateCreateRequest(req *CreateWorkItemRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.DocumentID, validation.Required),
		validation.Field(&req.Title, validation.Length(0, config.MaxTitleLength)),
	)
}
