package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"inkwell/internal/chapter"
	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// CreateDocumentRequest carries the caller-supplied fields of a new
// document. Id and timestamps are always assigned here, never accepted.
type CreateDocumentRequest struct {
	Name         string                `json:"name"`
	Content      string                `json:"content"`
	Size         int64                 `json:"size"`
	OriginalSize int64                 `json:"originalSize"`
	UploadTime   string                `json:"uploadTime"`
	Status       models.DocumentStatus `json:"status"`
	Tags         []string              `json:"tags"`
}

// UpdateDocumentRequest is a partial update; nil fields keep their current
// value. Id and createdAt can never be overwritten.
type UpdateDocumentRequest struct {
	Name             *string                `json:"name"`
	Content          *string                `json:"content"`
	Status           *models.DocumentStatus `json:"status"`
	Tags             *[]string              `json:"tags"`
	Chapters         *[]models.Chapter      `json:"chapters"`
	CurrentChapterID *string                `json:"currentChapterId"`
}

// DocumentService owns the document lifecycle: CRUD, first-open chapter
// parsing, immediate navigation-state writes and debounced content writes.
//
// Deleting a document deliberately does not cascade to its work items; see
// WorkItemService.DeleteByDocument for explicit cleanup.
type DocumentService struct {
	repo   repositories.DocumentRepository
	saver  *Coalescer
	logger *slog.Logger
	now    func() int64
}

// NewDocumentService creates a new document service. The saver coalesces
// content writes per document id.
func NewDocumentService(repo repositories.DocumentRepository, saver *Coalescer, logger *slog.Logger) *DocumentService {
	return &DocumentService{
		repo:   repo,
		saver:  saver,
		logger: logger,
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

// Create validates and persists a new document.
func (s *DocumentService) Create(ctx context.Context, req *CreateDocumentRequest) (*models.Document, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	status := req.Status
	if status == "" {
		status = models.StatusDraft
	}

	now := s.now()
	doc := &models.Document{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Content:      req.Content,
		Size:         req.Size,
		OriginalSize: req.OriginalSize,
		UploadTime:   req.UploadTime,
		Status:       status,
		Tags:         req.Tags,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.repo.Create(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document created",
		"id", doc.ID,
		"name", doc.Name,
		"size", doc.Size,
		"original_size", doc.OriginalSize,
	)

	return doc, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, id string) (*models.Document, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all documents.
func (s *DocumentService) List(ctx context.Context) ([]models.Document, error) {
	return s.repo.GetAll(ctx)
}

// Update merges a partial update into the existing document and persists
// the result atomically. Fails with ErrNotFound if id does not exist.
func (s *DocumentService) Update(ctx context.Context, id string, req *UpdateDocumentRequest) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := validateName(*req.Name); err != nil {
			return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
		}
		doc.Name = *req.Name
	}
	if req.Content != nil {
		doc.Content = *req.Content
		doc.Size = int64(len(*req.Content))
	}
	if req.Status != nil {
		if *req.Status != models.StatusDraft && *req.Status != models.StatusPublished {
			return nil, fmt.Errorf("%w: unknown status %q", domain.ErrValidation, *req.Status)
		}
		doc.Status = *req.Status
	}
	if req.Tags != nil {
		doc.Tags = *req.Tags
	}
	if req.Chapters != nil {
		doc.Chapters = *req.Chapters
	}
	if req.CurrentChapterID != nil {
		doc.CurrentChapterID = *req.CurrentChapterID
	}

	// A document with chapters must point its navigation state at one of
	// them.
	if len(doc.Chapters) > 0 && !hasChapter(doc.Chapters, doc.CurrentChapterID) {
		return nil, fmt.Errorf("%w: currentChapterId %q does not reference a chapter", domain.ErrValidation, doc.CurrentChapterID)
	}

	doc.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// Delete removes a document. Idempotent.
func (s *DocumentService) Delete(ctx context.Context, id string) error {
	s.saver.Cancel(id)

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.logger.Info("document deleted", "id", id)
	return nil
}

// ClearAll removes every document.
func (s *DocumentService) ClearAll(ctx context.Context) error {
	s.saver.Stop()

	if err := s.repo.DeleteAll(ctx); err != nil {
		return err
	}

	s.logger.Info("all documents cleared")
	return nil
}

// Open returns a document ready for editing. On the first open of a
// document without chapters it parses the flat content once, converts each
// chapter to paragraph markup and persists the result, so later opens skip
// parsing entirely.
func (s *DocumentService) Open(ctx context.Context, id string) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if len(doc.Chapters) > 0 {
		return doc, nil
	}

	chapters := chapter.Parse(doc.Content)
	for i := range chapters {
		chapters[i].Content = chapter.ContentToHTML(chapters[i].Content)
	}

	doc.Chapters = chapters
	doc.CurrentChapterID = chapters[0].ID
	doc.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}

	s.logger.Info("document chapters parsed",
		"id", doc.ID,
		"chapters", len(chapters),
	)

	return doc, nil
}

// SwitchChapter records the active chapter immediately; navigation state is
// cheap and user-visible, so it is never debounced.
func (s *DocumentService) SwitchChapter(ctx context.Context, id, chapterID string) (*models.Document, error) {
	doc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !hasChapter(doc.Chapters, chapterID) {
		return nil, fmt.Errorf("%w: chapter %q does not exist in document %s", domain.ErrValidation, chapterID, id)
	}

	doc.CurrentChapterID = chapterID
	doc.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, doc); err != nil {
		return nil, err
	}

	return doc, nil
}

// SaveContent schedules a content update to be written after the debounce
// quiet period. Bursts of edits against one document collapse into one
// write holding only the last payload. The write runs detached from the
// caller's context: an editor going away must not abort a pending save.
func (s *DocumentService) SaveContent(id string, req *UpdateDocumentRequest) {
	s.saver.Do(id, func() {
		if _, err := s.Update(context.Background(), id, req); err != nil {
			s.logger.Error("debounced save failed", "id", id, "error", err)
		}
	})
}

// FlushContent forces any pending debounced write for id to run now.
func (s *DocumentService) FlushContent(id string) {
	s.saver.Flush(id)
}

func (s *DocumentService) validateCreateRequest(req *CreateDocumentRequest) error {
	if req.Status != "" && req.Status != models.StatusDraft && req.Status != models.StatusPublished {
		return fmt.Errorf("unknown status %q", req.Status)
	}

	return validation.ValidateStruct(req,
		validation.Field(&req.Name,
			validation.Required,
			validation.Length(1, config.MaxDocumentNameLength),
		),
		validation.Field(&req.Size, validation.Min(int64(0))),
		validation.Field(&req.OriginalSize, validation.Min(int64(0))),
	)
}

func validateName(name string) error {
	return validation.Validate(name,
		validation.Required,
		validation.Length(1, config.MaxDocumentNameLength),
	)
}

func hasChapter(chapters []models.Chapter, id string) bool {
	for i := range chapters {
		if chapters[i].ID == id {
			return true
		}
	}
	return false
}
