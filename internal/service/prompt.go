package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/google/uuid"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// CreatePromptRequest carries the caller-supplied fields of a new system
// prompt.
type CreatePromptRequest struct {
	Title       string `json:"title"`
	Content     string `json:"content"`
	Description string `json:"description"`
	Category    string `json:"category"`
}

// UpdatePromptRequest is a partial update; nil fields keep their current
// value.
type UpdatePromptRequest struct {
	Title       *string `json:"title"`
	Content     *string `json:"content"`
	Description *string `json:"description"`
	Category    *string `json:"category"`
}

// PromptService manages the global system prompt library.
type PromptService struct {
	repo   repositories.PromptRepository
	logger *slog.Logger
	now    func() int64
}

func NewPromptService(repo repositories.PromptRepository, logger *slog.Logger) *PromptService {
	return &PromptService{
		repo:   repo,
		logger: logger,
		now:    func() int64 { return time.Now().UnixMilli() },
	}
}

// Create validates and persists a new prompt.
func (s *PromptService) Create(ctx context.Context, req *CreatePromptRequest) (*models.SystemPrompt, error) {
	if err := s.validateCreateRequest(req); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	now := s.now()
	prompt := &models.SystemPrompt{
		ID:          uuid.NewString(),
		Title:       req.Title,
		Content:     req.Content,
		Description: req.Description,
		Category:    req.Category,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, prompt); err != nil {
		return nil, err
	}

	s.logger.Info("prompt created", "id", prompt.ID, "title", prompt.Title)

	return prompt, nil
}

// Get retrieves a prompt by ID.
func (s *PromptService) Get(ctx context.Context, id string) (*models.SystemPrompt, error) {
	return s.repo.GetByID(ctx, id)
}

// List returns all prompts, most recently updated first.
func (s *PromptService) List(ctx context.Context) ([]models.SystemPrompt, error) {
	return s.repo.GetAll(ctx)
}

// Update merges a partial update and persists the result.
func (s *PromptService) Update(ctx context.Context, id string, req *UpdatePromptRequest) (*models.SystemPrompt, error) {
	prompt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if err := validation.Validate(*req.Title, validation.Required, validation.Length(1, config.MaxTitleLength)); err != nil {
			return nil, fmt.Errorf("%w: title: %v", domain.ErrValidation, err)
		}
		prompt.Title = *req.Title
	}
	if req.Content != nil {
		prompt.Content = *req.Content
	}
	if req.Description != nil {
		prompt.Description = *req.Description
	}
	if req.Category != nil {
		prompt.Category = *req.Category
	}

	prompt.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, prompt); err != nil {
		return nil, err
	}

	return prompt, nil
}

// Delete removes a prompt. Idempotent.
func (s *PromptService) Delete(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *PromptService) validateCreateRequest(req *CreatePromptRequest) error {
	return validation.ValidateStruct(req,
		validation.Field(&req.Title,
			validation.Required,
			validation.Length(1, config.MaxTitleLength),
		),
		validation.Field(&req.Content, validation.Required),
	)
}
