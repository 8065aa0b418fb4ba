package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// ModelsHandler serves the chat model catalog
type ModelsHandler struct {
	service *service.ChatService
	logger  *slog.Logger
}

// NewModelsHandler creates a new models handler
func NewModelsHandler(svc *service.ChatService, logger *slog.Logger) *ModelsHandler {
	return &ModelsHandler{
		service: svc,
		logger:  logger,
	}
}

// ListModels returns the accepted chat models in catalog order
// GET /api/models
func (h *ModelsHandler) ListModels(w http.ResponseWriter, r *http.Request) {
	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"models": h.service.Models(),
	})
}
