package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// WorkItemHandler handles HTTP requests for the three work-item collections.
// The collection comes from the {type} path segment.
type WorkItemHandler struct {
	service *service.WorkItemService
	logger  *slog.Logger
}

// NewWorkItemHandler creates a new work item handler
func NewWorkItemHandler(svc *service.WorkItemService, logger *slog.Logger) *WorkItemHandler {
	return &WorkItemHandler{
		service: svc,
		logger:  logger,
	}
}

// ListByDocument lists a document's items of one type
// GET /api/documents/{id}/items/{type}
func (h *WorkItemHandler) ListByDocument(w http.ResponseWriter, r *http.Request) {
	typ := models.WorkItemType(r.PathValue("type"))

	items, err := h.service.ListByDocument(r.Context(), typ, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, items)
}

// Create creates a new work item under a document
// POST /api/documents/{id}/items/{type}
func (h *WorkItemHandler) Create(w http.ResponseWriter, r *http.Request) {
	typ := models.WorkItemType(r.PathValue("type"))

	var req service.CreateWorkItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	req.DocumentID = r.PathValue("id")

	item, err := h.service.Create(r.Context(), typ, &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, item)
}

// DeleteByDocument removes every work item of every type for a document
// DELETE /api/documents/{id}/items
func (h *WorkItemHandler) DeleteByDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeleteByDocument(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// Get retrieves one work item
// GET /api/items/{type}/{id}
func (h *WorkItemHandler) Get(w http.ResponseWriter, r *http.Request) {
	typ := models.WorkItemType(r.PathValue("type"))

	item, err := h.service.Get(r.Context(), typ, r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// Update applies a partial update to one work item
// PATCH /api/items/{type}/{id}
func (h *WorkItemHandler) Update(w http.ResponseWriter, r *http.Request) {
	typ := models.WorkItemType(r.PathValue("type"))

	var req service.UpdateWorkItemRequest
	if err := httputil.ParseJSON(w, r, &req); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	item, err := h.service.Update(r.Context(), typ, r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, item)
}

// Delete removes one work item
// DELETE /api/items/{type}/{id}
func (h *WorkItemHandler) Delete(w http.ResponseWriter, r *http.Request) {
	typ := models.WorkItemType(r.PathValue("type"))

	if err := h.service.Delete(r.Context(), typ, r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
