package handler

import (
	"log/slog"
	"net/http"

	"inkwell/internal/config"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// maxDocumentBody bounds create/update request bodies. Twice the normalized
// content ceiling leaves room for JSON string escaping around a
// maximum-size document.
const maxDocumentBody = 2 * config.MaxNormalizedBytes

// DocumentHandler handles document HTTP requests
type DocumentHandler struct {
	service *service.DocumentService
	logger  *slog.Logger
}

// NewDocumentHandler creates a new document handler
func NewDocumentHandler(svc *service.DocumentService, logger *slog.Logger) *DocumentHandler {
	return &DocumentHandler{
		service: svc,
		logger:  logger,
	}
}

// ListDocuments lists all documents
// GET /api/documents
func (h *DocumentHandler) ListDocuments(w http.ResponseWriter, r *http.Request) {
	docs, err := h.service.List(r.Context())
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, docs)
}

// CreateDocument creates a new document
// POST /api/documents
func (h *DocumentHandler) CreateDocument(w http.ResponseWriter, r *http.Request) {
	var req service.CreateDocumentRequest
	if err := httputil.ParseJSONMax(w, r, &req, maxDocumentBody); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.service.Create(r.Context(), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusCreated, doc)
}

// GetDocument retrieves a document by ID
// GET /api/documents/{id}
func (h *DocumentHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// UpdateDocument applies a partial update
// PATCH /api/documents/{id}
func (h *DocumentHandler) UpdateDocument(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateDocumentRequest
	if err := httputil.ParseJSONMax(w, r, &req, maxDocumentBody); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	doc, err := h.service.Update(r.Context(), r.PathValue("id"), &req)
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// DeleteDocument removes a document
// DELETE /api/documents/{id}
func (h *DocumentHandler) DeleteDocument(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("id")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ClearDocuments removes every document
// DELETE /api/documents
func (h *DocumentHandler) ClearDocuments(w http.ResponseWriter, r *http.Request) {
	if err := h.service.ClearAll(r.Context()); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// OpenDocument opens a document for editing, parsing chapters on first open
// POST /api/documents/{id}/open
func (h *DocumentHandler) OpenDocument(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.Open(r.Context(), r.PathValue("id"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// SwitchChapter records the active chapter
// PUT /api/documents/{id}/current-chapter/{chapterId}
func (h *DocumentHandler) SwitchChapter(w http.ResponseWriter, r *http.Request) {
	doc, err := h.service.SwitchChapter(r.Context(), r.PathValue("id"), r.PathValue("chapterId"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, doc)
}

// SaveContent schedules a debounced content write. Returns 202 because the
// write lands after the quiet period, not before the response.
// PUT /api/documents/{id}/content
func (h *DocumentHandler) SaveContent(w http.ResponseWriter, r *http.Request) {
	var req service.UpdateDocumentRequest
	if err := httputil.ParseJSONMax(w, r, &req, maxDocumentBody); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	h.service.SaveContent(r.PathValue("id"), &req)

	w.WriteHeader(http.StatusAccepted)
}

// FlushContent forces any pending debounced write to run now
// POST /api/documents/{id}/content/flush
func (h *DocumentHandler) FlushContent(w http.ResponseWriter, r *http.Request) {
	h.service.FlushContent(r.PathValue("id"))

	w.WriteHeader(http.StatusNoContent)
}
