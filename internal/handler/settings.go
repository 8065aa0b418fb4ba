package handler

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"inkwell/internal/domain/models"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// SettingsHandler handles preference HTTP requests. Values are opaque JSON;
// the key names the preference (e.g. systemPrompt).
type SettingsHandler struct {
	service *service.SettingsService
	logger  *slog.Logger
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(svc *service.SettingsService, logger *slog.Logger) *SettingsHandler {
	return &SettingsHandler{
		service: svc,
		logger:  logger,
	}
}

// GetSetting retrieves a preference value
// GET /api/settings/{key}
func (h *SettingsHandler) GetSetting(w http.ResponseWriter, r *http.Request) {
	value, err := h.service.Get(r.Context(), r.PathValue("key"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, map[string]json.RawMessage{"value": value})
}

// PutSetting upserts a preference value. The body is the raw JSON value.
// PUT /api/settings/{key}
func (h *SettingsHandler) PutSetting(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, 1<<20))
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.Set(r.Context(), r.PathValue("key"), body); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// GetCacheEntry retrieves an unexpired cached response by url
// GET /api/cache?url=...
func (h *SettingsHandler) GetCacheEntry(w http.ResponseWriter, r *http.Request) {
	entry, err := h.service.CacheGet(r.Context(), r.URL.Query().Get("url"))
	if err != nil {
		handleError(w, err)
		return
	}

	httputil.RespondJSON(w, http.StatusOK, entry)
}

// PutCacheEntry stores a response under its url
// PUT /api/cache
func (h *SettingsHandler) PutCacheEntry(w http.ResponseWriter, r *http.Request) {
	var entry models.CacheEntry
	if err := httputil.ParseJSON(w, r, &entry); err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if err := h.service.CachePut(r.Context(), &entry); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// DeleteSetting removes a preference
// DELETE /api/settings/{key}
func (h *SettingsHandler) DeleteSetting(w http.ResponseWriter, r *http.Request) {
	if err := h.service.Delete(r.Context(), r.PathValue("key")); err != nil {
		handleError(w, err)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
