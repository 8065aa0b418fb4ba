package handler

import (
	"io"
	"log/slog"
	"net/http"

	"inkwell/internal/config"
	"inkwell/internal/httputil"
	"inkwell/internal/service"
)

// UploadHandler handles multipart file uploads
type UploadHandler struct {
	service *service.UploadService
	logger  *slog.Logger
}

// NewUploadHandler creates a new upload handler
func NewUploadHandler(svc *service.UploadService, logger *slog.Logger) *UploadHandler {
	return &UploadHandler{
		service: svc,
		logger:  logger,
	}
}

// Upload ingests a batch of files from a multipart form. Every file gets
// its own result; a failed file never aborts the batch.
// POST /api/uploads
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	// Headroom above the per-file ceiling so the size check happens in the
	// service with a proper per-file error, not a blunt 413 for the batch.
	r.Body = http.MaxBytesReader(w, r.Body, 8*config.MaxUploadBytes)

	reader, err := r.MultipartReader()
	if err != nil {
		httputil.RespondError(w, http.StatusBadRequest, "expected multipart form data")
		return
	}

	var files []service.UploadFile
	for {
		part, err := reader.NextPart()
		if err == io.EOF {
			break
		}
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "malformed multipart form")
			return
		}

		if part.FormName() != "files" || part.FileName() == "" {
			part.Close()
			continue
		}

		name := part.FileName()
		data, err := io.ReadAll(io.LimitReader(part, config.MaxUploadBytes+1))
		part.Close()
		if err != nil {
			httputil.RespondError(w, http.StatusBadRequest, "failed to read uploaded file")
			return
		}

		files = append(files, service.UploadFile{Name: name, Data: data})
	}

	if len(files) == 0 {
		httputil.RespondError(w, http.StatusBadRequest, "no files in upload")
		return
	}

	results := h.service.Ingest(r.Context(), files)

	httputil.RespondJSON(w, http.StatusOK, map[string]interface{}{
		"results": results,
	})
}
