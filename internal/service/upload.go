package service

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"
	"time"

	"inkwell/internal/config"
	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/textenc"
)

// UploadFile is one file from an upload batch.
type UploadFile struct {
	Name string
	Data []byte
}

// UploadResult reports the outcome for one file. Failed files carry Err;
// successful ones carry the created document.
type UploadResult struct {
	Name     string           `json:"name"`
	Document *models.Document `json:"document,omitempty"`
	Error    string           `json:"error,omitempty"`

	Err error `json:"-"`
}

// UploadService turns raw uploaded files into documents: extension check,
// size ceilings, legacy-encoding detection and UTF-8 normalization.
type UploadService struct {
	docs   *DocumentService
	logger *slog.Logger
	now    func() time.Time
}

func NewUploadService(docs *DocumentService, logger *slog.Logger) *UploadService {
	return &UploadService{
		docs:   docs,
		logger: logger,
		now:    time.Now,
	}
}

var textExtensions = map[string]bool{
	".txt":      true,
	".text":     true,
	".md":       true,
	".markdown": true,
}

// Ingest processes a batch of uploads. Files are isolated: one bad file
// yields one failed result and the rest of the batch proceeds.
func (s *UploadService) Ingest(ctx context.Context, files []UploadFile) []UploadResult {
	results := make([]UploadResult, 0, len(files))

	for _, f := range files {
		doc, err := s.ingestOne(ctx, f)
		res := UploadResult{Name: f.Name, Document: doc, Err: err}
		if err != nil {
			res.Error = err.Error()
			s.logger.Warn("upload rejected", "name", f.Name, "error", err)
		}
		results = append(results, res)
	}

	return results
}

func (s *UploadService) ingestOne(ctx context.Context, f UploadFile) (*models.Document, error) {
	ext := strings.ToLower(filepath.Ext(f.Name))
	if !textExtensions[ext] {
		return nil, fmt.Errorf("%w: unsupported file type %q", domain.ErrValidation, ext)
	}

	if len(f.Data) > config.MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", domain.ErrSizeLimit, config.MaxUploadBytes)
	}

	content := textenc.Decode(f.Data)
	if len(content) > config.MaxNormalizedBytes {
		return nil, fmt.Errorf("%w: normalized content exceeds %d bytes", domain.ErrSizeLimit, config.MaxNormalizedBytes)
	}

	name := strings.TrimSuffix(filepath.Base(f.Name), ext)
	if name == "" {
		name = f.Name
	}

	return s.docs.Create(ctx, &CreateDocumentRequest{
		Name:         name,
		Content:      content,
		Size:         int64(len(content)),
		OriginalSize: int64(len(f.Data)),
		UploadTime:   s.now().Format("2006-01-02 15:04:05"),
		Status:       models.StatusDraft,
	})
}
