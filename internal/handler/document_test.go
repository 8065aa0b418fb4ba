package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/repository/sqlite"
	"inkwell/internal/service"
)

func newDocumentTestMux(t *testing.T) (*http.ServeMux, *service.DocumentService) {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	store, err := sqlite.Open(":memory:", sqlite.NewTableNames("test_"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	// Long quiet period so pending writes only land on an explicit flush.
	saver := service.NewCoalescer(time.Hour)
	t.Cleanup(saver.Stop)

	svc := service.NewDocumentService(sqlite.NewDocumentRepository(store), saver, logger)
	h := NewDocumentHandler(svc, logger)

	mux := http.NewServeMux()
	mux.HandleFunc("PATCH /api/documents/{id}", h.UpdateDocument)
	mux.HandleFunc("PUT /api/documents/{id}/content", h.SaveContent)

	return mux, svc
}

func TestUpdateDocumentAcceptsLargeContent(t *testing.T) {
	mux, svc := newDocumentTestMux(t)

	doc, err := svc.Create(context.Background(), &service.CreateDocumentRequest{
		Name:    "big",
		Content: "v0",
	})
	require.NoError(t, err)

	// Well past the default JSON body cap, well under the content ceiling.
	body, err := json.Marshal(map[string]string{"content": strings.Repeat("a", 15<<20)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPatch, "/api/documents/"+doc.ID, bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	got, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15<<20), got.Size)
}

func TestSaveContentAcceptsLargeContent(t *testing.T) {
	mux, svc := newDocumentTestMux(t)

	doc, err := svc.Create(context.Background(), &service.CreateDocumentRequest{
		Name:    "big",
		Content: "v0",
	})
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"content": strings.Repeat("b", 15<<20)})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, "/api/documents/"+doc.ID+"/content", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	require.Equal(t, http.StatusAccepted, rec.Code, rec.Body.String())

	svc.FlushContent(doc.ID)

	got, err := svc.Get(context.Background(), doc.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(15<<20), got.Size)
}
