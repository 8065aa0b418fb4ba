package service

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
)

func newTestUploadService(t *testing.T) (*UploadService, *fakeDocumentRepo) {
	t.Helper()

	docSvc, repo, _ := newTestDocumentService(t)
	svc := NewUploadService(docSvc, slog.New(slog.NewTextHandler(io.Discard, nil)))
	svc.now = func() time.Time {
		return time.Date(2026, 1, 15, 10, 30, 0, 0, time.UTC)
	}

	return svc, repo
}

func TestUploadIngestTextFile(t *testing.T) {
	svc, _ := newTestUploadService(t)

	results := svc.Ingest(context.Background(), []UploadFile{
		{Name: "my story.txt", Data: []byte("第一章 开端\n正文")},
	})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)

	doc := results[0].Document
	require.NotNil(t, doc)
	assert.Equal(t, "my story", doc.Name)
	assert.Equal(t, "第一章 开端\n正文", doc.Content)
	assert.Equal(t, "2026-01-15 10:30:00", doc.UploadTime)
	assert.Equal(t, int64(len(doc.Content)), doc.Size)
}

func TestUploadIngestGBKFile(t *testing.T) {
	svc, _ := newTestUploadService(t)

	// "你好" in GBK
	results := svc.Ingest(context.Background(), []UploadFile{
		{Name: "legacy.txt", Data: []byte{0xC4, 0xE3, 0xBA, 0xC3}},
	})

	require.Len(t, results, 1)
	require.NoError(t, results[0].Err)
	assert.Equal(t, "你好", results[0].Document.Content)
	assert.Equal(t, int64(4), results[0].Document.OriginalSize)
}

func TestUploadRejectsUnsupportedExtension(t *testing.T) {
	svc, _ := newTestUploadService(t)

	results := svc.Ingest(context.Background(), []UploadFile{
		{Name: "novel.pdf", Data: []byte("%PDF-")},
	})

	require.Len(t, results, 1)
	assert.True(t, errors.Is(results[0].Err, domain.ErrValidation))
	assert.Nil(t, results[0].Document)
}

func TestUploadRejectsOversizedFile(t *testing.T) {
	svc, _ := newTestUploadService(t)

	results := svc.Ingest(context.Background(), []UploadFile{
		{Name: "huge.txt", Data: bytes.Repeat([]byte("a"), 20<<20+1)},
	})

	require.Len(t, results, 1)
	assert.True(t, errors.Is(results[0].Err, domain.ErrSizeLimit))
}

func TestUploadRejectsOversizedNormalizedContent(t *testing.T) {
	svc, repo := newTestUploadService(t)

	// Exactly at the raw ceiling, but every 0xFF byte re-encodes as a
	// three-byte replacement rune, so the normalized text lands near 40 MiB.
	raw := bytes.Repeat([]byte{'a', 0xFF}, 10<<20)

	results := svc.Ingest(context.Background(), []UploadFile{
		{Name: "expands.txt", Data: raw},
	})

	require.Len(t, results, 1)
	assert.True(t, errors.Is(results[0].Err, domain.ErrSizeLimit))
	assert.Nil(t, results[0].Document)

	docs, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestUploadBatchIsolation(t *testing.T) {
	svc, repo := newTestUploadService(t)

	results := svc.Ingest(context.Background(), []UploadFile{
		{Name: "good.txt", Data: []byte("fine")},
		{Name: "bad.exe", Data: []byte("nope")},
		{Name: "also-good.md", Data: []byte("# ok")},
	})

	require.Len(t, results, 3)
	assert.NoError(t, results[0].Err)
	assert.Error(t, results[1].Err)
	assert.NoError(t, results[2].Err)

	docs, err := repo.GetAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, docs, 2)
}
