package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

func testDocument(id string) *models.Document {
	return &models.Document{
		ID:           id,
		Name:         "novel",
		Content:      "第一章 开端\n正文",
		Size:         24,
		OriginalSize: 20,
		UploadTime:   "2026-01-15 10:30:00",
		Status:       models.StatusDraft,
		Tags:         []string{"fantasy", "wip"},
		CreatedAt:    1000,
		UpdatedAt:    1000,
	}
}

func TestDocumentCreateAndGet(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, repo.Create(ctx, doc))

	got, err := repo.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, doc, got)
}

func TestDocumentGetMissing(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))

	_, err := repo.GetByID(context.Background(), "nope")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDocumentGetAllStableOrder(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))
	ctx := context.Background()

	a := testDocument("a")
	a.CreatedAt = 1
	b := testDocument("b")
	b.CreatedAt = 2
	c := testDocument("c")
	c.CreatedAt = 2

	require.NoError(t, repo.Create(ctx, b))
	require.NoError(t, repo.Create(ctx, c))
	require.NoError(t, repo.Create(ctx, a))

	docs, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, docs, 3)

	// Ordered by creation time, id breaking ties.
	assert.Equal(t, "a", docs[0].ID)
	assert.Equal(t, "b", docs[1].ID)
	assert.Equal(t, "c", docs[2].ID)
}

func TestDocumentUpdatePreservesIdentity(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))
	ctx := context.Background()

	doc := testDocument("doc-1")
	require.NoError(t, repo.Create(ctx, doc))

	doc.Name = "renamed"
	doc.Chapters = []models.Chapter{
		{ID: "0", Title: "序章", Content: "<p>before</p>"},
		{ID: "1", Title: "第一章 开端", Content: "<p>第一章 开端</p><p>正文</p>"},
	}
	doc.CurrentChapterID = "0"
	doc.UpdatedAt = 2000
	require.NoError(t, repo.Update(ctx, doc))

	got, err := repo.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Equal(t, "doc-1", got.ID)
	assert.Equal(t, int64(1000), got.CreatedAt)
	assert.Equal(t, int64(2000), got.UpdatedAt)
	assert.Equal(t, "renamed", got.Name)
	assert.Equal(t, doc.Chapters, got.Chapters)
	assert.Equal(t, "0", got.CurrentChapterID)
}

func TestDocumentUpdateMissing(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))

	err := repo.Update(context.Background(), testDocument("ghost"))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDocumentDeleteIdempotent(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testDocument("doc-1")))

	require.NoError(t, repo.Delete(ctx, "doc-1"))
	require.NoError(t, repo.Delete(ctx, "doc-1"))
	require.NoError(t, repo.Delete(ctx, "never-existed"))

	_, err := repo.GetByID(ctx, "doc-1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestDocumentDeleteAll(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testDocument("a")))
	require.NoError(t, repo.Create(ctx, testDocument("b")))

	require.NoError(t, repo.DeleteAll(ctx))

	docs, err := repo.GetAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestDocumentEmptyOptionalFields(t *testing.T) {
	repo := NewDocumentRepository(newTestStore(t))
	ctx := context.Background()

	doc := testDocument("doc-1")
	doc.Tags = nil
	doc.Chapters = nil
	doc.CurrentChapterID = ""
	require.NoError(t, repo.Create(ctx, doc))

	got, err := repo.GetByID(ctx, "doc-1")
	require.NoError(t, err)
	assert.Nil(t, got.Tags)
	assert.Nil(t, got.Chapters)
	assert.Equal(t, "", got.CurrentChapterID)
}
