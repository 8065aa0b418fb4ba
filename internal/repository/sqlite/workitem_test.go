package sqlite

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
)

func testWorkItem(id string, typ models.WorkItemType) *models.WorkItem {
	return &models.WorkItem{
		ID:         id,
		DocumentID: "doc-1",
		Title:      "主角",
		Content:    "some notes",
		Type:       typ,
		CreatedAt:  1000,
		UpdatedAt:  1000,
	}
}

func TestWorkItemCollectionsAreIsolated(t *testing.T) {
	repo := NewWorkItemRepository(newTestStore(t))
	ctx := context.Background()

	for _, typ := range []models.WorkItemType{
		models.WorkItemSetting,
		models.WorkItemCharacter,
		models.WorkItemKnowledge,
	} {
		require.NoError(t, repo.Create(ctx, testWorkItem("shared-id", typ)))
	}

	// Same id in all three collections; deleting from one leaves the others.
	require.NoError(t, repo.Delete(ctx, models.WorkItemCharacter, "shared-id"))

	_, err := repo.GetByID(ctx, models.WorkItemCharacter, "shared-id")
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	for _, typ := range []models.WorkItemType{models.WorkItemSetting, models.WorkItemKnowledge} {
		item, err := repo.GetByID(ctx, typ, "shared-id")
		require.NoError(t, err)
		assert.Equal(t, typ, item.Type)
	}
}

func TestWorkItemListByDocument(t *testing.T) {
	repo := NewWorkItemRepository(newTestStore(t))
	ctx := context.Background()

	first := testWorkItem("w1", models.WorkItemSetting)
	first.CreatedAt = 1
	second := testWorkItem("w2", models.WorkItemSetting)
	second.CreatedAt = 2
	other := testWorkItem("w3", models.WorkItemSetting)
	other.DocumentID = "doc-2"

	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, other))

	items, err := repo.GetByDocumentID(ctx, models.WorkItemSetting, "doc-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "w1", items[0].ID)
	assert.Equal(t, "w2", items[1].ID)
}

func TestWorkItemLegacyNameBackfill(t *testing.T) {
	store := newTestStore(t)
	repo := NewWorkItemRepository(store)
	ctx := context.Background()

	// Simulate a record written under the old shape: title empty, display
	// name in the legacy column.
	_, err := store.db.Exec(fmt.Sprintf(
		`INSERT INTO %s (id, document_id, title, content, name, created_at, updated_at)
		 VALUES (?, ?, '', ?, ?, ?, ?)`, store.tables.CharacterItems),
		"legacy-1", "doc-1", "notes", "旧角色名", 1, 1,
	)
	require.NoError(t, err)

	item, err := repo.GetByID(ctx, models.WorkItemCharacter, "legacy-1")
	require.NoError(t, err)
	assert.Equal(t, "旧角色名", item.Title)
}

func TestWorkItemLegacyDefaultTitleBackfill(t *testing.T) {
	store := newTestStore(t)
	repo := NewWorkItemRepository(store)
	ctx := context.Background()

	// Neither title nor legacy name: each collection falls back to its own
	// default display title.
	for table, typ := range map[string]models.WorkItemType{
		store.tables.SettingItems:   models.WorkItemSetting,
		store.tables.CharacterItems: models.WorkItemCharacter,
		store.tables.KnowledgeItems: models.WorkItemKnowledge,
	} {
		_, err := store.db.Exec(fmt.Sprintf(
			`INSERT INTO %s (id, document_id, title, content, created_at, updated_at)
			 VALUES (?, ?, '', '', ?, ?)`, table),
			"bare-1", "doc-1", 1, 1,
		)
		require.NoError(t, err)

		item, err := repo.GetByID(ctx, typ, "bare-1")
		require.NoError(t, err)
		assert.Equal(t, typ.DefaultTitle(), item.Title)
	}
}

func TestWorkItemUpdateClearsLegacyName(t *testing.T) {
	store := newTestStore(t)
	repo := NewWorkItemRepository(store)
	ctx := context.Background()

	_, err := store.db.Exec(fmt.Sprintf(
		`INSERT INTO %s (id, document_id, title, content, name, created_at, updated_at)
		 VALUES (?, ?, '', '', ?, ?, ?)`, store.tables.SettingItems),
		"legacy-1", "doc-1", "旧设定名", 1, 1,
	)
	require.NoError(t, err)

	item, err := repo.GetByID(ctx, models.WorkItemSetting, "legacy-1")
	require.NoError(t, err)
	item.UpdatedAt = 2
	require.NoError(t, repo.Update(ctx, item))

	// The backfilled title is now durable and the legacy column gone.
	var title string
	var name any
	err = store.db.QueryRow(fmt.Sprintf(
		`SELECT title, name FROM %s WHERE id = ?`, store.tables.SettingItems),
		"legacy-1",
	).Scan(&title, &name)
	require.NoError(t, err)
	assert.Equal(t, "旧设定名", title)
	assert.Nil(t, name)
}

func TestWorkItemUpdateMissing(t *testing.T) {
	repo := NewWorkItemRepository(newTestStore(t))

	err := repo.Update(context.Background(), testWorkItem("ghost", models.WorkItemSetting))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestWorkItemDeleteByDocument(t *testing.T) {
	repo := NewWorkItemRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testWorkItem("w1", models.WorkItemKnowledge)))
	require.NoError(t, repo.Create(ctx, testWorkItem("w2", models.WorkItemKnowledge)))
	other := testWorkItem("w3", models.WorkItemKnowledge)
	other.DocumentID = "doc-2"
	require.NoError(t, repo.Create(ctx, other))

	require.NoError(t, repo.DeleteByDocumentID(ctx, models.WorkItemKnowledge, "doc-1"))

	items, err := repo.GetByDocumentID(ctx, models.WorkItemKnowledge, "doc-1")
	require.NoError(t, err)
	assert.Empty(t, items)

	remaining, err := repo.GetByDocumentID(ctx, models.WorkItemKnowledge, "doc-2")
	require.NoError(t, err)
	assert.Len(t, remaining, 1)
}
