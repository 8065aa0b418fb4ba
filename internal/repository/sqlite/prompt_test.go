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

func testPrompt(id string, updatedAt int64) *models.SystemPrompt {
	return &models.SystemPrompt{
		ID:        id,
		Title:     "润色",
		Content:   "请润色以下文字",
		Category:  "editing",
		CreatedAt: updatedAt,
		UpdatedAt: updatedAt,
	}
}

func TestPromptCreateAndGet(t *testing.T) {
	repo := NewPromptRepository(newTestStore(t))
	ctx := context.Background()

	prompt := testPrompt("p1", 1000)
	require.NoError(t, repo.Create(ctx, prompt))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, prompt, got)
}

func TestPromptGetAllMostRecentFirst(t *testing.T) {
	repo := NewPromptRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPrompt("old", 1)))
	require.NoError(t, repo.Create(ctx, testPrompt("new", 3)))
	require.NoError(t, repo.Create(ctx, testPrompt("mid", 2)))

	prompts, err := repo.GetAll(ctx)
	require.NoError(t, err)
	require.Len(t, prompts, 3)
	assert.Equal(t, "new", prompts[0].ID)
	assert.Equal(t, "mid", prompts[1].ID)
	assert.Equal(t, "old", prompts[2].ID)
}

func TestPromptUpdate(t *testing.T) {
	repo := NewPromptRepository(newTestStore(t))
	ctx := context.Background()

	prompt := testPrompt("p1", 1000)
	require.NoError(t, repo.Create(ctx, prompt))

	prompt.Title = "扩写"
	prompt.UpdatedAt = 2000
	require.NoError(t, repo.Update(ctx, prompt))

	got, err := repo.GetByID(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, "扩写", got.Title)
	assert.Equal(t, int64(1000), got.CreatedAt)
	assert.Equal(t, int64(2000), got.UpdatedAt)
}

func TestPromptUpdateMissing(t *testing.T) {
	repo := NewPromptRepository(newTestStore(t))

	err := repo.Update(context.Background(), testPrompt("ghost", 1))
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}

func TestPromptDeleteIdempotent(t *testing.T) {
	repo := NewPromptRepository(newTestStore(t))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testPrompt("p1", 1)))

	require.NoError(t, repo.Delete(ctx, "p1"))
	require.NoError(t, repo.Delete(ctx, "p1"))

	_, err := repo.GetByID(ctx, "p1")
	assert.True(t, errors.Is(err, domain.ErrNotFound))
}
