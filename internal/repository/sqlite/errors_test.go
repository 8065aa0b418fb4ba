package sqlite

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkwell/internal/domain"
)

func TestSqliteCodeNonDriverError(t *testing.T) {
	assert.Equal(t, -1, sqliteCode(errors.New("boom")))
	assert.Equal(t, -1, sqliteCode(nil))
}

func TestMapErrorWrapsUnknownErrors(t *testing.T) {
	base := errors.New("boom")
	err := mapError("get document", base)

	require.Error(t, err)
	assert.True(t, errors.Is(err, base))
	assert.False(t, errors.Is(err, domain.ErrQuotaExceeded))
	assert.False(t, errors.Is(err, domain.ErrAborted))
	assert.Contains(t, err.Error(), "get document")
}

func TestReadErrorsKeepOperationContext(t *testing.T) {
	store := newTestStore(t)
	repo := NewDocumentRepository(store)
	require.NoError(t, store.Close())

	// A failed read must surface through the same taxonomy mapping as
	// writes, never as a bare driver error or a spurious not-found.
	_, err := repo.GetByID(context.Background(), "doc-1")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotFound))
	assert.Contains(t, err.Error(), "get document")

	_, err = repo.GetAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list documents")
}
