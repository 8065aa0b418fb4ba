package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"inkwell/internal/domain"
	"inkwell/internal/domain/models"
	"inkwell/internal/domain/repositories"
)

// DocumentRepository implements repositories.DocumentRepository over the
// structured local store. Chapters and tags are stored as JSON columns so a
// document row rewrites atomically.
type DocumentRepository struct {
	store *Store
}

// NewDocumentRepository creates a new document repository.
func NewDocumentRepository(store *Store) repositories.DocumentRepository {
	return &DocumentRepository{store: store}
}

// Create persists a new document.
func (r *DocumentRepository) Create(ctx context.Context, doc *models.Document) error {
	tags, chapters, err := encodeDocumentJSON(doc)
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	query := fmt.Sprintf(`
		INSERT INTO %s (id, name, content, size, original_size, upload_time,
			status, tags, chapters, current_chapter_id, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, r.store.tables.Documents)

	return r.store.withRetry("create document", func() error {
		_, err := r.store.db.ExecContext(ctx, query,
			doc.ID,
			doc.Name,
			doc.Content,
			doc.Size,
			doc.OriginalSize,
			doc.UploadTime,
			string(doc.Status),
			tags,
			chapters,
			nullString(doc.CurrentChapterID),
			doc.CreatedAt,
			doc.UpdatedAt,
		)
		return err
	})
}

// GetByID retrieves a document by ID.
func (r *DocumentRepository) GetByID(ctx context.Context, id string) (*models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, name, content, size, original_size, upload_time,
			status, tags, chapters, current_chapter_id, created_at, updated_at
		FROM %s
		WHERE id = ?
	`, r.store.tables.Documents)

	doc, err := scanDocument(r.store.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("document %s: %w", id, domain.ErrNotFound)
		}
		return nil, mapError("get document", err)
	}

	return doc, nil
}

// GetAll lists every document in insertion order, stable across calls.
func (r *DocumentRepository) GetAll(ctx context.Context) ([]models.Document, error) {
	query := fmt.Sprintf(`
		SELECT id, name, content, size, original_size, upload_time,
			status, tags, chapters, current_chapter_id, created_at, updated_at
		FROM %s
		ORDER BY created_at ASC, id ASC
	`, r.store.tables.Documents)

	rows, err := r.store.db.QueryContext(ctx, query)
	if err != nil {
		return nil, mapError("list documents", err)
	}
	defer rows.Close()

	var documents []models.Document
	for rows.Next() {
		doc, err := scanDocument(rows)
		if err != nil {
			return nil, mapError("scan document", err)
		}
		documents = append(documents, *doc)
	}

	if err := rows.Err(); err != nil {
		return nil, mapError("iterate documents", err)
	}

	return documents, nil
}

// Update rewrites an existing document.
func (r *DocumentRepository) Update(ctx context.Context, doc *models.Document) error {
	tags, chapters, err := encodeDocumentJSON(doc)
	if err != nil {
		return fmt.Errorf("update document: %w", err)
	}

	query := fmt.Sprintf(`
		UPDATE %s
		SET name = ?, content = ?, size = ?, original_size = ?, upload_time = ?,
			status = ?, tags = ?, chapters = ?, current_chapter_id = ?, updated_at = ?
		WHERE id = ?
	`, r.store.tables.Documents)

	return r.store.withRetry("update document", func() error {
		result, err := r.store.db.ExecContext(ctx, query,
			doc.Name,
			doc.Content,
			doc.Size,
			doc.OriginalSize,
			doc.UploadTime,
			string(doc.Status),
			tags,
			chapters,
			nullString(doc.CurrentChapterID),
			doc.UpdatedAt,
			doc.ID,
		)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("document %s: %w", doc.ID, domain.ErrNotFound)
		}
		return nil
	})
}

// Delete removes a document. Deleting a missing id is not an error.
func (r *DocumentRepository) Delete(ctx context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE id = ?`, r.store.tables.Documents)

	return r.store.withRetry("delete document", func() error {
		_, err := r.store.db.ExecContext(ctx, query, id)
		return err
	})
}

// DeleteAll empties the documents collection.
func (r *DocumentRepository) DeleteAll(ctx context.Context) error {
	query := fmt.Sprintf(`DELETE FROM %s`, r.store.tables.Documents)

	return r.store.withRetry("clear documents", func() error {
		_, err := r.store.db.ExecContext(ctx, query)
		return err
	})
}

// rowScanner covers both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanDocument(row rowScanner) (*models.Document, error) {
	var (
		doc              models.Document
		status           string
		tags, chapters   sql.NullString
		currentChapterID sql.NullString
	)

	err := row.Scan(
		&doc.ID,
		&doc.Name,
		&doc.Content,
		&doc.Size,
		&doc.OriginalSize,
		&doc.UploadTime,
		&status,
		&tags,
		&chapters,
		&currentChapterID,
		&doc.CreatedAt,
		&doc.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	doc.Status = models.DocumentStatus(status)
	doc.CurrentChapterID = currentChapterID.String

	if tags.Valid && tags.String != "" {
		if err := json.Unmarshal([]byte(tags.String), &doc.Tags); err != nil {
			return nil, fmt.Errorf("decode tags: %w", err)
		}
	}
	if chapters.Valid && chapters.String != "" {
		if err := json.Unmarshal([]byte(chapters.String), &doc.Chapters); err != nil {
			return nil, fmt.Errorf("decode chapters: %w", err)
		}
	}

	return &doc, nil
}

func encodeDocumentJSON(doc *models.Document) (tags, chapters sql.NullString, err error) {
	if len(doc.Tags) > 0 {
		raw, err := json.Marshal(doc.Tags)
		if err != nil {
			return tags, chapters, fmt.Errorf("encode tags: %w", err)
		}
		tags = sql.NullString{String: string(raw), Valid: true}
	}
	if len(doc.Chapters) > 0 {
		raw, err := json.Marshal(doc.Chapters)
		if err != nil {
			return tags, chapters, fmt.Errorf("encode chapters: %w", err)
		}
		chapters = sql.NullString{String: string(raw), Valid: true}
	}
	return tags, chapters, nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
