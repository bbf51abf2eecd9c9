package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/models"
	"github.com/linkyboard/linkyboard-api/repositories"
)

// ContentRepository implements repositories.ContentRepository over PostgreSQL
type ContentRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewContentRepository creates a new content repository
func NewContentRepository(db *DB, logger *zap.Logger) repositories.ContentRepository {
	return &ContentRepository{
		db:     db,
		logger: logger,
	}
}

// Save persists a clipped item. The source URL is unique; a second clip of
// the same URL fails with a constraint error.
func (r *ContentRepository) Save(ctx context.Context, content *models.Content) error {
	query := `
		INSERT INTO contents (id, content_type, source_url, title, thumbnail, raw_content,
			summary, keywords, category, user_memo, processing_status, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`

	_, err := r.db.ExecContext(ctx, query,
		content.ID,
		content.Type,
		content.SourceURL,
		content.Title,
		content.Thumbnail,
		content.RawContent,
		content.Summary,
		pq.Array(content.Keywords),
		content.Category,
		content.UserMemo,
		content.Status,
		content.IsActive,
		content.CreatedAt,
		content.UpdatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to save content: %w", err)
	}

	r.logger.Debug("content saved",
		zap.String("id", content.ID.String()),
		zap.String("url", content.SourceURL))
	return nil
}

// GetByURL retrieves an active clipped item by source URL
func (r *ContentRepository) GetByURL(ctx context.Context, sourceURL string) (*models.Content, error) {
	query := `
		SELECT id, content_type, source_url, title, thumbnail, raw_content,
			summary, keywords, category, user_memo, processing_status, is_active, created_at, updated_at
		FROM contents
		WHERE source_url = $1 AND is_active = TRUE
	`

	content := &models.Content{}
	var keywords pq.StringArray

	err := r.db.QueryRowContext(ctx, query, sourceURL).Scan(
		&content.ID,
		&content.Type,
		&content.SourceURL,
		&content.Title,
		&content.Thumbnail,
		&content.RawContent,
		&content.Summary,
		&keywords,
		&content.Category,
		&content.UserMemo,
		&content.Status,
		&content.IsActive,
		&content.CreatedAt,
		&content.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get content: %w", err)
	}

	content.Keywords = keywords
	return content, nil
}

// updatableColumns guards against arbitrary column injection through the
// partial-update map.
var updatableColumns = map[string]struct{}{
	"title":             {},
	"thumbnail":         {},
	"summary":           {},
	"keywords":          {},
	"category":          {},
	"user_memo":         {},
	"processing_status": {},
	"is_active":         {},
}

// Update applies the given partial fields to a clipped item
func (r *ContentRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	if len(fields) == 0 {
		return nil
	}

	columns := make([]string, 0, len(fields))
	for column := range fields {
		if _, ok := updatableColumns[column]; !ok {
			return fmt.Errorf("column %q is not updatable", column)
		}
		columns = append(columns, column)
	}
	sort.Strings(columns)

	assignments := make([]string, 0, len(columns)+1)
	args := make([]interface{}, 0, len(columns)+1)
	for i, column := range columns {
		assignments = append(assignments, fmt.Sprintf("%s = $%d", column, i+1))
		value := fields[column]
		if column == "keywords" {
			if kw, ok := value.([]string); ok {
				value = pq.Array(kw)
			}
		}
		args = append(args, value)
	}
	assignments = append(assignments, "updated_at = NOW()")
	args = append(args, id)

	query := fmt.Sprintf("UPDATE contents SET %s WHERE id = $%d",
		strings.Join(assignments, ", "), len(columns)+1)

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update content: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

// Delete soft-deletes a clipped item
func (r *ContentRepository) Delete(ctx context.Context, id uuid.UUID) error {
	query := `UPDATE contents SET is_active = FALSE, updated_at = NOW() WHERE id = $1 AND is_active = TRUE`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete content: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if rows == 0 {
		return repositories.ErrNotFound
	}

	r.logger.Debug("content deleted", zap.String("id", id.String()))
	return nil
}
