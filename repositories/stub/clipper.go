// Package stub provides the placeholder data-access layer used when no
// database is configured. Every method succeeds with a constant result and
// has no side effects. The real persistence semantics (URL uniqueness,
// concurrent update conflicts, soft-delete filtering) live in the postgres
// package.
package stub

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/models"
	"github.com/linkyboard/linkyboard-api/repositories"
)

// ClipperRepository is the always-succeeding stub implementation of
// repositories.ContentRepository.
type ClipperRepository struct {
	logger *zap.Logger
}

// NewClipperRepository creates the stub content repository
func NewClipperRepository(logger *zap.Logger) repositories.ContentRepository {
	return &ClipperRepository{logger: logger}
}

// Save reports success without persisting anything.
func (r *ClipperRepository) Save(ctx context.Context, content *models.Content) error {
	r.logger.Debug("stub save_content", zap.String("url", content.SourceURL))
	return nil
}

// GetByURL returns an empty record for any URL.
func (r *ClipperRepository) GetByURL(ctx context.Context, sourceURL string) (*models.Content, error) {
	r.logger.Debug("stub get_content_by_url", zap.String("url", sourceURL))
	return &models.Content{}, nil
}

// Update reports success without applying anything.
func (r *ClipperRepository) Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error {
	r.logger.Debug("stub update_content", zap.String("id", id.String()))
	return nil
}

// Delete reports success without removing anything.
func (r *ClipperRepository) Delete(ctx context.Context, id uuid.UUID) error {
	r.logger.Debug("stub delete_content", zap.String("id", id.String()))
	return nil
}

// SummaryCacheRepository is the stub summary cache: every lookup misses and
// every write succeeds, so summaries are regenerated each time.
type SummaryCacheRepository struct {
	logger *zap.Logger
}

// NewSummaryCacheRepository creates the stub summary cache repository
func NewSummaryCacheRepository(logger *zap.Logger) repositories.SummaryCacheRepository {
	return &SummaryCacheRepository{logger: logger}
}

// GetByKey always misses.
func (r *SummaryCacheRepository) GetByKey(ctx context.Context, cacheKey string) (*models.SummaryCache, error) {
	return nil, repositories.ErrNotFound
}

// Upsert reports success without storing anything.
func (r *SummaryCacheRepository) Upsert(ctx context.Context, entry *models.SummaryCache) error {
	r.logger.Debug("stub summary cache upsert", zap.String("cache_key", entry.CacheKey))
	return nil
}

// RecordHit reports success without counting anything.
func (r *SummaryCacheRepository) RecordHit(ctx context.Context, cacheKey string) error {
	return nil
}

// UserRepository is the stub user store: GetOrCreate fabricates an active
// user for any ID.
type UserRepository struct {
	logger *zap.Logger
}

// NewUserRepository creates the stub user repository
func NewUserRepository(logger *zap.Logger) repositories.UserRepository {
	return &UserRepository{logger: logger}
}

// GetOrCreate returns a fresh active user for the given ID.
func (r *UserRepository) GetOrCreate(ctx context.Context, id int64) (*models.User, error) {
	r.logger.Debug("stub user get_or_create", zap.Int64("user_id", id))
	return models.NewUser(id), nil
}

// SetActive reports success without changing anything.
func (r *UserRepository) SetActive(ctx context.Context, id int64, active bool) error {
	return nil
}
