package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/models"
	"github.com/linkyboard/linkyboard-api/repositories"
)

// SummaryCacheRepository implements repositories.SummaryCacheRepository
// over PostgreSQL
type SummaryCacheRepository struct {
	db     *DB
	logger *zap.Logger
}

// NewSummaryCacheRepository creates a new summary cache repository
func NewSummaryCacheRepository(db *DB, logger *zap.Logger) repositories.SummaryCacheRepository {
	return &SummaryCacheRepository{
		db:     db,
		logger: logger,
	}
}

// GetByKey retrieves a cache entry by cache key
func (r *SummaryCacheRepository) GetByKey(ctx context.Context, cacheKey string) (*models.SummaryCache, error) {
	query := `
		SELECT id, cache_key, cache_type, content_hash, summary, candidate_tags,
			candidate_category, model, total_input_tokens, total_output_tokens, hit_count, created_at
		FROM summary_cache
		WHERE cache_key = $1
	`

	entry := &models.SummaryCache{}
	var tags pq.StringArray

	err := r.db.QueryRowContext(ctx, query, cacheKey).Scan(
		&entry.ID,
		&entry.CacheKey,
		&entry.CacheType,
		&entry.ContentHash,
		&entry.Summary,
		&tags,
		&entry.CandidateCategory,
		&entry.Model,
		&entry.TotalInputTokens,
		&entry.TotalOutputTokens,
		&entry.HitCount,
		&entry.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get summary cache entry: %w", err)
	}

	entry.CandidateTags = tags
	return entry, nil
}

// Upsert inserts or replaces the entry for its cache key
func (r *SummaryCacheRepository) Upsert(ctx context.Context, entry *models.SummaryCache) error {
	query := `
		INSERT INTO summary_cache (cache_key, cache_type, content_hash, summary, candidate_tags,
			candidate_category, model, total_input_tokens, total_output_tokens, hit_count, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, 0, NOW())
		ON CONFLICT (cache_key) DO UPDATE SET
			content_hash = EXCLUDED.content_hash,
			summary = EXCLUDED.summary,
			candidate_tags = EXCLUDED.candidate_tags,
			candidate_category = EXCLUDED.candidate_category,
			model = EXCLUDED.model,
			total_input_tokens = EXCLUDED.total_input_tokens,
			total_output_tokens = EXCLUDED.total_output_tokens,
			created_at = NOW()
	`

	_, err := r.db.ExecContext(ctx, query,
		entry.CacheKey,
		entry.CacheType,
		entry.ContentHash,
		entry.Summary,
		pq.Array(entry.CandidateTags),
		entry.CandidateCategory,
		entry.Model,
		entry.TotalInputTokens,
		entry.TotalOutputTokens,
	)

	if err != nil {
		return fmt.Errorf("failed to upsert summary cache entry: %w", err)
	}

	r.logger.Debug("summary cache entry stored", zap.String("cache_key", entry.CacheKey))
	return nil
}

// RecordHit increments the hit counter for a cache key
func (r *SummaryCacheRepository) RecordHit(ctx context.Context, cacheKey string) error {
	query := `UPDATE summary_cache SET hit_count = hit_count + 1 WHERE cache_key = $1`

	if _, err := r.db.ExecContext(ctx, query, cacheKey); err != nil {
		return fmt.Errorf("failed to record cache hit: %w", err)
	}
	return nil
}
