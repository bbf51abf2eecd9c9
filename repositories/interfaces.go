package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/linkyboard/linkyboard-api/models"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// ContentRepository handles clipped-content data operations. Callers must
// treat every method as a fallible external call and surface failures
// through the response envelope.
type ContentRepository interface {
	// Save persists a clipped item
	Save(ctx context.Context, content *models.Content) error

	// GetByURL retrieves a clipped item by its source URL
	GetByURL(ctx context.Context, sourceURL string) (*models.Content, error)

	// Update applies the given partial fields to a clipped item
	Update(ctx context.Context, id uuid.UUID, fields map[string]interface{}) error

	// Delete removes a clipped item
	Delete(ctx context.Context, id uuid.UUID) error
}

// SummaryCacheRepository handles the AI summary cache table
type SummaryCacheRepository interface {
	// GetByKey retrieves a cache entry by cache key; ErrNotFound on miss
	GetByKey(ctx context.Context, cacheKey string) (*models.SummaryCache, error)

	// Upsert inserts or replaces the entry for its cache key
	Upsert(ctx context.Context, entry *models.SummaryCache) error

	// RecordHit increments the hit counter for a cache key
	RecordHit(ctx context.Context, cacheKey string) error
}

// UserRepository handles user sync data operations
type UserRepository interface {
	// GetOrCreate fetches the user, creating an active record if absent
	GetOrCreate(ctx context.Context, id int64) (*models.User, error)

	// SetActive activates or deactivates a user
	SetActive(ctx context.Context, id int64, active bool) error
}
