package models

import (
	"crypto/sha256"
	"encoding/hex"
	"time"
)

// SummaryCacheTTL is how long a cached summary stays valid.
const SummaryCacheTTL = 30 * 24 * time.Hour

// SummaryCache caches AI summary results keyed by the SHA-256 of the source
// URL (or file hash), so repeated clips of the same page do not spend
// tokens again. Token totals record what the original generation cost.
type SummaryCache struct {
	ID                int64     `json:"id" db:"id"`
	CacheKey          string    `json:"cache_key" db:"cache_key"`
	CacheType         string    `json:"cache_type" db:"cache_type"`
	ContentHash       string    `json:"content_hash,omitempty" db:"content_hash"`
	Summary           string    `json:"summary" db:"summary"`
	CandidateTags     []string  `json:"candidate_tags,omitempty" db:"candidate_tags"`
	CandidateCategory string    `json:"candidate_category,omitempty" db:"candidate_category"`
	Model             string    `json:"model" db:"model"`
	TotalInputTokens  int       `json:"total_input_tokens" db:"total_input_tokens"`
	TotalOutputTokens int       `json:"total_output_tokens" db:"total_output_tokens"`
	HitCount          int       `json:"hit_count" db:"hit_count"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// TableName returns the table name for the SummaryCache model
func (SummaryCache) TableName() string {
	return "summary_cache"
}

// CacheKeyFor derives the cache key for a source URL.
func CacheKeyFor(sourceURL string) string {
	sum := sha256.Sum256([]byte(sourceURL))
	return hex.EncodeToString(sum[:])
}

// ContentHashFor derives the change-detection hash of raw content.
func ContentHashFor(rawContent string) string {
	sum := sha256.Sum256([]byte(rawContent))
	return hex.EncodeToString(sum[:])
}

// IsExpired reports whether the entry has outlived the cache TTL.
func (s *SummaryCache) IsExpired(now time.Time) bool {
	return now.Sub(s.CreatedAt) > SummaryCacheTTL
}

// MatchesContent reports whether the cached entry still describes the given
// raw content. Entries without a content hash match any content.
func (s *SummaryCache) MatchesContent(rawContent string) bool {
	if s.ContentHash == "" {
		return true
	}
	return s.ContentHash == ContentHashFor(rawContent)
}
