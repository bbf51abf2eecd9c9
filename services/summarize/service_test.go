package summarize

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/internal/observability"
	"github.com/linkyboard/linkyboard-api/models"
	"github.com/linkyboard/linkyboard-api/repositories"
)

const testHTML = `<html><head><title>Go Testing</title></head>
<body><p>Testing in Go is straightforward. The testing package provides what most projects need.
Table-driven tests keep cases readable. Subtests group related assertions.</p></body></html>`

// memoryCache is an in-memory repositories.SummaryCacheRepository for tests.
type memoryCache struct {
	entries map[string]*models.SummaryCache
	hits    map[string]int
	getErr  error
}

func newMemoryCache() *memoryCache {
	return &memoryCache{
		entries: map[string]*models.SummaryCache{},
		hits:    map[string]int{},
	}
}

func (m *memoryCache) GetByKey(ctx context.Context, key string) (*models.SummaryCache, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	entry, ok := m.entries[key]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return entry, nil
}

func (m *memoryCache) Upsert(ctx context.Context, entry *models.SummaryCache) error {
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}
	m.entries[entry.CacheKey] = entry
	return nil
}

func (m *memoryCache) RecordHit(ctx context.Context, key string) error {
	m.hits[key]++
	return nil
}

type failingSummarizer struct{}

func (failingSummarizer) Summarize(ctx context.Context, title, content string) (*Summary, error) {
	return nil, errors.New("model unavailable")
}

func newTestService(cache repositories.SummaryCacheRepository) (*Service, *observability.Registry) {
	registry := observability.NewRegistry()
	tracker := observability.NewTracker(registry, zap.NewNop())
	summarizer := NewExtractiveSummarizer(200, 5)
	return NewService(cache, summarizer, tracker, registry, zap.NewNop(), "gpt-4o-mini"), registry
}

func TestSummarizeCacheMissGeneratesAndStores(t *testing.T) {
	cache := newMemoryCache()
	svc, registry := newTestService(cache)

	result, err := svc.Summarize(context.Background(), 42, "https://example.com/go-testing", testHTML)
	require.NoError(t, err)

	assert.False(t, result.CacheHit)
	assert.Equal(t, "Go Testing", result.Title)
	assert.NotEmpty(t, result.Summary)
	assert.NotEmpty(t, result.Keywords)
	assert.Greater(t, result.InputTokens, 0)
	assert.GreaterOrEqual(t, result.WTU, 1)

	// Entry stored under the URL's cache key.
	key := models.CacheKeyFor("https://example.com/go-testing")
	stored, ok := cache.entries[key]
	require.True(t, ok)
	assert.Equal(t, result.Summary, stored.Summary)
	assert.Equal(t, "gpt-4o-mini", stored.Model)

	out, err := registry.Export()
	require.NoError(t, err)
	text := string(out)
	assert.Contains(t, text, `linkyboard_ai_requests_total{model="gpt-4o-mini",operation="summarize",status="ok"} 1`)
	assert.Contains(t, text, `linkyboard_wtu_consumed_total{model="gpt-4o-mini",user_id="42"}`)
}

func TestSummarizeCacheHitSpendsNoTokens(t *testing.T) {
	cache := newMemoryCache()
	svc, registry := newTestService(cache)

	first, err := svc.Summarize(context.Background(), 42, "https://example.com/a", testHTML)
	require.NoError(t, err)
	require.False(t, first.CacheHit)

	second, err := svc.Summarize(context.Background(), 42, "https://example.com/a", testHTML)
	require.NoError(t, err)

	assert.True(t, second.CacheHit)
	assert.Equal(t, first.Summary, second.Summary)
	assert.Zero(t, second.InputTokens)
	assert.Zero(t, second.WTU)

	key := models.CacheKeyFor("https://example.com/a")
	assert.Equal(t, 1, cache.hits[key])

	// Still exactly one AI request after the second call.
	out, err := registry.Export()
	require.NoError(t, err)
	assert.Contains(t, string(out), `linkyboard_ai_requests_total{model="gpt-4o-mini",operation="summarize",status="ok"} 1`)
}

func TestSummarizeExpiredEntryRegenerates(t *testing.T) {
	cache := newMemoryCache()
	svc, _ := newTestService(cache)

	_, err := svc.Summarize(context.Background(), 0, "https://example.com/a", testHTML)
	require.NoError(t, err)

	key := models.CacheKeyFor("https://example.com/a")
	cache.entries[key].CreatedAt = time.Now().Add(-models.SummaryCacheTTL - time.Hour)

	result, err := svc.Summarize(context.Background(), 0, "https://example.com/a", testHTML)
	require.NoError(t, err)
	assert.False(t, result.CacheHit)
}

func TestSummarizeChangedContentRegenerates(t *testing.T) {
	cache := newMemoryCache()
	svc, _ := newTestService(cache)

	_, err := svc.Summarize(context.Background(), 0, "https://example.com/a", testHTML)
	require.NoError(t, err)

	changed := `<html><title>Go Testing</title><body><p>Entirely new body text now.</p></body></html>`
	result, err := svc.Summarize(context.Background(), 0, "https://example.com/a", changed)
	require.NoError(t, err)
	assert.False(t, result.CacheHit)
}

func TestSummarizeCacheFailureDegradesToGeneration(t *testing.T) {
	cache := newMemoryCache()
	cache.getErr = errors.New("connection refused")
	svc, _ := newTestService(cache)

	result, err := svc.Summarize(context.Background(), 0, "https://example.com/a", testHTML)
	require.NoError(t, err)
	assert.False(t, result.CacheHit)
	assert.NotEmpty(t, result.Summary)
}

func TestSummarizeSummarizerFailure(t *testing.T) {
	cache := newMemoryCache()
	registry := observability.NewRegistry()
	tracker := observability.NewTracker(registry, zap.NewNop())
	svc := NewService(cache, failingSummarizer{}, tracker, registry, zap.NewNop(), "gpt-4o-mini")

	_, err := svc.Summarize(context.Background(), 42, "https://example.com/a", testHTML)
	require.Error(t, err)

	out, exportErr := registry.Export()
	require.NoError(t, exportErr)
	text := string(out)
	assert.Contains(t, text, `linkyboard_ai_requests_total{model="gpt-4o-mini",operation="summarize",status="error"} 1`)
	assert.Contains(t, text, `linkyboard_operations_total{operation="summarize",status="error"} 1`)
	assert.NotContains(t, text, "linkyboard_wtu_consumed_total")
}

func TestAnonymousUserConsumesNoWTU(t *testing.T) {
	cache := newMemoryCache()
	svc, registry := newTestService(cache)

	_, err := svc.Summarize(context.Background(), 0, "https://example.com/anon", testHTML)
	require.NoError(t, err)

	out, err := registry.Export()
	require.NoError(t, err)
	assert.NotContains(t, string(out), "linkyboard_wtu_consumed_total")
}
