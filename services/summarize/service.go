// Package summarize generates AI summaries for clipped content, replaying
// prior results from the summary cache to avoid spending tokens twice on
// the same page.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/internal/extraction"
	"github.com/linkyboard/linkyboard-api/internal/observability"
	"github.com/linkyboard/linkyboard-api/models"
	"github.com/linkyboard/linkyboard-api/repositories"
	"github.com/linkyboard/linkyboard-api/services/usage"
)

// Result is a summary ready to return to the client.
type Result struct {
	Title        string   `json:"title"`
	Summary      string   `json:"summary"`
	Keywords     []string `json:"keywords"`
	Category     string   `json:"category"`
	Model        string   `json:"model"`
	InputTokens  int      `json:"input_tokens"`
	OutputTokens int      `json:"output_tokens"`
	WTU          int      `json:"wtu"`
	CacheHit     bool     `json:"cache_hit"`
}

// Service coordinates extraction, the summary cache, the summarizer, and
// token-usage accounting.
type Service struct {
	cache      repositories.SummaryCacheRepository
	summarizer Summarizer
	tracker    *observability.Tracker
	metrics    *observability.Registry
	logger     *zap.Logger
	model      string
}

// NewService creates a summarize service.
func NewService(
	cache repositories.SummaryCacheRepository,
	summarizer Summarizer,
	tracker *observability.Tracker,
	metrics *observability.Registry,
	logger *zap.Logger,
	model string,
) *Service {
	return &Service{
		cache:      cache,
		summarizer: summarizer,
		tracker:    tracker,
		metrics:    metrics,
		logger:     logger,
		model:      model,
	}
}

// Summarize produces a summary for the given page, from cache when a valid
// entry exists. userID 0 means anonymous; WTU consumption is only recorded
// for known users.
func (s *Service) Summarize(ctx context.Context, userID int64, sourceURL, html string) (result *Result, err error) {
	span := s.tracker.StartOperation(ctx, "summarize", map[string]interface{}{
		"url": sourceURL,
	})
	defer func() { span.End(err) }()

	extracted := extraction.Extract(html)
	span.SetAttribute("word_count", extracted.WordCount)

	cacheKey := models.CacheKeyFor(sourceURL)

	if cached, hit := s.lookupCache(ctx, cacheKey, extracted.Content); hit {
		span.SetAttribute("cache", "hit")
		return &Result{
			Title:        extracted.Title,
			Summary:      cached.Summary,
			Keywords:     cached.CandidateTags,
			Category:     cached.CandidateCategory,
			Model:        cached.Model,
			InputTokens:  0,
			OutputTokens: 0,
			WTU:          0,
			CacheHit:     true,
		}, nil
	}
	span.SetAttribute("cache", "miss")

	summary, err := s.generate(ctx, extracted.Title, extracted.Content)
	if err != nil {
		return nil, err
	}

	units := usage.FromTokens(summary.InputTokens, summary.OutputTokens)
	if userID > 0 {
		s.metrics.RecordWTU(strconv.FormatInt(userID, 10), s.model, units)
	}

	s.storeCache(ctx, cacheKey, extracted.Content, summary)

	return &Result{
		Title:        extracted.Title,
		Summary:      summary.Summary,
		Keywords:     summary.Keywords,
		Category:     summary.Category,
		Model:        s.model,
		InputTokens:  summary.InputTokens,
		OutputTokens: summary.OutputTokens,
		WTU:          units,
		CacheHit:     false,
	}, nil
}

// generate runs the summarizer under an AI-operation span.
func (s *Service) generate(ctx context.Context, title, content string) (summary *Summary, err error) {
	span := s.tracker.StartAIOperation(ctx, s.model, "summarize")
	defer func() { span.End(err) }()

	summary, err = s.summarizer.Summarize(ctx, title, content)
	if err != nil {
		return nil, fmt.Errorf("summarizer failed: %w", err)
	}

	span.SetTokens(summary.InputTokens, summary.OutputTokens)
	return summary, nil
}

// lookupCache returns a usable cache entry, tolerating cache failures: a
// broken cache degrades to regeneration, never to a failed request.
func (s *Service) lookupCache(ctx context.Context, cacheKey, content string) (*models.SummaryCache, bool) {
	entry, err := s.cache.GetByKey(ctx, cacheKey)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			s.logger.Warn("summary cache lookup failed", zap.Error(err))
		}
		return nil, false
	}

	if entry.IsExpired(time.Now()) || !entry.MatchesContent(content) {
		return nil, false
	}

	if err := s.cache.RecordHit(ctx, cacheKey); err != nil {
		s.logger.Warn("failed to record cache hit", zap.Error(err))
	}
	return entry, true
}

func (s *Service) storeCache(ctx context.Context, cacheKey, content string, summary *Summary) {
	entry := &models.SummaryCache{
		CacheKey:          cacheKey,
		CacheType:         string(models.ContentTypeWebpage),
		ContentHash:       models.ContentHashFor(content),
		Summary:           summary.Summary,
		CandidateTags:     summary.Keywords,
		CandidateCategory: summary.Category,
		Model:             s.model,
		TotalInputTokens:  summary.InputTokens,
		TotalOutputTokens: summary.OutputTokens,
	}

	if err := s.cache.Upsert(ctx, entry); err != nil {
		s.logger.Warn("failed to store summary cache entry", zap.Error(err))
	}
}
