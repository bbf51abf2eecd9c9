// Package clipper implements the clip operations behind the extension:
// saving a page, summarizing it, or both in one call.
package clipper

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/internal/extraction"
	"github.com/linkyboard/linkyboard-api/internal/observability"
	"github.com/linkyboard/linkyboard-api/models"
	"github.com/linkyboard/linkyboard-api/repositories"
	"github.com/linkyboard/linkyboard-api/services/summarize"
)

// ClipRequest carries one page clipped by the extension.
type ClipRequest struct {
	URL       string
	Title     string
	Thumbnail string
	HTML      string
	Memo      string
}

// Service executes clip operations against the content store and the
// summarize service.
type Service struct {
	contents   repositories.ContentRepository
	summarizer *summarize.Service
	tracker    *observability.Tracker
	logger     *zap.Logger
}

// NewService creates a clipper service.
func NewService(
	contents repositories.ContentRepository,
	summarizer *summarize.Service,
	tracker *observability.Tracker,
	logger *zap.Logger,
) *Service {
	return &Service{
		contents:   contents,
		summarizer: summarizer,
		tracker:    tracker,
		logger:     logger,
	}
}

// SaveOnly stores the clipped page as-is, without generating a summary.
func (s *Service) SaveOnly(ctx context.Context, userID int64, req ClipRequest) (content *models.Content, err error) {
	span := s.tracker.StartOperation(ctx, "clipper.save_only", map[string]interface{}{
		"url": req.URL,
	})
	defer func() { span.End(err) }()

	content = s.newContent(req)
	if err = s.contents.Save(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to save content: %w", err)
	}

	s.logger.Info("content saved",
		zap.String("content_id", content.ID.String()),
		zap.String("url", req.URL))
	return content, nil
}

// Summarize produces a summary for the page without persisting it.
func (s *Service) Summarize(ctx context.Context, userID int64, req ClipRequest) (*summarize.Result, error) {
	return s.summarizer.Summarize(ctx, userID, req.URL, req.HTML)
}

// SummaryFields is a summary the client already has, typically produced by
// an earlier Summarize call and possibly edited by the user.
type SummaryFields struct {
	Summary  string
	Keywords []string
	Category string
}

// SaveWithSummary stores the clipped page with the given summary attached.
func (s *Service) SaveWithSummary(ctx context.Context, userID int64, req ClipRequest, summary SummaryFields) (content *models.Content, err error) {
	span := s.tracker.StartOperation(ctx, "clipper.save_with_summary", map[string]interface{}{
		"url": req.URL,
	})
	defer func() { span.End(err) }()

	content = s.newContent(req)
	content.AttachSummary(summary.Summary, summary.Keywords, summary.Category)

	if err = s.contents.Save(ctx, content); err != nil {
		return nil, fmt.Errorf("failed to save content: %w", err)
	}

	s.logger.Info("content saved with summary",
		zap.String("content_id", content.ID.String()),
		zap.String("url", req.URL),
		zap.String("category", summary.Category))
	return content, nil
}

// newContent builds a raw record from the request, falling back to the
// page's own title when the extension sent none.
func (s *Service) newContent(req ClipRequest) *models.Content {
	title := req.Title
	if title == "" {
		title = extraction.Extract(req.HTML).Title
	}

	content := models.NewContent(models.ContentTypeWebpage, req.URL, title, req.Thumbnail, req.HTML)
	content.UserMemo = req.Memo
	return content
}
