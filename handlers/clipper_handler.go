package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/internal/observability"
	"github.com/linkyboard/linkyboard-api/services/clipper"
	"github.com/linkyboard/linkyboard-api/utils"
)

// SaveOnlyRequest stores a clipped page without summarizing it.
type SaveOnlyRequest struct {
	URL         string `json:"url" validate:"required,url"`
	Title       string `json:"title"`
	Thumbnail   string `json:"thumbnail" validate:"omitempty,url"`
	HTMLContent string `json:"html_content" validate:"required"`
	Memo        string `json:"memo"`
	UserID      int64  `json:"user_id" validate:"omitempty,gt=0"`
}

// SummarizeRequest generates a summary without storing the page.
type SummarizeRequest struct {
	URL         string `json:"url" validate:"required,url"`
	HTMLContent string `json:"html_content" validate:"required"`
	UserID      int64  `json:"user_id" validate:"omitempty,gt=0"`
}

// SaveWithSummaryRequest stores a page together with a summary the client
// already holds, usually from a prior summarize call.
type SaveWithSummaryRequest struct {
	URL       string   `json:"url" validate:"required,url"`
	Title     string   `json:"title" validate:"required"`
	Thumbnail string   `json:"thumbnail" validate:"omitempty,url"`
	Memo      string   `json:"memo"`
	Summary   string   `json:"summary" validate:"required"`
	Keywords  []string `json:"keywords"`
	Category  string   `json:"category" validate:"required"`
	UserID    int64    `json:"user_id" validate:"omitempty,gt=0"`
}

// ClipperHandler handles the clipper HTTP endpoints.
type ClipperHandler struct {
	service *clipper.Service
	logger  *zap.Logger
}

// NewClipperHandler creates a new ClipperHandler
func NewClipperHandler(service *clipper.Service, logger *zap.Logger) *ClipperHandler {
	return &ClipperHandler{
		service: service,
		logger:  logger,
	}
}

// HandleSaveOnly handles POST /api/v1/clipper/save-only
func (h *ClipperHandler) HandleSaveOnly(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerWithRequestID(r.Context(), h.logger)

	var req SaveOnlyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeError(w, logger, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, logger)
		return
	}

	content, err := h.service.SaveOnly(r.Context(), req.UserID, clipper.ClipRequest{
		URL:       req.URL,
		Title:     req.Title,
		Thumbnail: req.Thumbnail,
		HTML:      req.HTMLContent,
		Memo:      req.Memo,
	})
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	_ = utils.WriteCreated(w, "Webpage saved successfully", map[string]interface{}{
		"content_id":        content.ID.String(),
		"processing_status": content.Status,
	})
}

// HandleSummarize handles POST /api/v1/clipper/summarize
func (h *ClipperHandler) HandleSummarize(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerWithRequestID(r.Context(), h.logger)

	var req SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeError(w, logger, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, logger)
		return
	}

	result, err := h.service.Summarize(r.Context(), req.UserID, clipper.ClipRequest{
		URL:  req.URL,
		HTML: req.HTMLContent,
	})
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	_ = utils.WriteSuccess(w, "Summary generated successfully", result)
}

// HandleSaveWithSummary handles POST /api/v1/clipper/save-with-summary
func (h *ClipperHandler) HandleSaveWithSummary(w http.ResponseWriter, r *http.Request) {
	logger := observability.LoggerWithRequestID(r.Context(), h.logger)

	var req SaveWithSummaryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		decodeError(w, logger, err)
		return
	}
	if err := utils.ValidateStruct(&req); err != nil {
		HandleValidationError(w, err, logger)
		return
	}

	content, err := h.service.SaveWithSummary(r.Context(), req.UserID,
		clipper.ClipRequest{
			URL:       req.URL,
			Title:     req.Title,
			Thumbnail: req.Thumbnail,
			Memo:      req.Memo,
		},
		clipper.SummaryFields{
			Summary:  req.Summary,
			Keywords: req.Keywords,
			Category: req.Category,
		})
	if err != nil {
		HandleServiceError(w, err, logger)
		return
	}

	_ = utils.WriteCreated(w, "Webpage saved with summary", map[string]interface{}{
		"content_id":        content.ID.String(),
		"processing_status": content.Status,
	})
}
