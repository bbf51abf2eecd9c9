package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentType classifies the source of a clipped item
type ContentType string

const (
	ContentTypeWebpage ContentType = "webpage"
	ContentTypePDF     ContentType = "pdf"
	ContentTypeYoutube ContentType = "youtube"
)

// ProcessingStatus tracks how far a clipped item has been processed
type ProcessingStatus string

const (
	StatusRaw        ProcessingStatus = "raw"
	StatusSummarized ProcessingStatus = "summarized"
)

// Content represents one clipped item (web page, PDF, video page)
type Content struct {
	ID         uuid.UUID        `json:"id" db:"id"`
	Type       ContentType      `json:"content_type" db:"content_type"`
	SourceURL  string           `json:"source_url" db:"source_url"`
	Title      string           `json:"title" db:"title"`
	Thumbnail  string           `json:"thumbnail,omitempty" db:"thumbnail"`
	RawContent string           `json:"-" db:"raw_content"`
	Summary    string           `json:"summary,omitempty" db:"summary"`
	Keywords   []string         `json:"keywords,omitempty" db:"keywords"`
	Category   string           `json:"category,omitempty" db:"category"`
	UserMemo   string           `json:"user_memo,omitempty" db:"user_memo"`
	Status     ProcessingStatus `json:"processing_status" db:"processing_status"`
	IsActive   bool             `json:"is_active" db:"is_active"`
	CreatedAt  time.Time        `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time        `json:"updated_at" db:"updated_at"`
}

// TableName returns the table name for the Content model
func (Content) TableName() string {
	return "contents"
}

// NewContent creates a raw (not yet summarized) clipped item
func NewContent(contentType ContentType, sourceURL, title, thumbnail, rawContent string) *Content {
	now := time.Now()
	return &Content{
		ID:         uuid.New(),
		Type:       contentType,
		SourceURL:  sourceURL,
		Title:      title,
		Thumbnail:  thumbnail,
		RawContent: rawContent,
		Status:     StatusRaw,
		IsActive:   true,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// IsSummarized returns true once a summary and category have been attached
func (c *Content) IsSummarized() bool {
	return c.Summary != "" && c.Category != ""
}

// AttachSummary marks the item summarized with the generated fields
func (c *Content) AttachSummary(summary string, keywords []string, category string) {
	c.Summary = summary
	c.Keywords = keywords
	c.Category = category
	c.Status = StatusSummarized
	c.UpdatedAt = time.Now()
}
