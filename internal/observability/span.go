package observability

import (
	"context"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"
)

// Tracker opens operation spans and reports their outcomes to the metrics
// registry. Spans are confined to a single request flow and must not be
// shared across goroutines.
type Tracker struct {
	metrics *Registry
	logger  *zap.Logger
}

// NewTracker creates a Tracker bound to the given registry and logger.
func NewTracker(metrics *Registry, logger *zap.Logger) *Tracker {
	return &Tracker{
		metrics: metrics,
		logger:  logger,
	}
}

// Span is a timed, attributed record of one logical operation. Every span
// must be ended exactly once, normally via defer:
//
//	span := tracker.StartOperation(ctx, "clipper.save", nil)
//	defer func() { span.End(err) }()
type Span struct {
	tracker   *Tracker
	name      string
	requestID string
	start     time.Time

	mu    sync.Mutex
	attrs map[string]interface{}
	ended bool
}

// StartOperation opens a generic operation span. initialAttrs may be nil.
func (t *Tracker) StartOperation(ctx context.Context, name string, initialAttrs map[string]interface{}) *Span {
	attrs := make(map[string]interface{}, len(initialAttrs)+1)
	for k, v := range initialAttrs {
		attrs[k] = v
	}

	return &Span{
		tracker:   t,
		name:      name,
		requestID: RequestIDFromContext(ctx),
		start:     time.Now(),
		attrs:     attrs,
	}
}

// SetAttribute sets an attribute on the span. Last write wins per key.
func (s *Span) SetAttribute(key string, value interface{}) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.attrs[key] = value
}

// End finalizes the span. A nil err records status ok; a non-nil err
// (including context cancellation) records status error and attaches the
// error kind as an attribute. Only the first call has effect, so the
// one-observation-per-span invariant holds even with a deferred End after
// an explicit one.
func (s *Span) End(err error) {
	s.finish(err, func(status string, duration time.Duration) {
		s.tracker.metrics.RecordOperation(s.name, status, duration)
	})
}

func (s *Span) finish(err error, record func(status string, duration time.Duration)) {
	s.mu.Lock()
	if s.ended {
		s.mu.Unlock()
		return
	}
	s.ended = true

	status := StatusOK
	if err != nil {
		status = StatusError
		s.attrs["error.kind"] = fmt.Sprintf("%T", err)
		s.attrs["error.message"] = err.Error()
	}

	duration := time.Since(s.start)
	s.attrs["duration_seconds"] = duration.Seconds()

	fields := make([]zap.Field, 0, len(s.attrs)+3)
	fields = append(fields,
		zap.String("operation", s.name),
		zap.String("status", status),
	)
	if s.requestID != "" {
		fields = append(fields, zap.String("request_id", s.requestID))
	}
	for k, v := range s.attrs {
		fields = append(fields, zap.Any(k, v))
	}
	s.mu.Unlock()

	record(status, duration)

	if err != nil {
		s.tracker.logger.Warn("operation failed", fields...)
	} else {
		s.tracker.logger.Debug("operation completed", fields...)
	}
}

// AISpan is the AI-operation flavor of Span. It additionally carries the
// model identifier and operation kind, and records token usage set by the
// caller before End.
type AISpan struct {
	Span
	model        string
	operation    string
	inputTokens  int
	outputTokens int
}

// StartAIOperation opens an AI-operation span for the given model and
// operation kind (e.g. "summarize", "classify").
func (t *Tracker) StartAIOperation(ctx context.Context, model, operation string) *AISpan {
	span := &AISpan{
		Span: Span{
			tracker:   t,
			name:      "ai." + operation,
			requestID: RequestIDFromContext(ctx),
			start:     time.Now(),
			attrs:     map[string]interface{}{},
		},
		model:     model,
		operation: operation,
	}
	span.attrs["ai.model"] = model
	span.attrs["ai.operation"] = operation
	return span
}

// SetTokens records the token counts consumed by the operation. Call before
// End; later calls overwrite earlier ones.
func (s *AISpan) SetTokens(input, output int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ended {
		return
	}
	s.inputTokens = input
	s.outputTokens = output
	s.attrs["ai.input_tokens"] = input
	s.attrs["ai.output_tokens"] = output
}

// End finalizes the AI span, emitting the generic operation observation,
// the AI request counter, and any token usage.
func (s *AISpan) End(err error) {
	s.finish(err, func(status string, duration time.Duration) {
		s.tracker.metrics.RecordOperation(s.name, status, duration)
		s.tracker.metrics.RecordAIRequest(s.model, s.operation, status)
		s.tracker.metrics.RecordTokens(s.model, s.inputTokens, s.outputTokens)
	})
}
