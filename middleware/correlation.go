package middleware

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/internal/observability"
)

// Correlation headers attached to every non-excluded response.
const (
	RequestIDHeader   = "X-Request-ID"
	ProcessTimeHeader = "X-Process-Time"
)

// Correlation assigns or propagates a request ID, measures wall-clock
// processing time, and logs request completion. Excluded paths (liveness
// checks, metrics scrapes) pass through untouched.
type Correlation struct {
	logger   *zap.Logger
	metrics  *observability.Registry
	excluded map[string]struct{}
}

// NewCorrelation creates the correlation middleware. metrics may be nil to
// disable HTTP request metrics.
func NewCorrelation(logger *zap.Logger, metrics *observability.Registry, excludedPaths ...string) *Correlation {
	excluded := make(map[string]struct{}, len(excludedPaths))
	for _, p := range excludedPaths {
		excluded[p] = struct{}{}
	}
	return &Correlation{
		logger:   logger,
		metrics:  metrics,
		excluded: excluded,
	}
}

// Handler wraps next with request correlation.
func (c *Correlation) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, skip := c.excluded[r.URL.Path]; skip {
			next.ServeHTTP(w, r)
			return
		}

		requestID := r.Header.Get(RequestIDHeader)
		if requestID == "" {
			requestID = uuid.New().String()
		}

		ctx := observability.WithRequestID(r.Context(), requestID)

		tw := &timedWriter{
			ResponseWriter: w,
			requestID:      requestID,
			start:          time.Now(),
		}

		c.logger.Info("request started",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.String("remote_addr", r.RemoteAddr),
		)

		next.ServeHTTP(tw, r.WithContext(ctx))

		// A handler that never wrote still gets its headers and an
		// implicit 200.
		tw.ensureHeaders(http.StatusOK)

		elapsed := time.Since(tw.start)
		if c.metrics != nil {
			c.metrics.RecordHTTPRequest(r.URL.Path, r.Method, tw.status, elapsed)
		}

		completion := c.logger.Info
		if tw.status >= http.StatusBadRequest {
			completion = c.logger.Warn
		}
		completion("request completed",
			zap.String("request_id", requestID),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", tw.status),
			zap.Duration("duration", elapsed),
		)
	})
}

// timedWriter injects the correlation headers immediately before the status
// line is written, so they are present whether the handler succeeds, fails,
// or panics into the recovery middleware.
type timedWriter struct {
	http.ResponseWriter
	requestID   string
	start       time.Time
	status      int
	wroteHeader bool
}

func (w *timedWriter) WriteHeader(code int) {
	if w.wroteHeader {
		return
	}
	w.wroteHeader = true
	w.status = code

	elapsed := float64(time.Since(w.start).Microseconds()) / 1000.0
	w.Header().Set(RequestIDHeader, w.requestID)
	w.Header().Set(ProcessTimeHeader, fmt.Sprintf("%.2fms", elapsed))

	w.ResponseWriter.WriteHeader(code)
}

func (w *timedWriter) Write(b []byte) (int, error) {
	if !w.wroteHeader {
		w.WriteHeader(http.StatusOK)
	}
	return w.ResponseWriter.Write(b)
}

// ensureHeaders finalizes the response when the handler wrote nothing.
func (w *timedWriter) ensureHeaders(code int) {
	if !w.wroteHeader {
		w.WriteHeader(code)
	}
}
