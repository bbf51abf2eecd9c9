package observability

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/prometheus/common/expfmt"
)

// Outcome labels for operation metrics.
const (
	StatusOK    = "ok"
	StatusError = "error"
)

// Registry accumulates process-wide counters and histograms. All Record*
// methods are safe for concurrent use; Export may run concurrently with
// them without losing observations.
type Registry struct {
	registry *prometheus.Registry

	operations     *prometheus.CounterVec
	operationTimes *prometheus.HistogramVec
	aiRequests     *prometheus.CounterVec
	aiTokens       *prometheus.CounterVec
	wtuConsumed    *prometheus.CounterVec
	httpRequests   *prometheus.CounterVec
	httpDurations  *prometheus.HistogramVec
}

// NewRegistry creates an isolated metrics registry with all collectors
// registered. Counters reset on process restart; nothing is persisted.
func NewRegistry() *Registry {
	r := &Registry{
		registry: prometheus.NewRegistry(),
		operations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkyboard_operations_total",
			Help: "Total traced operations by outcome.",
		}, []string{"operation", "status"}),
		operationTimes: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "linkyboard_operation_duration_seconds",
			Help: "Traced operation duration in seconds.",
		}, []string{"operation"}),
		aiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkyboard_ai_requests_total",
			Help: "Total AI model requests.",
		}, []string{"model", "operation", "status"}),
		aiTokens: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkyboard_ai_tokens_total",
			Help: "Total AI tokens consumed.",
		}, []string{"model", "token_type"}),
		wtuConsumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkyboard_wtu_consumed_total",
			Help: "Total weighted token units consumed.",
		}, []string{"user_id", "model"}),
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "linkyboard_requests_total",
			Help: "Total HTTP requests.",
		}, []string{"endpoint", "method", "status"}),
		httpDurations: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name: "linkyboard_request_duration_seconds",
			Help: "HTTP request duration in seconds.",
		}, []string{"endpoint", "method"}),
	}

	r.registry.MustRegister(
		r.operations,
		r.operationTimes,
		r.aiRequests,
		r.aiTokens,
		r.wtuConsumed,
		r.httpRequests,
		r.httpDurations,
	)

	return r
}

// RecordOperation records one completed operation scope: an invocation
// count keyed by operation and status, and a duration observation keyed
// by operation.
func (r *Registry) RecordOperation(operation, status string, duration time.Duration) {
	r.operations.WithLabelValues(operation, status).Inc()
	r.operationTimes.WithLabelValues(operation).Observe(duration.Seconds())
}

// RecordAIRequest records one completed AI model invocation.
func (r *Registry) RecordAIRequest(model, operation, status string) {
	r.aiRequests.WithLabelValues(model, operation, status).Inc()
}

// RecordTokens records token usage for an AI model call.
func (r *Registry) RecordTokens(model string, inputTokens, outputTokens int) {
	if inputTokens > 0 {
		r.aiTokens.WithLabelValues(model, "input").Add(float64(inputTokens))
	}
	if outputTokens > 0 {
		r.aiTokens.WithLabelValues(model, "output").Add(float64(outputTokens))
	}
}

// RecordWTU records weighted-token-unit consumption for a user.
func (r *Registry) RecordWTU(userID, model string, units int) {
	if units <= 0 {
		return
	}
	r.wtuConsumed.WithLabelValues(userID, model).Add(float64(units))
}

// RecordHTTPRequest records one completed inbound HTTP request.
func (r *Registry) RecordHTTPRequest(endpoint, method string, status int, duration time.Duration) {
	r.httpRequests.WithLabelValues(endpoint, method, fmt.Sprintf("%d", status)).Inc()
	r.httpDurations.WithLabelValues(endpoint, method).Observe(duration.Seconds())
}

// Export renders all accumulated metrics in the Prometheus text
// exposition format.
func (r *Registry) Export() ([]byte, error) {
	families, err := r.registry.Gather()
	if err != nil {
		return nil, fmt.Errorf("failed to gather metrics: %w", err)
	}

	var buf bytes.Buffer
	encoder := expfmt.NewEncoder(&buf, expfmt.NewFormat(expfmt.TypeTextPlain))
	for _, family := range families {
		if err := encoder.Encode(family); err != nil {
			return nil, fmt.Errorf("failed to encode metric family %q: %w", family.GetName(), err)
		}
	}

	return buf.Bytes(), nil
}

// Handler returns a scrape handler serving this registry's metrics.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
