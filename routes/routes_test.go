package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/linkyboard/linkyboard-api/app"
	"github.com/linkyboard/linkyboard-api/config"
	"github.com/linkyboard/linkyboard-api/middleware"
	"github.com/linkyboard/linkyboard-api/utils"
)

const testHTML = `<html><head><title>Routed Page</title></head>
<body><p>Some page content about software and code, long enough to summarize.</p></body></html>`

func newTestRouter(t *testing.T) http.Handler {
	t.Helper()
	cfg := &config.Config{
		AppName:     "linkyboard-api",
		Environment: "test",
		AI: config.AIConfig{
			SummaryModel:     "gpt-4o-mini",
			MaxSummaryLength: 500,
			MaxKeywords:      5,
		},
		Observability: config.ObservabilityConfig{
			LogLevel:      "info",
			LogFormat:     "console",
			ExcludedPaths: []string{"/health", "/metrics", "/favicon.ico"},
		},
	}
	deps, err := app.NewDependencies(context.Background(), cfg, zap.NewNop())
	require.NoError(t, err)
	return SetupRoutes(deps)
}

func doJSON(t *testing.T, router http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func envelope(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var e utils.APIResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &e))
	return e
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	e := envelope(t, rec)
	assert.True(t, e.Success)
	assert.Equal(t, "OK", e.Message)
	data := e.Data.(map[string]interface{})
	assert.Equal(t, "healthy", data["status"])

	// Health is excluded from correlation.
	assert.Empty(t, rec.Header().Get(middleware.RequestIDHeader))
	assert.Empty(t, rec.Header().Get(middleware.ProcessTimeHeader))
}

func TestAPIRootCarriesCorrelationHeaders(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	id := rec.Header().Get(middleware.RequestIDHeader)
	require.Len(t, id, 36)
	_, err := uuid.Parse(id)
	assert.NoError(t, err)

	processTime := rec.Header().Get(middleware.ProcessTimeHeader)
	assert.True(t, strings.HasSuffix(processTime, "ms"))

	data := envelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "1.0.0", data["version"])
}

func TestRequestIDEcho(t *testing.T) {
	router := newTestRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/", nil)
	req.Header.Set(middleware.RequestIDHeader, "custom-request-id-12345")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	assert.Equal(t, "custom-request-id-12345", rec.Header().Get(middleware.RequestIDHeader))
}

func TestClipperSaveOnlyEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	body := fmt.Sprintf(`{"url":"https://example.com/page","title":"Routed Page","html_content":%q,"user_id":42}`, testHTML)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/clipper/save-only", body)

	assert.Equal(t, http.StatusCreated, rec.Code)
	e := envelope(t, rec)
	assert.True(t, e.Success)
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestClipperSummarizeEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	body := fmt.Sprintf(`{"url":"https://example.com/page","html_content":%q,"user_id":42}`, testHTML)
	rec := doJSON(t, router, http.MethodPost, "/api/v1/clipper/summarize", body)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, "Routed Page", data["title"])
	assert.NotEmpty(t, data["summary"])
}

func TestClipperValidationEnvelope(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/clipper/summarize", `{"url":"nope"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	e := envelope(t, rec)
	assert.False(t, e.Success)
	assert.Nil(t, e.Data)
	// Error responses still carry correlation headers.
	assert.NotEmpty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestUserSyncEndToEnd(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodPost, "/api/v1/users/sync", `{"user_id":42}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	data := envelope(t, rec).Data.(map[string]interface{})
	assert.Equal(t, float64(42), data["user_id"])
}

func TestMetricsEndpoint(t *testing.T) {
	router := newTestRouter(t)

	// Generate some traffic first.
	doJSON(t, router, http.MethodGet, "/api/v1/", "")
	body := fmt.Sprintf(`{"url":"https://example.com/page","html_content":%q,"user_id":42}`, testHTML)
	doJSON(t, router, http.MethodPost, "/api/v1/clipper/summarize", body)

	rec := doJSON(t, router, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	text := rec.Body.String()
	assert.Contains(t, text, "linkyboard_requests_total")
	assert.Contains(t, text, `endpoint="/api/v1/"`)
	assert.Contains(t, text, `linkyboard_ai_requests_total{model="gpt-4o-mini",operation="summarize",status="ok"} 1`)
	assert.Contains(t, text, "linkyboard_request_duration_seconds")

	// Metrics itself is excluded from HTTP metrics and correlation.
	assert.NotContains(t, text, `endpoint="/metrics"`)
	assert.Empty(t, rec.Header().Get(middleware.RequestIDHeader))
}

func TestNotFoundEnvelope(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodGet, "/api/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	e := envelope(t, rec)
	assert.False(t, e.Success)
	assert.Equal(t, "Endpoint not found", e.Message)
	assert.Nil(t, e.Data)
}

func TestMethodNotAllowedEnvelope(t *testing.T) {
	router := newTestRouter(t)

	rec := doJSON(t, router, http.MethodDelete, "/api/v1/users/sync", "")
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.False(t, envelope(t, rec).Success)
}
